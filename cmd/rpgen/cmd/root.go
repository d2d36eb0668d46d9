package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/orchestrator"
	"github.com/MeKo-Tech/rpgen/internal/runlog"
	"github.com/MeKo-Tech/rpgen/internal/version"
)

// ErrInterrupted is returned when the run was stopped by a signal.
var ErrInterrupted = errors.New("run interrupted")

// Exit codes of the rpgen binary.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = NewRootCommand()

// NewRootCommand builds the rpgen command with its flags.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpgen",
		Short: "Batch generator of strength calculation documents",
		Long: `rpgen reads the product catalog, finds the passport of every product,
extracts its technical data and writes a strength calculation document
from the Word template.

Settings are read from config.json and texts_by_category.json in the
configuration directory. Every line of the run log is written to the log
file and to the console.

Examples:
  rpgen
  rpgen --config-dir /srv/rp/config
  rpgen --log-level debug --progress`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	cmd.Flags().String("config-dir", config.DefaultConfigDir, "directory holding config.json and texts_by_category.json")
	cmd.Flags().String("log-level", "", "log level (debug, info, warn, error), overrides log_level")
	cmd.Flags().Bool("debug", false, "debug output, overrides debug_mode")
	cmd.Flags().Bool("quiet", false, "write the run log to the log file only")
	cmd.Flags().Bool("progress", false, "print a progress line per product to stderr")
	cmd.Flags().Bool("version", false, "print version information and exit")

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		// Console logging until the run log is opened.
		slog.SetDefault(runlog.New(cmd.ErrOrStderr(), slog.LevelInfo))
	}
	return cmd
}

// Execute runs the root command and exits with its status. Ctrl-C stops the
// run before the next product.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
	}
	os.Exit(ExitCode(err))
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInterrupted):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}

// GetRootCommand returns the root command for testing purposes.
// This allows tests to execute commands without calling os.Exit().
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if v, _ := cmd.Flags().GetBool("version"); v {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return nil
	}

	dir, _ := cmd.Flags().GetString("config-dir")
	cfgFile, textsFile := config.Files(dir)
	if err := config.CheckFiles(cfgFile, textsFile); err != nil {
		return fmt.Errorf("%w (каталог настроек задаётся флагом --config-dir)", err)
	}

	loader := config.NewLoader()
	v := loader.GetViper()
	_ = v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("debug_mode", cmd.Flags().Lookup("debug"))

	cfg, err := loader.LoadWithFile(cfgFile)
	if err != nil {
		return err
	}
	texts, err := config.LoadTexts(textsFile)
	if err != nil {
		return err
	}

	var console io.Writer = cmd.OutOrStdout()
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		console = nil
	}
	log, err := runlog.Open(cfg.Paths.LogFile, runlog.ParseLevel(cfg.LogLevel, cfg.DebugMode), console)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()
	slog.SetDefault(log.Logger)

	log.Debug("configuration loaded", "file", loader.GetConfigFileUsed(), "categories", texts.Len())

	var progress orchestrator.ProgressCallback = orchestrator.NoOpProgressCallback{}
	if p, _ := cmd.Flags().GetBool("progress"); p {
		progress = orchestrator.NewConsoleProgressCallback(cmd.ErrOrStderr())
	}

	res, err := orchestrator.Execute(cmd.Context(), cfg, texts, log, progress)
	if err != nil {
		return err
	}
	if res.Cancelled {
		return ErrInterrupted
	}
	return nil
}
