package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/rpgen/internal/config"
	"github.com/MeKo-Tech/rpgen/internal/testutil"
)

func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// workspace prepares a run with one product that can be generated.
func workspace(t *testing.T) *testutil.Workspace {
	t.Helper()

	ws := testutil.NewWorkspace(t)
	ws.WriteTemplate(t)
	ws.WriteTexts(t, nil)
	image := ws.AddImage(t, "GA9999.png", 300, 200)
	ws.AddPassport(t, "GA9999.pdf", testutil.MinimalPDF("Passport GA9999"))
	ws.WriteCatalog(t, [][]interface{}{
		{"GA9999", "Домик игровой", image, 4},
	})
	return ws
}

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Same(t, rootCmd, GetRootCommand())
	assert.Equal(t, "rpgen", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	flag := rootCmd.Flags().Lookup("config-dir")
	require.NotNil(t, flag)
	assert.Equal(t, config.DefaultConfigDir, flag.DefValue)
}

func TestRootCommandHelp(t *testing.T) {
	stdout, _, err := execute(t, context.Background(), "--help")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--config-dir")
}

func TestRootCommandVersion(t *testing.T) {
	stdout, _, err := execute(t, context.Background(), "--version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "rpgen version")
}

func TestRootCommandRejectsArguments(t *testing.T) {
	_, _, err := execute(t, context.Background(), "catalog.xlsx")
	assert.Error(t, err)
}

func TestMissingConfigDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")

	_, _, err := execute(t, context.Background(), "--config-dir", dir)

	require.ErrorIs(t, err, config.ErrConfigMissing)
	assert.Contains(t, err.Error(), filepath.Join(dir, config.ConfigFileName))
	assert.Contains(t, err.Error(), "--config-dir")
	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestMissingTextsFile(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WriteConfig(t, nil)

	_, _, err := execute(t, context.Background(), "--config-dir", ws.ConfigDir)

	require.ErrorIs(t, err, config.ErrConfigMissing)
	assert.Contains(t, err.Error(), config.TextsFileName)
}

func TestInvalidConfig(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WriteConfig(t, map[string]interface{}{"log_level": "loud"})
	ws.WriteTexts(t, nil)

	_, _, err := execute(t, context.Background(), "--config-dir", ws.ConfigDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRunGeneratesDocuments(t *testing.T) {
	ws := workspace(t)
	ws.WriteConfig(t, nil)

	stdout, _, err := execute(t, context.Background(), "--config-dir", ws.ConfigDir)
	require.NoError(t, err)

	out := filepath.Join(ws.OutputDir, "GA9999_Домик игровой_РП.docx")
	assert.True(t, testutil.FileExists(out))
	assert.Contains(t, stdout, "OK | GA9999 | Домик игровой")
	assert.Contains(t, stdout, "ИТОГОВАЯ СТАТИСТИКА")

	logData, err := os.ReadFile(ws.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "OK | GA9999 | Домик игровой")
}

func TestRunQuietWritesLogFileOnly(t *testing.T) {
	ws := workspace(t)
	ws.WriteConfig(t, nil)

	stdout, stderr, err := execute(t, context.Background(), "--config-dir", ws.ConfigDir, "--quiet", "--progress")
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "[1/1 100.0%] GA9999 - Домик игровой")
	assert.True(t, testutil.FileExists(ws.LogPath))
}

func TestLogLevelFlagOverridesConfig(t *testing.T) {
	ws := workspace(t)
	ws.WriteConfig(t, map[string]interface{}{"log_level": "error"})

	stdout, _, err := execute(t, context.Background(), "--config-dir", ws.ConfigDir, "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, stdout, "configuration loaded")
}

func TestInterruptedRun(t *testing.T) {
	ws := workspace(t)
	ws.WriteConfig(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout, _, err := execute(t, ctx, "--config-dir", ws.ConfigDir)

	require.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, ExitInterrupted, ExitCode(err))
	assert.Contains(t, stdout, "ИТОГОВАЯ СТАТИСТИКА")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
}

func TestNewRootCommandIsIndependent(t *testing.T) {
	a, b := NewRootCommand(), NewRootCommand()
	require.NoError(t, a.Flags().Set("quiet", "true"))

	quiet, err := b.Flags().GetBool("quiet")
	require.NoError(t, err)
	assert.False(t, quiet)
	assert.IsType(t, &cobra.Command{}, a)
}
