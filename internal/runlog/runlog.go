// Package runlog writes the run log: a timestamped line log shared by the
// log file and the console, with one line per product and a closing summary.
package runlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// TimeLayout is the timestamp format of log lines.
const TimeLayout = "2006-01-02 15:04:05"

const ruleWidth = 80

// Logger is a structured logger bound to the run log file.
type Logger struct {
	*slog.Logger
	path string
	file *os.File
}

// ParseLevel maps a log_level setting to a slog level. Debug mode forces debug.
func ParseLevel(level string, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Open appends to the log file at path, creating its directory, and mirrors
// every line to console. A nil console writes to the file only.
func Open(path string, level slog.Level, console io.Writer) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	//nolint:gosec // G304: the log path comes from the operator's configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	var w io.Writer = f
	if console != nil {
		w = io.MultiWriter(f, console)
	}
	return &Logger{Logger: New(w, level), path: path, file: f}, nil
}

// New returns a logger writing text lines with short timestamps to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(TimeLayout))
			}
			return a
		},
	}))
}

// NewLogger returns a Logger writing to w only, without a log file.
func NewLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: New(w, level)}
}

// Discard returns a Logger that writes nowhere.
func Discard() *Logger {
	return NewLogger(io.Discard, slog.LevelError)
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) rule(ch string) {
	l.Info(strings.Repeat(ch, ruleWidth))
}

// Start writes the run banner.
func (l *Logger) Start() {
	l.rule("=")
	l.Info("НАЧАЛО РАБОТЫ ПРОГРАММЫ ГЕНЕРАЦИИ РАСЧЁТОВ НА ПРОЧНОСТЬ")
	l.rule("=")
}

// Section writes a titled separator.
func (l *Logger) Section(title string) {
	l.rule("-")
	l.Info(title)
	l.rule("-")
}

// Success records a generated document.
func (l *Logger) Success(article, name, outputPath string) {
	l.Info(fmt.Sprintf("OK | %s | %s | Файл сохранён: %s", article, name, outputPath))
}

// Failure records a product that could not be processed.
func (l *Logger) Failure(kind, article, name, imagePath, message string) {
	msg := kind + " | " + article + " | " + name
	if imagePath != "" {
		msg += " | Картинка: " + imagePath
	}
	if message != "" {
		msg += " | " + message
	}
	l.Error(msg)
}

// KindCount is the number of products that failed with one error kind.
type KindCount struct {
	Kind  string
	Count int
}

// Summary is the closing statistics block.
type Summary struct {
	Total       int
	Succeeded   int
	Errors      []KindCount
	SkippedRows int
}

// Summary writes the closing statistics block.
func (l *Logger) Summary(s Summary) {
	l.rule("=")
	l.Info("ИТОГОВАЯ СТАТИСТИКА")
	l.rule("-")
	l.Info(fmt.Sprintf("Всего изделий обработано: %d", s.Total))
	l.Info(fmt.Sprintf("Успешно сформировано документов: %d", s.Succeeded))
	l.Info(fmt.Sprintf("Изделий с ошибками: %d", s.Total-s.Succeeded))
	if s.SkippedRows > 0 {
		l.Info(fmt.Sprintf("Пропущено строк каталога: %d", s.SkippedRows))
	}
	if len(s.Errors) > 0 {
		l.rule("-")
		l.Info("Распределение ошибок:")
		for _, e := range s.Errors {
			l.Info(fmt.Sprintf("  %s: %d", e.Kind, e.Count))
		}
	}
	l.rule("-")
	l.Info("Лог-файл: " + l.path)
	l.rule("=")
}
