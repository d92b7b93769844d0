package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/m-mizutani/masq"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config configures a diagnostic logger.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// FileConfig configures the rolling log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)

// New returns a structured logger writing JSON (or text) records to w.
// Sensitive attribute values are redacted.
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: masq.New(
			masq.WithFieldName("token"),
			masq.WithFieldName("authorization"),
			masq.WithFieldName("cookie"),
			masq.WithRegex(bearerPattern),
		),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// NewFile returns a logger backed by a rolling file. The quiz UI owns the
// terminal, so this is its only diagnostic channel. The returned closer
// flushes and closes the file.
func NewFile(cfg Config, fc FileConfig) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(fc.Path), 0o755); err != nil {
		return nil, nil, err
	}
	w := &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    fc.MaxSizeMB,
		MaxBackups: fc.MaxBackups,
		MaxAge:     fc.MaxAgeDays,
		Compress:   fc.Compress,
	}
	return New(cfg, w), w, nil
}

// NewTerminal returns a human-friendly logger for commands that do not
// run the UI, such as serve.
func NewTerminal(level string, w io.Writer) *slog.Logger {
	lvl, err := charmlog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = charmlog.InfoLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "bookquiz",
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
