// Package logger provides structured logging for panebar on top of log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"panebar/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a slog.Logger that owns its output files.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// New builds a Logger from cfg.
func New(cfg config.LogConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	w, closer := openWriters(cfg)

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: cfg.EnableCaller})
	case "pretty":
		handler = NewCharmHandler(w, &CharmHandlerOptions{
			Level:      level,
			NoColor:    cfg.NoColor,
			ShowCaller: cfg.EnableCaller,
			Prefix:     "panebar",
		})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: cfg.EnableCaller})
	}

	return &Logger{Logger: slog.New(handler), closer: closer}, nil
}

// Close closes any log files opened by New.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// With returns a child logger. The child never closes the parent's files.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithGroup returns a child logger whose attributes are nested under name.
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{Logger: l.Logger.WithGroup(name)}
}

// openWriters combines the console output with the rotated file. When neither
// is configured the logs are discarded, since stdout and stderr belong to the
// TUI.
func openWriters(cfg config.LogConfig) (io.Writer, io.Closer) {
	var (
		writers []io.Writer
		files   multiCloser
	)

	switch strings.ToLower(cfg.Output) {
	case "":
	case "stdout":
		writers = append(writers, os.Stdout)
	case "stderr":
		writers = append(writers, os.Stderr)
	default:
		lj := rotating(cfg.Output, cfg)
		writers = append(writers, lj)
		files = append(files, lj)
	}
	if cfg.FilePath != "" && cfg.FilePath != cfg.Output {
		lj := rotating(cfg.FilePath, cfg)
		writers = append(writers, lj)
		files = append(files, lj)
	}

	var closer io.Closer
	if len(files) > 0 {
		closer = files
	}
	switch len(writers) {
	case 0:
		return io.Discard, closer
	case 1:
		return writers[0], closer
	default:
		return io.MultiWriter(writers...), closer
	}
}

func rotating(path string, cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    positiveOr(cfg.MaxSizeMB, 10),
		MaxBackups: positiveOr(cfg.MaxBackups, 3),
		MaxAge:     positiveOr(cfg.MaxAgeDays, 28),
		Compress:   true,
	}
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// ParseLevel converts a config level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var errs []error
	for _, c := range mc {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Default returns a logger backed by slog.Default.
func Default() *Logger {
	return &Logger{Logger: slog.Default()}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
