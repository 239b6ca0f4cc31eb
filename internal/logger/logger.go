// Package logger configures the structured logger shared by the command line and the workflow.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	slogmulti "github.com/samber/slog-multi"
)

// Config selects where logs go and at which level.
type Config struct {
	// Console receives human readable logs. Defaults to os.Stderr.
	Console io.Writer
	// File, when set, also receives JSON logs.
	File  string
	Debug bool
}

// Setup builds a logger from cfg. The returned cleanup function closes the log file.
func Setup(cfg Config) (*slog.Logger, func() error, error) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}
	cleanup := func() error { return nil }

	if cfg.File != "" {
		err := os.MkdirAll(filepath.Dir(cfg.File), 0o755)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to create log directory for %s", cfg.File)
		}

		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to open log file %s", cfg.File)
		}

		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level:     level,
			AddSource: cfg.Debug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
					a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
				}

				return a
			},
		}))
		cleanup = file.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), cleanup, nil
}

// Discard returns a logger dropping every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
