// Package logging builds the zerolog logger shared by the server and CLI.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gordon0907/ark-tribe-log/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger for cfg and a function that releases its file output.
// Console output is human readable; "json" emits one object per line.
func New(cfg *config.ObservabilityConfig, stderr io.Writer) (zerolog.Logger, func() error) {
	if cfg == nil {
		cfg = config.DefaultObservabilityConfig()
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	var out io.Writer = stderr
	if cfg.Logging.Format != "json" {
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	}

	closer := func() error { return nil }
	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o755); err == nil {
			rotator := &lumberjack.Logger{
				Filename:   cfg.Logging.File,
				MaxSize:    cfg.Logging.MaxSizeMB,
				MaxBackups: cfg.Logging.MaxBackups,
				MaxAge:     cfg.Logging.MaxAgeDays,
				Compress:   cfg.Logging.Compress,
			}
			out = zerolog.MultiLevelWriter(out, rotator)
			closer = rotator.Close
		}
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil || cfg.Logging.Level == "" {
		level = zerolog.InfoLevel
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	if cfg.Environment != "" {
		ctx = ctx.Str("env", cfg.Environment)
	}
	return ctx.Logger(), closer
}
