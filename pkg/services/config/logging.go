package config

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger. When a log file is configured, output
// goes to both stdout and a size-rotated file; the returned closer releases it.
func NewLogger(cfg LogConfig) (zerolog.Logger, io.Closer) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(os.Stdout, rotated)
		closer = rotated
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if err != nil && cfg.Level != "" {
		logger.Warn().Str("level", cfg.Level).Msg("unknown log level, using info")
	}
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
