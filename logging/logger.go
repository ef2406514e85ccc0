// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ftahirops/hostdash/config"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// New creates a logger for cfg. Without a file the logger discards its
// output; stdout and stderr are owned by the terminal surface.
func New(cfg config.LoggingConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			DisableColors:   true,
		})
	}

	if cfg.File == "" {
		logger.SetOutput(io.Discard)
		return logger, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	logger.SetOutput(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // days
		Compress:   true,
	})
	return logger, nil
}

// Close releases the rotating file behind logger, if any.
func Close(logger *logrus.Logger) error {
	if c, ok := logger.Out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
