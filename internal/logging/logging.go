// Package logging builds the zap logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string
	// File receives JSON logs when set; Writer is used otherwise.
	File string
	// Writer receives console logs when File is empty. Nil disables logging.
	Writer io.Writer
}

// New returns a logger and a close func that flushes and releases the sink.
func New(opts Options) (*zap.Logger, func() error, error) {
	level := zapcore.WarnLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}

		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), level)
		logger := zap.New(core)
		return logger, func() error {
			_ = logger.Sync()
			return file.Close()
		}, nil
	}

	if opts.Writer == nil {
		return zap.NewNop(), func() error { return nil }, nil
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(opts.Writer), level)
	logger := zap.New(core)
	return logger, func() error {
		_ = logger.Sync()
		return nil
	}, nil
}
