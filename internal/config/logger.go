//go:build !ios && !android && (amd64 || arm64)

package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/obinnaokechukwu/pmgo"
)

var logLevels = map[string]slog.Level{
	"none":  slog.LevelError + 1,
	"error": slog.LevelError,
	"warn":  slog.LevelWarn,
	"info":  slog.LevelInfo,
	"debug": slog.LevelDebug,
}

// NewLogger builds the logger for a level and optional file. Output goes to
// w as text when logFile is empty, otherwise to the file as JSON. The
// returned file, if any, must be closed by the caller.
func NewLogger(w io.Writer, logLevel, logFile string, opts slog.HandlerOptions) (*slog.Logger, *os.File, error) {
	level, ok := logLevels[logLevel]
	if !ok {
		return nil, nil, errors.New("unexpected log level")
	}
	if logLevel == "none" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	opts.Level = level

	if logFile == "" {
		return slog.New(slog.NewTextHandler(w, &opts)), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, &opts)), f, nil
}

// ConfigureLogger installs the configured logger as the slog default and
// as the pmgo package logger.
func (c *Config) ConfigureLogger(w io.Writer) (*slog.Logger, *os.File, error) {
	logger, f, err := NewLogger(w, c.LogLevel, c.LogFile, slog.HandlerOptions{})
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	pmgo.SetLogger(logger)
	return logger, f, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
