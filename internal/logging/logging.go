// Package logging builds the slog logger used by the command line tool.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Stderr as a file name sends records to os.Stderr instead of a rotating file.
const Stderr = "-"

const (
	DefaultFilename   = ".schrodinger.log"
	DefaultMaxSize    = 10
	DefaultMaxBackups = 3
	DefaultMaxAge     = 28
)

type Options struct {
	Filename   string
	Level      string
	Verbose    bool
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// ParseLevel accepts debug, info, warn, error or a numeric slog level.
func ParseLevel(value string, fallback slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return fallback
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}
	return fallback
}

// Writer returns the sink for opts. The closer is a no-op for stderr.
func Writer(opts Options) io.WriteCloser {
	name := strings.TrimSpace(opts.Filename)
	if name == Stderr {
		return nopCloser{os.Stderr}
	}
	if name == "" {
		name = DefaultFilename
	}
	return &lumberjack.Logger{
		Filename:   name,
		MaxSize:    orDefault(opts.MaxSize, DefaultMaxSize),
		MaxBackups: orDefault(opts.MaxBackups, DefaultMaxBackups),
		MaxAge:     orDefault(opts.MaxAge, DefaultMaxAge),
		Compress:   opts.Compress,
	}
}

// New configures a text logger writing to w. Verbose forces Debug.
func New(w io.Writer, opts Options) *slog.Logger {
	level := ParseLevel(opts.Level, slog.LevelInfo)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: level <= slog.LevelDebug,
		Level:     level,
	}))
}

// Setup opens the configured sink, installs the logger as the slog default
// and returns it with the sink's closer.
func Setup(opts Options) (*slog.Logger, io.Closer) {
	w := Writer(opts)
	logger := New(w, opts)
	slog.SetDefault(logger)
	return logger, w
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
