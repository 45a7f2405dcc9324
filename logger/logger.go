// Package logger is a small log/slog front end shared by the engine, the
// report list and the command line.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}

type logger struct {
	*slog.Logger
}

func (l *logger) With(args ...any) Logger {
	return &logger{Logger: l.Logger.With(args...)}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Options struct {
	Writer io.Writer `mapstructure:"-"`
	Level  string    `mapstructure:"level"`
	Format Format    `mapstructure:"format"`
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var DefaultLogger = New(Options{Writer: os.Stderr, Level: "info", Format: FormatText})

// Discard drops everything, for tests and embedders that log elsewhere.
var Discard = New(Options{Writer: io.Discard})

func New(opts Options) Logger {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	level, ok := levels[strings.ToLower(opts.Level)]
	if !ok {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	switch opts.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(opts.Writer, &slog.HandlerOptions{Level: level})
	case FormatText:
		fallthrough
	default:
		handler = slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{Level: level})
	}
	return &logger{Logger: slog.New(handler)}
}
