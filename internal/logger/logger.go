package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var Logger *slog.Logger

type requestIDKey struct{}

// InitLogger sets up JSON logging on stdout for the server. Gin "debug" mode
// enables debug records with source locations.
func InitLogger(mode string) {
	InitLoggerWithWriter(mode, os.Stdout)
}

// InitLoggerWithWriter is InitLogger with an explicit destination
func InitLoggerWithWriter(mode string, w io.Writer) {
	level := slog.LevelInfo
	if mode == "debug" {
		level = slog.LevelDebug
	}

	Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: mode == "debug",
	}))
	Logger.Debug("Structured logging initialized", "level", level.String())
}

// InitCLILogger writes human-readable records for command-line tools.
// Verbose lowers the threshold to debug.
func InitCLILogger(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithRequestID tags ctx so FromContext loggers carry the inbound request id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// FromContext returns the global logger scoped to the request in ctx.
// It never returns nil; before initialization records are discarded.
func FromContext(ctx context.Context) *slog.Logger {
	l := Logger
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if id := RequestID(ctx); id != "" {
		l = l.With("request_id", id)
	}
	return l
}

func Info(msg string, args ...any) {
	if Logger != nil {
		Logger.Info(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if Logger != nil {
		Logger.Error(msg, args...)
	}
}

func Debug(msg string, args ...any) {
	if Logger != nil {
		Logger.Debug(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if Logger != nil {
		Logger.Warn(msg, args...)
	}
}
