package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// LevelCritical sits above error and is reserved for failures that stop the
// process.
const LevelCritical = slog.Level(12)

const (
	FormatJSON = "json"
	FormatText = "text"
)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	// BusinessError is for expected failures such as not found, forbidden or
	// invalid input. InternalError is for everything else.
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
	// ForContext attaches the trace and span ids of the active span, if any.
	ForContext(ctx context.Context) Logger
}

type Options struct {
	Env    string
	Level  string
	Format string
}

var levelNames = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

type slogLogger struct {
	base *slog.Logger
}

// NewFromEnv reads ENV, LOG_LEVEL and LOG_FORMAT directly so that config
// loading can already log.
func NewFromEnv() Logger {
	return NewWithOptions(os.Stdout, Options{
		Env:    os.Getenv("ENV"),
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

func NewWithOptions(output io.Writer, opts Options) Logger {
	return New(output, parseLevel(opts.Level, opts.Env), opts.Format)
}

func New(output io.Writer, level slog.Level, format string) Logger {
	options := &slog.HandlerOptions{Level: level, ReplaceAttr: renameCritical}

	var handler slog.Handler = slog.NewJSONHandler(output, options)
	if normalize(format) == FormatText {
		handler = slog.NewTextHandler(output, options)
	}

	return &slogLogger{base: slog.New(handler)}
}

func NewNop() Logger {
	return New(io.Discard, LevelCritical+1, FormatText)
}

func (l *slogLogger) Debug(message string, args ...any) { l.base.Debug(message, args...) }
func (l *slogLogger) Info(message string, args ...any)  { l.base.Info(message, args...) }
func (l *slogLogger) Warn(message string, args ...any)  { l.base.Warn(message, args...) }
func (l *slogLogger) Error(message string, args ...any) { l.base.Error(message, args...) }

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	l.logErr(slog.LevelWarn, message, err, args)
}

func (l *slogLogger) InternalError(message string, err error, args ...any) {
	l.logErr(slog.LevelError, message, err, args)
}

func (l *slogLogger) logErr(level slog.Level, message string, err error, args []any) {
	if err == nil {
		return
	}
	l.base.Log(context.Background(), level, message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func (l *slogLogger) ForContext(ctx context.Context) Logger {
	span := trace.SpanContextFromContext(ctx)
	if !span.IsValid() {
		return l
	}
	return l.With("trace_id", span.TraceID().String(), "span_id", span.SpanID().String())
}

// parseLevel falls back to debug in development and info elsewhere.
func parseLevel(value, env string) slog.Level {
	if level, ok := levelNames[normalize(value)]; ok {
		return level
	}
	if normalize(env) == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func renameCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
			attr.Value = slog.StringValue("CRITICAL")
		}
	}
	return attr
}
