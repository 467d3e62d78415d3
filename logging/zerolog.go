package logging

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// ZeroLogger implements Logger and ComponentAwareLogger on top of
// github.com/rs/zerolog, the structured logger the rest of the example
// fleet reaches for. It writes one JSON line per event; the *WithContext
// methods attach a correlation ID carried on the context (see
// WithCorrelationID) when present.
type ZeroLogger struct {
	z         zerolog.Logger
	component string
}

// NewZeroLogger builds a production logger writing JSON to stdout at the
// given level ("debug", "info", "warn", "error").
func NewZeroLogger(level string) *ZeroLogger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	z := zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	return &ZeroLogger{z: z}
}

func (l *ZeroLogger) WithComponent(component string) Logger {
	return &ZeroLogger{z: l.z.With().Str("component", component).Logger(), component: component}
}

func (l *ZeroLogger) event(e *zerolog.Event, msg string, fields map[string]interface{}) {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{})  { l.event(l.z.Info(), msg, fields) }
func (l *ZeroLogger) Error(msg string, fields map[string]interface{}) { l.event(l.z.Error(), msg, fields) }
func (l *ZeroLogger) Warn(msg string, fields map[string]interface{})  { l.event(l.z.Warn(), msg, fields) }
func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) { l.event(l.z.Debug(), msg, fields) }

func correlationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey{}).(string)
	return id, ok && id != ""
}

type correlationIDKey struct{}

// WithCorrelationID returns a context carrying a correlation ID that
// ZeroLogger attaches to every subsequent *WithContext call, so every log
// line for one plan/execute run can be grepped out together.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func (l *ZeroLogger) eventCtx(ctx context.Context, e *zerolog.Event, msg string, fields map[string]interface{}) {
	if id, ok := correlationID(ctx); ok {
		e = e.Str("correlation_id", id)
	}
	l.event(e, msg, fields)
}

func (l *ZeroLogger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.eventCtx(ctx, l.z.Info(), msg, fields)
}
func (l *ZeroLogger) ErrorWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.eventCtx(ctx, l.z.Error(), msg, fields)
}
func (l *ZeroLogger) WarnWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.eventCtx(ctx, l.z.Warn(), msg, fields)
}
func (l *ZeroLogger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.eventCtx(ctx, l.z.Debug(), msg, fields)
}
