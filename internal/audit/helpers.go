package audit

import (
	"context"
	"time"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

type correlationKey struct{}

// WithCorrelationID stores the request correlation id in ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID retrieves the correlation ID from the context.
func CorrelationID(ctx context.Context) string {
	id, ok := ctx.Value(correlationKey{}).(string)
	if !ok {
		return ""
	}
	return id
}

// Emit builds an event for the request in ctx and hands it to sink.
func Emit(ctx context.Context, sink core.EventSink, level core.EventLevel, action, msg string, fields map[string]any) {
	if sink == nil {
		return
	}
	sink.Emit(core.Event{
		CorrelationID: CorrelationID(ctx),
		Time:          time.Now(),
		Action:        action,
		Level:         level,
		Message:       msg,
		Fields:        fields,
	})
}
