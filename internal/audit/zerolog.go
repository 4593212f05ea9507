package audit

import (
	"github.com/rs/zerolog"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

var _ core.EventSink = (*LogSink)(nil)

// LogSink forwards events to a zerolog logger.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (l *LogSink) Emit(event core.Event) {
	var e *zerolog.Event
	switch event.Level {
	case core.LevelDebug:
		e = l.logger.Debug()
	case core.LevelWarn:
		e = l.logger.Warn()
	case core.LevelError:
		e = l.logger.Error()
	default:
		e = l.logger.Info()
	}
	if event.CorrelationID != "" {
		e = e.Str("correlation_id", event.CorrelationID)
	}
	e.Str("action", event.Action).
		Fields(event.Fields).
		Msg(event.Message)
}

func (l *LogSink) Close() error {
	return nil
}
