package audit

import (
	"errors"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

var _ core.EventSink = (*MultiSink)(nil)

// MultiSink fans every event out to all of its sinks.
type MultiSink struct {
	Sinks []core.EventSink
}

func NewMultiSink(sinks ...core.EventSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

func (m *MultiSink) Emit(event core.Event) {
	for _, sink := range m.Sinks {
		sink.Emit(event)
	}
}

func (m *MultiSink) Close() error {
	var errs []error
	for _, sink := range m.Sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
