package audit

import "github.com/busebalkan99/design-checklist-vercel/internal/core"

// NoopSink is a sink that drops every event.
type NoopSink struct{}

func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (n *NoopSink) Emit(_ core.Event) {
	// noop
}

func (n *NoopSink) Close() error {
	// nothing to close
	return nil
}
