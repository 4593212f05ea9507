package core

import "time"

type EventLevel string

const (
	LevelDebug EventLevel = "debug"
	LevelInfo  EventLevel = "info"
	LevelWarn  EventLevel = "warn"
	LevelError EventLevel = "error"
)

type Event struct {
	// CorrelationID is the request ID (X-Correlation-ID), empty outside of requests
	CorrelationID string `json:"correlation_id,omitempty"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "verify.failed", "record.save")
	Action string `json:"action"`

	Level   EventLevel `json:"level"`
	Message string     `json:"message,omitempty"`

	// Fields carries structured details. Bearer tokens never end up here.
	Fields map[string]any `json:"fields,omitempty"`
}

// EventSink receives diagnostic events from the verifier, the gate and the stores.
// Emit must not block the caller for long and must not fail the request.
type EventSink interface {
	Emit(event Event)
	Close() error
}
