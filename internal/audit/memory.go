package audit

import (
	"sync"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

var _ core.EventSink = (*MemorySink)(nil)

// MemorySink keeps events in memory. Used by tests and by the "memory" audit type.
type MemorySink struct {
	mu      sync.Mutex
	entries []core.Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		entries: make([]core.Event, 0),
	}
}

func (m *MemorySink) Emit(event core.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, event)
}

// Recent returns up to limit of the latest events, oldest first.
func (m *MemorySink) Recent(limit int) []core.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	start := len(m.entries) - limit
	entries := make([]core.Event, limit)
	copy(entries, m.entries[start:])

	return entries
}

// Find returns the events matching filter, keeping at most the latest limit matches.
func (m *MemorySink) Find(filter func(event core.Event) bool, limit int) []core.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []core.Event
	for _, entry := range m.entries {
		if filter(entry) {
			matches = append(matches, entry)
		}
	}

	if len(matches) > limit {
		matches = matches[len(matches)-limit:]
	}

	return matches
}

// Actions returns the action of every recorded event in order.
func (m *MemorySink) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

func (m *MemorySink) Close() error {
	return nil // nothing to close :)
}
