package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

var _ core.RecordStore = (*InMemoryRecordStore)(nil)

type InMemoryRecordStore struct {
	mu      sync.RWMutex
	records map[string]core.Record
	now     func() time.Time
}

func NewInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{
		records: make(map[string]core.Record),
		now:     time.Now,
	}
}

func (s *InMemoryRecordStore) Store(_ context.Context, userID string, payload json.RawMessage, timestamp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// copy, the caller may reuse the buffer
	data := make(json.RawMessage, len(payload))
	copy(data, payload)

	s.records[userID] = core.Record{
		UserID:    userID,
		Payload:   data,
		Timestamp: timestamp,
		SavedAt:   s.now().UTC(),
	}
	return nil
}

func (s *InMemoryRecordStore) Retrieve(_ context.Context, userID string) (*core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Len returns the number of stored records.
func (s *InMemoryRecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *InMemoryRecordStore) Close() error {
	return nil
}
