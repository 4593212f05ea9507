package store

import (
	"context"
	"encoding/json"

	"github.com/busebalkan99/design-checklist-vercel/internal/audit"
	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

var _ core.RecordStore = (*DiscardStore)(nil)

// DiscardStore accepts every write and drops it. Retrieve never finds a record.
type DiscardStore struct {
	sink core.EventSink
}

func NewDiscardStore(sink core.EventSink) *DiscardStore {
	if sink == nil {
		sink = audit.NewNoopSink()
	}
	return &DiscardStore{sink: sink}
}

func (d *DiscardStore) Store(ctx context.Context, userID string, payload json.RawMessage, timestamp string) error {
	audit.Emit(ctx, d.sink, core.LevelDebug, "store.discard", "payload discarded", map[string]any{
		"user_id":     userID,
		"timestamp":   timestamp,
		"data_length": len(payload),
	})
	return nil
}

func (d *DiscardStore) Retrieve(_ context.Context, _ string) (*core.Record, error) {
	return nil, nil
}

func (d *DiscardStore) Close() error {
	return nil
}
