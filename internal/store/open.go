package store

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/busebalkan99/design-checklist-vercel/internal/config"
	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

// Open creates the record store described by cfg.
func Open(ctx context.Context, cfg config.StoreConfig, sink core.EventSink) (core.RecordStore, error) {
	switch cfg.Type {
	case config.StoreMemory, "":
		return NewInMemoryRecordStore(), nil
	case config.StoreDiscard:
		return NewDiscardStore(sink), nil
	case config.StoreRedis:
		var opts RedisOptions
		if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
			return nil, fmt.Errorf("decoding redis store options: %w", err)
		}
		client, err := NewRedisClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		return NewRedisRecordStore(client, opts.Prefix), nil
	case config.StorePostgres:
		var opts PostgresOptions
		if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
			return nil, fmt.Errorf("decoding postgres store options: %w", err)
		}
		return NewPostgresRecordStore(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}
