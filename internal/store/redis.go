package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

var _ core.RecordStore = (*RedisRecordStore)(nil)

// RedisOptions are the options of the "redis" store.
type RedisOptions struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// RedisRecordStore keeps every record as a JSON document under "<prefix><userId>".
type RedisRecordStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisClient connects to redis and verifies the connection with a PING.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis store missing 'addr'")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// NewRedisRecordStore creates a Redis-backed record store.
func NewRedisRecordStore(client *redis.Client, prefix string) *RedisRecordStore {
	if prefix == "" {
		prefix = "record:"
	}
	return &RedisRecordStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (r *RedisRecordStore) key(userID string) string {
	return r.prefix + userID
}

func (r *RedisRecordStore) Store(ctx context.Context, userID string, payload json.RawMessage, timestamp string) error {
	if userID == "" {
		return fmt.Errorf("record: missing user_id")
	}

	data, err := json.Marshal(core.Record{
		UserID:    userID,
		Payload:   payload,
		Timestamp: timestamp,
		SavedAt:   r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("record: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(userID), data, 0).Err()
}

func (r *RedisRecordStore) Retrieve(ctx context.Context, userID string) (*core.Record, error) {
	val, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var record core.Record
	if err := json.Unmarshal(val, &record); err != nil {
		return nil, fmt.Errorf("record: failed to unmarshal: %w", err)
	}
	return &record, nil
}

func (r *RedisRecordStore) Close() error {
	return r.client.Close()
}
