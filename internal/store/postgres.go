package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

var _ core.RecordStore = (*PostgresRecordStore)(nil)

// max conns avail in a pgx pool
const defaultMaxConnections = 10

// PostgresOptions are the options of the "postgres" store.
type PostgresOptions struct {
	// DSN is a libpq connection string or postgres:// URL.
	DSN string `mapstructure:"dsn"`

	MaxConns int32 `mapstructure:"max_conns"`
}

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS records (
    user_id    TEXT PRIMARY KEY,
    payload    JSONB NOT NULL,
    timestamp  TEXT NOT NULL DEFAULT '',
    saved_at   TIMESTAMPTZ NOT NULL
)`

const upsertRecord = `
INSERT INTO records (user_id, payload, timestamp, saved_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE
SET payload = EXCLUDED.payload,
    timestamp = EXCLUDED.timestamp,
    saved_at = EXCLUDED.saved_at`

const selectRecord = `
SELECT user_id, payload, timestamp, saved_at
FROM records
WHERE user_id = $1`

// PostgresRecordStore keeps one row per user in the "records" table.
type PostgresRecordStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresRecordStore connects to postgres and creates the records table if needed.
func NewPostgresRecordStore(ctx context.Context, opts PostgresOptions) (*PostgresRecordStore, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("postgres store missing 'dsn'")
	}

	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	cfg.MaxConns = defaultMaxConnections
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createRecordsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating records table: %w", err)
	}

	return &PostgresRecordStore{
		pool: pool,
		now:  time.Now,
	}, nil
}

func (p *PostgresRecordStore) Store(ctx context.Context, userID string, payload json.RawMessage, timestamp string) error {
	if userID == "" {
		return fmt.Errorf("record: missing user_id")
	}
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	_, err := p.pool.Exec(ctx, upsertRecord, userID, []byte(payload), timestamp, p.now().UTC())
	if err != nil {
		return fmt.Errorf("upserting record: %w", err)
	}
	return nil
}

func (p *PostgresRecordStore) Retrieve(ctx context.Context, userID string) (*core.Record, error) {
	var (
		record  core.Record
		payload []byte
	)
	err := p.pool.QueryRow(ctx, selectRecord, userID).
		Scan(&record.UserID, &payload, &record.Timestamp, &record.SavedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting record: %w", err)
	}
	record.Payload = payload
	record.SavedAt = record.SavedAt.UTC()
	return &record, nil
}

func (p *PostgresRecordStore) Close() error {
	p.pool.Close()
	return nil
}
