package core

import (
	"context"
	"encoding/json"
)

// Verifier is responsible for verifying bearer tokens against an identity provider.
// Implementations: Google userinfo, OIDC userinfo, static token map.
type Verifier interface {
	// Name returns the identifier of this verifier (as used in config).
	Name() string

	// Verify takes a raw bearer token, confirms it with the provider and returns the Identity.
	Verify(ctx context.Context, token string) (*Identity, error)
}

// RecordStore persists one Record per user.
type RecordStore interface {
	// Store creates or overwrites the record of userID.
	// Repeating the call with the same arguments must leave the same record behind.
	Store(ctx context.Context, userID string, payload json.RawMessage, timestamp string) error

	// Retrieve returns the most recent record of userID.
	// A missing record is not an error: Retrieve returns nil, nil.
	Retrieve(ctx context.Context, userID string) (*Record, error)

	// Close releases resources held by the store.
	Close() error
}
