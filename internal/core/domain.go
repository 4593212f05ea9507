package core

import (
	"encoding/json"
	"time"
)

// Identity is the verified identity of the caller.
// It is produced by a Verifier after the identity provider accepted the bearer token.
// Both fields are non-empty, otherwise the identity must not be used.
type Identity struct {
	// ID is the provider-scoped user identifier (e.g. the Google account id).
	ID string `json:"id"`

	// Email is the email address the provider returned for the account.
	Email string `json:"email"`

	// Verifier is the name of the verifier that produced this identity.
	Verifier string `json:"verifier,omitempty"`
}

// Valid reports whether the identity carries both an id and an email.
func (i *Identity) Valid() bool {
	return i != nil && i.ID != "" && i.Email != ""
}

// Record is the data blob saved for a single user.
type Record struct {
	// UserID is the unique key of the record.
	UserID string `json:"userId"`

	// Payload is the opaque JSON document supplied by the client.
	Payload json.RawMessage `json:"data"`

	// Timestamp is the client-supplied timestamp sent with the payload.
	Timestamp string `json:"timestamp"`

	// SavedAt is the server time the record was last written.
	SavedAt time.Time `json:"savedAt"`
}
