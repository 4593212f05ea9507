package gate

import (
	"encoding/json"
	"io"
	"time"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

type LoadRequest struct {
	// Method is the HTTP method of the request.
	Method string

	// Authorization is the raw Authorization header value.
	Authorization string

	// UserID is the claimed user id from the "userId" query parameter.
	UserID string
}

type LoadResult struct {
	UserID string

	// Record is nil when nothing was saved for the user yet.
	Record *core.Record
}

type SaveRequest struct {
	// Method is the HTTP method of the request.
	Method string

	// Authorization is the raw Authorization header value.
	Authorization string

	// Body is the JSON request body, decoded into a SavePayload.
	Body io.Reader
}

// SavePayload is the body of a save request.
// Fields are kept raw so a value of an unexpected JSON type does not fail decoding.
type SavePayload struct {
	// UserID only matches an identity when it is a JSON string.
	UserID    json.RawMessage `json:"userId"`
	UserEmail json.RawMessage `json:"userEmail"`
	Data      json.RawMessage `json:"data"`

	// Timestamp is whatever the client sent. It is stored and logged, never echoed.
	Timestamp json.RawMessage `json:"timestamp"`
}

type SaveResult struct {
	UserID string

	// Timestamp is generated by the server when the save was accepted.
	Timestamp time.Time
}
