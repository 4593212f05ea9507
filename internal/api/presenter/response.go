package presenter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/busebalkan99/design-checklist-vercel/internal/audit"
	"github.com/busebalkan99/design-checklist-vercel/internal/gate"
)

// TimestampFormat is the ISO-8601 layout used for server timestamps (millisecond precision, UTC).
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Envelope is the common shape of every data endpoint response.
type Envelope struct {
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	Message       string `json:"message"`
	UserID        string `json:"userId,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// LoadEnvelope is returned by a successful load. Data and Timestamp are null when nothing was saved.
type LoadEnvelope struct {
	Envelope
	Data      json.RawMessage `json:"data"`
	Timestamp *string         `json:"timestamp"`
}

// SaveEnvelope is returned by a successful save. Timestamp is generated by the server.
type SaveEnvelope struct {
	Envelope
	Timestamp string `json:"timestamp"`
}

func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write json response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, code, msg string, status int) {
	JSON(w, r, Envelope{
		Success:       false,
		Error:         code,
		Message:       msg,
		CorrelationID: audit.CorrelationID(r.Context()),
	}, status)
}

// Err writes the failure envelope for err. Gate errors keep their kind,
// anything else is reported as an internal error without details.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	var gateErr *gate.Error
	if errors.As(err, &gateErr) {
		Error(w, r, gateErr.Code, gateErr.Message, gateErr.Kind.Status())
		return
	}
	Error(w, r, "Internal server error", "An unexpected error occurred", http.StatusInternalServerError)
}

// Success builds the success part of an envelope.
func Success(r *http.Request, msg, userID string) Envelope {
	return Envelope{
		Success:       true,
		Message:       msg,
		UserID:        userID,
		CorrelationID: audit.CorrelationID(r.Context()),
	}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
