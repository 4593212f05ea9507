package gate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/busebalkan99/design-checklist-vercel/internal/audit"
	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

const bearerPrefix = "Bearer "

const (
	opLoad = "load"
	opSave = "save"
)

// Gate authorizes load and save requests and forwards them to the record store.
// A request is authorized when the identity provider accepts its bearer token and
// the verified identity matches the user id the caller claims.
type Gate struct {
	verifier core.Verifier
	store    core.RecordStore
	sink     core.EventSink
	now      func() time.Time
}

type Option func(*Gate)

// WithClock overrides the clock used for server timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

func New(verifier core.Verifier, store core.RecordStore, sink core.EventSink, opts ...Option) *Gate {
	if sink == nil {
		sink = audit.NewNoopSink()
	}
	g := &Gate{
		verifier: verifier,
		store:    store,
		sink:     sink,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// bearerToken extracts the token following "Bearer ".
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	return header[len(bearerPrefix):], true
}

// Load returns the record of the claimed user.
// Token rejection and identity mismatch are both reported as KindUnauthenticated,
// so callers cannot tell which check failed.
func (g *Gate) Load(ctx context.Context, req LoadRequest) (res *LoadResult, err error) {
	defer func() {
		recordDecision(opLoad, err)
		g.denied(ctx, opLoad, err)
	}()

	if req.Method != http.MethodGet {
		return nil, errMethodNotAllowed(http.MethodGet)
	}

	token, ok := bearerToken(req.Authorization)
	if !ok {
		return nil, errMissingAuthHeader
	}

	if req.UserID == "" {
		return nil, errMissingUserID
	}

	identity, err := g.verifier.Verify(ctx, token)
	if err != nil {
		return nil, errLoadDenied(err)
	}
	if identity.ID != req.UserID {
		return nil, errLoadDenied(fmt.Errorf("verified identity does not match requested user"))
	}

	audit.Emit(ctx, g.sink, core.LevelInfo, "record.load", "load request", map[string]any{
		"email":   identity.Email,
		"user_id": req.UserID,
	})

	record, err := g.store.Retrieve(ctx, req.UserID)
	if err != nil {
		return nil, errLoadInternal(fmt.Errorf("retrieving record: %w", err))
	}

	return &LoadResult{
		UserID: req.UserID,
		Record: record,
	}, nil
}

// Save stores the payload of the claimed user.
// A rejected token is KindUnauthenticated, a valid token for another user is KindForbidden.
func (g *Gate) Save(ctx context.Context, req SaveRequest) (res *SaveResult, err error) {
	defer func() {
		recordDecision(opSave, err)
		g.denied(ctx, opSave, err)
	}()

	if req.Method != http.MethodPost {
		return nil, errMethodNotAllowed(http.MethodPost)
	}

	token, ok := bearerToken(req.Authorization)
	if !ok {
		return nil, errMissingAuthHeader
	}

	identity, err := g.verifier.Verify(ctx, token)
	if err != nil {
		return nil, errInvalidToken(err)
	}

	payload, err := decodeSavePayload(req)
	if err != nil {
		return nil, errSaveInternal(err)
	}

	userID, ok := jsonString(payload.UserID)
	if !ok || userID != identity.ID {
		return nil, errUserMismatch
	}

	timestamp := rawText(payload.Timestamp)
	data := compact(payload.Data)

	audit.Emit(ctx, g.sink, core.LevelInfo, "record.save", "save request", map[string]any{
		"email":       identity.Email,
		"user_email":  rawText(payload.UserEmail),
		"user_id":     userID,
		"timestamp":   timestamp,
		"data_length": len(data),
	})

	if err := g.store.Store(ctx, userID, data, timestamp); err != nil {
		return nil, errSaveInternal(fmt.Errorf("storing record: %w", err))
	}

	return &SaveResult{
		UserID:    userID,
		Timestamp: g.now().UTC(),
	}, nil
}

func (g *Gate) denied(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	var gateErr *Error
	if !errors.As(err, &gateErr) {
		return
	}
	level := core.LevelWarn
	if gateErr.Kind == KindInternal {
		level = core.LevelError
	}
	fields := map[string]any{
		"operation": op,
		"kind":      gateErr.Kind.String(),
		"status":    gateErr.Kind.Status(),
	}
	if gateErr.Wrapped != nil {
		fields["reason"] = gateErr.Wrapped.Error()
	}
	audit.Emit(ctx, g.sink, level, "request.denied", gateErr.Code, fields)
}

func decodeSavePayload(req SaveRequest) (*SavePayload, error) {
	if req.Body == nil {
		return nil, fmt.Errorf("missing request body")
	}
	var payload SavePayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding save payload: %w", err)
	}
	return &payload, nil
}

// jsonString reports whether raw is a JSON string and returns its value.
func jsonString(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawText turns a raw client value into its string form.
// JSON strings are unquoted, null is empty, anything else is kept as its JSON text.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// compact returns the serialized form of data, "null" when the client sent none.
func compact(data json.RawMessage) json.RawMessage {
	if len(data) == 0 {
		return json.RawMessage("null")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return data
	}
	return buf.Bytes()
}
