package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busebalkan99/design-checklist-vercel/internal/api/middleware"
	"github.com/busebalkan99/design-checklist-vercel/internal/audit"
	"github.com/busebalkan99/design-checklist-vercel/internal/core"
	"github.com/busebalkan99/design-checklist-vercel/internal/gate"
	"github.com/busebalkan99/design-checklist-vercel/internal/store"
	"github.com/busebalkan99/design-checklist-vercel/internal/verifier"
)

// fakeProvider answers userinfo requests for a fixed set of tokens.
func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()
	users := map[string]string{
		"Bearer T1": `{"id":"U1","email":"a@x.com"}`,
		"Bearer T9": `{"id":"U9","email":"z@x.com"}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := users[r.Header.Get("Authorization")]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_token"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testEnv struct {
	handler http.Handler
	store   *store.InMemoryRecordStore
}

func newTestEnv(t *testing.T, providerURL string) *testEnv {
	t.Helper()
	sink := audit.NewMemorySink()
	v := verifier.NewUserInfo("google", verifier.UserInfoOptions{URL: providerURL}, time.Second, sink)
	s := store.NewInMemoryRecordStore()
	return &testEnv{
		handler: NewServer(gate.New(v, s, sink)).Routes(),
		store:   s,
	}
}

func (e *testEnv) do(t *testing.T, method, target, auth, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	}
	return rec, envelope
}

const saveBody = `{"userId":"U1","userEmail":"a@x.com","data":{"k":1},"timestamp":"2024-01-01T00:00:00Z"}`

func TestLoad_NewUser(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, body := env.do(t, http.MethodGet, LoadRoute+"?userId=U1", "Bearer T1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "U1", body["userId"])
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])
	assert.Contains(t, body, "timestamp")
	assert.Nil(t, body["timestamp"])
	assert.Equal(t, msgNoSavedData, body["message"])
}

func TestLoad_IdentityMismatchIsUnauthenticated(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, body := env.do(t, http.MethodGet, LoadRoute+"?userId=U2", "Bearer T1", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid token or user mismatch", body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestSave_Success(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, body := env.do(t, http.MethodPost, SaveRoute, "Bearer T1", saveBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "U1", body["userId"])
	assert.Equal(t, msgSaved, body["message"])

	ts, ok := body["timestamp"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "2024-01-01T00:00:00Z", ts)
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
	assert.NotContains(t, body, "data")
}

func TestSave_IdentityMismatchIsForbidden(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, body := env.do(t, http.MethodPost, SaveRoute, "Bearer T9", saveBody)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User ID mismatch", body["error"])
	assert.Zero(t, env.store.Len())
}

func TestSave_ThenLoad(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, _ := env.do(t, http.MethodPost, SaveRoute, "Bearer T1", saveBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := env.do(t, http.MethodGet, LoadRoute+"?userId=U1", "Bearer T1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"k": float64(1)}, body["data"])
	assert.Equal(t, "2024-01-01T00:00:00Z", body["timestamp"])
	assert.Equal(t, msgLoaded, body["message"])
}

func TestLoad_MissingClientTimestampIsNull(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, _ := env.do(t, http.MethodPost, SaveRoute, "Bearer T1", `{"userId":"U1","data":{"k":1}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := env.do(t, http.MethodGet, LoadRoute+"?userId=U1", "Bearer T1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, msgLoaded, body["message"])
	require.Contains(t, body, "timestamp")
	assert.Nil(t, body["timestamp"])
}

func TestSave_UnexpectedFieldTypes(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, body := env.do(t, http.MethodPost, SaveRoute, "Bearer T1",
		`{"userId":"U1","userEmail":42,"data":{"k":1},"timestamp":"2024-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, msgSaved, body["message"])

	rec, body = env.do(t, http.MethodPost, SaveRoute, "Bearer T1", `{"userId":123,"data":{"k":1}}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User ID mismatch", body["error"])
	assert.Equal(t, 1, env.store.Len())
}

func TestSave_RepeatedCallsKeepShape(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	var first map[string]any
	for i := 0; i < 3; i++ {
		rec, body := env.do(t, http.MethodPost, SaveRoute, "Bearer T1", saveBody)
		require.Equal(t, http.StatusOK, rec.Code)
		if first == nil {
			first = body
			continue
		}
		assert.Equal(t, len(first), len(body))
		for key := range first {
			assert.Contains(t, body, key)
		}
		assert.Equal(t, first["userId"], body["userId"])
		assert.Equal(t, first["success"], body["success"])
	}
	assert.Equal(t, 1, env.store.Len())
}

func TestMissingAuthorization(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	tests := []struct {
		name   string
		method string
		target string
		auth   string
		body   string
	}{
		{"Load Without Header", http.MethodGet, LoadRoute + "?userId=U1", "", ""},
		{"Load With Basic Auth", http.MethodGet, LoadRoute + "?userId=U1", "Basic abc", ""},
		{"Save Without Header", http.MethodPost, SaveRoute, "", saveBody},
		{"Save With Bare Token", http.MethodPost, SaveRoute, "T1", saveBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(t, tt.method, tt.target, tt.auth, tt.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Missing or invalid authorization header", body["error"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestRejectedToken(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, _ := env.do(t, http.MethodGet, LoadRoute+"?userId=U1", "Bearer expired", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := env.do(t, http.MethodPost, SaveRoute, "Bearer expired", saveBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid Google token", body["error"])
}

func TestProviderTransportErrorIsUnauthenticated(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := provider.URL
	provider.Close()

	env := newTestEnv(t, url)

	rec, _ := env.do(t, http.MethodGet, LoadRoute+"?userId=U1", "Bearer T1", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(t, http.MethodPost, SaveRoute, "Bearer T1", saveBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMissingUserIDIsBadRequest(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, body := env.do(t, http.MethodGet, LoadRoute, "Bearer T1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing userId parameter", body["error"])
}

func TestMalformedSaveBodyIsInternal(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, body := env.do(t, http.MethodPost, SaveRoute, "Bearer T1", `{"userId":`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "unexpected EOF")
}

func TestWrongMethod(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, body := env.do(t, http.MethodPost, LoadRoute+"?userId=U1", "Bearer T1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "This endpoint only accepts GET requests", body["message"])

	rec, body = env.do(t, http.MethodGet, SaveRoute, "Bearer T1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "This endpoint only accepts POST requests", body["message"])
}

func TestPreflight(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	tests := []struct {
		route   string
		methods string
	}{
		{LoadRoute, "GET, OPTIONS"},
		{SaveRoute, "POST, OPTIONS"},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, tt.route, nil)
			req.Header.Set("Origin", "https://example.com")
			req.Header.Set("Access-Control-Request-Method", "DELETE")
			req.Header.Set("Authorization", "garbage")
			rec := httptest.NewRecorder()
			env.handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Zero(t, rec.Body.Len())
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.methods, rec.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}

func TestCORSHeadersOnFailures(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	rec, _ := env.do(t, http.MethodGet, LoadRoute, "", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorrelationID(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	req := httptest.NewRequest(http.MethodGet, LoadRoute+"?userId=U2", nil)
	req.Header.Set("Authorization", "Bearer T1")
	req.Header.Set(middleware.CorrelationIDHeader, "req-123")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(middleware.CorrelationIDHeader))
	assert.Contains(t, rec.Body.String(), `"correlation_id":"req-123"`)

	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthCheckRoute, nil))
	assert.NotEmpty(t, rec.Header().Get(middleware.CorrelationIDHeader))
}

func TestPublicRoutes(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t).URL)

	req := httptest.NewRequest(http.MethodGet, HealthCheckRoute, nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec, body := env.do(t, http.MethodGet, AboutRoute, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["version"])

	req = httptest.NewRequest(http.MethodGet, MetricsRoute, nil)
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type panickingVerifier struct{}

func (panickingVerifier) Name() string { return "panicking" }

func (panickingVerifier) Verify(context.Context, string) (*core.Identity, error) {
	panic("provider client blew up")
}

func TestPanicEnvelopeIsCorrelated(t *testing.T) {
	s := store.NewInMemoryRecordStore()
	handler := NewServer(gate.New(panickingVerifier{}, s, nil)).Routes()

	req := httptest.NewRequest(http.MethodGet, LoadRoute+"?userId=U1", nil)
	req.Header.Set("Authorization", "Bearer T1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, rec.Body.String(), "blew up")
	id := rec.Header().Get(middleware.CorrelationIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, body["correlation_id"])
}
