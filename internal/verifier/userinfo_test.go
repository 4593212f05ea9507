package verifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busebalkan99/design-checklist-vercel/internal/audit"
)

func newProvider(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestUserInfoVerifier_Verify(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantID     string
		wantEmail  string
		wantErr    bool
		wantAction string
	}{
		{
			name:      "Valid Token",
			status:    http.StatusOK,
			body:      `{"id":"U1","email":"a@x.com","verified_email":true}`,
			wantID:    "U1",
			wantEmail: "a@x.com",
		},
		{
			name:       "Provider Rejects Token",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"code":401}}`,
			wantErr:    true,
			wantAction: "verify.rejected",
		},
		{
			name:       "Missing Email",
			status:     http.StatusOK,
			body:       `{"id":"U1"}`,
			wantErr:    true,
			wantAction: "verify.malformed",
		},
		{
			name:       "Missing ID",
			status:     http.StatusOK,
			body:       `{"email":"a@x.com"}`,
			wantErr:    true,
			wantAction: "verify.malformed",
		},
		{
			name:       "Malformed Body",
			status:     http.StatusOK,
			body:       `not json`,
			wantErr:    true,
			wantAction: "verify.malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth, gotAccept string
			srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotAccept = r.Header.Get("Accept")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			sink := audit.NewMemorySink()
			v := NewUserInfo("google", UserInfoOptions{URL: srv.URL}, time.Second, sink)

			ident, err := v.Verify(context.Background(), "T1")

			assert.Equal(t, "Bearer T1", gotAuth)
			assert.Equal(t, "application/json", gotAccept)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrVerificationFailed))
				assert.Nil(t, ident)
				assert.Contains(t, sink.Actions(), tt.wantAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, ident.ID)
			assert.Equal(t, tt.wantEmail, ident.Email)
			assert.Equal(t, "google", ident.Verifier)
		})
	}
}

func TestUserInfoVerifier_EmptyTokenSkipsProvider(t *testing.T) {
	var calls atomic.Int32
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	v := NewUserInfo("google", UserInfoOptions{URL: srv.URL}, time.Second, nil)
	_, err := v.Verify(context.Background(), "")

	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.ErrorIs(t, err, ErrEmptyToken)
	assert.Zero(t, calls.Load())
}

func TestUserInfoVerifier_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sink := audit.NewMemorySink()
	v := NewUserInfo("google", UserInfoOptions{URL: url}, time.Second, sink)
	ident, err := v.Verify(context.Background(), "T1")

	assert.Nil(t, ident)
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.Equal(t, []string{"verify.transport_error"}, sink.Actions())
}

func TestUserInfoVerifier_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	v := NewUserInfo("google", UserInfoOptions{URL: srv.URL}, 50*time.Millisecond, nil)

	start := time.Now()
	_, err := v.Verify(context.Background(), "T1")

	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestUserInfoVerifier_NeverEmitsToken(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	sink := audit.NewMemorySink()
	v := NewUserInfo("google", UserInfoOptions{URL: srv.URL}, time.Second, sink)
	_, _ = v.Verify(context.Background(), "super-secret-token")

	for _, ev := range sink.Recent(100) {
		assert.NotContains(t, ev.Message, "super-secret-token")
		for _, val := range ev.Fields {
			if s, ok := val.(string); ok {
				assert.False(t, strings.Contains(s, "super-secret-token"))
			}
		}
	}
}
