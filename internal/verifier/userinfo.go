package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/busebalkan99/design-checklist-vercel/internal/audit"
	"github.com/busebalkan99/design-checklist-vercel/internal/buildinfo"
	"github.com/busebalkan99/design-checklist-vercel/internal/config"
	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

// maxUserInfoBody caps how much of the provider response is read.
const maxUserInfoBody = 1 << 20

// UserInfoOptions are the options of the "userinfo" verifier.
type UserInfoOptions struct {
	// URL of the userinfo resource. Defaults to the Google OAuth2 v2 endpoint.
	URL string `mapstructure:"url"`
}

// UserInfoVerifier verifies an access token by calling the provider's userinfo resource with it.
// A token is valid if the provider answers with a success status and a body containing
// both an "id" and an "email".
type UserInfoVerifier struct {
	name       string
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	sink       core.EventSink
}

type UserInfoOption func(*UserInfoVerifier)

// WithHTTPClient sets the client whose transport is used for provider calls.
func WithHTTPClient(c *http.Client) UserInfoOption {
	return func(v *UserInfoVerifier) {
		v.httpClient = c
	}
}

func NewUserInfo(name string, opts UserInfoOptions, timeout time.Duration, sink core.EventSink, options ...UserInfoOption) *UserInfoVerifier {
	endpoint := opts.URL
	if endpoint == "" {
		endpoint = config.DefaultUserInfoURL
	}
	if sink == nil {
		sink = audit.NewNoopSink()
	}
	v := &UserInfoVerifier{
		name:       name,
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: http.DefaultClient,
		sink:       sink,
	}
	for _, opt := range options {
		opt(v)
	}
	return v
}

func (u *UserInfoVerifier) Name() string {
	return u.name
}

type userInfoResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *UserInfoVerifier) Verify(ctx context.Context, token string) (identity *core.Identity, err error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, ErrEmptyToken)
	}

	start := time.Now()
	defer func() { observe(u.name, start, err) }()

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	// the oauth2 transport attaches "Authorization: Bearer <token>" to the request
	client := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, u.httpClient),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrVerificationFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		audit.Emit(ctx, u.sink, core.LevelError, "verify.transport_error",
			"token verification error", map[string]any{
				"verifier": u.name,
				"error":    err.Error(),
			})
		return nil, fmt.Errorf("%w: calling provider: %w", ErrVerificationFailed, err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		audit.Emit(ctx, u.sink, core.LevelWarn, "verify.rejected",
			fmt.Sprintf("provider API error: %s", resp.Status), map[string]any{
				"verifier": u.name,
				"status":   resp.StatusCode,
			})
		return nil, fmt.Errorf("%w: provider responded with status %d", ErrVerificationFailed, resp.StatusCode)
	}

	var info userInfoResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserInfoBody)).Decode(&info); err != nil {
		audit.Emit(ctx, u.sink, core.LevelError, "verify.malformed",
			"invalid user info from provider", map[string]any{
				"verifier": u.name,
				"error":    err.Error(),
			})
		return nil, fmt.Errorf("%w: decoding user info: %w", ErrVerificationFailed, err)
	}

	identity = &core.Identity{
		ID:       info.ID,
		Email:    info.Email,
		Verifier: u.name,
	}
	if !identity.Valid() {
		audit.Emit(ctx, u.sink, core.LevelError, "verify.malformed",
			"invalid user info from provider", map[string]any{
				"verifier":      u.name,
				"id_present":    info.ID != "",
				"email_present": info.Email != "",
			})
		return nil, fmt.Errorf("%w: user info is missing id or email", ErrVerificationFailed)
	}

	return identity, nil
}
