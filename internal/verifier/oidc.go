package verifier

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/busebalkan99/design-checklist-vercel/internal/audit"
	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

// OIDCOptions are the options of the "oidc" verifier.
type OIDCOptions struct {
	// IssuerURL is used for discovery of the userinfo endpoint.
	IssuerURL string `mapstructure:"issuer_url"`
}

// OIDCVerifier verifies access tokens against the standard OIDC userinfo endpoint
// of a discovered provider. The "sub" claim becomes the identity id.
type OIDCVerifier struct {
	name     string
	provider *oidc.Provider
	timeout  time.Duration
	sink     core.EventSink
}

func NewOIDC(ctx context.Context, name string, opts OIDCOptions, timeout time.Duration, sink core.EventSink) (*OIDCVerifier, error) {
	if opts.IssuerURL == "" {
		return nil, fmt.Errorf("oidc verifier '%s' missing 'issuer_url'", name)
	}
	if sink == nil {
		sink = audit.NewNoopSink()
	}

	provider, err := oidc.NewProvider(ctx, opts.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("creating oidc provider for verifier '%s': %w", name, err)
	}

	return &OIDCVerifier{
		name:     name,
		provider: provider,
		timeout:  timeout,
		sink:     sink,
	}, nil
}

func (o *OIDCVerifier) Name() string {
	return o.name
}

func (o *OIDCVerifier) Verify(ctx context.Context, token string) (identity *core.Identity, err error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, ErrEmptyToken)
	}

	start := time.Now()
	defer func() { observe(o.name, start, err) }()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	info, err := o.provider.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	if err != nil {
		audit.Emit(ctx, o.sink, core.LevelWarn, "verify.rejected",
			"oidc userinfo request failed", map[string]any{
				"verifier": o.name,
				"error":    err.Error(),
			})
		return nil, fmt.Errorf("%w: oidc userinfo: %w", ErrVerificationFailed, err)
	}

	identity = &core.Identity{
		ID:       info.Subject,
		Email:    info.Email,
		Verifier: o.name,
	}
	if !identity.Valid() {
		audit.Emit(ctx, o.sink, core.LevelError, "verify.malformed",
			"invalid user info from provider", map[string]any{
				"verifier":      o.name,
				"id_present":    info.Subject != "",
				"email_present": info.Email != "",
			})
		return nil, fmt.Errorf("%w: user info is missing sub or email", ErrVerificationFailed)
	}
	return identity, nil
}
