package verifier

import (
	"context"
	"fmt"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

// StaticOptions are the options of the "static" verifier.
type StaticOptions struct {
	// Tokens maps a bearer token to the identity it verifies to.
	Tokens map[string]StaticIdentity `mapstructure:"tokens"`
}

type StaticIdentity struct {
	ID    string `mapstructure:"id"`
	Email string `mapstructure:"email"`
}

// StaticVerifier accepts a fixed set of tokens. Meant for local development and tests.
type StaticVerifier struct {
	name   string
	tokens map[string]core.Identity
}

func NewStatic(name string, opts StaticOptions) *StaticVerifier {
	tokens := make(map[string]core.Identity, len(opts.Tokens))
	for token, ident := range opts.Tokens {
		tokens[token] = core.Identity{ID: ident.ID, Email: ident.Email, Verifier: name}
	}
	return &StaticVerifier{
		name:   name,
		tokens: tokens,
	}
}

func (s *StaticVerifier) Name() string {
	return s.name
}

func (s *StaticVerifier) Verify(_ context.Context, token string) (*core.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, ErrEmptyToken)
	}
	ident, ok := s.tokens[token]
	if !ok || !ident.Valid() {
		return nil, fmt.Errorf("%w: unknown token", ErrVerificationFailed)
	}
	return &ident, nil
}
