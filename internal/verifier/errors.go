package verifier

import "errors"

// ErrVerificationFailed is wrapped by every error a verifier returns.
// Callers treat it as "no identity", whatever the underlying reason was.
var ErrVerificationFailed = errors.New("token verification failed")

// ErrEmptyToken is returned without contacting the provider.
var ErrEmptyToken = errors.New("empty bearer token")
