package static

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"bodycomp-notion/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("static token not configured")
)

const subject = "ingest"

// Verifier implementa auth.AuthVerifier comparando contra un token fijo (INGEST_TOKEN).
type Verifier struct {
	token []byte
}

func NewVerifier(token string) (*Verifier, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotConfigured
	}
	return &Verifier{token: []byte(token)}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.token) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrTokenEmpty
	}
	if subtle.ConstantTimeCompare([]byte(token), v.token) != 1 {
		return auth.Claims{}, auth.ErrTokenInvalid
	}
	return auth.Claims{Subject: subject}, nil
}
