package auth

import (
	"context"
	"crypto/rsa"
	"time"
)

// NewTestJWKS builds a JWKS holding fixed keys and no refresh loop.
// Unknown kids fail instead of hitting the network.
func NewTestJWKS(keys map[string]*rsa.PublicKey) *JWKS {
	return &JWKS{
		keys:     keys,
		minRetry: time.Hour,
		lastLoad: time.Now(),
	}
}

// ContextWithPrincipal adds a principal to the context for testing purposes
// This is exported to allow other packages to create test contexts
func ContextWithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}
