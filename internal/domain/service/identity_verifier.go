package service

import (
	"context"
)

// Identity is what the identity provider vouches for after verifying a token.
type Identity struct {
	UserID        string
	Email         string
	Name          string
	EmailVerified bool
}

// IdentityVerifier checks ID tokens issued by the identity provider.
type IdentityVerifier interface {
	// VerifyIDToken verifies the token and returns the identity it was issued to
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}
