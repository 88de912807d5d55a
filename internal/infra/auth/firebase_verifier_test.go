package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromClaims(t *testing.T) {
	identity := identityFromClaims("uid-1", map[string]any{
		"email":          "owner@kota.example",
		"name":           "Lerato",
		"email_verified": true,
	})

	assert.Equal(t, "uid-1", identity.UserID)
	assert.Equal(t, "owner@kota.example", identity.Email)
	assert.Equal(t, "Lerato", identity.Name)
	assert.True(t, identity.EmailVerified)

	bare := identityFromClaims("uid-2", map[string]any{"email_verified": "yes"})
	assert.Empty(t, bare.Email)
	assert.False(t, bare.EmailVerified)
}

func TestDevelopmentVerifier(t *testing.T) {
	v := developmentVerifier{}

	identity, err := v.VerifyIDToken(context.Background(), "uid-1|owner@kota.example")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", identity.UserID)
	assert.True(t, identity.EmailVerified)

	identity, err = v.VerifyIDToken(context.Background(), "uid-2")
	require.NoError(t, err)
	assert.False(t, identity.EmailVerified)

	_, err = v.VerifyIDToken(context.Background(), " ")
	assert.Error(t, err)
}
