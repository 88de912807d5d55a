// Package auth verifies identity provider tokens.
package auth

import (
	"context"
	"log/slog"
	"strings"

	"tastelocal/config"
	"tastelocal/internal/domain/constants"
	"tastelocal/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type firebaseVerifier struct {
	client *firebaseauth.Client
}

// NewFirebaseVerifier verifies Firebase Authentication ID tokens.
func NewFirebaseVerifier(app *firebase.App) (service.IdentityVerifier, error) {
	client, err := app.Auth(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &firebaseVerifier{client: client}, nil
}

// VerifyIDToken checks the signature, expiry and revocation state of the token.
func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.Identity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ID token")
	}

	return identityFromClaims(token.UID, token.Claims), nil
}

func identityFromClaims(uid string, claims map[string]any) *service.Identity {
	identity := &service.Identity{UserID: uid}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}

	return identity
}

// developmentVerifier trusts tokens of the form "<uid>" or "<uid>|<email>".
// It only exists for local runs without Firebase credentials.
type developmentVerifier struct{}

func (developmentVerifier) VerifyIDToken(_ context.Context, idToken string) (*service.Identity, error) {
	uid, email, _ := strings.Cut(strings.TrimSpace(idToken), "|")
	if uid == "" {
		return nil, errors.New("empty development token")
	}

	return &service.Identity{UserID: uid, Email: email, EmailVerified: email != ""}, nil
}

// VerifierParams holds dependencies for the identity verifier, injected by Fx
type VerifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	App    *firebase.App
}

// NewIdentityVerifier picks the Firebase verifier, or the development verifier
// when running locally without credentials.
func NewIdentityVerifier(params VerifierParams) (service.IdentityVerifier, error) {
	cfg := params.Config
	if cfg.Env.Env == constants.EnvDevelop && (cfg.Firebase == nil || cfg.Firebase.CredentialsPath == "") {
		params.Logger.Warn("Using development identity verifier, tokens are not checked")

		return developmentVerifier{}, nil
	}

	return NewFirebaseVerifier(params.App)
}
