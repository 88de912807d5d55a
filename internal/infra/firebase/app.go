// Package firebase builds the Firebase app shared by Firestore, Auth and Cloud Messaging.
package firebase

import (
	"context"

	"tastelocal/config"
	"tastelocal/internal/domain/constants"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// NewApp initialises the Firebase app. Without a credentials path the
// application default credentials are used, except in develop.
func NewApp(cfg *config.Config) (*firebase.App, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase configuration is required")
	}

	var opts []option.ClientOption
	switch {
	case cfg.Firebase.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	case cfg.Env.Env == constants.EnvDevelop:
		// Local runs use the development verifier and no FCM, so nothing signs requests
		opts = append(opts, option.WithoutAuthentication())
	}

	app, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID: cfg.Firebase.ProjectID,
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	return app, nil
}
