package notification

import (
	"log/slog"

	"tastelocal/config"
	"tastelocal/internal/domain/constants"
	"tastelocal/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/fx"
)

// Params holds dependencies for the notification service, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	App    *firebase.App
}

// NewNotificationService returns the FCM service, or a logging no-op when
// running locally without Firebase credentials.
func NewNotificationService(params Params) (service.NotificationService, error) {
	cfg := params.Config
	if cfg.Env.Env == constants.EnvDevelop && (cfg.Firebase == nil || cfg.Firebase.CredentialsPath == "") {
		params.Logger.Info("Firebase credentials not configured, push notifications disabled")

		return NewNoopService(params.Logger), nil
	}

	return NewFirebaseService(params.App)
}
