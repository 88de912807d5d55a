package main

import (
	"context"
	"log/slog"
	"os"

	"tastelocal/config"
	"tastelocal/internal/delivery"
	"tastelocal/internal/delivery/http"
	"tastelocal/internal/delivery/http/middleware"
	"tastelocal/internal/delivery/http/router/handler"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/infra/auth"
	"tastelocal/internal/infra/blob"
	"tastelocal/internal/infra/firebase"
	"tastelocal/internal/infra/geo"
	logs "tastelocal/internal/infra/log"
	"tastelocal/internal/infra/metrics"
	"tastelocal/internal/infra/persistence"
	"tastelocal/internal/infra/pubsub"
	"tastelocal/internal/infra/qrcode"
	"tastelocal/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		persistence.Module,
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firebase.NewApp,
		fx.Annotate(
			metrics.NewRegistry,
			fx.As(new(prometheus.Registerer)),
			fx.As(new(prometheus.Gatherer)),
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewIdentityVerifier,
			blob.New,
			pubsub.NewEventPublisher,
			geo.NewDistanceCalculator,
			newQRCodeService,
			fx.Annotate(
				metrics.NewSyncMetrics,
				fx.As(new(service.SyncMetrics)),
			),
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewStoreRegistry,
			impl.NewProfileService,
			impl.NewDashboardService,
			impl.NewDiscoveryService,
			impl.NewMediaService,
			impl.NewOrderService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewDiscoveryHandler,
			handler.NewProfileHandler,
			handler.NewDashboardHandler,
			handler.NewMediaHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
