// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tastelocal/config"
	"tastelocal/internal/delivery/http/middleware"
	"tastelocal/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Cfg              *config.Config
	Gatherer         prometheus.Gatherer `optional:"true"`
	DiscoveryHandler *handler.DiscoveryHandler
	ProfileHandler   *handler.ProfileHandler
	DashboardHandler *handler.DashboardHandler
	MediaHandler     *handler.MediaHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg              *config.Config
	gatherer         prometheus.Gatherer
	discoveryHandler *handler.DiscoveryHandler
	profileHandler   *handler.ProfileHandler
	dashboardHandler *handler.DashboardHandler
	mediaHandler     *handler.MediaHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:              params.Cfg,
		gatherer:         params.Gatherer,
		discoveryHandler: params.DiscoveryHandler,
		profileHandler:   params.ProfileHandler,
		dashboardHandler: params.DashboardHandler,
		mediaHandler:     params.MediaHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.cfg.Metrics.Enabled && r.gatherer != nil {
		e.GET(r.cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	// Consumer discovery, no sign-in needed
	businessGroup := e.Group("/businesses")
	{
		businessGroup.GET("", r.discoveryHandler.ListBusinesses)
		businessGroup.GET("/:id", r.discoveryHandler.GetBusiness)
		businessGroup.GET("/:id/qrcode", r.discoveryHandler.GetQRCode)
		businessGroup.POST("/:id/orders", r.discoveryHandler.PlaceOrder)
	}

	authGroup := e.Group("/auth")
	authGroup.Use(r.authMiddleware.Authenticate)
	{
		authGroup.POST("/register", r.profileHandler.Register)
	}

	meGroup := e.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.profileHandler.GetProfile)
		meGroup.PATCH("", r.profileHandler.UpdateProfile)
		meGroup.POST("/avatar", r.profileHandler.UpdateAvatar)
		meGroup.POST("/email-verification/sync", r.profileHandler.SyncEmailVerification)
	}

	dashboardGroup := e.Group("/dashboard")
	dashboardGroup.Use(r.authMiddleware.Authenticate)        // First, check if signed in
	dashboardGroup.Use(r.authMiddleware.RequireBusinessOwner) // Then, bind the owned business
	{
		dashboardGroup.GET("", r.dashboardHandler.GetDashboard)
		dashboardGroup.GET("/stream", r.dashboardHandler.Stream)
		dashboardGroup.PATCH("/profile", r.dashboardHandler.UpdateProfile)

		dashboardGroup.POST("/menu", r.dashboardHandler.AddMenuItem)
		dashboardGroup.PATCH("/menu/:itemId", r.dashboardHandler.UpdateMenuItem)
		dashboardGroup.DELETE("/menu/:itemId", r.dashboardHandler.DeleteMenuItem)

		dashboardGroup.PATCH("/orders/:orderId/status", r.dashboardHandler.UpdateOrderStatus)
		dashboardGroup.PUT("/hours", r.dashboardHandler.UpdateHours)

		dashboardGroup.GET("/notifications/unread", r.dashboardHandler.UnreadNotifications)
		dashboardGroup.POST("/notifications", r.dashboardHandler.AddNotification)
		dashboardGroup.POST("/notifications/:id/read", r.dashboardHandler.MarkNotificationRead)

		dashboardGroup.POST("/media", r.mediaHandler.AddMedia)
		dashboardGroup.DELETE("/media/:mediaId", r.mediaHandler.DeleteMedia)
		dashboardGroup.POST("/uploads", r.mediaHandler.UploadImage)

		dashboardGroup.POST("/blog", r.dashboardHandler.AddBlogPost)
		dashboardGroup.PATCH("/blog/:postId", r.dashboardHandler.UpdateBlogPost)
		dashboardGroup.DELETE("/blog/:postId", r.dashboardHandler.DeleteBlogPost)
	}
}
