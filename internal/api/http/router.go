package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/QuiambaoMichael/safetap-backend/internal/api/http/handlers"
	"github.com/QuiambaoMichael/safetap-backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Concerns       *handlers.ConcernsHandler
	Stream         *handlers.StreamHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/signup", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)

	concerns := api.Group("/concerns", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	concerns.Post("/", cfg.Concerns.Submit)
	concerns.Get("/", cfg.Concerns.List)
	concerns.Get("/:id", cfg.Concerns.Get)
	concerns.Patch("/:id/resolve", auth.RequireStaff(), cfg.Concerns.Resolve)

	app.Get("/ws/concerns",
		cfg.Stream.Upgrade,
		cfg.AuthMiddleware.TokenQueryAuth,
		websocket.New(cfg.Stream.Stream))
}
