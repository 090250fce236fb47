package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-ops/internal/api/http/handlers"
	"github.com/spec-kit/community-ops/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Applications   *handlers.ApplicationsHandler
	Tickets        *handlers.TicketsHandler
	Duty           *handlers.DutyHandler
	Reports        *handlers.ReportsHandler
	Guilds         *handlers.GuildsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Post("/applications", cfg.Applications.Submit)
	protected.Get("/applications/latest", cfg.Applications.Latest)
	protected.Post("/applications/:id/decision", cfg.Applications.Decide)

	protected.Post("/tickets", cfg.Tickets.Open)
	protected.Post("/tickets/close", cfg.Tickets.Close)
	protected.Post("/tickets/:id/done", cfg.Tickets.SetDone)

	protected.Post("/duty/clock-in", cfg.Duty.ClockIn)
	protected.Post("/duty/clock-out", cfg.Duty.ClockOut)
	protected.Get("/duty/open", cfg.Duty.Open)
	protected.Get("/duty/open/:userID", cfg.Duty.OpenForUser)
	protected.Get("/duty/board", cfg.Duty.Board)

	protected.Get("/reports/user/:userID", cfg.Reports.UserReport)
	protected.Get("/reports/leaderboard", cfg.Reports.Leaderboard)

	protected.Get("/guilds/:guildID/config", cfg.Guilds.Get)
	protected.Put("/guilds/:guildID/config", cfg.Guilds.Put)
}
