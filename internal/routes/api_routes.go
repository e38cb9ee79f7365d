package routes

import (
	"cargo-charter/charterdesk/internal/api"
	"cargo-charter/charterdesk/internal/metrics"
	"cargo-charter/charterdesk/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, deps *api.Dependencies, jobsHandler *api.JobsHandler) {

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.RateLimitMiddleware)
		v1.Use(middleware.AuthMiddleware(&deps.Repo.Keys)) // global: all routes need an active API key

		// Operator resolution and classification
		v1.Get("/operators/search", api.OperatorSearchHandler(deps.Services.Operators, deps.Services.Chat, metricsReg))
		v1.Get("/operators/{operator}/routes", api.OperatorRoutesHandler(deps.Services.Movements, deps.Services.Chat, metricsReg))
		v1.Get("/operators/{operator}/fleet", api.OperatorFleetHandler(deps.Services.Operators, deps.Services.Chat, metricsReg))
		v1.Get("/operators/{operator}/profile", api.OperatorProfileHandler(deps.Services.Profile, deps.Services.Chat, metricsReg))
		v1.Get("/operators/{operator}/origins", api.OperatorOriginsHandler(deps.Services.Movements, deps.Services.Chat, metricsReg))

		// Movement lookups by endpoint airport
		v1.Get("/destinations/operators", api.DestinationOperatorsHandler(deps.Services.Movements, deps.Services.Chat, metricsReg))
		v1.Get("/origins/operators", api.OriginOperatorsHandler(deps.Services.Movements, deps.Services.Chat, metricsReg))
		v1.Get("/routes/details", api.RouteDetailsHandler(deps.Services.Movements, deps.Services.Chat, metricsReg))

		// Classification audit over a registration prefix
		v1.Get("/fleet/review", api.FleetReviewHandler(deps.Services.Operators, deps.Services.Chat, metricsReg))

		// Continuation redemption for paged chat responses
		v1.Get("/chat/continue", api.ChatContinueHandler(deps.Services.Chat, metricsReg))

		// Admin-only group
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.IsAdminMiddleware())

			// Reference data management
			admin.Post("/admin/data/sync-geography", jobsHandler.TriggerGeographySync())
			admin.Get("/admin/data/geography-status", jobsHandler.GeographyStatus())

			// Background jobs management
			admin.Get("/admin/jobs/status", jobsHandler.GetJobStatus())

			// Runtime configuration
			admin.Get("/admin/config", api.GetAppConfigHandler(deps.Services.Config))
			admin.Post("/admin/config", api.SetAppConfigHandler(deps.Services.Config))
		})
	})
}
