package routes

import (
	"context"
	"net/http"
	"time"

	"cargo-charter/charterdesk/internal/api"
	"cargo-charter/charterdesk/internal/db"
	"cargo-charter/charterdesk/internal/jobs"
	"cargo-charter/charterdesk/internal/logging"
	"cargo-charter/charterdesk/internal/metrics"
	"cargo-charter/charterdesk/internal/middleware"
	"cargo-charter/charterdesk/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies()
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, deps.Services.Movements, upSince))

	// Setup scheduled jobs and cache workers
	geoSyncJob := jobs.InitializeJobs(context.Background(), deps.Services.Geography, metricsReg)
	workers.InitWorkers(deps.Services.Cache, deps.Repo.Geography)

	// Initialize jobs handler for manual triggering
	jobsHandler := api.NewJobsHandler(geoSyncJob, deps.Services.Geography)

	// Register API routes (after jobsHandler is initialized)
	RegisterAPIRoutes(r, metricsReg, deps, jobsHandler)

	return r
}
