package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cargo-charter/charterdesk/internal/db"
	"cargo-charter/charterdesk/internal/logging"
	"cargo-charter/charterdesk/internal/routes"
)

// @title Charterdesk API
// @version 1.0
// @description Query backend for the cargo charter chat bot.
// @host localhost:8080
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Charterdesk starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with sqlx
	if err := db.InitPostgres(); err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (sqlx): %v", err)
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	if _, err := db.InitPostgresORM(db.PostgresDSN()); err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (GORM): %v", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	upSince := time.Now()

	// Initialize router with Chi
	// Note: metricsReg is created in RegisterRoutes and applied as global middleware
	router := routes.RegisterRoutes(upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logging.Info("Server starting",
		"port", port,
		"environment", appEnv,
	)

	log.Println("Starting server on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
