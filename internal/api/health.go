package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"cargo-charter/charterdesk/internal/models/entities"
	"cargo-charter/charterdesk/internal/services"
)

// HealthCheckHandler handles GET /healthCheck. Besides liveness it
// reports the span of movement data currently loaded, which the chat
// client shows as the answerable date range.
func HealthCheckHandler(db *sqlx.DB, mvSvc *services.MovementService, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		checks := make(map[string]entities.ServiceStatus)

		// Check postgres
		pgStatus := "ok"
		pgDetails := "Postgres Connected"
		if err := db.Ping(); err != nil {
			pgStatus = "down"
			pgDetails = err.Error()
		}
		checks["postgres"] = entities.ServiceStatus{
			Status:  pgStatus,
			Details: pgDetails,
		}

		overallStatus := "ok"
		for _, svc := range checks {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		var window *entities.DataWindow
		if overallStatus == "ok" {
			if dw, err := mvSvc.DataWindow(r.Context()); err == nil {
				window = dw
			}
		}

		now := time.Now()
		resp := entities.HealthCheckResponse{
			Services:   checks,
			Status:     overallStatus,
			UpSince:    upSince,
			Uptime:     now.Sub(upSince).Round(time.Second).String(),
			DataWindow: window,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
