package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"cargo-charter/charterdesk/internal/auth"
	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/jobs"
	"cargo-charter/charterdesk/internal/services"
)

// JobsHandler handles job status and manual trigger endpoints
type JobsHandler struct {
	geoSyncJob *jobs.GeographySyncJob
	geography  *services.GeographyService
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(geoSyncJob *jobs.GeographySyncJob, geography *services.GeographyService) *JobsHandler {
	return &JobsHandler{
		geoSyncJob: geoSyncJob,
		geography:  geography,
	}
}

// TriggerGeographySync manually triggers the geography reference sync.
// The optional body may carry {"force": true} to bypass the freshness
// check.
func (h *JobsHandler) TriggerGeographySync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req TriggerGeographySyncRequest
		if r.Body != nil {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
				return
			}
		}

		triggeredBy := ""
		if claims := auth.GetRequestClaims(r.Context()); claims != nil {
			triggeredBy = claims.Label()
		}
		log.Printf("[JobsHandler] Geography sync triggered by %q (force=%v)", triggeredBy, req.Force)

		result, err := h.geoSyncJob.Run(r.Context(), constants.SyncEventGeographyManual, req.Force)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Geography sync finished", result)
	}
}

// GeographyStatus reports reference-table coverage and the last
// successful sync.
func (h *JobsHandler) GeographyStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		result, err := h.geography.Status(r.Context())
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Geography status fetched", result)
	}
}

// GetJobStatus returns the status of background jobs
func (h *JobsHandler) GetJobStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		lastRun, lastState := h.geoSyncJob.Status()

		geoJob := JobInfo{
			Name:        "geography_sync",
			Description: "Keeps the airports_geography reference table synced from OurAirports",
			Schedule:    "Daily staleness check",
			Status:      "running",
		}
		if !lastRun.IsZero() {
			geoJob.LastRun = lastRun.Format(time.RFC3339)
			geoJob.NextRun = lastRun.Add(24 * time.Hour).Format(time.RFC3339)
		}
		if lastState != "" {
			geoJob.LastResult = lastState
		}

		data := JobStatusData{
			Jobs: []JobInfo{
				geoJob,
				{
					Name:        "geo_cache_worker",
					Description: "Prewarms the IATA to country-name lookup map",
					Schedule:    "Every 30 minutes",
					Status:      "running",
				},
			},
		}

		common.RespondSuccess(w, initTime, "Job status retrieved", data)
	}
}

// Request/Response types

type TriggerGeographySyncRequest struct {
	Force bool `json:"force,omitempty"` // bypass the freshness check
}

type JobStatusData struct {
	Jobs []JobInfo `json:"jobs"`
}

type JobInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
	Status      string `json:"status"` // "running", "stopped", "error"
	LastRun     string `json:"last_run,omitempty"`
	LastResult  string `json:"last_result,omitempty"`
	NextRun     string `json:"next_run,omitempty"`
}
