package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/metrics"
	"cargo-charter/charterdesk/internal/models/dtos"
	"cargo-charter/charterdesk/internal/services"
)

// GeographySyncJob keeps the airports_geography reference table current.
// The merge itself lives in services.GeographyService; the job owns the
// schedule, the startup check and the breadcrumbs.
type GeographySyncJob struct {
	geography *services.GeographyService
	metrics   *metrics.MetricsRegistry

	mu        sync.Mutex
	lastRun   time.Time
	lastState string
}

// NewGeographySyncJob creates a new geography sync job instance
func NewGeographySyncJob(geography *services.GeographyService, metricsReg *metrics.MetricsRegistry) *GeographySyncJob {
	return &GeographySyncJob{geography: geography, metrics: metricsReg}
}

// Run executes one sync pass (exported for manual triggering).
func (j *GeographySyncJob) Run(ctx context.Context, eventType string, force bool) (*dtos.GeographySyncResult, error) {
	start := time.Now()
	log.Printf("[GeographySync] Starting %s at %s", eventType, start.Format(time.RFC3339))

	result, err := j.geography.Sync(ctx, eventType, force)

	if j.metrics != nil {
		j.metrics.SyncJobDuration.WithLabelValues("geography_sync").Observe(time.Since(start).Seconds())
	}

	j.mu.Lock()
	j.lastRun = start
	if err != nil {
		j.lastState = constants.SyncStatusFailed
	} else {
		j.lastState = result.Status
	}
	j.mu.Unlock()

	if err != nil {
		log.Printf("[GeographySync] %s failed after %s: %v",
			eventType, time.Since(start).Truncate(time.Millisecond), err)
		return nil, err
	}

	if result.Skipped {
		log.Printf("[GeographySync] %s skipped: last sync at %s is still fresh",
			eventType, result.LastSyncedAt.Format(time.RFC3339))
	} else {
		log.Printf("[GeographySync] %s completed in %s. Airports synced: %d",
			eventType, time.Since(start).Truncate(time.Millisecond), result.AirportsSynced)
	}

	return result, nil
}

// RunScheduled re-checks staleness on every tick; the sync itself
// no-ops until the configured max age has passed. An initial pass runs
// at startup so a fresh deployment populates its reference table.
func (j *GeographySyncJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if j.shouldRunInitialSync(ctx) {
		if _, err := j.Run(ctx, constants.SyncEventGeographyInitial, false); err != nil {
			log.Printf("[GeographySync] Error in initial run: %v", err)
		}
	}

	for {
		select {
		case <-ticker.C:
			if _, err := j.Run(ctx, constants.SyncEventGeographyScheduled, false); err != nil {
				log.Printf("[GeographySync] Error in scheduled run: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[GeographySync] Shutting down scheduled sync")
			return
		}
	}
}

func (j *GeographySyncJob) shouldRunInitialSync(ctx context.Context) bool {
	should, err := j.geography.ShouldSync(ctx)
	if err != nil {
		log.Printf("[GeographySync] Error checking sync state: %v. Running sync anyway.", err)
		return true
	}
	if should {
		log.Printf("[GeographySync] Reference data missing or stale. Running initial sync.")
	} else {
		log.Printf("[GeographySync] Reference data is fresh. Skipping initial sync.")
	}
	return should
}

// Status reports the job's last activity for the admin endpoint.
func (j *GeographySyncJob) Status() (lastRun time.Time, lastState string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastRun, j.lastState
}
