package jobs

import (
	"context"
	"time"

	"cargo-charter/charterdesk/internal/metrics"
	"cargo-charter/charterdesk/internal/services"
)

// InitializeJobs initializes and starts all background jobs, returning
// their handles so the admin endpoints can report status and trigger
// manual runs.
func InitializeJobs(ctx context.Context, geography *services.GeographyService, metricsReg *metrics.MetricsRegistry) *GeographySyncJob {
	geoSyncJob := NewGeographySyncJob(geography, metricsReg)

	// A daily check is enough; the sync itself skips until the
	// reference data actually goes stale.
	go geoSyncJob.RunScheduled(ctx, 24*time.Hour)

	return geoSyncJob
}
