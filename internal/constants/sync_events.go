package constants

// Sync event types for the geography_sync_log table
const (
	SyncEventGeographyInitial   = "GEOGRAPHY_INITIAL_SYNC"
	SyncEventGeographyScheduled = "GEOGRAPHY_SCHEDULED_SYNC"
	SyncEventGeographyManual    = "GEOGRAPHY_MANUAL_SYNC"
)

// Sync log states. SKIPPED never reaches the log table; it is the
// response status for a trigger that found the data fresh enough.
const (
	SyncStatusRunning = "RUNNING"
	SyncStatusSuccess = "SUCCESS"
	SyncStatusFailed  = "FAILED"
	SyncStatusSkipped = "SKIPPED"
)
