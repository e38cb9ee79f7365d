package constants

const (
	StatusSyncCompleted = "Geography sync completed"
	StatusSyncSkipped   = "Geography data is recent, sync skipped"
	StatusSyncRunning   = "Geography sync already in progress"
	StatusSyncFailed    = "Geography sync failed"
	StatusSyncTriggered = "Geography sync triggered"
)

const (
	MsgOperatorNotFound  = "No operator matched your query"
	MsgNoMovementsFound  = "No movements found for the requested destinations"
	MsgNoRouteTraffic    = "No flights found on that route in the data window"
	MsgInvalidDateRange  = "Invalid date range: expected from and to as YYYY-MM-DD"
	MsgInternalError     = "Something went wrong while processing the request"
	MsgContinuationSpent = "This continuation token was already redeemed"
)
