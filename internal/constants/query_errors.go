package constants

// Query Error Codes
// These constants define specific failure scenarios for the query and
// classification services

// Input validation errors
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidDateRange  = "INVALID_DATE_RANGE"
	ErrCodeUnknownRegion     = "UNKNOWN_REGION"
	ErrCodeEmptyQuery        = "EMPTY_QUERY"
	ErrCodeEmptyDestinations = "EMPTY_DESTINATIONS"
)

// Lookup errors
const (
	ErrCodeOperatorNotFound = "OPERATOR_NOT_FOUND"
	ErrCodeNoMovements      = "NO_MOVEMENTS"
	ErrCodeNoRouteTraffic   = "NO_ROUTE_TRAFFIC"
	ErrCodeNoFleetData      = "NO_FLEET_DATA"
)

// Infrastructure errors
const (
	ErrCodeQueryFailed    = "QUERY_FAILED"
	ErrCodeCacheFailed    = "CACHE_FAILED"
	ErrCodeUpstreamFetch  = "UPSTREAM_FETCH_FAILED"
	ErrCodeUpstreamParse  = "UPSTREAM_PARSE_FAILED"
	ErrCodeSyncInProgress = "SYNC_IN_PROGRESS"
	ErrCodeSyncFailed     = "SYNC_FAILED"
)

// Continuation token errors
const (
	ErrCodeContinuationInvalid = "CONTINUATION_INVALID"
	ErrCodeContinuationExpired = "CONTINUATION_EXPIRED"
	ErrCodeContinuationUsed    = "CONTINUATION_USED"
)

// Configuration errors
const (
	ErrCodeConfigKeyUnknown = "CONFIG_KEY_UNKNOWN"
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
)

// Error Messages
// Human-readable messages corresponding to error codes

var QueryErrorMessages = map[string]string{
	// Input validation
	ErrCodeInvalidInput:      "The request parameters are invalid",
	ErrCodeInvalidDateRange:  MsgInvalidDateRange,
	ErrCodeUnknownRegion:     "Unknown region code; expected a continent name or two-letter code",
	ErrCodeEmptyQuery:        "The search query is empty",
	ErrCodeEmptyDestinations: "At least one destination, country or continent is required",

	// Lookups
	ErrCodeOperatorNotFound: MsgOperatorNotFound,
	ErrCodeNoMovements:      MsgNoMovementsFound,
	ErrCodeNoRouteTraffic:   MsgNoRouteTraffic,
	ErrCodeNoFleetData:      "No aircraft on file for this operator",

	// Infrastructure
	ErrCodeQueryFailed:    "The database query failed",
	ErrCodeCacheFailed:    "The cache operation failed",
	ErrCodeUpstreamFetch:  "Unable to download the reference dataset",
	ErrCodeUpstreamParse:  "The reference dataset could not be parsed",
	ErrCodeSyncInProgress: StatusSyncRunning,
	ErrCodeSyncFailed:     StatusSyncFailed,

	// Continuation tokens
	ErrCodeContinuationInvalid: "The continuation token is invalid",
	ErrCodeContinuationExpired: "The continuation token has expired",
	ErrCodeContinuationUsed:    MsgContinuationSpent,

	// Configuration
	ErrCodeConfigKeyUnknown: "The configuration key is not allow-listed",
	ErrCodeConfigNotFound:   "No value stored for the configuration key",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := QueryErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
