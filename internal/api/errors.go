package api

import (
	"errors"
	"net/http"
	"time"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/logging"
	"cargo-charter/charterdesk/internal/services"
)

// queryErrorStatus maps client-addressable service error codes to HTTP
// status codes. Codes absent here are infrastructure failures and are
// masked as 500.
var queryErrorStatus = map[string]int{
	constants.ErrCodeInvalidInput:      http.StatusBadRequest,
	constants.ErrCodeInvalidDateRange:  http.StatusBadRequest,
	constants.ErrCodeUnknownRegion:     http.StatusBadRequest,
	constants.ErrCodeEmptyQuery:        http.StatusBadRequest,
	constants.ErrCodeEmptyDestinations: http.StatusBadRequest,
	constants.ErrCodeConfigKeyUnknown:  http.StatusBadRequest,

	constants.ErrCodeOperatorNotFound: http.StatusNotFound,
	constants.ErrCodeNoMovements:      http.StatusNotFound,
	constants.ErrCodeNoRouteTraffic:   http.StatusNotFound,
	constants.ErrCodeNoFleetData:      http.StatusNotFound,
	constants.ErrCodeConfigNotFound:   http.StatusNotFound,

	constants.ErrCodeContinuationInvalid: http.StatusBadRequest,
	constants.ErrCodeContinuationExpired: http.StatusGone,
	constants.ErrCodeContinuationUsed:    http.StatusGone,

	constants.ErrCodeSyncInProgress: http.StatusConflict,
}

// handleQueryError maps service failures to HTTP responses. The safe
// message travels to the client; wrapped detail goes to the log only.
func handleQueryError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	var qErr *services.QueryError
	if !errors.As(err, &qErr) {
		logging.Error("unclassified handler error",
			"endpoint", r.URL.Path,
			"error", err.Error(),
		)
		common.RespondError(w, initTime, nil, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	statusCode, known := queryErrorStatus[qErr.Code]
	if !known {
		logging.Error("query failed",
			"endpoint", r.URL.Path,
			"code", qErr.Code,
			"error", qErr.Error(),
		)
		common.RespondError(w, initTime, nil, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	common.RespondError(w, initTime, nil, qErr.Message, statusCode)
}
