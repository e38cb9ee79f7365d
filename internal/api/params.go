package api

import (
	"net/http"
	"strings"
	"time"

	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/services"
)

const dateLayout = "2006-01-02"

func invalidDateRange(err error) *services.QueryError {
	return &services.QueryError{
		Code:    constants.ErrCodeInvalidDateRange,
		Message: constants.GetErrorMessage(constants.ErrCodeInvalidDateRange),
		Err:     err,
	}
}

// parseWindow reads the required from/to date parameters. The returned
// end is exclusive: the caller gets to+1d so the SQL layer can compare
// scheduled_departure with < while the client keeps inclusive dates.
func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, invalidDateRange(err)
	}

	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, invalidDateRange(err)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, invalidDateRange(nil)
	}

	return from, to.AddDate(0, 0, 1), nil
}

// wantsChat reports whether the caller asked for the chat rendering of
// the result alongside the structured payload.
func wantsChat(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), string(constants.FormatChat))
}
