package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/metrics"
	"cargo-charter/charterdesk/internal/services"
)

// ChatContinueHandler handles GET /api/v1/chat/continue?token=
func ChatContinueHandler(chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if token == "" {
			common.RespondError(w, initTime, nil, "Missing continuation token", http.StatusBadRequest)
			return
		}

		result, err := chatSvc.Continue(r.Context(), token)
		if err != nil {
			if metricsReg != nil {
				metricsReg.ChatContinuationsTotal.WithLabelValues(continuationOutcome(err)).Inc()
			}
			handleQueryError(w, r, initTime, err)
			return
		}

		if metricsReg != nil {
			metricsReg.ChatContinuationsTotal.WithLabelValues("redeemed").Inc()
		}

		common.RespondSuccess(w, initTime, "Continuation resumed", result)
	}
}

func continuationOutcome(err error) string {
	var qErr *services.QueryError
	if !errors.As(err, &qErr) {
		return "invalid"
	}
	switch qErr.Code {
	case constants.ErrCodeContinuationExpired:
		return "expired"
	case constants.ErrCodeContinuationUsed:
		return "used"
	default:
		return "invalid"
	}
}
