package api

import (
	"net/http"
	"strings"
	"time"

	"cargo-charter/charterdesk/internal/chat"
	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/metrics"
	"cargo-charter/charterdesk/internal/models/dtos"
	"cargo-charter/charterdesk/internal/report"
	"cargo-charter/charterdesk/internal/services"
)

// multiParam flattens repeated query parameters, also splitting
// comma-separated values, and drops blanks.
func multiParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// DestinationOperatorsHandler handles GET /api/v1/destinations/operators
func DestinationOperatorsHandler(mvSvc *services.MovementService, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		from, to, err := parseWindow(r)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		destinations := multiParam(r.URL.Query()["dest"])
		types := multiParam(r.URL.Query()["types"])

		result, err := mvSvc.DestinationOperators(r.Context(), destinations, types, from, to)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		recordResults(metricsReg, "destination_operators", len(result.Operators))

		if wantsChat(r) {
			first, rest := chatPages(result.Operators, chatSvc.DisplayLimit(r.Context()), windowLabel(result.Window),
				func(page []report.OperatorSummary, opts chat.PageOptions) string {
					return chat.FormatOperatorSummaries(page, opts)
				})
			payload, err := buildChat(r.Context(), chatSvc, metricsReg, first, rest)
			if err != nil {
				handleQueryError(w, r, initTime, err)
				return
			}
			result.Chat = payload
			result.Truncated = payload.ContinuationToken != ""
		}

		common.RespondSuccess(w, initTime, "Operators matched", result)
	}
}

// OriginOperatorsHandler handles GET /api/v1/origins/operators
func OriginOperatorsHandler(mvSvc *services.MovementService, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		from, to, err := parseWindow(r)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		origin := strings.TrimSpace(r.URL.Query().Get("origin"))

		result, err := mvSvc.OriginOperators(r.Context(), origin, from, to)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		recordResults(metricsReg, "origin_operators", len(result.Operators))

		if wantsChat(r) {
			first, rest := chatPages(result.Operators, chatSvc.DisplayLimit(r.Context()), windowLabel(result.Window),
				func(page []report.OperatorSummary, opts chat.PageOptions) string {
					return chat.FormatOperatorSummaries(page, opts)
				})
			payload, err := buildChat(r.Context(), chatSvc, metricsReg, first, rest)
			if err != nil {
				handleQueryError(w, r, initTime, err)
				return
			}
			result.Chat = payload
			result.Truncated = payload.ContinuationToken != ""
		}

		common.RespondSuccess(w, initTime, "Operators matched", result)
	}
}

// RouteDetailsHandler handles GET /api/v1/routes/details
func RouteDetailsHandler(mvSvc *services.MovementService, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		from, to, err := parseWindow(r)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		origin := strings.TrimSpace(r.URL.Query().Get("origin"))
		destination := strings.TrimSpace(r.URL.Query().Get("destination"))

		result, err := mvSvc.RouteDetails(r.Context(), origin, destination, from, to)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		recordResults(metricsReg, "route_details", len(result.Carriers))

		if wantsChat(r) {
			first, rest := chatPages(result.Carriers, chatSvc.DisplayLimit(r.Context()), windowLabel(result.Window),
				func(page []dtos.RouteDetailEntry, opts chat.PageOptions) string {
					return chat.FormatRouteDetails(result.Origin, result.Destination, page, opts)
				})
			payload, err := buildChat(r.Context(), chatSvc, metricsReg, first, rest)
			if err != nil {
				handleQueryError(w, r, initTime, err)
				return
			}
			result.Chat = payload
		}

		common.RespondSuccess(w, initTime, "Route detailed", result)
	}
}
