package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cargo-charter/charterdesk/internal/chat"
	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/metrics"
	"cargo-charter/charterdesk/internal/models/dtos"
	"cargo-charter/charterdesk/internal/services"
)

// operatorParam extracts the operator path segment. Operator names
// carry spaces, so the segment may arrive percent-encoded.
func operatorParam(r *http.Request) string {
	operator := chi.URLParam(r, "operator")
	if decoded, err := url.PathUnescape(operator); err == nil {
		operator = decoded
	}
	return operator
}

// recordResults counts result entries served, for the business metrics.
func recordResults(metricsReg *metrics.MetricsRegistry, endpoint string, n int) {
	if metricsReg != nil {
		metricsReg.QueryResultsTotal.WithLabelValues(endpoint).Add(float64(n))
	}
}

// buildChat packages chat pages and counts issued continuation tokens.
func buildChat(ctx context.Context, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry, first, rest string) (*dtos.ChatPayload, error) {
	payload, err := chatSvc.Package(ctx, first, rest)
	if err != nil {
		return nil, err
	}
	if metricsReg != nil && payload.ContinuationToken != "" {
		metricsReg.ChatContinuationsTotal.WithLabelValues("issued").Inc()
	}
	return payload, nil
}

// OperatorSearchHandler handles GET /api/v1/operators/search?q=
func OperatorSearchHandler(opSvc *services.OperatorService, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		query := strings.TrimSpace(r.URL.Query().Get("q"))

		result, err := opSvc.Search(r.Context(), query)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		if metricsReg != nil {
			metricsReg.OperatorSearchesTotal.Inc()
		}
		recordResults(metricsReg, "operators_search", len(result.Matches))

		if wantsChat(r) {
			text := chat.FormatMatches(result.Query, result.Matches)
			payload, err := buildChat(r.Context(), chatSvc, metricsReg, text, "")
			if err != nil {
				handleQueryError(w, r, initTime, err)
				return
			}
			result.Chat = payload
		}

		common.RespondSuccess(w, initTime, "Operators resolved", result)
	}
}

// OperatorRoutesHandler handles GET /api/v1/operators/{operator}/routes
func OperatorRoutesHandler(mvSvc *services.MovementService, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		from, to, err := parseWindow(r)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		result, err := mvSvc.OperatorRoutes(r.Context(), operatorParam(r), from, to)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		recordResults(metricsReg, "operator_routes", len(result.Routes))

		if wantsChat(r) {
			first, rest := chatPages(result.Routes, chatSvc.DisplayLimit(r.Context()), windowLabel(result.Window),
				func(page []dtos.RouteSummaryEntry, opts chat.PageOptions) string {
					return chat.FormatRouteSummaries(result.Operator, page, opts)
				})
			payload, err := buildChat(r.Context(), chatSvc, metricsReg, first, rest)
			if err != nil {
				handleQueryError(w, r, initTime, err)
				return
			}
			result.Chat = payload
		}

		common.RespondSuccess(w, initTime, "Routes fetched", result)
	}
}

// OperatorFleetHandler handles GET /api/v1/operators/{operator}/fleet
func OperatorFleetHandler(opSvc *services.OperatorService, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		result, err := opSvc.Fleet(r.Context(), operatorParam(r))
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		recordResults(metricsReg, "operator_fleet", len(result.Groups))

		if wantsChat(r) {
			// Fleets are rendered whole; only the registration list
			// inside an entry is capped.
			text := chat.FormatFleet(result.Operator, result.Groups, result.RoleCounts)
			payload, err := buildChat(r.Context(), chatSvc, metricsReg, text, "")
			if err != nil {
				handleQueryError(w, r, initTime, err)
				return
			}
			result.Chat = payload
		}

		common.RespondSuccess(w, initTime, "Fleet classified", result)
	}
}

// OperatorProfileHandler handles GET /api/v1/operators/{operator}/profile
func OperatorProfileHandler(profSvc *services.ProfileService, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		from, to, err := parseWindow(r)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		result, err := profSvc.Profile(r.Context(), operatorParam(r), from, to)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		recordResults(metricsReg, "operator_profile", len(result.TopDestinations))

		if wantsChat(r) {
			text := profileChatText(result)
			payload, err := buildChat(r.Context(), chatSvc, metricsReg, text, "")
			if err != nil {
				handleQueryError(w, r, initTime, err)
				return
			}
			result.Chat = payload
		}

		common.RespondSuccess(w, initTime, "Profile assembled", result)
	}
}

// profileChatText renders the composite profile page: the classified
// fleet first, then the top destinations. Both halves are bounded, so
// no paging happens here.
func profileChatText(p *dtos.OperatorProfileResult) string {
	var sections []string

	if len(p.FleetGroups) > 0 {
		sections = append(sections, chat.FormatFleet(p.Operator, p.FleetGroups, p.RoleCounts))
	}
	if len(p.TopDestinations) > 0 {
		sections = append(sections, chat.FormatDestinationSummaries(p.Operator, p.TopDestinations, chat.PageOptions{
			Total:  len(p.TopDestinations),
			Window: windowLabel(p.Window),
		}))
	}

	return strings.Join(sections, "\n\n")
}

// OperatorOriginsHandler handles GET /api/v1/operators/{operator}/origins
func OperatorOriginsHandler(mvSvc *services.MovementService, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		from, to, err := parseWindow(r)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		region := strings.TrimSpace(r.URL.Query().Get("region"))

		result, err := mvSvc.OperatorOrigins(r.Context(), operatorParam(r), region, from, to)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		airports := 0
		for _, g := range result.Groups {
			airports += len(g.Airports)
		}
		recordResults(metricsReg, "operator_origins", airports)

		if wantsChat(r) {
			text := chat.FormatOrigins(result.Operator, result.Groups, windowLabel(result.Window))
			payload, err := buildChat(r.Context(), chatSvc, metricsReg, text, "")
			if err != nil {
				handleQueryError(w, r, initTime, err)
				return
			}
			result.Chat = payload
		}

		common.RespondSuccess(w, initTime, "Origins grouped", result)
	}
}

// FleetReviewHandler handles GET /api/v1/fleet/review?letter=
func FleetReviewHandler(opSvc *services.OperatorService, chatSvc *services.ChatService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		letter := strings.TrimSpace(r.URL.Query().Get("letter"))

		result, err := opSvc.FleetReview(r.Context(), letter)
		if err != nil {
			handleQueryError(w, r, initTime, err)
			return
		}

		recordResults(metricsReg, "fleet_review", len(result.Entries))

		if wantsChat(r) {
			first, rest := chatPages(result.Entries, chatSvc.DisplayLimit(r.Context()), "",
				func(page []dtos.FleetReviewEntry, opts chat.PageOptions) string {
					return chat.FormatFleetReview(result.Letter, page, opts)
				})
			payload, err := buildChat(r.Context(), chatSvc, metricsReg, first, rest)
			if err != nil {
				handleQueryError(w, r, initTime, err)
				return
			}
			result.Chat = payload
		}

		common.RespondSuccess(w, initTime, "Classification audit complete", result)
	}
}
