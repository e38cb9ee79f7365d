package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"cargo-charter/charterdesk/internal/chat"
	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/fleet"
	"cargo-charter/charterdesk/internal/models/dtos"
	"cargo-charter/charterdesk/internal/models/entities"
	"cargo-charter/charterdesk/internal/services"
)

// staticConfig serves config fallbacks, with an optional display-limit
// override to force chat paging in tests.
type staticConfig struct {
	displayLimit int
}

func (c staticConfig) GetIntVal(ctx context.Context, key string, fallback int) int {
	if key == common.ConfigKeyChatDisplayLimit && c.displayLimit > 0 {
		return c.displayLimit
	}
	return fallback
}

func (c staticConfig) GetBoolVal(ctx context.Context, key string, fallback bool) bool {
	return fallback
}

// Mock fleet-table repository
type fakeOperatorRepo struct {
	searchCandidatesFunc   func(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error)
	getAircraftFunc        func(ctx context.Context, operator string) ([]entities.AircraftRow, error)
	getFleetReviewRowsFunc func(ctx context.Context, letter string) ([]entities.FleetReviewRow, error)
	getFleetCountsFunc     func(ctx context.Context, operators []string) ([]entities.FleetCountRow, error)
}

func (f *fakeOperatorRepo) SearchCandidates(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error) {
	if f.searchCandidatesFunc == nil {
		return nil, nil
	}
	return f.searchCandidatesFunc(ctx, query)
}

func (f *fakeOperatorRepo) GetAircraft(ctx context.Context, operator string) ([]entities.AircraftRow, error) {
	if f.getAircraftFunc == nil {
		return nil, nil
	}
	return f.getAircraftFunc(ctx, operator)
}

func (f *fakeOperatorRepo) GetFleetReviewRows(ctx context.Context, letter string) ([]entities.FleetReviewRow, error) {
	if f.getFleetReviewRowsFunc == nil {
		return nil, nil
	}
	return f.getFleetReviewRowsFunc(ctx, letter)
}

func (f *fakeOperatorRepo) GetFleetCounts(ctx context.Context, operators []string) ([]entities.FleetCountRow, error) {
	if f.getFleetCountsFunc == nil {
		return nil, nil
	}
	return f.getFleetCountsFunc(ctx, operators)
}

func newTestOperatorService(repo *fakeOperatorRepo) *services.OperatorService {
	return services.NewOperatorService(repo, common.NewCacheService(60, 120), staticConfig{})
}

func newTestChatService(displayLimit int) *services.ChatService {
	continuations := chat.NewContinuationService([]byte("test-secret"), common.NewCacheService(60, 120), 15*time.Minute)
	return services.NewChatService(continuations, staticConfig{displayLimit: displayLimit})
}

func TestOperatorSearchHandler_Success(t *testing.T) {
	repo := &fakeOperatorRepo{
		searchCandidatesFunc: func(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error) {
			return []entities.OperatorCandidateRow{
				{Operator: "Cargolux", IATA: "CV", ICAO: "CLX", AircraftCount: 30},
				{Operator: "Cargolux Italia", ICAO: "ICV", AircraftCount: 4},
			}, nil
		},
	}

	handler := OperatorSearchHandler(newTestOperatorService(repo), newTestChatService(0), nil)

	req := httptest.NewRequest("GET", "/api/v1/operators/search?q=cargolux", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response struct {
		Status string                    `json:"status"`
		Data   dtos.OperatorSearchResult `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Status != "ok" {
		t.Errorf("Expected status ok, got %s", response.Status)
	}
	if len(response.Data.Matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(response.Data.Matches))
	}
	if response.Data.Matches[0].Name != "Cargolux" {
		t.Errorf("Expected exact name match ranked first, got %s", response.Data.Matches[0].Name)
	}
}

func TestOperatorSearchHandler_EmptyQuery(t *testing.T) {
	handler := OperatorSearchHandler(newTestOperatorService(&fakeOperatorRepo{}), newTestChatService(0), nil)

	req := httptest.NewRequest("GET", "/api/v1/operators/search?q=", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}

	var response dtos.APIResponse
	json.NewDecoder(rr.Body).Decode(&response)

	if response.Message != "The search query is empty" {
		t.Errorf("Expected empty query message, got %s", response.Message)
	}
}

func TestOperatorSearchHandler_NoMatch(t *testing.T) {
	repo := &fakeOperatorRepo{
		searchCandidatesFunc: func(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error) {
			return []entities.OperatorCandidateRow{
				{Operator: "Cargolux", IATA: "CV", ICAO: "CLX", AircraftCount: 30},
			}, nil
		},
	}

	handler := OperatorSearchHandler(newTestOperatorService(repo), newTestChatService(0), nil)

	req := httptest.NewRequest("GET", "/api/v1/operators/search?q=zzzzzz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}

	var response dtos.APIResponse
	json.NewDecoder(rr.Body).Decode(&response)

	if response.Message != "No operator matched your query" {
		t.Errorf("Expected no-match message, got %s", response.Message)
	}
}

func TestOperatorSearchHandler_RepoErrorIsMasked(t *testing.T) {
	repo := &fakeOperatorRepo{
		searchCandidatesFunc: func(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error) {
			return nil, errors.New("pq: connection refused")
		},
	}

	handler := OperatorSearchHandler(newTestOperatorService(repo), newTestChatService(0), nil)

	req := httptest.NewRequest("GET", "/api/v1/operators/search?q=cargolux", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}

	var response dtos.APIResponse
	json.NewDecoder(rr.Body).Decode(&response)

	if response.Message != "An unexpected error occurred" {
		t.Errorf("Driver error must not leak to the client, got %s", response.Message)
	}
}

func TestOperatorFleetHandler_Success(t *testing.T) {
	repo := &fakeOperatorRepo{
		getAircraftFunc: func(ctx context.Context, operator string) ([]entities.AircraftRow, error) {
			return []entities.AircraftRow{
				{Registration: "LX-VCA", Type: "Boeing 747-8F", Details: ""},
				{Registration: "LX-VCB", Type: "Boeing 747-8F", Details: ""},
				{Registration: "LX-NCL", Type: "Boeing 747-400", Details: "Passenger"},
			}, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/api/v1/operators/{operator}/fleet", OperatorFleetHandler(newTestOperatorService(repo), newTestChatService(0), nil))

	req := httptest.NewRequest("GET", "/api/v1/operators/Cargolux/fleet", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response struct {
		Status string                   `json:"status"`
		Data   dtos.OperatorFleetResult `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Data.Total != 3 {
		t.Errorf("Expected 3 aircraft, got %d", response.Data.Total)
	}
	if len(response.Data.Groups) != 2 {
		t.Fatalf("Expected 2 type groups, got %d", len(response.Data.Groups))
	}
	// Largest group first
	if response.Data.Groups[0].Type != "Boeing 747-8F" || response.Data.Groups[0].Role != fleet.RoleFreighter {
		t.Errorf("Expected 747-8F freighter group first, got %+v", response.Data.Groups[0])
	}
	if response.Data.RoleCounts[fleet.RoleFreighter] != 2 {
		t.Errorf("Expected 2 freighters, got %d", response.Data.RoleCounts[fleet.RoleFreighter])
	}
}

func TestOperatorFleetHandler_UnknownOperator(t *testing.T) {
	repo := &fakeOperatorRepo{
		getAircraftFunc: func(ctx context.Context, operator string) ([]entities.AircraftRow, error) {
			return nil, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/api/v1/operators/{operator}/fleet", OperatorFleetHandler(newTestOperatorService(repo), newTestChatService(0), nil))

	req := httptest.NewRequest("GET", "/api/v1/operators/Nonexistent/fleet", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestOperatorRoutesHandler_MissingWindow(t *testing.T) {
	mvSvc := newTestMovementService(&fakeMovementRepo{}, &fakeOperatorRepo{})

	r := chi.NewRouter()
	r.Get("/api/v1/operators/{operator}/routes", OperatorRoutesHandler(mvSvc, newTestChatService(0), nil))

	req := httptest.NewRequest("GET", "/api/v1/operators/Cargolux/routes", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}

	var response dtos.APIResponse
	json.NewDecoder(rr.Body).Decode(&response)

	if response.Message != "Invalid date range: expected from and to as YYYY-MM-DD" {
		t.Errorf("Expected date range message, got %s", response.Message)
	}
}

func TestOperatorRoutesHandler_WindowEcho(t *testing.T) {
	var gotFrom, gotTo time.Time
	mv := &fakeMovementRepo{
		routeSummaryFunc: func(ctx context.Context, operator string, from, to time.Time) ([]entities.RouteSummaryRow, error) {
			gotFrom, gotTo = from, to
			return []entities.RouteSummaryRow{
				{Origin: "LUX", Destination: "JFK", Flights: 120, AircraftUsed: 5},
			}, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/api/v1/operators/{operator}/routes", OperatorRoutesHandler(newTestMovementService(mv, &fakeOperatorRepo{}), newTestChatService(0), nil))

	req := httptest.NewRequest("GET", "/api/v1/operators/Cargolux/routes?from=2025-01-01&to=2025-12-31", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	// The repository sees a half-open window one day past the inclusive
	// end date the client sent.
	if gotFrom.Format("2006-01-02") != "2025-01-01" || gotTo.Format("2006-01-02") != "2026-01-01" {
		t.Errorf("Expected [2025-01-01, 2026-01-01) query window, got [%s, %s)",
			gotFrom.Format("2006-01-02"), gotTo.Format("2006-01-02"))
	}

	var response struct {
		Data dtos.OperatorRoutesResult `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// The client keeps inclusive dates.
	if response.Data.Window.From != "2025-01-01" || response.Data.Window.To != "2025-12-31" {
		t.Errorf("Expected inclusive window echo, got %+v", response.Data.Window)
	}
}

func TestOperatorRoutesHandler_ChatPaging(t *testing.T) {
	mv := &fakeMovementRepo{
		routeSummaryFunc: func(ctx context.Context, operator string, from, to time.Time) ([]entities.RouteSummaryRow, error) {
			return []entities.RouteSummaryRow{
				{Origin: "LUX", Destination: "JFK", Flights: 120, AircraftUsed: 5},
				{Origin: "LUX", Destination: "ORD", Flights: 88, AircraftUsed: 4},
				{Origin: "LUX", Destination: "HKG", Flights: 64, AircraftUsed: 3},
			}, nil
		},
	}

	// Display limit 1 forces the remaining routes behind a continuation.
	r := chi.NewRouter()
	r.Get("/api/v1/operators/{operator}/routes", OperatorRoutesHandler(newTestMovementService(mv, &fakeOperatorRepo{}), newTestChatService(1), nil))

	req := httptest.NewRequest("GET", "/api/v1/operators/Cargolux/routes?from=2025-01-01&to=2025-12-31&format=chat", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response struct {
		Data dtos.OperatorRoutesResult `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Data.Chat == nil {
		t.Fatal("Expected a chat payload with format=chat")
	}
	if len(response.Data.Chat.Messages) == 0 {
		t.Error("Expected at least one chat message")
	}
	if response.Data.Chat.ContinuationToken == "" {
		t.Error("Expected a continuation token when routes exceed the display limit")
	}
	// The structured payload stays complete regardless of chat paging.
	if len(response.Data.Routes) != 3 {
		t.Errorf("Expected all 3 routes in the structured payload, got %d", len(response.Data.Routes))
	}
}

func TestFleetReviewHandler_MissingLetter(t *testing.T) {
	handler := FleetReviewHandler(newTestOperatorService(&fakeOperatorRepo{}), newTestChatService(0), nil)

	req := httptest.NewRequest("GET", "/api/v1/fleet/review", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestFleetReviewHandler_Success(t *testing.T) {
	repo := &fakeOperatorRepo{
		getFleetReviewRowsFunc: func(ctx context.Context, letter string) ([]entities.FleetReviewRow, error) {
			return []entities.FleetReviewRow{
				{Type: "Boeing 747-8F", Details: "", AircraftCount: 12},
				{Type: "Boeing 767-2FK", Details: "Military", AircraftCount: 2},
			}, nil
		},
	}

	handler := FleetReviewHandler(newTestOperatorService(repo), newTestChatService(0), nil)

	req := httptest.NewRequest("GET", "/api/v1/fleet/review?letter=F", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response struct {
		Data dtos.FleetReviewResult `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Data.Entries) != 2 {
		t.Fatalf("Expected 2 audit entries, got %d", len(response.Data.Entries))
	}
	if response.Data.Entries[0].Role != string(fleet.RoleFreighter) {
		t.Errorf("Expected 747-8F classified as freighter, got %s", response.Data.Entries[0].Role)
	}
	// The FK exclusion keeps the military variant out of the freighter bucket.
	if response.Data.Entries[1].Role != string(fleet.RolePassenger) {
		t.Errorf("Expected 767-2FK classified as passenger, got %s", response.Data.Entries[1].Role)
	}
}

func TestOperatorProfileHandler_Success(t *testing.T) {
	opRepo := &fakeOperatorRepo{
		getAircraftFunc: func(ctx context.Context, operator string) ([]entities.AircraftRow, error) {
			return []entities.AircraftRow{
				{Registration: "LX-VCA", Type: "Boeing 747-8F", Details: ""},
			}, nil
		},
	}
	mv := &fakeMovementRepo{
		operatorDestinationsFunc: func(ctx context.Context, operator string, from, to time.Time) ([]entities.MovementCriteriaRow, error) {
			return []entities.MovementCriteriaRow{
				{Operator: "Cargolux", IATA: "CV", ICAO: "CLX", Destination: "JFK", Type: "Boeing 747-8F", CountryName: "United States", Continent: "NA", Flights: 120},
				{Operator: "Cargolux", IATA: "CV", ICAO: "CLX", Destination: "HKG", Type: "Boeing 747-8F", CountryName: "Hong Kong", Continent: "AS", Flights: 90},
			}, nil
		},
	}

	profSvc := services.NewProfileService(opRepo, mv, common.NewCacheService(60, 120), staticConfig{})

	r := chi.NewRouter()
	r.Get("/api/v1/operators/{operator}/profile", OperatorProfileHandler(profSvc, newTestChatService(0), nil))

	req := httptest.NewRequest("GET", "/api/v1/operators/Cargolux/profile?from=2025-01-01&to=2025-12-31", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response struct {
		Data dtos.OperatorProfileResult `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Data.IATA != "CV" || response.Data.ICAO != "CLX" {
		t.Errorf("Expected designators from movement rows, got %s/%s", response.Data.IATA, response.Data.ICAO)
	}
	if response.Data.TotalFlights != 210 {
		t.Errorf("Expected 210 total flights, got %d", response.Data.TotalFlights)
	}
	if len(response.Data.TopDestinations) != 2 || response.Data.TopDestinations[0].Code != "JFK" {
		t.Errorf("Expected JFK as busiest destination, got %+v", response.Data.TopDestinations)
	}
	if len(response.Data.FleetGroups) != 1 {
		t.Errorf("Expected 1 fleet group, got %d", len(response.Data.FleetGroups))
	}
}

func TestOperatorOriginsHandler_UnknownRegion(t *testing.T) {
	mvSvc := newTestMovementService(&fakeMovementRepo{}, &fakeOperatorRepo{})

	r := chi.NewRouter()
	r.Get("/api/v1/operators/{operator}/origins", OperatorOriginsHandler(mvSvc, newTestChatService(0), nil))

	req := httptest.NewRequest("GET", "/api/v1/operators/Cargolux/origins?from=2025-01-01&to=2025-12-31&region=atlantis", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}

	var response dtos.APIResponse
	json.NewDecoder(rr.Body).Decode(&response)

	if response.Message != "Unknown region code; expected a continent name or two-letter code" {
		t.Errorf("Expected unknown region message, got %s", response.Message)
	}
}

func TestOperatorOriginsHandler_GroupsByContinent(t *testing.T) {
	mv := &fakeMovementRepo{
		operatorOriginsFunc: func(ctx context.Context, operator string, from, to time.Time) ([]entities.OriginSummaryRow, error) {
			return []entities.OriginSummaryRow{
				{Origin: "LUX", Continent: "EU", CountryName: "Luxembourg", Flights: 300},
				{Origin: "MXP", Continent: "EU", CountryName: "Italy", Flights: 45},
				{Origin: "HKG", Continent: "AS", CountryName: "Hong Kong", Flights: 80},
			}, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/api/v1/operators/{operator}/origins", OperatorOriginsHandler(newTestMovementService(mv, &fakeOperatorRepo{}), newTestChatService(0), nil))

	req := httptest.NewRequest("GET", "/api/v1/operators/Cargolux/origins?from=2025-01-01&to=2025-12-31", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response struct {
		Data dtos.OperatorOriginsResult `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Data.Groups) != 2 {
		t.Fatalf("Expected 2 continent groups, got %d", len(response.Data.Groups))
	}
	// Busiest continent first, busiest airport first within it.
	if response.Data.Groups[0].Continent != "EU" || response.Data.Groups[0].Airports[0].Code != "LUX" {
		t.Errorf("Expected EU/LUX first, got %+v", response.Data.Groups[0])
	}
}

func TestOperatorOriginsHandler_RegionFilter(t *testing.T) {
	mv := &fakeMovementRepo{
		operatorOriginsFunc: func(ctx context.Context, operator string, from, to time.Time) ([]entities.OriginSummaryRow, error) {
			return []entities.OriginSummaryRow{
				{Origin: "LUX", Continent: "EU", CountryName: "Luxembourg", Flights: 300},
				{Origin: "HKG", Continent: "AS", CountryName: "Hong Kong", Flights: 80},
			}, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/api/v1/operators/{operator}/origins", OperatorOriginsHandler(newTestMovementService(mv, &fakeOperatorRepo{}), newTestChatService(0), nil))

	req := httptest.NewRequest("GET", "/api/v1/operators/Cargolux/origins?from=2025-01-01&to=2025-12-31&region=europe", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response struct {
		Data dtos.OperatorOriginsResult `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Data.Region != "EU" {
		t.Errorf("Expected region normalized to EU, got %s", response.Data.Region)
	}
	if len(response.Data.Groups) != 1 || response.Data.Groups[0].Continent != "EU" {
		t.Errorf("Expected only the EU group, got %+v", response.Data.Groups)
	}
}
