package services

import (
	"context"
	"errors"
	"testing"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/fleet"
	"cargo-charter/charterdesk/internal/models/entities"
)

// mockOperatorRepo fakes the fleet-table repository. Unset funcs panic,
// which is what we want: the test then names an unexpected call path.
type mockOperatorRepo struct {
	SearchCandidatesFunc   func(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error)
	GetAircraftFunc        func(ctx context.Context, operator string) ([]entities.AircraftRow, error)
	GetFleetReviewRowsFunc func(ctx context.Context, letter string) ([]entities.FleetReviewRow, error)
}

func (m *mockOperatorRepo) SearchCandidates(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error) {
	return m.SearchCandidatesFunc(ctx, query)
}

func (m *mockOperatorRepo) GetAircraft(ctx context.Context, operator string) ([]entities.AircraftRow, error) {
	return m.GetAircraftFunc(ctx, operator)
}

func (m *mockOperatorRepo) GetFleetReviewRows(ctx context.Context, letter string) ([]entities.FleetReviewRow, error) {
	return m.GetFleetReviewRowsFunc(ctx, letter)
}

// stubConfig serves fixed app-config values without a database.
type stubConfig struct {
	ints  map[string]int
	bools map[string]bool
}

func (s *stubConfig) GetIntVal(_ context.Context, key string, fallback int) int {
	if v, ok := s.ints[key]; ok {
		return v
	}
	return fallback
}

func (s *stubConfig) GetBoolVal(_ context.Context, key string, fallback bool) bool {
	if v, ok := s.bools[key]; ok {
		return v
	}
	return fallback
}

func queryCode(t *testing.T, err error) string {
	t.Helper()
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected a QueryError, got %v", err)
	}
	return qe.Code
}

func TestOperatorSearch_RanksAndCaches(t *testing.T) {
	calls := 0
	repo := &mockOperatorRepo{
		SearchCandidatesFunc: func(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error) {
			calls++
			return []entities.OperatorCandidateRow{
				{Operator: "Lufthansa CityLine", ICAO: "CLH", AircraftCount: 40},
				{Operator: "Lufthansa Cargo", IATA: "LH", ICAO: "GEC", AircraftCount: 17},
			}, nil
		},
	}
	svc := NewOperatorService(repo, common.NewCacheService(60, 120), &stubConfig{})

	result, err := svc.Search(context.Background(), "LH")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(result.Matches))
	}
	if result.Matches[0].Name != "Lufthansa Cargo" {
		t.Errorf("exact IATA match should rank first, got %q", result.Matches[0].Name)
	}

	// Second identical query must come out of the cache.
	if _, err := svc.Search(context.Background(), "lh"); err != nil {
		t.Fatalf("cached Search: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 repository call, got %d", calls)
	}
}

func TestOperatorSearch_EmptyQuery(t *testing.T) {
	svc := NewOperatorService(&mockOperatorRepo{}, common.NewCacheService(60, 120), &stubConfig{})

	_, err := svc.Search(context.Background(), "   ")
	if code := queryCode(t, err); code != constants.ErrCodeEmptyQuery {
		t.Errorf("expected %s, got %s", constants.ErrCodeEmptyQuery, code)
	}
}

func TestOperatorSearch_NoStructuralMatch(t *testing.T) {
	repo := &mockOperatorRepo{
		SearchCandidatesFunc: func(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error) {
			return []entities.OperatorCandidateRow{
				{Operator: "Lufthansa Cargo", IATA: "LH", AircraftCount: 17},
			}, nil
		},
	}
	svc := NewOperatorService(repo, common.NewCacheService(60, 120), &stubConfig{})

	_, err := svc.Search(context.Background(), "zzzz")
	if code := queryCode(t, err); code != constants.ErrCodeOperatorNotFound {
		t.Errorf("expected %s, got %s", constants.ErrCodeOperatorNotFound, code)
	}
}

func TestOperatorSearch_RepositoryFailure(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := &mockOperatorRepo{
		SearchCandidatesFunc: func(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error) {
			return nil, dbErr
		},
	}
	svc := NewOperatorService(repo, common.NewCacheService(60, 120), &stubConfig{})

	_, err := svc.Search(context.Background(), "dhl")
	if code := queryCode(t, err); code != constants.ErrCodeQueryFailed {
		t.Errorf("expected %s, got %s", constants.ErrCodeQueryFailed, code)
	}
	if !errors.Is(err, dbErr) {
		t.Error("expected the repository error in the unwrap chain")
	}
}

func TestOperatorFleet_ClassifiesRoles(t *testing.T) {
	repo := &mockOperatorRepo{
		GetAircraftFunc: func(ctx context.Context, operator string) ([]entities.AircraftRow, error) {
			return []entities.AircraftRow{
				{Registration: "D-ALFA", Type: "747 400F", Details: "747 400F"},
				{Registration: "D-ALFB", Type: "747 400F", Details: "747 400F"},
				{Registration: "D-AIMA", Type: "A380", Details: "A380 800"},
			}, nil
		},
	}
	svc := NewOperatorService(repo, common.NewCacheService(60, 120), &stubConfig{})

	result, err := svc.Fleet(context.Background(), "Lufthansa Cargo")
	if err != nil {
		t.Fatalf("Fleet: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("expected 3 aircraft, got %d", result.Total)
	}
	if len(result.Groups) != 2 {
		t.Fatalf("expected 2 type groups, got %d", len(result.Groups))
	}
	if result.Groups[0].Role != fleet.RoleFreighter {
		t.Errorf("largest group should be the freighters, got role %s", result.Groups[0].Role)
	}
	if result.RoleCounts[fleet.RoleFreighter] != 2 || result.RoleCounts[fleet.RolePassenger] != 1 {
		t.Errorf("unexpected role counts: %v", result.RoleCounts)
	}
}

func TestOperatorFleet_UnknownOperator(t *testing.T) {
	repo := &mockOperatorRepo{
		GetAircraftFunc: func(ctx context.Context, operator string) ([]entities.AircraftRow, error) {
			return nil, nil
		},
	}
	svc := NewOperatorService(repo, common.NewCacheService(60, 120), &stubConfig{})

	_, err := svc.Fleet(context.Background(), "Ghost Air")
	if code := queryCode(t, err); code != constants.ErrCodeOperatorNotFound {
		t.Errorf("expected %s, got %s", constants.ErrCodeOperatorNotFound, code)
	}
}

func TestOperatorFleet_BroadFreighterToggle(t *testing.T) {
	repo := &mockOperatorRepo{
		GetAircraftFunc: func(ctx context.Context, operator string) ([]entities.AircraftRow, error) {
			return []entities.AircraftRow{
				{Registration: "PH-OFA", Type: "Fokker 100", Details: "Fokker 100"},
			}, nil
		},
	}

	strict := NewOperatorService(repo, common.NewCacheService(60, 120), &stubConfig{})
	result, err := strict.Fleet(context.Background(), "Test Air")
	if err != nil {
		t.Fatalf("Fleet: %v", err)
	}
	if result.Groups[0].Role != fleet.RolePassenger {
		t.Errorf("strict rules should label the Fokker a passenger type, got %s", result.Groups[0].Role)
	}

	broad := NewOperatorService(repo, common.NewCacheService(60, 120), &stubConfig{
		bools: map[string]bool{common.ConfigKeyBroadFreighter: true},
	})
	result, err = broad.Fleet(context.Background(), "Test Air")
	if err != nil {
		t.Fatalf("Fleet: %v", err)
	}
	if result.Groups[0].Role != fleet.RoleFreighter {
		t.Errorf("broad heuristic should label any F-bearing type a freighter, got %s", result.Groups[0].Role)
	}
}

func TestFleetReview_LabelsEveryRow(t *testing.T) {
	repo := &mockOperatorRepo{
		GetFleetReviewRowsFunc: func(ctx context.Context, letter string) ([]entities.FleetReviewRow, error) {
			if letter != "f" {
				t.Errorf("expected letter %q passed through, got %q", "f", letter)
			}
			return []entities.FleetReviewRow{
				{Type: "747 8F", Details: "747 8F", AircraftCount: 10},
				{Type: "A320", Details: "A320 Flex", AircraftCount: 4},
			}, nil
		},
	}
	svc := NewOperatorService(repo, common.NewCacheService(60, 120), &stubConfig{})

	result, err := svc.FleetReview(context.Background(), "f")
	if err != nil {
		t.Fatalf("FleetReview: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Role != string(fleet.RoleFreighter) {
		t.Errorf("747 8F should audit as freighter, got %s", result.Entries[0].Role)
	}
	if result.Entries[1].Role != string(fleet.RolePassenger) {
		t.Errorf("the FLEX exclusion should keep the A320 a passenger type, got %s", result.Entries[1].Role)
	}
}

func TestFleetReview_EmptyFragmentRejected(t *testing.T) {
	svc := NewOperatorService(&mockOperatorRepo{}, common.NewCacheService(60, 120), &stubConfig{})

	_, err := svc.FleetReview(context.Background(), "")
	if code := queryCode(t, err); code != constants.ErrCodeInvalidInput {
		t.Errorf("expected %s, got %s", constants.ErrCodeInvalidInput, code)
	}
}
