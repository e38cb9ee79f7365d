package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/fleet"
	"cargo-charter/charterdesk/internal/match"
	"cargo-charter/charterdesk/internal/models/dtos"
	"cargo-charter/charterdesk/internal/models/entities"
)

const operatorSearchTTL = 15 * time.Minute

// operatorReader is the slice of the fleet-table repository the operator
// service needs; the movement services declare their own.
type operatorReader interface {
	SearchCandidates(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error)
	GetAircraft(ctx context.Context, operator string) ([]entities.AircraftRow, error)
	GetFleetReviewRows(ctx context.Context, letter string) ([]entities.FleetReviewRow, error)
}

// runtimeConfig is the slice of AppConfigService the query services read.
type runtimeConfig interface {
	GetIntVal(ctx context.Context, key string, fallback int) int
	GetBoolVal(ctx context.Context, key string, fallback bool) bool
}

type OperatorService struct {
	repo   operatorReader
	cache  common.CacheInterface
	config runtimeConfig
}

func NewOperatorService(repo operatorReader, cache common.CacheInterface, config runtimeConfig) *OperatorService {
	return &OperatorService{
		repo:   repo,
		cache:  cache,
		config: config,
	}
}

// Search resolves a free-text operator query into ranked candidates.
// Results are cached per normalized query; the DB is only hit on a miss.
func (s *OperatorService) Search(ctx context.Context, query string) (*dtos.OperatorSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &QueryError{
			Code:    constants.ErrCodeEmptyQuery,
			Message: constants.GetErrorMessage(constants.ErrCodeEmptyQuery),
		}
	}

	cacheKey := string(constants.CachePrefixOperatorSearch) + strings.ToLower(query)
	if cached, found := s.cache.Get(cacheKey); found {
		if matches, ok := cached.([]match.Candidate); ok {
			return &dtos.OperatorSearchResult{Query: query, Matches: matches}, nil
		}
	}

	rows, err := s.repo.SearchCandidates(ctx, query)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	candidates := make([]match.Candidate, 0, len(rows))
	for _, r := range rows {
		candidates = append(candidates, match.Candidate{
			Name:          r.Operator,
			IATA:          r.IATA,
			ICAO:          r.ICAO,
			AircraftCount: r.AircraftCount,
		})
	}

	matches, err := match.Rank(query, candidates)
	if err != nil {
		var noMatch *match.NoMatchError
		if errors.As(err, &noMatch) {
			return nil, &QueryError{
				Code:    constants.ErrCodeOperatorNotFound,
				Message: constants.GetErrorMessage(constants.ErrCodeOperatorNotFound),
				Err:     err,
			}
		}
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	s.cache.Set(cacheKey, matches, operatorSearchTTL)

	return &dtos.OperatorSearchResult{Query: query, Matches: matches}, nil
}

// Fleet returns the classified fleet breakdown for one operator.
func (s *OperatorService) Fleet(ctx context.Context, operator string) (*dtos.OperatorFleetResult, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return nil, &QueryError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "Operator name is required",
		}
	}

	rows, err := s.repo.GetAircraft(ctx, operator)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}
	if len(rows) == 0 {
		return nil, &QueryError{
			Code:    constants.ErrCodeOperatorNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodeOperatorNotFound),
		}
	}

	aircraft := make([]fleet.Aircraft, 0, len(rows))
	for _, r := range rows {
		aircraft = append(aircraft, fleet.Aircraft{
			Registration: r.Registration,
			Type:         r.Type,
			Details:      r.Details,
		})
	}

	groups := fleetClassifierFor(ctx, s.config).Breakdown(aircraft)

	return &dtos.OperatorFleetResult{
		Operator:   operator,
		Total:      len(rows),
		Groups:     groups,
		RoleCounts: fleet.RoleCounts(groups),
	}, nil
}

// FleetReview audits role classification across every type/details
// string containing the given fragment. An empty result is a valid
// audit, not an error.
func (s *OperatorService) FleetReview(ctx context.Context, letter string) (*dtos.FleetReviewResult, error) {
	letter = strings.TrimSpace(letter)
	if letter == "" {
		return nil, &QueryError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "A letter or fragment to audit is required",
		}
	}

	rows, err := s.repo.GetFleetReviewRows(ctx, letter)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	classifier := fleetClassifierFor(ctx, s.config)
	entries := make([]dtos.FleetReviewEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, dtos.FleetReviewEntry{
			Type:          r.Type,
			Details:       r.Details,
			Role:          string(classifier.Classify(r.Type, r.Details)),
			AircraftCount: r.AircraftCount,
		})
	}

	return &dtos.FleetReviewResult{Letter: letter, Entries: entries}, nil
}

// fleetClassifierFor builds the role classifier honoring the runtime
// broad-freighter toggle.
func fleetClassifierFor(ctx context.Context, config runtimeConfig) *fleet.Classifier {
	if config.GetBoolVal(ctx, common.ConfigKeyBroadFreighter, false) {
		return fleet.NewClassifier(fleet.WithBroadFreighterHeuristic())
	}
	return fleet.NewClassifier()
}
