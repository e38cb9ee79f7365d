package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/fleet"
	"cargo-charter/charterdesk/internal/models/dtos"
	"cargo-charter/charterdesk/internal/models/entities"
	"cargo-charter/charterdesk/internal/report"
)

// ProfileService assembles the combined operator view from the fleet
// and movement tables.
type ProfileService struct {
	operators operatorReader
	movements movementReader
	cache     common.CacheInterface
	config    runtimeConfig
}

func NewProfileService(operators operatorReader, movements movementReader, cache common.CacheInterface, config runtimeConfig) *ProfileService {
	return &ProfileService{
		operators: operators,
		movements: movements,
		cache:     cache,
		config:    config,
	}
}

// Profile returns fleet breakdown, role counts, and top destinations for
// one operator. The fleet and movement queries run in parallel; either
// side may come back empty as long as the other knows the operator.
func (s *ProfileService) Profile(ctx context.Context, operator string, from, to time.Time) (*dtos.OperatorProfileResult, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return nil, &QueryError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "Operator name is required",
		}
	}

	var (
		aircraftRows []entities.AircraftRow
		destRows     []entities.MovementCriteriaRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.operators.GetAircraft(gctx, operator)
		if err != nil {
			return err
		}
		aircraftRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.movements.GetOperatorDestinationRows(gctx, operator, from, to)
		if err != nil {
			return err
		}
		destRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	if len(aircraftRows) == 0 && len(destRows) == 0 {
		return nil, &QueryError{
			Code:    constants.ErrCodeOperatorNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodeOperatorNotFound),
		}
	}

	aircraft := make([]fleet.Aircraft, 0, len(aircraftRows))
	for _, r := range aircraftRows {
		aircraft = append(aircraft, fleet.Aircraft{
			Registration: r.Registration,
			Type:         r.Type,
			Details:      r.Details,
		})
	}
	groups := fleetClassifierFor(ctx, s.config).Breakdown(aircraft)

	totalFlights := 0
	for _, r := range destRows {
		totalFlights += r.Flights
	}

	// Designators come from the movement rows; the fleet table does not
	// carry them.
	iata, icao := "", ""
	for _, r := range destRows {
		if iata == "" {
			iata = r.IATA
		}
		if icao == "" {
			icao = r.ICAO
		}
		if iata != "" && icao != "" {
			break
		}
	}

	top := report.TopDestinations(criteriaReportRows(destRows))
	s.fillCountryNames(top)

	return &dtos.OperatorProfileResult{
		Operator:        operator,
		IATA:            iata,
		ICAO:            icao,
		Window:          displayWindow(from, to),
		FleetGroups:     groups,
		RoleCounts:      fleet.RoleCounts(groups),
		TotalFlights:    totalFlights,
		TopDestinations: top,
	}, nil
}

// fillCountryNames patches destination entries the geography join missed
// from the cached IATA→country map, once the cache worker has built it.
func (s *ProfileService) fillCountryNames(dests []report.DestinationSummary) {
	missing := false
	for i := range dests {
		if dests[i].CountryName == "" {
			missing = true
			break
		}
	}
	if !missing {
		return
	}

	val, found := s.cache.Get(string(constants.CachePrefixGeographyMap))
	if !found {
		return
	}
	names := toCountryNameMap(val)
	for i := range dests {
		if dests[i].CountryName == "" {
			dests[i].CountryName = names[dests[i].Code]
		}
	}
}

// toCountryNameMap unwraps the cached map; the Redis backend round-trips
// it through JSON as map[string]interface{}.
func toCountryNameMap(val any) map[string]string {
	switch v := val.(type) {
	case map[string]string:
		return v
	case map[string]interface{}:
		out := make(map[string]string, len(v))
		for k, item := range v {
			if s, ok := item.(string); ok {
				out[k] = s
			}
		}
		return out
	}
	return nil
}
