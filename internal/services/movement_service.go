package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/geo"
	"cargo-charter/charterdesk/internal/models/dtos"
	"cargo-charter/charterdesk/internal/models/entities"
	"cargo-charter/charterdesk/internal/report"
)

// movementReader is the movement-table access the query services need.
type movementReader interface {
	GetRouteSummary(ctx context.Context, operator string, from, to time.Time) ([]entities.RouteSummaryRow, error)
	GetDestinationCriteriaRows(ctx context.Context, from, to time.Time, airportCodes, countryPatterns, continentCodes, typeFilters []string) ([]entities.MovementCriteriaRow, error)
	GetOriginOperatorRows(ctx context.Context, origin string, from, to time.Time) ([]entities.MovementCriteriaRow, error)
	GetRouteDetails(ctx context.Context, origin, destination string, from, to time.Time) ([]entities.RouteDetailRow, error)
	GetOperatorDestinationRows(ctx context.Context, operator string, from, to time.Time) ([]entities.MovementCriteriaRow, error)
	GetOperatorOrigins(ctx context.Context, operator string, from, to time.Time) ([]entities.OriginSummaryRow, error)
	GetDataWindow(ctx context.Context) (*entities.MovementWindowRow, error)
}

// fleetCounter is the fleet-composition query run alongside movement
// queries to enrich operator summaries.
type fleetCounter interface {
	GetFleetCounts(ctx context.Context, operators []string) ([]entities.FleetCountRow, error)
}

type MovementService struct {
	movements movementReader
	fleet     fleetCounter
	regions   *geo.Classifier
	config    runtimeConfig
}

func NewMovementService(movements movementReader, fleet fleetCounter, regions *geo.Classifier, config runtimeConfig) *MovementService {
	return &MovementService{
		movements: movements,
		fleet:     fleet,
		regions:   regions,
		config:    config,
	}
}

// OperatorRoutes summarizes one operator's traffic per origin→destination
// pair inside the window.
func (s *MovementService) OperatorRoutes(ctx context.Context, operator string, from, to time.Time) (*dtos.OperatorRoutesResult, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return nil, &QueryError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "Operator name is required",
		}
	}

	rows, err := s.movements.GetRouteSummary(ctx, operator, from, to)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}
	if len(rows) == 0 {
		return nil, &QueryError{
			Code:    constants.ErrCodeNoMovements,
			Message: constants.GetErrorMessage(constants.ErrCodeNoMovements),
		}
	}

	routes := make([]dtos.RouteSummaryEntry, 0, len(rows))
	for _, r := range rows {
		routes = append(routes, dtos.RouteSummaryEntry{
			Origin:       r.Origin,
			Destination:  r.Destination,
			Flights:      r.Flights,
			AircraftUsed: r.AircraftUsed,
		})
	}

	return &dtos.OperatorRoutesResult{
		Operator: operator,
		Window:   displayWindow(from, to),
		Routes:   routes,
	}, nil
}

// DestinationOperators finds operators serving the requested destination
// mix. Tokens are classified into airport / country / continent buckets,
// the flattened rows are aggregated, and operators missing the
// min(2, tokens) distinct-destination threshold are dropped.
func (s *MovementService) DestinationOperators(ctx context.Context, destinations, types []string, from, to time.Time) (*dtos.DestinationOperatorsResult, error) {
	criteria := s.regions.Classify(destinations)
	if criteria.IsEmpty() {
		return nil, &QueryError{
			Code:    constants.ErrCodeEmptyDestinations,
			Message: constants.GetErrorMessage(constants.ErrCodeEmptyDestinations),
		}
	}

	rows, err := s.movements.GetDestinationCriteriaRows(ctx, from, to,
		criteria.AirportCodes, criteria.CountryPatterns, criteria.ContinentCodes, types)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	fleetRows, err := s.fleetRowsFor(ctx, operatorNames(rows))
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	operators := report.Operators(criteriaReportRows(rows), fleetRows, criteria, types)
	if len(operators) == 0 {
		return nil, &QueryError{
			Code:    constants.ErrCodeNoMovements,
			Message: constants.GetErrorMessage(constants.ErrCodeNoMovements),
		}
	}

	requested := make([]string, 0, len(criteria.Tokens))
	for _, tok := range criteria.Tokens {
		requested = append(requested, strings.TrimSpace(tok.Raw))
	}

	return &dtos.DestinationOperatorsResult{
		Destinations: requested,
		Types:        types,
		Window:       displayWindow(from, to),
		Operators:    operators,
	}, nil
}

// OriginOperators finds operators departing from one airport.
func (s *MovementService) OriginOperators(ctx context.Context, origin string, from, to time.Time) (*dtos.OriginOperatorsResult, error) {
	tok := s.regions.ClassifyToken(origin)
	if tok.Kind != geo.TokenAirportCode {
		return nil, &QueryError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "Origin must be a three-letter airport code",
		}
	}

	rows, err := s.movements.GetOriginOperatorRows(ctx, tok.Value, from, to)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	fleetRows, err := s.fleetRowsFor(ctx, operatorNames(rows))
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	// No destination tokens here, so no threshold: every operator on the
	// origin is kept.
	operators := report.Operators(criteriaReportRows(rows), fleetRows, geo.Criteria{}, nil)
	if len(operators) == 0 {
		return nil, &QueryError{
			Code:    constants.ErrCodeNoMovements,
			Message: constants.GetErrorMessage(constants.ErrCodeNoMovements),
		}
	}

	return &dtos.OriginOperatorsResult{
		Origin:    tok.Value,
		Window:    displayWindow(from, to),
		Operators: operators,
	}, nil
}

// RouteDetails lists each carrier on one origin→destination pair with
// its classified equipment and a sample registration.
func (s *MovementService) RouteDetails(ctx context.Context, origin, destination string, from, to time.Time) (*dtos.RouteDetailsResult, error) {
	originTok := s.regions.ClassifyToken(origin)
	destTok := s.regions.ClassifyToken(destination)
	if originTok.Kind != geo.TokenAirportCode || destTok.Kind != geo.TokenAirportCode {
		return nil, &QueryError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "Origin and destination must be three-letter airport codes",
		}
	}

	rows, err := s.movements.GetRouteDetails(ctx, originTok.Value, destTok.Value, from, to)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}
	if len(rows) == 0 {
		return nil, &QueryError{
			Code:    constants.ErrCodeNoRouteTraffic,
			Message: constants.GetErrorMessage(constants.ErrCodeNoRouteTraffic),
		}
	}

	classifier := fleetClassifierFor(ctx, s.config)
	carriers := make([]dtos.RouteDetailEntry, 0, len(rows))
	for _, r := range rows {
		carriers = append(carriers, dtos.RouteDetailEntry{
			Operator:           r.Operator,
			IATA:               r.IATA,
			ICAO:               r.ICAO,
			AircraftType:       r.Type,
			Details:            r.Details,
			Role:               string(classifier.Classify(r.Type, r.Details)),
			Flights:            r.Flights,
			AvgMonthly:         report.MonthlyAverage(r.Flights),
			SampleRegistration: r.SampleRegistration,
		})
	}

	return &dtos.RouteDetailsResult{
		Origin:      originTok.Value,
		Destination: destTok.Value,
		Window:      displayWindow(from, to),
		Carriers:    carriers,
	}, nil
}

// OperatorOrigins groups an operator's departure airports by continent,
// optionally narrowed to one region.
func (s *MovementService) OperatorOrigins(ctx context.Context, operator, region string, from, to time.Time) (*dtos.OperatorOriginsResult, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return nil, &QueryError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "Operator name is required",
		}
	}

	regionTag := ""
	if strings.TrimSpace(region) != "" {
		tag, ok := s.regions.ContinentTag(region)
		if !ok {
			return nil, &QueryError{
				Code:    constants.ErrCodeUnknownRegion,
				Message: constants.GetErrorMessage(constants.ErrCodeUnknownRegion),
			}
		}
		regionTag = tag
	}

	rows, err := s.movements.GetOperatorOrigins(ctx, operator, from, to)
	if err != nil {
		return nil, &QueryError{
			Code:    constants.ErrCodeQueryFailed,
			Message: constants.GetErrorMessage(constants.ErrCodeQueryFailed),
			Err:     err,
		}
	}

	groups := groupOriginsByContinent(rows, regionTag)
	if len(groups) == 0 {
		return nil, &QueryError{
			Code:    constants.ErrCodeNoMovements,
			Message: constants.GetErrorMessage(constants.ErrCodeNoMovements),
		}
	}

	return &dtos.OperatorOriginsResult{
		Operator: operator,
		Window:   displayWindow(from, to),
		Region:   regionTag,
		Groups:   groups,
	}, nil
}

// DataWindow reports the span of movement data currently loaded.
func (s *MovementService) DataWindow(ctx context.Context) (*entities.DataWindow, error) {
	row, err := s.movements.GetDataWindow(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.DataWindow{
		Start:         row.WindowStart,
		End:           row.WindowEnd,
		MovementCount: row.MovementCount,
	}, nil
}

// groupOriginsByContinent buckets origin rows into continent groups.
// Groups order by total flights descending, airports within a group by
// flights descending then code.
func groupOriginsByContinent(rows []entities.OriginSummaryRow, regionTag string) []dtos.OriginGroup {
	type agg struct {
		continent string
		flights   int
		airports  []dtos.OriginEntry
	}

	groups := make(map[string]*agg)
	var order []string

	for _, r := range rows {
		if regionTag != "" && !strings.EqualFold(r.Continent, regionTag) {
			continue
		}
		g, ok := groups[r.Continent]
		if !ok {
			g = &agg{continent: r.Continent}
			groups[r.Continent] = g
			order = append(order, r.Continent)
		}
		g.flights += r.Flights
		g.airports = append(g.airports, dtos.OriginEntry{
			Code:        r.Origin,
			CountryName: r.CountryName,
			Flights:     r.Flights,
		})
	}

	out := make([]dtos.OriginGroup, 0, len(order))
	for _, key := range order {
		g := groups[key]
		sort.SliceStable(g.airports, func(a, b int) bool {
			if g.airports[a].Flights != g.airports[b].Flights {
				return g.airports[a].Flights > g.airports[b].Flights
			}
			return g.airports[a].Code < g.airports[b].Code
		})
		out = append(out, dtos.OriginGroup{Continent: g.continent, Airports: g.airports})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return groups[out[a].Continent].flights > groups[out[b].Continent].flights
	})

	return out
}

// fleetRowsFor loads fleet composition for the named operators; an empty
// operator list short-circuits without a query.
func (s *MovementService) fleetRowsFor(ctx context.Context, names []string) ([]report.FleetRow, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := s.fleet.GetFleetCounts(ctx, names)
	if err != nil {
		return nil, err
	}
	out := make([]report.FleetRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, report.FleetRow{
			Operator:     r.Operator,
			IATA:         r.IATA,
			ICAO:         r.ICAO,
			AircraftType: r.Type,
			Details:      r.Details,
			Count:        r.AircraftCount,
		})
	}
	return out, nil
}

func criteriaReportRows(rows []entities.MovementCriteriaRow) []report.Row {
	out := make([]report.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, report.Row{
			Operator:      r.Operator,
			IATA:          r.IATA,
			ICAO:          r.ICAO,
			Destination:   r.Destination,
			AircraftType:  r.Type,
			Details:       r.Details,
			CountryName:   r.CountryName,
			ContinentCode: r.Continent,
			Flights:       r.Flights,
		})
	}
	return out
}

// operatorNames collects distinct operator names in first-seen order.
func operatorNames(rows []entities.MovementCriteriaRow) []string {
	seen := make(map[string]struct{}, len(rows))
	var names []string
	for _, r := range rows {
		if _, ok := seen[r.Operator]; ok {
			continue
		}
		seen[r.Operator] = struct{}{}
		names = append(names, r.Operator)
	}
	return names
}

// displayWindow echoes the requested window with the inclusive end date;
// the parsed `to` is exclusive for the SQL comparison.
func displayWindow(from, to time.Time) dtos.QueryWindow {
	return dtos.QueryWindow{
		From: from.Format("2006-01-02"),
		To:   to.AddDate(0, 0, -1).Format("2006-01-02"),
	}
}
