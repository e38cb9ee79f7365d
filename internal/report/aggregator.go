package report

import (
	"math"
	"sort"
	"strings"

	"cargo-charter/charterdesk/internal/geo"
)

// TopDestinationsCap bounds the per-operator destination profile.
const TopDestinationsCap = 30

// monthsInWindow is the divisor for monthly averages over the standard
// reporting window.
const monthsInWindow = 12.0

// Row is one flattened movement result: operator identity, destination,
// equipment and flight count, with optional geography enrichment.
// CountryName and ContinentCode are empty when the destination has no
// geography record; that never disqualifies an airport-code match.
type Row struct {
	Operator      string
	IATA          string
	ICAO          string
	Destination   string
	AircraftType  string
	Details       string
	CountryName   string
	ContinentCode string
	Flights       int
}

// FleetRow is one aircraft-count result per operator and type, produced
// by the fleet-composition query that runs alongside the movement query.
type FleetRow struct {
	Operator     string
	IATA         string
	ICAO         string
	AircraftType string
	Details      string
	Count        int
}

// DestinationDetail is one served destination inside an operator summary.
type DestinationDetail struct {
	Code          string   `json:"code"`
	CountryName   string   `json:"country_name,omitempty"`
	ContinentCode string   `json:"continent_code,omitempty"`
	Flights       int      `json:"flights"`
	AircraftTypes []string `json:"aircraft_types"`
}

// OperatorSummary is the aggregated per-operator view.
type OperatorSummary struct {
	Operator           string              `json:"operator"`
	IATA               string              `json:"iata_code,omitempty"`
	ICAO               string              `json:"icao_code,omitempty"`
	FleetSize          int                 `json:"fleet_size"`
	MatchingFleet      int                 `json:"matching_fleet"`
	TotalFlights       int                 `json:"total_flights"`
	AvgMonthlyFlights  float64             `json:"avg_monthly_flights"`
	DestinationsServed int                 `json:"destinations_served"`
	Destinations       []DestinationDetail `json:"destinations"`
}

// DestinationSummary is one entry of a top-destinations profile.
type DestinationSummary struct {
	Code          string   `json:"code"`
	CountryName   string   `json:"country_name,omitempty"`
	Flights       int      `json:"flights"`
	AircraftTypes []string `json:"aircraft_types"`
	AvgMonthly    float64  `json:"avg_monthly"`
}

// Operators groups flattened movement rows into per-operator summaries.
//
// When criteria carries destination tokens, an operator is retained only
// if it serves at least min(2, token count) distinct requested
// destinations. A country token counts once no matter how many of its
// airports appear. With no tokens (single-route lookups) every operator
// is kept. Final order: total flights descending, operator name
// ascending.
func Operators(rows []Row, fleet []FleetRow, criteria geo.Criteria, typeFilter []string) []OperatorSummary {
	type destAgg struct {
		code      string
		country   string
		continent string
		flights   int
		types     map[string]struct{}
	}
	type opAgg struct {
		name      string
		iata      string
		icao      string
		flights   int
		dests     map[string]*destAgg
		destOrder []string
		satisfied map[int]struct{}
	}

	groups := make(map[string]*opAgg)
	var order []string

	for _, row := range rows {
		key := identityKey(row.Operator, row.IATA, row.ICAO)
		g, ok := groups[key]
		if !ok {
			g = &opAgg{
				name:      row.Operator,
				iata:      row.IATA,
				icao:      row.ICAO,
				dests:     make(map[string]*destAgg),
				satisfied: make(map[int]struct{}),
			}
			groups[key] = g
			order = append(order, key)
		}

		g.flights += row.Flights

		d, ok := g.dests[row.Destination]
		if !ok {
			d = &destAgg{
				code:      row.Destination,
				country:   row.CountryName,
				continent: row.ContinentCode,
				types:     make(map[string]struct{}),
			}
			g.dests[row.Destination] = d
			g.destOrder = append(g.destOrder, row.Destination)
		}
		d.flights += row.Flights
		if row.AircraftType != "" {
			d.types[row.AircraftType] = struct{}{}
		}
		if d.country == "" {
			d.country = row.CountryName
		}
		if d.continent == "" {
			d.continent = row.ContinentCode
		}

		for i, tok := range criteria.Tokens {
			if satisfies(tok, row) {
				g.satisfied[i] = struct{}{}
			}
		}
	}

	required := requiredDistinct(criteria)

	fleetTotals, fleetMatching := tallyFleet(fleet, typeFilter)

	var out []OperatorSummary
	for _, key := range order {
		g := groups[key]
		if required > 0 && len(g.satisfied) < required {
			continue
		}

		summary := OperatorSummary{
			Operator:           g.name,
			IATA:               g.iata,
			ICAO:               g.icao,
			FleetSize:          fleetTotals[key],
			MatchingFleet:      fleetMatching[key],
			TotalFlights:       g.flights,
			AvgMonthlyFlights:  roundTenth(float64(g.flights) / monthsInWindow),
			DestinationsServed: len(g.satisfied),
		}
		if required == 0 {
			// No token attribution requested: report raw distinct codes.
			summary.DestinationsServed = len(g.dests)
		}

		for _, code := range g.destOrder {
			d := g.dests[code]
			summary.Destinations = append(summary.Destinations, DestinationDetail{
				Code:          d.code,
				CountryName:   d.country,
				ContinentCode: d.continent,
				Flights:       d.flights,
				AircraftTypes: sortedSet(d.types),
			})
		}
		sort.SliceStable(summary.Destinations, func(a, b int) bool {
			if summary.Destinations[a].Flights != summary.Destinations[b].Flights {
				return summary.Destinations[a].Flights > summary.Destinations[b].Flights
			}
			return summary.Destinations[a].Code < summary.Destinations[b].Code
		})

		out = append(out, summary)
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].TotalFlights != out[b].TotalFlights {
			return out[a].TotalFlights > out[b].TotalFlights
		}
		return out[a].Operator < out[b].Operator
	})

	return out
}

// TopDestinations aggregates one operator's movement rows into its
// busiest destinations: flight count descending, capped at
// TopDestinationsCap entries.
func TopDestinations(rows []Row) []DestinationSummary {
	type destAgg struct {
		code    string
		country string
		flights int
		types   map[string]struct{}
	}

	groups := make(map[string]*destAgg)
	var order []string

	for _, row := range rows {
		d, ok := groups[row.Destination]
		if !ok {
			d = &destAgg{code: row.Destination, country: row.CountryName, types: make(map[string]struct{})}
			groups[row.Destination] = d
			order = append(order, row.Destination)
		}
		d.flights += row.Flights
		if row.AircraftType != "" {
			d.types[row.AircraftType] = struct{}{}
		}
		if d.country == "" {
			d.country = row.CountryName
		}
	}

	out := make([]DestinationSummary, 0, len(order))
	for _, code := range order {
		d := groups[code]
		out = append(out, DestinationSummary{
			Code:          d.code,
			CountryName:   d.country,
			Flights:       d.flights,
			AircraftTypes: sortedSet(d.types),
			AvgMonthly:    roundTenth(float64(d.flights) / monthsInWindow),
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Flights != out[b].Flights {
			return out[a].Flights > out[b].Flights
		}
		return out[a].Code < out[b].Code
	})

	if len(out) > TopDestinationsCap {
		out = out[:TopDestinationsCap]
	}
	return out
}

// requiredDistinct derives the retention threshold: a single requested
// destination must be served, any multi-destination request needs two.
func requiredDistinct(criteria geo.Criteria) int {
	n := criteria.TokenCount()
	if n == 0 {
		return 0
	}
	if n == 1 {
		return 1
	}
	return 2
}

// satisfies reports whether a movement row's destination answers one
// requested token. Airport tokens compare codes directly and need no
// geography; country and continent tokens require the joined fields.
func satisfies(tok geo.Token, row Row) bool {
	switch tok.Kind {
	case geo.TokenAirportCode:
		return strings.EqualFold(row.Destination, tok.Value)
	case geo.TokenCountryPattern:
		if row.CountryName == "" {
			return false
		}
		needle := strings.Trim(tok.Value, "%")
		return strings.Contains(strings.ToUpper(row.CountryName), strings.ToUpper(needle))
	case geo.TokenContinent:
		return row.ContinentCode != "" && strings.EqualFold(row.ContinentCode, tok.Value)
	}
	return false
}

func tallyFleet(fleet []FleetRow, typeFilter []string) (totals, matching map[string]int) {
	totals = make(map[string]int)
	matching = make(map[string]int)
	for _, f := range fleet {
		key := identityKey(f.Operator, f.IATA, f.ICAO)
		totals[key] += f.Count
		if typeMatches(f.AircraftType, typeFilter) {
			matching[key] += f.Count
		}
	}
	return totals, matching
}

// typeMatches checks an aircraft type against the requested filter; an
// empty filter matches everything.
func typeMatches(acType string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	upper := strings.ToUpper(acType)
	for _, f := range filter {
		if f == "" {
			continue
		}
		if strings.Contains(upper, strings.ToUpper(f)) {
			return true
		}
	}
	return false
}

// MonthlyAverage converts a flight total over the standard reporting
// window into a per-month figure, rounded to one decimal.
func MonthlyAverage(totalFlights int) float64 {
	return roundTenth(float64(totalFlights) / monthsInWindow)
}

func identityKey(name, iata, icao string) string {
	return name + "|" + iata + "|" + icao
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
