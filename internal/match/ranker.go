package match

import (
	"fmt"
	"sort"
	"strings"
)

// MaxResults caps how many ranked candidates a search returns.
const MaxResults = 15

// Match tiers, lower is stronger. FallbackTier marks rows the candidate
// search included on a loose upstream match that none of the structural
// predicates explain.
const (
	TierIATAExact     = 1
	TierICAOExact     = 2
	TierNameExact     = 3
	TierNamePrefix    = 4
	TierNameSubstring = 5
	TierIATASubstring = 6
	TierICAOSubstring = 7
	FallbackTier      = 8
)

// Candidate is one operator row under ranking. MatchRank is assigned by
// Rank; input values are ignored.
type Candidate struct {
	Name          string `json:"name"`
	IATA          string `json:"iata_code"`
	ICAO          string `json:"icao_code"`
	AircraftCount int    `json:"aircraft_count"`
	MatchRank     int    `json:"match_rank"`
}

// NoMatchError reports that no candidate structurally matched the query.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no operator matched %q", e.Query)
}

// Rank assigns each candidate a match tier against the query, orders by
// (tier ascending, aircraft count descending) and truncates to
// MaxResults. The sort is stable: equal keys keep their input order.
//
// Fallback-tier rows survive only when at least one candidate matched a
// structural predicate; when none did, Rank fails with a NoMatchError.
func Rank(query string, candidates []Candidate) ([]Candidate, error) {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil, &NoMatchError{Query: query}
	}

	ranked := make([]Candidate, len(candidates))
	anyStructural := false

	for i, cand := range candidates {
		cand.MatchRank = tierFor(q, cand)
		if cand.MatchRank < FallbackTier {
			anyStructural = true
		}
		ranked[i] = cand
	}

	if !anyStructural {
		return nil, &NoMatchError{Query: query}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].MatchRank != ranked[b].MatchRank {
			return ranked[a].MatchRank < ranked[b].MatchRank
		}
		return ranked[a].AircraftCount > ranked[b].AircraftCount
	})

	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return ranked, nil
}

func tierFor(q string, cand Candidate) int {
	name := strings.ToUpper(strings.TrimSpace(cand.Name))
	iata := strings.ToUpper(strings.TrimSpace(cand.IATA))
	icao := strings.ToUpper(strings.TrimSpace(cand.ICAO))

	switch {
	case iata != "" && iata == q:
		return TierIATAExact
	case icao != "" && icao == q:
		return TierICAOExact
	case name != "" && name == q:
		return TierNameExact
	case name != "" && strings.HasPrefix(name, q):
		return TierNamePrefix
	case name != "" && strings.Contains(name, q):
		return TierNameSubstring
	case iata != "" && strings.Contains(iata, q):
		return TierIATASubstring
	case icao != "" && strings.Contains(icao, q):
		return TierICAOSubstring
	default:
		return FallbackTier
	}
}
