package entities

import "time"

// Scan targets for the sqlx movement and fleet queries. Column aliases
// match internal/constants/queries.go.

type OperatorCandidateRow struct {
	Operator      string `db:"operator"`
	IATA          string `db:"operator_iata_code"`
	ICAO          string `db:"operator_icao_code"`
	AircraftCount int    `db:"aircraft_count"`
}

type AircraftRow struct {
	Registration string `db:"registration"`
	Type         string `db:"type"`
	Details      string `db:"details"`
}

type FleetCountRow struct {
	Operator      string `db:"operator"`
	IATA          string `db:"operator_iata_code"`
	ICAO          string `db:"operator_icao_code"`
	Type          string `db:"type"`
	Details       string `db:"details"`
	AircraftCount int    `db:"aircraft_count"`
}

type FleetReviewRow struct {
	Type          string `db:"type"`
	Details       string `db:"details"`
	AircraftCount int    `db:"aircraft_count"`
}

type RouteSummaryRow struct {
	Origin       string `db:"origin_code"`
	Destination  string `db:"destination_code"`
	Flights      int    `db:"flights"`
	AircraftUsed int    `db:"aircraft_used"`
}

// MovementCriteriaRow is one flattened movement aggregate with optional
// geography enrichment; empty country/continent means no reference row.
type MovementCriteriaRow struct {
	Operator    string `db:"operator"`
	IATA        string `db:"operator_iata_code"`
	ICAO        string `db:"operator_icao_code"`
	Destination string `db:"destination_code"`
	Type        string `db:"type"`
	Details     string `db:"details"`
	CountryName string `db:"country_name"`
	Continent   string `db:"continent"`
	Flights     int    `db:"flights"`
}

type RouteDetailRow struct {
	Operator           string `db:"operator"`
	IATA               string `db:"operator_iata_code"`
	ICAO               string `db:"operator_icao_code"`
	Type               string `db:"type"`
	Details            string `db:"details"`
	Flights            int    `db:"flights"`
	SampleRegistration string `db:"sample_registration"`
}

type OriginSummaryRow struct {
	Origin      string `db:"origin_code"`
	Continent   string `db:"continent"`
	CountryName string `db:"country_name"`
	Flights     int    `db:"flights"`
}

// MovementWindowRow carries MIN/MAX departure timestamps; both are nil
// when the movements table is empty.
type MovementWindowRow struct {
	WindowStart   *time.Time `db:"window_start"`
	WindowEnd     *time.Time `db:"window_end"`
	MovementCount int        `db:"movement_count"`
}
