package dtos

import (
	"time"

	"cargo-charter/charterdesk/internal/fleet"
	"cargo-charter/charterdesk/internal/match"
	"cargo-charter/charterdesk/internal/report"
)

// ---- Envelope ----

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// QueryWindow echoes the movement window a query ran against.
type QueryWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ChatPayload is attached to query results when format=chat: the result
// rendered as transport-sized text chunks, plus a continuation token
// when the display limit truncated the result set.
type ChatPayload struct {
	Messages          []string `json:"messages"`
	ContinuationToken string   `json:"continuation_token,omitempty"`
}

// ---- Operator resolution ----

type OperatorSearchResult struct {
	Query   string            `json:"query"`
	Matches []match.Candidate `json:"matches"`
	Chat    *ChatPayload      `json:"chat,omitempty"`
}

// ---- Route summaries ----

type RouteSummaryEntry struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Flights      int    `json:"flights"`
	AircraftUsed int    `json:"aircraft_used"`
}

type OperatorRoutesResult struct {
	Operator string              `json:"operator"`
	Window   QueryWindow         `json:"window"`
	Routes   []RouteSummaryEntry `json:"routes"`
	Chat     *ChatPayload        `json:"chat,omitempty"`
}

// ---- Fleet ----

type OperatorFleetResult struct {
	Operator   string             `json:"operator"`
	Total      int                `json:"total_aircraft"`
	Groups     []fleet.TypeGroup  `json:"groups"`
	RoleCounts map[fleet.Role]int `json:"role_counts"`
	Chat       *ChatPayload       `json:"chat,omitempty"`
}

// ---- Profile ----

type OperatorProfileResult struct {
	Operator        string                      `json:"operator"`
	IATA            string                      `json:"iata_code,omitempty"`
	ICAO            string                      `json:"icao_code,omitempty"`
	Window          QueryWindow                 `json:"window"`
	FleetGroups     []fleet.TypeGroup           `json:"fleet_groups"`
	RoleCounts      map[fleet.Role]int          `json:"role_counts"`
	TotalFlights    int                         `json:"total_flights"`
	TopDestinations []report.DestinationSummary `json:"top_destinations"`
	Chat            *ChatPayload                `json:"chat,omitempty"`
}

// ---- Destination / origin matching ----

type DestinationOperatorsResult struct {
	Destinations []string                 `json:"destinations"`
	Types        []string                 `json:"types,omitempty"`
	Window       QueryWindow              `json:"window"`
	Operators    []report.OperatorSummary `json:"operators"`
	Truncated    bool                     `json:"truncated,omitempty"`
	Chat         *ChatPayload             `json:"chat,omitempty"`
}

type OriginOperatorsResult struct {
	Origin    string                   `json:"origin"`
	Window    QueryWindow              `json:"window"`
	Operators []report.OperatorSummary `json:"operators"`
	Truncated bool                     `json:"truncated,omitempty"`
	Chat      *ChatPayload             `json:"chat,omitempty"`
}

// ---- Route details ----

type RouteDetailEntry struct {
	Operator           string  `json:"operator"`
	IATA               string  `json:"iata_code,omitempty"`
	ICAO               string  `json:"icao_code,omitempty"`
	AircraftType       string  `json:"aircraft_type"`
	Details            string  `json:"details,omitempty"`
	Role               string  `json:"role"`
	Flights            int     `json:"flights"`
	AvgMonthly         float64 `json:"avg_monthly"`
	SampleRegistration string  `json:"sample_registration,omitempty"`
}

type RouteDetailsResult struct {
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	Window      QueryWindow        `json:"window"`
	Carriers    []RouteDetailEntry `json:"carriers"`
	Chat        *ChatPayload       `json:"chat,omitempty"`
}

// ---- Origins by continent ----

type OriginEntry struct {
	Code        string `json:"code"`
	CountryName string `json:"country_name,omitempty"`
	Flights     int    `json:"flights"`
}

type OriginGroup struct {
	Continent string        `json:"continent"`
	Airports  []OriginEntry `json:"airports"`
}

type OperatorOriginsResult struct {
	Operator string        `json:"operator"`
	Window   QueryWindow   `json:"window"`
	Region   string        `json:"region,omitempty"`
	Groups   []OriginGroup `json:"groups"`
	Chat     *ChatPayload  `json:"chat,omitempty"`
}

// ---- Classification audit ----

type FleetReviewEntry struct {
	Type          string `json:"type"`
	Details       string `json:"details,omitempty"`
	Role          string `json:"role"`
	AircraftCount int    `json:"aircraft_count"`
}

type FleetReviewResult struct {
	Letter  string             `json:"letter"`
	Entries []FleetReviewEntry `json:"entries"`
	Chat    *ChatPayload       `json:"chat,omitempty"`
}

// ---- Chat continuation ----

type ContinuationResult struct {
	Messages          []string `json:"messages"`
	Remaining         int      `json:"remaining"`
	ContinuationToken string   `json:"continuation_token,omitempty"`
}

// ---- Admin: geography sync ----

type GeographySyncResult struct {
	EventType      string     `json:"event_type"`
	Status         string     `json:"status"`
	AirportsSynced int        `json:"airports_synced"`
	Skipped        bool       `json:"skipped,omitempty"`
	LastSyncedAt   *time.Time `json:"last_synced_at,omitempty"`
}

type GeographyStatusResult struct {
	AirportCount  int64      `json:"airport_count"`
	LastEventType string     `json:"last_event_type,omitempty"`
	LastStatus    string     `json:"last_status,omitempty"`
	LastSyncedAt  *time.Time `json:"last_synced_at,omitempty"`
}
