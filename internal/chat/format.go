// Package chat renders query results as plain text for the
// conversational client and manages transport-sized chunking with
// continuation tokens.
package chat

import (
	"fmt"
	"sort"
	"strings"

	"cargo-charter/charterdesk/internal/fleet"
	"cargo-charter/charterdesk/internal/match"
	"cargo-charter/charterdesk/internal/models/dtos"
	"cargo-charter/charterdesk/internal/report"
)

// DefaultDisplayLimit caps how many entries one chat page lists before a
// continuation token takes over.
const DefaultDisplayLimit = 50

// maxRegistrationsShown bounds the registration list inside one fleet
// entry.
const maxRegistrationsShown = 12

// PageOptions controls numbering and framing for one chat page.
// Start is the zero-based index of the first entry on this page; Total
// counts entries across all pages. The header appears only on the first
// page, the tail only while entries remain.
type PageOptions struct {
	Start  int
	Total  int
	Window string
}

func (o PageOptions) header() string {
	if o.Start > 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results:\n", o.Total)
	if o.Window != "" {
		fmt.Fprintf(&b, "Data window: %s\n", o.Window)
	}
	b.WriteString("\n")
	return b.String()
}

func (o PageOptions) tail(shown int) string {
	rest := o.Total - o.Start - shown
	if rest <= 0 {
		return ""
	}
	return fmt.Sprintf("\n... and %d more results", rest)
}

func orNA(code string) string {
	if code == "" {
		return "N/A"
	}
	return code
}

// FormatMatches renders an operator resolution result. Match lists are
// already capped upstream, so there is no paging here.
func FormatMatches(query string, matches []match.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Operators matching %q:\n\n", query)
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. %s (IATA: %s | ICAO: %s) - %d aircraft\n",
			i+1, m.Name, orNA(m.IATA), orNA(m.ICAO), m.AircraftCount)
	}
	return b.String()
}

// FormatOperatorSummaries renders one page of aggregated operators.
func FormatOperatorSummaries(ops []report.OperatorSummary, opts PageOptions) string {
	var b strings.Builder
	b.WriteString(opts.header())
	for i, op := range ops {
		fmt.Fprintf(&b, "%d. %s\n", opts.Start+i+1, op.Operator)
		fmt.Fprintf(&b, "   Flights: %d (avg %.1f/mo) | IATA: %s", op.TotalFlights, op.AvgMonthlyFlights, orNA(op.IATA))
		if op.FleetSize > 0 {
			fmt.Fprintf(&b, " | Fleet: %d", op.FleetSize)
			if op.MatchingFleet > 0 && op.MatchingFleet != op.FleetSize {
				fmt.Fprintf(&b, " (%d matching)", op.MatchingFleet)
			}
		}
		b.WriteString("\n\n")
	}
	b.WriteString(opts.tail(len(ops)))
	return strings.TrimRight(b.String(), "\n")
}

// FormatRouteSummaries renders one page of an operator's routes.
func FormatRouteSummaries(operator string, routes []dtos.RouteSummaryEntry, opts PageOptions) string {
	var b strings.Builder
	if opts.Start == 0 {
		fmt.Fprintf(&b, "Routes flown by %s\n", operator)
	}
	b.WriteString(opts.header())
	for i, r := range routes {
		fmt.Fprintf(&b, "%d. %s → %s\n", opts.Start+i+1, r.Origin, r.Destination)
		fmt.Fprintf(&b, "   Flights: %d", r.Flights)
		if r.AircraftUsed > 0 {
			fmt.Fprintf(&b, " | Aircraft used: %d", r.AircraftUsed)
		}
		b.WriteString("\n\n")
	}
	b.WriteString(opts.tail(len(routes)))
	return strings.TrimRight(b.String(), "\n")
}

// FormatRouteDetails renders the carriers on one route with their
// classified equipment.
func FormatRouteDetails(origin, destination string, carriers []dtos.RouteDetailEntry, opts PageOptions) string {
	var b strings.Builder
	if opts.Start == 0 {
		fmt.Fprintf(&b, "Carriers on %s → %s\n", origin, destination)
	}
	b.WriteString(opts.header())
	for i, c := range carriers {
		fmt.Fprintf(&b, "%d. %s\n", opts.Start+i+1, c.Operator)
		equipment := c.AircraftType
		if c.Details != "" {
			equipment += " " + c.Details
		}
		fmt.Fprintf(&b, "   Flights: %d | Type: %s [%s] | Sample Aircraft: %s\n\n",
			c.Flights, equipment, c.Role, orNA(c.SampleRegistration))
	}
	b.WriteString(opts.tail(len(carriers)))
	return strings.TrimRight(b.String(), "\n")
}

// FormatFleet renders a classified fleet breakdown. Fleets are shown
// whole; registrations inside one entry are capped.
func FormatFleet(operator string, groups []fleet.TypeGroup, counts map[fleet.Role]int) string {
	total := 0
	for _, g := range groups {
		total += len(g.Registrations)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Fleet of %s: %d aircraft\n\n", operator, total)
	for i, g := range groups {
		label := g.Type
		if g.Details != "" {
			label += " " + g.Details
		}
		fmt.Fprintf(&b, "%d. %s [%s]\n", i+1, label, g.Role)

		regs := g.Registrations
		extra := 0
		if len(regs) > maxRegistrationsShown {
			extra = len(regs) - maxRegistrationsShown
			regs = regs[:maxRegistrationsShown]
		}
		fmt.Fprintf(&b, "   Count: %d | Registrations: %s", len(g.Registrations), strings.Join(regs, ", "))
		if extra > 0 {
			fmt.Fprintf(&b, ", +%d more", extra)
		}
		b.WriteString("\n\n")
	}

	b.WriteString(formatRoleCounts(counts))
	return strings.TrimRight(b.String(), "\n")
}

func formatRoleCounts(counts map[fleet.Role]int) string {
	if len(counts) == 0 {
		return ""
	}

	type rc struct {
		role  fleet.Role
		count int
	}
	list := make([]rc, 0, len(counts))
	for role, count := range counts {
		list = append(list, rc{role, count})
	}
	sort.Slice(list, func(a, b int) bool {
		if list[a].count != list[b].count {
			return list[a].count > list[b].count
		}
		return list[a].role < list[b].role
	})

	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, fmt.Sprintf("%s: %d", e.role, e.count))
	}
	return "Roles: " + strings.Join(parts, " | ")
}

// FormatDestinationSummaries renders one page of an operator's top
// destinations.
func FormatDestinationSummaries(operator string, dests []report.DestinationSummary, opts PageOptions) string {
	var b strings.Builder
	if opts.Start == 0 {
		fmt.Fprintf(&b, "Top destinations for %s\n", operator)
	}
	b.WriteString(opts.header())
	for i, d := range dests {
		fmt.Fprintf(&b, "%d. %s", opts.Start+i+1, d.Code)
		if d.CountryName != "" {
			fmt.Fprintf(&b, " (%s)", d.CountryName)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "   Flights: %d (avg %.1f/mo)", d.Flights, d.AvgMonthly)
		if len(d.AircraftTypes) > 0 {
			fmt.Fprintf(&b, " | Types: %s", strings.Join(d.AircraftTypes, ", "))
		}
		b.WriteString("\n\n")
	}
	b.WriteString(opts.tail(len(dests)))
	return strings.TrimRight(b.String(), "\n")
}

// FormatOrigins renders origin airports grouped by continent, numbered
// continuously in the original region - airport layout.
func FormatOrigins(operator string, groups []dtos.OriginGroup, window string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Origins flown by %s\n", operator)
	if window != "" {
		fmt.Fprintf(&b, "Data window: %s\n", window)
	}
	b.WriteString("\n")

	n := 0
	for _, g := range groups {
		region := g.Continent
		if region == "" {
			region = "Unknown"
		}
		for _, a := range g.Airports {
			n++
			fmt.Fprintf(&b, "%d. %s - %s\n", n, region, a.Code)
			fmt.Fprintf(&b, "   Flights: %d\n\n", a.Flights)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatFleetReview renders the classification audit for one letter.
func FormatFleetReview(letter string, entries []dtos.FleetReviewEntry, opts PageOptions) string {
	var b strings.Builder
	if opts.Start == 0 {
		fmt.Fprintf(&b, "Type strings containing %q\n", letter)
	}
	b.WriteString(opts.header())
	for i, e := range entries {
		label := e.Type
		if e.Details != "" {
			label += " " + e.Details
		}
		fmt.Fprintf(&b, "%d. %s [%s]\n", opts.Start+i+1, label, e.Role)
		fmt.Fprintf(&b, "   Aircraft: %d\n\n", e.AircraftCount)
	}
	b.WriteString(opts.tail(len(entries)))
	return strings.TrimRight(b.String(), "\n")
}
