package fleet

import (
	"sort"
	"strings"
)

// Role is the configuration label assigned to an aircraft.
type Role string

const (
	RoleFreighter    Role = "Freighter"
	RolePassenger    Role = "Passenger"
	RolePassengerVIP Role = "Passenger (VIP)"
	RoleMultiRole    Role = "Multi-Role"
)

// Rule is one entry in the ordered classification cascade. A rule fires
// when any marker is contained in the text or any suffix ends it, and no
// exclusion is present anywhere. The first firing rule wins; later rules
// never override.
type Rule struct {
	Label      Role
	Markers    []string
	Suffixes   []string
	Exclusions []string
}

// DefaultRules returns the classification cascade in evaluation order.
// The exclusion sets disambiguate overloaded single-letter suffixes: a
// military variant like 767-2FK must not count as a freighter just
// because it ends in F.
func DefaultRules() []Rule {
	return []Rule{
		{
			Label:   RolePassengerVIP,
			Markers: []string{"(BBJ", "VIP"},
		},
		{
			Label:      RoleFreighter,
			Suffixes:   []string{"F", "-F", "PF"},
			Markers:    []string{"(BCF)", "(BDSF)", "(SF)", "(PCF)", "(P2F)", "FREIGHTER", "CARGO"},
			Exclusions: []string{"FK", "TANKER", "VIP", "FIRST", "FLEX"},
		},
		{
			Label:      RoleMultiRole,
			Markers:    []string{"(FC)", "(CF)", "(C)", "(M)"},
			Exclusions: []string{"(BCF)", "(BDSF)", "(SF)", "(PCF)", "(P2F)"},
		},
	}
}

// Classifier assigns exactly one role to an aircraft from its type and
// configuration text. Pure and total: it never errors, and unclassifiable
// text falls through to Passenger.
type Classifier struct {
	rules []Rule
}

// Option configures a Classifier at construction.
type Option func(*Classifier)

// WithRules replaces the default cascade.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithBroadFreighterHeuristic additionally treats any text containing the
// letter F anywhere as a freighter candidate (still subject to the
// freighter exclusions). This reproduces a legacy catch-all that is far
// too broad for general use, so it is off unless explicitly enabled.
func WithBroadFreighterHeuristic() Option {
	return func(c *Classifier) {
		for i := range c.rules {
			if c.rules[i].Label == RoleFreighter {
				c.rules[i].Markers = append(c.rules[i].Markers, "F")
			}
		}
	}
}

// NewClassifier builds a classifier over the default cascade unless
// overridden by options. Options apply in order.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{rules: DefaultRules()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify labels one aircraft from its type and details text. Matching
// is case-insensitive substring/suffix matching over the combined text.
func (c *Classifier) Classify(acType, details string) Role {
	text := strings.ToUpper(strings.TrimSpace(strings.TrimSpace(acType) + " " + strings.TrimSpace(details)))

	for _, rule := range c.rules {
		if ruleFires(rule, text) {
			return rule.Label
		}
	}
	return RolePassenger
}

func ruleFires(rule Rule, text string) bool {
	if containsAny(text, rule.Exclusions) {
		return false
	}
	for _, m := range rule.Markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	for _, s := range rule.Suffixes {
		if strings.HasSuffix(text, s) {
			return true
		}
	}
	return false
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// Aircraft is the minimal input for fleet breakdowns.
type Aircraft struct {
	Registration string
	Type         string
	Details      string
}

// TypeGroup is one classified fleet entry: all registrations sharing a
// type/details pair, with the role that pair resolves to.
type TypeGroup struct {
	Type          string   `json:"type"`
	Details       string   `json:"details"`
	Role          Role     `json:"role"`
	Registrations []string `json:"registrations"`
}

// Breakdown groups a fleet by (type, details), classifies each group
// once, and orders groups by size descending then type ascending.
// Registration order within a group follows input order.
func (c *Classifier) Breakdown(aircraft []Aircraft) []TypeGroup {
	type key struct{ acType, details string }

	index := make(map[key]int)
	var groups []TypeGroup

	for _, ac := range aircraft {
		k := key{ac.Type, ac.Details}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, TypeGroup{
				Type:    ac.Type,
				Details: ac.Details,
				Role:    c.Classify(ac.Type, ac.Details),
			})
		}
		groups[i].Registrations = append(groups[i].Registrations, ac.Registration)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if len(groups[a].Registrations) != len(groups[b].Registrations) {
			return len(groups[a].Registrations) > len(groups[b].Registrations)
		}
		return groups[a].Type < groups[b].Type
	})

	return groups
}

// RoleCounts tallies a breakdown into per-role aircraft counts.
func RoleCounts(groups []TypeGroup) map[Role]int {
	counts := make(map[Role]int)
	for _, g := range groups {
		counts[g.Role] += len(g.Registrations)
	}
	return counts
}
