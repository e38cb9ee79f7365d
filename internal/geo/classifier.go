package geo

import (
	"strings"
)

// TokenKind discriminates what a raw destination token resolved to.
type TokenKind int

const (
	TokenAirportCode TokenKind = iota
	TokenContinent
	TokenCountryPattern
)

// Token is one classified destination input.
// Value holds the normalized form: an uppercased IATA code, a 2-letter
// continent tag, or a %Name% country pattern.
type Token struct {
	Kind  TokenKind
	Value string
	Raw   string
}

// Criteria is the bucketed form handed to the movement queries.
// Buckets combine with OR: a destination matches if it satisfies any
// non-empty bucket.
type Criteria struct {
	AirportCodes    []string
	CountryPatterns []string
	ContinentCodes  []string
	Tokens          []Token
}

// IsEmpty reports whether no bucket holds any criterion.
func (c Criteria) IsEmpty() bool {
	return len(c.AirportCodes) == 0 && len(c.CountryPatterns) == 0 && len(c.ContinentCodes) == 0
}

// TokenCount returns how many distinct destination tokens were requested.
func (c Criteria) TokenCount() int {
	return len(c.Tokens)
}

// Classifier sorts free-text destination tokens into airport / continent /
// country buckets. The continent table is injected so alternate region
// definitions can be supplied without touching globals.
type Classifier struct {
	regions map[string]string
}

// DefaultRegions returns the recognized continent set mapping both full
// names and 2-letter tags to the canonical tag.
func DefaultRegions() map[string]string {
	return map[string]string{
		"asia":          "AS",
		"europe":        "EU",
		"north america": "NA",
		"south america": "SA",
		"africa":        "AF",
		"oceania":       "OC",
		"antarctica":    "AN",
	}
}

// NewClassifier builds a classifier over the given name→tag region table.
// Lookup keys are matched case-insensitively against both the names and
// the tags themselves.
func NewClassifier(regions map[string]string) *Classifier {
	lookup := make(map[string]string, len(regions)*2)
	for name, tag := range regions {
		lookup[strings.ToLower(name)] = tag
		lookup[strings.ToLower(tag)] = tag
	}
	return &Classifier{regions: lookup}
}

// ClassifyToken resolves a single raw token into exactly one bucket:
//   - exactly 3 alphabetic characters → airport code, uppercased
//   - a known continent name or tag   → 2-letter continent tag
//   - anything else                   → %Name% country pattern
//
// No validation against real airports or countries happens here; a token
// that merely looks like an airport code will match zero rows downstream.
func (c *Classifier) ClassifyToken(raw string) Token {
	trimmed := strings.TrimSpace(raw)

	if isAirportCode(trimmed) {
		return Token{Kind: TokenAirportCode, Value: strings.ToUpper(trimmed), Raw: raw}
	}

	if tag, ok := c.regions[strings.ToLower(trimmed)]; ok {
		return Token{Kind: TokenContinent, Value: tag, Raw: raw}
	}

	return Token{Kind: TokenCountryPattern, Value: "%" + capitalize(trimmed) + "%", Raw: raw}
}

// Classify buckets a full token list. Every non-empty token lands in
// exactly one bucket; none are dropped or duplicated.
func (c *Classifier) Classify(tokens []string) Criteria {
	var crit Criteria
	for _, raw := range tokens {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		tok := c.ClassifyToken(raw)
		crit.Tokens = append(crit.Tokens, tok)
		switch tok.Kind {
		case TokenAirportCode:
			crit.AirportCodes = append(crit.AirportCodes, tok.Value)
		case TokenContinent:
			crit.ContinentCodes = append(crit.ContinentCodes, tok.Value)
		case TokenCountryPattern:
			crit.CountryPatterns = append(crit.CountryPatterns, tok.Value)
		}
	}
	return crit
}

// IsContinent reports whether the raw value names a recognized continent,
// by full name or tag.
func (c *Classifier) IsContinent(raw string) bool {
	_, ok := c.regions[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ContinentTag resolves a continent name or tag to its canonical 2-letter
// form. Returns false when unrecognized.
func (c *Classifier) ContinentTag(raw string) (string, bool) {
	tag, ok := c.regions[strings.ToLower(strings.TrimSpace(raw))]
	return tag, ok
}

func isAirportCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// capitalize uppercases the first letter and lowercases the rest, the
// form country names are stored in.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
