// Package matcher selects catalog records by keyword and budget.
//
// A record matches when any keyword is a case-insensitive substring of any of its
// comparison fields: body type, make, model, price category, size and drivetrain labels.
// A budget, when set, additionally excludes records priced above it.
// An empty keyword set matches every record.
package matcher

import (
	"strings"

	"github.com/spigell/car-advisor/internal/catalog"
)

// Query is a single search request.
type Query struct {
	// Keywords are lower-cased and never empty strings. Use NewQuery to build them.
	Keywords []string
	// MaxPrice is the inclusive budget ceiling. Nil means no budget.
	MaxPrice *float64
}

// NewQuery normalizes keywords and drops empty tokens.
func NewQuery(keywords []string, maxPrice *float64) Query {
	return Query{
		Keywords: NormalizeKeywords(keywords),
		MaxPrice: maxPrice,
	}
}

// ParseKeywords splits free text into keyword tokens on whitespace.
func ParseKeywords(text string) []string {
	return strings.Fields(text)
}

// NormalizeKeywords lower-cases and trims each keyword, discarding the empty ones.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		out = append(out, keyword)
	}
	return out
}

// Budget returns a pointer to price for use as Query.MaxPrice.
func Budget(price float64) *float64 {
	return &price
}

// Match returns copies of the records of c satisfying q, in catalog order.
func Match(c *catalog.Catalog, q Query) []catalog.Vehicle {
	keywords := NormalizeKeywords(q.Keywords)

	matched := make([]catalog.Vehicle, 0)
	c.Each(func(v catalog.Vehicle) bool {
		if MatchesKeywords(v, keywords) && WithinBudget(v, q.MaxPrice) {
			matched = append(matched, v.Clone())
		}
		return true
	})

	return matched
}

// MatchesKeywords reports whether any of the normalized keywords is contained in any comparison field of v.
func MatchesKeywords(v catalog.Vehicle, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}

	fields := v.ComparisonFields()
	for _, keyword := range keywords {
		for _, field := range fields {
			if strings.Contains(field, keyword) {
				return true
			}
		}
	}
	return false
}

// WithinBudget reports whether v costs no more than maxPrice. A nil budget admits everything.
func WithinBudget(v catalog.Vehicle, maxPrice *float64) bool {
	return maxPrice == nil || v.AveragePrice <= *maxPrice
}
