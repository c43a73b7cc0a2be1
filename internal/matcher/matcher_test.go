package matcher

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/car-advisor/internal/catalog"
)

func twoCarCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New(
		catalog.Vehicle{Make: "Toyota", Model: "RAV4", AveragePrice: 28000, BodyType: "SUV", Drivetrain: catalog.DrivetrainHybrid},
		catalog.Vehicle{Make: "Tesla", Model: "Model 3", AveragePrice: 45000, BodyType: "Sedan", Drivetrain: catalog.DrivetrainElectric},
	)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return c
}

func names(vehicles []catalog.Vehicle) []string {
	out := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, v.Name())
	}
	return out
}

func TestMatchScenarios(t *testing.T) {
	t.Parallel()

	c := twoCarCatalog(t)

	tests := []struct {
		name   string
		query  Query
		expect []string
	}{
		{
			name:   "body type",
			query:  NewQuery([]string{"suv"}, nil),
			expect: []string{"Toyota RAV4"},
		},
		{
			name:   "keyword matches but budget excludes",
			query:  NewQuery([]string{"electric"}, Budget(40000)),
			expect: []string{},
		},
		{
			name:   "any keyword qualifies",
			query:  NewQuery([]string{"sedan", "hybrid"}, nil),
			expect: []string{"Toyota RAV4", "Tesla Model 3"},
		},
		{
			name:   "case insensitive substring",
			query:  NewQuery([]string{"TOY"}, nil),
			expect: []string{"Toyota RAV4"},
		},
		{
			name:   "price category label",
			query:  NewQuery([]string{"expensive"}, nil),
			expect: []string{"Tesla Model 3"},
		},
		{
			name:   "budget is inclusive",
			query:  NewQuery([]string{"tesla"}, Budget(45000)),
			expect: []string{"Tesla Model 3"},
		},
		{
			name:   "unknown keyword",
			query:  NewQuery([]string{"hovercraft"}, nil),
			expect: []string{},
		},
		{
			name:   "empty keywords match everything",
			query:  NewQuery([]string{"", "  "}, nil),
			expect: []string{"Toyota RAV4", "Tesla Model 3"},
		},
		{
			name:   "empty keywords still honor budget",
			query:  NewQuery(nil, Budget(30000)),
			expect: []string{"Toyota RAV4"},
		},
		{
			name:   "unnormalized query",
			query:  Query{Keywords: []string{" Sedan "}},
			expect: []string{"Tesla Model 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := names(Match(c, tt.query))
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestMatchReturnsOrderedSubsequence(t *testing.T) {
	c := catalog.Default()
	all := names(c.Vehicles().Items)

	queries := []Query{
		NewQuery([]string{"a"}, nil),
		NewQuery([]string{"compact", "truck"}, nil),
		NewQuery([]string{"e", "o"}, Budget(40000)),
		NewQuery([]string{"full-size", "full"}, nil),
	}

	for _, q := range queries {
		got := names(Match(c, q))

		seen := make(map[string]bool)
		pos := 0
		for _, name := range got {
			if seen[name] {
				t.Fatalf("query %v: duplicate %q", q.Keywords, name)
			}
			seen[name] = true

			for pos < len(all) && all[pos] != name {
				pos++
			}
			if pos == len(all) {
				t.Fatalf("query %v: %v is not a subsequence of %v", q.Keywords, got, all)
			}
		}
	}
}

func TestMatchResultsAreCopies(t *testing.T) {
	c := catalog.Default()
	q := NewQuery([]string{"rav4"}, nil)

	got := Match(c, q)
	if len(got) != 1 {
		t.Fatalf("expected one match, got %v", names(got))
	}
	original := got[0].Pros[0]
	got[0].Pros[0] = "changed"
	got[0].Trims[0] = "changed"
	got[0].Cons[0] = "changed"

	again := Match(c, q)
	if again[0].Pros[0] != original {
		t.Fatalf("catalog pros changed through a match result: %q", again[0].Pros[0])
	}
	if again[0].Trims[0] == "changed" || again[0].Cons[0] == "changed" {
		t.Fatalf("catalog changed through a match result: %+v", again[0])
	}
}

func TestMatchPredicateAndBudgetHold(t *testing.T) {
	c := catalog.Default()
	budget := 35000.0
	q := NewQuery([]string{"sedan", "truck", "cheap"}, &budget)

	for _, v := range Match(c, q) {
		if v.AveragePrice > budget {
			t.Fatalf("%s exceeds budget: %v", v.Name(), v.AveragePrice)
		}

		found := false
		for _, field := range v.ComparisonFields() {
			for _, keyword := range q.Keywords {
				if strings.Contains(field, keyword) {
					found = true
				}
			}
		}
		if !found {
			t.Fatalf("%s returned without a keyword match", v.Name())
		}
	}

	var excluded []string
	c.Each(func(v catalog.Vehicle) bool {
		if v.AveragePrice > budget {
			excluded = append(excluded, v.Name())
		}
		return true
	})
	got := names(Match(c, NewQuery(nil, &budget)))
	for _, name := range excluded {
		for _, g := range got {
			if g == name {
				t.Fatalf("over-budget %s returned", name)
			}
		}
	}
}

func TestMatchAbsentSizeIsEmpty(t *testing.T) {
	c := catalog.MustNew(catalog.Vehicle{Make: "Acme", Model: "One", AveragePrice: 10, BodyType: "Coupe"})

	if got := Match(c, NewQuery([]string{"compact"}, nil)); len(got) != 0 {
		t.Fatalf("expected no match, got %v", names(got))
	}
}

func TestParseKeywords(t *testing.T) {
	got := ParseKeywords("  SUV   hybrid\tcompact ")
	if !reflect.DeepEqual(got, []string{"SUV", "hybrid", "compact"}) {
		t.Fatalf("unexpected tokens: %v", got)
	}

	if got := ParseKeywords(""); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}
