// Package catalog holds the fixed collection of known vehicle records.
package catalog

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// catalogKey is the top-level key of a catalog file.
const catalogKey = "cars"

// Catalog is an immutable, insertion-ordered set of vehicles.
// It is safe for concurrent use.
type Catalog struct {
	items []Vehicle
}

// New builds a catalog from the given records, keeping their order.
func New(records ...Vehicle) (*Catalog, error) {
	items := make([]Vehicle, 0, len(records))
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		items = append(items, record.Clone())
	}

	return &Catalog{items: items}, nil
}

// MustNew is like New but panics on invalid records. Intended for fixtures.
func MustNew(records ...Vehicle) *Catalog {
	c, err := New(records...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Each calls fn for every record in catalog order until fn returns false.
// The record passed to fn shares slices with the catalog: Clone it before retaining.
func (c *Catalog) Each(fn func(Vehicle) bool) {
	if c == nil {
		return
	}
	for _, v := range c.items {
		if !fn(v) {
			return
		}
	}
}

// Vehicles returns a copy of all records in catalog order.
func (c *Catalog) Vehicles() *Vehicles {
	out := &Vehicles{Items: make([]Vehicle, 0, c.Len())}
	c.Each(func(v Vehicle) bool {
		out.Items = append(out.Items, v.Clone())
		return true
	})
	return out
}

// Load reads a catalog from a yaml, json or toml file with a top-level "cars" list.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("catalog file path is empty")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}

	raw := v.Get(catalogKey)
	if raw == nil {
		return nil, fmt.Errorf("catalog file %q has no %q list", path, catalogKey)
	}

	var records []Vehicle
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       DrivetrainHookFunc(),
		Result:           &records,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating catalog decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding catalog file %q: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("catalog file %q contains no cars", path)
	}

	return New(records...)
}
