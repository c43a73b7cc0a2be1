package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Vehicle is a single catalog record. Records are built once and never mutated.
type Vehicle struct {
	Make         string     `json:"make" mapstructure:"make"`
	Model        string     `json:"model" mapstructure:"model"`
	Trims        []string   `json:"trims" mapstructure:"trims"`
	AveragePrice float64    `json:"averagePrice" mapstructure:"average-price"`
	Pros         []string   `json:"pros" mapstructure:"pros"`
	Cons         []string   `json:"cons" mapstructure:"cons"`
	Drivetrain   Drivetrain `json:"drivetrain" mapstructure:"drivetrain"`
	BodyType     string     `json:"type" mapstructure:"type"`
	Size         string     `json:"size,omitempty" mapstructure:"size"`
}

// PriceCategory returns the derived price band of the vehicle.
func (v Vehicle) PriceCategory() PriceCategory {
	return CategoryFor(v.AveragePrice)
}

// Name returns "<make> <model>".
func (v Vehicle) Name() string {
	return strings.TrimSpace(v.Make + " " + v.Model)
}

// ComparisonFields returns the lower-cased values keywords are matched against.
// An absent size is returned as an empty string.
func (v Vehicle) ComparisonFields() []string {
	fields := []string{
		strings.ToLower(v.BodyType),
		strings.ToLower(v.Make),
		strings.ToLower(v.Model),
		string(v.PriceCategory()),
		strings.ToLower(v.Size),
	}

	return append(fields, v.Drivetrain.Labels()...)
}

// Validate reports the first problem found in the record.
func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.Make) == "" {
		return fmt.Errorf("make is required")
	}
	if strings.TrimSpace(v.Model) == "" {
		return fmt.Errorf("model is required for %s", v.Make)
	}
	if v.AveragePrice < 0 {
		return fmt.Errorf("average price of %s must not be negative: %v", v.Name(), v.AveragePrice)
	}
	return nil
}

// Clone returns a copy of v that shares no slices with it.
func (v Vehicle) Clone() Vehicle {
	v.Trims = cloneStrings(v.Trims)
	v.Pros = cloneStrings(v.Pros)
	v.Cons = cloneStrings(v.Cons)
	return v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Vehicles is an ordered result list.
type Vehicles struct {
	Items []Vehicle `json:"cars"`
}

func (v *Vehicles) Len() int {
	return len(v.Items)
}

// Keep retains the vehicles satisfying keep, preserving order, and returns the names of the dropped ones.
func (v *Vehicles) Keep(keep func(Vehicle) bool) []string {
	var dropped []string
	kept := make([]Vehicle, 0, len(v.Items))
	for _, vehicle := range v.Items {
		if keep(vehicle) {
			kept = append(kept, vehicle)
			continue
		}
		dropped = append(dropped, vehicle.Name())
	}
	v.Items = kept
	return dropped
}

// FindByMakeModel returns the first vehicle whose make and model equal the given ones, ignoring case.
func (v *Vehicles) FindByMakeModel(manufacturer, model string) *Vehicle {
	manufacturer = strings.TrimSpace(manufacturer)
	model = strings.TrimSpace(model)
	for i := range v.Items {
		if strings.EqualFold(v.Items[i].Make, manufacturer) && strings.EqualFold(v.Items[i].Model, model) {
			return &v.Items[i]
		}
	}
	return nil
}

func (v *Vehicles) Names() []string {
	names := make([]string, 0, len(v.Items))
	for _, vehicle := range v.Items {
		names = append(names, vehicle.Name())
	}
	return names
}

// ReportByBodyType groups the list by body type for the CLI report.
func (v *Vehicles) ReportByBodyType() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, vehicle := range v.Items {
		key := vehicle.BodyType
		if vehicle.Size != "" {
			key = fmt.Sprintf("%s (%s)", vehicle.BodyType, vehicle.Size)
		}
		report[key] = append(report[key], map[string]string{
			"name":       vehicle.Name(),
			"price":      fmt.Sprintf("%.0f", vehicle.AveragePrice),
			"category":   string(vehicle.PriceCategory()),
			"drivetrain": vehicle.Drivetrain.String(),
			"trims":      strings.Join(vehicle.Trims, ", "),
		})
	}
	return report
}

func (v *Vehicles) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "cars_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
