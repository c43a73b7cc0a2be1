package catalog

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Drivetrain is the set of powertrains a model is offered with.
type Drivetrain uint8

const (
	DrivetrainHybrid Drivetrain = 1 << iota
	DrivetrainElectric
	// DrivetrainGas marks a conventional powertrain, neither hybrid nor electric.
	DrivetrainGas
)

var drivetrainNames = []struct {
	flag  Drivetrain
	label string
	name  string
}{
	{DrivetrainHybrid, "hybrid", "Hybrid"},
	{DrivetrainElectric, "electric", "Electric"},
	{DrivetrainGas, "gas", "Gas"},
}

var drivetrainAliases = map[string]Drivetrain{
	"hybrid":       DrivetrainHybrid,
	"electric":     DrivetrainElectric,
	"ev":           DrivetrainElectric,
	"gas":          DrivetrainGas,
	"none":         DrivetrainGas,
	"conventional": DrivetrainGas,
	"ice":          DrivetrainGas,
}

// ParseDrivetrain parses a space or comma separated list of powertrain names.
// The legacy combined form "Hybrid Electric None" yields the union of its parts.
func ParseDrivetrain(s string) (Drivetrain, error) {
	var d Drivetrain
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '/'
	})
	for _, token := range tokens {
		flag, ok := drivetrainAliases[token]
		if !ok {
			return 0, fmt.Errorf("unknown drivetrain %q", token)
		}
		d |= flag
	}
	return d, nil
}

func (d Drivetrain) Has(flag Drivetrain) bool {
	return flag != 0 && d&flag == flag
}

// Labels returns the lower-cased names of the set flags in a fixed order.
func (d Drivetrain) Labels() []string {
	labels := make([]string, 0, len(drivetrainNames))
	for _, n := range drivetrainNames {
		if d.Has(n.flag) {
			labels = append(labels, n.label)
		}
	}
	return labels
}

func (d Drivetrain) names() []string {
	names := make([]string, 0, len(drivetrainNames))
	for _, n := range drivetrainNames {
		if d.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

func (d Drivetrain) String() string {
	if d == 0 {
		return "Unknown"
	}
	return strings.Join(d.names(), " ")
}

func (d Drivetrain) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.names())
}

func (d *Drivetrain) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return fmt.Errorf("drivetrain must be a string or a list of strings: %w", err)
		}
		list = []string{single}
	}

	parsed, err := ParseDrivetrain(strings.Join(list, " "))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DrivetrainHookFunc decodes strings and string lists into Drivetrain for mapstructure.
func DrivetrainHookFunc() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(Drivetrain(0))
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != target {
			return data, nil
		}

		switch val := data.(type) {
		case string:
			return ParseDrivetrain(val)
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprintf("%v", item))
			}
			return ParseDrivetrain(strings.Join(parts, " "))
		case []string:
			return ParseDrivetrain(strings.Join(val, " "))
		default:
			return data, nil
		}
	}
}
