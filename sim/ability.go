package sim

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed abilities.yaml
var bundledAbilities []byte

// AbilityTable holds the dissolve rate (thickness units per tick) for each
// worker flavor and layer color. It is read once at startup and never mutated;
// share it by pointer.
type AbilityTable struct {
	rates map[string]map[Color]uint32
}

// UnknownAbilityError reports a flavor/color pair that the table does not cover.
type UnknownAbilityError struct {
	Flavor string
	Color  Color
}

func (e *UnknownAbilityError) Error() string {
	return fmt.Sprintf("ability table has no rate for flavor %q, color %q", e.Flavor, e.Color)
}

// DefaultAbilityTable parses the table bundled into the binary.
func DefaultAbilityTable() (*AbilityTable, error) {
	table, err := ParseAbilityTable(bundledAbilities)
	if err != nil {
		return nil, fmt.Errorf("bundled ability table: %w", err)
	}
	return table, nil
}

// LoadAbilityTable reads and parses an ability table file. JSON files are
// accepted as well since they are valid YAML.
func LoadAbilityTable(path string) (*AbilityTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ability table: %w", err)
	}
	return ParseAbilityTable(data)
}

// ParseAbilityTable decodes a flavor -> color -> rate mapping and validates it.
func ParseAbilityTable(data []byte) (*AbilityTable, error) {
	var rates map[string]map[Color]uint32
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&rates); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing ability table: empty document")
		}
		return nil, fmt.Errorf("parsing ability table: %w", err)
	}
	table := &AbilityTable{rates: rates}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks that the table is non-empty and every rate is positive.
func (t *AbilityTable) Validate() error {
	if len(t.rates) == 0 {
		return fmt.Errorf("ability table has no flavors")
	}
	for _, flavor := range t.Flavors() {
		colors := t.rates[flavor]
		if len(colors) == 0 {
			return fmt.Errorf("ability table flavor %q has no colors", flavor)
		}
		for color, rate := range colors {
			if rate == 0 {
				return fmt.Errorf("ability table rate for flavor %q, color %q must be positive", flavor, color)
			}
		}
	}
	return nil
}

// Rate returns how many thickness units a worker of the given flavor dissolves
// per tick from a layer of the given color.
func (t *AbilityTable) Rate(flavor string, color Color) (uint32, error) {
	colors, ok := t.rates[flavor]
	if !ok {
		return 0, &UnknownAbilityError{Flavor: flavor, Color: color}
	}
	rate, ok := colors[color]
	if !ok || rate == 0 {
		return 0, &UnknownAbilityError{Flavor: flavor, Color: color}
	}
	return rate, nil
}

// Flavors returns the known flavors in sorted order.
func (t *AbilityTable) Flavors() []string {
	flavors := make([]string, 0, len(t.rates))
	for f := range t.rates {
		flavors = append(flavors, f)
	}
	sort.Strings(flavors)
	return flavors
}

// Rates returns a deep copy of the underlying mapping.
func (t *AbilityTable) Rates() map[string]map[Color]uint32 {
	out := make(map[string]map[Color]uint32, len(t.rates))
	for flavor, colors := range t.rates {
		cp := make(map[Color]uint32, len(colors))
		for c, r := range colors {
			cp[c] = r
		}
		out[flavor] = cp
	}
	return out
}
