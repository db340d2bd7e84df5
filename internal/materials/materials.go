// Package materials holds the casing-material property database.
package materials

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownMaterial indicates a lookup for a material not in the database.
var ErrUnknownMaterial = errors.New("materials: unknown material")

// Properties are the physical constants needed for structural sizing.
type Properties struct {
	Density       float64 // kg/m³
	YieldStrength float64 // Pa
}

var table = map[string]Properties{
	"SS304":            {Density: 8000, YieldStrength: 205e6},
	"Aluminum":         {Density: 2700, YieldStrength: 276e6},
	"Titanium Grade 5": {Density: 4430, YieldStrength: 828e6},
	"Carbon Steel":     {Density: 7850, YieldStrength: 250e6},
}

// Lookup resolves a material by name.
func Lookup(name string) (Properties, error) {
	props, ok := table[name]
	if !ok {
		return Properties{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return props, nil
}

// List returns all known material names in sorted order.
func List() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
