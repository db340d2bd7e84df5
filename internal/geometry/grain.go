// Package geometry models the fuel grain port and the surrounding
// casing/tank geometry used by the burn solver and structural checks.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRegressionRate indicates a negative or non-finite regression
// rate was passed to Advance. Regression is physically non-negative, so
// this is a caller error rather than something to clamp silently.
var ErrInvalidRegressionRate = errors.New("geometry: invalid regression rate")

// Grain describes a cylindrical fuel grain with a single central port.
type Grain struct {
	InitialPortRadius float64 // m
	OuterRadius       float64 // m
	Length            float64 // m
}

func (g Grain) Validate() error {
	if g.InitialPortRadius <= 0 {
		return fmt.Errorf("initial port radius must be positive, got %g", g.InitialPortRadius)
	}
	if g.OuterRadius <= g.InitialPortRadius {
		return fmt.Errorf("outer radius %g must exceed port radius %g", g.OuterRadius, g.InitialPortRadius)
	}
	if g.Length <= 0 {
		return fmt.Errorf("grain length must be positive, got %g", g.Length)
	}
	return nil
}

// PortArea is the port cross-sectional area for a given radius.
func PortArea(radius float64) float64 {
	return math.Pi * radius * radius
}

// BurnArea is the lateral burning surface of the port cylinder.
func BurnArea(radius, length float64) float64 {
	return 2 * math.Pi * radius * length
}

// GrainVolume is the annular fuel volume between port and outer radius.
func GrainVolume(portRadius, outerRadius, length float64) float64 {
	return math.Pi * (outerRadius*outerRadius - portRadius*portRadius) * length
}

// FuelMass is the loaded fuel mass for the grain's initial geometry.
func (g Grain) FuelMass(density float64) float64 {
	return GrainVolume(g.InitialPortRadius, g.OuterRadius, g.Length) * density
}

// Advance steps the port radius forward by rate*dt. When the updated
// radius would pass the outer wall it is pinned there and burnedOut is
// reported; the solver treats that as a terminal event, not an error.
func (g Grain) Advance(radius, rate, dt float64) (updated float64, burnedOut bool, err error) {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return radius, false, fmt.Errorf("%w: %g", ErrInvalidRegressionRate, rate)
	}
	updated = radius + rate*dt
	if updated >= g.OuterRadius {
		return g.OuterRadius, true, nil
	}
	return updated, false, nil
}
