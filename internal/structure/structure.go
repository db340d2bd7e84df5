// Package structure evaluates casing integrity and the structural mass
// budget. Checks are advisory: they flag margins for the operator but
// never halt a burn.
package structure

import (
	"math"

	"github.com/san-kum/burnsim/internal/materials"
)

// Casing is a thin-walled cylindrical pressure vessel around the grain.
type Casing struct {
	Material      materials.Properties
	InnerRadius   float64 // m
	WallThickness float64 // m
	SafetyFactor  float64
}

// AllowablePressure is the design pressure limit of the casing, using
// the thin-wall hoop relation with the 0.6t Lamé correction.
func (c Casing) AllowablePressure() float64 {
	allowableStress := c.Material.YieldStrength / (2 * c.SafetyFactor)
	return allowableStress * c.WallThickness / (c.InnerRadius + 0.6*c.WallThickness)
}

// Margin reports one pressure check against the casing limit.
type Margin struct {
	Applied   float64 // Pa, chamber pressure
	Allowable float64 // Pa
	Ratio     float64 // applied / allowable
	OK        bool
}

// Check compares a chamber pressure against the casing's design limit.
func (c Casing) Check(chamberPressure float64) Margin {
	allowable := c.AllowablePressure()
	m := Margin{Applied: chamberPressure, Allowable: allowable}
	if allowable > 0 {
		m.Ratio = chamberPressure / allowable
	} else {
		m.Ratio = math.Inf(1)
	}
	m.OK = m.Ratio <= 1
	return m
}

// ShellMass is the mass of a hollow cylindrical shell without caps.
func ShellMass(outerDiameter, length, thickness, density float64) float64 {
	innerDiameter := outerDiameter - 2*thickness
	volume := math.Pi * (outerDiameter*outerDiameter - innerDiameter*innerDiameter) / 4 * length
	return volume * density
}

// SolidCylinderMass is the mass of a solid cylindrical component.
func SolidCylinderMass(diameter, length, density float64) float64 {
	return math.Pi * (diameter / 2) * (diameter / 2) * length * density
}

// BoltCapacity is the total axial tensile capacity of a bolt circle.
func BoltCapacity(boltDiameter float64, count int, yieldStrength, safetyFactor float64) float64 {
	area := math.Pi * (boltDiameter / 2) * (boltDiameter / 2)
	return (yieldStrength / safetyFactor) * area * float64(count)
}
