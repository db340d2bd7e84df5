package geometry

import "math"

// Tank describes a cylindrical oxidizer tank. AvailableVolume applies the
// ullage fraction, the share of inner volume actually filled with liquid.
type Tank struct {
	OuterDiameter  float64 // m
	WallThickness  float64 // m
	Length         float64 // m
	UllageFraction float64 // filled share of inner volume, 0..1
}

func (t Tank) InnerDiameter() float64 {
	return t.OuterDiameter - 2*t.WallThickness
}

func (t Tank) InnerVolume() float64 {
	r := t.InnerDiameter() / 2
	return math.Pi * r * r * t.Length
}

func (t Tank) AvailableVolume() float64 {
	return t.UllageFraction * t.InnerVolume()
}

// ShellVolume is the material volume of the cylindrical wall.
func (t Tank) ShellVolume() float64 {
	return math.Pi * t.OuterDiameter * t.Length * t.WallThickness
}

// CasingOuterDiameter sizes the casing around a grain with insulation.
func CasingOuterDiameter(fuelOuterRadius, insulationThickness, wallThickness float64) float64 {
	return 2 * (fuelOuterRadius + insulationThickness + wallThickness)
}
