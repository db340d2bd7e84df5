// Package thermo provides interpolated thermophysical property tables:
// combustion temperature versus O/F ratio and saturated N₂O properties
// versus temperature. Queries outside the tabulated domain are clamped
// to the nearest endpoint.
package thermo

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

// Gas-phase constants for the exhaust mixture.
const (
	Gravity          = 9.81    // m/s²
	GasConstant      = 8.314   // J/(mol·K)
	Gamma            = 1.33    // exhaust specific heat ratio
	ExhaustMolarMass = 0.02897 // kg/mol
	AmbientPressure  = 1e5     // Pa
)

// SpecificGasConstant is the exhaust gas constant R/M in J/(kg·K).
const SpecificGasConstant = GasConstant / ExhaustMolarMass

// Table is a natural cubic spline over tabulated data, clamped to the
// data domain on both ends.
type Table struct {
	spline     interp.NaturalCubic
	xmin, xmax float64
}

// NewTable fits a spline over strictly increasing xs.
func NewTable(xs, ys []float64) (*Table, error) {
	t := &Table{xmin: xs[0], xmax: xs[len(xs)-1]}
	if err := t.spline.Fit(xs, ys); err != nil {
		return nil, err
	}
	return t, nil
}

func mustTable(xs, ys []float64) *Table {
	t, err := NewTable(xs, ys)
	if err != nil {
		panic(err)
	}
	return t
}

// At evaluates the table at x. Non-finite and out-of-domain inputs are
// clamped to the table endpoints.
func (t *Table) At(x float64) float64 {
	switch {
	case math.IsNaN(x) || x > t.xmax:
		x = t.xmax
	case x < t.xmin:
		x = t.xmin
	}
	return t.spline.Predict(x)
}

// Domain returns the tabulated input range.
func (t *Table) Domain() (min, max float64) {
	return t.xmin, t.xmax
}

// Combustion temperature [K] versus O/F ratio for N₂O/paraffin.
var combustionTemp = mustTable(
	[]float64{0.2, 1.0, 2.0, 3.0, 4.0, 6.0, 7.0, 8.0, 9.0, 10.0},
	[]float64{1000, 1210, 1500, 1800, 2400, 3100, 3200, 3260, 3250, 3200},
)

// Saturated N₂O data on a common temperature grid [°C].
var (
	n2oTempC = []float64{
		-24.15, -14.15, -4.15, 5.85, 15.85, 25.85, 27.85, 29.85, 31.85,
		33.85, 34.85, 35.05, 35.25, 35.45, 35.65, 35.85, 36.25,
	}
	n2oVaporPressure = mustTable(n2oTempC, []float64{
		15.847, 21.308, 28.025, 36.168, 45.936, 57.591, 60.181, 62.870,
		65.663, 68.573, 70.078, 70.384, 70.691, 71.000, 71.311, 71.623, 72.255,
	})
	n2oLiquidDensity = mustTable(n2oTempC, []float64{
		1014.9, 973.32, 927.62, 876.03, 815.00, 734.79, 713.98, 690.07,
		661.16, 622.45, 594.69, 587.72, 579.98, 571.22, 561.02, 548.57, 505.57,
	})
)

// CombustionTemperatureTable returns the Tc(O/F) table.
func CombustionTemperatureTable() *Table { return combustionTemp }

// CombustionTemperature returns the combustion temperature [K] for an
// O/F ratio.
func CombustionTemperature(of float64) float64 { return combustionTemp.At(of) }

// N2OVaporPressure returns the saturated vapor pressure [bar] at a tank
// temperature [°C].
func N2OVaporPressure(tempC float64) float64 { return n2oVaporPressure.At(tempC) }

// N2OLiquidDensity returns the liquid density [kg/m³] at a tank
// temperature [°C].
func N2OLiquidDensity(tempC float64) float64 { return n2oLiquidDensity.At(tempC) }
