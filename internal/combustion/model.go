// Package combustion computes the instantaneous combustion state of a
// hybrid motor: mass flux, regression rate, O/F ratio, chamber pressure,
// thrust and specific impulse for one moment of the burn.
package combustion

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/burnsim/internal/thermo"
)

var (
	// ErrZeroPortArea indicates a non-positive port cross-section. With a
	// valid grain this can only happen before any regression, so it is a
	// configuration problem rather than a mid-burn state.
	ErrZeroPortArea = errors.New("combustion: port area must be positive")

	// ErrNegativeMassFlow indicates a malformed oxidizer flow input.
	ErrNegativeMassFlow = errors.New("combustion: oxidizer mass flow must be non-negative")
)

// LowPressureThreshold marks chamber pressures too low for stable
// combustion; instants below it carry an advisory flag.
const LowPressureThreshold = 2e5 // Pa

// Fuel carries the propellant properties of the solid grain, including
// the regression power law r = a·G^n.
type Fuel struct {
	Density float64 // kg/m³
	A       float64 // m/s per (kg/m²/s)^n
	N       float64 // dimensionless exponent
}

// RegressionRate evaluates the power law for an oxidizer mass flux.
func (f Fuel) RegressionRate(flux float64) float64 {
	return f.A * math.Pow(flux, f.N)
}

// Instant is the combustion state at one moment of the burn. OFRatio and
// Isp are NaN when the corresponding Undefined flag is set; consumers
// must treat that distinctly from a numeric zero.
type Instant struct {
	OxidizerMassFlow float64 // kg/s
	OxidizerFlux     float64 // kg/(m²·s)
	RegressionRate   float64 // m/s
	FuelMassFlow     float64 // kg/s
	TotalMassFlow    float64 // kg/s
	OFRatio          float64
	OFUndefined      bool
	ChamberTemp      float64 // K
	ChamberPressure  float64 // Pa
	ExhaustVelocity  float64 // m/s
	ExitPressure     float64 // Pa
	Thrust           float64 // N
	Isp              float64 // s
	IspUndefined     bool
	LowPressure      bool
}

// Model evaluates instants for a fixed propellant pair and nozzle
// geometry. It is a pure function of its inputs; the solver owns all
// evolving state.
type Model struct {
	Fuel            Fuel
	Nozzle          NozzleModel
	Temps           *thermo.Table // Tc versus O/F
	ThroatArea      float64       // m²
	ExitArea        float64       // m²
	AmbientPressure float64       // Pa
	Gamma           float64
	GasConstant     float64 // specific, J/(kg·K)
}

// NewModel wires a model with the default exhaust gas properties and the
// built-in Tc(O/F) table.
func NewModel(fuel Fuel, nozzle NozzleModel, throatArea, exitArea float64) *Model {
	return &Model{
		Fuel:            fuel,
		Nozzle:          nozzle,
		Temps:           thermo.CombustionTemperatureTable(),
		ThroatArea:      throatArea,
		ExitArea:        exitArea,
		AmbientPressure: thermo.AmbientPressure,
		Gamma:           thermo.Gamma,
		GasConstant:     thermo.SpecificGasConstant,
	}
}

// Evaluate computes the combustion state for the current port geometry
// and oxidizer flow.
func (m *Model) Evaluate(portArea, burnArea, oxidizerFlow float64) (Instant, error) {
	if portArea <= 0 {
		return Instant{}, fmt.Errorf("%w: %g", ErrZeroPortArea, portArea)
	}
	if oxidizerFlow < 0 {
		return Instant{}, fmt.Errorf("%w: %g", ErrNegativeMassFlow, oxidizerFlow)
	}

	flux := oxidizerFlow / portArea
	rate := m.Fuel.RegressionRate(flux)
	fuelFlow := m.Fuel.Density * burnArea * rate
	totalFlow := oxidizerFlow + fuelFlow

	inst := Instant{
		OxidizerMassFlow: oxidizerFlow,
		OxidizerFlux:     flux,
		RegressionRate:   rate,
		FuelMassFlow:     fuelFlow,
		TotalMassFlow:    totalFlow,
	}

	if fuelFlow > 0 {
		inst.OFRatio = oxidizerFlow / fuelFlow
	} else {
		inst.OFRatio = math.NaN()
		inst.OFUndefined = true
	}

	// An undefined O/F clamps to the table's upper endpoint, matching an
	// oxidizer-rich chamber.
	inst.ChamberTemp = m.Temps.At(inst.OFRatio)
	inst.ChamberPressure = ChamberPressure(totalFlow, m.ThroatArea, m.GasConstant, inst.ChamberTemp, m.Gamma)
	if inst.ChamberPressure < m.AmbientPressure {
		inst.ChamberPressure = m.AmbientPressure
	}
	inst.LowPressure = inst.ChamberPressure < LowPressureThreshold

	ex := m.Nozzle.Evaluate(inst.ChamberPressure, inst.ChamberTemp)
	inst.ExhaustVelocity = ex.Velocity
	inst.ExitPressure = ex.ExitPressure
	inst.Thrust = totalFlow*ex.Velocity + (ex.ExitPressure-m.AmbientPressure)*m.ExitArea

	if totalFlow > 0 {
		inst.Isp = inst.Thrust / (totalFlow * thermo.Gravity)
	} else {
		inst.Isp = math.NaN()
		inst.IspUndefined = true
	}

	return inst, nil
}

// ChamberPressure inverts the choked-flow relation to recover chamber
// pressure from the total mass flow through the throat.
func ChamberPressure(totalFlow, throatArea, gasConstant, chamberTemp, gamma float64) float64 {
	if totalFlow <= 0 || throatArea <= 0 || chamberTemp <= 0 {
		return 0
	}
	factor := math.Sqrt(gamma/(gasConstant*chamberTemp)) *
		math.Pow(2/(gamma+1), (gamma+1)/(2*(gamma-1)))
	return totalFlow / (throatArea * factor)
}

// CharacteristicVelocity is c* = p_c·A_t / ṁ.
func CharacteristicVelocity(chamberPressure, throatArea, totalFlow float64) float64 {
	if totalFlow <= 0 {
		return 0
	}
	return chamberPressure * throatArea / totalFlow
}
