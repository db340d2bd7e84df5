package combustion

import (
	"math"

	"github.com/san-kum/burnsim/internal/thermo"
)

// Exhaust is the nozzle's contribution to one instant: the effective
// exhaust velocity and the pressure at the exit plane.
type Exhaust struct {
	Velocity     float64 // m/s
	ExitPressure float64 // Pa
}

// NozzleModel evaluates exhaust conditions for a chamber state. The
// solver and combustion model treat this as a swappable capability so
// alternative nozzle relations can be substituted.
type NozzleModel interface {
	Evaluate(chamberPressure, chamberTemp float64) Exhaust
}

// IsentropicNozzle expands chamber gas to a fixed exit pressure through
// an ideal isentropic relation, derated by a nozzle efficiency.
type IsentropicNozzle struct {
	Gamma        float64
	GasConstant  float64 // specific, J/(kg·K)
	ExitPressure float64 // Pa
	Efficiency   float64 // 0..1
}

// NewIsentropicNozzle builds a nozzle with the default exhaust gas
// properties, expanding to ambient pressure.
func NewIsentropicNozzle(efficiency float64) IsentropicNozzle {
	return IsentropicNozzle{
		Gamma:        thermo.Gamma,
		GasConstant:  thermo.SpecificGasConstant,
		ExitPressure: thermo.AmbientPressure,
		Efficiency:   efficiency,
	}
}

func (n IsentropicNozzle) Evaluate(chamberPressure, chamberTemp float64) Exhaust {
	if chamberPressure <= n.ExitPressure {
		// No favorable pressure gradient, nothing is expelled.
		return Exhaust{Velocity: 0, ExitPressure: n.ExitPressure}
	}
	exponent := (n.Gamma - 1) / n.Gamma
	term := 1 - math.Pow(n.ExitPressure/chamberPressure, exponent)
	v := math.Sqrt((2 * n.Gamma / (n.Gamma - 1)) * n.GasConstant * chamberTemp * term)
	return Exhaust{Velocity: n.Efficiency * v, ExitPressure: n.ExitPressure}
}

// FixedExhaust is a degenerate nozzle model with a constant exhaust
// velocity, useful for quick sizing and as a regression baseline.
type FixedExhaust struct {
	Velocity     float64 // m/s
	ExitPressure float64 // Pa
}

func (n FixedExhaust) Evaluate(chamberPressure, chamberTemp float64) Exhaust {
	return Exhaust{Velocity: n.Velocity, ExitPressure: n.ExitPressure}
}
