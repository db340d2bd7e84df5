package sim

import (
	"github.com/san-kum/burnsim/internal/combustion"
	"github.com/san-kum/burnsim/internal/structure"
)

// Status is the solver's run state. All states other than StatusRunning
// are terminal and absorbing.
type Status int

const (
	StatusRunning Status = iota
	StatusBurnout
	StatusOxidizerExhausted
	StatusMaxTime
	StatusCancelled
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusBurnout:
		return "burnout"
	case StatusOxidizerExhausted:
		return "oxidizer exhausted"
	case StatusMaxTime:
		return "max time reached"
	case StatusCancelled:
		return "cancelled"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the trajectory is frozen in this state.
func (s Status) Terminal() bool { return s != StatusRunning }

// ParseStatus maps a stored status string back to its value. Unknown
// strings come back as StatusRunning.
func ParseStatus(v string) Status {
	for s := StatusRunning; s <= StatusError; s++ {
		if s.String() == v {
			return s
		}
	}
	return StatusRunning
}

// FlowSchedule supplies the oxidizer mass flow rate at simulated time t.
type FlowSchedule interface {
	MassFlow(t float64) float64 // kg/s
}

// ConstantFlow is a fixed oxidizer flow rate in kg/s.
type ConstantFlow float64

func (c ConstantFlow) MassFlow(t float64) float64 { return float64(c) }

// RampFlow interpolates linearly from Initial to Final over Duration and
// holds Final afterwards. Models a blowdown-style decaying feed.
type RampFlow struct {
	Initial  float64 // kg/s
	Final    float64 // kg/s
	Duration float64 // s
}

func (r RampFlow) MassFlow(t float64) float64 {
	if r.Duration <= 0 || t >= r.Duration {
		return r.Final
	}
	return r.Initial + (r.Final-r.Initial)*t/r.Duration
}

// Sample is one completed step: the time at which the instant was
// evaluated, the port radius entering the step, and the combustion
// state. Margin is set when the solver carries a casing check.
type Sample struct {
	Time       float64
	PortRadius float64
	combustion.Instant
	Margin *structure.Margin
}

// Trajectory is the ordered time series of a run, one sample per
// completed step. It is append-only while the run executes and frozen
// once a terminal state is reached.
type Trajectory []Sample

func (tr Trajectory) series(f func(Sample) float64) []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = f(s)
	}
	return out
}

func (tr Trajectory) Times() []float64 {
	return tr.series(func(s Sample) float64 { return s.Time })
}

func (tr Trajectory) Thrust() []float64 {
	return tr.series(func(s Sample) float64 { return s.Thrust })
}

func (tr Trajectory) PortRadii() []float64 {
	return tr.series(func(s Sample) float64 { return s.PortRadius })
}

func (tr Trajectory) OFRatios() []float64 {
	return tr.series(func(s Sample) float64 { return s.OFRatio })
}

func (tr Trajectory) OxidizerFlux() []float64 {
	return tr.series(func(s Sample) float64 { return s.OxidizerFlux })
}

func (tr Trajectory) Isp() []float64 {
	return tr.series(func(s Sample) float64 { return s.Isp })
}

func (tr Trajectory) ChamberPressures() []float64 {
	return tr.series(func(s Sample) float64 { return s.ChamberPressure })
}

// Config is the per-run configuration. OxidizerMass is the usable
// oxidizer budget; ullage and usable-fraction derating are applied by
// the caller before the run starts.
type Config struct {
	Dt           float64 // s, fixed step
	MaxTime      float64 // s, simulated-time cutoff
	OxidizerMass float64 // kg
	Schedule     FlowSchedule
}

// Result is a finished (or aborted) run. Err is non-nil only for
// StatusError and wraps the component failure with step context.
type Result struct {
	Status           Status
	Err              error
	Trajectory       Trajectory
	OxidizerConsumed float64 // kg
	FuelConsumed     float64 // kg
}

// Observer receives each sample as it is appended. The live view and
// tests hook in here; observers must not retain the solver.
type Observer interface {
	OnStep(s Sample)
}
