package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/burnsim/internal/combustion"
	"github.com/san-kum/burnsim/internal/geometry"
	"github.com/san-kum/burnsim/internal/structure"
)

// Solver advances a motor's burn in fixed time steps. Construction is
// cheap; all evolving state lives in the run itself, so a solver may be
// reused for sequential runs.
type Solver struct {
	grain     geometry.Grain
	model     *combustion.Model
	casing    *structure.Casing
	observers []Observer
}

func New(grain geometry.Grain, model *combustion.Model) *Solver {
	return &Solver{grain: grain, model: model}
}

// SetCasing enables the advisory structural check. The margin is
// recorded on every sample but never terminates the run.
func (s *Solver) SetCasing(c structure.Casing) { s.casing = &c }

func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Solver) validate(cfg Config) error {
	if geometry.PortArea(s.grain.InitialPortRadius) <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, combustion.ErrZeroPortArea)
	}
	if err := s.grain.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.MaxTime <= 0 {
		return fmt.Errorf("%w: max time must be positive, got %g", ErrInvalidConfig, cfg.MaxTime)
	}
	if cfg.OxidizerMass <= 0 {
		return fmt.Errorf("%w: oxidizer mass must be positive, got %g", ErrInvalidConfig, cfg.OxidizerMass)
	}
	if cfg.Schedule == nil {
		return fmt.Errorf("%w: flow schedule is required", ErrInvalidConfig)
	}
	return nil
}

// Run executes the burn from t=0 until a terminal condition. The
// returned error is non-nil only for configuration rejects (no result)
// and mid-run component failures (result with partial trajectory).
// Cancellation via ctx is cooperative, honored between steps, and
// yields a valid partial result with StatusCancelled.
func (s *Solver) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validate(cfg); err != nil {
		return nil, err
	}

	res := &Result{
		Status:     StatusRunning,
		Trajectory: make(Trajectory, 0, int(cfg.MaxTime/cfg.Dt)+1),
	}

	radius := s.grain.InitialPortRadius
	t := 0.0

	for {
		select {
		case <-ctx.Done():
			res.Status = StatusCancelled
			return res, nil
		default:
		}

		if cfg.OxidizerMass-res.OxidizerConsumed <= 0 {
			res.Status = StatusOxidizerExhausted
			return res, nil
		}

		flow := cfg.Schedule.MassFlow(t)
		portArea := geometry.PortArea(radius)
		burnArea := geometry.BurnArea(radius, s.grain.Length)

		inst, err := s.model.Evaluate(portArea, burnArea, flow)
		if err != nil {
			res.Status = StatusError
			res.Err = &StepError{Step: len(res.Trajectory), Time: t, Wrapped: err}
			return res, res.Err
		}

		sample := Sample{Time: t, PortRadius: radius, Instant: inst}
		if s.casing != nil {
			m := s.casing.Check(inst.ChamberPressure)
			sample.Margin = &m
		}

		updated, burnedOut, err := s.grain.Advance(radius, inst.RegressionRate, cfg.Dt)
		if err != nil {
			res.Status = StatusError
			res.Err = &StepError{Step: len(res.Trajectory), Time: t, Wrapped: err}
			return res, res.Err
		}

		// The last valid instant is part of the trajectory even when the
		// step consumed the remaining web thickness.
		res.Trajectory = append(res.Trajectory, sample)
		res.OxidizerConsumed += flow * cfg.Dt
		res.FuelConsumed += inst.FuelMassFlow * cfg.Dt
		for _, o := range s.observers {
			o.OnStep(sample)
		}

		radius = updated
		t += cfg.Dt

		if burnedOut {
			// Geometric limit wins over oxidizer depletion on the same
			// step: the fuel-limited burn is the binding constraint.
			res.Status = StatusBurnout
			return res, nil
		}
		if t >= cfg.MaxTime {
			res.Status = StatusMaxTime
			return res, nil
		}
	}
}
