package sim

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/san-kum/burnsim/internal/combustion"
	"github.com/san-kum/burnsim/internal/geometry"
	"github.com/san-kum/burnsim/internal/materials"
	"github.com/san-kum/burnsim/internal/structure"
)

func testSolver() *Solver {
	grain := geometry.Grain{InitialPortRadius: 0.02, OuterRadius: 0.05, Length: 0.5}
	fuel := combustion.Fuel{Density: 900, A: 1e-4, N: 0.5}
	model := combustion.NewModel(fuel, combustion.NewIsentropicNozzle(0.95),
		geometry.PortArea(0.003), geometry.PortArea(0.006))
	return New(grain, model)
}

func testConfig() Config {
	return Config{
		Dt:           0.01,
		MaxTime:      10.0,
		OxidizerMass: 3.0,
		Schedule:     ConstantFlow(0.5),
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Solver, *Config)
	}{
		{"zero dt", func(s *Solver, c *Config) { c.Dt = 0 }},
		{"negative dt", func(s *Solver, c *Config) { c.Dt = -0.01 }},
		{"zero max time", func(s *Solver, c *Config) { c.MaxTime = 0 }},
		{"zero oxidizer", func(s *Solver, c *Config) { c.OxidizerMass = 0 }},
		{"nil schedule", func(s *Solver, c *Config) { c.Schedule = nil }},
		{"zero port radius", func(s *Solver, c *Config) { s.grain.InitialPortRadius = 0 }},
		{"port beyond wall", func(s *Solver, c *Config) { s.grain.InitialPortRadius = 0.06 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solver := testSolver()
			cfg := testConfig()
			tt.mutate(solver, &cfg)

			res, err := solver.Run(context.Background(), cfg)
			if err == nil {
				t.Fatal("expected configuration error, got nil")
			}
			if res != nil {
				t.Error("no result may exist for a rejected configuration")
			}
		})
	}
}

func TestRun_EndToEnd(t *testing.T) {
	solver := testSolver()
	cfg := testConfig()

	res, err := solver.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.Status != StatusBurnout && res.Status != StatusOxidizerExhausted {
		t.Fatalf("expected burnout or oxidizer exhaustion, got %v", res.Status)
	}
	if len(res.Trajectory) == 0 {
		t.Fatal("expected non-empty trajectory")
	}

	sum := Summarize(res)
	if sum.BurnTime >= 10.0 {
		t.Errorf("burn time %g must be below the 10s cutoff", sum.BurnTime)
	}

	last := res.Trajectory[len(res.Trajectory)-1]
	if last.OFUndefined || math.IsNaN(last.OFRatio) || last.OFRatio <= 0 {
		t.Errorf("final O/F must be finite positive, got %g", last.OFRatio)
	}
}

func TestRun_TimeMonotonic(t *testing.T) {
	solver := testSolver()
	res, err := solver.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	times := res.Trajectory.Times()
	if times[0] != 0 {
		t.Errorf("time series must start at 0, got %g", times[0])
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Fatalf("time not strictly increasing at %d: %g <= %g", i, times[i], times[i-1])
		}
	}
}

func TestRun_RadiusMonotonicBounded(t *testing.T) {
	solver := testSolver()
	res, err := solver.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	radii := res.Trajectory.PortRadii()
	for i, r := range radii {
		if i > 0 && r < radii[i-1] {
			t.Fatalf("port radius decreased at %d: %g < %g", i, r, radii[i-1])
		}
		if r > 0.05 {
			t.Fatalf("port radius %g exceeds the outer wall", r)
		}
	}
}

func TestRun_TotalImpulseMatchesTrapezoid(t *testing.T) {
	solver := testSolver()
	res, err := solver.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	sum := Summarize(res)

	times := res.Trajectory.Times()
	thrust := res.Trajectory.Thrust()
	want := 0.0
	for i := 1; i < len(times); i++ {
		want += 0.5 * (thrust[i] + thrust[i-1]) * (times[i] - times[i-1])
	}

	if math.Abs(sum.TotalImpulse-want) > 1e-9*math.Abs(want) {
		t.Errorf("total impulse %g, want %g", sum.TotalImpulse, want)
	}
	if sum.TotalImpulse <= 0 {
		t.Errorf("expected positive total impulse, got %g", sum.TotalImpulse)
	}
}

func TestRun_Idempotent(t *testing.T) {
	cfg := testConfig()

	first, err := testSolver().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := testSolver().Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if first.Status != second.Status {
		t.Fatalf("status differs: %v vs %v", first.Status, second.Status)
	}
	if !reflect.DeepEqual(first.Trajectory, second.Trajectory) {
		t.Error("identical configs must yield bit-identical trajectories")
	}
}

type cancelAfter struct {
	n      int
	seen   int
	cancel context.CancelFunc
}

func (c *cancelAfter) OnStep(s Sample) {
	c.seen++
	if c.seen == c.n {
		c.cancel()
	}
}

func TestRun_Cancellation(t *testing.T) {
	solver := testSolver()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	solver.AddObserver(&cancelAfter{n: 5, cancel: cancel})

	res, err := solver.Run(ctx, testConfig())
	if err != nil {
		t.Fatalf("cancelled run must not return an error, got %v", err)
	}
	if res.Status != StatusCancelled {
		t.Fatalf("expected StatusCancelled, got %v", res.Status)
	}
	if len(res.Trajectory) != 5 {
		t.Errorf("expected exactly 5 samples, got %d", len(res.Trajectory))
	}
}

func TestRun_StructuralAdvisory(t *testing.T) {
	solver := testSolver()

	props, err := materials.Lookup("Aluminum")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	// A paper-thin wall guarantees the margin check fails.
	solver.SetCasing(structure.Casing{
		Material:      props,
		InnerRadius:   0.055,
		WallThickness: 1e-6,
		SafetyFactor:  2.0,
	})

	res, err := solver.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Advisory only: the run still terminates normally.
	if res.Status != StatusBurnout && res.Status != StatusOxidizerExhausted {
		t.Fatalf("structural failure must not terminate the run, got %v", res.Status)
	}

	sum := Summarize(res)
	if !sum.StructuralExceeded {
		t.Error("expected the structural flag to be raised")
	}
	if res.Trajectory[0].Margin == nil || res.Trajectory[0].Margin.OK {
		t.Error("expected a failing margin on the first sample")
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(&Result{Status: StatusOxidizerExhausted})
	if sum.Samples != 0 || sum.TotalImpulse != 0 {
		t.Errorf("empty trajectory must summarize to zeros, got %+v", sum)
	}
}

func TestRampFlow(t *testing.T) {
	r := RampFlow{Initial: 0.6, Final: 0.2, Duration: 4.0}

	if got := r.MassFlow(0); got != 0.6 {
		t.Errorf("flow at t=0: %g, want 0.6", got)
	}
	if got := r.MassFlow(2.0); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("flow at midpoint: %g, want 0.4", got)
	}
	if got := r.MassFlow(10.0); got != 0.2 {
		t.Errorf("flow past ramp: %g, want 0.2", got)
	}
}
