package sim

import (
	"context"
	"sync"
)

// SweepRun is one point of a parameter sweep.
type SweepRun struct {
	FlowRate float64
	Result   *Result
	Summary  Summary
	Err      error
}

// Sweep runs the motor once per oxidizer flow rate, in parallel. Each
// run gets its own solver, config and trajectory; nothing mutable is
// shared, so this is the only concurrency the package offers.
func Sweep(ctx context.Context, base *Solver, cfg Config, flowRates []float64) []SweepRun {
	runs := make([]SweepRun, len(flowRates))

	var wg sync.WaitGroup
	for i, rate := range flowRates {
		wg.Add(1)
		go func(idx int, rate float64) {
			defer wg.Done()

			solver := New(base.grain, base.model)
			if base.casing != nil {
				solver.SetCasing(*base.casing)
			}

			runCfg := cfg
			runCfg.Schedule = ConstantFlow(rate)

			res, err := solver.Run(ctx, runCfg)
			runs[idx] = SweepRun{FlowRate: rate, Result: res, Err: err}
			if res != nil {
				runs[idx].Summary = Summarize(res)
			}
		}(i, rate)
	}
	wg.Wait()

	return runs
}
