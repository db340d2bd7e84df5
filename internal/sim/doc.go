// Package sim owns the burn simulation state machine for a hybrid
// rocket motor.
//
// A [Solver] advances port geometry and combustion state in fixed time
// steps from ignition until a terminal condition:
//
//   - [StatusBurnout]: the port radius reached the grain's outer wall
//   - [StatusOxidizerExhausted]: the usable oxidizer budget is depleted
//   - [StatusMaxTime]: the simulated-time safety cutoff fired
//   - [StatusCancelled]: the caller stopped the run between steps
//   - [StatusError]: a component reported a fatal condition
//
// Every completed step appends one [Sample] to the run's [Trajectory];
// terminal states freeze it. Error runs keep the trajectory accumulated
// so far for post-mortem analysis.
//
// # Example
//
//	model := combustion.NewModel(fuel, nozzle, throat, exit)
//	solver := sim.New(grain, model)
//	result, err := solver.Run(ctx, cfg)
//	summary := sim.Summarize(result)
//
// # Thread Safety
//
// Solver instances are NOT thread-safe. For parameter sweeps use
// [Sweep], which gives each run an independent solver, config and
// trajectory.
package sim
