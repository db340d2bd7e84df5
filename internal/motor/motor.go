// Package motor assembles a runnable solver from a motor configuration,
// resolving materials and propellant properties up front so invalid
// configurations are rejected before any state exists.
package motor

import (
	"fmt"

	"github.com/san-kum/burnsim/internal/combustion"
	"github.com/san-kum/burnsim/internal/config"
	"github.com/san-kum/burnsim/internal/geometry"
	"github.com/san-kum/burnsim/internal/materials"
	"github.com/san-kum/burnsim/internal/sim"
	"github.com/san-kum/burnsim/internal/structure"
	"github.com/san-kum/burnsim/internal/thermo"
)

// Build wires a solver and its run config from cfg. Unknown materials
// and nozzle models fail here, before the run starts.
func Build(cfg *config.Config) (*sim.Solver, sim.Config, error) {
	grain := geometry.Grain{
		InitialPortRadius: cfg.Grain.PortRadius,
		OuterRadius:       cfg.Grain.OuterRadius,
		Length:            cfg.Grain.Length,
	}
	fuel := combustion.Fuel{
		Density: cfg.Grain.FuelDensity,
		A:       cfg.Grain.RegressionA,
		N:       cfg.Grain.RegressionN,
	}

	nozzle, err := buildNozzle(cfg.Nozzle)
	if err != nil {
		return nil, sim.Config{}, err
	}

	throat := geometry.PortArea(cfg.Nozzle.ThroatDiameter / 2)
	exit := geometry.PortArea(cfg.Nozzle.ExitDiameter / 2)
	model := combustion.NewModel(fuel, nozzle, throat, exit)

	solver := sim.New(grain, model)

	if cfg.Casing.Material != "" {
		props, err := materials.Lookup(cfg.Casing.Material)
		if err != nil {
			return nil, sim.Config{}, fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
		}
		solver.SetCasing(structure.Casing{
			Material:      props,
			InnerRadius:   cfg.Grain.OuterRadius + cfg.Casing.Insulation,
			WallThickness: cfg.Casing.WallThickness,
			SafetyFactor:  cfg.Casing.SafetyFactor,
		})
	}

	runCfg := sim.Config{
		Dt:           cfg.Sim.Dt,
		MaxTime:      cfg.Sim.MaxTime,
		OxidizerMass: UsableOxidizer(cfg.Oxidizer),
		Schedule:     buildSchedule(cfg.Oxidizer),
	}
	return solver, runCfg, nil
}

func buildNozzle(cfg config.NozzleConfig) (combustion.NozzleModel, error) {
	switch cfg.Model {
	case "", "isentropic":
		return combustion.NewIsentropicNozzle(cfg.Efficiency), nil
	case "fixed":
		return combustion.FixedExhaust{
			Velocity:     cfg.FixedVelocity,
			ExitPressure: thermo.AmbientPressure,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown nozzle model %q", sim.ErrInvalidConfig, cfg.Model)
	}
}

func buildSchedule(ox config.OxidizerConfig) sim.FlowSchedule {
	if ox.FinalFlowRate > 0 && ox.RampDuration > 0 {
		return sim.RampFlow{
			Initial:  ox.FlowRate,
			Final:    ox.FinalFlowRate,
			Duration: ox.RampDuration,
		}
	}
	return sim.ConstantFlow(ox.FlowRate)
}

// UsableOxidizer is the oxidizer budget available to the burn. A
// directly-specified tank mass wins; otherwise the load is sized from
// the tank geometry and the N₂O liquid density at tank temperature.
// Either way the usable fraction derates the load.
func UsableOxidizer(ox config.OxidizerConfig) float64 {
	usable := ox.UsableFraction
	if usable <= 0 || usable > 1 {
		usable = config.DefaultUsableFraction
	}
	if ox.TankMass > 0 {
		return ox.TankMass * usable
	}
	tank := geometry.Tank{
		OuterDiameter:  ox.TankOuterDiam,
		WallThickness:  ox.TankWallThk,
		Length:         ox.TankLength,
		UllageFraction: ox.UllageFraction,
	}
	return tank.AvailableVolume() * thermo.N2OLiquidDensity(ox.TankTemp) * usable
}

// MassBudget is the dry-plus-propellant mass breakdown used for the
// thrust-to-weight figure in summaries.
type MassBudget struct {
	Casing   float64 // kg
	Tank     float64 // kg
	Fuel     float64 // kg
	Oxidizer float64 // kg
}

func (b MassBudget) Total() float64 {
	return b.Casing + b.Tank + b.Fuel + b.Oxidizer
}

// Budget computes the motor's mass breakdown from the configuration.
func Budget(cfg *config.Config) (MassBudget, error) {
	var b MassBudget

	grain := geometry.Grain{
		InitialPortRadius: cfg.Grain.PortRadius,
		OuterRadius:       cfg.Grain.OuterRadius,
		Length:            cfg.Grain.Length,
	}
	b.Fuel = grain.FuelMass(cfg.Grain.FuelDensity)

	if cfg.Casing.Material != "" {
		props, err := materials.Lookup(cfg.Casing.Material)
		if err != nil {
			return MassBudget{}, err
		}
		outer := geometry.CasingOuterDiameter(cfg.Grain.OuterRadius, cfg.Casing.Insulation, cfg.Casing.WallThickness)
		b.Casing = structure.ShellMass(outer, cfg.Grain.Length, cfg.Casing.WallThickness, props.Density)
		// Flat end caps close the chamber at both ends.
		b.Casing += 2 * structure.SolidCylinderMass(outer, cfg.Casing.WallThickness, props.Density)
	}

	if cfg.Oxidizer.TankOuterDiam > 0 {
		tank := geometry.Tank{
			OuterDiameter:  cfg.Oxidizer.TankOuterDiam,
			WallThickness:  cfg.Oxidizer.TankWallThk,
			Length:         cfg.Oxidizer.TankLength,
			UllageFraction: cfg.Oxidizer.UllageFraction,
		}
		// Tank structure assumed same alloy as the casing when given.
		if cfg.Casing.Material != "" {
			props, err := materials.Lookup(cfg.Casing.Material)
			if err != nil {
				return MassBudget{}, err
			}
			b.Tank = tank.ShellVolume() * props.Density
		}
		b.Oxidizer = tank.AvailableVolume() * thermo.N2OLiquidDensity(cfg.Oxidizer.TankTemp)
	} else {
		b.Oxidizer = cfg.Oxidizer.TankMass
	}

	return b, nil
}
