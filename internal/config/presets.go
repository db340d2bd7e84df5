package config

var presets = map[string]*Config{
	"default": DefaultConfig(),
	"long-burn": {
		Grain: GrainConfig{
			PortRadius: 0.015, OuterRadius: 0.06, Length: 0.6,
			FuelDensity: 900, RegressionA: 1.561e-4, RegressionN: 0.5,
		},
		Oxidizer: OxidizerConfig{
			FlowRate: 0.3, TankMass: 8.0, TankTemp: DefaultTankTemp,
			UllageFraction: DefaultUllageFraction, UsableFraction: DefaultUsableFraction,
		},
		Nozzle: NozzleConfig{Model: "isentropic", ThroatDiameter: 0.005, ExitDiameter: 0.010, Efficiency: 0.95},
		Casing: CasingConfig{Material: "SS304", WallThickness: 0.004, Insulation: 0.002, SafetyFactor: 2.0},
		Sim:    SimConfig{Dt: DefaultDt, MaxTime: 60.0},
	},
	"high-flow": {
		Grain: GrainConfig{
			PortRadius: 0.02, OuterRadius: 0.05, Length: 0.5,
			FuelDensity: 900, RegressionA: 1.561e-4, RegressionN: 0.5,
		},
		Oxidizer: OxidizerConfig{
			FlowRate: 1.2, TankMass: 6.0, TankTemp: DefaultTankTemp,
			UllageFraction: DefaultUllageFraction, UsableFraction: DefaultUsableFraction,
		},
		Nozzle: NozzleConfig{Model: "isentropic", ThroatDiameter: 0.008, ExitDiameter: 0.016, Efficiency: 0.95},
		Casing: CasingConfig{Material: "Titanium Grade 5", WallThickness: 0.003, Insulation: 0.002, SafetyFactor: 2.0},
		Sim:    SimConfig{Dt: DefaultDt, MaxTime: DefaultMaxTime},
	},
	"blowdown": {
		Grain: GrainConfig{
			PortRadius: 0.02, OuterRadius: 0.05, Length: 0.5,
			FuelDensity: 900, RegressionA: 1.561e-4, RegressionN: 0.5,
		},
		Oxidizer: OxidizerConfig{
			FlowRate: 0.8, FinalFlowRate: 0.2, RampDuration: 8.0,
			TankMass: 5.0, TankTemp: DefaultTankTemp,
			UllageFraction: DefaultUllageFraction, UsableFraction: DefaultUsableFraction,
		},
		Nozzle: NozzleConfig{Model: "isentropic", ThroatDiameter: 0.006, ExitDiameter: 0.012, Efficiency: 0.95},
		Casing: CasingConfig{Material: "Aluminum", WallThickness: 0.004, Insulation: 0.002, SafetyFactor: 2.0},
		Sim:    SimConfig{Dt: DefaultDt, MaxTime: DefaultMaxTime},
	},
}

func GetPreset(name string) *Config {
	return presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
