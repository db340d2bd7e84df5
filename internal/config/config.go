// Package config defines the YAML motor configuration and named presets.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt             = 0.01
	DefaultMaxTime        = 30.0
	DefaultUsableFraction = 0.90
	DefaultUllageFraction = 0.80
	DefaultTankTemp       = 25.0
)

// Config mirrors the YAML schema. All lengths are meters, masses kg,
// flows kg/s, pressures Pa, temperatures °C.
type Config struct {
	Grain    GrainConfig    `yaml:"grain"`
	Oxidizer OxidizerConfig `yaml:"oxidizer"`
	Nozzle   NozzleConfig   `yaml:"nozzle"`
	Casing   CasingConfig   `yaml:"casing"`
	Sim      SimConfig      `yaml:"sim"`
}

type GrainConfig struct {
	PortRadius  float64 `yaml:"port_radius"`
	OuterRadius float64 `yaml:"outer_radius"`
	Length      float64 `yaml:"length"`
	FuelDensity float64 `yaml:"fuel_density"`
	RegressionA float64 `yaml:"regression_a"`
	RegressionN float64 `yaml:"regression_n"`
}

// OxidizerConfig describes the feed. TankMass, when set, is the liquid
// oxidizer load directly; otherwise it is derived from the tank
// geometry and the N₂O density at TankTemp.
type OxidizerConfig struct {
	FlowRate       float64 `yaml:"flow_rate"`
	FinalFlowRate  float64 `yaml:"final_flow_rate"`
	RampDuration   float64 `yaml:"ramp_duration"`
	TankMass       float64 `yaml:"tank_mass"`
	TankOuterDiam  float64 `yaml:"tank_outer_diameter"`
	TankWallThk    float64 `yaml:"tank_wall_thickness"`
	TankLength     float64 `yaml:"tank_length"`
	TankTemp       float64 `yaml:"tank_temp"`
	UllageFraction float64 `yaml:"ullage_fraction"`
	UsableFraction float64 `yaml:"usable_fraction"`
}

type NozzleConfig struct {
	Model          string  `yaml:"model"` // "isentropic" or "fixed"
	ThroatDiameter float64 `yaml:"throat_diameter"`
	ExitDiameter   float64 `yaml:"exit_diameter"`
	Efficiency     float64 `yaml:"efficiency"`
	FixedVelocity  float64 `yaml:"fixed_velocity"`
}

type CasingConfig struct {
	Material      string  `yaml:"material"`
	WallThickness float64 `yaml:"wall_thickness"`
	Insulation    float64 `yaml:"insulation"`
	SafetyFactor  float64 `yaml:"safety_factor"`
}

type SimConfig struct {
	Dt      float64 `yaml:"dt"`
	MaxTime float64 `yaml:"max_time"`
}

// DefaultConfig is an N₂O/paraffin lab motor sized from the reference
// design: 2cm port in a 5cm grain, 6mm throat, SS304 casing.
func DefaultConfig() *Config {
	return &Config{
		Grain: GrainConfig{
			PortRadius:  0.02,
			OuterRadius: 0.05,
			Length:      0.5,
			FuelDensity: 900,
			RegressionA: 1.561e-4,
			RegressionN: 0.5,
		},
		Oxidizer: OxidizerConfig{
			FlowRate:       0.5,
			TankMass:       4.0,
			TankTemp:       DefaultTankTemp,
			UllageFraction: DefaultUllageFraction,
			UsableFraction: DefaultUsableFraction,
		},
		Nozzle: NozzleConfig{
			Model:          "isentropic",
			ThroatDiameter: 0.006,
			ExitDiameter:   0.012,
			Efficiency:     0.95,
		},
		Casing: CasingConfig{
			Material:      "SS304",
			WallThickness: 0.003,
			Insulation:    0.002,
			SafetyFactor:  2.0,
		},
		Sim: SimConfig{
			Dt:      DefaultDt,
			MaxTime: DefaultMaxTime,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
