// Package config loads and saves scenario configuration as yaml, with
// typed sections per model family and named presets.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scenario   string  `yaml:"scenario"`
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`

	Projectile ProjectileConfig `yaml:"projectile"`
	Rocket     RocketConfig     `yaml:"rocket"`
	Spring     SpringConfig     `yaml:"spring"`
}

type ProjectileConfig struct {
	Mass    float64 `yaml:"mass"`
	Area    float64 `yaml:"area"`
	Density float64 `yaml:"density"`
	Cd      float64 `yaml:"cd"`
	WindVx  float64 `yaml:"wind_vx"`
	WindVy  float64 `yaml:"wind_vy"`
	Rx      float64 `yaml:"rx"`
	Ry      float64 `yaml:"ry"`
	Rz      float64 `yaml:"rz"`
	Omega   float64 `yaml:"omega"`
	Radius  float64 `yaml:"radius"`
	Speed   float64 `yaml:"speed"`
	LoftDeg float64 `yaml:"loft_deg"`
}

type RocketConfig struct {
	Engines        int     `yaml:"engines"`
	SeaLevelThrust float64 `yaml:"sea_level_thrust"`
	VacuumThrust   float64 `yaml:"vacuum_thrust"`
	MassFlowRate   float64 `yaml:"mass_flow_rate"`
	InitialMass    float64 `yaml:"initial_mass"`
	Cd             float64 `yaml:"cd"`
	Diameter       float64 `yaml:"diameter"`
	BurnTime       float64 `yaml:"burn_time"`
	PitchDeg       float64 `yaml:"pitch_deg"`
	PitchRate      float64 `yaml:"pitch_rate"`
	Atmosphere     string  `yaml:"atmosphere"` // us76 or exponential
}

type SpringConfig struct {
	Mass      float64 `yaml:"mass"`
	Damping   float64 `yaml:"damping"`
	Stiffness float64 `yaml:"stiffness"`
	X0        float64 `yaml:"x0"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "golf",
		Integrator: "rk4",
		Dt:         0.01,
		Duration:   10.0,
		Projectile: ProjectileConfig{
			Mass:    0.0459,
			Area:    0.0014,
			Density: 1.225,
			Cd:      0.22,
			Ry:      1.0,
			Omega:   300,
			Radius:  0.0214,
			Speed:   50,
			LoftDeg: 45,
		},
		Rocket: RocketConfig{
			Engines:        9,
			SeaLevelThrust: 845000,
			VacuumThrust:   914000,
			MassFlowRate:   280,
			InitialMass:    540000,
			Cd:             0.25,
			Diameter:       3.66,
			BurnTime:       160,
			PitchDeg:       90,
			PitchRate:      0,
			Atmosphere:     "us76",
		},
		Spring: SpringConfig{
			Mass:      1.0,
			Damping:   0.5,
			Stiffness: 20.0,
			X0:        0.4,
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
