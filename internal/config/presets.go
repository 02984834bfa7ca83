package config

import "sort"

// Presets are named variations layered on the defaults per scenario.
var Presets = map[string]map[string]func(*Config){
	"golf": {
		// The reference drive: 45 degrees, 50 m/s, 300 rad/s backspin.
		"drive": func(c *Config) {},
		"windy": func(c *Config) {
			c.Projectile.WindVx = -8
			c.Projectile.WindVy = 3
		},
		"hook": func(c *Config) {
			c.Projectile.Ry = 0.953
			c.Projectile.Rz = 0.302
		},
		"knuckleball": func(c *Config) {
			c.Projectile.Omega = 0
		},
	},
	"rocket": {
		"vertical": func(c *Config) {
			c.Dt = 0.1
			c.Duration = 300
		},
		"pitchover": func(c *Config) {
			c.Dt = 0.1
			c.Duration = 300
			c.Rocket.PitchRate = -0.003
		},
		"sustainer": func(c *Config) {
			c.Dt = 0.1
			c.Duration = 600
			c.Rocket.Engines = 1
			c.Rocket.SeaLevelThrust = 340000
			c.Rocket.VacuumThrust = 420000
			c.Rocket.MassFlowRate = 110
			c.Rocket.InitialMass = 68000
			c.Rocket.Diameter = 2.4
			c.Rocket.BurnTime = 420
		},
	},
	"spring": {
		"gentle": func(c *Config) {
			c.Scenario = "spring"
			c.Duration = 20
		},
		"undamped": func(c *Config) {
			c.Scenario = "spring"
			c.Duration = 20
			c.Spring.Damping = 0
		},
		"stiff": func(c *Config) {
			c.Scenario = "spring"
			c.Dt = 0.001
			c.Spring.Stiffness = 400
		},
	},
}

// GetPreset returns the defaults with the named preset applied, or nil if
// the scenario or preset is unknown.
func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	apply, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Scenario = scenario
	apply(cfg)
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
