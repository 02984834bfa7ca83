package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/atmos"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/config"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/integrators"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/metrics"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/models"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/sim"
)

// Builder constructs a fresh scenario from configuration. Every call
// returns independent systems, so builders are safe to invoke once per
// ensemble member.
type Builder func(cfg *config.Config) (*Scenario, error)

type Registry struct {
	builders map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.builders["golf"] = buildGolf
	r.builders["rocket"] = buildRocket
	r.builders["spring"] = buildSpring
	return r
}

func (r *Registry) Get(name string, cfg *config.Config) (*Scenario, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return b(cfg)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewIntegrator maps a name to a fresh integrator.
func NewIntegrator(name string) (ode.Integrator, error) {
	switch name {
	case "rk4":
		return integrators.NewRK4(), nil
	case "euler":
		return integrators.NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func newAtmosphere(name string) (atmos.Model, error) {
	switch name {
	case "", "us76":
		return atmos.NewUS76(), nil
	case "exponential":
		return atmos.NewExponential(), nil
	default:
		return nil, fmt.Errorf("unknown atmosphere: %s", name)
	}
}

func buildGolf(cfg *config.Config) (*Scenario, error) {
	pc := cfg.Projectile

	p := models.NewProjectile()
	p.Mass = pc.Mass
	p.Area = pc.Area
	p.Density = pc.Density
	p.Cd = pc.Cd
	p.WindVx = pc.WindVx
	p.WindVy = pc.WindVy
	p.Rx, p.Ry, p.Rz = pc.Rx, pc.Ry, pc.Rz
	p.Omega = pc.Omega
	p.Radius = pc.Radius
	p.Launch(0, 0, 0, pc.Speed, pc.LoftDeg*math.Pi/180)

	return &Scenario{
		Name:   "golf",
		System: p,
		Cfg: sim.Config{
			Dt:       cfg.Dt,
			Duration: cfg.Duration,
			// Land when the ball comes back through the turf.
			Stop: func(s float64, q ode.State) bool {
				return s > 0 && q[models.ProjZ] < 0
			},
		},
		Metrics: []sim.Metric{
			metrics.NewApex(models.ProjZ),
			metrics.NewFinal("downrange", models.ProjX),
			metrics.NewFinal("crossrange", models.ProjY),
			metrics.NewPeakSpeed(models.ProjVx, models.ProjVy, models.ProjVz),
		},
	}, nil
}

func buildRocket(cfg *config.Config) (*Scenario, error) {
	rc := cfg.Rocket

	atm, err := newAtmosphere(rc.Atmosphere)
	if err != nil {
		return nil, err
	}

	r := models.NewRocket()
	r.NumEngines = rc.Engines
	r.SeaLevelThrust = rc.SeaLevelThrust
	r.VacuumThrust = rc.VacuumThrust
	r.Cd = rc.Cd
	r.Diameter = rc.Diameter
	r.Atmosphere = atm
	r.Launch(rc.InitialMass, rc.MassFlowRate, rc.PitchDeg*math.Pi/180, rc.PitchRate, 0)

	// The metric gets its own atmosphere so its queries never interleave
	// with the model's cache.
	metricAtm, err := newAtmosphere(rc.Atmosphere)
	if err != nil {
		return nil, err
	}

	burnTime := rc.BurnTime
	return &Scenario{
		Name:   "rocket",
		System: r,
		Cfg: sim.Config{
			Dt:       cfg.Dt,
			Duration: cfg.Duration,
			// Coast to apogee after burnout, or all the way down if the
			// vehicle falls back first.
			Stop: func(s float64, q ode.State) bool {
				if s > 0 && q[models.RocketZ] < 0 {
					return true
				}
				return s >= burnTime && q[models.RocketVz] < 0
			},
		},
		Metrics: []sim.Metric{
			metrics.NewApex(models.RocketZ),
			metrics.NewFinal("final_mass", models.RocketMass),
			metrics.NewPeakSpeed(models.RocketVx, models.RocketVz),
			metrics.NewPeakDynamicPressure(metricAtm, models.RocketZ, models.RocketVx, models.RocketVz),
		},
		Observers: []sim.Observer{
			&Burnout{Rocket: r, BurnTime: burnTime},
		},
	}, nil
}

func buildSpring(cfg *config.Config) (*Scenario, error) {
	sc := cfg.Spring

	s := models.NewSpring()
	s.Mass = sc.Mass
	s.Damping = sc.Damping
	s.Stiffness = sc.Stiffness
	s.Release(sc.X0)

	return &Scenario{
		Name:   "spring",
		System: s,
		Cfg: sim.Config{
			Dt:       cfg.Dt,
			Duration: cfg.Duration,
		},
		Metrics: []sim.Metric{
			metrics.NewEnergyDrift(s),
			metrics.NewApex(models.SpringX),
		},
	}, nil
}
