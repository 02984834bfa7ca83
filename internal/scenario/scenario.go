// Package scenario assembles ready-to-run setups from configuration: the
// system, its initial state, the stop condition, and the default metrics.
// Driver-level policy that the models deliberately do not own, like engine
// cutoff at burn completion, lives here.
package scenario

import (
	"context"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/models"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/sim"
)

// Scenario is a configured run waiting for an integrator.
type Scenario struct {
	Name      string
	System    ode.System
	Cfg       sim.Config
	Metrics   []sim.Metric
	Observers []sim.Observer
}

// Simulator wires the scenario into a driver using the given integrator.
func (sc *Scenario) Simulator(integ ode.Integrator) *sim.Simulator {
	s := sim.New(sc.System, integ)
	for _, m := range sc.Metrics {
		s.AddMetric(m)
	}
	for _, o := range sc.Observers {
		s.AddObserver(o)
	}
	return s
}

// Run builds the simulator and executes the scenario.
func (sc *Scenario) Run(ctx context.Context, integ ode.Integrator) (*sim.Result, error) {
	return sc.Simulator(integ).Run(ctx, sc.Cfg)
}

// Burnout is the observer that ends a rocket's burn: once the run clock
// passes BurnTime it zeros the engine count and the mass-flow slot, killing
// thrust and mass loss in one stroke. The model itself never cuts its own
// burn, so every rocket scenario installs one of these.
type Burnout struct {
	Rocket   *models.Rocket
	BurnTime float64
	done     bool
}

func (b *Burnout) OnStep(s float64, q ode.State) {
	if b.done || s < b.BurnTime {
		return
	}
	b.Rocket.NumEngines = 0
	b.Rocket.Set(models.RocketMdot, 0)
	b.done = true
}
