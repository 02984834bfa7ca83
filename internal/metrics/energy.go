package metrics

import (
	"math"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// Energetic is satisfied by models that can evaluate their mechanical
// energy for a state in their own layout.
type Energetic interface {
	Energy(q ode.State) float64
}

// EnergyDrift tracks the largest relative departure from the first observed
// energy. For a conservative system it measures integrator error; for a
// damped one it simply reports the decay fraction.
type EnergyDrift struct {
	sys      Energetic
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(sys Energetic) *EnergyDrift {
	return &EnergyDrift{sys: sys}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s float64, q ode.State) {
	energy := e.sys.Energy(q)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		if drift > e.maxDrift {
			e.maxDrift = drift
		}
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
