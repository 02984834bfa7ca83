// Package metrics provides per-run scalar accumulators for trajectory
// studies. Each metric observes every recorded sample and reduces it to one
// number reported in the run result.
package metrics

import (
	"math"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/atmos"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// Apex tracks the highest value seen at one state slot, typically the
// altitude slot.
type Apex struct {
	idx int
	max float64
}

func NewApex(altitudeIndex int) *Apex {
	return &Apex{idx: altitudeIndex, max: math.Inf(-1)}
}

func (a *Apex) Name() string { return "apex" }

func (a *Apex) Observe(s float64, q ode.State) {
	if q[a.idx] > a.max {
		a.max = q[a.idx]
	}
}

func (a *Apex) Value() float64 { return a.max }
func (a *Apex) Reset()         { a.max = math.Inf(-1) }

// Final reports the last observed value at one state slot, e.g. downrange
// or crossrange distance at impact.
type Final struct {
	name string
	idx  int
	val  float64
}

func NewFinal(name string, index int) *Final {
	return &Final{name: name, idx: index}
}

func (f *Final) Name() string                   { return f.name }
func (f *Final) Observe(s float64, q ode.State) { f.val = q[f.idx] }
func (f *Final) Value() float64                 { return f.val }
func (f *Final) Reset()                         { f.val = 0 }

// PeakSpeed tracks the largest velocity magnitude over the given velocity
// slots.
type PeakSpeed struct {
	velIdx []int
	max    float64
}

func NewPeakSpeed(velocityIndices ...int) *PeakSpeed {
	return &PeakSpeed{velIdx: velocityIndices}
}

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(s float64, q ode.State) {
	sum := 0.0
	for _, i := range p.velIdx {
		sum += q[i] * q[i]
	}
	if v := math.Sqrt(sum); v > p.max {
		p.max = v
	}
}

func (p *PeakSpeed) Value() float64 { return p.max }
func (p *PeakSpeed) Reset()         { p.max = 0 }

// PeakDynamicPressure tracks max-q, 0.5 rho v^2, for an ascent through an
// atmosphere.
type PeakDynamicPressure struct {
	atm    atmos.Model
	velIdx []int
	altIdx int
	max    float64
}

func NewPeakDynamicPressure(atm atmos.Model, altitudeIndex int, velocityIndices ...int) *PeakDynamicPressure {
	return &PeakDynamicPressure{atm: atm, altIdx: altitudeIndex, velIdx: velocityIndices}
}

func (p *PeakDynamicPressure) Name() string { return "max_q" }

func (p *PeakDynamicPressure) Observe(s float64, q ode.State) {
	sum := 0.0
	for _, i := range p.velIdx {
		sum += q[i] * q[i]
	}
	_, rho := p.atm.At(q[p.altIdx])
	if dq := 0.5 * rho * sum; dq > p.max {
		p.max = dq
	}
}

func (p *PeakDynamicPressure) Value() float64 { return p.max }
func (p *PeakDynamicPressure) Reset()         { p.max = 0 }
