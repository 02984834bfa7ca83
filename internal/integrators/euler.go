package integrators

import "github.com/jyunfan2015/physics-for-game-programmers/internal/ode"

// Euler is the first-order forward Euler stepper, kept for integrator
// comparisons. Under the pre-scaled derivative convention a step is a
// single evaluation added straight onto the state.
type Euler struct {
	k    ode.State
	zero ode.State
	sum  ode.State
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys ode.System, ds float64) {
	p := sys.Body()
	n := p.Len()
	if len(e.k) != n {
		e.k = make(ode.State, n)
		e.zero = make(ode.State, n)
		e.sum = make(ode.State, n)
	}

	s := p.S()
	q := p.Q()

	copy(e.k, sys.Derive(s, q, e.zero, ds, 0.0))
	for i := 0; i < n; i++ {
		e.sum[i] = q[i] + e.k[i]
	}

	p.Advance(s+ds, e.sum)
}
