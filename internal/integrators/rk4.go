package integrators

import "github.com/jyunfan2015/physics-for-game-programmers/internal/ode"

// RK4 is the classical explicit 4th-order Runge-Kutta stepper. The scratch
// buffers are reused across steps and never influence the result; a single
// RK4 value may drive any number of systems sequentially.
type RK4 struct {
	k1, k2, k3, k4 ode.State
	zero           ode.State
	sum            ode.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(ode.State, n)
		r.k2 = make(ode.State, n)
		r.k3 = make(ode.State, n)
		r.k4 = make(ode.State, n)
		r.zero = make(ode.State, n)
		r.sum = make(ode.State, n)
	}
}

// Step advances sys by ds. Stages two and three both evaluate at the
// half-step offset with scale 0.5 and differ only in the delta fed back in;
// the stage order and weights below are the method itself and must not be
// rearranged. Derivatives arrive pre-scaled by ds, so the combination is a
// plain weighted sum.
func (r *RK4) Step(sys ode.System, ds float64) {
	p := sys.Body()
	n := p.Len()
	r.ensureScratch(n)

	s := p.S()
	q := p.Q()

	copy(r.k1, sys.Derive(s, q, r.zero, ds, 0.0))
	copy(r.k2, sys.Derive(s+ds/2, q, r.k1, ds, 0.5))
	copy(r.k3, sys.Derive(s+ds/2, q, r.k2, ds, 0.5))
	copy(r.k4, sys.Derive(s+ds, q, r.k3, ds, 1.0))

	for i := 0; i < n; i++ {
		r.sum[i] = q[i] + (r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])/6
	}

	p.Advance(s+ds, r.sum)
}
