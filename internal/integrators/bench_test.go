package integrators

import (
	"testing"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// benchBody is a 10-slot body with trivial physics, matching the widest
// state layout the integrators drive in practice.
type benchBody struct {
	ode.Phase
	out ode.State
}

func newBenchBody() *benchBody {
	return &benchBody{
		Phase: ode.NewPhase(0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0),
		out:   make(ode.State, 10),
	}
}

func (b *benchBody) Derive(s float64, q, dq ode.State, ds, scale float64) ode.State {
	for i := 0; i < len(q); i += 2 {
		x := q[i] + scale*dq[i]
		v := q[i+1] + scale*dq[i+1]
		b.out[i] = ds * v
		b.out[i+1] = ds * -x
	}
	return b.out
}

func BenchmarkRK4(b *testing.B) {
	integ := NewRK4()
	osc := newOscillator(1.0, 0.0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(osc, 0.01)
	}
}

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler()
	osc := newOscillator(1.0, 0.0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(osc, 0.01)
	}
}

func BenchmarkRK4_Wide(b *testing.B) {
	integ := NewRK4()
	body := newBenchBody()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(body, 0.001)
	}
}
