package models

import "github.com/jyunfan2015/physics-for-game-programmers/internal/ode"

// Spring slot layout.
const (
	SpringVx = iota
	SpringX
	SpringLen
)

// Spring is a damped single-DOF spring-mass oscillator,
// m x” = -mu x' - k x.
type Spring struct {
	ode.Phase

	Mass      float64 // kg
	Damping   float64 // mu, kg/s
	Stiffness float64 // k, N/m
}

func NewSpring() *Spring {
	return &Spring{
		Phase:     ode.NewPhase(0, 0, 0.4),
		Mass:      1.0,
		Damping:   0.5,
		Stiffness: 20.0,
	}
}

// Release resets the mass at displacement x0 with zero velocity.
func (s *Spring) Release(x0 float64) {
	s.Reset(0, 0, x0)
}

func (s *Spring) X() float64  { return s.At(SpringX) }
func (s *Spring) VX() float64 { return s.At(SpringVx) }

func (s *Spring) Derive(t float64, q, dq ode.State, ds, scale float64) ode.State {
	vx := q[SpringVx] + scale*dq[SpringVx]
	x := q[SpringX] + scale*dq[SpringX]

	out := make(ode.State, SpringLen)
	out[SpringVx] = ds * (-s.Damping*vx - s.Stiffness*x) / s.Mass
	out[SpringX] = ds * vx
	return out
}

// Energy returns kinetic plus elastic energy of a state with the spring's
// layout. With zero damping it is conserved; with damping it decays
// monotonically, which the metrics use as a drift check.
func (s *Spring) Energy(q ode.State) float64 {
	vx := q[SpringVx]
	x := q[SpringX]
	return 0.5*s.Mass*vx*vx + 0.5*s.Stiffness*x*x
}
