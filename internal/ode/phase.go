package ode

import "fmt"

// Phase carries the integration state of one body: the phase vector q and
// the independent variable s (time for the trajectory models, but any
// monotone parameter works). Models embed Phase, which both stores their
// state and satisfies the Phase accessor of [System].
//
// The vector length is fixed at construction; every model documents its own
// slot layout with named index constants and accessor methods.
type Phase struct {
	s float64
	q State
}

// NewPhase returns a Phase with independent variable s0 and the given
// initial components.
func NewPhase(s0 float64, q0 ...float64) Phase {
	q := make(State, len(q0))
	copy(q, q0)
	return Phase{s: s0, q: q}
}

// Body makes any embedding model satisfy the System interface. The method
// cannot be named Phase: on an embedding model that selector resolves to
// the embedded field, which would shadow the promoted method.
func (p *Phase) Body() *Phase { return p }

func (p *Phase) Len() int { return len(p.q) }

// S returns the current value of the independent variable.
func (p *Phase) S() float64 { return p.s }

// At returns component i. Indices outside [0, Len()) are programmer errors
// and panic.
func (p *Phase) At(i int) float64 {
	if i < 0 || i >= len(p.q) {
		panic(fmt.Sprintf("ode: component index %d out of range [0,%d)", i, len(p.q)))
	}
	return p.q[i]
}

// Set assigns component i, with the same range check as At.
func (p *Phase) Set(i int, v float64) {
	if i < 0 || i >= len(p.q) {
		panic(fmt.Sprintf("ode: component index %d out of range [0,%d)", i, len(p.q)))
	}
	p.q[i] = v
}

// Q returns the live phase vector. Integrators borrow it for the duration of
// a single step; callers must treat it as read-only (use Set) and must not
// retain it across steps. Clone the result before recording it.
func (p *Phase) Q() State { return p.q }

// Advance writes the post-step state. Only integrators call this; q is
// copied, never aliased.
func (p *Phase) Advance(s float64, q State) {
	if len(q) != len(p.q) {
		panic(fmt.Sprintf("ode: advance with %d components into phase of length %d", len(q), len(p.q)))
	}
	p.s = s
	copy(p.q, q)
}

// Reset re-initializes the body to a new starting condition, e.g. a fresh
// launch. The vector length must match the layout fixed at construction.
func (p *Phase) Reset(s0 float64, q0 ...float64) {
	if len(q0) != len(p.q) {
		panic(fmt.Sprintf("ode: reset with %d components into phase of length %d", len(q0), len(p.q)))
	}
	p.s = s0
	copy(p.q, q0)
}
