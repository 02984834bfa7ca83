package ode

// Model is the physics contract every dynamics model implements. Adding a
// new body type means implementing this one operation and embedding a Phase;
// the integrators never need to change.
//
// Derive evaluates the right-hand side of the equations of motion at one
// integration stage. It must:
//
//  1. form the intermediate state tmp[i] = q[i] + scale*dq[i],
//  2. compute the physical forces and rates at (s, tmp),
//  3. return ds * d(q[i])/ds for every slot — pre-scaled by the step size.
//
// q and dq are borrowed from the caller and must not be mutated or retained.
// Models are expected to regularize any velocity magnitude used as a divisor
// (add a small epsilon) rather than guard against zero; nonsense physical
// parameters produce NaN rather than an error.
type Model interface {
	Derive(s float64, q, dq State, ds, scale float64) State
}

// System couples a Model with the Phase holding its evolving state.
// Embedding Phase in a model provides the Body method automatically.
type System interface {
	Model
	Body() *Phase
}

// Integrator advances a System by one step of size ds, reading the current
// phase and writing the advanced one back through Phase.Advance. A zero ds
// is a no-op; a negative ds steps backward (rewind), which is valid.
type Integrator interface {
	Step(sys System, ds float64)
}
