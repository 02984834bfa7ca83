// Package ode provides the core primitives for fixed-step integration of
// equations of motion.
//
// The package defines the types every simulated body is built from:
//
//   - [State]: vector of phase variables
//   - [Phase]: a State plus the independent variable, embedded by models
//   - [Model]: the one-operation right-hand-side contract
//   - [System]: a Model together with the Phase it owns
//   - [Integrator]: advances a System by one step
//
// # Derivative convention
//
// Model.Derive returns derivatives already multiplied by the step size:
//
//	out[i] = ds * d(q[i])/ds
//
// evaluated at the intermediate state q[i] + scale*dq[i]. Integrators
// therefore combine stage outputs by plain weighted summation, with no
// per-stage rescaling. Both sides of the contract must follow the same
// convention; mixing a raw-derivative model with a pre-scaled integrator
// silently corrupts every step.
//
// # Thread safety
//
// A System is not safe for concurrent use. Integrators carry only scratch
// buffers and may be shared across sequential use, but a batch study must
// give every body its own System (see sim.Ensemble).
package ode
