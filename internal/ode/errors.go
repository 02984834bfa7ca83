package ode

import "errors"

// ErrInvalidState indicates a state vector containing NaN or Inf,
// typically the result of non-physical model parameters. Dimension
// mismatches, by contrast, are programmer errors and panic in Phase.
var ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")
