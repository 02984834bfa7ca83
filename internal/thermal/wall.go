// Package thermal solves transient one-dimensional heat conduction into a
// semi-infinite wall in closed form. It is deliberately not a dynamics
// model: the solution is an error-function profile evaluated directly, with
// no integration involved.
package thermal

import "math"

// erfTable samples erf(s) at s = 0.0, 0.1, ..., 2.0.
var erfTable = [21]float64{
	0.0, 0.1125, 0.2227, 0.3286, 0.4284,
	0.5205, 0.6039, 0.6778, 0.7421, 0.7969,
	0.8427, 0.8802, 0.9103, 0.9340, 0.9523,
	0.9661, 0.9764, 0.9838, 0.9891, 0.9928,
	0.9953,
}

// Erf returns the error function by linear interpolation of the table,
// clamped to 1 for arguments at or beyond 2. An undefined argument (the
// x=0, t=0 corner) reads as the undisturbed profile.
func Erf(s float64) float64 {
	if s >= 2.0 || math.IsNaN(s) {
		return 1.0
	}
	if s <= 0 {
		return 0.0
	}
	j := int(s * 10.0)
	return erfTable[j] + (s*10.0-float64(j))*(erfTable[j+1]-erfTable[j])
}

// Wall is a slab with uniform initial temperature whose exposed face is
// held at a fixed boundary temperature from t = 0 on.
type Wall struct {
	Thickness   float64 // m
	Diffusivity float64 // m^2/s
	InitialT    float64
	BoundaryT   float64
}

// Temperature returns the temperature at depth x from the exposed face
// after elapsed time t:
//
//	T(x,t) = Tb + (Ti - Tb) erf(x / (2 sqrt(kappa t)))
//
// At t = 0 the argument is infinite and the profile is the undisturbed
// initial temperature everywhere except the face itself.
func (w *Wall) Temperature(x, t float64) float64 {
	grp := 0.5 * x / math.Sqrt(w.Diffusivity*t)
	return w.BoundaryT + (w.InitialT-w.BoundaryT)*Erf(grp)
}
