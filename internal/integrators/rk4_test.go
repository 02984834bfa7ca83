package integrators

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// oscillator is an undamped unit oscillator, layout [x, v].
type oscillator struct {
	ode.Phase
}

func newOscillator(x0, v0 float64) *oscillator {
	return &oscillator{Phase: ode.NewPhase(0, x0, v0)}
}

func (o *oscillator) Derive(s float64, q, dq ode.State, ds, scale float64) ode.State {
	x := q[0] + scale*dq[0]
	v := q[1] + scale*dq[1]
	return ode.State{ds * v, ds * -x}
}

// freefall is a constant-field body, layout [v, z]. RK4 integrates
// polynomials of the step exactly, so closed-form kinematics must be
// reproduced to roundoff.
type freefall struct {
	ode.Phase
	g float64
}

func (f *freefall) Derive(s float64, q, dq ode.State, ds, scale float64) ode.State {
	v := q[0] + scale*dq[0]
	return ode.State{ds * f.g, ds * v}
}

func TestRK4Accuracy(t *testing.T) {
	osc := newOscillator(1.0, 0.0)
	integ := NewRK4()

	dt := 0.01
	steps := 100
	for i := 0; i < steps; i++ {
		integ.Step(osc, dt)
	}

	tf := float64(steps) * dt
	if !scalar.EqualWithinAbs(osc.At(0), math.Cos(tf), 1e-8) {
		t.Errorf("position error too large: got %.10f, expected %.10f", osc.At(0), math.Cos(tf))
	}
	if !scalar.EqualWithinAbs(osc.At(1), -math.Sin(tf), 1e-8) {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", osc.At(1), -math.Sin(tf))
	}
}

func TestRK4ConstantField(t *testing.T) {
	g := -9.81
	v0, z0 := 12.0, 3.0
	body := &freefall{Phase: ode.NewPhase(0, v0, z0), g: g}
	integ := NewRK4()

	dt := 0.02
	steps := 250
	for i := 0; i < steps; i++ {
		integ.Step(body, dt)
	}

	tf := float64(steps) * dt
	wantV := v0 + g*tf
	wantZ := z0 + v0*tf + 0.5*g*tf*tf

	if !scalar.EqualWithinAbs(body.At(0), wantV, 1e-10) {
		t.Errorf("velocity: got %.12f, expected %.12f", body.At(0), wantV)
	}
	if !scalar.EqualWithinAbs(body.At(1), wantZ, 1e-10) {
		t.Errorf("position: got %.12f, expected %.12f", body.At(1), wantZ)
	}
}

func TestRK4ZeroStep(t *testing.T) {
	osc := newOscillator(0.7, -0.3)
	integ := NewRK4()

	integ.Step(osc, 0)

	if osc.S() != 0 || osc.At(0) != 0.7 || osc.At(1) != -0.3 {
		t.Errorf("zero step must be a no-op, got s=%v q=[%v %v]", osc.S(), osc.At(0), osc.At(1))
	}
}

func TestRK4Rewind(t *testing.T) {
	osc := newOscillator(1.0, 0.0)
	integ := NewRK4()

	dt := 0.05
	for i := 0; i < 40; i++ {
		integ.Step(osc, dt)
	}
	for i := 0; i < 40; i++ {
		integ.Step(osc, -dt)
	}

	if !scalar.EqualWithinAbs(osc.At(0), 1.0, 1e-9) {
		t.Errorf("rewind did not recover x0: got %.12f", osc.At(0))
	}
	if !scalar.EqualWithinAbs(osc.S(), 0, 1e-12) {
		t.Errorf("rewind did not recover s: got %v", osc.S())
	}
}

func TestRK4Deterministic(t *testing.T) {
	integ := NewRK4()

	a := newOscillator(0.4, 1.1)
	b := newOscillator(0.4, 1.1)

	for i := 0; i < 500; i++ {
		integ.Step(a, 0.01)
	}
	for i := 0; i < 500; i++ {
		integ.Step(b, 0.01)
	}

	if a.At(0) != b.At(0) || a.At(1) != b.At(1) || a.S() != b.S() {
		t.Errorf("identical inputs must give bit-identical outputs: %v vs %v", a.Q(), b.Q())
	}
}

func TestRK4ConvergenceOrder(t *testing.T) {
	final := func(dt float64, steps int) float64 {
		osc := newOscillator(1.0, 0.0)
		integ := NewRK4()
		for i := 0; i < steps; i++ {
			integ.Step(osc, dt)
		}
		return osc.At(0)
	}

	tf := 2.0
	errCoarse := math.Abs(final(0.02, 100) - math.Cos(tf))
	errFine := math.Abs(final(0.01, 200) - math.Cos(tf))

	// 4th order: halving dt should shrink the global error ~16x.
	ratio := errCoarse / errFine
	if ratio < 12 || ratio > 20 {
		t.Errorf("expected ~16x error reduction, got %.1fx (%.3e vs %.3e)", ratio, errCoarse, errFine)
	}
}

func TestEulerAccuracy(t *testing.T) {
	osc := newOscillator(1.0, 0.0)
	integ := NewEuler()

	dt := 0.001
	steps := 1000
	for i := 0; i < steps; i++ {
		integ.Step(osc, dt)
	}

	tf := float64(steps) * dt
	if math.Abs(osc.At(0)-math.Cos(tf)) > 1e-2 {
		t.Errorf("position error too large: got %.6f, expected %.6f", osc.At(0), math.Cos(tf))
	}
}
