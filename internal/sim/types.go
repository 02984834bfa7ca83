package sim

import (
	"fmt"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// StopFunc reports whether the run should terminate after the state (s, q)
// is reached, e.g. ground impact or apogee after burnout. Termination is a
// driver concern; models and integrators never self-terminate.
type StopFunc func(s float64, q ode.State) bool

// Observer is called once per recorded sample with a borrowed state.
// Implementations must not retain q.
type Observer interface {
	OnStep(s float64, q ode.State)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s float64, q ode.State)
	Value() float64
	Reset()
}

// Config controls a fixed-step run. The driver requires Dt > 0; rewinding
// with a negative step stays available through ode.Integrator.Step
// directly.
type Config struct {
	Dt       float64
	Duration float64
	Stop     StopFunc
}

type Result struct {
	States     []ode.State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Stopped    bool // Stop condition fired before Duration elapsed
}

// Final returns the last recorded state and time.
func (r *Result) Final() (float64, ode.State) {
	n := len(r.States)
	if n == 0 {
		return 0, nil
	}
	return r.Times[n-1], r.States[n-1]
}

// SimError carries the step index and time at which a run failed.
type SimError struct {
	Step int
	Time float64
	Err  error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *SimError) Unwrap() error {
	return e.Err
}
