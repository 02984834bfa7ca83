package sim

import (
	"context"
	"fmt"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// Simulator drives one system with one integrator over a fixed-step run.
// Not safe for concurrent use; see Ensemble for batch studies.
type Simulator struct {
	sys       ode.System
	integ     ode.Integrator
	metrics   []Metric
	observers []Observer
}

func New(sys ode.System, integ ode.Integrator) *Simulator {
	return &Simulator{sys: sys, integ: integ}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from the system's current phase until Duration elapses,
// the Stop condition fires, the context is canceled, or the state goes
// NaN/Inf. An invalid state is surfaced as a *SimError wrapping
// ode.ErrInvalidState together with the partial result up to the failing
// step.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %v", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("sim: duration must be positive, got %v", cfg.Duration)
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]ode.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	p := s.sys.Body()
	s.record(result, p)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.integ.Step(s.sys, cfg.Dt)
		result.StepsTaken++

		if !p.Q().IsValid() {
			s.finish(result)
			return result, &SimError{Step: i, Time: p.S(), Err: ode.ErrInvalidState}
		}

		s.record(result, p)

		if cfg.Stop != nil && cfg.Stop(p.S(), p.Q()) {
			result.Stopped = true
			break
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) record(result *Result, p *ode.Phase) {
	result.States = append(result.States, p.Q().Clone())
	result.Times = append(result.Times, p.S())

	for _, m := range s.metrics {
		m.Observe(p.S(), p.Q())
	}
	for _, o := range s.observers {
		o.OnStep(p.S(), p.Q())
	}
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
