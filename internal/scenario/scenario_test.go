package scenario

import (
	"context"
	"math"
	"testing"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/config"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/integrators"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/models"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/sim"
)

func TestRegistryScenarios(t *testing.T) {
	r := NewRegistry()

	names := r.List()
	if len(names) != 3 {
		t.Fatalf("expected 3 scenarios, got %v", names)
	}

	for _, name := range names {
		sc, err := r.Get(name, config.DefaultConfig())
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if sc.System == nil || sc.Cfg.Dt <= 0 {
			t.Errorf("%s: incomplete scenario", name)
		}
	}

	if _, err := r.Get("warp-drive", config.DefaultConfig()); err == nil {
		t.Error("unknown scenario must error")
	}
}

func TestGolfScenarioFlies(t *testing.T) {
	r := NewRegistry()
	sc, err := r.Get("golf", config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	result, err := sc.Run(context.Background(), integrators.NewRK4())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.Stopped {
		t.Error("ball should land within the default duration")
	}

	carry := result.Metrics["downrange"]
	vacuum := 50 * 50 / 9.81 // sin(2*45deg) = 1
	if carry <= 50 || carry >= vacuum {
		t.Errorf("carry out of range: %v m (vacuum %v m)", carry, vacuum)
	}
	if result.Metrics["apex"] <= 0 {
		t.Errorf("apex should be positive, got %v", result.Metrics["apex"])
	}
}

func TestRocketScenarioBurnout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scenario = "rocket"
	cfg.Dt = 0.1
	cfg.Duration = 400
	cfg.Rocket.BurnTime = 120

	r := NewRegistry()
	sc, err := r.Get("rocket", cfg)
	if err != nil {
		t.Fatal(err)
	}
	rocket := sc.System.(*models.Rocket)

	result, err := sc.Run(context.Background(), integrators.NewRK4())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Burnout fired: engines off, mass-flow slot zeroed, mass frozen at
	// the burnout value.
	if rocket.NumEngines != 0 {
		t.Errorf("engines still lit after burnout: %d", rocket.NumEngines)
	}
	if rocket.At(models.RocketMdot) != 0 {
		t.Errorf("mdot slot not zeroed: %v", rocket.At(models.RocketMdot))
	}

	wantMass := cfg.Rocket.InitialMass - cfg.Rocket.MassFlowRate*float64(cfg.Rocket.Engines)*cfg.Rocket.BurnTime
	if math.Abs(result.Metrics["final_mass"]-wantMass) > wantMass*0.01 {
		t.Errorf("final mass: got %v, want ~%v", result.Metrics["final_mass"], wantMass)
	}

	if result.Metrics["apex"] <= 0 {
		t.Errorf("apex should be positive, got %v", result.Metrics["apex"])
	}
	if result.Metrics["max_q"] <= 0 {
		t.Errorf("max-q should be positive, got %v", result.Metrics["max_q"])
	}
}

func TestSpringScenarioEnergyDrift(t *testing.T) {
	cfg := config.GetPreset("spring", "undamped")
	if cfg == nil {
		t.Fatal("missing undamped preset")
	}

	r := NewRegistry()
	sc, err := r.Get("spring", cfg)
	if err != nil {
		t.Fatal(err)
	}

	result, err := sc.Run(context.Background(), integrators.NewRK4())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if drift := result.Metrics["energy_drift"]; drift > 1e-4 {
		t.Errorf("undamped oscillator drifted too much: %v", drift)
	}
}

func TestNewIntegrator(t *testing.T) {
	for _, name := range []string{"rk4", "euler"} {
		if _, err := NewIntegrator(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := NewIntegrator("rk45"); err == nil {
		t.Error("unknown integrator must error")
	}
}

func TestGolfDispersionEnsemble(t *testing.T) {
	r := NewRegistry()

	winds := []float64{-8, 0, 8}
	scenarios := make([]*Scenario, len(winds))
	for i, wind := range winds {
		cfg := config.DefaultConfig()
		cfg.Projectile.WindVx = wind
		sc, err := r.Get("golf", cfg)
		if err != nil {
			t.Fatalf("build scenario %d: %v", i, err)
		}
		scenarios[i] = sc
	}

	e := sim.NewEnsemble(len(winds), func(run int) *sim.Simulator {
		return scenarios[run].Simulator(integrators.NewRK4())
	})

	results, err := e.Run(context.Background(), scenarios[0].Cfg)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	carries := make([]float64, len(results))
	for i, res := range results {
		if !res.Stopped {
			t.Fatalf("run %d never landed", i)
		}
		carries[i] = res.Metrics["downrange"]
	}

	// Headwind shortens the carry, tailwind extends it.
	if !(carries[0] < carries[1] && carries[1] < carries[2]) {
		t.Errorf("carries not ordered with wind: %v", carries)
	}
}
