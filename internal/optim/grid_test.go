package optim

import (
	"context"
	"math"
	"testing"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/config"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/integrators"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/scenario"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/sim"
)

func TestSpan(t *testing.T) {
	got := Span(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("span[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMaximizeLoftForCarry(t *testing.T) {
	// Sweep loft for a drag-free shot; 45 degrees must win.
	registry := scenario.NewRegistry()
	grid := NewGrid([]string{"loft_deg"}, [][]float64{{15, 30, 45, 60, 75}})

	build := func(params map[string]float64) (*sim.Simulator, sim.Config, error) {
		cfg := config.DefaultConfig()
		cfg.Projectile.Density = 0 // vacuum: closed-form optimum is 45
		cfg.Projectile.LoftDeg = params["loft_deg"]
		sc, err := registry.Get("golf", cfg)
		if err != nil {
			return nil, sim.Config{}, err
		}
		return sc.Simulator(integrators.NewRK4()), sc.Cfg, nil
	}

	best, carry, err := grid.Maximize(context.Background(), build, "downrange")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if best["loft_deg"] != 45 {
		t.Errorf("optimal loft: got %v, want 45", best["loft_deg"])
	}
	if carry <= 0 {
		t.Errorf("carry should be positive, got %v", carry)
	}
}

func TestMaximizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	grid := NewGrid([]string{"a"}, [][]float64{{1, 2, 3}})
	_, _, err := grid.Maximize(ctx, func(map[string]float64) (*sim.Simulator, sim.Config, error) {
		t.Error("build must not run after cancellation")
		return nil, sim.Config{}, nil
	}, "x")
	if err == nil {
		t.Error("expected context error")
	}
}
