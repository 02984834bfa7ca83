package telemetry

import (
	"math"
	"testing"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/atmos"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/models"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

func sampleRocket() *models.Rocket {
	r := models.NewRocket()
	r.Launch(540000, 280, math.Pi/2, 0, 0)
	return r
}

func TestPublisherSetsGauges(t *testing.T) {
	r := sampleRocket()
	p := NewPublisher(r, atmos.NewUS76(), log.NewNopLogger(), 100)

	p.OnStep(0, ode.State{0, 0, 0, 0, 100, 0, 280, 540000, 0, math.Pi / 2})

	if got := testutil.ToFloat64(massGauge); got != 540000 {
		t.Fatalf("mass gauge = %v, want 540000", got)
	}
	if got := testutil.ToFloat64(velocityGauge); got != 100 {
		t.Fatalf("velocity gauge = %v, want 100", got)
	}
	if got := testutil.ToFloat64(speedGauge); got != 100 {
		t.Fatalf("speed gauge = %v, want 100", got)
	}
	slThrust := r.Thrust(atmos.SeaLevelPressure)
	if got := testutil.ToFloat64(thrustGauge); got != slThrust {
		t.Fatalf("thrust gauge = %v, want %v", got, slThrust)
	}
	perEngine := slThrust / float64(r.NumEngines)
	if got := testutil.ToFloat64(engineThrustGauge.WithLabelValues("1")); got != perEngine {
		t.Fatalf("engine 1 gauge = %v, want %v", got, perEngine)
	}
}

func TestPublisherZeroesEnginesAfterCutoff(t *testing.T) {
	r := sampleRocket()
	p := NewPublisher(r, atmos.NewUS76(), log.NewNopLogger(), 100)
	p.OnStep(0, r.Q())

	r.NumEngines = 0
	p.OnStep(1, r.Q())

	if got := testutil.ToFloat64(thrustGauge); got != 0 {
		t.Fatalf("thrust gauge after cutoff = %v, want 0", got)
	}
	for _, id := range []string{"1", "5", "9"} {
		if got := testutil.ToFloat64(engineThrustGauge.WithLabelValues(id)); got != 0 {
			t.Fatalf("engine %s gauge after cutoff = %v, want 0", id, got)
		}
	}
}
