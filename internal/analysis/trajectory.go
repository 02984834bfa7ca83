// Package analysis post-processes recorded trajectories: impact and apex
// extraction, closed-form comparisons, and phase-portrait series.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// Impact is the interpolated ground crossing of a trajectory.
type Impact struct {
	Time       float64
	Downrange  float64
	Crossrange float64
}

// ImpactPoint finds the first downward crossing of z = 0 after launch and
// interpolates time and horizontal position linearly across the bracketing
// samples. ok is false when the trajectory never comes back down.
func ImpactPoint(times []float64, states []ode.State, xIdx, yIdx, zIdx int) (Impact, bool) {
	for i := 1; i < len(states); i++ {
		z0 := states[i-1][zIdx]
		z1 := states[i][zIdx]
		if z0 <= 0 || z1 > 0 {
			continue
		}

		frac := z0 / (z0 - z1)
		lerp := func(idx int) float64 {
			a := states[i-1][idx]
			b := states[i][idx]
			return a + frac*(b-a)
		}
		return Impact{
			Time:       times[i-1] + frac*(times[i]-times[i-1]),
			Downrange:  lerp(xIdx),
			Crossrange: lerp(yIdx),
		}, true
	}
	return Impact{}, false
}

// ApexIndex returns the sample index and value of the highest altitude.
func ApexIndex(states []ode.State, zIdx int) (int, float64) {
	alts := Series(states, zIdx)
	if len(alts) == 0 {
		return -1, 0
	}
	i := floats.MaxIdx(alts)
	return i, alts[i]
}

// VacuumRange is the drag-free range of a projectile launched at speed v
// and elevation loft over flat ground, v^2 sin(2 loft)/g.
func VacuumRange(speed, loft, g float64) float64 {
	return speed * speed * math.Sin(2*loft) / g
}

// RangeDeficit reports how far short of the vacuum range a simulated carry
// fell, as a fraction of the vacuum range.
func RangeDeficit(simulated, speed, loft, g float64) float64 {
	vac := VacuumRange(speed, loft, g)
	return (vac - simulated) / vac
}

// Series extracts one state slot across all samples.
func Series(states []ode.State, idx int) []float64 {
	out := make([]float64, len(states))
	for i, q := range states {
		out[i] = q[idx]
	}
	return out
}
