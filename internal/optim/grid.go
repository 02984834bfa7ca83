// Package optim searches launch-parameter grids for the setting that
// maximizes a run metric, e.g. loft angle and spin rate against carry
// distance.
package optim

import (
	"context"
	"math"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/sim"
)

// Grid is an exhaustive search over the cross product of named parameter
// ranges.
type Grid struct {
	paramNames []string
	values     [][]float64
}

func NewGrid(params []string, values [][]float64) *Grid {
	return &Grid{paramNames: params, values: values}
}

// Maximize runs every grid point through build and returns the parameter
// assignment with the largest value of the named metric. Points whose
// build or run fails are skipped; if every point fails the returned params
// are nil and the value is -Inf.
func (g *Grid) Maximize(
	ctx context.Context,
	build func(params map[string]float64) (*sim.Simulator, sim.Config, error),
	metricName string,
) (map[string]float64, float64, error) {
	best := math.Inf(-1)
	var bestParams map[string]float64

	g.walk(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return bestParams, best, err
	}
	return bestParams, best, nil
}

func (g *Grid) walk(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build func(map[string]float64) (*sim.Simulator, sim.Config, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		s, cfg, err := build(current)
		if err != nil {
			return
		}

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return
		}

		if val := result.Metrics[metricName]; val > *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.values[depth] {
		current[name] = val
		g.walk(ctx, depth+1, current, build, metricName, best, bestParams)
	}
	delete(current, name)
}

// Span returns n evenly spaced values from lo to hi inclusive.
func Span(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
