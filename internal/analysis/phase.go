package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// PhasePortrait is a 2D projection of a trajectory onto two state slots,
// e.g. position against velocity for the oscillator.
type PhasePortrait struct {
	XIndex, YIndex int
	X, Y           []float64
}

func NewPhasePortrait(states []ode.State, xIdx, yIdx int) *PhasePortrait {
	return &PhasePortrait{
		XIndex: xIdx,
		YIndex: yIdx,
		X:      Series(states, xIdx),
		Y:      Series(states, yIdx),
	}
}

// Bounds returns the data extents, padded by a tenth of each span so
// plotted orbits do not touch the frame. Degenerate spans widen to one.
func (p *PhasePortrait) Bounds() (xMin, xMax, yMin, yMax float64) {
	if len(p.X) == 0 {
		return 0, 1, 0, 1
	}
	xMin, xMax = floats.Min(p.X), floats.Max(p.X)
	yMin, yMax = floats.Min(p.Y), floats.Max(p.Y)

	dx := xMax - xMin
	dy := yMax - yMin
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	return xMin - 0.1*dx, xMax + 0.1*dx, yMin - 0.1*dy, yMax + 0.1*dy
}
