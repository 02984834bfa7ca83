package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/analysis"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// SeriesPlot renders one state slot over time as an ascii line graph.
func SeriesPlot(states []ode.State, idx int, caption string) string {
	data := analysis.Series(states, idx)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// TrajectoryPlot renders a side view (downrange against altitude) on a
// braille canvas.
func TrajectoryPlot(states []ode.State, xIdx, zIdx int, width, height int) string {
	p := analysis.NewPhasePortrait(states, xIdx, zIdx)
	xMin, xMax, yMin, yMax := p.Bounds()

	c := NewCanvas(width, height)
	c.Plot(p.X, p.Y, xMin, xMax, yMin, yMax)

	var b strings.Builder
	b.WriteString(c.String())
	fmt.Fprintf(&b, "x: [%.1f, %.1f]  y: [%.1f, %.1f]\n", xMin, xMax, yMin, yMax)
	return b.String()
}

// PhasePlot renders a phase portrait (two state slots against each other)
// on a braille canvas.
func PhasePlot(states []ode.State, xIdx, yIdx int, width, height int) string {
	return TrajectoryPlot(states, xIdx, yIdx, width, height)
}

// MetricsTable lists run metrics in stable order, styled for the console.
func MetricsTable(metrics map[string]float64) string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-14s", name)),
			valueStyle.Render(fmt.Sprintf("%.4f", metrics[name])))
	}
	return b.String()
}

// Summary renders a styled one-block recap of a finished run.
func Summary(scenario, integrator string, dt float64, steps int, stopped bool, metrics map[string]float64) string {
	status := "duration reached"
	if stopped {
		status = "stop condition"
	}

	body := fmt.Sprintf("%s\n%s %s   %s %.4g   %s %d   %s %s\n\n%s",
		titleStyle.Render(scenario),
		labelStyle.Render("integrator"), integrator,
		labelStyle.Render("dt"), dt,
		labelStyle.Render("steps"), steps,
		labelStyle.Render("ended by"), status,
		MetricsTable(metrics),
	)
	return panelStyle.Render(body)
}
