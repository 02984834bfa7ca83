package storage

import (
	"encoding/json"
	"io"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/sim"
)

// ExportData is the flat JSON shape of one run.
type ExportData struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a full run to w as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		ID:         meta.ID,
		Scenario:   meta.Scenario,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      len(result.Times),
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Metrics:    result.Metrics,
	}
	for i, q := range result.States {
		data.States[i] = q
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
