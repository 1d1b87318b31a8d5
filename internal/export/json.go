package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/spinflight/internal/dynamo"
)

type Document struct {
	ID         string             `json:"id,omitempty"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
	Series     *Series            `json:"series"`
}

func NewDocument(id, integrator string, dt, duration float64, traj *dynamo.Trajectory, metrics map[string]float64) *Document {
	return &Document{
		ID:         id,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Steps:      traj.Len() - 1,
		Metrics:    metrics,
		Series:     NewSeries(traj),
	}
}

func WriteJSON(w io.Writer, doc *Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
