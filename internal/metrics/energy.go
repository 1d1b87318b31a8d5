package metrics

import (
	"math"

	"github.com/san-kum/spinflight/internal/dynamo"
)

// EnergyLoss is the fraction of the launch mechanical energy removed by the
// end of the run. Zero for a drag-free flight up to integration error.
type EnergyLoss struct {
	mass    float64
	gravity float64
	initial float64
	current float64
	samples int
}

func NewEnergyLoss(mass, gravity float64) *EnergyLoss {
	return &EnergyLoss{mass: mass, gravity: gravity}
}

func (e *EnergyLoss) Name() string { return "energy_loss" }

func (e *EnergyLoss) Observe(s dynamo.Sample) {
	energy := e.energy(s)
	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++
}

func (e *EnergyLoss) energy(s dynamo.Sample) float64 {
	v := s.Velocity
	return 0.5*e.mass*v.Dot(v) + e.mass*e.gravity*s.Position.Y
}

func (e *EnergyLoss) Value() float64 {
	if e.samples == 0 || e.initial == 0 {
		return 0
	}
	return (e.initial - e.current) / math.Abs(e.initial)
}

func (e *EnergyLoss) Reset() {
	e.initial = 0
	e.current = 0
	e.samples = 0
}
