package metrics

import (
	"math"

	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/physics"
	"github.com/san-kum/spinflight/internal/sim"
)

// Range is the horizontal distance from the launch point to the last sample.
type Range struct {
	last dynamo.Vec3
}

func NewRange() *Range { return &Range{} }

func (r *Range) Name() string            { return "range" }
func (r *Range) Observe(s dynamo.Sample) { r.last = s.Position }
func (r *Range) Reset()                  { r.last = dynamo.Zero }

func (r *Range) Value() float64 {
	return math.Hypot(r.last.X, r.last.Z)
}

type MaxHeight struct {
	max  float64
	seen bool
}

func NewMaxHeight() *MaxHeight { return &MaxHeight{} }

func (m *MaxHeight) Name() string { return "max_height" }

func (m *MaxHeight) Observe(s dynamo.Sample) {
	if !m.seen || s.Position.Y > m.max {
		m.max = s.Position.Y
		m.seen = true
	}
}

func (m *MaxHeight) Value() float64 { return m.max }

func (m *MaxHeight) Reset() {
	m.max = 0
	m.seen = false
}

type FlightTime struct {
	last float64
}

func NewFlightTime() *FlightTime { return &FlightTime{} }

func (f *FlightTime) Name() string            { return "flight_time" }
func (f *FlightTime) Observe(s dynamo.Sample) { f.last = s.Time }
func (f *FlightTime) Value() float64          { return f.last }
func (f *FlightTime) Reset()                  { f.last = 0 }

// LateralDrift is the signed z displacement of the last sample.
type LateralDrift struct {
	z float64
}

func NewLateralDrift() *LateralDrift { return &LateralDrift{} }

func (l *LateralDrift) Name() string            { return "lateral_drift" }
func (l *LateralDrift) Observe(s dynamo.Sample) { l.z = s.Position.Z }
func (l *LateralDrift) Value() float64          { return l.z }
func (l *LateralDrift) Reset()                  { l.z = 0 }

type ImpactSpeed struct {
	speed float64
}

func NewImpactSpeed() *ImpactSpeed { return &ImpactSpeed{} }

func (i *ImpactSpeed) Name() string            { return "impact_speed" }
func (i *ImpactSpeed) Observe(s dynamo.Sample) { i.speed = s.Velocity.Norm() }
func (i *ImpactSpeed) Value() float64          { return i.speed }
func (i *ImpactSpeed) Reset()                  { i.speed = 0 }

// Defaults returns a fresh set of every flight metric for a run with p.
func Defaults(p physics.Params) []sim.Metric {
	return []sim.Metric{
		NewRange(),
		NewMaxHeight(),
		NewFlightTime(),
		NewLateralDrift(),
		NewImpactSpeed(),
		NewEnergyLoss(p.Mass, p.Gravity),
	}
}

// Names lists the metric names produced by Defaults, in order.
func Names() []string {
	ms := Defaults(physics.Params{Mass: physics.DefaultMass, Gravity: physics.DefaultGravity})
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}
