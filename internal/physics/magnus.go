package physics

import "github.com/san-kum/spinflight/internal/dynamo"

// ForceModel computes gravity, quadratic drag and Magnus force for a
// spinning projectile. It holds no state beyond its parameters.
type ForceModel struct {
	dragK   float64
	magnus  float64
	axis    dynamo.Vec3
	mass    float64
	gravity dynamo.Vec3
}

func NewForceModel(p Params) *ForceModel {
	return &ForceModel{
		dragK:   p.DragK,
		magnus:  p.MagnusK * p.SpinRate,
		axis:    p.SpinAxis(),
		mass:    p.Mass,
		gravity: dynamo.Vec3{Y: -p.Mass * p.Gravity},
	}
}

func (m *ForceModel) Mass() float64 { return m.mass }

// Forces evaluates the force decomposition at s. Only the velocity matters:
// the field is uniform in space and time.
func (m *ForceModel) Forces(s dynamo.KinematicState) dynamo.ForceSet {
	v := s.Velocity
	return dynamo.ForceSet{
		Magnus:  m.axis.Cross(v).Scale(m.magnus),
		Drag:    v.Scale(-m.dragK * v.Norm()),
		Gravity: m.gravity,
	}
}

// Sample bundles s with the forces and acceleration evaluated at it.
func (m *ForceModel) Sample(s dynamo.KinematicState) dynamo.Sample {
	f := m.Forces(s)
	return dynamo.Sample{
		Time:         s.Time,
		Position:     s.Position,
		Velocity:     s.Velocity,
		Acceleration: f.Total().Scale(1 / m.mass),
		Forces:       f,
	}
}

// MechanicalEnergy is kinetic plus potential energy relative to launch height.
func (m *ForceModel) MechanicalEnergy(s dynamo.KinematicState) float64 {
	v := s.Velocity
	return 0.5*m.mass*v.Dot(v) - m.gravity.Y*s.Position.Y
}
