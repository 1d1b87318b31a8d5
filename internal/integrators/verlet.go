package integrators

import "github.com/san-kum/spinflight/internal/dynamo"

// Verlet is velocity Verlet. Drag and Magnus depend on velocity, so the end
// acceleration is evaluated at a predicted velocity.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(f dynamo.ForceField, s dynamo.KinematicState, dt float64) dynamo.KinematicState {
	a0 := dynamo.Acceleration(f, s)
	pos := s.Position.Add(s.Velocity.Scale(dt)).Add(a0.Scale(0.5 * dt * dt))

	predicted := dynamo.KinematicState{
		Position: pos,
		Velocity: s.Velocity.Add(a0.Scale(dt)),
		Time:     s.Time + dt,
	}
	a1 := dynamo.Acceleration(f, predicted)

	return dynamo.KinematicState{
		Position: pos,
		Velocity: s.Velocity.Add(a0.Add(a1).Scale(0.5 * dt)),
		Time:     s.Time + dt,
	}
}
