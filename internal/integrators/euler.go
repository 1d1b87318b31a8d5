package integrators

import "github.com/san-kum/spinflight/internal/dynamo"

// SemiImplicitEuler updates the velocity first and moves the position with
// the new velocity. This ordering is the reference scheme of the engine.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(f dynamo.ForceField, s dynamo.KinematicState, dt float64) dynamo.KinematicState {
	a := dynamo.Acceleration(f, s)
	v := s.Velocity.Add(a.Scale(dt))
	return dynamo.KinematicState{
		Position: s.Position.Add(v.Scale(dt)),
		Velocity: v,
		Time:     s.Time + dt,
	}
}

// Euler is the explicit forward scheme, kept for comparison runs.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.ForceField, s dynamo.KinematicState, dt float64) dynamo.KinematicState {
	a := dynamo.Acceleration(f, s)
	return dynamo.KinematicState{
		Position: s.Position.Add(s.Velocity.Scale(dt)),
		Velocity: s.Velocity.Add(a.Scale(dt)),
		Time:     s.Time + dt,
	}
}
