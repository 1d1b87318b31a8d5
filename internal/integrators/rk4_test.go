package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/spinflight/internal/dynamo"
)

// uniformField is constant gravity with no air.
type uniformField struct {
	g    float64
	mass float64
}

func (u uniformField) Forces(s dynamo.KinematicState) dynamo.ForceSet {
	return dynamo.ForceSet{Gravity: dynamo.V(0, -u.mass*u.g, 0)}
}
func (u uniformField) Mass() float64 { return u.mass }

// linearDrag decays velocity as exp(-c·t/m).
type linearDrag struct {
	c    float64
	mass float64
}

func (l linearDrag) Forces(s dynamo.KinematicState) dynamo.ForceSet {
	return dynamo.ForceSet{Drag: s.Velocity.Scale(-l.c)}
}
func (l linearDrag) Mass() float64 { return l.mass }

func TestRK4ExactForUniformGravity(t *testing.T) {
	f := uniformField{g: 9.81, mass: 0.43}
	integ := NewRK4()

	s := dynamo.KinematicState{Velocity: dynamo.V(10, 10, 0)}
	dt := 0.05
	steps := 20
	for i := 0; i < steps; i++ {
		s = integ.Step(f, s, dt)
	}

	tEnd := float64(steps) * dt
	expectedY := 10*tEnd - 0.5*9.81*tEnd*tEnd
	if math.Abs(s.Position.Y-expectedY) > 1e-9 {
		t.Errorf("height error too large: got %.9f, expected %.9f", s.Position.Y, expectedY)
	}
	if math.Abs(s.Position.X-10*tEnd) > 1e-9 {
		t.Errorf("range error too large: got %.9f, expected %.9f", s.Position.X, 10*tEnd)
	}
	if math.Abs(s.Time-tEnd) > 1e-12 {
		t.Errorf("expected time %.3f, got %.3f", tEnd, s.Time)
	}
}

func TestRK4Accuracy(t *testing.T) {
	f := linearDrag{c: 0.5, mass: 1}
	integ := NewRK4()

	s := dynamo.KinematicState{Velocity: dynamo.V(1, 0, 0)}
	dt := 0.01
	steps := 100
	for i := 0; i < steps; i++ {
		s = integ.Step(f, s, dt)
	}

	tEnd := float64(steps) * dt
	expectedV := math.Exp(-0.5 * tEnd)
	expectedX := (1 - math.Exp(-0.5*tEnd)) / 0.5

	if math.Abs(s.Velocity.X-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.9f, expected %.9f", s.Velocity.X, expectedV)
	}
	if math.Abs(s.Position.X-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.9f, expected %.9f", s.Position.X, expectedX)
	}
}
