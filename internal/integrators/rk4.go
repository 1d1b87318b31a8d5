package integrators

import "github.com/san-kum/spinflight/internal/dynamo"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

type slope struct {
	dp, dv dynamo.Vec3
}

func (r *RK4) slopeAt(f dynamo.ForceField, s dynamo.KinematicState) slope {
	return slope{dp: s.Velocity, dv: dynamo.Acceleration(f, s)}
}

func advance(s dynamo.KinematicState, k slope, h float64) dynamo.KinematicState {
	return dynamo.KinematicState{
		Position: s.Position.Add(k.dp.Scale(h)),
		Velocity: s.Velocity.Add(k.dv.Scale(h)),
		Time:     s.Time + h,
	}
}

func (r *RK4) Step(f dynamo.ForceField, s dynamo.KinematicState, dt float64) dynamo.KinematicState {
	k1 := r.slopeAt(f, s)
	k2 := r.slopeAt(f, advance(s, k1, dt*0.5))
	k3 := r.slopeAt(f, advance(s, k2, dt*0.5))
	k4 := r.slopeAt(f, advance(s, k3, dt))

	dt6 := dt / 6.0
	dp := k1.dp.Add(k2.dp.Scale(2)).Add(k3.dp.Scale(2)).Add(k4.dp)
	dv := k1.dv.Add(k2.dv.Scale(2)).Add(k3.dv.Scale(2)).Add(k4.dv)

	return dynamo.KinematicState{
		Position: s.Position.Add(dp.Scale(dt6)),
		Velocity: s.Velocity.Add(dv.Scale(dt6)),
		Time:     s.Time + dt,
	}
}
