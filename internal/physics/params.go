package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/spinflight/internal/dynamo"
)

const (
	DefaultMass    = 0.43
	DefaultGravity = 9.81
)

type SpinType int

const (
	SpinNone SpinType = iota
	SpinTop
	SpinSide
)

func (s SpinType) String() string {
	switch s {
	case SpinTop:
		return "top"
	case SpinSide:
		return "side"
	case SpinNone:
		return "none"
	default:
		return fmt.Sprintf("SpinType(%d)", int(s))
	}
}

// ParseSpinType accepts the names produced by String.
func ParseSpinType(name string) (SpinType, error) {
	switch name {
	case "none", "":
		return SpinNone, nil
	case "top":
		return SpinTop, nil
	case "side":
		return SpinSide, nil
	}
	return SpinNone, fmt.Errorf("unknown spin type: %s", name)
}

// Axis is the unit spin axis: lateral for top spin, vertical for side spin.
func (s SpinType) Axis() dynamo.Vec3 {
	switch s {
	case SpinTop:
		return dynamo.UnitZ
	case SpinSide:
		return dynamo.UnitY
	default:
		return dynamo.Zero
	}
}

// Params is the validated configuration of one run. Angles are in radians,
// SpinRate in rad/s, DragK and MagnusK already include 0.5·π·r²·ρ.
type Params struct {
	InitialSpeed float64
	Elevation    float64
	Azimuth      float64
	DragK        float64
	MagnusK      float64
	SpinRate     float64
	Spin         SpinType
	Mass         float64
	Gravity      float64
	Dt           float64
	Duration     float64
}

func (p Params) SpinAxis() dynamo.Vec3 { return p.Spin.Axis() }

func (p Params) IsTopSpin() bool { return p.Spin == SpinTop }

// MaxSteps is the step budget of a run: ceil(Duration/Dt).
func (p Params) MaxSteps() int {
	return int(math.Ceil(p.Duration/p.Dt - 1e-9))
}

// LaunchVelocity resolves speed, elevation and azimuth into a velocity vector.
func (p Params) LaunchVelocity() dynamo.Vec3 {
	cosEl := math.Cos(p.Elevation)
	return dynamo.Vec3{
		X: p.InitialSpeed * cosEl * math.Cos(p.Azimuth),
		Y: p.InitialSpeed * math.Sin(p.Elevation),
		Z: p.InitialSpeed * cosEl * math.Sin(p.Azimuth),
	}
}

// LaunchState is the t=0 state at the origin.
func (p Params) LaunchState() dynamo.KinematicState {
	return dynamo.KinematicState{Velocity: p.LaunchVelocity()}
}

// Validate checks the invariants every run relies on.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"initial_speed", p.InitialSpeed},
		{"elevation", p.Elevation},
		{"azimuth", p.Azimuth},
		{"drag_k", p.DragK},
		{"magnus_k", p.MagnusK},
		{"spin_rate", p.SpinRate},
		{"mass", p.Mass},
		{"gravity", p.Gravity},
		{"time_step", p.Dt},
		{"duration", p.Duration},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &dynamo.ConstructionError{Field: f.name, Err: dynamo.ErrNonFinite}
		}
	}

	if p.DragK < 0 {
		return &dynamo.ConstructionError{Field: "drag_k", Err: dynamo.ErrNegativeCoefficient}
	}
	if p.MagnusK < 0 {
		return &dynamo.ConstructionError{Field: "magnus_k", Err: dynamo.ErrNegativeCoefficient}
	}
	if p.Mass <= 0 {
		return &dynamo.ConstructionError{Field: "mass", Err: dynamo.ErrNotPositive}
	}
	if p.Dt <= 0 {
		return &dynamo.ConstructionError{Field: "time_step", Err: dynamo.ErrStepNotPositive}
	}
	if p.Duration <= p.Dt {
		return &dynamo.ConstructionError{
			Field:  "duration",
			Reason: fmt.Sprintf("%g <= %g", p.Duration, p.Dt),
			Err:    dynamo.ErrDurationTooShort,
		}
	}
	switch p.Spin {
	case SpinNone, SpinTop, SpinSide:
	default:
		return &dynamo.ConstructionError{Field: "spin", Reason: p.Spin.String(), Err: dynamo.ErrConflictingSpin}
	}
	return nil
}
