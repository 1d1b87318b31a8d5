package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/spinflight/internal/dynamo"
)

// RawInputs are user inputs in display units (degrees, rpm). Range checks
// happen before Build; Build only enforces cross-field invariants.
type RawInputs struct {
	InitialVelocity float64
	Radius          float64
	ElevationDeg    float64
	AzimuthDeg      float64
	DragCoefficient float64
	LiftCoefficient float64
	AirDensity      float64
	SpinRateRPM     float64
	TopSpin         bool
	SideSpin        bool
	NoSpin          bool
	TimeStep        float64
	Duration        float64

	// Mass and Gravity fall back to DefaultMass and DefaultGravity when zero.
	Mass    float64
	Gravity float64
}

// ResolveSpin maps the exclusive spin flags to a SpinType.
func (r RawInputs) ResolveSpin() (SpinType, error) {
	selected := 0
	spin := SpinNone
	if r.TopSpin {
		selected++
		spin = SpinTop
	}
	if r.SideSpin {
		selected++
		spin = SpinSide
	}
	if r.NoSpin {
		selected++
		spin = SpinNone
	}

	switch {
	case selected > 1:
		return SpinNone, &dynamo.ConstructionError{
			Field:  "spin",
			Reason: fmt.Sprintf("%d spin types selected", selected),
			Err:    dynamo.ErrConflictingSpin,
		}
	case selected == 0 && r.SpinRateRPM != 0:
		return SpinNone, &dynamo.ConstructionError{
			Field:  "spin",
			Reason: fmt.Sprintf("spin rate %g rpm", r.SpinRateRPM),
			Err:    dynamo.ErrAmbiguousSpin,
		}
	}
	return spin, nil
}

// AeroFactor is 0.5·π·r²·ρ, shared by the drag and Magnus constants.
func AeroFactor(radius, density float64) float64 {
	return 0.5 * math.Pi * radius * radius * density
}

func RPMToRadPerSec(rpm float64) float64 {
	return rpm * 2 * math.Pi / 60
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Build converts raw inputs into Params or reports the invariant that failed.
func Build(r RawInputs) (Params, error) {
	if r.Radius <= 0 {
		return Params{}, &dynamo.ConstructionError{Field: "radius", Err: dynamo.ErrNotPositive}
	}
	if r.AirDensity < 0 {
		return Params{}, &dynamo.ConstructionError{Field: "air_density", Err: dynamo.ErrNegativeCoefficient}
	}
	if r.DragCoefficient < 0 {
		return Params{}, &dynamo.ConstructionError{Field: "drag_coefficient", Err: dynamo.ErrNegativeCoefficient}
	}
	if r.LiftCoefficient < 0 {
		return Params{}, &dynamo.ConstructionError{Field: "lift_coefficient", Err: dynamo.ErrNegativeCoefficient}
	}

	spin, err := r.ResolveSpin()
	if err != nil {
		return Params{}, err
	}

	mass := r.Mass
	if mass == 0 {
		mass = DefaultMass
	}
	gravity := r.Gravity
	if gravity == 0 {
		gravity = DefaultGravity
	}

	aero := AeroFactor(r.Radius, r.AirDensity)
	p := Params{
		InitialSpeed: r.InitialVelocity,
		Elevation:    Radians(r.ElevationDeg),
		Azimuth:      Radians(r.AzimuthDeg),
		DragK:        aero * r.DragCoefficient,
		MagnusK:      aero * r.LiftCoefficient,
		SpinRate:     RPMToRadPerSec(r.SpinRateRPM),
		Spin:         spin,
		Mass:         mass,
		Gravity:      gravity,
		Dt:           r.TimeStep,
		Duration:     r.Duration,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
