package config

import (
	"fmt"
	"math"
)

type Limit struct {
	Key       string
	Parameter string
	Min       float64
	Max       float64
	Unit      string
}

// Limits are the accepted ranges of every user input, in display order.
var Limits = []Limit{
	{"initial_velocity", "Initial Velocity", 0, 200, "m/s"},
	{"radius", "Radius", 0.01, 0.15, "m"},
	{"elevation_angle", "Elevation Angle", 0, 90, "°"},
	{"azimuth_angle", "Azimuth Angle", -90, 90, "°"},
	{"drag_coefficient", "Drag Coefficient", 0, 2, ""},
	{"lift_coefficient", "Lift Coefficient", 0, 2, ""},
	{"air_density", "Air Density", 0, 2, "kg/m³"},
	{"spin_rate", "Spin Rate", -5000, 5000, "rpm"},
	{"time_step", "Time Step", 0.001, 1, "s"},
	{"duration", "Duration", 5, 30, "s"},
}

func LimitFor(key string) (Limit, bool) {
	for _, l := range Limits {
		if l.Key == key {
			return l, true
		}
	}
	return Limit{}, false
}

func (l Limit) Contains(v float64) bool {
	return l.Min <= v && v <= l.Max
}

// RangeError reports an input outside its documented range.
type RangeError struct {
	Parameter string
	Value     float64
	Min       float64
	Max       float64
	Unit      string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s should be in range [%g to %g]%s", e.Parameter, e.Min, e.Max, e.Unit)
}

// Validate checks every limited input. NaN and infinities never pass.
func Validate(in Inputs) error {
	for _, l := range Limits {
		v, err := in.Get(l.Key)
		if err != nil {
			return err
		}
		if math.IsNaN(v) || !l.Contains(v) {
			return &RangeError{Parameter: l.Parameter, Value: v, Min: l.Min, Max: l.Max, Unit: l.Unit}
		}
	}
	return nil
}
