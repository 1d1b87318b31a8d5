package config

import "sort"

var Presets = map[string]*Config{
	"vacuum": {
		Name: "vacuum", Integrator: "euler",
		Inputs: Inputs{
			InitialVelocity: 20, Radius: 0.11, ElevationAngle: 45,
			NoSpin: true, TimeStep: 0.01, Duration: 10,
		},
	},
	"free_kick": {
		Name: "free_kick", Integrator: "euler",
		Inputs: Inputs{
			InitialVelocity: 25, Radius: 0.11, ElevationAngle: 18, AzimuthAngle: -4,
			DragCoefficient: 0.25, LiftCoefficient: 0.05, AirDensity: 1.225,
			SpinRate: 300, SideSpin: true, TimeStep: 0.005, Duration: 5,
		},
	},
	"lofted": {
		Name: "lofted", Integrator: "euler",
		Inputs: Inputs{
			InitialVelocity: 30, Radius: 0.11, ElevationAngle: 30,
			DragCoefficient: 0.25, LiftCoefficient: 0.03, AirDensity: 1.225,
			SpinRate: 400, TopSpin: true, TimeStep: 0.005, Duration: 10,
		},
	},
	"knuckleball": {
		Name: "knuckleball", Integrator: "euler",
		Inputs: Inputs{
			InitialVelocity: 28, Radius: 0.11, ElevationAngle: 15,
			DragCoefficient: 0.5, AirDensity: 1.225,
			NoSpin: true, TimeStep: 0.005, Duration: 5,
		},
	},
	"high_altitude": {
		Name: "high_altitude", Integrator: "euler",
		Inputs: Inputs{
			InitialVelocity: 25, Radius: 0.11, ElevationAngle: 35,
			DragCoefficient: 0.25, LiftCoefficient: 0.05, AirDensity: 0.9,
			SpinRate: 300, SideSpin: true, TimeStep: 0.005, Duration: 8,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
