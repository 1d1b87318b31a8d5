package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/spinflight/internal/physics"
)

const (
	DefaultIntegrator = "euler"
	DefaultDt         = 0.01
	DefaultDuration   = 10.0
	DefaultRadius     = 0.11
	DefaultAirDensity = 1.225
)

// Config is a run file: which stepper to use and the raw launch inputs.
type Config struct {
	Name       string `yaml:"name,omitempty"`
	Integrator string `yaml:"integrator"`
	Inputs     Inputs `yaml:"inputs"`
}

// Inputs are the user-facing launch parameters in display units.
type Inputs struct {
	InitialVelocity float64 `yaml:"initial_velocity" json:"initial_velocity"`
	Radius          float64 `yaml:"radius" json:"radius"`
	ElevationAngle  float64 `yaml:"elevation_angle" json:"elevation_angle"`
	AzimuthAngle    float64 `yaml:"azimuth_angle" json:"azimuth_angle"`
	DragCoefficient float64 `yaml:"drag_coefficient" json:"drag_coefficient"`
	LiftCoefficient float64 `yaml:"lift_coefficient" json:"lift_coefficient"`
	AirDensity      float64 `yaml:"air_density" json:"air_density"`
	SpinRate        float64 `yaml:"spin_rate" json:"spin_rate"`
	TopSpin         bool    `yaml:"top_spin" json:"top_spin"`
	SideSpin        bool    `yaml:"side_spin" json:"side_spin"`
	NoSpin          bool    `yaml:"no_spin" json:"no_spin"`
	TimeStep        float64 `yaml:"time_step" json:"time_step"`
	Duration        float64 `yaml:"duration" json:"duration"`
	Mass            float64 `yaml:"mass,omitempty" json:"mass,omitempty"`
	Gravity         float64 `yaml:"gravity,omitempty" json:"gravity,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Inputs: Inputs{
			InitialVelocity: 20,
			Radius:          DefaultRadius,
			ElevationAngle:  45,
			AirDensity:      DefaultAirDensity,
			NoSpin:          true,
			TimeStep:        DefaultDt,
			Duration:        DefaultDuration,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// A file that picks any spin type replaces the default selection instead
	// of adding to it.
	var spin struct {
		Inputs struct {
			TopSpin  *bool `yaml:"top_spin"`
			SideSpin *bool `yaml:"side_spin"`
			NoSpin   *bool `yaml:"no_spin"`
		} `yaml:"inputs"`
	}
	if err := yaml.Unmarshal(data, &spin); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if in := spin.Inputs; in.TopSpin != nil || in.SideSpin != nil || in.NoSpin != nil {
		cfg.Inputs.TopSpin, cfg.Inputs.SideSpin, cfg.Inputs.NoSpin = false, false, false
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Raw converts the inputs for physics.Build.
func (in Inputs) Raw() physics.RawInputs {
	return physics.RawInputs{
		InitialVelocity: in.InitialVelocity,
		Radius:          in.Radius,
		ElevationDeg:    in.ElevationAngle,
		AzimuthDeg:      in.AzimuthAngle,
		DragCoefficient: in.DragCoefficient,
		LiftCoefficient: in.LiftCoefficient,
		AirDensity:      in.AirDensity,
		SpinRateRPM:     in.SpinRate,
		TopSpin:         in.TopSpin,
		SideSpin:        in.SideSpin,
		NoSpin:          in.NoSpin,
		TimeStep:        in.TimeStep,
		Duration:        in.Duration,
		Mass:            in.Mass,
		Gravity:         in.Gravity,
	}
}

// Params validates the inputs against Limits and builds simulation parameters.
func (in Inputs) Params() (physics.Params, error) {
	if err := Validate(in); err != nil {
		return physics.Params{}, err
	}
	return physics.Build(in.Raw())
}

// SetSpin selects exactly one spin type by name.
func (in *Inputs) SetSpin(name string) error {
	spin, err := physics.ParseSpinType(name)
	if err != nil {
		return err
	}
	in.TopSpin = spin == physics.SpinTop
	in.SideSpin = spin == physics.SpinSide
	in.NoSpin = spin == physics.SpinNone
	return nil
}

func (in *Inputs) fields() map[string]*float64 {
	return map[string]*float64{
		"initial_velocity": &in.InitialVelocity,
		"radius":           &in.Radius,
		"elevation_angle":  &in.ElevationAngle,
		"azimuth_angle":    &in.AzimuthAngle,
		"drag_coefficient": &in.DragCoefficient,
		"lift_coefficient": &in.LiftCoefficient,
		"air_density":      &in.AirDensity,
		"spin_rate":        &in.SpinRate,
		"time_step":        &in.TimeStep,
		"duration":         &in.Duration,
		"mass":             &in.Mass,
		"gravity":          &in.Gravity,
	}
}

// Get returns a numeric input by key.
func (in Inputs) Get(key string) (float64, error) {
	f, ok := in.fields()[key]
	if !ok {
		return 0, fmt.Errorf("unknown input: %s", key)
	}
	return *f, nil
}

// Set assigns a numeric input by key.
func (in *Inputs) Set(key string, value float64) error {
	f, ok := in.fields()[key]
	if !ok {
		return fmt.Errorf("unknown input: %s", key)
	}
	*f = value
	return nil
}
