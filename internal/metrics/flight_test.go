package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/physics"
	"github.com/san-kum/spinflight/internal/sim"
)

func sample(t float64, pos, vel dynamo.Vec3) dynamo.Sample {
	return dynamo.Sample{Time: t, Position: pos, Velocity: vel}
}

func TestFlightMetrics(t *testing.T) {
	samples := []dynamo.Sample{
		sample(0, dynamo.Zero, dynamo.V(10, 10, 0)),
		sample(1, dynamo.V(10, 5, 1), dynamo.V(10, 0, 1)),
		sample(2, dynamo.V(20, -0.1, 3), dynamo.V(6, -8, 0)),
	}

	tests := []struct {
		metric   sim.Metric
		expected float64
	}{
		{NewRange(), math.Hypot(20, 3)},
		{NewMaxHeight(), 5},
		{NewFlightTime(), 2},
		{NewLateralDrift(), 3},
		{NewImpactSpeed(), 10},
	}

	for _, tt := range tests {
		t.Run(tt.metric.Name(), func(t *testing.T) {
			for _, s := range samples {
				tt.metric.Observe(s)
			}
			if got := tt.metric.Value(); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
			tt.metric.Reset()
			if got := tt.metric.Value(); got != 0 {
				t.Errorf("expected 0 after reset, got %v", got)
			}
		})
	}
}

func TestMaxHeightBelowGround(t *testing.T) {
	m := NewMaxHeight()
	m.Observe(sample(0, dynamo.V(0, -2, 0), dynamo.Zero))
	m.Observe(sample(1, dynamo.V(0, -1, 0), dynamo.Zero))
	if got := m.Value(); got != -1 {
		t.Errorf("expected -1, got %v", got)
	}
}

func TestEnergyLoss(t *testing.T) {
	m := NewEnergyLoss(1, 10)
	m.Observe(sample(0, dynamo.Zero, dynamo.V(0, 10, 0)))
	m.Observe(sample(1, dynamo.V(0, 2, 0), dynamo.V(0, 6, 0)))

	// E0 = 50, E1 = 18 + 20 = 38
	if got := m.Value(); math.Abs(got-0.24) > 1e-12 {
		t.Errorf("expected 0.24, got %v", got)
	}
}

func TestEnergyLossVacuum(t *testing.T) {
	p := physics.Params{
		InitialSpeed: 20,
		Elevation:    math.Pi / 4,
		Mass:         physics.DefaultMass,
		Gravity:      physics.DefaultGravity,
		Dt:           0.001,
		Duration:     10,
	}
	drag := p
	drag.DragK = 0.005

	vacuum := runMetrics(t, p)
	withDrag := runMetrics(t, drag)

	if math.Abs(vacuum["energy_loss"]) > 0.01 {
		t.Errorf("expected near-zero energy loss in vacuum, got %v", vacuum["energy_loss"])
	}
	if withDrag["energy_loss"] <= vacuum["energy_loss"] {
		t.Errorf("expected drag to remove energy: %v <= %v", withDrag["energy_loss"], vacuum["energy_loss"])
	}
	if withDrag["range"] >= vacuum["range"] {
		t.Errorf("expected drag to shorten range: %v >= %v", withDrag["range"], vacuum["range"])
	}
}

func runMetrics(t *testing.T, p physics.Params) map[string]float64 {
	t.Helper()
	s := sim.New(nil)
	for _, m := range Defaults(p) {
		s.AddMetric(m)
	}
	res, err := s.Run(p.LaunchState(), p)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return res.Metrics
}

func TestNames(t *testing.T) {
	expected := []string{"range", "max_height", "flight_time", "lateral_drift", "impact_speed", "energy_loss"}
	names := Names()
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %d", len(expected), len(names))
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("name %d: expected %s, got %s", i, expected[i], names[i])
		}
	}
}
