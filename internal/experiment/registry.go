package experiment

import (
	"fmt"

	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/integrators"
	"github.com/san-kum/spinflight/internal/metrics"
	"github.com/san-kum/spinflight/internal/physics"
	"github.com/san-kum/spinflight/internal/sim"
)

// Registry resolves steppers and metrics by name.
type Registry struct {
	metrics map[string]func(physics.Params) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(physics.Params) sim.Metric),
	}

	r.metrics["range"] = func(physics.Params) sim.Metric { return metrics.NewRange() }
	r.metrics["max_height"] = func(physics.Params) sim.Metric { return metrics.NewMaxHeight() }
	r.metrics["flight_time"] = func(physics.Params) sim.Metric { return metrics.NewFlightTime() }
	r.metrics["lateral_drift"] = func(physics.Params) sim.Metric { return metrics.NewLateralDrift() }
	r.metrics["impact_speed"] = func(physics.Params) sim.Metric { return metrics.NewImpactSpeed() }
	r.metrics["energy_loss"] = func(p physics.Params) sim.Metric { return metrics.NewEnergyLoss(p.Mass, p.Gravity) }

	return r
}

// GetIntegrator returns a fresh stepper. An empty name selects the default.
func (r *Registry) GetIntegrator(name string) (dynamo.Stepper, error) {
	return integrators.ByName(name)
}

func (r *Registry) GetMetric(name string, p physics.Params) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(p), nil
}

func (r *Registry) ListIntegrators() []string {
	return integrators.Names()
}

// ListMetrics returns the metric names in the order DefaultMetrics reports
// them.
func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for _, name := range metrics.Names() {
		if _, ok := r.metrics[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

func (r *Registry) DefaultMetrics(p physics.Params) []sim.Metric {
	return metrics.Defaults(p)
}
