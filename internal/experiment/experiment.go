package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/spinflight/internal/config"
	"github.com/san-kum/spinflight/internal/physics"
	"github.com/san-kum/spinflight/internal/sim"
)

// Experiment is one configured flight: inputs resolved to parameters, a
// stepper and its metrics.
type Experiment struct {
	cfg         config.Config
	metricNames []string
	params      physics.Params
	simulator   *sim.Simulator
}

func New(cfg config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// WithMetrics restricts the run to the named metrics instead of the defaults.
func (e *Experiment) WithMetrics(names ...string) *Experiment {
	e.metricNames = names
	return e
}

// Setup validates the inputs and wires the named stepper and metrics.
func (e *Experiment) Setup(reg *Registry) error {
	params, err := e.cfg.Inputs.Params()
	if err != nil {
		return err
	}
	stepper, err := reg.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	ms := reg.DefaultMetrics(params)
	if len(e.metricNames) > 0 {
		ms = make([]sim.Metric, 0, len(e.metricNames))
		for _, name := range e.metricNames {
			m, err := reg.GetMetric(name, params)
			if err != nil {
				return err
			}
			ms = append(ms, m)
		}
	}

	e.params = params
	e.simulator = sim.New(stepper)
	for _, m := range ms {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.simulator.Run(e.params.LaunchState(), e.params)
}

func (e *Experiment) Config() config.Config { return e.cfg }

func (e *Experiment) Params() physics.Params { return e.params }

// GetSimulator returns the underlying simulator for adding observers. Nil
// before Setup.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
