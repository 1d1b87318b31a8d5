package sim

import (
	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/integrators"
	"github.com/san-kum/spinflight/internal/physics"
)

type Simulator struct {
	stepper   dynamo.Stepper
	metrics   []Metric
	observers []Observer
}

// New returns a simulator using stepper, or semi-implicit Euler when nil.
func New(stepper dynamo.Stepper) *Simulator {
	if stepper == nil {
		stepper = integrators.NewSemiImplicitEuler()
	}
	return &Simulator{
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 until the step budget is spent or the projectile
// comes back down to the launch height.
func (s *Simulator) Run(x0 dynamo.KinematicState, p physics.Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	model := physics.NewForceModel(p)
	steps := p.MaxSteps()
	rec := dynamo.NewRecorder(steps + 1)
	result := &Result{
		Metrics: make(map[string]float64),
		Stop:    StopDuration,
		Errors:  make([]error, 0),
	}

	x := x0
	x.Time = 0
	s.record(rec, model.Sample(x))

	for i := 1; i <= steps; i++ {
		next := s.stepper.Step(model, x, p.Dt)
		next.Time = float64(i) * p.Dt

		if !next.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: next.Time, Step: i, Message: "invalid state (NaN/Inf)"})
			result.Stop = StopInvalid
			break
		}

		s.record(rec, model.Sample(next))
		result.StepsTaken++

		// Height 0 at launch is not an impact: the first step either rises or
		// ends the run.
		if next.Height() <= 0 && (x.Height() > 0 || i == 1) {
			result.Stop = StopImpact
			break
		}
		x = next
	}

	result.Trajectory = rec.Finish()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulator) record(rec *dynamo.Recorder, sample dynamo.Sample) {
	rec.Record(sample)
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, o := range s.observers {
		o.OnSample(sample)
	}
}
