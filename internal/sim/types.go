package sim

import (
	"fmt"

	"github.com/san-kum/spinflight/internal/dynamo"
)

// Metric summarises a run from the samples it observes.
type Metric interface {
	Name() string
	Observe(s dynamo.Sample)
	Value() float64
	Reset()
}

// Observer receives every recorded sample as it is produced.
type Observer interface {
	OnSample(s dynamo.Sample)
}

type StopReason int

const (
	StopDuration StopReason = iota
	StopImpact
	StopInvalid
)

func (r StopReason) String() string {
	switch r {
	case StopDuration:
		return "duration"
	case StopImpact:
		return "impact"
	case StopInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

type Result struct {
	Trajectory *dynamo.Trajectory
	Metrics    map[string]float64
	StepsTaken int
	Stop       StopReason
	Errors     []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
