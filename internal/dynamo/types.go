package dynamo

type KinematicState struct {
	Position Vec3
	Velocity Vec3
	Time     float64
}

func (s KinematicState) IsValid() bool {
	return s.Position.IsFinite() && s.Velocity.IsFinite()
}

// Height is the vertical component of the position.
func (s KinematicState) Height() float64 { return s.Position.Y }

type ForceSet struct {
	Magnus  Vec3
	Drag    Vec3
	Gravity Vec3
}

func (f ForceSet) Total() Vec3 {
	return f.Magnus.Add(f.Drag).Add(f.Gravity)
}

type Sample struct {
	Time         float64
	Position     Vec3
	Velocity     Vec3
	Acceleration Vec3
	Forces       ForceSet
}

func (s Sample) State() KinematicState {
	return KinematicState{Position: s.Position, Velocity: s.Velocity, Time: s.Time}
}

// ForceField evaluates the forces acting on the projectile at a state.
type ForceField interface {
	Forces(s KinematicState) ForceSet
	Mass() float64
}

// Acceleration returns F/m at s.
func Acceleration(f ForceField, s KinematicState) Vec3 {
	return f.Forces(s).Total().Scale(1 / f.Mass())
}

// Stepper advances a state by one fixed step. Implementations do not set the
// returned Time beyond s.Time+dt; callers may overwrite it to avoid drift.
type Stepper interface {
	Step(f ForceField, s KinematicState, dt float64) KinematicState
}

// Trajectory is the ordered, time-ascending result of one run. It is never
// mutated after construction.
type Trajectory struct {
	samples []Sample
}

// NewTrajectory copies samples into a Trajectory. Used when reloading a run.
func NewTrajectory(samples []Sample) *Trajectory {
	c := make([]Sample, len(samples))
	copy(c, samples)
	return &Trajectory{samples: c}
}

func (t *Trajectory) Len() int { return len(t.samples) }

func (t *Trajectory) At(i int) Sample { return t.samples[i] }

func (t *Trajectory) First() Sample { return t.samples[0] }

func (t *Trajectory) Last() Sample { return t.samples[len(t.samples)-1] }

// Samples returns a copy of the recorded samples.
func (t *Trajectory) Samples() []Sample {
	c := make([]Sample, len(t.samples))
	copy(c, t.samples)
	return c
}

func (t *Trajectory) Times() []float64 {
	times := make([]float64, len(t.samples))
	for i, s := range t.samples {
		times[i] = s.Time
	}
	return times
}

// Each calls fn for every sample in order until fn returns false.
func (t *Trajectory) Each(fn func(i int, s Sample) bool) {
	for i, s := range t.samples {
		if !fn(i, s) {
			return
		}
	}
}

// Recorder accumulates samples in the order they are produced.
type Recorder struct {
	samples  []Sample
	finished bool
}

func NewRecorder(capacity int) *Recorder {
	if capacity < 0 {
		capacity = 0
	}
	return &Recorder{samples: make([]Sample, 0, capacity)}
}

func (r *Recorder) Record(s Sample) {
	if r.finished {
		panic("dynamo: record after finish")
	}
	r.samples = append(r.samples, s)
}

func (r *Recorder) Len() int { return len(r.samples) }

// Finish hands the samples over to a Trajectory. The recorder cannot be used
// afterwards.
func (r *Recorder) Finish() *Trajectory {
	r.finished = true
	t := &Trajectory{samples: r.samples}
	r.samples = nil
	return t
}
