package dynamo

import (
	"errors"
	"strings"
	"testing"
)

func TestForceSet_Total(t *testing.T) {
	f := ForceSet{
		Magnus:  V(0, 1, 2),
		Drag:    V(-1, 0, 0),
		Gravity: V(0, -4, 0),
	}
	if got := f.Total(); got != V(-1, -3, 2) {
		t.Errorf("Total = %v", got)
	}
}

type constantField struct {
	force Vec3
	mass  float64
}

func (c constantField) Forces(s KinematicState) ForceSet { return ForceSet{Gravity: c.force} }
func (c constantField) Mass() float64                    { return c.mass }

func TestAcceleration(t *testing.T) {
	f := constantField{force: V(0, -4, 2), mass: 2}
	if got := Acceleration(f, KinematicState{}); got != V(0, -2, 1) {
		t.Errorf("Acceleration = %v", got)
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(4)
	for i := 0; i < 3; i++ {
		rec.Record(Sample{Time: float64(i) * 0.1, Position: V(float64(i), 0, 0)})
	}
	if rec.Len() != 3 {
		t.Errorf("expected 3 samples, got %d", rec.Len())
	}

	traj := rec.Finish()
	if traj.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", traj.Len())
	}
	if traj.First().Time != 0 {
		t.Errorf("expected first time 0, got %f", traj.First().Time)
	}
	if traj.Last().Position.X != 2 {
		t.Errorf("expected last x 2, got %f", traj.Last().Position.X)
	}
	if traj.At(1).Time != 0.1 {
		t.Errorf("expected At(1).Time 0.1, got %f", traj.At(1).Time)
	}

	times := traj.Times()
	if len(times) != 3 || times[2] != 0.2 {
		t.Errorf("unexpected times %v", times)
	}
}

func TestRecorder_RecordAfterFinishPanics(t *testing.T) {
	rec := NewRecorder(1)
	rec.Finish()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on record after finish")
		}
	}()
	rec.Record(Sample{})
}

func TestTrajectory_SamplesIsCopy(t *testing.T) {
	traj := NewTrajectory([]Sample{{Time: 0}, {Time: 1}})

	s := traj.Samples()
	s[0].Time = 99

	if traj.First().Time != 0 {
		t.Error("Samples did not return an independent copy")
	}
}

func TestTrajectory_Each(t *testing.T) {
	traj := NewTrajectory([]Sample{{Time: 0}, {Time: 1}, {Time: 2}})

	visited := 0
	traj.Each(func(i int, s Sample) bool {
		visited++
		return i < 1
	})
	if visited != 2 {
		t.Errorf("expected Each to stop after 2 samples, visited %d", visited)
	}
}

func TestConstructionError(t *testing.T) {
	err := &ConstructionError{Field: "spin", Reason: "top and side both set", Err: ErrConflictingSpin}

	if !errors.Is(err, ErrConflictingSpin) {
		t.Error("ConstructionError does not unwrap to its sentinel")
	}
	if !strings.Contains(err.Error(), "spin") {
		t.Errorf("unexpected message %q", err.Error())
	}

	var ce *ConstructionError
	if !errors.As(error(err), &ce) || ce.Field != "spin" {
		t.Error("errors.As failed")
	}
}
