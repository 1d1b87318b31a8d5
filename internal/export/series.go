package export

import "github.com/san-kum/spinflight/internal/dynamo"

// Series holds a trajectory as parallel columns, one entry per sample.
type Series struct {
	Time []float64 `json:"time"`

	X []float64 `json:"x_position"`
	Y []float64 `json:"y_position"`
	Z []float64 `json:"z_position"`

	VX []float64 `json:"x_velocity"`
	VY []float64 `json:"y_velocity"`
	VZ []float64 `json:"z_velocity"`

	AX []float64 `json:"x_acceleration"`
	AY []float64 `json:"y_acceleration"`
	AZ []float64 `json:"z_acceleration"`

	MagnusX []float64 `json:"x_magnus_force"`
	MagnusY []float64 `json:"y_magnus_force"`
	MagnusZ []float64 `json:"z_magnus_force"`

	DragX []float64 `json:"x_drag_force"`
	DragY []float64 `json:"y_drag_force"`
	DragZ []float64 `json:"z_drag_force"`

	TotalX []float64 `json:"x_total_force"`
	TotalY []float64 `json:"y_total_force"`
	TotalZ []float64 `json:"z_total_force"`

	DragMagnitude   []float64 `json:"drag_magnitude"`
	MagnusMagnitude []float64 `json:"magnus_magnitude"`
	GravityForce    float64   `json:"gravity_force"`
}

func NewSeries(traj *dynamo.Trajectory) *Series {
	n := traj.Len()
	s := &Series{}
	cols := s.columns()
	for _, c := range cols {
		*c.data = make([]float64, 0, n)
	}
	s.DragMagnitude = make([]float64, 0, n)
	s.MagnusMagnitude = make([]float64, 0, n)

	traj.Each(func(_ int, sm dynamo.Sample) bool {
		for _, c := range cols {
			*c.data = append(*c.data, c.get(sm))
		}
		s.DragMagnitude = append(s.DragMagnitude, sm.Forces.Drag.Norm())
		s.MagnusMagnitude = append(s.MagnusMagnitude, sm.Forces.Magnus.Norm())
		return true
	})
	if n > 0 {
		s.GravityForce = traj.First().Forces.Gravity.Norm()
	}
	return s
}

func (s *Series) Len() int { return len(s.Time) }

// Column returns the named column, using the CSV header names.
func (s *Series) Column(name string) ([]float64, bool) {
	for _, c := range s.columns() {
		if c.name == name {
			return *c.data, true
		}
	}
	switch name {
	case "drag_magnitude":
		return s.DragMagnitude, true
	case "magnus_magnitude":
		return s.MagnusMagnitude, true
	}
	return nil, false
}

type column struct {
	name string
	data *[]float64
	get  func(dynamo.Sample) float64
}

func (s *Series) columns() []column {
	return []column{
		{"time", &s.Time, func(sm dynamo.Sample) float64 { return sm.Time }},
		{"x_position", &s.X, func(sm dynamo.Sample) float64 { return sm.Position.X }},
		{"y_position", &s.Y, func(sm dynamo.Sample) float64 { return sm.Position.Y }},
		{"z_position", &s.Z, func(sm dynamo.Sample) float64 { return sm.Position.Z }},
		{"x_velocity", &s.VX, func(sm dynamo.Sample) float64 { return sm.Velocity.X }},
		{"y_velocity", &s.VY, func(sm dynamo.Sample) float64 { return sm.Velocity.Y }},
		{"z_velocity", &s.VZ, func(sm dynamo.Sample) float64 { return sm.Velocity.Z }},
		{"x_acceleration", &s.AX, func(sm dynamo.Sample) float64 { return sm.Acceleration.X }},
		{"y_acceleration", &s.AY, func(sm dynamo.Sample) float64 { return sm.Acceleration.Y }},
		{"z_acceleration", &s.AZ, func(sm dynamo.Sample) float64 { return sm.Acceleration.Z }},
		{"x_magnus_force", &s.MagnusX, func(sm dynamo.Sample) float64 { return sm.Forces.Magnus.X }},
		{"y_magnus_force", &s.MagnusY, func(sm dynamo.Sample) float64 { return sm.Forces.Magnus.Y }},
		{"z_magnus_force", &s.MagnusZ, func(sm dynamo.Sample) float64 { return sm.Forces.Magnus.Z }},
		{"x_drag_force", &s.DragX, func(sm dynamo.Sample) float64 { return sm.Forces.Drag.X }},
		{"y_drag_force", &s.DragY, func(sm dynamo.Sample) float64 { return sm.Forces.Drag.Y }},
		{"z_drag_force", &s.DragZ, func(sm dynamo.Sample) float64 { return sm.Forces.Drag.Z }},
		{"x_total_force", &s.TotalX, func(sm dynamo.Sample) float64 { return sm.Forces.Total().X }},
		{"y_total_force", &s.TotalY, func(sm dynamo.Sample) float64 { return sm.Forces.Total().Y }},
		{"z_total_force", &s.TotalZ, func(sm dynamo.Sample) float64 { return sm.Forces.Total().Z }},
	}
}

// Header is the CSV header, one column per field of a sample.
func Header() []string {
	cols := (&Series{}).columns()
	h := make([]string, len(cols))
	for i, c := range cols {
		h[i] = c.name
	}
	return h
}

// Every returns the indices 0, n, 2n, ... plus the last index, for
// decimated animation frames.
func Every(length, n int) []int {
	if length == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	idx := make([]int, 0, length/n+2)
	for i := 0; i < length; i += n {
		idx = append(idx, i)
	}
	if idx[len(idx)-1] != length-1 {
		idx = append(idx, length-1)
	}
	return idx
}
