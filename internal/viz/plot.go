package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/spinflight/internal/export"
)

// Group is one tab of plots: a title and the series columns it draws.
type Group struct {
	Name    string
	Title   string
	Columns []string
	Unit    string
}

var Groups = []Group{
	{"trajectory", "Height vs Range", nil, "m"},
	{"position", "Position vs Time", []string{"x_position", "y_position", "z_position"}, "m"},
	{"velocity", "Velocity vs Time", []string{"x_velocity", "y_velocity", "z_velocity"}, "m/s"},
	{"acceleration", "Acceleration vs Time", []string{"x_acceleration", "y_acceleration", "z_acceleration"}, "m/s²"},
	{"force", "Total Force vs Time", []string{"x_total_force", "y_total_force", "z_total_force"}, "N"},
	{"magnitudes", "|Drag| and |Magnus| vs Time", []string{"drag_magnitude", "magnus_magnitude"}, "N"},
}

func GroupNames() []string {
	names := make([]string, len(Groups))
	for i, g := range Groups {
		names[i] = g.Name
	}
	return names
}

func GetGroup(name string) (Group, error) {
	for _, g := range Groups {
		if g.Name == name {
			return g, nil
		}
	}
	return Group{}, fmt.Errorf("unknown plot: %s (available: %s)", name, strings.Join(GroupNames(), ", "))
}

// Resample picks n evenly spaced values so long series fit the plot width.
func Resample(data []float64, n int) []float64 {
	if n <= 0 || len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*(len(data)-1)/(n-1)]
	}
	return out
}

// PlotGroup renders a group with asciigraph. The trajectory group plots
// height against downrange distance, binned to the plot width.
func PlotGroup(s *export.Series, g Group, width, height int) (string, error) {
	if s.Len() < 2 {
		return "", fmt.Errorf("need at least 2 samples to plot")
	}

	caption := fmt.Sprintf("%s (%s), t = 0..%.2fs", g.Title, g.Unit, s.Time[s.Len()-1])
	if g.Columns == nil {
		return asciigraph.Plot(heightProfile(s.X, s.Y, width),
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(fmt.Sprintf("%s (%s), x = 0..%.1fm", g.Title, g.Unit, s.X[s.Len()-1])),
		), nil
	}

	data := make([][]float64, 0, len(g.Columns))
	legend := make([]string, 0, len(g.Columns))
	for _, name := range g.Columns {
		col, ok := s.Column(name)
		if !ok {
			return "", fmt.Errorf("unknown column: %s", name)
		}
		data = append(data, Resample(col, width))
		legend = append(legend, name)
	}

	colors := CurrentTheme.Series[:len(data)]
	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption+"  ["+strings.Join(legend, ", ")+"]"),
		asciigraph.SeriesColors(colors...),
	)
	return graph, nil
}

// heightProfile bins y by x into n columns, keeping the last height in
// each bin. x must be the monotonic downrange coordinate.
func heightProfile(x, y []float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	lo, hi := x[0], x[len(x)-1]
	if hi == lo {
		return Resample(y, n)
	}
	out := make([]float64, n)
	filled := make([]bool, n)
	for i := range x {
		b := int((x[i] - lo) / (hi - lo) * float64(n-1))
		if b < 0 || b >= n {
			continue
		}
		out[b] = y[i]
		filled[b] = true
	}
	for i := 1; i < n; i++ {
		if !filled[i] {
			out[i] = out[i-1]
		}
	}
	return out
}
