package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/spinflight/internal/dynamo"
)

// WriteCSV writes one row per sample. Values are written with full precision
// so ReadCSV reproduces the samples exactly.
func WriteCSV(w io.Writer, traj *dynamo.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}

	cols := (&Series{}).columns()
	row := make([]string, len(cols))
	var werr error
	traj.Each(func(_ int, s dynamo.Sample) bool {
		for i, c := range cols {
			row[i] = strconv.FormatFloat(c.get(s), 'g', -1, 64)
		}
		werr = cw.Write(row)
		return werr == nil
	})
	if werr != nil {
		return werr
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows written by WriteCSV. Gravity is recovered as the total
// force minus drag and Magnus.
func ReadCSV(r io.Reader) (*dynamo.Trajectory, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: missing header")
	}

	header := Header()
	if len(records[0]) != len(header) {
		return nil, fmt.Errorf("csv: expected %d columns, got %d", len(header), len(records[0]))
	}
	for i, name := range header {
		if records[0][i] != name {
			return nil, fmt.Errorf("csv: column %d: expected %s, got %s", i, name, records[0][i])
		}
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for line, record := range records[1:] {
		v := make([]float64, len(record))
		for i, field := range record {
			v[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("csv: line %d: %w", line+2, err)
			}
		}
		s := dynamo.Sample{
			Time:         v[0],
			Position:     dynamo.V(v[1], v[2], v[3]),
			Velocity:     dynamo.V(v[4], v[5], v[6]),
			Acceleration: dynamo.V(v[7], v[8], v[9]),
			Forces: dynamo.ForceSet{
				Magnus: dynamo.V(v[10], v[11], v[12]),
				Drag:   dynamo.V(v[13], v[14], v[15]),
			},
		}
		total := dynamo.V(v[16], v[17], v[18])
		s.Forces.Gravity = total.Sub(s.Forces.Magnus).Sub(s.Forces.Drag)
		samples = append(samples, s)
	}
	return dynamo.NewTrajectory(samples), nil
}
