package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/spinflight/internal/config"
	"github.com/san-kum/spinflight/internal/experiment"
)

func builder(reg *experiment.Registry) func(map[string]float64) (*experiment.Experiment, error) {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := config.GetPreset("vacuum")
		for k, v := range params {
			if err := cfg.Inputs.Set(k, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(*cfg)
		if err := exp.Setup(reg); err != nil {
			return nil, err
		}
		return exp, nil
	}
}

func TestGridSearchMaxRange(t *testing.T) {
	g := NewGridSearch(
		[]string{"elevation_angle", "initial_velocity"},
		[][]float64{{15, 30, 45, 60, 75}, {10, 20}},
	).WithWorkers(3)
	require.Equal(t, 10, g.Size())

	res, err := g.Search(context.Background(), builder(experiment.NewRegistry()), "range", Maximize)
	require.NoError(t, err)
	require.Len(t, res.Points, 10)
	require.NotNil(t, res.Best)

	assert.Equal(t, 45.0, res.Best.Params["elevation_angle"])
	assert.Equal(t, 20.0, res.Best.Params["initial_velocity"])
}

func TestGridSearchMinimize(t *testing.T) {
	g := NewGridSearch([]string{"elevation_angle"}, [][]float64{{20, 50, 80}})

	res, err := g.Search(context.Background(), builder(experiment.NewRegistry()), "max_height", Minimize)
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.Best.Params["elevation_angle"])
}

func TestGridSearchInvalidPoints(t *testing.T) {
	g := NewGridSearch([]string{"duration"}, [][]float64{{2, 10, 50}})

	res, err := g.Search(context.Background(), builder(experiment.NewRegistry()), "range", Maximize)
	require.NoError(t, err)

	failed := 0
	for _, p := range res.Points {
		if p.Err != nil {
			failed++
		}
	}
	assert.Equal(t, 2, failed)
	require.NotNil(t, res.Best)
	assert.Equal(t, 10.0, res.Best.Params["duration"])
}

func TestGridSearchUnknownMetric(t *testing.T) {
	g := NewGridSearch([]string{"elevation_angle"}, [][]float64{{45}})
	_, err := g.Search(context.Background(), builder(experiment.NewRegistry()), "spin", Maximize)
	assert.Error(t, err)
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"elevation_angle"}, [][]float64{Linspace(10, 80, 8)})
	_, err := g.Search(ctx, builder(experiment.NewRegistry()), "range", Maximize)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGridSearchMismatch(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1}})
	_, err := g.Search(context.Background(), builder(experiment.NewRegistry()), "range", Maximize)
	assert.Error(t, err)
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5))
	assert.Equal(t, []float64{3}, Linspace(3, 9, 1))
}

func TestParseAxis(t *testing.T) {
	key, vals, err := ParseAxis("elevation_angle=10:50:5")
	require.NoError(t, err)
	assert.Equal(t, "elevation_angle", key)
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, vals)

	key, vals, err = ParseAxis("spin_rate=0, 500,1000")
	require.NoError(t, err)
	assert.Equal(t, "spin_rate", key)
	assert.Equal(t, []float64{0, 500, 1000}, vals)

	for _, bad := range []string{"nokey", "=1,2", "x=1:2", "x=1:2:0", "x=a,b"} {
		_, _, err := ParseAxis(bad)
		assert.Error(t, err, bad)
	}
}
