package optim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/spinflight/internal/experiment"
)

type Goal int

const (
	Minimize Goal = iota
	Maximize
)

func (g Goal) better(a, b float64) bool {
	if g == Maximize {
		return a > b
	}
	return a < b
}

// Point is one evaluated grid point. Err is set when the point could not be
// built or run; such points never become Best.
type Point struct {
	Params  map[string]float64
	Metrics map[string]float64
	Err     error
}

type SearchResult struct {
	Points []Point
	Best   *Point
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, workers: runtime.NumCPU()}
}

// WithWorkers bounds the number of concurrent runs.
func (g *GridSearch) WithWorkers(n int) *GridSearch {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.ranges) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search evaluates every grid point in parallel and picks the best by
// metricName. Cancelling ctx stops scheduling further points.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
	goal Goal,
) (*SearchResult, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("grid: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	grid := make([]map[string]float64, 0, g.Size())
	g.enumerate(0, make(map[string]float64), &grid)

	points := make([]Point, len(grid))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, params := range grid {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			points[i] = evaluate(egCtx, params, buildExperiment)
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &SearchResult{Points: points}
	best := math.NaN()
	for i := range points {
		p := &points[i]
		if p.Err != nil {
			continue
		}
		val, ok := p.Metrics[metricName]
		if !ok {
			return nil, fmt.Errorf("unknown metric: %s", metricName)
		}
		if res.Best == nil || goal.better(val, best) {
			best = val
			res.Best = p
		}
	}
	return res, nil
}

func evaluate(
	ctx context.Context,
	params map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
) Point {
	pt := Point{Params: params}
	exp, err := buildExperiment(params)
	if err != nil {
		pt.Err = err
		return pt
	}
	result, err := exp.Run(ctx)
	if err != nil {
		pt.Err = err
		return pt
	}
	pt.Metrics = result.Metrics
	return pt
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		if depth > 0 {
			*out = append(*out, current)
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.enumerate(depth+1, newParams, out)
	}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// ParseAxis parses "key=lo:hi:n" or "key=v1,v2,...".
func ParseAxis(spec string) (string, []float64, error) {
	key, values, ok := strings.Cut(spec, "=")
	if !ok || key == "" {
		return "", nil, fmt.Errorf("axis %q: expected key=lo:hi:n or key=v1,v2", spec)
	}

	if parts := strings.Split(values, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return "", nil, fmt.Errorf("axis %q: bad range", spec)
		}
		return key, Linspace(lo, hi, n), nil
	}

	var out []float64
	for _, s := range strings.Split(values, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return "", nil, fmt.Errorf("axis %q: %w", spec, err)
		}
		out = append(out, v)
	}
	return key, out, nil
}
