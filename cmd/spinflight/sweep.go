package main

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/spinflight/internal/config"
	"github.com/san-kum/spinflight/internal/experiment"
	"github.com/san-kum/spinflight/internal/optim"
)

var (
	axes       []string
	metricName string
	maximize   bool
	workers    int
	topN       int
)

func sweepCommand() *cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search over launch inputs",
		Example: `  spinflight sweep --preset lofted --axis elevation_angle=10:60:11 --metric range --maximize
  spinflight sweep --axis spin_rate=0,200,400 --axis lift_coefficient=0.01:0.05:5 --metric lateral_drift`,
		Args: cobra.NoArgs,
		RunE: runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&axes, "axis", nil, "axis as key=lo:hi:n or key=v1,v2 (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "range", "metric to optimize")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "maximize the metric instead of minimizing")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (default: number of CPUs)")
	sweepCmd.Flags().IntVar(&topN, "top", 10, "rows to print")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "base config file (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "base preset")
	sweepCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	sweepCmd.Flags().StringVar(&spin, "spin", "none", "spin type (top, side, none)")
	return sweepCmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(axes) == 0 {
		return fmt.Errorf("need at least one --axis")
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(axes))
	ranges := make([][]float64, 0, len(axes))
	for _, spec := range axes {
		key, values, err := optim.ParseAxis(spec)
		if err != nil {
			return err
		}
		if _, err := base.Inputs.Get(key); err != nil {
			return err
		}
		names = append(names, key)
		ranges = append(ranges, values)
	}

	reg := experiment.NewRegistry()
	if !slices.Contains(reg.ListMetrics(), metricName) {
		return fmt.Errorf("unknown metric: %s (available: %s)", metricName, strings.Join(reg.ListMetrics(), ", "))
	}
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		for k, v := range params {
			if err := cfg.Inputs.Set(k, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(cfg)
		if err := exp.Setup(reg); err != nil {
			return nil, err
		}
		return exp, nil
	}

	goal := optim.Minimize
	if maximize {
		goal = optim.Maximize
	}
	search := optim.NewGridSearch(names, ranges).WithWorkers(workers)

	log.Info().Int("points", search.Size()).Str("metric", metricName).Msg("sweep started")
	start := time.Now()
	res, err := search.Search(cmd.Context(), build, metricName, goal)
	if err != nil {
		return err
	}

	failed := 0
	ok := make([]optim.Point, 0, len(res.Points))
	for _, p := range res.Points {
		if p.Err != nil {
			failed++
			log.Debug().Interface("params", p.Params).Err(p.Err).Msg("point rejected")
			continue
		}
		ok = append(ok, p)
	}
	log.Info().Int("ok", len(ok)).Int("rejected", failed).Dur("elapsed", time.Since(start)).Msg("sweep finished")

	sort.SliceStable(ok, func(i, j int) bool {
		a, b := ok[i].Metrics[metricName], ok[j].Metrics[metricName]
		if maximize {
			return a > b
		}
		return a < b
	})
	if topN > 0 && len(ok) > topN {
		ok = ok[:topN]
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := append(append([]string{}, names...), strings.ToUpper(metricName))
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, p := range ok {
		row := make([]string, 0, len(header))
		for _, n := range names {
			row = append(row, fmt.Sprintf("%g", p.Params[n]))
		}
		row = append(row, fmt.Sprintf("%.4f", p.Metrics[metricName]))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if res.Best == nil {
		return fmt.Errorf("no valid grid points")
	}
	fmt.Fprintln(out, "\nbest:")
	for _, n := range names {
		fmt.Fprintf(out, "  %s = %g\n", n, res.Best.Params[n])
	}
	for _, n := range sortedMetricNames(res.Best.Metrics) {
		fmt.Fprintf(out, "  %s: %.6f\n", n, res.Best.Metrics[n])
	}
	return nil
}
