package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/spinflight/internal/config"
	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/experiment"
	"github.com/san-kum/spinflight/internal/export"
	"github.com/san-kum/spinflight/internal/logging"
	"github.com/san-kum/spinflight/internal/physics"
	"github.com/san-kum/spinflight/internal/sim"
	"github.com/san-kum/spinflight/internal/storage"
	"github.com/san-kum/spinflight/internal/viz"
)

var (
	dataDir      string
	logLevel     string
	logFormat    string
	settingsFile string
	frameSkip    int

	configFile  string
	preset      string
	runName     string
	integrator  string
	spin        string
	noSave      bool
	showPlot    bool
	replay      bool
	metricNames []string

	plotGroup  string
	plotWidth  int
	plotHeight int
	theme      string

	log zerolog.Logger
)

// inputFlags maps run flags to the input keys they override.
var inputFlags = []struct {
	flag, key, usage string
}{
	{"velocity", "initial_velocity", "initial velocity (m/s)"},
	{"radius", "radius", "ball radius (m)"},
	{"elevation", "elevation_angle", "elevation angle (deg)"},
	{"azimuth", "azimuth_angle", "azimuth angle (deg)"},
	{"drag", "drag_coefficient", "drag coefficient"},
	{"lift", "lift_coefficient", "lift coefficient"},
	{"density", "air_density", "air density (kg/m^3)"},
	{"spin-rate", "spin_rate", "spin rate (rpm)"},
	{"dt", "time_step", "timestep (s)"},
	{"time", "duration", "duration (s)"},
	{"mass", "mass", "ball mass (kg)"},
	{"gravity", "gravity", "gravitational acceleration (m/s^2)"},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "spinflight",
		Short:             "spinning projectile trajectory lab",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate one flight",
		Args:  cobra.NoArgs,
		RunE:  runFlight,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&runName, "name", "", "run name")
	runCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	runCmd.Flags().StringVar(&spin, "spin", "none", "spin type (top, side, none)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot the trajectory when done")
	runCmd.Flags().BoolVar(&replay, "replay", false, "replay the flight in the terminal when done")
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to compute (default: all)")
	defaults := config.DefaultConfig().Inputs
	for _, f := range inputFlags {
		v, _ := defaults.Get(f.key)
		runCmd.Flags().Float64(f.flag, v, f.usage)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotGroup, "group", "trajectory", "plot group ("+strings.Join(viz.GroupNames(), ", ")+")")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")
	plotCmd.Flags().StringVar(&theme, "theme", "classic", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "animate a stored run or a preset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().StringVar(&preset, "preset", "", "simulate a preset instead of loading a run")
	replayCmd.Flags().IntVar(&frameSkip, "every", 0, "draw every Nth sample")
	replayCmd.Flags().StringVar(&theme, "theme", "classic", "color theme")

	rmCmd := &cobra.Command{
		Use:   "rm [run_id...]",
		Short: "delete runs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  removeRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVELOCITY\tELEVATION\tSPIN\tRPM")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%s\t%.0f\n",
					name,
					p.Inputs.InitialVelocity,
					p.Inputs.ElevationAngle,
					spinName(p.Inputs),
					p.Inputs.SpinRate,
				)
			}
			w.Flush()
		},
	}

	limitsCmd := &cobra.Command{
		Use:   "limits",
		Short: "show accepted input ranges",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tPARAMETER\tMIN\tMAX\tUNIT")
			for _, l := range config.Limits {
				fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%s\n", l.Key, l.Parameter, l.Min, l.Max, l.Unit)
			}
			w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a run config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				cfg = config.GetPreset(preset)
				if cfg == nil {
					return fmt.Errorf("unknown preset: %s", preset)
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, replayCmd, exportCommand(), sweepCommand(),
		rmCmd, presetsCmd, limitsCmd, initCmd)
	return rootCmd
}

// setup loads settings and builds the logger. Flags win over the settings
// file and environment.
func setup(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(settingsFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("data") {
		dataDir = settings.DataDir
	}
	if !flags.Changed("log-level") {
		logLevel = settings.LogLevel
	}
	if !flags.Changed("log-format") {
		logFormat = settings.LogFormat
	}
	if !flags.Changed("every") || frameSkip < 1 {
		frameSkip = settings.FrameSkip
	}

	log, err = logging.New(cmd.ErrOrStderr(), logLevel, logFormat)
	if err != nil {
		return err
	}
	log.Debug().Str("data", dataDir).Str("settings", settingsFile).Msg("settings loaded")
	return nil
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

// loadConfig resolves the run config: preset, then config file, then
// explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "using preset: %s\n", preset)
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	for _, f := range inputFlags {
		if !flags.Changed(f.flag) {
			continue
		}
		v, err := flags.GetFloat64(f.flag)
		if err != nil {
			return nil, err
		}
		if err := cfg.Inputs.Set(f.key, v); err != nil {
			return nil, err
		}
	}
	if flags.Changed("spin") {
		if err := cfg.Inputs.SetSpin(spin); err != nil {
			return nil, err
		}
	}
	if flags.Changed("integrator") || cfg.Integrator == "" {
		cfg.Integrator = integrator
	}
	if flags.Changed("name") {
		cfg.Name = runName
	}
	return cfg, nil
}

// sampleLogger traces every recorded sample.
type sampleLogger struct {
	log zerolog.Logger
}

func (o sampleLogger) OnSample(s dynamo.Sample) {
	o.log.Trace().
		Float64("t", s.Time).
		Float64("x", s.Position.X).
		Float64("y", s.Position.Y).
		Float64("z", s.Position.Z).
		Float64("speed", s.Velocity.Norm()).
		Msg("sample")
}

func simulate(ctx context.Context, cfg *config.Config, metrics ...string) (*sim.Result, error) {
	exp := experiment.New(*cfg).WithMetrics(metrics...)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, err
	}
	if log.GetLevel() <= zerolog.TraceLevel {
		exp.GetSimulator().AddObserver(sampleLogger{log: log})
	}

	p := exp.Params()
	log.Debug().
		Float64("elevation_deg", physics.Degrees(p.Elevation)).
		Float64("azimuth_deg", physics.Degrees(p.Azimuth)).
		Float64("drag_k", p.DragK).
		Float64("magnus_k", p.MagnusK).
		Float64("spin_rate", p.SpinRate).
		Str("spin", p.Spin.String()).
		Int("max_steps", p.MaxSteps()).
		Msg("parameters built")
	return exp.Run(ctx)
}

func runFlight(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log.Info().Str("name", cfg.Name).Str("integrator", cfg.Integrator).Msg("run started")
	start := time.Now()

	result, err := simulate(cmd.Context(), cfg, metricNames...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, e := range result.Errors {
		var se sim.SimError
		if errors.As(e, &se) {
			log.Warn().Float64("t", se.Time).Int("step", se.Step).Msg(se.Message)
			continue
		}
		log.Warn().Err(e).Msg("run error")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "steps: %d (%s)\n", result.StepsTaken, result.Stop)

	if !noSave {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		runID, err := st.Save(*cfg, result)
		if err != nil {
			return err
		}
		log.Info().Str("id", runID).Int("samples", result.Trajectory.Len()).Msg("run saved")
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	fmt.Fprintln(out, "\nmetrics:")
	fmt.Fprintln(out, viz.MetricsTable(result.Metrics))

	if showPlot {
		g, _ := viz.GetGroup("trajectory")
		graph, err := viz.PlotGroup(export.NewSeries(result.Trajectory), g, 80, 15)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
	if replay {
		return runReplay(flightTitle(cfg), result.Trajectory, result.Metrics)
	}
	return nil
}

func flightTitle(cfg *config.Config) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return "flight"
}

func spinName(in config.Inputs) string {
	switch {
	case in.TopSpin:
		return "top"
	case in.SideSpin:
		return "side"
	default:
		return "none"
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tINTEG\tDT\tSPIN\tSTOP\tRANGE\tFLIGHT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4fs\t%s\t%s\t%.2fm\t%.2fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.Dt,
			spinName(run.Inputs),
			run.Stop,
			run.Metrics["range"],
			run.Metrics["flight_time"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	g, err := viz.GetGroup(plotGroup)
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	out, err := viz.PlotGroup(export.NewSeries(traj), g, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "run: %s (%s, dt=%.4f)\n\n%s\n", meta.ID, meta.Integrator, meta.Dt, out)
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	viz.SetTheme(theme)

	if len(args) == 0 {
		if preset == "" {
			return fmt.Errorf("need a run id or --preset")
		}
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s", preset)
		}
		result, err := simulate(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return runReplay(preset, result.Trajectory, result.Metrics)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return runReplay(meta.ID, traj, meta.Metrics)
}

func runReplay(title string, traj *dynamo.Trajectory, metrics map[string]float64) error {
	m := viz.NewReplay(title, traj, metrics, frameSkip)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func removeRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	for _, id := range args {
		if err := st.Delete(id); err != nil {
			return err
		}
		log.Info().Str("id", id).Msg("run deleted")
	}
	return nil
}

func sortedMetricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
