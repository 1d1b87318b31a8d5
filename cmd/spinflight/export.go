package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/export"
	"github.com/san-kum/spinflight/internal/storage"
)

var (
	outFile     string
	viewName    string
	every       int
	imageWidth  int
	imageHeight int
	strokeColor string
	frameDelay  int
)

func exportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export a stored run",
	}
	exportCmd.PersistentFlags().StringVarP(&outFile, "output", "o", "", "output file (default stdout for text formats)")
	exportCmd.PersistentFlags().StringVar(&viewName, "view", "side", "projection for images (side, top, front)")
	exportCmd.PersistentFlags().IntVar(&every, "every", 1, "keep every Nth sample")
	exportCmd.PersistentFlags().IntVar(&imageWidth, "width", 800, "image width")
	exportCmd.PersistentFlags().IntVar(&imageHeight, "height", 400, "image height")
	exportCmd.PersistentFlags().StringVar(&strokeColor, "color", "#22d3ee", "path color")

	formats := []struct {
		name, short string
		write       func(w io.Writer, meta *storage.RunMetadata, traj *dynamo.Trajectory) error
		binary      bool
	}{
		{"csv", "export samples as csv", exportCSV, false},
		{"json", "export run as json", exportJSON, false},
		{"svg", "export path as svg", exportSVG, false},
		{"png", "export path as png", exportPNG, true},
		{"gif", "export animated flight as gif", exportGIF, true},
	}
	for _, f := range formats {
		sub := &cobra.Command{
			Use:   f.name + " [run_id]",
			Short: f.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return exportRun(cmd.OutOrStdout(), args[0], f.name, f.binary, f.write)
			},
		}
		if f.name == "gif" {
			sub.Flags().IntVar(&frameDelay, "delay", 2, "frame delay in 100ths of a second")
		}
		exportCmd.AddCommand(sub)
	}
	return exportCmd
}

func exportRun(stdout io.Writer, runID, format string, binary bool, write func(io.Writer, *storage.RunMetadata, *dynamo.Trajectory) error) error {
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

	path := outFile
	if path == "" && binary {
		path = runID + "." + format
	}
	if path == "" {
		return write(stdout, meta, traj)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f, meta, traj); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("id", runID).Str("format", format).Str("path", path).Msg("run exported")
	return nil
}

// thin keeps every Nth sample plus the last one.
func thin(traj *dynamo.Trajectory) *dynamo.Trajectory {
	if every <= 1 {
		return traj
	}
	idx := export.Every(traj.Len(), every)
	samples := make([]dynamo.Sample, len(idx))
	for i, j := range idx {
		samples[i] = traj.At(j)
	}
	return dynamo.NewTrajectory(samples)
}

func exportCSV(w io.Writer, meta *storage.RunMetadata, traj *dynamo.Trajectory) error {
	return export.WriteCSV(w, thin(traj))
}

func exportJSON(w io.Writer, meta *storage.RunMetadata, traj *dynamo.Trajectory) error {
	doc := export.NewDocument(meta.ID, meta.Integrator, meta.Dt, meta.Duration, thin(traj), meta.Metrics)
	return export.WriteJSON(w, doc)
}

func projection(traj *dynamo.Trajectory) ([]export.Point, error) {
	v, err := export.ParseView(viewName)
	if err != nil {
		return nil, err
	}
	return export.Project(thin(traj), v), nil
}

func exportSVG(w io.Writer, meta *storage.RunMetadata, traj *dynamo.Trajectory) error {
	points, err := projection(traj)
	if err != nil {
		return err
	}
	svg := export.TrajectoryToSVG(points, imageWidth, imageHeight, strokeColor)
	if svg == "" {
		return fmt.Errorf("svg: run %s has too few samples", meta.ID)
	}
	_, err = io.WriteString(w, svg)
	return err
}

func exportPNG(w io.Writer, meta *storage.RunMetadata, traj *dynamo.Trajectory) error {
	points, err := projection(traj)
	if err != nil {
		return err
	}
	return export.WritePNG(w, points, imageWidth, imageHeight, strokeColor)
}

func exportGIF(w io.Writer, meta *storage.RunMetadata, traj *dynamo.Trajectory) error {
	v, err := export.ParseView(viewName)
	if err != nil {
		return err
	}
	n := every
	if n <= 1 {
		n = frameSkip
	}
	return export.WriteGIF(w, traj, export.GIFOptions{
		Width:       imageWidth,
		Height:      imageHeight,
		View:        v,
		Every:       n,
		Delay:       frameDelay,
		StrokeColor: strokeColor,
	})
}
