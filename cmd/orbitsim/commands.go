package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
)

// loadScenario resolves a preset or file and applies command-line overrides.
func loadScenario(name string) (*config.Config, error) {
	cfg, err := config.Resolve(name)
	if err != nil {
		return nil, err
	}
	if dt > 0 {
		cfg.Run.Dt = dt
	}
	if frames > 0 {
		cfg.Run.Frames = frames
	}
	if sampleEvery > 0 {
		cfg.Run.SampleEvery = sampleEvery
	}
	if frameRate > 0 {
		cfg.Run.FPS = frameRate
	}
	if timeScale > 0 {
		cfg.System.TimeScale = timeScale
	}
	if forces != "" {
		cfg.System.Forces = forces
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	return cfg, nil
}

type progressBar struct {
	total, done int
	w           io.Writer
}

func (p *progressBar) OnStep(*physics.System) {
	p.done++
	if p.done%max(p.total/100, 1) != 0 && p.done != p.total {
		return
	}
	frac := float64(p.done) / float64(p.total)
	fmt.Fprintf(p.w, "\r%s %3.0f%%", viz.ProgressBar(frac, 40), frac*100)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	every := cfg.Run.SampleEvery
	if every <= 0 {
		every = config.DefaultSampleEvery
	}
	rec := storage.NewRecorder(every)
	rec.Capture(sys)

	simulator := sim.New(sys)
	for _, m := range metrics.Defaults() {
		simulator.AddMetric(m)
	}
	simulator.AddObserver(rec)
	if progress {
		simulator.AddObserver(&progressBar{total: cfg.Run.Frames, w: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := simulator.Run(ctx, cfg.SimConfig())
	if progress {
		fmt.Fprintln(os.Stderr)
	}
	if result == nil {
		return err
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		slog.Warn("run interrupted", "component", "cli", "frames", result.Frames)
	}
	if result.Stoppage != nil {
		slog.Warn("run stopped early", "component", "cli", "error", result.Stoppage)
	}

	fmt.Printf("scenario: %s\n", cfg.Name)
	fmt.Printf("frames: %d (%.2f simulated, %v wall)\n", result.Frames, result.Elapsed, result.Wall.Round(1e6))
	if result.Skipped > 0 {
		fmt.Printf("coincident pairs skipped: %d\n", result.Skipped)
	}
	for _, m := range metrics.Defaults() {
		fmt.Printf("%s: %.6g\n", m.Name(), result.Metrics[m.Name()])
	}

	if svgOut != "" {
		svg := export.TracksToSVG(export.TracksFromSystem(sys), 800, 800)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trails written to %s\n", svgOut)
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.Describe(cfg.Name, sys)
	meta.Dt = cfg.Run.Dt
	meta.Frames = result.Frames
	meta.SampleEvery = every
	meta.Elapsed = result.Elapsed
	for k, v := range result.Metrics {
		meta.Metrics[k] = v
	}
	meta.Metrics["degenerate_pairs"] = float64(result.Skipped)

	runID, err := st.Save(meta, rec.Samples())
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}
	return viz.Run(sys, viz.Options{Title: cfg.Name, Dt: cfg.Run.Dt, FPS: cfg.Run.FPS})
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tDT\tBODIES\tFORCES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			len(run.Bodies),
			run.System.Forces,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, samples, nil
}

func bodyName(meta *storage.RunMetadata, i int) string {
	if i < len(meta.Bodies) {
		return meta.Bodies[i].Name
	}
	return fmt.Sprintf("body%d", i)
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	for i := range meta.Bodies {
		if bodyIndex >= 0 && i != bodyIndex {
			continue
		}
		series := storage.Series(samples, i)
		if len(series) < 2 {
			continue
		}
		xs := make([]float64, len(series))
		ys := make([]float64, len(series))
		for j, s := range series {
			xs[j], ys[j] = s.X, s.Y
		}

		graph := asciigraph.PlotMany([][]float64{xs, ys},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption(fmt.Sprintf("%s x (red) and y (blue) vs sample", bodyName(meta, i))),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	sampleDt := meta.Dt * meta.System.TimeScale * float64(meta.SampleEvery)

	fmt.Printf("period analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tSAMPLES\tPERIOD\tFRAMES")
	for i := range meta.Bodies {
		series := storage.Series(samples, i)
		xs := make([]float64, len(series))
		for j, s := range series {
			xs[j] = s.X
		}

		period, err := analysis.DominantPeriod(xs, sampleDt)
		switch {
		case errors.Is(err, analysis.ErrNoSignal):
			fmt.Fprintf(w, "%s\t%d\tnone\t-\n", bodyName(meta, i), len(xs))
		case err != nil:
			fmt.Fprintf(w, "%s\t%d\t%v\t-\n", bodyName(meta, i), len(xs), err)
		default:
			fmt.Fprintf(w, "%s\t%d\t%.3f\t%.0f\n", bodyName(meta, i), len(xs), period, period/(meta.Dt*meta.System.TimeScale))
		}
	}
	return w.Flush()
}

// output returns stdout for an empty path, otherwise a created file.
func output(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := output(outPath)
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, samples); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.TracksToSVG(export.TracksFromSamples(meta, samples), svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("run %s has no finite positions", meta.ID)
	}

	w, closeFn, err := output(outPath)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg+"\n"); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tFORCES\tFRAMES\tTIME SCALE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		names := make([]string, len(p.Bodies))
		for i, b := range p.Bodies {
			names[i] = b.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\n", name, strings.Join(names, ","), p.System.Forces, p.Run.Frames, p.System.TimeScale)
	}
	return w.Flush()
}

func initScenario(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.GetPreset(initPreset)
	if cfg == nil {
		return fmt.Errorf("%w: %q (presets: %v)", dynamo.ErrUnknownScenario, initPreset, config.ListPresets())
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
