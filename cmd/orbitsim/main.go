package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/logger"
)

var (
	dataDir  string
	logLevel string
	logJSON  bool

	frames      int
	dt          float64
	sampleEvery int
	timeScale   float64
	forces      string
	noSave      bool
	svgOut      string
	progress    bool

	frameRate int

	outPath   string
	svgWidth  int
	svgHeight int
	bodyIndex int

	initPreset string
	force      bool
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadDotenv loads environment defaults. A missing file is not an error.
func loadDotenv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func main() {
	if err := loadDotenv(); err != nil {
		slog.Warn("ignoring .env", "component", "cli", "error", err)
	}

	rootCmd := &cobra.Command{
		Use:           "orbitsim",
		Short:         "2-D n-body gravity simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logLevel, logJSON, os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", envOr("ORBITSIM_DATA", ".orbitsim"), "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("ORBITSIM_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&frames, "frames", 0, "frames to simulate (0 uses the scenario)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "frame time step (0 uses the scenario)")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 0, "record every n frames (0 uses the scenario)")
	runCmd.Flags().Float64Var(&timeScale, "time-scale", 0, "time scale (0 uses the scenario)")
	runCmd.Flags().StringVar(&forces, "forces", "", "force mode: ordered, symmetric or barneshut")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final trails as SVG to this path")
	runCmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar on stderr")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "frame time step (0 uses the scenario)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (0 uses the scenario)")
	liveCmd.Flags().Float64Var(&timeScale, "time-scale", 0, "time scale (0 uses the scenario)")
	liveCmd.Flags().StringVar(&forces, "forces", "", "force mode: ordered, symmetric or barneshut")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body coordinates of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", -1, "body index to plot (-1 plots all)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "report the orbital period of each body",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the recorded trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a scenario file to edit",
		Args:  cobra.ExactArgs(1),
		RunE:  initScenario,
	}
	initCmd.Flags().StringVar(&initPreset, "preset", "solar", "preset to start from")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
