package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/integrators"
)

var (
	logLevel string

	theta      float64
	length     float64
	dt         float64
	steps      int
	integrator string
	configFile string
	preset     string

	csvOut  string
	jsonOut string
	pngOut  string
	svgOut  string
	plot    bool
	live    bool
	stride  int
	bundle  string

	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepN     int

	tuneDuration float64
	tuneTol      float64
	tuneSteps    []float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pendsim",
		Short:        "simple pendulum simulator (RK4)",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
			logrus.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print its results",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write the trajectory as CSV to this path")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write the run as JSON to this path")
	runCmd.Flags().StringVar(&pngOut, "png", "", "write the chart as PNG to this path")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the phase portrait as SVG to this path")
	runCmd.Flags().BoolVar(&plot, "plot", true, "print the ASCII chart")
	runCmd.Flags().BoolVar(&live, "live", false, "animate the pendulum while simulating")
	runCmd.Flags().IntVar(&stride, "stride", 5, "samples between live frames")
	runCmd.Flags().StringVar(&bundle, "bundle", "", "write metadata.json and the CSV into a run directory under this path")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "print the small-angle parameters",
		Args:  cobra.NoArgs,
		RunE:  printParams,
	}
	paramsCmd.Flags().Float64Var(&theta, "theta", config.DefaultThetaDeg, "initial angle (degrees)")
	paramsCmd.Flags().Float64Var(&length, "length", config.DefaultLength, "pendulum length (m)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the same run",
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	replayCmd := &cobra.Command{
		Use:   "replay [csv file]",
		Short: "plot an exported trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  replay,
	}
	replayCmd.Flags().StringVar(&pngOut, "png", "", "write the chart as PNG to this path")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive simulation form",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addSimFlags(tuiCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare simulated and small-angle periods across a parameter range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "theta", "parameter to sweep (theta, length)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 5, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 90, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 10, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "find the coarsest time step within an energy drift tolerance",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addSimFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&tuneDuration, "duration", 10, "simulated time (s)")
	tuneCmd.Flags().Float64Var(&tuneTol, "tol", 1e-6, "maximum relative energy drift")
	tuneCmd.Flags().Float64SliceVar(&tuneSteps, "candidates", []float64{0.1, 0.05, 0.02, 0.01, 0.005, 0.002, 0.001}, "time steps to try")

	rootCmd.AddCommand(runCmd, paramsCmd, presetsCmd, compareCmd, replayCmd, initCmd, tuiCmd, batchCmd, sweepCmd, tuneCmd)
	return rootCmd
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultThetaDeg, "initial angle (degrees)")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "pendulum length (m)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step (s)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().StringVar(&integrator, "integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.File, error) {
	cfg := config.DefaultFile()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("theta") {
		cfg.ThetaDeg = theta
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	logrus.Debugf("resolved config: %+v", *cfg)
	return cfg, nil
}
