package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/export"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/session"
	"github.com/san-kum/pendsim/internal/sim"
	"github.com/san-kum/pendsim/internal/tui"
	"github.com/san-kum/pendsim/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if csvOut == "" {
		csvOut = cfg.Output
	}
	if pngOut == "" {
		pngOut = cfg.Chart
	}

	s, err := session.New(cfg.Integrator)
	if err != nil {
		return err
	}
	if live {
		l := tui.NewLive(out, stride)
		l.Start()
		defer l.Stop()
		s.Observe(l)
	}

	start := time.Now()
	report, err := s.Run(cfg.Simulation())
	if err != nil {
		printValidation(cmd.ErrOrStderr(), err)
		return err
	}
	logrus.Infof("simulated %d steps in %v", len(report.Trajectory), time.Since(start))

	fmt.Fprintln(out, viz.Panel(&report.Params))
	if plot {
		if err := viz.NewASCII().Draw(out, s.Chart()); err != nil {
			return err
		}
	}
	printAnalysis(out, report)

	meta := export.Metadata{
		ID:         s.ID,
		Integrator: s.Integrator,
		Timestamp:  time.Now().UTC(),
		ThetaDeg:   cfg.ThetaDeg,
		Length:     cfg.Length,
		Dt:         cfg.Dt,
		Steps:      cfg.Steps,
		Metrics:    report.Metrics,
	}

	if csvOut != "" {
		path, err := s.DownloadFile(csvOut)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "csv: %s\n", path)
	}
	if jsonOut != "" {
		if err := writeTo(jsonOut, func(w io.Writer) error {
			return export.WriteJSON(w, meta, report.Params, report.Trajectory)
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "json: %s\n", jsonOut)
	}
	if pngOut != "" {
		if err := viz.NewPNG().Save(pngOut, s.Chart()); err != nil {
			return err
		}
		fmt.Fprintf(out, "png: %s\n", pngOut)
	}
	if svgOut != "" {
		if err := writeTo(svgOut, func(w io.Writer) error {
			return export.PhaseSVG(w, report.Trajectory, 600, 400, "#00ff88")
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "svg: %s\n", svgOut)
	}

	if bundle != "" {
		dir, err := export.WriteBundle(bundle, meta, report.Trajectory)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "bundle: %s\n", dir)
	}

	return nil
}

func printValidation(w io.Writer, err error) {
	var verr *dynamo.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, f := range verr.Fields {
		fmt.Fprintf(w, "%s %s\n", viz.ErrorText.Render(f.Field+":"), f.Message)
	}
}

func printAnalysis(w io.Writer, r *session.Report) {
	fmt.Fprintf(w, "\n%s\n", viz.TitleStyle.Render("análisis"))
	if period, ok := analysis.ObservedPeriod(r.Trajectory); ok {
		fmt.Fprintf(w, "  periodo observado:   %.4f s (%.2f%% sobre el de ángulo pequeño)\n",
			period, 100*(period/r.Params.Period-1))
	} else {
		fmt.Fprintln(w, "  periodo observado:   - (simulación más corta que un periodo)")
	}
	if freq, ok := analysis.DominantFrequency(r.Trajectory); ok {
		fmt.Fprintf(w, "  frecuencia dominante: %.4f Hz\n", freq)
	}
	fmt.Fprintf(w, "  desviación máx.:     %.4e rad\n", analysis.SmallAngleDeviation(r.Trajectory, r.Params))
	fmt.Fprintf(w, "  deriva de energía:   %.3e\n", r.Drift)
}

func writeTo(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printParams(cmd *cobra.Command, args []string) error {
	cfg := dynamo.Config{InitialAngleDeg: theta, Length: length, TimeStep: config.DefaultDt, Steps: 1}
	if err := config.Validate(cfg); err != nil {
		printValidation(cmd.ErrOrStderr(), err)
		return err
	}
	p := physics.Parameters(cfg.InitialAngle(), cfg.Length)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.AmplitudeText(&p))
	fmt.Fprintln(out, viz.FrequencyText(&p))
	fmt.Fprintln(out, viz.PeriodText(&p))
	fmt.Fprintln(out, viz.SolutionText(&p))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTHETA\tLENGTH\tDT\tSTEPS\tINTEG")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.1f°\t%.2fm\t%.4fs\t%d\t%s\n", name, p.ThetaDeg, p.Length, p.Dt, p.Steps, p.Integrator)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	simCfg := cfg.Simulation()
	if err := config.Validate(simCfg); err != nil {
		printValidation(cmd.ErrOrStderr(), err)
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing integrators (theta0=%.1f°, L=%.2fm, dt=%.4fs, steps=%d)\n\n",
		cfg.ThetaDeg, cfg.Length, cfg.Dt, cfg.Steps)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tORDER\tFINAL θ\tENERGY DRIFT\tTIME")
	for _, name := range names {
		integ, err := integrators.Get(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		s := sim.New(physics.NewPendulum(simCfg.Length), integ)
		start := time.Now()
		result, err := s.Run(dynamo.State{Theta: simCfg.InitialAngle()}, simCfg.TimeStep, simCfg.Steps)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		last, _ := result.Trajectory.Last()
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.2e\t%v\n", name, integ.Info().Order, last.Theta, result.EnergyDrift, elapsed.Round(time.Microsecond))
	}
	return w.Flush()
}

// replay plots a CSV export.
func replay(cmd *cobra.Command, args []string) error {
	traj, err := loadTrajectory(args[0])
	if err != nil {
		return err
	}

	chart := viz.NewChart(traj)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d samples\n", args[0], len(traj))
	if err := viz.NewASCII().Draw(out, chart); err != nil {
		return err
	}
	if period, ok := analysis.ObservedPeriod(traj); ok {
		fmt.Fprintf(out, "periodo observado: %.4f s\n", period)
	}

	if pngOut != "" {
		if err := viz.NewPNG().Save(pngOut, chart); err != nil {
			return err
		}
		fmt.Fprintf(out, "png: %s\n", pngOut)
	}
	return nil
}

func loadTrajectory(path string) (dynamo.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	traj, err := export.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return traj, nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	path := "pendsim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, config.DefaultFile()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := session.New(cfg.Integrator)
	if err != nil {
		return err
	}
	return tui.Run(s, cfg.Simulation())
}
