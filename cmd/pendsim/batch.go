package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/automation"
)

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Fprintf(out, "%s\n", scenario.Description)
	}
	fmt.Fprintln(out)

	outcomes, runErr := automation.RunScenario(cmd.Context(), scenario)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tAMPLITUDE\tT0\tT OBS\tDRIFT\tOUTPUT")
	for _, o := range outcomes {
		observed := "-"
		if o.HasPeriod {
			observed = fmt.Sprintf("%.4fs", o.Period)
		}
		output := o.Output
		if output == "" {
			output = "-"
		}
		fmt.Fprintf(w, "%d\t%.4f rad\t%.4fs\t%s\t%.2e\t%s\n",
			o.Step, o.Params.Amplitude, o.Params.Period, observed, o.Result.EnergyDrift, output)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:       cfg.Simulation(),
		Integrator: cfg.Integrator,
		ParamName:  sweepParam,
		ParamMin:   sweepFrom,
		ParamMax:   sweepTo,
		NumSteps:   sweepN,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep)
	if err != nil {
		printValidation(cmd.ErrOrStderr(), err)
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tT OBS\tT0\tT/T0\tDRIFT\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4fs\t%.4fs\t%.4f\t%.2e\n", r.ParamValue, r.Period, r.SmallAnglePeriod, r.PeriodRatio, r.EnergyDrift)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	search := &automation.StepSearch{
		Base:       cfg.Simulation(),
		Integrator: cfg.Integrator,
		Duration:   tuneDuration,
		Tol:        tuneTol,
		Candidates: tuneSteps,
	}
	best, scores, err := search.Search(cmd.Context())

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tDRIFT")
	for _, s := range scores {
		fmt.Fprintf(w, "%g\t%d\t%.2e\n", s.Dt, s.Steps, s.Drift)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\ndt = %g s (%d steps, drift %.2e <= %.0e)\n", best.Dt, best.Steps, best.Drift, tuneTol)
	return nil
}
