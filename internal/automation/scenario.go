package automation

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/export"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/sim"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run of a scenario. Omitted fields take the
// config defaults; a non-empty Output receives the CSV export.
type ScenarioStep struct {
	config.File `yaml:",inline"`
}

// Outcome is the result of one scenario step.
type Outcome struct {
	Step        int
	Output      string
	Params      dynamo.Params
	Result      *dynamo.Result
	Period      float64
	HasPeriod   bool
	ElapsedTime time.Duration
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var raw struct {
		Name        string      `yaml:"name"`
		Description string      `yaml:"description"`
		Steps       []yaml.Node `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	scenario := &Scenario{Name: raw.Name, Description: raw.Description}
	for i, node := range raw.Steps {
		step := ScenarioStep{File: *config.DefaultFile()}
		if err := node.Decode(&step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		scenario.Steps = append(scenario.Steps, step)
	}
	return scenario, nil
}

// RunScenario executes all steps in order, exporting the steps that name
// an output file. Results of completed steps are returned along with the
// first error.
func RunScenario(ctx context.Context, scenario *Scenario) ([]Outcome, error) {
	results := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logrus.Infof("scenario %s: step %d/%d (theta0=%.1f°, L=%.2f m)", scenario.Name, i+1, len(scenario.Steps), step.ThetaDeg, step.Length)

		cfg := step.Simulation()
		if err := config.Validate(cfg); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		start := time.Now()
		result, err := runOnce(cfg, step.Integrator)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := Outcome{
			Step:        i + 1,
			Params:      physics.Parameters(cfg.InitialAngle(), cfg.Length),
			Result:      result,
			ElapsedTime: time.Since(start),
		}
		out.Period, out.HasPeriod = analysis.ObservedPeriod(result.Trajectory)

		if step.Output != "" {
			if err := export.WriteFile(step.Output, result.Trajectory); err != nil {
				return results, fmt.Errorf("step %d export: %w", i+1, err)
			}
			out.Output = step.Output
		}

		results = append(results, out)
	}

	return results, nil
}

func runOnce(cfg dynamo.Config, integrator string) (*dynamo.Result, error) {
	integ, err := integrators.Get(integrator)
	if err != nil {
		return nil, err
	}
	s := sim.New(physics.NewPendulum(cfg.Length), integ)
	return s.Run(dynamo.State{Theta: cfg.InitialAngle()}, cfg.TimeStep, cfg.Steps)
}

// Sweep parameters.
const (
	SweepTheta  = "theta"
	SweepLength = "length"
)

// ParameterSweep runs the same configuration across evenly spaced values
// of one parameter: the initial angle in degrees or the length.
type ParameterSweep struct {
	Base       dynamo.Config
	Integrator string
	ParamName  string
	ParamMin   float64
	ParamMax   float64
	NumSteps   int
}

// SweepResult compares the simulated period with the small-angle one.
type SweepResult struct {
	ParamValue       float64
	Period           float64
	SmallAnglePeriod float64
	PeriodRatio      float64
	EnergyDrift      float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points: %w", dynamo.ErrParameterBounds)
	}
	if sweep.ParamName != SweepTheta && sweep.ParamName != SweepLength {
		return nil, fmt.Errorf("unknown sweep param: %s", sweep.ParamName)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base
		switch sweep.ParamName {
		case SweepTheta:
			cfg.InitialAngleDeg = paramVal
		case SweepLength:
			cfg.Length = paramVal
		}
		if err := config.Validate(cfg); err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		result, err := runOnce(cfg, sweep.Integrator)
		if err != nil {
			return results, err
		}

		params := physics.Parameters(cfg.InitialAngle(), cfg.Length)
		period, ok := analysis.ObservedPeriod(result.Trajectory)
		if !ok {
			period = math.NaN()
		}

		results = append(results, SweepResult{
			ParamValue:       paramVal,
			Period:           period,
			SmallAnglePeriod: params.Period,
			PeriodRatio:      period / params.Period,
			EnergyDrift:      result.EnergyDrift,
		})

		logrus.Debugf("sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
