package automation

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

var ErrNoStepWithinTolerance = errors.New("automation: no time step meets the drift tolerance")

// StepSearch evaluates every candidate time step over the same simulated
// duration and keeps the coarsest one whose energy drift is within Tol.
type StepSearch struct {
	Base       dynamo.Config
	Integrator string
	Duration   float64
	Tol        float64
	Candidates []float64
}

// StepScore is the drift measured for one candidate.
type StepScore struct {
	Dt    float64
	Steps int
	Drift float64
}

// Search returns the chosen step and the score of every candidate, in
// the order given.
func (g *StepSearch) Search(ctx context.Context) (StepScore, []StepScore, error) {
	best := StepScore{Dt: math.Inf(-1)}
	scores := make([]StepScore, 0, len(g.Candidates))

	for _, dt := range g.Candidates {
		if err := ctx.Err(); err != nil {
			return StepScore{}, scores, err
		}

		cfg := g.Base
		cfg.TimeStep = dt
		cfg.Steps = int(math.Ceil(g.Duration/dt - 1e-9))
		if dt <= 0 || cfg.Steps < 1 {
			continue
		}

		result, err := runOnce(cfg, g.Integrator)
		if err != nil {
			var simErr *dynamo.SimulationError
			if errors.As(err, &simErr) {
				scores = append(scores, StepScore{Dt: dt, Steps: cfg.Steps, Drift: math.Inf(1)})
				continue
			}
			return StepScore{}, scores, err
		}

		score := StepScore{Dt: dt, Steps: cfg.Steps, Drift: result.EnergyDrift}
		scores = append(scores, score)
		if score.Drift <= g.Tol && dt > best.Dt {
			best = score
		}
	}

	if math.IsInf(best.Dt, -1) {
		return StepScore{}, scores, ErrNoStepWithinTolerance
	}
	return best, scores, nil
}
