package metrics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Amplitude is the largest |θ| seen during a run.
type Amplitude struct {
	name string
	max  float64
}

func NewAmplitude() *Amplitude {
	return &Amplitude{name: "amplitude"}
}

func (a *Amplitude) Name() string { return a.name }

func (a *Amplitude) Observe(x dynamo.State, t float64) {
	a.max = math.Max(a.max, math.Abs(x.Theta))
}

func (a *Amplitude) Value() float64 { return a.max }

func (a *Amplitude) Reset() { a.max = 0 }

// Defaults returns the metrics attached to every pendulum run.
func Defaults(pend dynamo.Hamiltonian) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(pend),
		NewEnergyDrift(pend),
		NewAmplitude(),
	}
}
