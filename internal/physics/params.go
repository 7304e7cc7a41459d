package physics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Parameters returns the small-angle amplitude, angular frequency and
// period for an initial displacement theta0 (radians) and a length L > 0.
// They describe θ(t) ≈ θ0·cos(ωt) and are not derived from a simulated
// trajectory.
func Parameters(theta0, length float64) dynamo.Params {
	omega := math.Sqrt(dynamo.Gravity / length)
	return dynamo.Params{
		Amplitude:        theta0,
		AngularFrequency: omega,
		Period:           2 * math.Pi / omega,
	}
}
