package analysis

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// ObservedPeriod estimates the oscillation period of θ from its sign
// changes. Successive crossings are half a period apart; the estimate
// averages every interval between the first and the last crossing. A
// crossing between two non-zero samples is interpolated linearly; one
// that lands on a run of exact zeros is placed at the middle of the run.
// ok is false when θ changes sign fewer than twice.
func ObservedPeriod(traj dynamo.Trajectory) (float64, bool) {
	var crossings []float64

	last := -1
	for i, s := range traj {
		if s.Theta == 0 {
			continue
		}
		if last >= 0 && (traj[last].Theta < 0) != (s.Theta < 0) {
			crossings = append(crossings, crossing(traj, last, i))
		}
		last = i
	}

	if len(crossings) < 2 {
		return 0, false
	}

	halfPeriod := (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1)
	return 2 * halfPeriod, true
}

// crossing locates the zero of θ between samples a and b, which have
// opposite signs and only zeros in between.
func crossing(traj dynamo.Trajectory, a, b int) float64 {
	if b-a > 1 {
		return (traj[a+1].T + traj[b-1].T) / 2
	}
	pa, pb := traj[a], traj[b]
	frac := pa.Theta / (pa.Theta - pb.Theta)
	return pa.T + frac*(pb.T-pa.T)
}

// SmallAngleDeviation is the largest |θ(t) - A·cos(ωt)| over the trajectory.
func SmallAngleDeviation(traj dynamo.Trajectory, p dynamo.Params) float64 {
	dev := 0.0
	for _, s := range traj {
		analytic := p.Amplitude * math.Cos(p.AngularFrequency*s.T)
		dev = math.Max(dev, math.Abs(s.Theta-analytic))
	}
	return dev
}

// DominantFrequency returns the strongest non-zero frequency of θ in Hz.
// Samples are assumed evenly spaced.
func DominantFrequency(traj dynamo.Trajectory) (float64, bool) {
	if len(traj) < 4 {
		return 0, false
	}
	dt := traj[1].T - traj[0].T
	if dt <= 0 {
		return 0, false
	}

	angles := traj.Angles()
	ps := PowerSpectrum(angles)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0, false
	}

	return float64(maxIdx) / (float64(nextPow2(len(angles))) * dt), true
}
