// Package analysis inspects simulated trajectories.
//
// It compares the RK4 trajectory with the closed-form small-angle
// description:
//
//   - [ObservedPeriod]: period from interpolated zero crossings of θ
//   - [SmallAngleDeviation]: worst gap to θ0·cos(ωt)
//   - [DominantFrequency]: spectral peak of θ via [PowerSpectrum]
//
// # Example
//
//	T, ok := analysis.ObservedPeriod(traj)
//	if ok && math.Abs(T-params.Period) > 0.01 {
//	    // large-angle effects are visible
//	}
package analysis
