package analysis

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/export"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/sim"
)

func cosine(amplitude, w, dt float64, n int) dynamo.Trajectory {
	traj := make(dynamo.Trajectory, n)
	for i := range traj {
		t := float64(i+1) * dt
		traj[i] = dynamo.Sample{T: t, Theta: amplitude * math.Cos(w*t), Omega: -amplitude * w * math.Sin(w*t)}
	}
	return traj
}

func TestObservedPeriod_Cosine(t *testing.T) {
	traj := cosine(0.2, 2*math.Pi/1.5, 0.001, 6000)

	period, ok := ObservedPeriod(traj)
	require.True(t, ok)
	assert.InDelta(t, 1.5, period, 1e-4)
}

func TestObservedPeriod_ExactZeroSamples(t *testing.T) {
	// Samples at t = 1, 3, 5, ... fall on the zeros of a period-4 cosine.
	traj := cosine(1, math.Pi/2, 0.5, 40)
	zeros := 0
	for i := range traj {
		if math.Abs(traj[i].Theta) < 1e-9 {
			traj[i].Theta = 0
			zeros++
		}
	}
	require.Greater(t, zeros, 5)

	period, ok := ObservedPeriod(traj)
	require.True(t, ok)
	assert.InDelta(t, 4, period, 1e-9)
}

func TestObservedPeriod_ZeroRun(t *testing.T) {
	traj := dynamo.Trajectory{
		{T: 1, Theta: 1}, {T: 2, Theta: 0}, {T: 3, Theta: 0}, {T: 4, Theta: -1},
		{T: 5, Theta: 0}, {T: 6, Theta: 0}, {T: 7, Theta: 0}, {T: 8, Theta: 1},
		{T: 9, Theta: 0}, {T: 10, Theta: 1},
	}

	period, ok := ObservedPeriod(traj)
	require.True(t, ok)
	// crossings at 2.5 and 6; touching zero at t=9 is not a crossing
	assert.InDelta(t, 7, period, 1e-12)
}

func TestObservedPeriod_RoundedExport(t *testing.T) {
	theta0 := 1 * math.Pi / 180
	params := physics.Parameters(theta0, 1.0)
	direct := sim.Simulate(5000, theta0, 1.0, 0.001)

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, direct))
	replayed, err := export.ReadCSV(&buf)
	require.NoError(t, err)

	zeros := 0
	for _, s := range replayed {
		if s.Theta == 0 {
			zeros++
		}
	}
	require.Greater(t, zeros, 0, "4-decimal rounding should produce exact zero samples")

	want, ok := ObservedPeriod(direct)
	require.True(t, ok)

	period, ok := ObservedPeriod(replayed)
	require.True(t, ok)
	assert.InDelta(t, want, period, 0.005)
	assert.InDelta(t, params.Period, period, 0.005)
}

func TestObservedPeriod_TooShort(t *testing.T) {
	_, ok := ObservedPeriod(cosine(0.2, 1, 0.01, 10))
	assert.False(t, ok)

	_, ok = ObservedPeriod(nil)
	assert.False(t, ok)
}

func TestObservedPeriod_MatchesSmallAngle(t *testing.T) {
	theta0 := 5 * math.Pi / 180
	params := physics.Parameters(theta0, 1.0)
	traj := sim.Simulate(2000, theta0, 1.0, 0.01)

	period, ok := ObservedPeriod(traj)
	require.True(t, ok)
	assert.InDelta(t, params.Period, period, 0.005)
}

func TestObservedPeriod_LargeAngleIsLonger(t *testing.T) {
	theta0 := 90 * math.Pi / 180
	params := physics.Parameters(theta0, 1.0)
	traj := sim.Simulate(3000, theta0, 1.0, 0.01)

	period, ok := ObservedPeriod(traj)
	require.True(t, ok)
	// T(90°) ≈ 1.18·T0
	assert.InDelta(t, 1.18*params.Period, period, 0.02)
}

func TestSmallAngleDeviation(t *testing.T) {
	params := dynamo.Params{Amplitude: 0.1, AngularFrequency: 2}
	exact := cosine(0.1, 2, 0.01, 300)
	assert.InDelta(t, 0, SmallAngleDeviation(exact, params), 1e-12)

	shifted := cosine(0.1, 2, 0.01, 300)
	shifted[42].Theta += 0.03
	assert.InDelta(t, 0.03, SmallAngleDeviation(shifted, params), 1e-12)
}

func TestDominantFrequency(t *testing.T) {
	theta0 := 0.1
	params := physics.Parameters(theta0, 1.0)
	traj := sim.Simulate(2000, theta0, 1.0, 0.01)

	freq, ok := DominantFrequency(traj)
	require.True(t, ok)

	resolution := 1 / (2048 * 0.01)
	assert.InDelta(t, 1/params.Period, freq, resolution)
}

func TestPowerSpectrum_Length(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 100))
	assert.Len(t, ps, 64)
}

func TestFFT(t *testing.T) {
	impulse := FFT([]float64{1, 0, 0, 0, 0, 0, 0, 0})
	require.Len(t, impulse, 8)
	for k, v := range impulse {
		assert.InDelta(t, 1, real(v), 1e-12, "bin %d", k)
		assert.InDelta(t, 0, imag(v), 1e-12, "bin %d", k)
	}

	const n, bin = 64, 5
	wave := make([]float64, n)
	for i := range wave {
		wave[i] = math.Cos(2 * math.Pi * bin * float64(i) / n)
	}
	ps := PowerSpectrum(wave)
	for k, p := range ps {
		if k == bin {
			assert.InDelta(t, (n/2)*(n/2), p, 1e-6)
		} else {
			assert.InDelta(t, 0, p, 1e-6, "bin %d", k)
		}
	}

	assert.Len(t, FFT([]float64{1, 2, 3}), 4, "input is padded to a power of two")
}
