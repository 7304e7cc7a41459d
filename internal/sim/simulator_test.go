package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

type decay struct{}

func (d *decay) Derive(x dynamo.State) dynamo.State {
	return dynamo.State{Theta: -x.Theta}
}

type blowUp struct{ after int }

func (b *blowUp) Step(sys dynamo.System, x dynamo.State, dt float64) dynamo.State {
	b.after--
	if b.after < 0 {
		return dynamo.State{Theta: math.NaN()}
	}
	return x
}

func TestSimulatorRun(t *testing.T) {
	s := New(&decay{}, integrators.NewEuler())

	result, err := s.Run(dynamo.State{Theta: 1.0}, 0.1, 10)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Trajectory) != 10 {
		t.Errorf("expected 10 samples, got %d", len(result.Trajectory))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps taken, got %d", result.StepsTaken)
	}

	last, _ := result.Trajectory.Last()
	expected := math.Exp(-1.0)
	if math.Abs(last.Theta-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, last.Theta)
	}
}

func TestSimulatorSampleTimes(t *testing.T) {
	tests := []struct {
		steps int
		dt    float64
	}{
		{1, 0.01},
		{2, 0.01},
		{37, 0.005},
		{1000, 0.02},
	}

	for _, tt := range tests {
		traj := Simulate(tt.steps, 0.3, 1.5, tt.dt)
		if len(traj) != tt.steps {
			t.Fatalf("steps=%d: expected %d samples, got %d", tt.steps, tt.steps, len(traj))
		}
		for i, s := range traj {
			want := float64(i+1) * tt.dt
			if math.Abs(s.T-want) > 1e-9 {
				t.Fatalf("steps=%d: sample %d has t=%.12f, want %.12f", tt.steps, i, s.T, want)
			}
			if i > 0 && s.T <= traj[i-1].T {
				t.Fatalf("time not strictly increasing at sample %d", i)
			}
		}
	}
}

func TestSimulateTwoSteps(t *testing.T) {
	traj := Simulate(2, 0.1745, 1.0, 0.01)
	if len(traj) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(traj))
	}

	theta, omega := 0.1745, 0.0
	times := []float64{0.01, 0.02}
	for i, s := range traj {
		theta, omega = rk4ByHand(theta, omega, 0.01, 1.0)

		if math.Abs(s.T-times[i]) > 1e-12 {
			t.Errorf("sample %d: t=%f, want %f", i, s.T, times[i])
		}
		if math.Abs(s.Theta-theta) > 1e-12 || math.Abs(s.Omega-omega) > 1e-12 {
			t.Errorf("sample %d: got (%.12f, %.12f), want (%.12f, %.12f)", i, s.Theta, s.Omega, theta, omega)
		}
	}

	if traj[0].Omega >= 0 || traj[1].Omega >= traj[0].Omega {
		t.Errorf("pendulum released from rest should accelerate toward equilibrium: %+v", traj)
	}
}

func rk4ByHand(theta, omega, dt, length float64) (float64, float64) {
	acc := func(th float64) float64 { return -(dynamo.Gravity / length) * math.Sin(th) }

	k1t, k1w := dt*omega, dt*acc(theta)
	k2t, k2w := dt*(omega+0.5*k1w), dt*acc(theta+0.5*k1t)
	k3t, k3w := dt*(omega+0.5*k2w), dt*acc(theta+0.5*k2t)
	k4t, k4w := dt*(omega+k3w), dt*acc(theta+k3t)

	return theta + (k1t+2*k2t+2*k3t+k4t)/6, omega + (k1w+2*k2w+2*k3w+k4w)/6
}

func TestEnergyInvariant(t *testing.T) {
	pend := physics.NewPendulum(1.0)
	theta0 := 10 * math.Pi / 180
	traj := Simulate(1000, theta0, 1.0, 0.01)

	e0 := pend.Energy(dynamo.State{Theta: theta0})
	for i, s := range traj {
		e := pend.Energy(s.State())
		if math.Abs(e-e0) > 1e-5*math.Abs(e0) {
			t.Fatalf("sample %d: energy %.10f drifted from %.10f", i, e, e0)
		}
	}
}

func TestSimulatorEnergyDrift(t *testing.T) {
	s := New(physics.NewPendulum(2.0), integrators.NewRK4())
	result, err := s.Run(dynamo.State{Theta: 0.5}, 0.01, 500)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.EnergyDrift > 1e-6 {
		t.Errorf("rk4 energy drift too high: %e", result.EnergyDrift)
	}

	euler := New(physics.NewPendulum(2.0), integrators.NewEuler())
	eulerResult, err := euler.Run(dynamo.State{Theta: 0.5}, 0.01, 500)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if eulerResult.EnergyDrift <= result.EnergyDrift {
		t.Errorf("expected euler drift %e above rk4 drift %e", eulerResult.EnergyDrift, result.EnergyDrift)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(&decay{}, integrators.NewRK4())

	tests := []struct {
		name  string
		dt    float64
		steps int
	}{
		{"zero dt", 0, 10},
		{"negative dt", -0.1, 10},
		{"NaN dt", math.NaN(), 10},
		{"zero steps", 0.1, 0},
		{"negative steps", 0.1, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(dynamo.State{Theta: 1.0}, tt.dt, tt.steps)
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}

	if traj := Simulate(0, 0.1, 1.0, 0.01); len(traj) != 0 {
		t.Errorf("expected empty trajectory, got %d samples", len(traj))
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	s := New(&decay{}, &blowUp{after: 3})

	result, err := s.Run(dynamo.State{Theta: 1.0}, 0.1, 10)

	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Error("expected error to wrap ErrInvalidState")
	}
	if simErr.Step != 3 {
		t.Errorf("expected failure at step 3, got %d", simErr.Step)
	}
	if len(result.Trajectory) != 3 {
		t.Errorf("expected 3 samples before failure, got %d", len(result.Trajectory))
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (m *testMetric) Name() string { return "test" }
func (m *testMetric) Observe(x dynamo.State, t float64) {
	m.count++
	m.sum += x.Theta
}
func (m *testMetric) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
func (m *testMetric) Reset() {
	m.count = 0
	m.sum = 0
}

type recorder struct{ samples []dynamo.Sample }

func (r *recorder) OnStep(s dynamo.Sample) { r.samples = append(r.samples, s) }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	s := New(&decay{}, integrators.NewRK4())

	metric := &testMetric{}
	rec := &recorder{}
	s.AddMetric(metric)
	s.AddObserver(rec)

	result, err := s.Run(dynamo.State{Theta: 1.0}, 0.1, 10)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if len(rec.samples) != 10 || rec.samples[9] != result.Trajectory[9] {
		t.Errorf("observer did not see every sample in order")
	}

	if _, err := s.Run(dynamo.State{Theta: 1.0}, 0.1, 4); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if metric.count != 4 {
		t.Errorf("metrics should reset between runs, got %d observations", metric.count)
	}
}
