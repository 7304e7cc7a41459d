package session

import (
	"errors"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/export"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/metrics"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/sim"
	"github.com/san-kum/pendsim/internal/viz"
)

// NoDataNotice is shown when a download is requested before any run.
const NoDataNotice = "No hay datos para descargar. Realiza la simulación primero."

// Report is everything displayed after a successful run. Its trajectory
// is a copy; changing it does not affect later downloads.
type Report struct {
	Config     dynamo.Config
	Params     dynamo.Params
	Amplitude  string
	Frequency  string
	Period     string
	Solution   string
	Trajectory dynamo.Trajectory
	Metrics    map[string]float64
	Drift      float64
}

// Session owns the state of one user's simulations: the last trajectory
// and the chart displaying it. It is not safe for concurrent use.
type Session struct {
	ID         string
	Integrator string

	log        *logrus.Entry
	chart      *viz.Chart
	trajectory dynamo.Trajectory
	params     *dynamo.Params
	observers  []dynamo.Observer
	runs       int
}

// New creates a session stepping with the named integrator.
func New(integrator string) (*Session, error) {
	if _, err := integrators.Get(integrator); err != nil {
		return nil, err
	}
	if integrator == "" {
		integrator = integrators.Default
	}
	id := uuid.NewString()
	return &Session{
		ID:         id,
		Integrator: integrator,
		log:        logrus.WithField("session", id),
	}, nil
}

// Observe attaches o to every subsequent run.
func (s *Session) Observe(o dynamo.Observer) {
	s.observers = append(s.observers, o)
}

// Submit validates form input and runs it. On a validation error the
// previous results are left untouched.
func (s *Session) Submit(in config.Input) (*Report, error) {
	cfg, err := config.Parse(in)
	if err != nil {
		s.log.Debugf("rejected input: %v", err)
		return nil, err
	}
	return s.Run(cfg)
}

// Run simulates cfg, stores its trajectory and updates the chart in
// place, creating it on the first run.
func (s *Session) Run(cfg dynamo.Config) (*Report, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	integ, err := integrators.Get(s.Integrator)
	if err != nil {
		return nil, err
	}
	pend := physics.NewPendulum(cfg.Length)
	simulator := sim.New(pend, integ)
	for _, m := range metrics.Defaults(pend) {
		simulator.AddMetric(m)
	}
	for _, o := range s.observers {
		simulator.AddObserver(o)
	}

	theta := cfg.InitialAngle()
	s.log.Infof("run %d: theta0=%.4f rad, L=%.3f m, dt=%g s, steps=%d, integrator=%s",
		s.runs+1, theta, cfg.Length, cfg.TimeStep, cfg.Steps, s.Integrator)

	result, err := simulator.Run(dynamo.State{Theta: theta}, cfg.TimeStep, cfg.Steps)
	if err != nil {
		var simErr *dynamo.SimulationError
		if errors.As(err, &simErr) {
			s.log.Warnf("run aborted at step %d (t=%.4f)", simErr.Step, simErr.Time)
		}
		return nil, err
	}

	params := physics.Parameters(theta, cfg.Length)
	if err := s.show(result.Trajectory); err != nil {
		return nil, err
	}
	s.trajectory = result.Trajectory
	s.params = &params
	s.runs++

	s.log.Debugf("run %d complete: %d samples, energy drift %.3e", s.runs, len(result.Trajectory), result.EnergyDrift)

	return &Report{
		Config:     cfg,
		Params:     params,
		Amplitude:  viz.AmplitudeText(&params),
		Frequency:  viz.FrequencyText(&params),
		Period:     viz.PeriodText(&params),
		Solution:   viz.SolutionText(&params),
		Trajectory: slices.Clone(result.Trajectory),
		Metrics:    result.Metrics,
		Drift:      result.EnergyDrift,
	}, nil
}

func (s *Session) show(traj dynamo.Trajectory) error {
	if s.chart == nil {
		s.chart = viz.NewChart(traj)
		return nil
	}
	return s.chart.Update(traj)
}

// Reset destroys the chart and forgets the last trajectory. Field input
// is owned by the caller and is not touched.
func (s *Session) Reset() {
	if s.chart != nil {
		s.chart.Destroy()
		s.chart = nil
	}
	s.trajectory = nil
	s.params = nil
	s.log.Debug("session reset")
}

// Download writes the last trajectory as CSV. It returns
// dynamo.ErrNoData, writing nothing, when there is no trajectory.
func (s *Session) Download(w io.Writer) error {
	if len(s.trajectory) == 0 {
		s.log.Info(NoDataNotice)
		return dynamo.ErrNoData
	}
	return export.WriteCSV(w, s.trajectory)
}

// DownloadFile writes the last trajectory to path, or to
// export.DefaultFilename when path is empty.
func (s *Session) DownloadFile(path string) (string, error) {
	if path == "" {
		path = export.DefaultFilename
	}
	if len(s.trajectory) == 0 {
		s.log.Info(NoDataNotice)
		return "", dynamo.ErrNoData
	}
	if err := export.WriteFile(path, s.trajectory); err != nil {
		return "", err
	}
	s.log.Infof("wrote %d rows to %s", len(s.trajectory), path)
	return path, nil
}

// Chart returns the live chart, or nil when nothing is displayed.
func (s *Session) Chart() *viz.Chart { return s.chart }

// Trajectory returns a copy of the last trajectory.
func (s *Session) Trajectory() dynamo.Trajectory { return slices.Clone(s.trajectory) }

// Params returns the small-angle results of the last run, or nil.
func (s *Session) Params() *dynamo.Params { return s.params }

func (s *Session) Runs() int { return s.runs }
