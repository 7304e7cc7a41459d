package viz

import (
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/pendsim/internal/dynamo"
)

var ErrChartDestroyed = errors.New("viz: chart destroyed")

const (
	Title         = "Movimiento del Péndulo Simple"
	TimeLabel     = "Tiempo (s)"
	AngleLabel    = "Ángulo (rad)"
	VelocityLabel = "Velocidad Angular (rad/s)"
)

// Renderer draws a chart onto w.
type Renderer interface {
	Draw(w io.Writer, c *Chart) error
}

type Dataset struct {
	Label string
	Data  []float64
}

// Chart is the displayed form of a trajectory: time labels with 2 decimals
// and angle/velocity datasets rounded to 4. A chart is created once and
// then updated in place for every new run until it is destroyed.
type Chart struct {
	Title    string
	Labels   []string
	Times    []float64
	Datasets [2]Dataset

	revision  int
	destroyed bool
}

func NewChart(traj dynamo.Trajectory) *Chart {
	c := &Chart{
		Title: Title,
		Datasets: [2]Dataset{
			{Label: AngleLabel},
			{Label: VelocityLabel},
		},
	}
	c.fill(traj)
	return c
}

// Update replaces the displayed data with traj.
func (c *Chart) Update(traj dynamo.Trajectory) error {
	if c.destroyed {
		return ErrChartDestroyed
	}
	c.fill(traj)
	c.revision++
	return nil
}

// Destroy releases the chart data. It is safe to call more than once.
func (c *Chart) Destroy() {
	c.Labels = nil
	c.Times = nil
	c.Datasets[0].Data = nil
	c.Datasets[1].Data = nil
	c.destroyed = true
}

func (c *Chart) Destroyed() bool { return c.destroyed }

// Revision counts in-place updates since creation.
func (c *Chart) Revision() int { return c.revision }

func (c *Chart) Len() int { return len(c.Times) }

func (c *Chart) fill(traj dynamo.Trajectory) {
	c.Times = traj.Times()
	c.Labels = make([]string, len(traj))
	for i, t := range c.Times {
		c.Labels[i] = strconv.FormatFloat(t, 'f', 2, 64)
	}
	c.Datasets[0].Data = round4(traj.Angles())
	c.Datasets[1].Data = round4(traj.Velocities())
}

func round4(vals []float64) []float64 {
	for i, v := range vals {
		vals[i] = math.Round(v*1e4) / 1e4
	}
	return vals
}

func drawable(c *Chart) error {
	if c == nil || c.destroyed {
		return ErrChartDestroyed
	}
	if c.Len() == 0 {
		return dynamo.ErrNoData
	}
	return nil
}
