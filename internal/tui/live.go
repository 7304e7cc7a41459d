package tui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/pendsim/internal/dynamo"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"

	trailLen = 40
)

type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = make([]rune, w)
	}
	c := &canvas{w: w, h: h, cells: cells}
	c.clear()
	return c
}

func (c *canvas) clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
}

func (c *canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.w && y >= 0 && y < c.h {
		c.cells[y][x] = r
	}
}

func (c *canvas) line(x1, y1, x2, y2 int, r rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *canvas) String() string {
	rows := make([]string, len(c.cells))
	for i, row := range c.cells {
		rows[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(rows, "\n")
}

// drawPendulum draws the rod and bob at the last angle of thetas, with
// earlier angles as a fading trail. The pivot sits at the top center.
func (c *canvas) drawPendulum(thetas []float64) {
	if len(thetas) == 0 {
		return
	}
	px, py := c.w/2, 0
	length := float64(c.h - 2)
	bob := func(theta float64) (int, int) {
		// cells are about twice as tall as wide
		return px + int(math.Round(2*length*math.Sin(theta))), py + int(math.Round(length*math.Cos(theta)))
	}

	start := max(0, len(thetas)-trailLen)
	trail := thetas[start : len(thetas)-1]
	for i, th := range trail {
		x, y := bob(th)
		if i < len(trail)/2 {
			c.set(x, y, '·')
		} else {
			c.set(x, y, '∘')
		}
	}

	bx, by := bob(thetas[len(thetas)-1])
	c.line(px, py, bx, by, '│')
	c.set(px, py, '▼')
	c.set(bx, by, '●')
}

func pendulum(traj dynamo.Trajectory, w, h int) string {
	c := newCanvas(w, h)
	c.drawPendulum(traj.Angles())
	return c.String()
}

// Live animates a run as it is computed. It is attached to a simulator
// as an observer and redraws every Stride samples.
type Live struct {
	Stride int

	out    io.Writer
	canvas *canvas
	thetas []float64
	seen   int
}

func NewLive(out io.Writer, stride int) *Live {
	if stride < 1 {
		stride = 1
	}
	return &Live{
		Stride: stride,
		out:    out,
		canvas: newCanvas(61, 16),
		thetas: make([]float64, 0, trailLen),
	}
}

func (l *Live) OnStep(s dynamo.Sample) {
	l.thetas = append(l.thetas, s.Theta)
	if len(l.thetas) > trailLen {
		l.thetas = l.thetas[1:]
	}
	l.seen++
	if l.seen%l.Stride != 0 {
		return
	}
	l.render(s)
}

func (l *Live) render(s dynamo.Sample) {
	l.canvas.clear()
	l.canvas.drawPendulum(l.thetas)

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs\n", cyan.Render("péndulo"), s.T))
	b.WriteString("  " + dimmer.Render(strings.Repeat("─", l.canvas.w)) + "\n")
	b.WriteString(indent(l.canvas.String(), "  ") + "\n")
	b.WriteString("  " + dimmer.Render(strings.Repeat("─", l.canvas.w)) + "\n")
	b.WriteString(fmt.Sprintf("  %s%s  %s%s\n",
		dim.Render("θ="), white.Render(fmt.Sprintf("%.4f", s.Theta)),
		dim.Render("ω="), white.Render(fmt.Sprintf("%.4f", s.Omega))))

	fmt.Fprint(l.out, b.String())
}

// Frames returns the number of frames drawn so far.
func (l *Live) Frames() int { return l.seen / l.Stride }

func (l *Live) Start() { fmt.Fprint(l.out, hideCursor) }
func (l *Live) Stop()  { fmt.Fprint(l.out, showCursor) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
