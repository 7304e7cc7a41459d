package viz

import (
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var seriesColors = [2]color.RGBA{
	{R: 75, G: 192, B: 192, A: 255},
	{R: 255, G: 99, B: 132, A: 255},
}

// PNG renders the chart as a PNG image.
type PNG struct {
	Width  vg.Length
	Height vg.Length
}

func NewPNG() PNG {
	return PNG{Width: 8 * vg.Inch, Height: 4 * vg.Inch}
}

func (p PNG) Draw(w io.Writer, c *Chart) error {
	if err := drawable(c); err != nil {
		return err
	}

	plt := plot.New()
	plt.Title.Text = c.Title
	plt.X.Label.Text = TimeLabel
	plt.Legend.Top = true

	for i, ds := range c.Datasets {
		pts := make(plotter.XYs, len(ds.Data))
		for j, v := range ds.Data {
			pts[j].X = c.Times[j]
			pts[j].Y = v
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = seriesColors[i]
		line.Width = vg.Points(1.5)

		plt.Add(line)
		plt.Legend.Add(ds.Label, line)
	}
	plt.Add(plotter.NewGrid())

	wt, err := plt.WriterTo(p.Width, p.Height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes the PNG rendering of c to path.
func (p PNG) Save(path string, c *Chart) error {
	if err := drawable(c); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.Draw(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
