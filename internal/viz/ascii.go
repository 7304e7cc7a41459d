package viz

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
)

// ASCII plots both datasets as terminal line charts.
type ASCII struct {
	Height int
	Width  int
}

func NewASCII() ASCII {
	return ASCII{Height: 12, Width: 80}
}

func (a ASCII) Draw(w io.Writer, c *Chart) error {
	if err := drawable(c); err != nil {
		return err
	}

	caption := fmt.Sprintf("%s  (t = %s … %s s)", c.Title, c.Labels[0], c.Labels[len(c.Labels)-1])
	graph := asciigraph.PlotMany(
		[][]float64{c.Datasets[0].Data, c.Datasets[1].Data},
		asciigraph.Height(a.Height),
		asciigraph.Width(a.Width),
		asciigraph.Precision(4),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(caption),
	)

	_, err := fmt.Fprintf(w, "%s\n%s\n", graph, legend(c))
	return err
}

func legend(c *Chart) string {
	return fmt.Sprintf("  %s── %s%s   %s── %s%s",
		asciigraph.Blue, c.Datasets[0].Label, asciigraph.Default,
		asciigraph.Red, c.Datasets[1].Label, asciigraph.Default)
}
