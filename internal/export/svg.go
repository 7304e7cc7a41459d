package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// PhaseSVG draws the (θ, ω) phase portrait of a trajectory as an SVG path.
func PhaseSVG(w io.Writer, traj dynamo.Trajectory, width, height int, stroke string) error {
	if len(traj) < 2 {
		return dynamo.ErrNoData
	}

	minX, maxX := traj[0].Theta, traj[0].Theta
	minY, maxY := traj[0].Omega, traj[0].Omega
	for _, s := range traj {
		minX, maxX = min(minX, s.Theta), max(maxX, s.Theta)
		minY, maxY = min(minY, s.Omega), max(maxY, s.Omega)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke)

	for i, s := range traj {
		x := (s.Theta - minX) / rangeX * float64(width)
		y := float64(height) - (s.Omega-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString("\"/>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
