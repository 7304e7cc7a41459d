package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pendsim/internal/dynamo"
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444"))

	NoticeText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaa00")).
			Italic(true)
)

// Placeholder is shown for every value while no run is displayed.
const Placeholder = "-"

func AmplitudeText(p *dynamo.Params) string {
	if p == nil {
		return "Amplitud: " + Placeholder
	}
	return fmt.Sprintf("Amplitud: %.4f rad", p.Amplitude)
}

func FrequencyText(p *dynamo.Params) string {
	if p == nil {
		return "Frecuencia angular: " + Placeholder
	}
	return fmt.Sprintf("Frecuencia angular: %.4f rad/s", p.AngularFrequency)
}

func PeriodText(p *dynamo.Params) string {
	if p == nil {
		return "Periodo: " + Placeholder
	}
	return fmt.Sprintf("Periodo: %.4f s", p.Period)
}

func SolutionText(p *dynamo.Params) string {
	if p == nil {
		return "Ecuación solución: " + Placeholder
	}
	return "Ecuación solución: " + p.Solution()
}

// Panel renders the results box; a nil p shows placeholders.
func Panel(p *dynamo.Params) string {
	lines := []string{
		TitleStyle.Render(Title),
		MetricValue.Render(AmplitudeText(p)),
		MetricValue.Render(FrequencyText(p)),
		MetricValue.Render(PeriodText(p)),
		MetricLabel.Render(SolutionText(p)),
	}
	return PanelStyle.Render(strings.Join(lines, "\n"))
}
