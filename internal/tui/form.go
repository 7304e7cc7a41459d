package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/export"
	"github.com/san-kum/pendsim/internal/session"
	"github.com/san-kum/pendsim/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type field struct {
	key   string
	label string
	value string
}

// Form is the bubbletea model of the simulation form.
type Form struct {
	session *session.Session
	fields  []field
	cursor  int

	errs    map[string]string
	report  *session.Report
	status  string
	notice  string
	outPath string

	width  int
	height int
}

// NewForm returns the form driving s. Fields start from cfg.
func NewForm(s *session.Session, cfg dynamo.Config) *Form {
	in := config.FromConfig(cfg)
	return &Form{
		session: s,
		fields: []field{
			{key: config.FieldTheta, label: "Ángulo inicial (°)", value: in.Angle},
			{key: config.FieldLength, label: "Longitud (m)", value: in.Length},
			{key: config.FieldDt, label: "Paso de tiempo (s)", value: in.TimeStep},
			{key: config.FieldSteps, label: "Número de pasos", value: in.Steps},
		},
		errs:    map[string]string{},
		outPath: export.DefaultFilename,
		width:   100,
		height:  40,
	}
}

func (m Form) Init() tea.Cmd { return nil }

func (m Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Form) handleKey(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "tab":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "enter":
		m.submit()
	case "r":
		m.reset()
	case "d":
		m.download()
	case "backspace":
		v := m.fields[m.cursor].value
		if len(v) > 0 {
			m.fields[m.cursor].value = v[:len(v)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				m.fields[m.cursor].value += string(c)
			}
		}
	}
	return m, nil
}

func (m *Form) input() config.Input {
	return config.Input{
		Angle:    m.fields[0].value,
		Length:   m.fields[1].value,
		TimeStep: m.fields[2].value,
		Steps:    m.fields[3].value,
	}
}

func (m *Form) submit() {
	m.errs = map[string]string{}
	m.notice = ""

	report, err := m.session.Submit(m.input())
	var verr *dynamo.ValidationError
	switch {
	case errors.As(err, &verr):
		for _, f := range verr.Fields {
			m.errs[f.Field] = f.Message
		}
		m.status = ""
		return
	case err != nil:
		m.status = err.Error()
		return
	}
	m.report = report
	m.status = fmt.Sprintf("%d pasos simulados", len(report.Trajectory))
}

func (m *Form) reset() {
	m.session.Reset()
	m.report = nil
	m.errs = map[string]string{}
	m.status = ""
	m.notice = ""
}

func (m *Form) download() {
	path, err := m.session.DownloadFile(m.outPath)
	switch {
	case errors.Is(err, dynamo.ErrNoData):
		m.notice = session.NoDataNotice
	case err != nil:
		m.notice = err.Error()
	default:
		m.notice = ""
		m.status = "CSV guardado en " + path
	}
}

func (m Form) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("        " + cyan.Render(viz.Title) + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	for i, f := range m.fields {
		val := fmt.Sprintf("%-10s", f.value)
		if i == m.cursor {
			val = fmt.Sprintf("%-10s", f.value+"▋")
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-20s", f.label)) + magenta.Render(val))
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-20s", f.label)) + dim.Render(val))
		}
		if msg, ok := m.errs[f.key]; ok {
			b.WriteString("  " + viz.ErrorText.Render(msg))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var params *dynamo.Params
	if m.report != nil {
		params = &m.report.Params
	}
	b.WriteString(indent(viz.Panel(params), "    ") + "\n")

	if chart := m.session.Chart(); chart != nil {
		var cb strings.Builder
		width := m.width - 20
		if width < 40 {
			width = 40
		}
		if err := (viz.ASCII{Height: 10, Width: width}).Draw(&cb, chart); err == nil {
			b.WriteString("\n" + indent(strings.TrimRight(cb.String(), "\n"), "    ") + "\n")
		}
		if m.report != nil {
			b.WriteString("\n" + indent(pendulum(m.report.Trajectory, 31, 9), "    ") + "\n")
			b.WriteString(fmt.Sprintf("    %s %s\n", dim.Render("θ"), cyan.Render(sparkline(m.report.Trajectory.Angles(), 40))))
		}
	}

	if m.status != "" {
		b.WriteString("\n    " + green.Render("● ") + dim.Render(m.status) + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n    " + viz.NoticeText.Render(m.notice) + "\n")
	}

	b.WriteString("\n" + dim.Render("      ↑↓ campo   enter simular   r reiniciar   d descargar   q salir") + "\n")
	return b.String()
}

func indent(s, pad string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		idx = max(0, min(idx, 7))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// Run starts the form in the alternate screen.
func Run(s *session.Session, cfg dynamo.Config) error {
	p := tea.NewProgram(NewForm(s, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
