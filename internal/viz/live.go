package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gassim/internal/config"
	"github.com/san-kum/gassim/internal/gas"
	"github.com/san-kum/gassim/internal/metrics"
)

const (
	canvasCols    = 72
	canvasRows    = 30
	frameInterval = time.Second / 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(13)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

type TickMsg time.Time

// Model is the live terminal view: it owns the accumulator loop and
// draws bodies at lag-extrapolated positions each frame.
type Model struct {
	cfg    *config.Config
	loop   *gas.Loop
	canvas *Canvas

	last      time.Time
	paused    bool
	showStats bool
}

func NewModel(cfg *config.Config) (Model, error) {
	sim, err := gas.New(cfg.World(), cfg.Bodies, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return Model{}, err
	}
	return Model{
		cfg:       cfg,
		loop:      gas.NewLoop(sim),
		canvas:    NewCanvas(canvasCols, canvasRows),
		showStats: true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "s":
			m.showStats = !m.showStats
		case "r":
			if next, err := NewModel(m.cfg); err == nil {
				return next, nil
			}
		}
	case TickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() && !m.paused {
			elapsed := float64(now.Sub(m.last)) / float64(time.Millisecond)
			m.loop.Frame(elapsed)
		}
		m.last = now
		return m, tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	m.draw()

	view := canvasStyle.Render(m.canvas.String())
	if m.showStats {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, statsStyle.Render(m.statsView()))
	}

	help := "space pause · r reset · s stats · q quit"
	return headerStyle.Render("IDEAL GAS") + "\n" + view + helpStyle.Render(help) + "\n"
}

// draw paints every body at its interpolated position.
func (m Model) draw() {
	sim := m.loop.Sim()
	w := sim.World()

	m.canvas.Clear()
	m.canvas.Border()

	sx := float64(m.canvas.DotWidth()) / w.Width
	sy := float64(m.canvas.DotHeight()) / w.Height
	r := int(w.Radius * sy)
	if r < 1 {
		r = 1
	}

	lag := m.loop.Lag()
	for i := 0; i < sim.Len(); i++ {
		p := sim.Extrapolate(i, lag)
		m.canvas.FillCircle(int(p.X*sx), int(p.Y*sy), r)
	}
}

func (m Model) statsView() string {
	sim := m.loop.Sim()
	st := sim.Stats()

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("STATS") + "\n")
	s.WriteString(row("bodies", fmt.Sprintf("%d", sim.Len())))
	s.WriteString(row("ticks", fmt.Sprintf("%d", st.Ticks)))
	s.WriteString(row("collisions", fmt.Sprintf("%d", st.Collisions)))
	s.WriteString(row("wall bounces", fmt.Sprintf("%d", st.WallBounces)))
	s.WriteString(row("kinetic", fmt.Sprintf("%.5f", metrics.Kinetic(sim.Snapshot()))))
	s.WriteString(row("lag", fmt.Sprintf("%.1fms", m.loop.Lag())))
	if m.paused {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n")
	}
	return s.String()
}

// Run starts the live view and blocks until the user quits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
