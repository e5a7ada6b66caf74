package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	defaultFPS      = 60
)

type TickMsg time.Time

type Options struct {
	Title string
	Dt    float64
	FPS   int
}

// Model steps a System once per tick and draws it.
type Model struct {
	sys     *physics.System
	initial *physics.System
	title   string
	dt      float64
	fps     int
	canvas  *Canvas
	proj    Projection
	running bool
	energy  []float64
}

// NewModel takes ownership of sys. A clone is kept for reset.
func NewModel(sys *physics.System, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if !(opts.Dt > 0) {
		opts.Dt = 1 / float64(opts.FPS)
	}
	canvas := NewCanvas(width, height)
	m := Model{
		sys:     sys,
		initial: sys.Clone(),
		title:   opts.Title,
		dt:      opts.Dt,
		fps:     opts.FPS,
		canvas:  canvas,
		proj:    FitProjection(sys, canvas.SubWidth(), canvas.SubHeight()),
		running: true,
		energy:  make([]float64, 0, historyCapacity),
	}
	m.recordEnergy()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "+", "=":
			m.proj.ZoomIn()
		case "-", "_":
			m.proj.ZoomOut()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.sys.Step(m.dt)
	m.recordEnergy()
}

func (m *Model) recordEnergy() {
	e := metrics.TotalEnergy(m.sys)
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return
	}
	m.energy = append(m.energy, e)
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

// reset restores the system captured at construction.
func (m *Model) reset() {
	m.sys = m.initial.Clone()
	m.energy = m.energy[:0]
	m.recordEnergy()
}

func (m Model) System() *physics.System { return m.sys }
func (m Model) Running() bool           { return m.running }
func (m Model) Zoom() float64           { return m.proj.Zoom }

// View renders the canvas and the side panel.
func (m Model) View() string {
	m.canvas.Clear()
	DrawSystem(m.canvas, m.proj, m.sys)
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	title := m.title
	if title == "" {
		title = "orbitsim"
	}
	s.WriteString(headerStyle.Render(strings.ToUpper(title)) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.sys.FrameCount())) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.sys.Elapsed())) + "\n")
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.2fx", m.proj.Zoom)) + "\n")
	if len(m.energy) > 0 {
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4g", m.energy[len(m.energy)-1])) + "\n")
	}
	s.WriteString("\n")

	for _, b := range m.sys.Bodies() {
		p, v := b.Position(), b.Velocity()
		speed := math.Hypot(v.X, v.Y)
		line := fmt.Sprintf("%-8s (%7.1f, %7.1f) |v| %6.2f", b.Name(), p.X, p.Y, speed)
		s.WriteString(BodyStyle(b.Color()).Render(line) + "\n")
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Total energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause .:Step R:Reset\n+/-:Zoom Q:Quit"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run drives the model in the terminal until the user quits.
func Run(sys *physics.System, opts Options) error {
	_, err := tea.NewProgram(NewModel(sys, opts), tea.WithAltScreen()).Run()
	return err
}
