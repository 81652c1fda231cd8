package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fluidx-lab/musclesim/internal/dynamo"
	"github.com/fluidx-lab/musclesim/internal/muscle"
	"github.com/guptarohit/asciigraph"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	tickRate        = 60 // frames per second
	profileRings    = 5
)

var (
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle = MetricLabel.Width(12)
	valueStyle = MetricValue
)

type TickMsg time.Time

// Model steps one muscle in real time and renders it to a braille
// canvas. The view is watch-only: parameters are fixed at launch.
type Model struct {
	mus        *muscle.Muscle
	integrator dynamo.Integrator
	wave       muscle.SquareWave
	stroke     muscle.Stroke

	state dynamo.State
	t, dt float64
	// integration substeps per frame so wall time tracks simulated time
	stepsPerTick int
	clamps       int
	running      bool

	width, height int
	canvas        *Canvas

	strainHist   []float64
	pressureHist []float64
}

// NewModel initializes the live view for one muscle.
func NewModel(mus *muscle.Muscle, integ dynamo.Integrator, dt float64) Model {
	steps := int(math.Round(1.0 / (tickRate * dt)))
	if steps < 1 {
		steps = 1
	}

	return Model{
		mus:          mus,
		integrator:   integ,
		wave:         mus.Waveform(),
		stroke:       mus.Stroke(),
		state:        mus.InitialState(),
		t:            0,
		dt:           dt,
		stepsPerTick: steps,
		running:      true,
		width:        width,
		height:       height,
		canvas:       NewCanvas(width, height),
		strainHist:   make([]float64, 0, historyCapacity),
		pressureHist: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
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
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerTick; i++ {
				m.step()
			}
			m.sample()
		}
		m.draw()
		return m, tea.Tick(time.Second/tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the muscle by one integration step.
func (m *Model) step() {
	p := m.wave.Pressure(m.t)
	m.state = m.integrator.Step(m.mus, m.state, p, m.t, m.dt)

	var clamped bool
	m.state, clamped = m.stroke.Enforce(m.state)
	if clamped {
		m.clamps++
	}
	m.t += m.dt
}

// sample records one history point per frame, not per substep, so the
// charts cover several pulse periods.
func (m *Model) sample() {
	geo := m.mus.Params().GeometryAt(m.state[0])
	m.strainHist = append(m.strainHist, geo.Strain)
	if len(m.strainHist) > historyCapacity {
		m.strainHist = m.strainHist[1:]
	}
	m.pressureHist = append(m.pressureHist, m.wave.Pressure(m.t))
	if len(m.pressureHist) > historyCapacity {
		m.pressureHist = m.pressureHist[1:]
	}
}

// reset restores the initial state.
func (m *Model) reset() {
	m.t = 0
	m.state = m.mus.InitialState()
	m.clamps = 0
	m.strainHist = m.strainHist[:0]
	m.pressureHist = m.pressureHist[:0]
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.drawMuscle()
}

// drawMuscle renders the side profile: anchor wall, corrugated tube at
// the current length and radius, rod and hanging load. The horizontal
// scale is fixed so the contraction reads as motion.
func (m *Model) drawMuscle() {
	p := m.mus.Params()
	cw, ch := m.width*2, m.height*4
	cy := ch / 2
	ax := 8

	maxLen := 1.2 * p.RestLength
	if p.MaxStroke > 0 {
		maxLen = p.MaxStroke * p.RestLength
	}
	scale := float64(cw-ax-34) / maxLen

	l := m.state[0]
	geo := p.GeometryAt(l)
	endX := ax + int(l*scale)

	// radius relative to rest, exaggerated to survive cell aspect
	rpx := int(geo.Radius / p.Radius * 14)
	if rpx < 2 {
		rpx = 2
	}
	if rpx > cy-6 {
		rpx = cy - 6
	}

	m.canvas.DrawLine(ax, cy-16, ax, cy+16)

	m.canvas.DrawLine(ax, cy-rpx, endX, cy-rpx)
	m.canvas.DrawLine(ax, cy+rpx, endX, cy+rpx)
	m.canvas.DrawLine(endX, cy-rpx, endX, cy+rpx)

	for i := 1; i <= profileRings; i++ {
		rx := ax + int(float64(i)/float64(profileRings+1)*float64(endX-ax))
		m.canvas.DrawLine(rx, cy-rpx, rx, cy+rpx)
	}

	m.canvas.DrawLine(endX, cy, endX+10, cy)
	m.canvas.FillRect(endX+10, cy-5, endX+20, cy+5)

	// rest length tick below the tube
	restX := ax + int(p.RestLength*scale)
	m.canvas.DrawLine(restX, cy+22, restX, cy+26)
}

// View renders the TUI interface.
func (m Model) View() string {
	p := m.mus.Params()
	pressure := m.wave.Pressure(m.t)
	geo := p.GeometryAt(m.state[0])

	canvasView := CanvasPanel.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render("HYDRAULIC MUSCLE") + "\n")

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	drive := Subtle.Render("pressure off")
	if pressure > 0 {
		drive = PressureOn.Render("PRESSURE ON")
	}
	s.WriteString(status + "  " + drive + "\n")

	if len(m.strainHist) > 1 {
		chart := asciigraph.Plot(m.strainHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("strain"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Drive") + SparklineChart(m.pressureHist, 30) + "\n")
	phase := math.Mod(m.t, p.Period) / p.Period
	s.WriteString(labelStyle.Render("Cycle") + ProgressBar(phase, 20) + "\n\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Pressure") + valueStyle.Render(fmt.Sprintf("%.2f MPa", pressure/1e6)) + "\n")
	s.WriteString(labelStyle.Render("Length") + valueStyle.Render(fmt.Sprintf("%.1f mm", m.state[0]*1e3)) + "\n")
	s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("%+.3f m/s", m.state[1])) + "\n")
	s.WriteString(labelStyle.Render("Strain") + valueStyle.Render(fmt.Sprintf("%+.1f%%", geo.Strain*100)) + "\n")
	s.WriteString(labelStyle.Render("Radius") + valueStyle.Render(fmt.Sprintf("%.2f mm", geo.Radius*1e3)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f J", m.mus.Energy(m.state))) + "\n")
	s.WriteString(labelStyle.Render("Clamps") + valueStyle.Render(fmt.Sprintf("%d", m.clamps)) + "\n")

	s.WriteString(KeyHint.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit"))

	statsView := SidePanel.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live view and blocks until the user quits.
func Run(mus *muscle.Muscle, integ dynamo.Integrator, dt float64) error {
	prog := tea.NewProgram(NewModel(mus, integ, dt), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
