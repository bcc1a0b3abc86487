package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/advsampling/internal/landscape"
	"github.com/san-kum/advsampling/internal/metrics"
	"github.com/san-kum/advsampling/internal/sampler"
)

const (
	width           = 64
	height          = 18
	historyCapacity = 300
	betaFactor      = 1.25

	// Visible window of the landscape.
	viewXMax = 12.0
	viewYMax = 9.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

// LiveModel walks the sampler one trial per tick and draws the walker on
// the landscape.
type LiveModel struct {
	sampler *sampler.Sampler
	surface sampler.Surface
	walker  *sampler.Walker
	opts    sampler.Options
	initial float64
	beta0   float64
	fps     int

	canvas  *Canvas
	curveX  []int
	curveY  []int
	running bool
	step    int
	last    sampler.Trial
	stats   metrics.Set

	energyHistory   []float64
	positionHistory []float64
}

// NewLiveModel starts a walk at initial. The walk pauses after opts.Trials
// trials; zero trials means run until quit.
func NewLiveModel(surface sampler.Surface, src sampler.Source, initial float64, opts sampler.Options, barrier float64, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	s := sampler.New(surface, src)
	m := LiveModel{
		sampler:         s,
		surface:         surface,
		walker:          s.NewWalker(initial),
		opts:            opts,
		initial:         initial,
		beta0:           opts.Beta,
		fps:             fps,
		canvas:          NewCanvas(width, height),
		running:         true,
		stats:           metrics.Default(barrier),
		energyHistory:   make([]float64, 0, historyCapacity),
		positionHistory: make([]float64, 0, historyCapacity),
	}
	m.curveX, m.curveY = m.projectCurve()
	return m
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd { return m.tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.opts.Beta *= betaFactor
		case "-", "_":
			m.opts.Beta /= betaFactor
		}
	case TickMsg:
		if m.running && !m.done() {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) done() bool {
	return m.opts.Trials > 0 && m.step >= m.opts.Trials
}

// advance runs one trial and records it like a sampler frame.
func (m *LiveModel) advance() {
	m.last = m.sampler.Step(m.walker, m.opts.MaxDisplacement, m.opts.Beta)
	f := sampler.Frame{
		Step:     m.step,
		Position: m.walker.Position(),
		Energy:   m.walker.Energy(),
		Accepted: m.last.Accepted(),
		Trial:    m.last,
	}
	m.stats.OnFrame(f)
	m.step++

	m.energyHistory = appendCapped(m.energyHistory, f.Energy)
	m.positionHistory = appendCapped(m.positionHistory, f.Position)
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *LiveModel) reset() {
	m.walker = m.sampler.NewWalker(m.initial)
	m.opts.Beta = m.beta0
	m.step = 0
	m.last = sampler.Trial{}
	m.stats.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.positionHistory = m.positionHistory[:0]
	m.running = true
}

// project maps landscape coordinates to canvas sub-pixels, y pointing down.
func (m *LiveModel) project(x, y float64) (int, int) {
	cw, ch := m.canvas.SubSize()
	px := int(x / viewXMax * float64(cw-1))
	py := ch - 1 - int(y/viewYMax*float64(ch-1))
	return px, py
}

func (m *LiveModel) projectCurve() ([]int, []int) {
	xs := landscape.Arange(0, viewXMax+0.05, 0.05)
	px, py := make([]int, len(xs)), make([]int, len(xs))
	for i, x := range xs {
		px[i], py[i] = m.project(x, m.surface.Evaluate(x))
	}
	return px, py
}

func (m *LiveModel) draw() {
	m.canvas.Clear()
	m.canvas.Polyline(m.curveX, m.curveY)

	marker, err := landscape.CircleOnSurface(m.walker.Position(), m.walker.Energy(), m.opts.MarkerRadius)
	if err != nil {
		return
	}
	xs, ys := make([]int, marker.Len()), make([]int, marker.Len())
	for i := range xs {
		xs[i], ys[i] = m.project(marker.XY(i))
	}
	m.canvas.Polyline(xs, ys)
	cx, cy := m.project(m.walker.Position(), m.walker.Energy()+m.opts.MarkerRadius)
	m.canvas.Dot(cx, cy, 1)
}

func (m LiveModel) status() string {
	switch {
	case m.done():
		return StatusPaused.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

func (m LiveModel) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render("ENERGY BARRIER") + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Free energy (kT)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	vals := m.stats.Values()
	s.WriteString(Metric("Step", fmt.Sprintf("%d", m.step)) + "\n")
	s.WriteString(Metric("Position", fmt.Sprintf("%.3f nm", m.walker.Position())) + "\n")
	s.WriteString(Metric("Energy", fmt.Sprintf("%.3f kT", m.walker.Energy())) + "\n")
	s.WriteString(Metric("Beta", fmt.Sprintf("%.3f", m.opts.Beta)) + "\n")
	s.WriteString(Metric("Acceptance", fmt.Sprintf("%.1f%%", 100*vals["acceptance_rate"])) + "\n")
	s.WriteString(Metric("Crossings", fmt.Sprintf("%.0f", vals["barrier_crossings"])) + "\n")
	if m.step > 0 {
		s.WriteString(Metric("Last p_acc", fmt.Sprintf("%.3g", m.last.Acceptance)) + "\n")
	}
	if m.opts.Trials > 0 {
		s.WriteString("\n" + Bar(float64(m.step)/float64(m.opts.Trials), 30) + "\n")
	}
	s.WriteString("\n" + Track(m.positionHistory, 0, viewXMax, 30) + "\n")
	s.WriteString("\n" + KeyHint.Render("SP:Pause R:Reset +/-:Beta Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Step reports how many trials the model has run.
func (m LiveModel) Step() int { return m.step }

func (m LiveModel) Beta() float64 { return m.opts.Beta }

func (m LiveModel) Running() bool { return m.running }
