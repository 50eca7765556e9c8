package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/linksim/internal/dynamo"
	"github.com/san-kum/linksim/internal/metrics"
	"github.com/san-kum/linksim/internal/models"
)

const (
	width           = 60
	height          = 24
	historyCapacity = 600
	trailCapacity   = 150
)

// Snapshot stores state at a specific time for replay.
type Snapshot struct {
	State  dynamo.State
	Time   float64
	Energy float64
}

type TickMsg time.Time

type tunable struct {
	owner dynamo.Configurable
	name  string
}

// Model steps a triple-link run on every tick and draws the chain.
type Model struct {
	model      *models.TripleLink
	integrator dynamo.Integrator
	controller dynamo.Controller
	title      string

	state        dynamo.State
	initialState dynamo.State
	u            dynamo.Control
	t, dt        float64
	err          error

	canvas   *Canvas
	viewport Viewport
	trail    [][2]int

	running  bool
	showHelp bool
	history  []Snapshot
	playHead int

	params        []tunable
	initialParams map[string]float64
	selected      int
}

// NewModel starts from the model's initial state. The model and the
// controller are tuned live when they implement dynamo.Configurable.
func NewModel(model *models.TripleLink, integ dynamo.Integrator, ctrl dynamo.Controller, dt float64, title string) Model {
	canvas := NewCanvas(width, height)
	x0 := model.InitialState()

	m := Model{
		model:         model,
		integrator:    integ,
		controller:    ctrl,
		title:         title,
		state:         x0.Clone(),
		initialState:  x0,
		u:             make(dynamo.Control, model.ControlDim()),
		dt:            dt,
		canvas:        canvas,
		viewport:      NewViewport(canvas, model.Chain(x0).Reach()),
		trail:         make([][2]int, 0, trailCapacity),
		running:       true,
		history:       make([]Snapshot, 0, historyCapacity),
		playHead:      -1,
		initialParams: make(map[string]float64),
	}

	owners := []any{model, ctrl}
	for _, o := range owners {
		c, ok := o.(dynamo.Configurable)
		if !ok {
			continue
		}
		params := c.GetParams()
		names := make([]string, 0, len(params))
		for k := range params {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			m.params = append(m.params, tunable{owner: c, name: k})
			m.initialParams[k] = params[k]
		}
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
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
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab":
			if len(m.params) > 0 {
				m.selected = (m.selected + 1) % len(m.params)
			}
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.err == nil {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	if len(m.params) == 0 {
		return
	}
	p := m.params[m.selected]
	val := p.owner.GetParams()[p.name]
	if val == 0 {
		val = 1e-3
	}
	if err := p.owner.SetParam(p.name, val*factor); err != nil {
		m.err = err
	}
}

// step advances the run by one dt. A failed step stops the run and is
// shown in the status line.
func (m *Model) step() {
	m.u = m.controller.Compute(m.state, m.t)
	next, err := m.integrator.Step(m.model, m.state, m.u, m.t, m.dt)
	if err == nil && !next.IsValid() {
		err = dynamo.ErrInvalidState
	}
	if err != nil {
		m.err = &dynamo.SimulationError{Step: len(m.history), Time: m.t, Wrapped: err}
		return
	}
	m.state = next
	m.t += m.dt

	snap := Snapshot{State: m.state.Clone(), Time: m.t, Energy: metrics.Energy(m.model.Chain(nil), m.state)}
	m.history = append(m.history, snap)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}

	if pose, err := m.model.Chain(m.state).Pose(); err == nil {
		tx, ty := m.viewport.Project(pose.Tip())
		m.trail = append(m.trail, [2]int{tx, ty})
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset restores the initial state and parameters.
func (m *Model) reset() {
	m.t = 0
	m.err = nil
	m.trail = m.trail[:0]
	m.state = m.initialState.Clone()
	m.history = m.history[:0]
	m.playHead = -1
	m.u = make(dynamo.Control, m.model.ControlDim())
	for _, p := range m.params {
		if err := p.owner.SetParam(p.name, m.initialParams[p.name]); err != nil && m.err == nil {
			m.err = err
		}
	}
	if r, ok := m.controller.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// shown returns the state on screen: the replay snapshot or the live one.
func (m Model) shown() (dynamo.State, float64) {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		snap := m.history[m.playHead]
		return snap.State, snap.Time
	}
	return m.state, m.t
}

func (m Model) draw(x dynamo.State) {
	m.canvas.Clear()
	pose, err := m.model.Chain(x).Pose()
	if err != nil {
		return
	}
	for _, pt := range m.trail {
		m.canvas.Set(pt[0], pt[1])
	}
	m.viewport.DrawPose(m.canvas, pose)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusFailed.Render("FAILED") + "\n" + m.err.Error()
	case m.playHead != -1:
		back := m.history[m.playHead].Time - m.history[len(m.history)-1].Time
		return StatusPaused.Render(fmt.Sprintf("REPLAY (%.1fs)", back))
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	state, t := m.shown()
	m.draw(state)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.history) > 1 {
		energy := make([]float64, len(m.history))
		for i, snap := range m.history {
			energy[i] = snap.Energy
		}
		chart := asciigraph.Plot(energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", t)) + "\n")
	n := len(state) / 2
	for i := 0; i < n; i++ {
		s.WriteString(labelStyle.Render(fmt.Sprintf("θ%d / ω%d", i+1, i+1)) +
			valueStyle.Render(fmt.Sprintf("%7.3f %7.3f", state[i], state[n+i])) + "\n")
	}
	s.WriteString(labelStyle.Render("Torque") + valueStyle.Render(formatVector(m.u)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	if len(m.params) == 0 {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}
	for i, p := range m.params {
		line := fmt.Sprintf("%-10s %.3f", p.name, p.owner.GetParams()[p.name])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n[ ]:Time-Travel ↑↓:Tune ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.2f", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  [        - Rewind (time travel)     ║
║  ]        - Forward (time travel)    ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
