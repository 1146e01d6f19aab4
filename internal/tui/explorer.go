package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/schrodinger/internal/config"
	"github.com/san-kum/schrodinger/internal/experiment"
	"github.com/san-kum/schrodinger/internal/report"
	"github.com/san-kum/schrodinger/internal/shooting"
	"github.com/san-kum/schrodinger/internal/wave"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	defaultStep = 0.01
	minStep     = 1e-6
	maxStep     = 10.0
	historyLen  = 60
)

type state int

const (
	stateMenu state = iota
	stateExplore
)

type model struct {
	state   state
	cursor  int
	presets []string
	reg     *experiment.Registry

	selected string
	exp      *experiment.Experiment
	energy   float64
	step     float64
	span     float64
	psi      wave.Wavefunction
	nodes    int
	boundary float64
	history  []float64
	solved   *wave.Eigenstate
	solving  bool
	err      error

	width  int
	height int
}

// solvedMsg carries the eigenstate nearest the trial energy.
type solvedMsg struct {
	state wave.Eigenstate
	err   error
}

func NewExplorer() *model {
	return &model{
		state:   stateMenu,
		presets: config.PresetRefs(),
		reg:     experiment.NewRegistry(),
		step:    defaultStep,
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case solvedMsg:
		m.solving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		st := msg.state
		m.solved = &st
		m.energy = st.Energy
		m.shoot()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateExplore:
		return m.exploreKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		if err := m.open(m.presets[m.cursor]); err != nil {
			m.err = err
			return m, nil
		}
		m.state = stateExplore
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) exploreKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		m.exp, m.psi, m.history, m.solved, m.err = nil, nil, nil, nil, nil
		return m, tea.ClearScreen
	case "right", "l":
		m.energy += m.step
		m.shoot()
	case "left", "h":
		m.energy -= m.step
		m.shoot()
	case "up", "k":
		m.energy += 10 * m.step
		m.shoot()
	case "down", "j":
		m.energy -= 10 * m.step
		m.shoot()
	case "]":
		m.step = math.Min(m.step*10, maxStep)
	case "[":
		m.step = math.Max(m.step/10, minStep)
	case "s":
		if m.solving {
			return m, nil
		}
		m.solving = true
		return m, m.snap()
	}
	return m, nil
}

// open builds the preset problem and starts at its first window's low end.
func (m *model) open(ref string) error {
	cfg, err := config.Lookup(ref)
	if err != nil {
		return err
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(m.reg, nil); err != nil {
		return err
	}

	lo, hi := cfg.States[0].EMin, cfg.States[0].EMax
	for _, st := range cfg.States {
		lo, hi = math.Min(lo, st.EMin), math.Max(hi, st.EMax)
	}

	m.selected = ref
	m.exp = exp
	m.energy = cfg.States[0].EMin
	m.span = hi - lo
	m.history = make([]float64, 0, historyLen)
	m.solved, m.err = nil, nil
	m.shoot()
	return nil
}

// shoot propagates the trial energy and records its node count and b(E).
func (m *model) shoot() {
	s := m.exp.Shooter()
	psi, err := s.Propagator().Propagate(m.energy)
	if err != nil {
		m.err = err
		m.psi = nil
		return
	}
	m.err = nil
	m.psi = psi
	m.nodes = shooting.CountNodes(psi, m.exp.Config().Search.Tol)
	m.boundary = psi.Last()

	scale := psi.MaxAbs()
	if scale == 0 {
		scale = 1
	}
	m.history = append(m.history, m.boundary/scale)
	if len(m.history) > historyLen {
		m.history = m.history[len(m.history)-historyLen:]
	}
}

// snap solves the states just above and just below the trial energy and
// reports whichever is closer.
func (m model) snap() tea.Cmd {
	s := m.exp.Shooter()
	e, nodes, span := m.energy, m.nodes, m.span
	tol := m.exp.Config().Search.Tol
	return func() tea.Msg {
		return nearest(s, e, nodes, span, tol)
	}
}

func nearest(s *shooting.Shooter, e float64, nodes int, span, tol float64) solvedMsg {
	var best *wave.Eigenstate
	var firstErr error

	try := func(target int, lo, hi float64) {
		if target < 0 {
			return
		}
		st, err := s.SolveState(target, lo, hi, tol)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		if best == nil || math.Abs(st.Energy-e) < math.Abs(best.Energy-e) {
			best = &st
		}
	}

	try(nodes, e, e+span)
	try(nodes-1, e-span, e)

	if best == nil {
		return solvedMsg{err: firstErr}
	}
	return solvedMsg{state: *best}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateExplore:
		return m.viewExplore()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + cyan.Render("s c h r ö d i n g e r") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, ref := range m.presets {
		desc := ""
		if cfg, err := config.Lookup(ref); err == nil {
			desc = fmt.Sprintf("%s, %d states", cfg.Units, len(cfg.States))
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", ref)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", ref)) + dimmer.Render(desc) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n      " + red.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter explore   q quit") + "\n")

	return b.String()
}

func (m model) viewExplore() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("   " + cyan.Render(m.selected) + "  " + dim.Render(m.exp.Units().String()) + "\n")
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", 40)) + "\n\n")

	b.WriteString(fmt.Sprintf("   %s %s   %s %s\n",
		dim.Render("E"), magenta.Render(fmt.Sprintf("%.8f", m.energy)),
		dim.Render("step"), white.Render(fmt.Sprintf("%g", m.step))))
	b.WriteString(fmt.Sprintf("   %s %s   %s %s\n",
		dim.Render("nodes"), white.Render(fmt.Sprintf("%d", m.nodes)),
		dim.Render("ψ(xR)"), white.Render(fmt.Sprintf("%.3e", m.boundary))))

	switch {
	case m.solving:
		b.WriteString("   " + dim.Render("solving...") + "\n")
	case m.solved != nil:
		b.WriteString(fmt.Sprintf("   %s n=%d E=%.8f\n", green.Render("eigenstate"), m.solved.Nodes, m.solved.Energy))
	}
	if m.err != nil {
		b.WriteString("   " + red.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n")

	if len(m.psi) > 0 {
		cw := max(m.width-14, 30)
		ch := max(m.height-16, 6)
		b.WriteString(report.PlotWavefunctions([][]float64{m.psi}, nil, cw, ch, "ψ(x)"))
		b.WriteString("\n\n")
	}
	if len(m.history) > 0 {
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render("b(E)"), cyan.Render(sparkline(m.history, 40))))
	}

	b.WriteString("\n" + dim.Render("   ←→ nudge  ↑↓ ×10  [ ] step  s snap  q back") + "\n")

	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal, maxVal = math.Min(minVal, v), math.Max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := max(len(data)/width, 1)

	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		sb.WriteRune(chars[min(max(idx, 0), 7)])
	}
	return sb.String()
}

func RunExplorer(ctx context.Context) error {
	p := tea.NewProgram(NewExplorer(), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
