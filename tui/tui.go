package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/dungeonexplorer/cli"
	"github.com/nathoo/dungeonexplorer/engine"
)

const (
	explorePlaceholder = "look, go <room>, take <item>, solve <answer>"
	combatPlaceholder  = "attack, run, potion, equip"
)

// entry is one unstyled transcript line. Styling happens at render time so
// the transcript can be re-wrapped on resize.
type entry struct {
	text string
	kind lineKind
}

type keyMap struct {
	Submit   key.Binding
	Quit     key.Binding
	HistPrev key.Binding
	HistNext key.Binding
	Scroll   key.Binding
}

var keys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("enter")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c")),
	HistPrev: key.NewBinding(key.WithKeys("up")),
	HistNext: key.NewBinding(key.WithKeys("down")),
	Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+d")),
}

// Model is the Bubble Tea model for the dungeon TUI.
type Model struct {
	ctx    context.Context
	engine *engine.Engine
	meta   cli.Meta

	viewport viewport.Model
	input    textinput.Model
	history  *History

	transcript []entry
	lastCmd    string

	width, height int
	ready         bool
	quitting      bool
}

// introMsg delivers the opening narration once the program starts.
type introMsg []string

// New creates a TUI model wired to the given engine.
func New(ctx context.Context, eng *engine.Engine, saveDir string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.Placeholder = explorePlaceholder
	ti.CharLimit = 256
	ti.Focus()

	return Model{
		ctx:    ctx,
		engine: eng,
		meta: cli.Meta{
			Engine:  eng,
			SaveDir: saveDir,
			Help:    []string{"Navigation: PgUp/PgDn to scroll, Up/Down for command history"},
		},
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and blocks until the player quits or
// ctx is cancelled. trace starts the session with event tracing on.
func Run(ctx context.Context, eng *engine.Engine, saveDir string, trace bool) error {
	m := New(ctx, eng, saveDir)
	m.meta.Trace = trace
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	eng := m.engine
	return tea.Batch(textinput.Blink, func() tea.Msg { return introMsg(eng.Intro()) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case introMsg:
		m.narrate(msg)
		m.endTurn()
	case tea.KeyMsg:
		if next, cmd, handled := m.onKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize fits the viewport above the status bar and input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-2, 1)

	if m.ready {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	} else {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = scrollKeys()
		m.ready = true
	}
	m.redraw()
}

// onKey handles the keys the model owns. Anything else goes to the input.
func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, keys.Submit):
		next, cmd := m.submit()
		return next, cmd, true
	case key.Matches(msg, keys.HistPrev):
		if prev, ok := m.history.Prev(); ok {
			m.setInput(prev)
		}
		return m, nil, true
	case key.Matches(msg, keys.HistNext):
		next, ok := m.history.Next()
		if !ok {
			m.history.ResetCursor()
		}
		m.setInput(next)
		return m, nil, true
	case key.Matches(msg, keys.Scroll):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

func (m *Model) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// submit runs the line in the input box.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}
	m.history.Push(line)
	m.history.ResetCursor()

	if strings.HasPrefix(line, "/") {
		reply := m.handleMeta(line)
		m.echo(line)
		m.notices(reply.Notices)
		m.narrate(reply.Lines)
		m.endTurn()
		if reply.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	cmd := line
	if lower := strings.ToLower(line); lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m.echo(line)
			m.notices([]string{"Nothing to repeat."})
			m.endTurn()
			return m, nil
		}
		cmd = m.lastCmd
	}
	m.lastCmd = cmd

	result := m.engine.Step(m.ctx, cmd)
	m.echo(line)
	m.narrate(result.Output)
	m.narrate(m.meta.TraceLines(result))
	m.endTurn()
	return m, nil
}

func (m *Model) handleMeta(line string) cli.Reply {
	return m.meta.Handle(m.ctx, line)
}

func (m *Model) echo(line string) {
	m.transcript = append(m.transcript, entry{text: line, kind: kindInput})
}

func (m *Model) notices(lines []string) {
	for _, n := range lines {
		m.transcript = append(m.transcript, entry{text: n, kind: kindNotice})
	}
}

func (m *Model) narrate(lines []string) {
	for _, l := range lines {
		m.transcript = append(m.transcript, entry{text: l, kind: classifyLine(l)})
	}
}

// endTurn closes a block of output with a blank line and refreshes.
func (m *Model) endTurn() {
	m.transcript = append(m.transcript, entry{})
	m.redraw()
}

// redraw re-renders the transcript at the current width and scrolls to the
// newest output.
func (m *Model) redraw() {
	if m.engine.InCombat() {
		m.input.Placeholder = combatPlaceholder
	} else {
		m.input.Placeholder = explorePlaceholder
	}
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.render(max(m.width, 10)))
	m.viewport.GotoBottom()
}

func (m *Model) render(width int) string {
	out := make([]string, len(m.transcript))
	for i, e := range m.transcript {
		if e.text != "" {
			out[i] = renderLineKind(wordWrap(e.text, width), e.kind)
		}
	}
	return strings.Join(out, "\n")
}

// wordWrap breaks text at word boundaries so no line exceeds width.
// Leading indentation is kept on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	trimmed := strings.TrimLeft(text, " ")
	var b strings.Builder
	b.WriteString(text[:len(text)-len(trimmed)])
	col := b.Len()

	for i, w := range strings.Fields(trimmed) {
		switch {
		case i == 0:
		case col+1+len(w) > width:
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(w)
		col += len(w)
	}
	return b.String()
}

// View stacks the transcript, status bar and input line.
func (m Model) View() string {
	switch {
	case m.quitting:
		return ""
	case !m.ready:
		return "Loading..."
	}
	return strings.Join([]string{m.viewport.View(), m.renderStatusBar(), m.input.View()}, "\n")
}

// scrollKeys leaves Up/Down unbound; they drive command history.
func scrollKeys() viewport.KeyMap {
	km := viewport.DefaultKeyMap()
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	km.Up = key.NewBinding(key.WithDisabled())
	km.Down = key.NewBinding(key.WithDisabled())
	return km
}
