package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nathoo/dungeonexplorer/engine"
	"github.com/nathoo/dungeonexplorer/types"
)

// SaveExt is the file extension of save files.
const SaveExt = ".sav"

// Reply is the outcome of a slash command.
type Reply struct {
	Notices []string // short system messages
	Lines   []string // narration or help text
	Quit    bool
}

// Meta runs the slash commands shared by the plain and TUI front ends.
type Meta struct {
	Engine  *engine.Engine
	SaveDir string
	Trace   bool
	// Help is appended to /help output by the front end.
	Help []string
}

// SavePath returns the file a named save lives in.
func SavePath(dir, name string) string {
	if name == "" {
		name = "quicksave"
	}
	return filepath.Join(dir, name+SaveExt)
}

// Handle dispatches one slash command.
func (m *Meta) Handle(ctx context.Context, input string) Reply {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Reply{}
	}
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd := parts[0]; cmd {
	case "/quit", "/exit":
		return Reply{Notices: []string{"Goodbye."}, Quit: true}
	case "/save":
		return m.save(arg)
	case "/load":
		return m.load(arg)
	case "/help":
		return m.help()
	case "/state":
		return Reply{Notices: m.state()}
	case "/trace":
		m.Trace = !m.Trace
		if m.Trace {
			return Reply{Notices: []string{"Trace output enabled."}}
		}
		return Reply{Notices: []string{"Trace output disabled."}}
	default:
		return Reply{Notices: []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}}
	}
}

func (m *Meta) save(name string) Reply {
	if m.Engine.InCombat() {
		return Reply{Notices: []string{"You cannot save during combat."}}
	}
	if name == "" {
		name = "quicksave"
	}
	if err := m.Engine.SaveFile(SavePath(m.SaveDir, name)); err != nil {
		return Reply{Notices: []string{fmt.Sprintf("Save failed: %v", err)}}
	}
	return Reply{Notices: []string{fmt.Sprintf("Game saved to %s.", name)}}
}

func (m *Meta) load(name string) Reply {
	if name == "" {
		name = "quicksave"
	}
	sd, err := m.Engine.LoadFile(SavePath(m.SaveDir, name))
	if err != nil {
		return Reply{Notices: []string{fmt.Sprintf("Load failed: %v", err)}}
	}
	return Reply{
		Notices: []string{fmt.Sprintf("Game loaded from %s (turn %d).", name, sd.Turn)},
		Lines:   m.Engine.Look(),
	}
}

func (m *Meta) help() Reply {
	lines := []string{
		"System:",
		"  /save [name]  Save game (default: quicksave)",
		"  /load [name]  Load game (default: quicksave)",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"  again (g)     Repeat your last command",
		"",
	}
	lines = append(lines, m.Engine.Help()...)
	if len(m.Help) > 0 {
		lines = append(append(lines, ""), m.Help...)
	}
	return Reply{Lines: lines}
}

func (m *Meta) state() []string {
	e := m.Engine
	room := e.World.Current()
	var names []string
	for _, it := range e.Player.Inventory.Items() {
		names = append(names, it.Name)
	}
	out := []string{
		fmt.Sprintf("Turn: %d", e.Turn),
		fmt.Sprintf("Location: %d (%s)", room.ID, room.Name),
		fmt.Sprintf("Health: %d/%d", e.Player.Health, e.Player.MaxHealth),
		fmt.Sprintf("Inventory: %v", names),
	}
	if enc := e.Encounter(); enc != nil {
		out = append(out, fmt.Sprintf("Combat: %s round %d (%s)", enc.Monster.Name, enc.Round, enc.Behavior))
	}
	return append(out, fmt.Sprintf("RNG: seed %d position %d", e.RNG.Seed(), e.RNG.Position()))
}

// TraceLines lists the events of a turn when tracing is on.
func (m *Meta) TraceLines(result types.Result) []string {
	if !m.Trace || len(result.Events) == 0 {
		return nil
	}
	out := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		out = append(out, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
	return out
}
