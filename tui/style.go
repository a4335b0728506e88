package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	barBg = lipgloss.Color("236")

	styleStatusBar   = lipgloss.NewStyle().Background(barBg).Foreground(lipgloss.Color("252")).Bold(true)
	styleHealthy     = lipgloss.NewStyle().Background(barBg).Foreground(lipgloss.Color("34"))
	styleWounded     = lipgloss.NewStyle().Background(barBg).Foreground(lipgloss.Color("196"))
	styleInputPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

// palette maps each line kind to its style. kindRoomDesc is the fallback.
var palette = map[lineKind]lipgloss.Style{
	kindRoomDesc: fg("255"),
	kindHeading:  fg("141").Bold(true),
	kindExits:    fg("243"),
	kindCombat:   fg("214"),
	kindReward:   fg("228").Bold(true),
	kindDialogue: fg("228"),
	kindSystem:   fg("243"),
	kindError:    fg("196"),
	kindTrace:    fg("240"),
	kindInput:    fg("34"),
	kindNotice:   fg("243"),
}

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindRoomDesc lineKind = iota
	kindHeading
	kindExits
	kindCombat
	kindReward
	kindDialogue
	kindSystem
	kindError
	kindTrace
	kindInput  // echoed player input
	kindNotice // front-end notice, shown bracketed
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "===="):
		return kindHeading
	case strings.HasPrefix(line, "Exits:"), strings.HasPrefix(line, "Items in this room:"):
		return kindExits
	case line == "GAME OVER",
		strings.HasPrefix(line, "You have been defeated"),
		strings.HasPrefix(line, "This door is locked"),
		strings.HasPrefix(line, "You cannot"),
		strings.HasPrefix(line, "You don't have"),
		strings.HasPrefix(line, "Invalid"),
		strings.HasPrefix(line, "I don't know how"):
		return kindError
	case strings.HasPrefix(line, "Congratulations"),
		strings.HasPrefix(line, "You found a"),
		strings.HasPrefix(line, "You gained"),
		strings.HasSuffix(line, "has been defeated!"):
		return kindReward
	case strings.HasPrefix(line, "-- Round"),
		strings.HasPrefix(line, "Combat begins"),
		strings.HasPrefix(line, "You strike"),
		strings.HasPrefix(line, "What will you do?"):
		return kindCombat
	case containsQuotedSpeech(line):
		return kindDialogue
	default:
		return kindRoomDesc
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindInput:
		line = "> " + line
	case kindNotice:
		line = "[" + line + "]"
	}
	st, ok := palette[kind]
	if !ok {
		st = palette[kindRoomDesc]
	}
	return st.Render(line)
}

// containsQuotedSpeech checks if a line carries quoted speech, as event
// handlers in world scripts often do.
func containsQuotedSpeech(line string) bool {
	inQuote := false
	quoteLen := 0
	for _, r := range line {
		if r == '"' {
			if inQuote && quoteLen > 5 {
				return true
			}
			inQuote = !inQuote
			quoteLen = 0
		} else if inQuote {
			quoteLen++
		}
	}
	return false
}
