package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// room, its exits, the player's health and progress, and any fight.
func (m Model) renderStatusBar() string {
	e := m.engine
	room := e.World.Current()
	p := e.Player

	exits := make([]string, 0, len(room.Exits()))
	for _, edge := range room.Exits() {
		s := strconv.Itoa(edge.To)
		if edge.Locked {
			s += "*"
		}
		exits = append(exits, s)
	}
	left := fmt.Sprintf(" %s | Exits: %s", room.Name, strings.Join(exits, ","))

	hp := styleHealthy
	if p.HealthFraction() < 0.3 {
		hp = styleWounded
	}
	health := fmt.Sprintf("HP %d/%d", p.Health, p.MaxHealth)

	right := fmt.Sprintf(" | Lv %d (%d XP) | Inv %d/%d | T:%d ",
		p.Level(), p.Experience, p.Inventory.Len(), p.Inventory.Capacity(), e.Turn)
	if enc := e.Encounter(); enc != nil {
		right = fmt.Sprintf(" | vs %s %d/%d", enc.Monster.Name, enc.Monster.Health, enc.Monster.MaxHealth) + right
	} else if e.GameOver() {
		right = " | DEFEATED" + right
	}

	plain := lipgloss.Width(left) + len(health) + lipgloss.Width(right)
	gap := m.width - plain - 1
	if gap < 1 {
		gap = 1
	}

	bar := left + strings.Repeat(" ", gap) + hp.Render(health) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
