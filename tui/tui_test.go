package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/dungeonexplorer/engine"
	"github.com/nathoo/dungeonexplorer/engine/rng"
	"github.com/nathoo/dungeonexplorer/types"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"==== Entrance Hall ====", kindHeading},
		{"Exits:", kindExits},
		{"[Game saved to test.]", kindSystem},
		{"[trace] Events: 2", kindTrace},
		{"This door is locked and requires a Bronze Key.", kindError},
		{"You cannot go there from here.", kindError},
		{"GAME OVER", kindError},
		{"Congratulations! You solved the puzzle.", kindReward},
		{"Gnome has been defeated!", kindReward},
		{"-- Round 2 -- You: 90/100 HP | Enemy: 10/25 HP", kindCombat},
		{"What will you do? (attack, potion [n], run, equip)", kindCombat},
		{"A grand hall with stone walls.", kindRoomDesc},
		{"", kindRoomDesc},
		{`A voice whispers "turn back while you still can."`, kindDialogue},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestContainsQuotedSpeech(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`"Hello, adventurer. Welcome to the dungeon."`, true},
		{`The "key" fits.`, false},
		{"No quotes here.", false},
		{`"Hi"`, false},
		{"It's a door.", false},
	}
	for _, tt := range tests {
		got := containsQuotedSpeech(tt.line)
		if got != tt.want {
			t.Errorf("containsQuotedSpeech(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"The great hall stretches before you with its vaulted ceiling.", 30,
			"The great hall stretches\nbefore you with its vaulted\nceiling."},
		{"", 80, ""},
		{"a b c d e", 3, "a b\nc d\ne"},
		{"  1. Rusty Sword - An old sword", 16, "  1. Rusty Sword\n- An old sword"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go 2")
	h.Push("take 1")

	for _, want := range []string{"take 1", "go 2", "look", "look"} {
		prev, ok := h.Prev()
		if !ok || prev != want {
			t.Errorf("Prev() = %q (ok=%v), want %q", prev, ok, want)
		}
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go 2")

	h.Prev() // "go 2"
	h.Prev() // "look"

	next, ok := h.Next()
	if !ok || next != "go 2" {
		t.Errorf("expected 'go 2', got %q (ok=%v)", next, ok)
	}

	if _, ok = h.Next(); ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(); ok {
		t.Error("expected false on empty history")
	}
	if _, ok := h.Next(); ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	for _, want := range []string{"c", "b", "b"} {
		if prev, _ := h.Prev(); prev != want {
			t.Errorf("Prev() = %q, want %q", prev, want)
		}
	}
}

func TestHistory_NoDuplicates(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("look")
	h.Push("look")

	if h.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", h.Len())
	}
}

func TestHistory_ResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go 2")

	h.Prev()
	h.ResetCursor()

	if prev, ok := h.Prev(); !ok || prev != "go 2" {
		t.Errorf("expected 'go 2' after reset, got %q", prev)
	}
}

// testDef returns a two-room dungeon with a frog for TUI testing.
func testDef() *types.WorldDef {
	return &types.WorldDef{
		Game: types.GameDef{Title: "Test Game", Start: 1, Intro: "Welcome to the test."},
		Player: types.PlayerDef{
			Name: "Tester", Health: 100, Attack: 15, Defense: 8, Capacity: 10,
			Items: []types.ItemDef{{Kind: "weapon", Name: "Stick", Description: "A stick.", Damage: 1}},
		},
		Rooms: map[int]types.RoomDef{
			1: {ID: 1, Name: "Hall", Description: "A grand hall.", Exits: []types.ExitDef{{To: 2}, {To: 3, KeyType: "gold"}}},
			2: {ID: 2, Name: "Pond", Description: "Lily pads.", Monster: "frog", Exits: []types.ExitDef{{To: 1}}},
			3: {ID: 3, Name: "Vault", Description: "Glitter.", Exits: []types.ExitDef{{To: 1}}},
		},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	eng, err := engine.New(testDef(), engine.Options{Source: rng.NewSequence(99), EncounterChance: -1})
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	return New(context.Background(), eng, t.TempDir())
}

// sized delivers a window size so the viewport is ready.
func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func submit(t *testing.T, m Model, input string) Model {
	t.Helper()
	m.input.SetValue(input)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func transcriptText(m Model) string {
	var b strings.Builder
	for _, e := range m.transcript {
		b.WriteString(e.text)
		b.WriteString("\n")
	}
	return b.String()
}

func TestModel_Intro(t *testing.T) {
	m := sized(t, newTestModel(t))
	next, _ := m.Update(introMsg(m.engine.Intro()))
	m = next.(Model)

	text := transcriptText(m)
	for _, want := range []string{"Test Game", "Welcome to the test.", "==== Hall ===="} {
		if !strings.Contains(text, want) {
			t.Errorf("intro missing %q", want)
		}
	}
}

func TestModel_GameCommand(t *testing.T) {
	m := sized(t, newTestModel(t))
	m = submit(t, m, "go 2")

	if !m.engine.InCombat() {
		t.Fatal("entering the pond should start combat")
	}
	if !strings.Contains(transcriptText(m), "Combat begins") {
		t.Errorf("transcript = %s", transcriptText(m))
	}
	if m.transcript[0].kind != kindInput || m.transcript[0].text != "go 2" {
		t.Errorf("first entry = %+v, want echoed input", m.transcript[0])
	}
	if bar := m.renderStatusBar(); !strings.Contains(bar, "vs Frog monster") {
		t.Errorf("status bar should show the fight: %q", bar)
	}
	if m.input.Placeholder != combatPlaceholder {
		t.Errorf("placeholder = %q, want combat hint", m.input.Placeholder)
	}
}

func TestModel_Again(t *testing.T) {
	m := sized(t, newTestModel(t))
	m = submit(t, m, "again")
	if !strings.Contains(transcriptText(m), "Nothing to repeat.") {
		t.Error("expected 'Nothing to repeat.'")
	}

	m = submit(t, m, "look")
	m = submit(t, m, "g")
	if n := strings.Count(transcriptText(m), "A grand hall."); n != 2 {
		t.Errorf("room described %d times, want 2", n)
	}
}

func TestModel_MetaCommands(t *testing.T) {
	m := sized(t, newTestModel(t))
	m = submit(t, m, "/save slot")
	m = submit(t, m, "/trace")
	m = submit(t, m, "go 2")

	var notices []string
	for _, e := range m.transcript {
		if e.kind == kindNotice {
			notices = append(notices, e.text)
		}
	}
	want := []string{"Game saved to slot.", "Trace output enabled."}
	if len(notices) != len(want) {
		t.Fatalf("notices = %v, want %v", notices, want)
	}
	for i := range want {
		if notices[i] != want[i] {
			t.Errorf("notice %d = %q, want %q", i, notices[i], want[i])
		}
	}
	if !strings.Contains(transcriptText(m), "[trace]   room_entered") {
		t.Error("expected traced events after /trace")
	}
}

func TestModel_HelpMentionsNavigation(t *testing.T) {
	m := sized(t, newTestModel(t))
	m = submit(t, m, "/help")
	if !strings.Contains(transcriptText(m), "PgUp/PgDn") {
		t.Error("TUI help should describe scrolling")
	}
}

func TestModel_History(t *testing.T) {
	m := sized(t, newTestModel(t))
	m = submit(t, m, "look")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if got := m.input.Value(); got != "look" {
		t.Errorf("after Up input = %q, want look", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	if got := m.input.Value(); got != "" {
		t.Errorf("after Down input = %q, want empty", got)
	}
}

func TestModel_QuitCommand(t *testing.T) {
	m := sized(t, newTestModel(t))
	m = submit(t, m, "/quit")
	if !m.quitting {
		t.Error("expected quitting after /quit")
	}
	if m.View() != "" {
		t.Error("view should be empty once quitting")
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	if got := newTestModel(t).View(); got != "Loading..." {
		t.Errorf("View = %q", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	m := sized(t, newTestModel(t))
	bar := m.renderStatusBar()
	for _, want := range []string{"Hall", "Exits: 2,3*", "HP 100/100", "Lv 1 (0 XP)", "Inv 1/10", "T:0"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar missing %q: %q", want, bar)
		}
	}
}
