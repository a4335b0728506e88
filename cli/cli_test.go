package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/dungeonexplorer/engine"
	"github.com/nathoo/dungeonexplorer/engine/rng"
	"github.com/nathoo/dungeonexplorer/types"
)

// testDef returns a two-room dungeon for CLI testing.
func testDef() *types.WorldDef {
	return &types.WorldDef{
		Game: types.GameDef{
			Title: "Test Game",
			Start: 1,
			Intro: "Welcome to the test.",
		},
		Player: types.PlayerDef{Name: "Tester", Health: 100, Attack: 15, Defense: 8, Capacity: 10},
		Rooms: map[int]types.RoomDef{
			1: {
				ID: 1, Name: "Hall", Description: "A grand hall.",
				Items: []types.ItemDef{{Kind: "potion", Name: "Tonic", Description: "Fizzy.", Heal: 10}},
				Exits: []types.ExitDef{{To: 2}},
			},
			2: {
				ID: 2, Name: "Garden", Description: "A peaceful garden.",
				Exits: []types.ExitDef{{To: 1}},
			},
		},
	}
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(testDef(), engine.Options{Source: rng.NewSequence(99), EncounterChance: -1})
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	return eng
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := &CLI{
		Meta: Meta{Engine: newEngine(t), SaveDir: t.TempDir()},
		In:   strings.NewReader(input),
		Out:  &out,
	}
	return c, &out
}

func run(c *CLI) {
	c.Run(context.Background())
}

func TestCLI_IntroAndStartingRoom(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	run(c)

	output := out.String()
	if !strings.Contains(output, "Welcome to the test.") {
		t.Error("expected intro text in output")
	}
	if !strings.Contains(output, "A grand hall.") {
		t.Error("expected starting room description in output")
	}
}

func TestCLI_BasicGameplay(t *testing.T) {
	c, out := newTestCLI(t, "take 1\ninventory\n/quit\n")
	run(c)

	output := out.String()
	if !strings.Contains(output, "You picked up the Tonic.") {
		t.Error("expected pickup message")
	}
	if !strings.Contains(output, "INVENTORY (1/10)") {
		t.Errorf("expected inventory header, got:\n%s", output)
	}
}

func TestCLI_Navigation(t *testing.T) {
	c, out := newTestCLI(t, "go 2\n/quit\n")
	run(c)

	if !strings.Contains(out.String(), "A peaceful garden.") {
		t.Error("expected garden description after go 2")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	run(c)

	output := out.String()
	for _, want := range []string{"/save", "/load", "/quit", "solve <answer>"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	// Play a bit and save.
	var out bytes.Buffer
	c := &CLI{
		Meta: Meta{Engine: newEngine(t), SaveDir: dir},
		In:   strings.NewReader("go 2\n/save test\n/quit\n"),
		Out:  &out,
	}
	run(c)

	if !strings.Contains(out.String(), "Game saved to test.") {
		t.Error("expected save confirmation")
	}
	if _, err := os.Stat(filepath.Join(dir, "test.sav")); err != nil {
		t.Fatalf("save file missing: %v", err)
	}

	// Start fresh and load.
	var out2 bytes.Buffer
	c2 := &CLI{
		Meta: Meta{Engine: newEngine(t), SaveDir: dir},
		In:   strings.NewReader("/load test\n/quit\n"),
		Out:  &out2,
	}
	run(c2)

	loadOutput := out2.String()
	if !strings.Contains(loadOutput, "Game loaded from test") {
		t.Error("expected load confirmation")
	}
	if c2.Engine.World.Current().ID != 2 {
		t.Errorf("room after load = %d, want 2", c2.Engine.World.Current().ID)
	}
	if !strings.Contains(loadOutput, "A peaceful garden.") {
		t.Error("expected garden description after load")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/foobar\n/quit\n")
	run(c)

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\ngo 2\n/trace\n/quit\n")
	run(c)

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace]   room_entered") {
		t.Errorf("expected traced events, got:\n%s", output)
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	run(c)

	output := out.String()
	if !strings.Contains(output, "Location: 1 (Hall)") {
		t.Error("expected location in state output")
	}
	if !strings.Contains(output, "Turn:") {
		t.Error("expected turn count in state output")
	}
}

func TestCLI_EmptyInput(t *testing.T) {
	c, out := newTestCLI(t, "\n\n# a comment\n/quit\n")
	run(c)

	if strings.Contains(out.String(), "What do you want to do?") {
		t.Error("empty lines should be silently skipped by CLI")
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/load nonexistent\n/quit\n")
	run(c)

	if !strings.Contains(out.String(), "Load failed") {
		t.Error("expected load failure message")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	for _, repeat := range []string{"again", "g"} {
		c, out := newTestCLI(t, "look\n"+repeat+"\n/quit\n")
		run(c)

		// Intro + look + repeat.
		count := strings.Count(out.String(), "A grand hall.")
		if count < 3 {
			t.Errorf("%s: expected 'A grand hall.' at least 3 times, got %d", repeat, count)
		}
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	run(c)

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "look\n/quit\n")
	c.EchoInput = true
	run(c)

	if !strings.Contains(out.String(), "> look\n") {
		t.Error("expected echoed input after the prompt")
	}
}

func TestCLI_CancelledContext(t *testing.T) {
	c, out := newTestCLI(t, "look\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Run(ctx)

	if strings.Contains(out.String(), "> ") {
		t.Error("cancelled context should stop before the first prompt")
	}
}

func TestSavePath(t *testing.T) {
	if got := SavePath("saves", ""); got != filepath.Join("saves", "quicksave.sav") {
		t.Errorf("SavePath default = %q", got)
	}
	if got := SavePath("saves", "slot1"); got != filepath.Join("saves", "slot1.sav") {
		t.Errorf("SavePath = %q", got)
	}
}

func TestLineStyle(t *testing.T) {
	tests := []struct {
		line   string
		styled bool
	}{
		{"==== Hall ====", true},
		{"-- Round 2 -- You: 90/100 HP | Enemy: 10/20 HP", true},
		{"GAME OVER", true},
		{"Frog monster has been defeated!", true},
		{"A grand hall.", false},
	}
	for _, tt := range tests {
		if _, ok := lineStyle(tt.line); ok != tt.styled {
			t.Errorf("lineStyle(%q) styled = %v, want %v", tt.line, ok, tt.styled)
		}
	}
}

func TestCLI_ColorOutput(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Color = true
	run(c)

	if !strings.Contains(out.String(), "Hall") {
		t.Error("expected room heading in coloured output")
	}
}
