package puzzle

import (
	"strings"
	"testing"

	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/rng"
	"github.com/nathoo/dungeonexplorer/types"
)

type bag struct {
	items []item.Item
	cap   int
}

func (b *bag) AddItem(it item.Item) error {
	if len(b.items) >= b.cap {
		return item.ErrInventoryFull
	}
	b.items = append(b.items, it)
	return nil
}

func hasEvent(evts []types.Event, typ string) bool {
	for _, e := range evts {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func reward() *item.Item {
	r := item.NewWeapon("Tome of Power", "", 18)
	return &r
}

func TestRiddle_EchoSolvesFirstTry(t *testing.T) {
	p := NewRiddle(Riddles[0].Question, "echo", reward())
	b := &bag{cap: 10}

	out := p.Attempt("  ECHO ", b)
	if !out.Solved || !p.Solved() {
		t.Fatal("expected riddle solved")
	}
	if len(b.items) != 1 || b.items[0].Name != "Tome of Power" {
		t.Errorf("reward not granted: %v", b.items)
	}
	if !hasEvent(out.Events, events.RewardGranted) {
		t.Error("expected reward_granted event")
	}
}

func TestRiddle_HintAfterThreeFailures(t *testing.T) {
	p := NewRiddle(Riddles[0].Question, "echo", nil)

	for i := 0; i < 2; i++ {
		out := p.Attempt("wind", nil)
		if out.Solved {
			t.Fatal("wrong answer solved the riddle")
		}
		if _, ok := p.Hint(); ok {
			t.Fatalf("hint revealed after %d attempts", i+1)
		}
	}
	out := p.Attempt("wind", nil)
	if !hasEvent(out.Events, events.PuzzleHint) {
		t.Error("expected hint event on third failure")
	}
	hint, ok := p.Hint()
	if !ok || !strings.Contains(hint, "'e'") || !strings.Contains(hint, "4 letters") {
		t.Errorf("hint = %q, %v", hint, ok)
	}
	found := false
	for _, line := range p.Describe() {
		if strings.Contains(line, hint) {
			found = true
		}
	}
	if !found {
		t.Error("Describe should show the hint")
	}

	// Attempts stay unlimited.
	if out := p.Attempt("echo", nil); !out.Solved {
		t.Error("correct answer after hint should solve")
	}
}

func TestRiddle_RandomFromCatalogue(t *testing.T) {
	p := RandomRiddle(rng.NewSequence(3), nil)
	if p.Question() != Riddles[3].Question {
		t.Errorf("question = %q", p.Question())
	}
	if out := p.Attempt("Penny", nil); !out.Solved {
		t.Error("catalogue answer should solve")
	}
}

func TestPuzzle_SolvedIsIdempotent(t *testing.T) {
	p := NewRiddle("q", "a", reward())
	b := &bag{cap: 10}
	p.Attempt("a", b)
	for i := 0; i < 5; i++ {
		out := p.Attempt("anything", b)
		if !out.Solved {
			t.Fatal("solved puzzle should report success")
		}
		if len(out.Events) != 0 || out.Dropped != nil {
			t.Errorf("repeat attempt had side effects: %+v", out)
		}
	}
	if len(b.items) != 1 {
		t.Errorf("reward granted %d times", len(b.items))
	}
}

func TestPuzzle_RewardDroppedWhenFull(t *testing.T) {
	p := NewRiddle("q", "a", reward())
	b := &bag{cap: 0}
	out := p.Attempt("a", b)
	if !out.Solved {
		t.Fatal("expected solved")
	}
	if out.Dropped == nil || out.Dropped.Name != "Tome of Power" {
		t.Fatalf("expected dropped reward, got %+v", out.Dropped)
	}
	if !hasEvent(out.Events, events.InventoryFull) {
		t.Error("expected inventory_full event")
	}
}

func TestMemory_StartDoesNotConsume(t *testing.T) {
	p := NewMemory(rng.NewRNG(7), nil)
	before := p.Sequence()
	for i := 0; i < 3; i++ {
		out := p.Attempt("START", nil)
		if out.Solved || p.Level() != 1 {
			t.Fatalf("start changed state: solved=%v level=%d", out.Solved, p.Level())
		}
		if !hasEvent(out.Events, events.SequenceShown) {
			t.Fatal("expected sequence_shown event")
		}
	}
	if strings.Join(p.Sequence(), " ") != strings.Join(before, " ") {
		t.Error("start must not regenerate the sequence")
	}
}

func TestMemory_SequenceLengthGrowsWithLevel(t *testing.T) {
	p := NewMemory(rng.NewRNG(1), nil)
	if len(p.Sequence()) != 3 {
		t.Fatalf("level 1 length = %d, want 3", len(p.Sequence()))
	}
	p.Attempt(strings.Join(p.Sequence(), " "), nil)
	if p.Level() != 2 || len(p.Sequence()) != 4 {
		t.Errorf("after success: level=%d len=%d", p.Level(), len(p.Sequence()))
	}
}

func TestMemory_MismatchKeepsLevel(t *testing.T) {
	p := NewMemory(rng.NewRNG(3), nil)
	out := p.Attempt("Red", nil)
	if out.Solved || p.Level() != 1 {
		t.Error("short guess should fail at the same level")
	}
	if len(p.Sequence()) != 3 {
		t.Errorf("new sequence length = %d, want 3", len(p.Sequence()))
	}
}

func TestMemory_MaxLevelSolvesOnce(t *testing.T) {
	p := NewMemory(rng.NewRNG(11), reward())
	b := &bag{cap: 10}

	for level := 1; level <= MaxMemoryLevel; level++ {
		out := p.Attempt(strings.ToLower(strings.Join(p.Sequence(), "  ")), b)
		if level < MaxMemoryLevel && out.Solved {
			t.Fatalf("solved early at level %d", level)
		}
		if level == MaxMemoryLevel && !out.Solved {
			t.Fatal("expected solve at max level")
		}
	}
	p.Attempt("start", b)
	if len(b.items) != 1 {
		t.Errorf("reward granted %d times, want 1", len(b.items))
	}
}

func TestChess_AnyOrder(t *testing.T) {
	p := NewChess(reward())
	b := &bag{cap: 10}

	for i, m := range []string{"Rd1", " Kc2 ", "Pb3"} {
		out := p.Attempt(m, b)
		if i < 2 && out.Solved {
			t.Fatalf("solved after %d moves", i+1)
		}
		if i == 2 && !out.Solved {
			t.Fatal("expected solved after three moves")
		}
	}
	if p.MovesRemaining() != 0 || len(b.items) != 1 {
		t.Errorf("moves=%d rewards=%d", p.MovesRemaining(), len(b.items))
	}
}

func TestChess_RejectsRepeatAndCase(t *testing.T) {
	p := NewChess(nil)
	p.Attempt("Kc2", nil)
	if out := p.Attempt("Kc2", nil); out.Solved || p.MovesRemaining() != 2 {
		t.Error("a move cannot be played twice")
	}
	if p.Attempt("pb3", nil); p.MovesRemaining() != 2 {
		t.Error("notation is case-sensitive")
	}
}

func TestRiddle_HintCountsLetters(t *testing.T) {
	p := NewRiddle("Where do the stars sleep?", "éther", nil)
	for i := 0; i < HintAfter; i++ {
		p.Attempt("moon", nil)
	}
	hint, ok := p.Hint()
	if !ok || !strings.Contains(hint, "'é'") || !strings.Contains(hint, "5 letters") {
		t.Errorf("hint = %q, %v", hint, ok)
	}
}

func TestChess_HintOnLastMove(t *testing.T) {
	p := NewChess(nil)
	p.Attempt("Kc2", nil)
	if out := p.Attempt("Qh5", nil); hasEvent(out.Events, events.PuzzleHint) {
		t.Error("no hint with two moves remaining")
	}
	p.Attempt("Pb3", nil)
	out := p.Attempt("Qh5", nil)
	if !hasEvent(out.Events, events.PuzzleHint) {
		t.Fatal("expected rook hint with one move remaining")
	}
	if got := p.RemainingMoves(); len(got) != 1 || got[0] != "Rd1" {
		t.Errorf("remaining = %v", got)
	}
}

func TestDescribe_Variants(t *testing.T) {
	tests := []struct {
		p    *Puzzle
		want string
	}{
		{NewRiddle("What am I?", "x", nil), "Attempts made: 0/3"},
		{NewMemory(rng.NewRNG(1), nil), "Level 1 of 3"},
		{NewChess(nil), "Moves remaining: 3"},
		{NewChess(nil), "  a b c d e"},
		{NewChess(nil), "4│    P"},
	}
	for _, tt := range tests {
		found := false
		for _, line := range tt.p.Describe() {
			if strings.Contains(line, tt.want) {
				found = true
			}
		}
		if !found {
			t.Errorf("%s Describe() missing %q", tt.p.Kind, tt.want)
		}
	}
}

func TestRestore_SuppressesReward(t *testing.T) {
	p := NewRiddle("q", "a", reward())
	p.Restore(true)
	b := &bag{cap: 10}
	if out := p.Attempt("a", b); !out.Solved || len(b.items) != 0 {
		t.Error("restored puzzle must not grant its reward again")
	}
}
