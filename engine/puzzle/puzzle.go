// Package puzzle implements the room-gating puzzles: riddles, memory
// sequences and a three-move chess problem. Every variant goes from
// unsolved to solved exactly once and grants its reward at most once.
package puzzle

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/rng"
	"github.com/nathoo/dungeonexplorer/types"
)

// Kind is the closed set of puzzle variants.
type Kind int

const (
	KindRiddle Kind = iota
	KindMemory
	KindChess
)

func (k Kind) String() string {
	switch k {
	case KindRiddle:
		return "riddle"
	case KindMemory:
		return "memory"
	case KindChess:
		return "chess"
	default:
		return "unknown"
	}
}

// ParseKind converts a variant name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "riddle":
		return KindRiddle, nil
	case "memory":
		return KindMemory, nil
	case "chess":
		return KindChess, nil
	}
	return 0, fmt.Errorf("unknown puzzle kind %q", s)
}

// Receiver accepts puzzle rewards. *entity.Player satisfies it.
type Receiver interface {
	AddItem(item.Item) error
}

// Outcome is the result of one attempt.
type Outcome struct {
	Solved bool
	Events []types.Event
	// Dropped holds a reward that did not fit in the receiver's inventory.
	// The caller places it on the room floor.
	Dropped *item.Item
}

// Puzzle is one puzzle instance. Only the state for its Kind is used.
type Puzzle struct {
	Kind   Kind
	Reward *item.Item

	solved   bool
	rewarded bool

	// riddle
	question string
	answer   string
	attempts int

	// memory
	src      rng.Source
	level    int
	sequence []string

	// chess
	remaining      mapset.Set[string]
	movesRemaining int
}

// Solved reports whether the puzzle has been solved.
func (p *Puzzle) Solved() bool { return p.solved }

// Attempt submits one answer. Attempts on a solved puzzle report success
// without side effects.
func (p *Puzzle) Attempt(input string, recv Receiver) Outcome {
	if p.solved {
		return Outcome{Solved: true}
	}
	var (
		solved bool
		evts   []types.Event
	)
	switch p.Kind {
	case KindRiddle:
		solved, evts = p.attemptRiddle(input)
	case KindMemory:
		solved, evts = p.attemptMemory(input)
	case KindChess:
		solved, evts = p.attemptChess(input)
	}
	out := Outcome{Events: evts}
	if solved {
		out.Solved = true
		solvedEvts, dropped := p.onSolved(recv)
		out.Events = append(out.Events, solvedEvts...)
		out.Dropped = dropped
	}
	return out
}

// onSolved marks the puzzle solved and grants the reward once.
func (p *Puzzle) onSolved(recv Receiver) ([]types.Event, *item.Item) {
	p.solved = true
	evts := []types.Event{events.New(events.PuzzleSolved, "kind", p.Kind.String())}
	if p.Reward == nil || p.rewarded {
		return evts, nil
	}
	p.rewarded = true
	reward := *p.Reward
	if recv == nil {
		return evts, &reward
	}
	if err := recv.AddItem(reward); err != nil {
		evts = append(evts, events.New(events.InventoryFull, "item", reward.Name))
		return evts, &reward
	}
	evts = append(evts, events.New(events.RewardGranted, "item", reward.Name))
	return evts, nil
}

// Describe returns the display lines for the puzzle's current state.
func (p *Puzzle) Describe() []string {
	var lines []string
	switch p.Kind {
	case KindRiddle:
		lines = p.describeRiddle()
	case KindMemory:
		lines = p.describeMemory()
	case KindChess:
		lines = p.describeChess()
	}
	if p.solved {
		lines = append(lines, "Puzzle Status: SOLVED")
	} else {
		lines = append(lines, "Puzzle Status: UNSOLVED")
	}
	return lines
}

// Restore marks the puzzle solved without granting its reward. Used on load.
func (p *Puzzle) Restore(solved bool) {
	if solved {
		p.solved = true
		p.rewarded = true
	}
}
