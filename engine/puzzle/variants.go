package puzzle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/rng"
	"github.com/nathoo/dungeonexplorer/types"
)

// HintAfter is the number of failed riddle attempts that reveals the hint.
const HintAfter = 3

// Riddle is a question and its answer.
type Riddle struct {
	Question string
	Answer   string
}

// Riddles is the built-in riddle catalogue.
var Riddles = []Riddle{
	{"I speak without a mouth and hear without ears. I have no body, but I come alive with wind. What am I?", "echo"},
	{"The more you take, the more you leave behind. What am I?", "footsteps"},
	{"What has keys but no locks, space but no room, and you can enter but not go in?", "keyboard"},
	{"What has a head, a tail, is brown, and has no legs?", "penny"},
	{"What goes up but never comes down?", "age"},
}

// NewRiddle creates a riddle puzzle with a fixed question and answer.
func NewRiddle(question, answer string, reward *item.Item) *Puzzle {
	return &Puzzle{Kind: KindRiddle, Reward: reward, question: question, answer: answer}
}

// RandomRiddle creates a riddle puzzle with a riddle chosen from the
// catalogue.
func RandomRiddle(src rng.Source, reward *item.Item) *Puzzle {
	r := Riddles[src.Intn(len(Riddles))]
	return NewRiddle(r.Question, r.Answer, reward)
}

// Question returns the riddle text.
func (p *Puzzle) Question() string { return p.question }

// Attempts returns the number of failed riddle attempts.
func (p *Puzzle) Attempts() int { return p.attempts }

// Hint returns the riddle hint once enough attempts have failed.
func (p *Puzzle) Hint() (string, bool) {
	if p.Kind != KindRiddle || p.attempts < HintAfter || p.answer == "" {
		return "", false
	}
	letters := []rune(p.answer)
	return fmt.Sprintf("The first letter is '%c' and it has %d letters.", letters[0], len(letters)), true
}

func (p *Puzzle) attemptRiddle(input string) (bool, []types.Event) {
	if strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(p.answer)) {
		return true, nil
	}
	p.attempts++
	evts := []types.Event{events.New(events.PuzzleFailed,
		"message", "That's not the correct answer.",
		"attempts", p.attempts)}
	if p.attempts < HintAfter {
		evts = append(evts, events.New(events.PuzzleProgress,
			"message", fmt.Sprintf("You have %d attempts remaining.", HintAfter-p.attempts)))
	} else if hint, ok := p.Hint(); ok {
		evts = append(evts, events.New(events.PuzzleHint, "hint", hint))
	}
	return false, evts
}

func (p *Puzzle) describeRiddle() []string {
	lines := []string{
		"=== THE RIDDLE CHALLENGE ===",
		"Solve this riddle to progress:",
		"Riddle: " + p.question,
		fmt.Sprintf("Attempts made: %d/%d", min(p.attempts, HintAfter), HintAfter),
	}
	if hint, ok := p.Hint(); ok {
		lines = append(lines, "Hint: "+hint)
	}
	return append(lines, "To attempt an answer, type: solve <answer>")
}

// Memory puzzle parameters.
const (
	MaxMemoryLevel = 3
	baseSeqLength  = 2
)

// Colors are the tokens a memory sequence is drawn from.
var Colors = []string{"Red", "Blue", "Green", "Yellow"}

// NewMemory creates a memory puzzle at level 1 drawing colours from src.
func NewMemory(src rng.Source, reward *item.Item) *Puzzle {
	p := &Puzzle{Kind: KindMemory, Reward: reward, src: src, level: 1}
	p.generate()
	return p
}

// Level returns the current memory level, 1..3.
func (p *Puzzle) Level() int { return p.level }

// Sequence returns a copy of the current colour sequence.
func (p *Puzzle) Sequence() []string {
	out := make([]string, len(p.sequence))
	copy(out, p.sequence)
	return out
}

func (p *Puzzle) generate() {
	n := baseSeqLength + p.level
	p.sequence = make([]string, n)
	for i := range p.sequence {
		p.sequence[i] = Colors[p.src.Intn(len(Colors))]
	}
}

func (p *Puzzle) attemptMemory(input string) (bool, []types.Event) {
	if strings.EqualFold(strings.TrimSpace(input), "start") {
		return false, []types.Event{events.New(events.SequenceShown,
			"sequence", p.Sequence(), "level", p.level)}
	}

	guess := strings.Fields(input)
	if len(guess) != len(p.sequence) {
		shown := strings.Join(p.sequence, " ")
		p.generate()
		return false, []types.Event{events.New(events.PuzzleFailed,
			"message", "The number of colors you entered doesn't match the sequence length.",
			"answer", shown)}
	}
	for i, g := range guess {
		if !strings.EqualFold(g, p.sequence[i]) {
			shown := strings.Join(p.sequence, " ")
			p.generate()
			return false, []types.Event{events.New(events.PuzzleFailed,
				"message", "That's not correct. Let's try again with a new sequence.",
				"answer", shown)}
		}
	}

	if p.level >= MaxMemoryLevel {
		return true, nil
	}
	p.level++
	p.generate()
	return false, []types.Event{events.New(events.PuzzleProgress,
		"message", fmt.Sprintf("That's correct! Moving to level %d...", p.level),
		"level", p.level)}
}

func (p *Puzzle) describeMemory() []string {
	return []string{
		"=== THE MEMORY CHALLENGE ===",
		fmt.Sprintf("Level %d of %d", p.level, MaxMemoryLevel),
		"Memorize the sequence of colors that will be shown.",
		"Type 'solve start' to see the sequence, then repeat it with",
		"the colors separated by spaces (e.g., 'solve Red Blue Green').",
	}
}

// ChessMoves are the moves that solve the chess puzzle, in any order.
var ChessMoves = []string{"Kc2", "Pb3", "Rd1"}

var chessBoard = []string{
	"     ",
	"  P  ",
	" R B ",
	"  K  ",
	"  X  ",
}

// NewChess creates the three-move chess puzzle.
func NewChess(reward *item.Item) *Puzzle {
	set := mapset.New[string]()
	for _, m := range ChessMoves {
		set.Put(m)
	}
	return &Puzzle{Kind: KindChess, Reward: reward, remaining: set, movesRemaining: len(ChessMoves)}
}

// MovesRemaining returns how many chess moves are still required.
func (p *Puzzle) MovesRemaining() int { return p.movesRemaining }

// RemainingMoves returns the unplayed moves, sorted.
func (p *Puzzle) RemainingMoves() []string {
	var out []string
	p.remaining.Each(func(m string) { out = append(out, m) })
	sort.Strings(out)
	return out
}

var pieceNames = map[byte]string{'K': "King", 'P': "Pawn", 'R': "Rook", 'B': "Bishop"}

func (p *Puzzle) attemptChess(input string) (bool, []types.Event) {
	move := strings.TrimSpace(input)
	if !p.remaining.Has(move) {
		evts := []types.Event{events.New(events.PuzzleFailed,
			"message", "That's not a valid move for this puzzle.")}
		if p.movesRemaining == 1 {
			evts = append(evts, events.New(events.PuzzleHint, "hint", "The final move involves the Rook."))
		}
		return false, evts
	}

	p.remaining.Remove(move)
	p.movesRemaining--
	msg := fmt.Sprintf("You moved %s to %s.", pieceNames[move[0]], move[1:])
	if p.movesRemaining <= 0 || p.remaining.Size() == 0 {
		return true, []types.Event{events.New(events.PuzzleProgress, "message", msg)}
	}
	return false, []types.Event{events.New(events.PuzzleProgress,
		"message", fmt.Sprintf("%s That move is correct. %d moves remaining.", msg, p.movesRemaining))}
}

func (p *Puzzle) describeChess() []string {
	lines := []string{
		"=== THE CHESS PUZZLE ===",
		"Move the pieces to checkmate the opponent's king in exactly 3 moves.",
		"P = Pawn, R = Rook, B = Bishop, K = King, X = Target",
		"Use algebraic notation: [Piece][destination], e.g. 'solve Kc2'",
		fmt.Sprintf("Moves remaining: %d", p.movesRemaining),
		"",
		"  a b c d e",
		"  ─────────",
	}
	for i, row := range chessBoard {
		var b strings.Builder
		fmt.Fprintf(&b, "%d│", len(chessBoard)-i)
		for _, c := range row {
			b.WriteRune(c)
			b.WriteByte(' ')
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}
