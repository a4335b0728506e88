// Package types defines the shared data structures for the dungeon engine.
// This package contains only type definitions — no logic, no methods.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
}

// Event is emitted by the core whenever game state changes.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Events []Event
	Output []string
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   int // starting room ID
	Intro   string
}

// ItemDef is the definition of a single item.
type ItemDef struct {
	Kind        string // "weapon", "potion", "key"
	Name        string
	Description string
	Damage      int    // weapons
	Heal        int    // potions
	KeyType     string // keys: "bronze", "silver", "gold", "crystal"
}

// ExitDef is a directed connection out of a room.
type ExitDef struct {
	To      int
	KeyType string // empty for an unlocked exit
}

// PuzzleDef configures the puzzle guarding a room.
type PuzzleDef struct {
	Kind     string // "riddle", "memory", "chess"
	Question string // riddles only; empty picks from the built-in catalogue
	Answer   string
	Reward   *ItemDef
}

// RoomDef is the base definition of a room.
type RoomDef struct {
	ID          int
	Name        string
	Description string
	Items       []ItemDef
	Monster     string // monster kind, empty for none
	Exits       []ExitDef
	Puzzle      *PuzzleDef
}

// Player stats used when a world script leaves them out.
const (
	DefaultPlayerHealth  = 100
	DefaultPlayerAttack  = 15
	DefaultPlayerDefense = 8
)

// PlayerDef holds the starting player stats and kit. Attack and Defense are
// taken as given, so zero is a real value.
type PlayerDef struct {
	Name     string
	Health   int
	Attack   int
	Defense  int
	Capacity int
	Items    []ItemDef
}

// EventHandler is narration triggered by an event rather than a command.
type EventHandler struct {
	EventType string
	Room      int // 0 matches any room
	Say       []string
}

// WorldDef is the complete compiled world definition.
type WorldDef struct {
	Game     GameDef
	Player   PlayerDef
	Rooms    map[int]RoomDef
	Handlers []EventHandler
}
