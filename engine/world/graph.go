package world

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nathoo/dungeonexplorer/engine/entity"
	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/rng"
	"github.com/nathoo/dungeonexplorer/types"
)

var (
	// ErrNoSuchConnection is returned when the current room has no edge to
	// the requested room, or the edge leads nowhere.
	ErrNoSuchConnection = errors.New("you cannot go there from here")

	// ErrMissingKey is returned when a locked edge needs a key the player
	// does not carry. The concrete error is a *MissingKeyError.
	ErrMissingKey = errors.New("missing key")

	// ErrUnknownRoom is returned for a room id that is not in the graph.
	ErrUnknownRoom = errors.New("unknown room")
)

// MissingKeyError reports which key a locked edge requires.
type MissingKeyError struct {
	From, To int
	Key      item.KeyType
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("this door is locked and requires a %s Key", e.Key)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

// DefaultEncounterChance is the percent chance of a random encounter on
// entering a room without a live monster.
const DefaultEncounterChance = 30

// EncounterWeights are the relative spawn weights for Frog, Gnome and
// Seagull.
var EncounterWeights = []int{3, 1, 1}

var encounterKinds = []entity.MonsterKind{entity.Frog, entity.Gnome, entity.Seagull}

// Graph owns the rooms and the current-room cursor.
type Graph struct {
	rooms   map[int]*Room
	start   int
	current int

	// EncounterChance is the random encounter percentage; 0 disables them.
	EncounterChance int
}

// NewGraph creates an empty graph with the default encounter chance.
func NewGraph() *Graph {
	return &Graph{rooms: make(map[int]*Room), EncounterChance: DefaultEncounterChance}
}

// AddRoom adds a room. Room ids must be unique.
func (g *Graph) AddRoom(r *Room) error {
	if _, dup := g.rooms[r.ID]; dup {
		return fmt.Errorf("duplicate room id %d", r.ID)
	}
	if r.edges == nil {
		r.edges = make(map[int]Edge)
	}
	g.rooms[r.ID] = r
	return nil
}

// Connect adds an unlocked directed edge. An existing edge to the same
// target is replaced.
func (g *Graph) Connect(from, to int) error {
	r, ok := g.rooms[from]
	if !ok {
		return fmt.Errorf("connect %d->%d: %w", from, to, ErrUnknownRoom)
	}
	r.edges[to] = Edge{To: to}
	return nil
}

// ConnectLocked adds a directed edge that needs a key of the given type.
func (g *Graph) ConnectLocked(from, to int, key item.KeyType) error {
	r, ok := g.rooms[from]
	if !ok {
		return fmt.Errorf("connect %d->%d: %w", from, to, ErrUnknownRoom)
	}
	r.edges[to] = Edge{To: to, Locked: true, Key: key}
	return nil
}

// SetStart sets the start room and moves the cursor there.
func (g *Graph) SetStart(id int) error {
	if err := g.SetCurrent(id); err != nil {
		return err
	}
	g.start = id
	return nil
}

// Start returns the start room id.
func (g *Graph) Start() int { return g.start }

// SetCurrent moves the cursor without any navigation rules.
func (g *Graph) SetCurrent(id int) error {
	if _, ok := g.rooms[id]; !ok {
		return fmt.Errorf("room %d: %w", id, ErrUnknownRoom)
	}
	g.current = id
	return nil
}

// Current returns the room under the cursor.
func (g *Graph) Current() *Room {
	return g.rooms[g.current]
}

// Room returns the room with the given id.
func (g *Graph) Room(id int) (*Room, bool) {
	r, ok := g.rooms[id]
	return r, ok
}

// RoomIDs returns all room ids in ascending order.
func (g *Graph) RoomIDs() []int {
	ids := make([]int, 0, len(g.rooms))
	for id := range g.rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Exits returns the current room's edges.
func (g *Graph) Exits() []Edge {
	if r := g.Current(); r != nil {
		return r.Exits()
	}
	return nil
}

// Arrival describes a successful move.
type Arrival struct {
	Room       *Room
	FirstVisit bool
	Spawned    bool
	// Engage is true when combat should start immediately: a live monster
	// is present and the room is not gated by an unsolved puzzle.
	Engage bool
	Events []types.Event
}

// Move follows the edge from the current room to target. A locked edge
// consumes one matching key and stays unlocked afterwards.
func (g *Graph) Move(p *entity.Player, target int, src rng.Source) (Arrival, error) {
	from := g.Current()
	if from == nil {
		return Arrival{}, ErrNoSuchConnection
	}
	edge, ok := from.Edge(target)
	if !ok {
		return Arrival{}, fmt.Errorf("room %d: %w", target, ErrNoSuchConnection)
	}
	to, ok := g.rooms[target]
	if !ok {
		return Arrival{}, fmt.Errorf("room %d: %w", target, ErrNoSuchConnection)
	}

	var evts []types.Event
	if edge.Locked {
		key, ok := p.ConsumeKey(edge.Key)
		if !ok {
			return Arrival{}, &MissingKeyError{From: from.ID, To: target, Key: edge.Key}
		}
		from.unlock(target)
		evts = append(evts, events.New(events.DoorUnlocked,
			"from", from.ID, "room", target, "key", key.Name))
	}

	g.current = target
	arr := Arrival{Room: to}
	evts = append(evts, events.New(events.RoomEntered, "room", to.ID, "name", to.Name))
	if !to.Visited {
		to.Visited = true
		arr.FirstVisit = true
		evts = append(evts, events.New(events.RoomVisited, "room", to.ID, "name", to.Name))
	}

	if m := g.randomEncounter(to, src); m != nil {
		arr.Spawned = true
		evts = append(evts, events.New(events.MonsterSpawned, "room", to.ID, "monster", m.Name))
	}

	if m := to.LiveMonster(); m != nil {
		if m.Activate() {
			evts = append(evts, events.New(events.BossAwakened, "room", to.ID, "monster", m.Name))
		}
		arr.Engage = !to.Gated()
	}
	arr.Events = evts
	return arr, nil
}

func (g *Graph) randomEncounter(r *Room, src rng.Source) *entity.Monster {
	if src == nil || g.EncounterChance <= 0 || r.LiveMonster() != nil {
		return nil
	}
	if !rng.Chance(src, g.EncounterChance) {
		return nil
	}
	kind := encounterKinds[rng.WeightedSelect(src, EncounterWeights)]
	r.Monster = entity.NewMonster(kind)
	return r.Monster
}
