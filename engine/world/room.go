// Package world implements the room graph: rooms, directed edges with lock
// metadata, the current-room cursor and random encounters.
package world

import (
	"sort"

	"github.com/nathoo/dungeonexplorer/engine/entity"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/puzzle"
)

// Edge is a directed connection to another room.
type Edge struct {
	To     int
	Locked bool
	Key    item.KeyType
}

// Room is a location in the dungeon. A room with a Puzzle is gated until the
// puzzle is solved.
type Room struct {
	ID          int
	Name        string
	Description string
	Items       []item.Item
	Monster     *entity.Monster
	Puzzle      *puzzle.Puzzle
	Visited     bool

	edges map[int]Edge
}

// NewRoom creates a room with no exits.
func NewRoom(id int, name, description string) *Room {
	return &Room{ID: id, Name: name, Description: description, edges: make(map[int]Edge)}
}

// Gated reports whether the room has an unsolved puzzle.
func (r *Room) Gated() bool {
	return r.Puzzle != nil && !r.Puzzle.Solved()
}

// LiveMonster returns the room's monster if it is alive.
func (r *Room) LiveMonster() *entity.Monster {
	if r.Monster != nil && r.Monster.Alive() {
		return r.Monster
	}
	return nil
}

// Edge returns the edge to target, if any.
func (r *Room) Edge(target int) (Edge, bool) {
	e, ok := r.edges[target]
	return e, ok
}

// Exits returns the room's edges ordered by target id.
func (r *Room) Exits() []Edge {
	out := make([]Edge, 0, len(r.edges))
	for _, e := range r.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })
	return out
}

func (r *Room) unlock(target int) {
	if e, ok := r.edges[target]; ok {
		e.Locked = false
		r.edges[target] = e
	}
}

// TakeItem moves the floor item at index into the player's inventory. If the
// inventory is full the item stays on the floor.
func (r *Room) TakeItem(index int, p *entity.Player) (item.Item, error) {
	if index < 0 || index >= len(r.Items) {
		return item.Item{}, item.ErrInvalidSelection
	}
	it := r.Items[index]
	if err := p.AddItem(it); err != nil {
		return item.Item{}, err
	}
	r.Items = append(r.Items[:index], r.Items[index+1:]...)
	return it, nil
}

// DropItem places an item on the floor.
func (r *Room) DropItem(it item.Item) {
	r.Items = append(r.Items, it)
}
