package engine

import (
	"fmt"

	"github.com/nathoo/dungeonexplorer/engine/entity"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/puzzle"
	"github.com/nathoo/dungeonexplorer/engine/rng"
	"github.com/nathoo/dungeonexplorer/engine/world"
	"github.com/nathoo/dungeonexplorer/types"
)

const defaultPlayerName = "Adventurer"

// newItem builds a runtime item from its definition.
func newItem(d types.ItemDef) (item.Item, error) {
	switch d.Kind {
	case "weapon":
		return item.NewWeapon(d.Name, d.Description, d.Damage), nil
	case "potion":
		return item.NewPotion(d.Name, d.Description, d.Heal), nil
	case "key":
		kt, err := item.ParseKeyType(d.KeyType)
		if err != nil {
			return item.Item{}, err
		}
		return item.NewKey(d.Name, d.Description, kt), nil
	}
	return item.Item{}, fmt.Errorf("unknown item kind %q", d.Kind)
}

func newPuzzle(d *types.PuzzleDef, src rng.Source) (*puzzle.Puzzle, error) {
	var reward *item.Item
	if d.Reward != nil {
		it, err := newItem(*d.Reward)
		if err != nil {
			return nil, fmt.Errorf("reward: %w", err)
		}
		reward = &it
	}

	kind, err := puzzle.ParseKind(d.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case puzzle.KindRiddle:
		if d.Question != "" {
			return puzzle.NewRiddle(d.Question, d.Answer, reward), nil
		}
		return puzzle.RandomRiddle(src, reward), nil
	case puzzle.KindMemory:
		return puzzle.NewMemory(src, reward), nil
	default:
		return puzzle.NewChess(reward), nil
	}
}

// newPlayer creates the player with the starting kit. capacity overrides the
// world's inventory size when positive.
func newPlayer(d types.PlayerDef, capacity int) (*entity.Player, error) {
	name := d.Name
	if name == "" {
		name = defaultPlayerName
	}
	health := d.Health
	if health <= 0 {
		health = types.DefaultPlayerHealth
	}
	attack, defense := max(d.Attack, 0), max(d.Defense, 0)
	if capacity <= 0 {
		capacity = d.Capacity
	}
	if capacity <= 0 {
		capacity = item.DefaultCapacity
	}

	p := entity.NewPlayer(name, health, attack, defense, capacity)
	for _, id := range d.Items {
		it, err := newItem(id)
		if err != nil {
			return nil, fmt.Errorf("starting item %q: %w", id.Name, err)
		}
		if err := p.AddItem(it); err != nil {
			return nil, fmt.Errorf("starting item %q: %w", id.Name, err)
		}
	}
	p.EquipStrongest()
	return p, nil
}

// buildWorld turns the room definitions into a graph positioned at the
// start room.
func buildWorld(def *types.WorldDef, src rng.Source) (*world.Graph, error) {
	g := world.NewGraph()

	for _, id := range sortedRoomIDs(def) {
		rd := def.Rooms[id]
		room := world.NewRoom(id, rd.Name, rd.Description)
		for _, d := range rd.Items {
			it, err := newItem(d)
			if err != nil {
				return nil, fmt.Errorf("room %d: %w", id, err)
			}
			room.Items = append(room.Items, it)
		}
		if rd.Monster != "" {
			kind, err := entity.ParseMonsterKind(rd.Monster)
			if err != nil {
				return nil, fmt.Errorf("room %d: %w", id, err)
			}
			room.Monster = entity.NewMonster(kind)
		}
		if rd.Puzzle != nil {
			p, err := newPuzzle(rd.Puzzle, src)
			if err != nil {
				return nil, fmt.Errorf("room %d puzzle: %w", id, err)
			}
			room.Puzzle = p
		}
		if err := g.AddRoom(room); err != nil {
			return nil, err
		}
	}

	for _, id := range sortedRoomIDs(def) {
		for _, exit := range def.Rooms[id].Exits {
			if exit.KeyType == "" {
				if err := g.Connect(id, exit.To); err != nil {
					return nil, err
				}
				continue
			}
			kt, err := item.ParseKeyType(exit.KeyType)
			if err != nil {
				return nil, fmt.Errorf("room %d exit %d: %w", id, exit.To, err)
			}
			if err := g.ConnectLocked(id, exit.To, kt); err != nil {
				return nil, err
			}
		}
	}

	if err := g.SetStart(def.Game.Start); err != nil {
		return nil, err
	}
	if err := g.SetCurrent(def.Game.Start); err != nil {
		return nil, err
	}
	return g, nil
}
