package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nathoo/dungeonexplorer/engine/save"
)

// Snapshot captures the persisted part of the session.
func (e *Engine) Snapshot() *save.SaveData {
	p := e.Player
	sd := &save.SaveData{
		PlayerName:      p.Name,
		PlayerHealth:    p.Health,
		PlayerMaxHealth: p.MaxHealth,
		PlayerAttack:    p.Attack,
		PlayerDefense:   p.Defense,
		PlayerExp:       p.Experience,
		CurrentRoom:     e.World.Current().ID,
		Gold:            p.Gold,
		Turn:            e.Turn,
		RNGSeed:         e.RNG.Seed(),
		RNGPosition:     e.RNG.Position(),
	}
	for _, id := range e.World.RoomIDs() {
		if r, _ := e.World.Room(id); r.Puzzle != nil && r.Puzzle.Solved() {
			sd.SolvedRooms = append(sd.SolvedRooms, id)
		}
	}
	return sd
}

// Restore applies a snapshot to the running session. Inventory and room
// contents are kept as they are; any fight in progress is abandoned.
func (e *Engine) Restore(sd *save.SaveData) error {
	if err := e.World.SetCurrent(sd.CurrentRoom); err != nil {
		return fmt.Errorf("restoring room %d: %w", sd.CurrentRoom, err)
	}
	e.Player.Restore(sd.PlayerName, sd.PlayerHealth, sd.PlayerMaxHealth,
		sd.PlayerAttack, sd.PlayerDefense, sd.PlayerExp, sd.Gold)

	for _, id := range sd.SolvedRooms {
		if r, ok := e.World.Room(id); ok && r.Puzzle != nil {
			r.Puzzle.Restore(true)
		}
	}
	e.World.Current().Visited = true

	e.Turn = sd.Turn
	if sd.RNGSeed != 0 || sd.RNGPosition != 0 {
		// In place: puzzles and encounters hold this RNG.
		e.RNG.Reset(sd.RNGSeed, sd.RNGPosition)
	}

	e.encounter = nil
	e.encounterRoom = nil
	e.gameOver = !e.Player.Alive()
	e.log.Debug("session restored", "room", sd.CurrentRoom, "turn", sd.Turn)
	return nil
}

// SaveFile writes a snapshot to path, creating its directory.
func (e *Engine) SaveFile(path string) error {
	if err := e.saveFile(path); err != nil {
		e.log.Warn("save failed", "path", path, "err", err)
		return err
	}
	e.log.Debug("game saved", "path", path)
	return nil
}

func (e *Engine) saveFile(path string) error {
	data, err := save.Save(e.Snapshot())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadFile reads a snapshot from path and applies it.
func (e *Engine) LoadFile(path string) (*save.SaveData, error) {
	sd, err := e.loadFile(path)
	if err != nil {
		e.log.Warn("load failed", "path", path, "err", err)
		return nil, err
	}
	return sd, nil
}

func (e *Engine) loadFile(path string) (*save.SaveData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sd, err := save.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := e.Restore(sd); err != nil {
		return nil, err
	}
	return sd, nil
}
