// Package stats keeps the run statistics by observing session events.
package stats

import (
	"fmt"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/types"
)

// Score weights.
const (
	RoomPoints     = 5
	ItemPoints     = 2
	XPPointsFactor = 10
)

// Stats counts rooms visited, monsters defeated and items collected.
type Stats struct {
	MonstersDefeated int
	ItemsCollected   int
	Score            int

	rooms mapset.Set[int]
	start time.Time
	now   func() time.Time
}

// New starts the play clock now.
func New() *Stats {
	return NewWithClock(time.Now)
}

// NewWithClock uses now for the play clock.
func NewWithClock(now func() time.Time) *Stats {
	return &Stats{rooms: mapset.New[int](), start: now(), now: now}
}

// Observe implements events.Sink.
func (s *Stats) Observe(e types.Event) {
	switch e.Type {
	case events.RoomVisited:
		room := events.Int(e, "room")
		if s.rooms.Has(room) {
			return
		}
		s.rooms.Put(room)
		s.Score += RoomPoints
	case events.MonsterDefeated:
		s.MonstersDefeated++
		s.Score += events.Int(e, "xp") * XPPointsFactor
	case events.ItemTaken, events.LootCollected, events.RewardGranted:
		s.ItemsCollected++
		s.Score += ItemPoints
	}
}

// RoomsVisited returns the number of distinct rooms entered.
func (s *Stats) RoomsVisited() int { return s.rooms.Size() }

// PlayTime returns the time since the clock started.
func (s *Stats) PlayTime() time.Duration { return s.now().Sub(s.start) }

// Lines renders the statistics block for a player at the given level.
func (s *Stats) Lines(level int) []string {
	d := s.PlayTime()
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	return []string{
		"==================================",
		"         GAME STATISTICS          ",
		"==================================",
		fmt.Sprintf("Player Level: %d", level),
		fmt.Sprintf("Monsters Defeated: %d", s.MonstersDefeated),
		fmt.Sprintf("Rooms Visited: %d", s.RoomsVisited()),
		fmt.Sprintf("Items Collected: %d", s.ItemsCollected),
		fmt.Sprintf("Play Time: %02d:%02d:%02d", h, m, sec),
		fmt.Sprintf("Score: %d", s.Score),
		"==================================",
	}
}
