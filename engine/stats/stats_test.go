package stats

import (
	"testing"
	"time"

	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/types"
)

func TestObserve_Score(t *testing.T) {
	s := New()
	events.Publish([]types.Event{
		events.New(events.RoomVisited, "room", 2),
		events.New(events.RoomVisited, "room", 2),
		events.New(events.RoomVisited, "room", 3),
		events.New(events.ItemTaken, "item", "Rusty Dagger"),
		events.New(events.LootCollected, "item", "Frog Potion"),
		events.New(events.MonsterDefeated, "xp", 10),
		events.New(events.PlayerAttacked, "damage", 18),
	}, s)

	if s.RoomsVisited() != 2 {
		t.Errorf("rooms = %d, want 2", s.RoomsVisited())
	}
	if s.ItemsCollected != 2 || s.MonstersDefeated != 1 {
		t.Errorf("items=%d monsters=%d", s.ItemsCollected, s.MonstersDefeated)
	}
	// 2 rooms * 5 + 2 items * 2 + 10 xp * 10
	if s.Score != 114 {
		t.Errorf("score = %d, want 114", s.Score)
	}
}

func TestLines_PlayTime(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time { return now })
	now = now.Add(time.Hour + 2*time.Minute + 3*time.Second)

	lines := s.Lines(2)
	want := map[string]bool{"Player Level: 2": false, "Play Time: 01:02:03": false}
	for _, l := range lines {
		if _, ok := want[l]; ok {
			want[l] = true
		}
	}
	for l, seen := range want {
		if !seen {
			t.Errorf("missing line %q in %v", l, lines)
		}
	}
}
