package events

import (
	"testing"

	"github.com/nathoo/dungeonexplorer/types"
)

func testHandlers() []types.EventHandler {
	return []types.EventHandler{
		{EventType: ItemTaken, Say: []string{"You picked something up!"}},
		{EventType: RoomEntered, Room: 4, Say: []string{"Dust hangs in the air."}},
		{EventType: ItemTaken, Say: []string{"Your pack grows heavier."}},
	}
}

func TestDispatch_MatchesEventType(t *testing.T) {
	evts := []types.Event{New(ItemTaken, "item", "Rusty Dagger")}

	lines := Dispatch(evts, testHandlers())
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines from 2 matching handlers, got %d", len(lines))
	}
	if lines[0] != "You picked something up!" {
		t.Errorf("unexpected first line %q", lines[0])
	}
}

func TestDispatch_SkipsNonMatchingEventType(t *testing.T) {
	lines := Dispatch([]types.Event{New(PuzzleSolved)}, testHandlers())
	if len(lines) != 0 {
		t.Fatalf("expected 0 lines for non-matching event, got %d", len(lines))
	}
}

func TestDispatch_RoomFilter(t *testing.T) {
	if lines := Dispatch([]types.Event{New(RoomEntered, "room", 2)}, testHandlers()); len(lines) != 0 {
		t.Fatalf("handler for room 4 fired in room 2: %v", lines)
	}
	lines := Dispatch([]types.Event{New(RoomEntered, "room", 4)}, testHandlers())
	if len(lines) != 1 || lines[0] != "Dust hangs in the air." {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestDispatch_NoHandlers(t *testing.T) {
	if lines := Dispatch([]types.Event{New(ItemTaken)}, nil); len(lines) != 0 {
		t.Fatalf("expected 0 lines with no handlers, got %d", len(lines))
	}
}

func TestDispatch_MultipleEvents(t *testing.T) {
	evts := []types.Event{
		New(ItemTaken, "item", "key"),
		New(RoomEntered, "room", 4),
	}
	// item_taken: 2 handlers, room_entered: 1.
	if lines := Dispatch(evts, testHandlers()); len(lines) != 3 {
		t.Fatalf("expected 3 lines from multiple events, got %d", len(lines))
	}
}

type recorder struct{ seen []string }

func (r *recorder) Observe(e types.Event) { r.seen = append(r.seen, e.Type) }

func TestPublish_DeliversInOrder(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Publish([]types.Event{New(RoomVisited), New(ItemTaken)}, a, b)
	for _, r := range []*recorder{a, b} {
		if len(r.seen) != 2 || r.seen[0] != RoomVisited || r.seen[1] != ItemTaken {
			t.Errorf("sink saw %v", r.seen)
		}
	}
}

func TestNew_DataAccessors(t *testing.T) {
	e := New(MonsterAttacked, "damage", 7, "monster", "Gnome", 3)
	if Int(e, "damage") != 7 {
		t.Errorf("damage = %d", Int(e, "damage"))
	}
	if String(e, "monster") != "Gnome" {
		t.Errorf("monster = %q", String(e, "monster"))
	}
	if String(e, "missing") != "" || Int(e, "monster") != 0 {
		t.Error("mismatched or missing keys should read as zero values")
	}
}
