// Package events defines the structured events emitted by the core and
// implements single-pass handler dispatch. Handlers produce narration but
// never emit further events.
package events

import "github.com/nathoo/dungeonexplorer/types"

// Event types emitted by the core.
const (
	RoomEntered    = "room_entered"
	RoomVisited    = "room_visited"
	MoveBlocked    = "move_blocked"
	DoorUnlocked   = "door_unlocked"
	MonsterSpawned = "monster_spawned"
	BossAwakened   = "boss_awakened"

	ItemTaken     = "item_taken"
	ItemDropped   = "item_dropped"
	ItemUsed      = "item_used"
	ItemEquipped  = "item_equipped"
	InventoryFull = "inventory_full"

	PuzzleFailed   = "puzzle_failed"
	PuzzleProgress = "puzzle_progress"
	PuzzleHint     = "puzzle_hint"
	SequenceShown  = "sequence_shown"
	PuzzleSolved   = "puzzle_solved"
	RewardGranted  = "reward_granted"

	CombatStarted   = "combat_started"
	CombatRound     = "combat_round"
	PlayerAttacked  = "player_attacked"
	MonsterAttacked = "monster_attacked"
	MonsterHealed   = "monster_healed"
	MonsterEnraged  = "monster_enraged"
	MonsterFled     = "monster_fled"
	FleeFailed      = "flee_failed"
	PlayerEscaped   = "player_escaped"
	EscapeFailed    = "escape_failed"
	PotionUsed      = "potion_used"
	ActionCancelled = "action_cancelled"
	ActionWasted    = "action_wasted"
	MonsterDefeated = "monster_defeated"
	PlayerDefeated  = "player_defeated"
	LootCollected   = "loot_collected"
)

// New builds an event from alternating key/value pairs.
func New(eventType string, kv ...any) types.Event {
	data := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			data[k] = kv[i+1]
		}
	}
	return types.Event{Type: eventType, Data: data}
}

// Sink receives every event the session emits, after the turn that
// produced them.
type Sink interface {
	Observe(types.Event)
}

// Publish delivers events to each sink in order.
func Publish(evts []types.Event, sinks ...Sink) {
	for _, e := range evts {
		for _, s := range sinks {
			s.Observe(e)
		}
	}
}

// Dispatch runs the world's event handlers against the emitted events.
// Single pass: a handler matches on event type and, when it names a room,
// on the event's "room" value. Returns the narration lines produced.
func Dispatch(evts []types.Event, handlers []types.EventHandler) []string {
	var out []string
	for _, event := range evts {
		for _, h := range handlers {
			if h.EventType != event.Type {
				continue
			}
			if h.Room != 0 {
				room, _ := event.Data["room"].(int)
				if room != h.Room {
					continue
				}
			}
			out = append(out, h.Say...)
		}
	}
	return out
}

// Int reads an int field from event data.
func Int(e types.Event, key string) int {
	v, _ := e.Data[key].(int)
	return v
}

// String reads a string field from event data.
func String(e types.Event, key string) string {
	v, _ := e.Data[key].(string)
	return v
}
