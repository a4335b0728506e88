package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/types"
)

// render turns core events into narration lines.
func render(evts []types.Event) []string {
	var out []string
	for _, e := range evts {
		out = append(out, renderEvent(e)...)
	}
	return out
}

func renderEvent(e types.Event) []string {
	str := func(k string) string { return events.String(e, k) }
	num := func(k string) int { return events.Int(e, k) }

	switch e.Type {
	case events.DoorUnlocked:
		return []string{
			fmt.Sprintf("You use the %s.", str("key")),
			"The door is now unlocked.",
		}
	case events.MoveBlocked:
		return []string{str("reason")}
	case events.MonsterSpawned:
		return []string{fmt.Sprintf("As you explore the room, a %s appears.", str("monster"))}
	case events.BossAwakened:
		return []string{"The ancient guardian's eyes glow with ethereal light as it rises to defend its domain."}

	case events.ItemTaken:
		return []string{fmt.Sprintf("You picked up the %s.", str("item"))}
	case events.ItemDropped:
		return []string{fmt.Sprintf("You dropped the %s.", str("item"))}
	case events.ItemUsed:
		return []string{fmt.Sprintf("You drink the %s and recover %d HP. (%d HP)",
			str("item"), num("healed"), num("health"))}
	case events.ItemEquipped:
		return []string{fmt.Sprintf("You equip the %s (+%d damage).", str("item"), num("damage"))}
	case events.InventoryFull:
		return []string{fmt.Sprintf("Your inventory is full! The %s falls to the floor.", str("item"))}

	case events.PuzzleFailed, events.PuzzleProgress:
		return []string{str("message")}
	case events.PuzzleHint:
		return []string{"Hint: " + str("hint")}
	case events.SequenceShown:
		seq, _ := e.Data["sequence"].([]string)
		return []string{
			fmt.Sprintf("Level %d. Remember this sequence:", num("level")),
			strings.Join(seq, " "),
			"Repeat it with: solve <colour> <colour> ...",
		}
	case events.PuzzleSolved:
		return []string{"Congratulations! You solved the puzzle."}
	case events.RewardGranted:
		return []string{fmt.Sprintf("You found a %s!", str("item"))}

	case events.CombatStarted:
		return []string{
			fmt.Sprintf("Combat begins: %s vs %s", str("player"), str("monster")),
			str("description"),
		}
	case events.CombatRound:
		return []string{fmt.Sprintf("-- Round %d -- You: %d/%d HP | Enemy: %d/%d HP",
			num("round"), num("player_health"), num("player_max"),
			num("monster_health"), num("monster_max"))}
	case events.PlayerAttacked:
		return []string{fmt.Sprintf("You strike the %s for %d damage.", str("monster"), num("damage"))}
	case events.MonsterHealed:
		return []string{
			fmt.Sprintf("%s takes a defensive stance!", str("monster")),
			fmt.Sprintf("%s recovers %d HP.", str("monster"), num("healed")),
		}
	case events.MonsterAttacked:
		special, _ := e.Data["special"].(bool)
		if special {
			return []string{fmt.Sprintf("%s unleashes a devastating slam, dealing %d damage!",
				str("monster"), num("damage"))}
		}
		return []string{fmt.Sprintf("%s %s, dealing %d damage.", str("monster"), str("verb"), num("damage"))}
	case events.MonsterEnraged:
		return []string{fmt.Sprintf("%s enters a berserker rage as its health dwindles.", str("monster"))}
	case events.MonsterFled:
		return []string{
			fmt.Sprintf("%s flees from the battle!", str("monster")),
			"You're safe... for now.",
		}
	case events.FleeFailed:
		return []string{fmt.Sprintf("%s tries to escape but fails!", str("monster"))}
	case events.PlayerEscaped:
		return []string{"You managed to escape from the battle!"}
	case events.EscapeFailed:
		return []string{"You failed to escape!"}
	case events.PotionUsed:
		return []string{fmt.Sprintf("You drink the %s and recover %d HP.", str("item"), num("healed"))}
	case events.ActionCancelled:
		return []string{"You decide not to use a potion."}
	case events.ActionWasted:
		return []string{str("reason")}
	case events.MonsterDefeated:
		return []string{
			fmt.Sprintf("%s has been defeated!", str("monster")),
			fmt.Sprintf("You gained %d experience points.", num("xp")),
		}
	case events.LootCollected:
		return []string{fmt.Sprintf("You collect the %s.", str("item"))}
	case events.PlayerDefeated:
		return []string{
			fmt.Sprintf("You have been defeated by %s!", str("monster")),
			"GAME OVER",
		}
	}
	return nil
}
