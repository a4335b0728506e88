package loader

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nathoo/dungeonexplorer/engine/entity"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/puzzle"
	"github.com/nathoo/dungeonexplorer/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Known item kinds.
var validItemKinds = map[string]bool{
	"weapon": true,
	"potion": true,
	"key":    true,
}

// validate checks the compiled world for referential integrity.
func validate(def *types.WorldDef) error {
	ve := &ValidationError{}

	if def.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}

	if def.Game.Start == 0 {
		ve.Errors = append(ve.Errors, "Game.start is required")
	} else if _, ok := def.Rooms[def.Game.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %d not found in defined rooms", def.Game.Start))
	}

	validateItems("player", def.Player.Items, ve)

	// Iterate in id order so messages are stable.
	ids := make([]int, 0, len(def.Rooms))
	for id := range def.Rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		room := def.Rooms[id]
		where := fmt.Sprintf("room %d", id)
		if room.Name == "" {
			ve.Errors = append(ve.Errors, where+" has no name")
		}
		validateItems(where, room.Items, ve)

		if room.Monster != "" {
			if _, err := entity.ParseMonsterKind(room.Monster); err != nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %v", where, err))
			}
		}

		for _, exit := range room.Exits {
			if _, ok := def.Rooms[exit.To]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s exit points to undefined room %d", where, exit.To))
			}
			if exit.To == id {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s has an exit to itself", where))
			}
			if exit.KeyType != "" {
				if _, err := item.ParseKeyType(exit.KeyType); err != nil {
					ve.Errors = append(ve.Errors, fmt.Sprintf("%s exit to %d: %v", where, exit.To, err))
				}
			}
		}
		if len(room.Exits) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s has no exits", where))
		}

		if p := room.Puzzle; p != nil {
			if _, err := puzzle.ParseKind(p.Kind); err != nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %v", where, err))
			}
			if p.Kind == "riddle" && (p.Question == "") != (p.Answer == "") {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: riddle needs both question and answer, or neither", where))
			}
			if p.Reward != nil {
				validateItems(where+" reward", []types.ItemDef{*p.Reward}, ve)
			}
		}
	}

	for _, h := range def.Handlers {
		if h.Room != 0 {
			if _, ok := def.Rooms[h.Room]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"handler for %q refers to undefined room %d", h.EventType, h.Room))
			}
		}
		if len(h.Say) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("handler for %q says nothing", h.EventType))
		}
	}

	for _, w := range ve.Warnings {
		slog.Warn("world definition", "warning", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateItems(where string, items []types.ItemDef, ve *ValidationError) {
	for _, it := range items {
		if !validItemKinds[it.Kind] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown item kind %q", where, it.Kind))
			continue
		}
		if it.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s has no name", where, it.Kind))
		}
		switch it.Kind {
		case "weapon":
			if it.Damage < 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: weapon %q has negative damage", where, it.Name))
			}
		case "potion":
			if it.Heal <= 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: potion %q heals nothing", where, it.Name))
			}
		case "key":
			if _, err := item.ParseKeyType(it.KeyType); err != nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: key %q: %v", where, it.Name, err))
			}
		}
	}
}
