package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nathoo/dungeonexplorer/engine/combat"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/world"
	"github.com/nathoo/dungeonexplorer/types"
)

// infoVerbs are the commands that do not use up a combat round.
var infoVerbs = map[string]bool{
	"look":      true,
	"inventory": true,
	"stats":     true,
	"help":      true,
}

// combatAction maps a combat command to an action. ok is false when the
// command needs more input and the round should not be played.
func combatAction(intent types.Intent) (a combat.Action, ok bool) {
	switch intent.Verb {
	case "attack":
		return combat.Action{Kind: combat.Attack}, true
	case "run", "go":
		return combat.Action{Kind: combat.Run}, true
	case "equip":
		return combat.Action{Kind: combat.Equip}, true
	case "potion", "use":
		n, err := strconv.Atoi(strings.TrimSpace(intent.Object))
		if err != nil {
			return combat.Action{Kind: combat.UsePotion}, false
		}
		return combat.Action{Kind: combat.UsePotion, Choice: n}, true
	default:
		return combat.Action{Kind: combat.Invalid}, true
	}
}

// combatCommand handles a command while a fight is in progress.
func (e *Engine) combatCommand(ctx context.Context, intent types.Intent, t *turn) {
	if infoVerbs[intent.Verb] {
		e.command(ctx, intent, t)
		return
	}

	action, ok := combatAction(intent)
	if !ok {
		t.say(e.potionMenu()...)
		return
	}

	_, span := e.tracer.Start(ctx, "combat.round")
	defer span.End()
	span.SetAttributes(
		attribute.String("action", action.Kind.String()),
		attribute.Int("round", e.encounter.Round),
		attribute.String("monster", e.encounter.Monster.Name),
	)

	evts, err := e.encounter.Act(action)
	if err != nil {
		switch {
		case errors.Is(err, item.ErrInvalidSelection):
			t.say("Invalid selection.")
			t.say(e.potionMenu()...)
		default:
			t.say(err.Error())
		}
		return
	}
	e.emit(t, tagRoom(evts, e.encounterRoom.ID))
	e.settle(t)
}

// potionMenu lists the potions available in combat.
func (e *Engine) potionMenu() []string {
	potions := e.Player.Inventory.Potions()
	if len(potions) == 0 {
		return []string{"You don't have any potions!"}
	}
	out := []string{"Available Potions:"}
	for i, p := range potions {
		out = append(out, fmt.Sprintf("  %d. %s (Heals %d HP)", i+1, p.Name, p.Heal))
	}
	return append(out, "Select a potion with: potion <n> (potion 0 to cancel)")
}

// startCombat opens an encounter with the live monster in room.
func (e *Engine) startCombat(ctx context.Context, room *world.Room, t *turn) {
	m := room.LiveMonster()
	if m == nil {
		return
	}
	_, span := e.tracer.Start(ctx, "combat.start")
	defer span.End()
	span.SetAttributes(
		attribute.String("monster", m.Name),
		attribute.Int("room", room.ID),
		attribute.Int("player_health", e.Player.Health),
	)

	enc, evts := combat.Start(e.Player, m, e.src)
	span.SetAttributes(attribute.String("outcome", enc.Outcome().String()))
	e.encounter = enc
	e.encounterRoom = room
	e.log.Debug("combat started", "room", room.ID, "monster", m.Name)
	e.emit(t, tagRoom(evts, room.ID))
	e.settle(t)
}

// settle applies the consequences of a finished encounter.
func (e *Engine) settle(t *turn) {
	enc := e.encounter
	if enc == nil || !enc.Done() {
		if enc != nil {
			t.say("What will you do? (attack, potion [n], run, equip)")
		}
		return
	}

	room := e.encounterRoom
	switch enc.Outcome() {
	case combat.MonsterDefeated:
		for _, it := range enc.Spoils.Overflow {
			room.DropItem(it)
		}
	case combat.MonsterFled:
		room.Monster = nil
	case combat.PlayerDefeated:
		e.gameOver = true
	}
	e.log.Debug("combat ended", "room", room.ID, "monster", enc.Monster.Name,
		"outcome", enc.Outcome().String(), "rounds", enc.Round)

	e.encounter = nil
	e.encounterRoom = nil
}
