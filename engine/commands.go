package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/resolve"
	"github.com/nathoo/dungeonexplorer/engine/world"
	"github.com/nathoo/dungeonexplorer/types"
)

// command handles a command outside combat.
func (e *Engine) command(ctx context.Context, intent types.Intent, t *turn) {
	switch intent.Verb {
	case "look":
		t.say(e.describeRoom(e.World.Current())...)
	case "inventory":
		t.say(e.describeInventory(intent.Object)...)
	case "take":
		e.cmdTake(intent.Object, t)
	case "go":
		e.cmdGo(ctx, intent.Object, t)
	case "use":
		e.cmdUse(intent.Object, t)
	case "equip":
		e.cmdEquip(intent.Object, t)
	case "discard":
		e.cmdDiscard(intent.Object, t)
	case "solve":
		e.cmdSolve(ctx, intent.Object, t)
	case "engage":
		e.cmdEngage(ctx, t)
	case "stats":
		t.say(e.describePlayer()...)
		t.say(e.Stats.Lines(e.Player.Level())...)
	case "help":
		t.say(helpLines...)
	case "attack", "run", "potion":
		t.say("There is nothing to fight here.")
	default:
		t.say(fmt.Sprintf("I don't know how to %q. Type help for a list of commands.", intent.Verb))
	}
}

var helpLines = []string{
	"Exploring:",
	"  look (l)                 Describe the room",
	"  go <room> / <room>       Move to a connected room",
	"  take <n>                 Pick up item n from the floor",
	"  inventory [weapons|potions|name]",
	"  use <n>                  Drink a potion or equip a weapon",
	"  equip [n]                Equip weapon n, or the strongest",
	"  discard <n>              Drop item n",
	"  solve <answer>           Attempt the room's puzzle",
	"  engage                   Attack the monster in the room",
	"  stats                    Show player and game statistics",
	"In combat:",
	"  attack (a)  potion [n]  run  equip",
}

// itemRef resolves an item number or name against items. When it fails
// it says why and reports false.
func itemRef(object string, items []item.Item, usage string, t *turn) (int, bool) {
	idx, err := resolve.Index(object, items)
	var amb *resolve.AmbiguityError
	var nf *resolve.NotFoundError
	switch {
	case err == nil:
		return idx, true
	case errors.Is(err, resolve.ErrNoReference):
		t.say(usage)
	case errors.As(err, &amb), errors.As(err, &nf):
		t.say(err.Error())
	default:
		t.say("Invalid item number.")
	}
	return 0, false
}

func (e *Engine) cmdTake(object string, t *turn) {
	room := e.World.Current()
	if len(room.Items) == 0 {
		t.say("There are no items in this room.")
		return
	}
	idx, ok := itemRef(object, room.Items, "Take what? Use: take <item number>", t)
	if !ok {
		return
	}
	it, err := room.TakeItem(idx, e.Player)
	switch {
	case errors.Is(err, item.ErrInventoryFull):
		t.say("Your inventory is full. Discard something first.")
	case err != nil:
		t.say("Invalid item number.")
	default:
		e.emit(t, []types.Event{events.New(events.ItemTaken, "room", room.ID, "item", it.Name)})
	}
}

func (e *Engine) cmdGo(ctx context.Context, object string, t *turn) {
	target, err := strconv.Atoi(strings.TrimSpace(object))
	if err != nil {
		t.say("Go where? Use: go <room number>")
		return
	}

	_, span := e.tracer.Start(ctx, "world.move")
	defer span.End()
	from := e.World.Current().ID
	span.SetAttributes(attribute.Int("from", from), attribute.Int("to", target))

	arr, err := e.World.Move(e.Player, target, e.src)
	if err != nil {
		var mk *world.MissingKeyError
		reason := "You cannot go there from here."
		if errors.As(err, &mk) {
			reason = fmt.Sprintf("This door is locked and requires a %s Key.", mk.Key)
		}
		span.SetAttributes(attribute.Bool("blocked", true))
		e.log.Debug("move blocked", "from", from, "to", target, "err", err)
		e.emit(t, []types.Event{events.New(events.MoveBlocked, "room", target, "reason", reason)})
		if mk != nil {
			t.say("You don't have the required key.")
		}
		return
	}

	e.log.Debug("moved", "from", from, "to", target, "first_visit", arr.FirstVisit, "spawned", arr.Spawned)
	e.emit(t, arr.Events)
	t.say(e.describeRoom(arr.Room)...)

	m := arr.Room.LiveMonster()
	switch {
	case m == nil:
	case arr.Engage:
		e.startCombat(ctx, arr.Room, t)
	default:
		t.say(
			fmt.Sprintf("The %s is in the room but seems distracted by the puzzle mechanism.", m.Name),
			"You might have time to solve the puzzle before engaging it.",
		)
	}
}

func (e *Engine) cmdUse(object string, t *turn) {
	idx, ok := itemRef(object, e.Player.Inventory.Items(), "Use what? Use: use <item number>", t)
	if !ok {
		return
	}
	it, err := e.Player.Inventory.At(idx)
	if err != nil {
		t.say("Invalid item number.")
		return
	}
	switch it.Kind {
	case item.KindPotion:
		potion, healed, err := e.Player.DrinkPotion(idx)
		if err != nil {
			t.say("Invalid item number.")
			return
		}
		e.emit(t, []types.Event{events.New(events.ItemUsed,
			"item", potion.Name, "healed", healed, "health", e.Player.Health)})
	case item.KindWeapon:
		e.equipAt(idx, t)
	default:
		t.say(fmt.Sprintf("The %s opens locked doors. Walk through one to use it.", it.Name))
	}
}

func (e *Engine) cmdEquip(object string, t *turn) {
	if strings.TrimSpace(object) == "" {
		w, ok := e.Player.EquipStrongest()
		if !ok {
			t.say("You have no weapon to equip.")
			return
		}
		e.emit(t, []types.Event{events.New(events.ItemEquipped, "item", w.Name, "damage", w.Damage)})
		return
	}
	idx, ok := itemRef(object, e.Player.Inventory.Items(), "Equip what? Use: equip <item number>", t)
	if !ok {
		return
	}
	e.equipAt(idx, t)
}

func (e *Engine) equipAt(idx int, t *turn) {
	w, err := e.Player.Equip(idx)
	if err != nil {
		if it, atErr := e.Player.Inventory.At(idx); atErr == nil {
			t.say(fmt.Sprintf("The %s is not a weapon.", it.Name))
			return
		}
		t.say("Invalid item number.")
		return
	}
	e.emit(t, []types.Event{events.New(events.ItemEquipped, "item", w.Name, "damage", w.Damage)})
}

func (e *Engine) cmdDiscard(object string, t *turn) {
	idx, ok := itemRef(object, e.Player.Inventory.Items(), "Discard what? Use: discard <item number>", t)
	if !ok {
		return
	}
	it, err := e.Player.RemoveAt(idx)
	if err != nil {
		t.say("Invalid item number.")
		return
	}
	room := e.World.Current()
	room.DropItem(it)
	e.emit(t, []types.Event{events.New(events.ItemDropped, "room", room.ID, "item", it.Name)})
}

func (e *Engine) cmdSolve(ctx context.Context, answer string, t *turn) {
	room := e.World.Current()
	if !room.Gated() {
		t.say("There is no unsolved puzzle in this room.")
		return
	}
	if strings.TrimSpace(answer) == "" {
		t.say(room.Puzzle.Describe()...)
		return
	}

	_, span := e.tracer.Start(ctx, "puzzle.attempt")
	span.SetAttributes(attribute.Int("room", room.ID), attribute.String("kind", room.Puzzle.Kind.String()))
	out := room.Puzzle.Attempt(answer, e.Player)
	span.SetAttributes(attribute.Bool("solved", out.Solved))
	span.End()

	e.emit(t, tagRoom(out.Events, room.ID))
	if out.Dropped != nil {
		room.DropItem(*out.Dropped)
	}
	if !out.Solved {
		return
	}

	e.log.Debug("puzzle solved", "room", room.ID, "kind", room.Puzzle.Kind.String())
	if m := room.LiveMonster(); m != nil {
		t.say(
			fmt.Sprintf("The %s takes notice of you now that the puzzle is solved!", m.Name),
			"Prepare for combat!",
		)
		e.startCombat(ctx, room, t)
	}
}

func (e *Engine) cmdEngage(ctx context.Context, t *turn) {
	room := e.World.Current()
	m := room.LiveMonster()
	if m == nil {
		t.say("There is no monster to engage in this room.")
		return
	}
	t.say(fmt.Sprintf("You approach the %s ready for battle!", m.Name))
	e.startCombat(ctx, room, t)
}

// describeRoom produces the standard room description output.
func (e *Engine) describeRoom(room *world.Room) []string {
	if room == nil {
		return []string{"You are somewhere unknown."}
	}
	out := []string{
		fmt.Sprintf("==== %s ====", room.Name),
		room.Description,
	}
	if m := room.LiveMonster(); m != nil {
		out = append(out, fmt.Sprintf("Monster: %s - %s", m.Name, m.Description))
	}

	out = append(out, "Exits:")
	for _, edge := range room.Exits() {
		name := "Unknown Room"
		if r, ok := e.World.Room(edge.To); ok {
			name = r.Name
		}
		line := fmt.Sprintf("  %d. %s", edge.To, name)
		if edge.Locked {
			line += fmt.Sprintf(" (Locked: %s Key)", edge.Key)
		}
		out = append(out, line)
	}

	if len(room.Items) == 0 {
		out = append(out, "There are no items in this room.")
	} else {
		out = append(out, "Items in this room:")
		for i, it := range room.Items {
			out = append(out, fmt.Sprintf("  %d. %s - %s", i+1, it.Name, it.Description))
		}
	}

	if room.Puzzle != nil {
		if room.Puzzle.Solved() {
			out = append(out, "Puzzle Status: SOLVED")
		} else {
			out = append(out, room.Puzzle.Describe()...)
		}
	}
	return out
}

// describeInventory lists the inventory, optionally filtered or sorted.
func (e *Engine) describeInventory(view string) []string {
	inv := e.Player.Inventory
	out := []string{fmt.Sprintf("===== INVENTORY (%d/%d) =====", inv.Len(), inv.Capacity())}
	if inv.Len() == 0 {
		return append(out, "Your inventory is empty.")
	}

	equipped := e.Player.EquippedID()
	line := func(prefix string, it item.Item) string {
		s := fmt.Sprintf("%s%s - %s (%s)", prefix, it.Name, it.Description, it.Detail())
		if it.ID == equipped {
			s += " [equipped]"
		}
		return s
	}

	switch view {
	case "weapons", "weapon":
		for _, it := range inv.Filter(item.KindWeapon) {
			out = append(out, line("- ", it))
		}
	case "potions", "potion":
		for i, it := range inv.Potions() {
			out = append(out, line(fmt.Sprintf("%d. ", i+1), it))
		}
	case "name", "sort", "sorted":
		for _, it := range inv.SortedByName() {
			out = append(out, line("- ", it))
		}
	default:
		for i, it := range inv.Items() {
			out = append(out, line(fmt.Sprintf("%d. ", i+1), it))
		}
	}
	if len(out) == 1 {
		out = append(out, "Nothing matches.")
	}
	return out
}

func (e *Engine) describePlayer() []string {
	p := e.Player
	out := []string{
		"================================",
		"     PLAYER STATISTICS          ",
		"================================",
		fmt.Sprintf("Name: %s", p.Name),
		fmt.Sprintf("Health: %d/%d", p.Health, p.MaxHealth),
		fmt.Sprintf("Attack Power: %d", p.Attack),
		fmt.Sprintf("Defense: %d", p.Defense),
		fmt.Sprintf("Gold: %d", p.Gold),
		fmt.Sprintf("Level: %d (Experience: %d)", p.Level(), p.Experience),
	}
	if w, ok := p.Equipped(); ok {
		out = append(out, fmt.Sprintf("Equipped Weapon: %s (+%d damage)", w.Name, w.Damage))
	} else {
		out = append(out, "No weapon equipped")
	}
	return out
}
