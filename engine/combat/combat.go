// Package combat implements the turn-based encounter between the player and
// a single monster.
package combat

import (
	"errors"

	"github.com/nathoo/dungeonexplorer/engine/entity"
	"github.com/nathoo/dungeonexplorer/engine/events"
	"github.com/nathoo/dungeonexplorer/engine/item"
	"github.com/nathoo/dungeonexplorer/engine/rng"
	"github.com/nathoo/dungeonexplorer/types"
)

// ErrEncounterOver is returned when acting in a finished encounter.
var ErrEncounterOver = errors.New("the fight is over")

// Roll thresholds, in percent.
const (
	MonsterFleeChance  = 40
	PlayerEscapeChance = 60
)

// ActionKind is the player's choice for a round.
type ActionKind int

const (
	Attack ActionKind = iota
	UsePotion
	Run
	Equip
	Invalid
)

func (k ActionKind) String() string {
	switch k {
	case Attack:
		return "attack"
	case UsePotion:
		return "potion"
	case Run:
		return "run"
	case Equip:
		return "equip"
	default:
		return "invalid"
	}
}

// Action is one player decision. Choice is the 1-based potion index for
// UsePotion; 0 cancels.
type Action struct {
	Kind   ActionKind
	Choice int
}

// Outcome is the encounter state.
type Outcome int

const (
	Active Outcome = iota
	PlayerDefeated
	MonsterDefeated
	MonsterFled
	PlayerEscaped
)

func (o Outcome) String() string {
	switch o {
	case Active:
		return "active"
	case PlayerDefeated:
		return "player defeated"
	case MonsterDefeated:
		return "monster defeated"
	case MonsterFled:
		return "monster fled"
	case PlayerEscaped:
		return "player escaped"
	default:
		return "unknown"
	}
}

// Spoils are what a victory yields. Overflow holds loot that did not fit in
// the inventory; the caller places it on the room floor.
type Spoils struct {
	XP        int
	Collected []item.Item
	Overflow  []item.Item
}

// Encounter is one fight. Create it with Start and advance it with Act.
type Encounter struct {
	Player  *entity.Player
	Monster *entity.Monster

	Round    int
	Behavior entity.Behavior
	Spoils   Spoils

	src         rng.Source
	outcome     Outcome
	monsterIdle bool
	log         []types.Event
}

// Start begins an encounter and opens the first round. The monster may flee
// before the player gets to act.
func Start(p *entity.Player, m *entity.Monster, src rng.Source) (*Encounter, []types.Event) {
	e := &Encounter{Player: p, Monster: m, src: src}
	evts := []types.Event{events.New(events.CombatStarted,
		"player", p.Name, "monster", m.Name, "description", m.Description)}
	if !p.Alive() {
		e.outcome = PlayerDefeated
		return e, e.record(evts)
	}
	if !m.Alive() {
		e.outcome = MonsterDefeated
		return e, e.record(evts)
	}
	evts = append(evts, e.beginRound()...)
	return e, e.record(evts)
}

// Outcome returns the encounter state.
func (e *Encounter) Outcome() Outcome { return e.outcome }

// Done reports whether the encounter has ended.
func (e *Encounter) Done() bool { return e.outcome != Active }

// Log returns every event the encounter has produced.
func (e *Encounter) Log() []types.Event { return e.log }

func (e *Encounter) record(evts []types.Event) []types.Event {
	e.log = append(e.log, evts...)
	return evts
}

// beginRound recomputes the monster's stance and resolves its flee roll.
func (e *Encounter) beginRound() []types.Event {
	e.Round++
	e.monsterIdle = false
	m := e.Monster
	e.Behavior = m.DecideBehavior()
	evts := []types.Event{events.New(events.CombatRound,
		"round", e.Round, "behavior", e.Behavior.String(),
		"player_health", e.Player.Health, "player_max", e.Player.MaxHealth,
		"monster_health", m.Health, "monster_max", m.MaxHealth)}

	if m.Enraged() {
		evts = append(evts, events.New(events.MonsterEnraged, "monster", m.Name))
	}
	if e.Behavior == entity.Fleeing {
		if rng.Chance(e.src, MonsterFleeChance) {
			e.outcome = MonsterFled
			return append(evts, events.New(events.MonsterFled, "monster", m.Name))
		}
		e.monsterIdle = true
		evts = append(evts, events.New(events.FleeFailed, "monster", m.Name))
	}
	return evts
}

// Act resolves the player's action, the monster's reply and opens the next
// round. An out-of-range potion choice returns item.ErrInvalidSelection
// and does not use up the round.
func (e *Encounter) Act(a Action) ([]types.Event, error) {
	if e.Done() {
		return nil, ErrEncounterOver
	}
	p, m := e.Player, e.Monster
	var evts []types.Event

	switch a.Kind {
	case Attack:
		dmg, err := entity.Strike(&p.Creature, &m.Creature, p.AttackDamage())
		if err != nil {
			return nil, err
		}
		evts = append(evts, events.New(events.PlayerAttacked,
			"monster", m.Name, "damage", dmg, "health", m.Health))

	case UsePotion:
		if a.Choice == 0 {
			evts = append(evts, events.New(events.ActionCancelled))
			break
		}
		potion, healed, err := p.UsePotion(a.Choice)
		if err != nil {
			return nil, err
		}
		evts = append(evts, events.New(events.PotionUsed,
			"item", potion.Name, "healed", healed, "health", p.Health))

	case Run:
		if rng.Chance(e.src, PlayerEscapeChance) {
			e.outcome = PlayerEscaped
			evts = append(evts, events.New(events.PlayerEscaped, "monster", m.Name))
			return e.record(evts), nil
		}
		e.monsterIdle = true
		evts = append(evts, events.New(events.EscapeFailed, "monster", m.Name))

	case Equip:
		if w, ok := p.EquipStrongest(); ok {
			evts = append(evts, events.New(events.ItemEquipped, "item", w.Name, "damage", w.Damage))
		} else {
			evts = append(evts, events.New(events.ActionWasted, "reason", "You have no weapon to equip."))
		}

	default:
		evts = append(evts, events.New(events.ActionWasted, "reason", "Invalid choice. You lose your turn!"))
	}

	if !m.Alive() {
		evts = append(evts, e.victory()...)
		return e.record(evts), nil
	}

	if !e.monsterIdle {
		evts = append(evts, e.monsterTurn()...)
	}

	if !p.Alive() {
		e.outcome = PlayerDefeated
		evts = append(evts, events.New(events.PlayerDefeated, "monster", m.Name))
		return e.record(evts), nil
	}

	evts = append(evts, e.beginRound()...)
	return e.record(evts), nil
}

func (e *Encounter) monsterTurn() []types.Event {
	p, m := e.Player, e.Monster
	var evts []types.Event

	swing, ok := m.NextSwing()
	if !ok {
		return nil
	}
	if e.Behavior == entity.Defensive {
		if healed := m.Heal(m.MaxHealth / 10); healed > 0 {
			evts = append(evts, events.New(events.MonsterHealed,
				"monster", m.Name, "healed", healed, "health", m.Health))
		}
		swing.Raw /= 2
	}
	dmg, err := entity.Strike(&m.Creature, &p.Creature, swing.Raw)
	if err != nil {
		return evts
	}
	return append(evts, events.New(events.MonsterAttacked,
		"monster", m.Name, "verb", m.AttackVerb(), "damage", dmg,
		"special", swing.Special, "defensive", e.Behavior == entity.Defensive,
		"health", p.Health))
}

// victory grants experience and hands over the loot once.
func (e *Encounter) victory() []types.Event {
	p, m := e.Player, e.Monster
	e.outcome = MonsterDefeated
	e.Spoils.XP = m.XP
	p.GainExperience(m.XP)
	evts := []types.Event{events.New(events.MonsterDefeated,
		"monster", m.Name, "xp", m.XP)}

	for _, it := range m.DrainLoot() {
		if err := p.AddItem(it); err != nil {
			e.Spoils.Overflow = append(e.Spoils.Overflow, it)
			evts = append(evts, events.New(events.InventoryFull, "item", it.Name))
			continue
		}
		e.Spoils.Collected = append(e.Spoils.Collected, it)
		evts = append(evts, events.New(events.LootCollected, "item", it.Name))
	}
	return evts
}

// ActionSource supplies player decisions. NextAction returns false when no
// more input is available. Rejected reports an action Act refused; the
// source is then asked again.
type ActionSource interface {
	NextAction(enc *Encounter) (Action, bool)
	Rejected(a Action, err error)
}

// Script is an ActionSource that plays a fixed list of actions.
type Script struct {
	Actions  []Action
	Refusals []error // errors for rejected actions, in order
	next     int
}

// NewScript returns a Script over the given actions.
func NewScript(actions ...Action) *Script {
	return &Script{Actions: actions}
}

// NextAction returns the next scripted action.
func (s *Script) NextAction(*Encounter) (Action, bool) {
	if s.next >= len(s.Actions) {
		return Action{}, false
	}
	a := s.Actions[s.next]
	s.next++
	return a, true
}

// Rejected records why an action was refused.
func (s *Script) Rejected(_ Action, err error) {
	s.Refusals = append(s.Refusals, err)
}

// Play drives the encounter until it ends or the source runs dry.
func Play(enc *Encounter, src ActionSource) Outcome {
	for !enc.Done() {
		a, ok := src.NextAction(enc)
		if !ok {
			break
		}
		if _, err := enc.Act(a); err != nil {
			src.Rejected(a, err)
		}
	}
	return enc.Outcome()
}
