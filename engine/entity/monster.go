package entity

import (
	"fmt"
	"strings"

	"github.com/nathoo/dungeonexplorer/engine/item"
)

// MonsterKind is the closed set of monster variants.
type MonsterKind int

const (
	Frog MonsterKind = iota
	Gnome
	Seagull
	Boss
)

// String returns the lowercase kind name used in world definitions.
func (k MonsterKind) String() string {
	switch k {
	case Frog:
		return "frog"
	case Gnome:
		return "gnome"
	case Seagull:
		return "seagull"
	case Boss:
		return "boss"
	default:
		return "unknown"
	}
}

// ParseMonsterKind converts a kind name to a MonsterKind.
func ParseMonsterKind(s string) (MonsterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frog":
		return Frog, nil
	case "gnome":
		return Gnome, nil
	case "seagull":
		return Seagull, nil
	case "boss", "guardian":
		return Boss, nil
	}
	return 0, fmt.Errorf("unknown monster kind %q", s)
}

// Behavior is the stance a monster takes for a combat round.
type Behavior int

const (
	Aggressive Behavior = iota
	Defensive
	Fleeing
)

func (b Behavior) String() string {
	switch b {
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	case Fleeing:
		return "fleeing"
	default:
		return "unknown"
	}
}

// BossCooldown is the number of normal attacks between boss slams.
const BossCooldown = 3

// BossRageThreshold is the health fraction below which the boss rages.
const BossRageThreshold = 0.3

type monsterStats struct {
	name        string
	description string
	health      int
	attack      int
	defense     int
	xp          int
	verb        string
	loot        func() []item.Item
}

var kinds = map[MonsterKind]monsterStats{
	Frog: {
		name: "Frog monster", description: "You have encountered an oversized frog.",
		health: 20, attack: 5, defense: 2, xp: 10,
		verb: "leaps at you and attacks with its tongue",
		loot: func() []item.Item {
			return []item.Item{item.NewPotion("Frog Potion", "A strange potion made from frog essence", 15)}
		},
	},
	Gnome: {
		name: "Gnome", description: "You have encountered a mischievous gnome.",
		health: 25, attack: 6, defense: 4, xp: 12,
		verb: "drops a plant pot on you",
		loot: func() []item.Item {
			return []item.Item{item.NewWeapon("Gardening Shovel", "A tiny but effective tool", 8)}
		},
	},
	Seagull: {
		name: "Seagull", description: "You have encountered an angry giant seagull.",
		health: 30, attack: 7, defense: 2, xp: 13,
		verb: "pecks at you aggressively",
		loot: func() []item.Item {
			return []item.Item{
				item.NewPotion("Feather Essence", "A potion made from magical feathers", 18),
				item.NewKey("Bronze Key", "A key the seagull had been carrying", item.Bronze),
			}
		},
	},
	Boss: {
		name: "Ancient Guardian", description: "A massive stone guardian awakens before you.",
		health: 75, attack: 15, defense: 10, xp: 50,
		verb: "swings its massive fist at you",
		loot: func() []item.Item {
			return []item.Item{
				item.NewWeapon("Guardian's Hammer", "An ancient weapon of immense power", 20),
				item.NewPotion("Elixir of Life", "A legendary healing potion", 50),
				item.NewKey("Crystal Key", "The key to the castle's treasure room", item.Crystal),
			}
		},
	},
}

// Monster is a hostile creature. Its loot is handed over exactly once, on
// defeat.
type Monster struct {
	Creature
	Kind        MonsterKind
	Description string
	XP          int

	// Active and Cooldown only matter for the boss.
	Active   bool
	Cooldown int

	loot    []item.Item
	drained bool
}

// NewMonster creates a fresh monster of the given kind with its loot.
func NewMonster(kind MonsterKind) *Monster {
	st, ok := kinds[kind]
	if !ok {
		st = kinds[Frog]
		kind = Frog
	}
	return &Monster{
		Creature:    NewCreature(st.name, st.health, st.attack, st.defense),
		Kind:        kind,
		Description: st.description,
		XP:          st.xp,
		loot:        st.loot(),
	}
}

// DecideBehavior picks the stance for this round from the health fraction.
func (m *Monster) DecideBehavior() Behavior {
	frac := m.HealthFraction()
	switch m.Kind {
	case Boss:
		return Aggressive
	case Gnome:
		if frac < 0.4 {
			return Fleeing
		}
		return Aggressive
	}
	switch {
	case frac < 0.2:
		return Fleeing
	case frac < 0.5:
		return Defensive
	default:
		return Aggressive
	}
}

// Enraged reports whether the boss is below its rage threshold.
func (m *Monster) Enraged() bool {
	return m.Kind == Boss && m.Alive() && m.HealthFraction() < BossRageThreshold
}

// Activate wakes the boss. It reports whether the call changed anything.
func (m *Monster) Activate() bool {
	if m.Kind != Boss || m.Active {
		return false
	}
	m.Active = true
	return true
}

// AttackVerb describes how this monster attacks.
func (m *Monster) AttackVerb() string {
	return kinds[m.Kind].verb
}

// Swing is a monster's attack for one round.
type Swing struct {
	Raw     int
	Special bool
}

// NextSwing returns this round's attack and advances the boss cooldown.
// An inactive boss does not attack.
func (m *Monster) NextSwing() (Swing, bool) {
	if !m.Alive() {
		return Swing{}, false
	}
	if m.Kind != Boss {
		return Swing{Raw: m.Attack}, true
	}
	if !m.Active {
		return Swing{}, false
	}
	if m.Cooldown <= 0 {
		m.Cooldown = BossCooldown
		return Swing{Raw: m.Attack * 2, Special: true}, true
	}
	m.Cooldown--
	return Swing{Raw: m.Attack}, true
}

// Loot returns a copy of the undelivered loot.
func (m *Monster) Loot() []item.Item {
	out := make([]item.Item, len(m.loot))
	copy(out, m.loot)
	return out
}

// AddLoot gives the monster an extra item to drop.
func (m *Monster) AddLoot(it item.Item) {
	if !m.drained {
		m.loot = append(m.loot, it)
	}
}

// DrainLoot hands over the loot of a defeated monster. It returns nil if the
// monster is alive or the loot was already taken.
func (m *Monster) DrainLoot() []item.Item {
	if m.Alive() || m.drained {
		return nil
	}
	out := m.loot
	m.loot = nil
	m.drained = true
	return out
}
