// Package entity models the creatures of the dungeon: the shared health
// arithmetic, the player and the monster kinds.
package entity

import "errors"

// ErrInvalidTarget is returned when an attack involves a missing or
// defeated creature. The attack has no effect.
var ErrInvalidTarget = errors.New("invalid target")

// Creature holds the health and combat stats shared by players and monsters.
// Health is kept within [0, MaxHealth]; a creature at 0 is defeated for good.
type Creature struct {
	Name      string
	Health    int
	MaxHealth int
	Attack    int
	Defense   int
}

// NewCreature returns a creature at full health. MaxHealth is at least 1 and
// negative stats are raised to 0.
func NewCreature(name string, maxHealth, attack, defense int) Creature {
	if maxHealth < 1 {
		maxHealth = 1
	}
	return Creature{
		Name:      name,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Attack:    max(0, attack),
		Defense:   max(0, defense),
	}
}

// Alive reports whether the creature has health left.
func (c *Creature) Alive() bool {
	return c.Health > 0
}

// HealthFraction returns Health/MaxHealth.
func (c *Creature) HealthFraction() float64 {
	if c.MaxHealth <= 0 {
		return 0
	}
	return float64(c.Health) / float64(c.MaxHealth)
}

// SetHealth writes health, clamped to [0, MaxHealth].
func (c *Creature) SetHealth(h int) {
	c.Health = min(max(h, 0), c.MaxHealth)
}

// Damage applies the damage floor: max(1, raw - defense).
func Damage(raw, defense int) int {
	return max(1, raw-defense)
}

// TakeDamage reduces health by Damage(raw, Defense), clamped at zero, and
// returns the damage dealt. An overkill hit reports its full damage. A
// defeated creature takes no further damage.
func (c *Creature) TakeDamage(raw int) int {
	if !c.Alive() {
		return 0
	}
	dmg := Damage(raw, c.Defense)
	c.SetHealth(c.Health - dmg)
	return dmg
}

// Heal restores up to amount health and returns how much was restored.
// Healing a defeated creature does nothing.
func (c *Creature) Heal(amount int) int {
	if !c.Alive() || amount <= 0 {
		return 0
	}
	before := c.Health
	c.SetHealth(c.Health + amount)
	return c.Health - before
}

// Strike makes attacker hit defender with raw attack power and returns the
// damage dealt. Both creatures must be present and alive.
func Strike(attacker, defender *Creature, raw int) (int, error) {
	if attacker == nil || defender == nil || !attacker.Alive() || !defender.Alive() {
		return 0, ErrInvalidTarget
	}
	return defender.TakeDamage(raw), nil
}
