package entity

import (
	"fmt"

	"github.com/nathoo/dungeonexplorer/engine/item"
)

// XPPerLevel is the experience needed for each level.
const XPPerLevel = 50

// Player is the adventurer. The equipped weapon is referenced by item ID;
// removing that item through the Player clears the slot.
type Player struct {
	Creature
	Inventory  *item.Inventory
	Gold       int
	Experience int

	equipped string
}

// NewPlayer creates a player at full health with an empty inventory.
func NewPlayer(name string, maxHealth, attack, defense, capacity int) *Player {
	return &Player{
		Creature:  NewCreature(name, maxHealth, attack, defense),
		Inventory: item.NewInventory(capacity),
	}
}

// Level returns Experience/50 + 1.
func (p *Player) Level() int {
	return p.Experience/XPPerLevel + 1
}

// GainExperience adds a non-negative amount of experience.
func (p *Player) GainExperience(n int) {
	if n > 0 {
		p.Experience += n
	}
}

// Equipped returns the equipped weapon, if any.
func (p *Player) Equipped() (item.Item, bool) {
	if p.equipped == "" {
		return item.Item{}, false
	}
	i := p.Inventory.IndexOf(p.equipped)
	if i < 0 {
		p.equipped = ""
		return item.Item{}, false
	}
	it, _ := p.Inventory.At(i)
	return it, true
}

// EquippedID returns the ID of the equipped weapon, or "".
func (p *Player) EquippedID() string {
	if _, ok := p.Equipped(); !ok {
		return ""
	}
	return p.equipped
}

// AttackDamage returns the raw attack: base attack plus the equipped
// weapon's damage bonus.
func (p *Player) AttackDamage() int {
	raw := p.Attack
	if w, ok := p.Equipped(); ok {
		raw += w.Damage
	}
	return raw
}

// Equip equips the weapon at the given inventory index.
func (p *Player) Equip(index int) (item.Item, error) {
	it, err := p.Inventory.At(index)
	if err != nil {
		return item.Item{}, err
	}
	if it.Kind != item.KindWeapon {
		return item.Item{}, fmt.Errorf("%s is not a weapon: %w", it.Name, item.ErrInvalidSelection)
	}
	p.equipped = it.ID
	return it, nil
}

// EquipStrongest equips the weapon with the highest damage bonus.
func (p *Player) EquipStrongest() (item.Item, bool) {
	w, ok := p.Inventory.StrongestWeapon()
	if ok {
		p.equipped = w.ID
	}
	return w, ok
}

// AddItem puts an item in the inventory, failing with item.ErrInventoryFull.
func (p *Player) AddItem(it item.Item) error {
	return p.Inventory.Add(it)
}

// RemoveAt removes the item at index, clearing the equip slot if it held it.
func (p *Player) RemoveAt(index int) (item.Item, error) {
	it, err := p.Inventory.RemoveAt(index)
	if err != nil {
		return item.Item{}, err
	}
	if it.ID == p.equipped {
		p.equipped = ""
	}
	return it, nil
}

// DrinkPotion consumes the potion at the given inventory index and returns
// it with the health actually restored.
func (p *Player) DrinkPotion(index int) (item.Item, int, error) {
	it, err := p.Inventory.At(index)
	if err != nil {
		return item.Item{}, 0, err
	}
	if it.Kind != item.KindPotion {
		return item.Item{}, 0, fmt.Errorf("%s is not a potion: %w", it.Name, item.ErrInvalidSelection)
	}
	if _, err := p.RemoveAt(index); err != nil {
		return item.Item{}, 0, err
	}
	return it, p.Heal(it.Heal), nil
}

// UsePotion drinks the choice-th potion (1-based) from the potions ordered
// by heal amount, strongest first.
func (p *Player) UsePotion(choice int) (item.Item, int, error) {
	potions := p.Inventory.Potions()
	if choice < 1 || choice > len(potions) {
		return item.Item{}, 0, item.ErrInvalidSelection
	}
	return p.DrinkPotion(p.Inventory.IndexOf(potions[choice-1].ID))
}

// HasKey reports whether the player carries a key of the given type.
func (p *Player) HasKey(kt item.KeyType) bool {
	return p.Inventory.HasKey(kt)
}

// ConsumeKey removes one key of the given type.
func (p *Player) ConsumeKey(kt item.KeyType) (item.Item, bool) {
	return p.Inventory.TakeKey(kt)
}

// Restore overwrites the persisted stats. Health is clamped to the new
// maximum.
func (p *Player) Restore(name string, health, maxHealth, attack, defense, experience, gold int) {
	p.Name = name
	p.MaxHealth = max(1, maxHealth)
	p.Attack = max(0, attack)
	p.Defense = max(0, defense)
	p.SetHealth(health)
	p.Experience = max(0, experience)
	p.Gold = max(0, gold)
}
