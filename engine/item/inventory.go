package item

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInventoryFull is returned when an item is added to a full inventory.
	// The caller decides whether to discard something and retry or to drop
	// the item.
	ErrInventoryFull = errors.New("inventory is full")

	// ErrInvalidSelection is returned for an out-of-range index or choice.
	ErrInvalidSelection = errors.New("invalid selection")
)

// DefaultCapacity is the inventory size used when none is configured.
const DefaultCapacity = 10

// Inventory is an ordered, bounded list of items.
type Inventory struct {
	items    []Item
	capacity int
}

// NewInventory creates an empty inventory. Capacities below 1 are raised to 1.
func NewInventory(capacity int) *Inventory {
	if capacity < 1 {
		capacity = 1
	}
	return &Inventory{capacity: capacity}
}

// Capacity returns the maximum number of items.
func (inv *Inventory) Capacity() int { return inv.capacity }

// Len returns the number of items held.
func (inv *Inventory) Len() int { return len(inv.items) }

// Full reports whether no more items fit.
func (inv *Inventory) Full() bool { return len(inv.items) >= inv.capacity }

// Items returns a copy of the items in order.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// At returns the item at index.
func (inv *Inventory) At(index int) (Item, error) {
	if index < 0 || index >= len(inv.items) {
		return Item{}, ErrInvalidSelection
	}
	return inv.items[index], nil
}

// Add appends an item, failing with ErrInventoryFull when at capacity.
func (inv *Inventory) Add(it Item) error {
	if inv.Full() {
		return ErrInventoryFull
	}
	inv.items = append(inv.items, it)
	return nil
}

// RemoveAt removes and returns the item at index.
func (inv *Inventory) RemoveAt(index int) (Item, error) {
	if index < 0 || index >= len(inv.items) {
		return Item{}, ErrInvalidSelection
	}
	it := inv.items[index]
	inv.items = append(inv.items[:index], inv.items[index+1:]...)
	return it, nil
}

// IndexOf returns the index of the item with the given ID, or -1.
func (inv *Inventory) IndexOf(id string) int {
	for i, it := range inv.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether an item with the given ID is held.
func (inv *Inventory) Contains(id string) bool {
	return inv.IndexOf(id) >= 0
}

// HasKey reports whether at least one key of the given type is held.
func (inv *Inventory) HasKey(kt KeyType) bool {
	return inv.keyIndex(kt) >= 0
}

// TakeKey removes the first key of the given type.
func (inv *Inventory) TakeKey(kt KeyType) (Item, bool) {
	i := inv.keyIndex(kt)
	if i < 0 {
		return Item{}, false
	}
	it, _ := inv.RemoveAt(i)
	return it, true
}

func (inv *Inventory) keyIndex(kt KeyType) int {
	for i, it := range inv.items {
		if it.Kind == KindKey && it.Key == kt {
			return i
		}
	}
	return -1
}

// Filter returns the items of the given kind, in inventory order.
func (inv *Inventory) Filter(kind Kind) []Item {
	var out []Item
	for _, it := range inv.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// Potions returns the held potions ordered by heal amount, strongest first.
func (inv *Inventory) Potions() []Item {
	potions := inv.Filter(KindPotion)
	sort.SliceStable(potions, func(i, j int) bool {
		return potions[i].Heal > potions[j].Heal
	})
	return potions
}

// StrongestWeapon returns the weapon with the highest damage bonus.
// Ties keep the earliest acquired weapon.
func (inv *Inventory) StrongestWeapon() (Item, bool) {
	var best Item
	found := false
	for _, it := range inv.items {
		if it.Kind != KindWeapon {
			continue
		}
		if !found || it.Damage > best.Damage {
			best = it
			found = true
		}
	}
	return best, found
}

// SortedByName returns a copy of the items ordered by name.
func (inv *Inventory) SortedByName() []Item {
	out := inv.Items()
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
