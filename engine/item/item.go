// Package item defines the passive item data consumed by combat, puzzles
// and the player's inventory.
package item

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind tags the closed set of item variants.
type Kind int

const (
	KindWeapon Kind = iota
	KindPotion
	KindKey
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWeapon:
		return "weapon"
	case KindPotion:
		return "potion"
	case KindKey:
		return "key"
	default:
		return "unknown"
	}
}

// KeyType identifies which locks a key opens.
type KeyType int

const (
	Bronze KeyType = iota
	Silver
	Gold
	Crystal
)

// String returns the display name of the key type.
func (k KeyType) String() string {
	switch k {
	case Bronze:
		return "Bronze"
	case Silver:
		return "Silver"
	case Gold:
		return "Gold"
	case Crystal:
		return "Crystal"
	default:
		return "Unknown"
	}
}

// ParseKeyType converts a key type name ("bronze", "Gold", ...) to a KeyType.
func ParseKeyType(s string) (KeyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bronze":
		return Bronze, nil
	case "silver":
		return Silver, nil
	case "gold":
		return Gold, nil
	case "crystal":
		return Crystal, nil
	}
	return 0, fmt.Errorf("unknown key type %q", s)
}

// Item is a single collectable object. Only the field matching Kind is
// meaningful: Damage for weapons, Heal for potions, Key for keys.
type Item struct {
	ID          string
	Kind        Kind
	Name        string
	Description string
	Damage      int
	Heal        int
	Key         KeyType
}

// NewWeapon creates a weapon with the given damage bonus.
func NewWeapon(name, description string, damage int) Item {
	return Item{ID: uuid.NewString(), Kind: KindWeapon, Name: name, Description: description, Damage: damage}
}

// NewPotion creates a potion that heals the given amount.
func NewPotion(name, description string, heal int) Item {
	return Item{ID: uuid.NewString(), Kind: KindPotion, Name: name, Description: description, Heal: heal}
}

// NewKey creates a key of the given type.
func NewKey(name, description string, key KeyType) Item {
	return Item{ID: uuid.NewString(), Kind: KindKey, Name: name, Description: description, Key: key}
}

// Detail returns the kind-specific detail line shown in inventory listings.
func (it Item) Detail() string {
	switch it.Kind {
	case KindWeapon:
		return fmt.Sprintf("Damage: +%d", it.Damage)
	case KindPotion:
		return fmt.Sprintf("Healing: +%d HP", it.Heal)
	case KindKey:
		return fmt.Sprintf("Type: %s Key", it.Key)
	default:
		return ""
	}
}

func (it Item) String() string {
	return it.Name + ": " + it.Description
}
