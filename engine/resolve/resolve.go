// Package resolve maps an item reference typed by the player, either a
// 1-based number or a name, to a position in a list of items.
package resolve

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/dungeonexplorer/engine/item"
)

// ErrNoReference is returned for an empty reference.
var ErrNoReference = errors.New("no item given")

// AmbiguityError indicates multiple items matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("Which %s? (%s)", e.Name, strings.Join(e.Candidates, ", "))
}

// NotFoundError indicates no item matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("You don't see %q here.", e.Name)
}

// Index resolves ref against items and returns a 0-based index. A number
// out of range fails with item.ErrInvalidSelection.
func Index(ref string, items []item.Item) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, ErrNoReference
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return 0, fmt.Errorf("item %d: %w", n, item.ErrInvalidSelection)
		}
		return n - 1, nil
	}

	query := strings.ToLower(ref)

	// An exact name wins over partial matches.
	for i, it := range items {
		if strings.ToLower(it.Name) == query {
			return i, nil
		}
	}

	var matches []int
	for i, it := range items {
		if matchesWord(it.Name, query) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return 0, &NotFoundError{Name: ref}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, idx := range matches {
			names[i] = items[idx].Name
		}
		return 0, &AmbiguityError{Name: ref, Candidates: names}
	}
}

// matchesWord reports whether every word of query appears in name, e.g.
// "key" and "bronze key" both match "Bronze Key".
func matchesWord(name, query string) bool {
	words := strings.Fields(strings.ToLower(name))
	for _, q := range strings.Fields(query) {
		found := false
		for _, w := range words {
			if w == q {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
