// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/dungeonexplorer/types"
)

var verbAliases = map[string]string{
	// Look
	"l":       "look",
	"examine": "look",
	"x":       "look",

	// Inventory
	"inv":  "inventory",
	"i":    "inventory",
	"bag":  "inventory",
	"pack": "inventory",

	// Movement
	"walk":   "go",
	"move":   "go",
	"enter":  "go",
	"travel": "go",

	// Take
	"get":     "take",
	"grab":    "take",
	"collect": "take",

	// Use / Equip / Discard
	"drink": "use",
	"wield": "equip",
	"drop":  "discard",
	"toss":  "discard",

	// Puzzles
	"answer": "solve",
	"guess":  "solve",
	"play":   "solve",

	// Combat
	"a":      "attack",
	"hit":    "attack",
	"strike": "attack",
	"fight":  "attack",
	"flee":   "run",
	"escape": "run",
	"heal":   "potion",
	"quaff":  "potion",

	// Miscellaneous
	"stat":  "stats",
	"score": "stats",
	"h":     "help",
	"?":     "help",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent. The verb is
// lowercased; the object keeps its case for verbs whose argument is an
// answer ("solve"), since chess notation is case-sensitive.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(input)

	// Bare room number: "3" → go 3.
	if len(words) == 1 {
		if _, err := strconv.Atoi(words[0]); err == nil {
			return types.Intent{Verb: "go", Object: words[0]}
		}
	}

	words = expandMultiWordVerbs(words)

	verb := strings.ToLower(words[0])
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	rest := words[1:]

	if verb == "solve" {
		return types.Intent{Verb: verb, Object: strings.Join(rest, " ")}
	}

	rest = stripArticles(rest)
	return types.Intent{
		Verb:   verb,
		Object: strings.ToLower(strings.Join(rest, " ")),
	}
}

// expandMultiWordVerbs handles "pick up", "go to", "look around" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	first, second := strings.ToLower(words[0]), strings.ToLower(words[1])
	switch first {
	case "pick":
		if second == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	case "go", "walk", "move":
		if second == "to" {
			rest := words[2:]
			if len(rest) > 0 && strings.EqualFold(rest[0], "room") {
				rest = rest[1:]
			}
			return append([]string{"go"}, rest...)
		}
		if second == "room" {
			return append([]string{"go"}, words[2:]...)
		}
	case "look":
		if second == "around" {
			return []string{"look"}
		}
	case "use":
		if second == "potion" {
			return append([]string{"potion"}, words[2:]...)
		}
	case "run":
		if second == "away" {
			return []string{"run"}
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[strings.ToLower(w)] {
			result = append(result, w)
		}
	}
	return result
}
