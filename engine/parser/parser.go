// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/battlecore/types"
)

// Canonical verbs.
const (
	VerbAttack = "attack"
	VerbMana   = "mana"
	VerbHeal   = "heal"
	VerbAlly   = "ally"
	VerbEnemy  = "enemy"
	VerbStatus = "status"
	VerbHelp   = "help"
)

var verbAliases = map[string]string{
	// Attack
	"a":      VerbAttack,
	"hit":    VerbAttack,
	"strike": VerbAttack,
	"fight":  VerbAttack,
	"slash":  VerbAttack,

	// Restore mana
	"m":        VerbMana,
	"meditate": VerbMana,
	"focus":    VerbMana,

	// Restore health
	"h":    VerbHeal,
	"hp":   VerbHeal,
	"cure": VerbHeal,
	"mend": VerbHeal,

	// Selection
	"pick":   VerbAlly,
	"use":    VerbAlly,
	"target": VerbEnemy,
	"foe":    VerbEnemy,

	// Info
	"l":     VerbStatus,
	"look":  VerbStatus,
	"state": VerbStatus,
	"?":     VerbHelp,
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"on": true, "at": true, "with": true, "to": true,
	"number": true, "no": true, "#": true,
}

// Parse converts a raw command string into an Intent. Unknown verbs are
// passed through unchanged so the engine can report them.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Handle multi-word verb phrases before alias lookup.
	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripFillers(words[1:])

	return types.Intent{
		Verb:   verb,
		Object: strings.Join(rest, " "),
	}
}

// expandMultiWordVerbs handles "restore mana", "select enemy" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "restore", "recover", "regain":
		switch words[1] {
		case "mana", "mp":
			return append([]string{VerbMana}, words[2:]...)
		case "health", "hp", "life":
			return append([]string{VerbHeal}, words[2:]...)
		}
	case "select", "choose":
		switch words[1] {
		case "ally", "hero":
			return append([]string{VerbAlly}, words[2:]...)
		case "enemy", "foe":
			return append([]string{VerbEnemy}, words[2:]...)
		}
	case "look":
		if words[1] == "around" {
			return []string{VerbStatus}
		}
	}

	return words
}

// stripFillers removes articles and prepositions that carry no meaning in a
// combatant reference ("attack the goblin", "select ally number 2").
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	return result
}
