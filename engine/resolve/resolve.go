// Package resolve maps combatant references from parsed intents to roster slots.
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/battlecore/types"
)

// AmbiguityError indicates multiple combatants matched a reference.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no combatant matched a reference.
type NotFoundError struct {
	Role types.Role
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("there is no %s called %q", e.Role, e.Name)
}

// Slot resolves a reference to a 1-based slot of the roster. A reference is
// a slot number, a full name, a word of a name, or a name prefix, matched
// case-insensitively in that order of preference. Dead combatants resolve
// like living ones.
func Slot(role types.Role, roster []*types.Combatant, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, &NotFoundError{Role: role, Name: ref}
	}

	// 1. Slot number.
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(roster) {
			return 0, &NotFoundError{Role: role, Name: ref}
		}
		return n, nil
	}

	refLower := strings.ToLower(ref)

	// 2-4. Name matches, strongest first. The first tier with any match wins.
	for _, match := range []func(name string) bool{
		func(name string) bool { return name == refLower },
		func(name string) bool { return hasWord(name, refLower) },
		func(name string) bool { return strings.HasPrefix(name, refLower) },
	} {
		var slots []int
		for _, c := range roster {
			if match(strings.ToLower(c.Name)) {
				slots = append(slots, c.ID)
			}
		}
		switch len(slots) {
		case 0:
			continue
		case 1:
			return slots[0], nil
		default:
			return 0, &AmbiguityError{Name: ref, Candidates: candidates(roster, slots)}
		}
	}

	return 0, &NotFoundError{Role: role, Name: ref}
}

// hasWord reports whether word is one of the space-separated words of name.
// e.g. "knight" matches "dark knight".
func hasWord(name, word string) bool {
	for _, w := range strings.Fields(name) {
		if w == word {
			return true
		}
	}
	return false
}

func candidates(roster []*types.Combatant, slots []int) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, fmt.Sprintf("%d: %s", s, roster[s-1].Name))
	}
	return out
}
