// Package state holds the combat model: two fixed rosters of combatants
// with read accessors and derived predicates. Aliveness is never stored;
// it is always computed from current health.
package state

import (
	"errors"
	"fmt"

	"github.com/nathoo/battlecore/types"
)

// RosterSize is the number of combatants on each side.
const RosterSize = 3

// ErrRosterSize is returned when a side does not have exactly RosterSize entries.
var ErrRosterSize = errors.New("roster must have exactly 3 combatants")

// Model is the combat model: the ally and enemy rosters.
type Model struct {
	Allies  []*types.Combatant
	Enemies []*types.Combatant
}

// NewCombatant builds a combatant from a stats pool entry. Health and mana
// start full; slot is the 1-based position in the roster.
func NewCombatant(entry types.StatEntry, slot int) (types.Combatant, error) {
	switch {
	case entry.Name == "":
		return types.Combatant{}, fmt.Errorf("stats entry %d: name is required", entry.ID)
	case entry.Health <= 0:
		return types.Combatant{}, fmt.Errorf("stats entry %d (%s): health must be positive, got %d", entry.ID, entry.Name, entry.Health)
	case entry.Mana <= 0:
		return types.Combatant{}, fmt.Errorf("stats entry %d (%s): mana must be positive, got %d", entry.ID, entry.Name, entry.Mana)
	case entry.Damage < 0:
		return types.Combatant{}, fmt.Errorf("stats entry %d (%s): damage must not be negative, got %d", entry.ID, entry.Name, entry.Damage)
	case slot < 1 || slot > RosterSize:
		return types.Combatant{}, fmt.Errorf("slot %d out of range [1,%d]", slot, RosterSize)
	}
	return types.Combatant{
		ID:        slot,
		StatsID:   entry.ID,
		Name:      entry.Name,
		Health:    entry.Health,
		MaxHealth: entry.Health,
		Mana:      entry.Mana,
		MaxMana:   entry.Mana,
		Damage:    entry.Damage,
	}, nil
}

// NewModel builds both rosters in the given order.
func NewModel(allies, enemies []types.StatEntry) (*Model, error) {
	a, err := newRoster(allies)
	if err != nil {
		return nil, fmt.Errorf("allies: %w", err)
	}
	e, err := newRoster(enemies)
	if err != nil {
		return nil, fmt.Errorf("enemies: %w", err)
	}
	return &Model{Allies: a, Enemies: e}, nil
}

func newRoster(entries []types.StatEntry) ([]*types.Combatant, error) {
	if len(entries) != RosterSize {
		return nil, fmt.Errorf("%w (got %d)", ErrRosterSize, len(entries))
	}
	roster := make([]*types.Combatant, 0, RosterSize)
	for i, entry := range entries {
		c, err := NewCombatant(entry, i+1)
		if err != nil {
			return nil, err
		}
		roster = append(roster, &c)
	}
	return roster, nil
}

// Roster returns the live roster for a role. Unknown roles return nil.
func (m *Model) Roster(role types.Role) []*types.Combatant {
	switch role {
	case types.RoleAlly:
		return m.Allies
	case types.RoleEnemy:
		return m.Enemies
	default:
		return nil
	}
}

// Get returns the combatant at a 1-based slot of a roster.
func (m *Model) Get(role types.Role, slot int) (*types.Combatant, bool) {
	roster := m.Roster(role)
	if slot < 1 || slot > len(roster) {
		return nil, false
	}
	return roster[slot-1], true
}

// Copy returns value copies of a roster, safe to hand to presenters.
func Copy(roster []*types.Combatant) []types.Combatant {
	out := make([]types.Combatant, 0, len(roster))
	for _, c := range roster {
		out = append(out, *c)
	}
	return out
}

// IsAlive reports whether a combatant still has health left.
func IsAlive(c *types.Combatant) bool {
	return c != nil && c.Health > 0
}

// AliveSlots returns the 1-based slots of living combatants, in roster order.
func AliveSlots(roster []*types.Combatant) []int {
	var slots []int
	for _, c := range roster {
		if IsAlive(c) {
			slots = append(slots, c.ID)
		}
	}
	return slots
}

// AllDefeated reports whether every combatant of a roster is dead.
func AllDefeated(roster []*types.Combatant) bool {
	for _, c := range roster {
		if IsAlive(c) {
			return false
		}
	}
	return true
}

// Opponent returns the other side.
func Opponent(role types.Role) types.Role {
	if role == types.RoleAlly {
		return types.RoleEnemy
	}
	return types.RoleAlly
}
