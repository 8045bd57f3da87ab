// Package effects implements centralized state mutation via the Apply function.
// Every effect type is one clamped operation; a batch is all-or-nothing.
package effects

import (
	"fmt"

	"github.com/nathoo/battlecore/engine/state"
	"github.com/nathoo/battlecore/types"
)

// Effect types.
const (
	Damage        = "damage"
	SpendMana     = "spend_mana"
	RestoreMana   = "restore_mana"
	RestoreHealth = "restore_health"
)

// Target identifies a combatant touched by an effect batch.
type Target struct {
	Role types.Role
	Slot int
}

// Apply applies a batch of effects to the model. Every effect is validated
// and computed against a scratch copy first; the model is only written when
// the whole batch is valid. Returns the distinct targets that were touched,
// in first-touch order.
func Apply(m *state.Model, effs []types.Effect) ([]Target, error) {
	scratch := map[Target]types.Combatant{}
	var order []Target

	for _, eff := range effs {
		key := Target{Role: eff.Role, Slot: eff.Slot}
		c, seen := scratch[key]
		if !seen {
			live, ok := m.Get(eff.Role, eff.Slot)
			if !ok {
				return nil, fmt.Errorf("effect %s: no %s in slot %d", eff.Type, eff.Role, eff.Slot)
			}
			c = *live
			order = append(order, key)
		}
		if eff.Amount < 0 {
			return nil, fmt.Errorf("effect %s: negative amount %d", eff.Type, eff.Amount)
		}

		switch eff.Type {
		case Damage:
			c.Health = clamp(c.Health-eff.Amount, 0, c.MaxHealth)
		case SpendMana:
			c.Mana = clamp(c.Mana-eff.Amount, 0, c.MaxMana)
		case RestoreMana:
			c.Mana = clamp(c.Mana+eff.Amount, 0, c.MaxMana)
		case RestoreHealth:
			c.Health = clamp(c.Health+eff.Amount, 0, c.MaxHealth)
		default:
			return nil, fmt.Errorf("unknown effect type %q", eff.Type)
		}
		scratch[key] = c
	}

	for _, key := range order {
		live, _ := m.Get(key.Role, key.Slot)
		*live = scratch[key]
	}
	return order, nil
}

// HealAmount returns the health restored by a heal of the given fraction of
// maxHealth, rounded down.
func HealAmount(maxHealth int, fraction float64) int {
	if fraction <= 0 {
		return 0
	}
	return int(float64(maxHealth) * fraction)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
