package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/nathoo/battlecore/engine/effects"
	"github.com/nathoo/battlecore/engine/state"
	"github.com/nathoo/battlecore/types"
)

// Rules are the tunable numbers of a battle.
type Rules struct {
	AttackCost   int           // mana spent by an attack, and the minimum mana to attack
	ManaRestore  int           // mana gained by a restore-mana action
	HealFraction float64       // fraction of max health restored by a heal
	EnemyDelay   time.Duration // pause between the player's action and the enemy's reply
}

// DefaultRules returns the standard rules: 15 mana per attack, 40 mana per
// restore, 30% heal, one second enemy delay.
func DefaultRules() Rules {
	return Rules{
		AttackCost:   15,
		ManaRestore:  40,
		HealFraction: 0.3,
		EnemyDelay:   time.Second,
	}
}

// Validate checks that the rules describe a playable battle.
func (r Rules) Validate() error {
	var errs []error
	if r.AttackCost < 0 {
		errs = append(errs, fmt.Errorf("attack cost must not be negative, got %d", r.AttackCost))
	}
	if r.ManaRestore < 0 {
		errs = append(errs, fmt.Errorf("mana restore must not be negative, got %d", r.ManaRestore))
	}
	if r.HealFraction < 0 || r.HealFraction > 1 {
		errs = append(errs, fmt.Errorf("heal fraction must be in [0,1], got %g", r.HealFraction))
	}
	if r.EnemyDelay < 0 {
		errs = append(errs, fmt.Errorf("enemy delay must not be negative, got %s", r.EnemyDelay))
	}
	return errors.Join(errs...)
}

// Cue assets. Paths are relative to the front end's resource root.
const (
	SoundSlash = "sounds/slash.mp3"
	SoundMana  = "sounds/mana.mp3"
	SoundHeal  = "sounds/heal.ogg"

	AnimSlash = "img/effects/slash.gif"
	AnimMana  = "img/effects/mana.gif"
	AnimHeal  = "img/effects/heal.gif"
)

// Cue durations.
const (
	SlashDuration   = 500 * time.Millisecond
	RestoreDuration = 1000 * time.Millisecond
)

func slashCue(role types.Role, slot int) types.VisualEffect {
	return types.VisualEffect{Role: role, Slot: slot, Duration: SlashDuration, Sound: SoundSlash, Animation: AnimSlash}
}

func manaCue(role types.Role, slot int) types.VisualEffect {
	return types.VisualEffect{Role: role, Slot: slot, Duration: RestoreDuration, Sound: SoundMana, Animation: AnimMana}
}

func healCue(role types.Role, slot int) types.VisualEffect {
	return types.VisualEffect{Role: role, Slot: slot, Duration: RestoreDuration, Sound: SoundHeal, Animation: AnimHeal}
}

// attackEffects produces the effects of an attacker hitting a defender.
func attackEffects(rules Rules, attackerRole types.Role, attacker *types.Combatant, defender *types.Combatant) []types.Effect {
	return []types.Effect{
		{Type: effects.Damage, Role: state.Opponent(attackerRole), Slot: defender.ID, Amount: attacker.Damage},
		{Type: effects.SpendMana, Role: attackerRole, Slot: attacker.ID, Amount: rules.AttackCost},
	}
}

func manaEffects(rules Rules, role types.Role, c *types.Combatant) []types.Effect {
	return []types.Effect{
		{Type: effects.RestoreMana, Role: role, Slot: c.ID, Amount: rules.ManaRestore},
	}
}

func healEffects(rules Rules, role types.Role, c *types.Combatant) []types.Effect {
	return []types.Effect{
		{Type: effects.RestoreHealth, Role: role, Slot: c.ID, Amount: effects.HealAmount(c.MaxHealth, rules.HealFraction)},
	}
}

// EnemyMove is the enemy's decision for one counter-turn.
type EnemyMove struct {
	Enemy     *types.Combatant
	Target    *types.Combatant // nil when the enemy restores mana
	Effects   []types.Effect
	Cue       types.VisualEffect
	Narration string
}

// EnemyTurn picks the enemy's action. A living enemy is chosen uniformly at
// random; with less mana than an attack costs it restores mana, otherwise it
// attacks target. Returns false when no enemy is alive or there is nobody to
// attack.
func EnemyTurn(m *state.Model, rules Rules, rnd Random, target int) (EnemyMove, bool) {
	alive := state.AliveSlots(m.Enemies)
	if len(alive) == 0 {
		return EnemyMove{}, false
	}
	slot := alive[rnd.Intn(len(alive))]
	enemy, _ := m.Get(types.RoleEnemy, slot)

	if enemy.Mana < rules.AttackCost {
		return EnemyMove{
			Enemy:     enemy,
			Effects:   manaEffects(rules, types.RoleEnemy, enemy),
			Cue:       manaCue(types.RoleEnemy, slot),
			Narration: fmt.Sprintf("%s regains %d mana.", enemy.Name, rules.ManaRestore),
		}, true
	}

	ally, ok := m.Get(types.RoleAlly, target)
	if !ok {
		return EnemyMove{}, false
	}
	return EnemyMove{
		Enemy:     enemy,
		Target:    ally,
		Effects:   attackEffects(rules, types.RoleEnemy, enemy, ally),
		Cue:       slashCue(types.RoleAlly, ally.ID),
		Narration: fmt.Sprintf("%s attacks %s for %d damage.", enemy.Name, ally.Name, enemy.Damage),
	}, true
}

// sweepDefeated reports every dead combatant not reported before, allies
// first, in roster order. reported is updated in place, so a repeated sweep
// over the same state returns nothing.
func sweepDefeated(m *state.Model, reported map[effects.Target]bool) []types.Event {
	var evts []types.Event
	for _, role := range []types.Role{types.RoleAlly, types.RoleEnemy} {
		for _, c := range m.Roster(role) {
			key := effects.Target{Role: role, Slot: c.ID}
			if state.IsAlive(c) || reported[key] {
				continue
			}
			reported[key] = true
			evts = append(evts,
				types.Event{Type: types.EventCombatantDefeated, Role: role, Slot: c.ID},
				types.Event{Type: types.EventNarration, Text: fmt.Sprintf("%s has fallen.", c.Name)},
			)
		}
	}
	return evts
}

// evaluateOutcome checks both rosters. A wiped ally side loses even if the
// enemies are also all dead.
func evaluateOutcome(m *state.Model) types.Outcome {
	if state.AllDefeated(m.Allies) {
		return types.OutcomeEnemiesWin
	}
	if state.AllDefeated(m.Enemies) {
		return types.OutcomeAlliesWin
	}
	return types.OutcomeNone
}

// outcomeLine is the narration for a finished battle.
func outcomeLine(o types.Outcome) string {
	switch o {
	case types.OutcomeAlliesWin:
		return "Allies win!"
	case types.OutcomeEnemiesWin:
		return "Enemies win!"
	}
	return ""
}
