// Package types defines the shared data structures for the battlecore engine.
// This package contains only type definitions, no logic and no methods.
package types

import "time"

// StatEntry is one record of the externally supplied stats pool.
type StatEntry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Health int    `json:"health"`
	Mana   int    `json:"mana"`
	Damage int    `json:"damage"`
}

// Combatant is a single fighter on either side of the battle.
type Combatant struct {
	ID        int    `json:"id"`       // 1-based slot in its roster
	StatsID   int    `json:"stats_id"` // stats pool entry the combatant was built from
	Name      string `json:"name"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"max_health"`
	Mana      int    `json:"mana"`
	MaxMana   int    `json:"max_mana"`
	Damage    int    `json:"damage"`
}

// Scene is the cosmetic backdrop of a battle: one of the numbered music
// tracks and its matching background.
type Scene struct {
	Track      int    `json:"track"`
	Music      string `json:"music"`
	Background string `json:"background"`
}

// Role identifies which roster a combatant belongs to.
type Role string

const (
	RoleAlly  Role = "ally"
	RoleEnemy Role = "enemy"
)

// Phase is the turn-cycle state of a battle.
type Phase string

const (
	PhasePlayerTurn Phase = "player_turn"
	PhaseResolving  Phase = "resolving_enemy_turn"
	PhaseAlliesWin  Phase = "allies_win"
	PhaseEnemiesWin Phase = "enemies_win"
)

// Outcome is the terminal result of a battle.
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeAlliesWin  Outcome = "allies_win"
	OutcomeEnemiesWin Outcome = "enemies_win"
)

// Action names a player or enemy action.
type Action string

const (
	ActionSelectAlly    Action = "select_ally"
	ActionSelectEnemy   Action = "select_enemy"
	ActionAttack        Action = "attack"
	ActionRestoreMana   Action = "restore_mana"
	ActionRestoreHealth Action = "restore_health"
	ActionStatus        Action = "status"
	ActionHelp          Action = "help"
)

// Intent is the parsed representation of a text command.
type Intent struct {
	Verb   string
	Object string // optional combatant reference
}

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type   string
	Role   Role
	Slot   int
	Amount int
}

// VisualEffect is a purely cosmetic request for the presentation layer.
type VisualEffect struct {
	Role      Role          `json:"role"`
	Slot      int           `json:"slot"`
	Duration  time.Duration `json:"duration"`
	Sound     string        `json:"sound"`
	Animation string        `json:"animation"`
}

// EventType identifies a presentation event.
type EventType string

const (
	EventCombatantUpdated  EventType = "combatant_updated"
	EventCombatantDefeated EventType = "combatant_defeated"
	EventBattleEnded       EventType = "battle_ended"
	EventVisualEffect      EventType = "effect"
	EventNarration         EventType = "narration"
	EventSelectionChanged  EventType = "selection_changed"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type      EventType     `json:"type"`
	Role      Role          `json:"role,omitempty"`
	Slot      int           `json:"slot,omitempty"`
	Combatant *Combatant    `json:"combatant,omitempty"`
	Outcome   Outcome       `json:"outcome,omitempty"`
	Effect    *VisualEffect `json:"effect,omitempty"`
	Text      string        `json:"text,omitempty"`
}

// Result is the output of a single inbound call into the engine.
type Result struct {
	Action   Action
	Accepted bool
	Reason   string // why the call was a no-op, for tracing
	Events   []Event
	Output   []string // direct text output (status, help)
}
