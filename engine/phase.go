package engine

import (
	"github.com/enetx/fsm"

	"github.com/nathoo/battlecore/types"
)

// Turn-cycle events.
const (
	evPlayerActed     fsm.Event = "player_acted"
	evEnemyActed      fsm.Event = "enemy_acted"
	evAlliesDefeated  fsm.Event = "allies_defeated"
	evEnemiesDefeated fsm.Event = "enemies_defeated"
)

var (
	statePlayerTurn = fsm.State(types.PhasePlayerTurn)
	stateResolving  = fsm.State(types.PhaseResolving)
	stateAlliesWin  = fsm.State(types.PhaseAlliesWin)
	stateEnemiesWin = fsm.State(types.PhaseEnemiesWin)
)

// phaseMachine is the battle's turn cycle. Terminal phases have no outgoing
// transitions, so every trigger from them fails. Callers hold the battle lock.
type phaseMachine struct {
	m *fsm.FSM
}

func newPhaseMachine() *phaseMachine {
	m := fsm.New(statePlayerTurn).
		Transition(statePlayerTurn, evPlayerActed, stateResolving).
		Transition(statePlayerTurn, evEnemiesDefeated, stateAlliesWin).
		Transition(statePlayerTurn, evAlliesDefeated, stateEnemiesWin).
		Transition(stateResolving, evEnemyActed, statePlayerTurn).
		Transition(stateResolving, evEnemiesDefeated, stateAlliesWin).
		Transition(stateResolving, evAlliesDefeated, stateEnemiesWin)
	return &phaseMachine{m: m}
}

// Current returns the current phase.
func (p *phaseMachine) Current() types.Phase {
	return types.Phase(p.m.Current())
}

// Fire triggers a turn-cycle event. It returns an error if the event is not
// valid in the current phase.
func (p *phaseMachine) Fire(ev fsm.Event) error {
	return p.m.Trigger(ev)
}

// Terminal reports whether the battle is over.
func (p *phaseMachine) Terminal() bool {
	return isTerminal(p.Current())
}

// End moves to the terminal phase for an outcome.
func (p *phaseMachine) End(outcome types.Outcome) error {
	switch outcome {
	case types.OutcomeAlliesWin:
		return p.Fire(evEnemiesDefeated)
	case types.OutcomeEnemiesWin:
		return p.Fire(evAlliesDefeated)
	}
	return nil
}

func isTerminal(ph types.Phase) bool {
	return ph == types.PhaseAlliesWin || ph == types.PhaseEnemiesWin
}
