// Package events delivers engine events to the presentation layer.
// Presentation failures never reach the engine: Dispatch logs and swallows them.
package events

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nathoo/battlecore/types"
)

// Presenter is the outbound interface the engine calls into.
type Presenter interface {
	CombatantUpdated(role types.Role, c types.Combatant)
	CombatantDefeated(role types.Role, slot int)
	BattleEnded(outcome types.Outcome)
	Effect(fx types.VisualEffect) error
	Narrate(line string)
	SelectionChanged(role types.Role, slot int)
}

// Base implements Presenter with no-ops. Embed it to override a subset.
type Base struct{}

func (Base) CombatantUpdated(types.Role, types.Combatant) {}
func (Base) CombatantDefeated(types.Role, int) {}
func (Base) BattleEnded(types.Outcome) {}
func (Base) Effect(types.VisualEffect) error { return nil }
func (Base) Narrate(string) {}
func (Base) SelectionChanged(types.Role, int) {}

// Multi fans every call out to each presenter in order.
type Multi []Presenter

func (m Multi) CombatantUpdated(role types.Role, c types.Combatant) {
	for _, p := range m {
		p.CombatantUpdated(role, c)
	}
}

func (m Multi) CombatantDefeated(role types.Role, slot int) {
	for _, p := range m {
		p.CombatantDefeated(role, slot)
	}
}

func (m Multi) BattleEnded(outcome types.Outcome) {
	for _, p := range m {
		p.BattleEnded(outcome)
	}
}

// Effect forwards to every presenter and returns the first error.
func (m Multi) Effect(fx types.VisualEffect) error {
	var first error
	for _, p := range m {
		if err := p.Effect(fx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) Narrate(line string) {
	for _, p := range m {
		p.Narrate(line)
	}
}

func (m Multi) SelectionChanged(role types.Role, slot int) {
	for _, p := range m {
		p.SelectionChanged(role, slot)
	}
}

// Dispatch delivers events to the presenter in order. A panicking or
// failing presenter call is logged and skipped; the rest still run.
func Dispatch(p Presenter, evts []types.Event, log *zap.Logger) {
	if p == nil {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	for _, evt := range evts {
		if err := deliver(p, evt); err != nil {
			log.Warn("presentation failed",
				zap.String("event", string(evt.Type)),
				zap.String("role", string(evt.Role)),
				zap.Int("slot", evt.Slot),
				zap.Error(err))
		}
	}
}

func deliver(p Presenter, evt types.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("presenter panic: %v", r)
		}
	}()

	switch evt.Type {
	case types.EventCombatantUpdated:
		if evt.Combatant != nil {
			p.CombatantUpdated(evt.Role, *evt.Combatant)
		}
	case types.EventCombatantDefeated:
		p.CombatantDefeated(evt.Role, evt.Slot)
	case types.EventBattleEnded:
		p.BattleEnded(evt.Outcome)
	case types.EventVisualEffect:
		if evt.Effect != nil {
			return p.Effect(*evt.Effect)
		}
	case types.EventNarration:
		p.Narrate(evt.Text)
	case types.EventSelectionChanged:
		p.SelectionChanged(evt.Role, evt.Slot)
	default:
		return fmt.Errorf("unknown event type %q", evt.Type)
	}
	return nil
}

// Recorder is a Presenter that keeps every call as an event. Useful for
// snapshots of what a front end was told, and in tests.
type Recorder struct {
	Events []types.Event
	// FailEffects makes Effect return an error, as a front end with a
	// missing slot element would.
	FailEffects bool
}

func (r *Recorder) CombatantUpdated(role types.Role, c types.Combatant) {
	r.Events = append(r.Events, types.Event{Type: types.EventCombatantUpdated, Role: role, Slot: c.ID, Combatant: &c})
}

func (r *Recorder) CombatantDefeated(role types.Role, slot int) {
	r.Events = append(r.Events, types.Event{Type: types.EventCombatantDefeated, Role: role, Slot: slot})
}

func (r *Recorder) BattleEnded(outcome types.Outcome) {
	r.Events = append(r.Events, types.Event{Type: types.EventBattleEnded, Outcome: outcome})
}

func (r *Recorder) Effect(fx types.VisualEffect) error {
	r.Events = append(r.Events, types.Event{Type: types.EventVisualEffect, Role: fx.Role, Slot: fx.Slot, Effect: &fx})
	if r.FailEffects {
		return fmt.Errorf("no element for %s slot %d", fx.Role, fx.Slot)
	}
	return nil
}

func (r *Recorder) Narrate(line string) {
	r.Events = append(r.Events, types.Event{Type: types.EventNarration, Text: line})
}

func (r *Recorder) SelectionChanged(role types.Role, slot int) {
	r.Events = append(r.Events, types.Event{Type: types.EventSelectionChanged, Role: role, Slot: slot})
}

// Count returns how many recorded events have the given type.
func (r *Recorder) Count(t types.EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}
