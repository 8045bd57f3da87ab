package events

import (
	"testing"

	"github.com/nathoo/battlecore/types"
)

// panicky fails on every effect request and panics when a combatant is defeated.
type panicky struct {
	Base
	narrated []string
}

func (p *panicky) CombatantDefeated(types.Role, int) {
	panic("sprite element missing")
}

func (p *panicky) Narrate(line string) {
	p.narrated = append(p.narrated, line)
}

func TestDispatch_RoutesByType(t *testing.T) {
	rec := &Recorder{}
	c := types.Combatant{ID: 2, Name: "Archer"}
	fx := types.VisualEffect{Role: types.RoleEnemy, Slot: 1, Animation: "slash"}

	Dispatch(rec, []types.Event{
		{Type: types.EventNarration, Text: "hello"},
		{Type: types.EventCombatantUpdated, Role: types.RoleAlly, Combatant: &c},
		{Type: types.EventVisualEffect, Effect: &fx},
		{Type: types.EventCombatantDefeated, Role: types.RoleEnemy, Slot: 3},
		{Type: types.EventSelectionChanged, Role: types.RoleEnemy, Slot: 1},
		{Type: types.EventBattleEnded, Outcome: types.OutcomeAlliesWin},
	}, nil)

	want := []types.EventType{
		types.EventNarration,
		types.EventCombatantUpdated,
		types.EventVisualEffect,
		types.EventCombatantDefeated,
		types.EventSelectionChanged,
		types.EventBattleEnded,
	}
	if len(rec.Events) != len(want) {
		t.Fatalf("got %d events, want %d", len(rec.Events), len(want))
	}
	for i, w := range want {
		if rec.Events[i].Type != w {
			t.Errorf("event %d = %s, want %s", i, rec.Events[i].Type, w)
		}
	}
	if rec.Events[1].Combatant.Name != "Archer" || rec.Events[1].Slot != 2 {
		t.Errorf("combatant update not forwarded: %+v", rec.Events[1])
	}
	if rec.Events[5].Outcome != types.OutcomeAlliesWin {
		t.Errorf("outcome = %q", rec.Events[5].Outcome)
	}
}

func TestDispatch_SwallowsPanicsAndContinues(t *testing.T) {
	p := &panicky{}
	Dispatch(p, []types.Event{
		{Type: types.EventNarration, Text: "before"},
		{Type: types.EventCombatantDefeated, Role: types.RoleAlly, Slot: 1},
		{Type: types.EventNarration, Text: "after"},
	}, nil)

	if len(p.narrated) != 2 || p.narrated[1] != "after" {
		t.Errorf("dispatch stopped after panic: %v", p.narrated)
	}
}

func TestDispatch_SwallowsEffectErrors(t *testing.T) {
	rec := &Recorder{FailEffects: true}
	fx := types.VisualEffect{Role: types.RoleAlly, Slot: 9}
	Dispatch(rec, []types.Event{
		{Type: types.EventVisualEffect, Effect: &fx},
		{Type: types.EventNarration, Text: "still here"},
	}, nil)

	if rec.Count(types.EventNarration) != 1 {
		t.Error("narration after a failed effect should still be delivered")
	}
}

func TestDispatch_NilPresenter(t *testing.T) {
	// Must not panic.
	Dispatch(nil, []types.Event{{Type: types.EventNarration, Text: "x"}}, nil)
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{FailEffects: true}
	m := Multi{a, b}

	m.Narrate("one")
	m.CombatantDefeated(types.RoleEnemy, 2)
	err := m.Effect(types.VisualEffect{Slot: 1})

	if err == nil {
		t.Error("expected the failing presenter's error")
	}
	for i, r := range []*Recorder{a, b} {
		if len(r.Events) != 3 {
			t.Errorf("presenter %d got %d events, want 3", i, len(r.Events))
		}
	}
}

func TestRecorder_Count(t *testing.T) {
	r := &Recorder{}
	r.Narrate("a")
	r.Narrate("b")
	r.BattleEnded(types.OutcomeEnemiesWin)
	if r.Count(types.EventNarration) != 2 {
		t.Errorf("narration count = %d", r.Count(types.EventNarration))
	}
	if r.Count(types.EventBattleEnded) != 1 {
		t.Errorf("battle end count = %d", r.Count(types.EventBattleEnded))
	}
}
