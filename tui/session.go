package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/types"
)

// Session carries the presenter and scheduler a battle needs to run inside
// the Bubble Tea loop. Enemy turns are delivered to Update as messages, so
// every engine call and presenter callback happens on the UI goroutine.
type Session struct {
	feed  *feed
	sched *scheduler
}

// NewSession creates a session. Pass Options to engine.New.
func NewSession() *Session {
	return &Session{feed: &feed{}, sched: &scheduler{}}
}

// Options wires a battle to the session.
func (s *Session) Options() []engine.Option {
	return []engine.Option{
		engine.WithPresenter(s.feed),
		engine.WithScheduler(s.sched),
	}
}

// scheduledMsg runs a deferred engine callback on the UI goroutine.
type scheduledMsg struct {
	fn func()
}

// scheduler defers callbacks through the running program.
type scheduler struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *scheduler) bind(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

func (s *scheduler) AfterFunc(d time.Duration, fn func()) engine.Task {
	return time.AfterFunc(d, func() {
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		if send != nil {
			send(scheduledMsg{fn: fn})
		}
	})
}

// feed buffers presenter callbacks until Update drains them. It must not
// call back into the program: the engine invokes it from inside Update.
type feed struct {
	mu      sync.Mutex
	pending []types.Event
}

func (f *feed) push(e types.Event) {
	f.mu.Lock()
	f.pending = append(f.pending, e)
	f.mu.Unlock()
}

func (f *feed) drain() []types.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.pending
	f.pending = nil
	return out
}

func (f *feed) CombatantUpdated(role types.Role, c types.Combatant) {
	f.push(types.Event{Type: types.EventCombatantUpdated, Role: role, Slot: c.ID, Combatant: &c})
}

func (f *feed) CombatantDefeated(role types.Role, slot int) {
	f.push(types.Event{Type: types.EventCombatantDefeated, Role: role, Slot: slot})
}

func (f *feed) BattleEnded(outcome types.Outcome) {
	f.push(types.Event{Type: types.EventBattleEnded, Outcome: outcome})
}

func (f *feed) Effect(fx types.VisualEffect) error {
	f.push(types.Event{Type: types.EventVisualEffect, Role: fx.Role, Slot: fx.Slot, Effect: &fx})
	return nil
}

func (f *feed) Narrate(line string) {
	f.push(types.Event{Type: types.EventNarration, Text: line})
}

func (f *feed) SelectionChanged(role types.Role, slot int) {
	f.push(types.Event{Type: types.EventSelectionChanged, Role: role, Slot: slot})
}
