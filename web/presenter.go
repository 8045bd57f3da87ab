package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nathoo/battlecore/types"
)

const writeWait = 5 * time.Second

// wsMsg is the envelope for every server-to-browser message.
type wsMsg struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// conn serializes writes: the reader loop and the enemy-turn timer both
// send on the same websocket.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(m wsMsg) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(m)
}

// presenter forwards battle events to the browser as "event" messages.
type presenter struct {
	c *conn
}

func (p presenter) event(e types.Event) error {
	if err := p.c.send(wsMsg{Type: "event", Data: e}); err != nil {
		return fmt.Errorf("sending %s: %w", e.Type, err)
	}
	return nil
}

func (p presenter) CombatantUpdated(role types.Role, c types.Combatant) {
	p.event(types.Event{Type: types.EventCombatantUpdated, Role: role, Slot: c.ID, Combatant: &c})
}

func (p presenter) CombatantDefeated(role types.Role, slot int) {
	p.event(types.Event{Type: types.EventCombatantDefeated, Role: role, Slot: slot})
}

func (p presenter) BattleEnded(outcome types.Outcome) {
	p.event(types.Event{Type: types.EventBattleEnded, Outcome: outcome})
}

// Effect reports write failures so the engine logs them.
func (p presenter) Effect(fx types.VisualEffect) error {
	return p.event(types.Event{Type: types.EventVisualEffect, Role: fx.Role, Slot: fx.Slot, Effect: &fx})
}

func (p presenter) Narrate(line string) {
	p.event(types.Event{Type: types.EventNarration, Text: line})
}

func (p presenter) SelectionChanged(role types.Role, slot int) {
	p.event(types.Event{Type: types.EventSelectionChanged, Role: role, Slot: slot})
}
