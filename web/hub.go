package web

import (
	"sort"
	"sync"

	"github.com/nathoo/battlecore/engine"
)

// Hub tracks the live battles, one per websocket connection.
type Hub struct {
	mu      sync.RWMutex
	battles map[string]*engine.Battle
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{battles: map[string]*engine.Battle{}}
}

// Add registers a battle under its id.
func (h *Hub) Add(b *engine.Battle) {
	h.mu.Lock()
	h.battles[b.ID()] = b
	h.mu.Unlock()
}

// Get returns the battle with the given id.
func (h *Hub) Get(id string) (*engine.Battle, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	b, ok := h.battles[id]
	return b, ok
}

// Remove closes and forgets a battle.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	b, ok := h.battles[id]
	delete(h.battles, id)
	h.mu.Unlock()
	if ok {
		b.Close()
	}
}

// IDs lists the live battle ids, sorted.
func (h *Hub) IDs() []string {
	h.mu.RLock()
	ids := make([]string, 0, len(h.battles))
	for id := range h.battles {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Len reports the number of live battles.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.battles)
}

// CloseAll closes every battle, for shutdown.
func (h *Hub) CloseAll() {
	for _, id := range h.IDs() {
		h.Remove(id)
	}
}
