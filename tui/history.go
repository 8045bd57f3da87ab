package tui

// History keeps the most recent commands for Up/Down recall.
type History struct {
	entries []string
	max     int
	back    int // 0 = editing fresh input, n = n-th most recent entry
}

// NewHistory creates a history that remembers at most max commands.
func NewHistory(max int) *History {
	return &History{entries: make([]string, 0, max), max: max}
}

// Push records a command. Repeating the previous command is not recorded.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

// Len reports how many commands are remembered.
func (h *History) Len() int { return len(h.entries) }

// Prev steps to an older command. It stops at the oldest one and reports
// false only when nothing has been recorded.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.back < len(h.entries) {
		h.back++
	}
	return h.entries[len(h.entries)-h.back], true
}

// Next steps to a newer command. Stepping past the newest returns false and
// goes back to fresh input.
func (h *History) Next() (string, bool) {
	if h.back <= 1 {
		h.back = 0
		return "", false
	}
	h.back--
	return h.entries[len(h.entries)-h.back], true
}

// ResetCursor leaves history navigation.
func (h *History) ResetCursor() {
	h.back = 0
}
