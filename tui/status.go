package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/battlecore/engine/snapshot"
	"github.com/nathoo/battlecore/engine/state"
	"github.com/nathoo/battlecore/types"
)

const barWidth = 10

// panelHeight is the height of the roster panels: border, title and one
// line per combatant.
const panelHeight = state.RosterSize + 3

// phaseLabel is the status bar text for a phase.
func phaseLabel(p types.Phase) string {
	switch p {
	case types.PhasePlayerTurn:
		return "Your move"
	case types.PhaseResolving:
		return "Enemy is acting"
	case types.PhaseAlliesWin:
		return "Victory"
	case types.PhaseEnemiesWin:
		return "Defeat"
	}
	return string(p)
}

// meter renders cur/max as a fixed-width bar.
func meter(cur, max int) string {
	filled := 0
	if max > 0 {
		filled = cur * barWidth / max
	}
	if cur > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// combatantLine renders one roster row.
func combatantLine(c types.Combatant, selected bool) string {
	mark := " "
	if selected {
		mark = ">"
	}
	return fmt.Sprintf("%s %d %-10s %s %3d/%-3d MP %3d/%-3d",
		mark, c.ID, truncate(c.Name, 10), meter(c.Health, c.MaxHealth),
		c.Health, c.MaxHealth, c.Mana, c.MaxMana)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// renderPanels draws the allies and enemies side by side.
func (m Model) renderPanels() string {
	half := m.width / 2
	if half < 20 {
		half = 20
	}
	left := m.renderPanel("Allies", types.RoleAlly, m.snap.Allies, m.snap.SelectedAlly, half)
	right := m.renderPanel("Enemies", types.RoleEnemy, m.snap.Enemies, m.snap.SelectedEnemy, m.width-half)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderPanel(title string, role types.Role, roster []types.Combatant, selected, width int) string {
	lines := []string{stylePanelTitle.Render(title)}
	for _, c := range roster {
		line := combatantLine(c, c.ID == selected)
		switch {
		case c.Health == 0:
			line = styleDead.Render(line)
		case c.ID == selected:
			line = styleSelected.Render(line)
		}
		if fl, ok := m.flashes[slotKey{role, c.ID}]; ok {
			if st, ok := flashStyle(fl.animation); ok {
				line = st.Render(line)
			}
		}
		lines = append(lines, line)
	}
	// Border and padding take four columns.
	w := width - 4
	if w < 1 {
		w = 1
	}
	return stylePanel.Width(w).Render(strings.Join(lines, "\n"))
}

// renderStatusBar produces a full-width inverted status line showing the
// title, turn, phase and music track.
func (m Model) renderStatusBar() string {
	s := m.snap
	left := fmt.Sprintf(" %s | Turn %d | %s", m.title, s.Turn, phaseLabel(s.Phase))
	right := fmt.Sprintf("♪ %d ", s.Scene.Track)
	if m.trace {
		right = "trace | " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// stateLines is the /state dump.
func stateLines(s snapshot.Snapshot) []string {
	out := []string{
		fmt.Sprintf("Battle: %s", s.ID),
		fmt.Sprintf("Phase: %s  Turn: %d  Last actor: %d", s.Phase, s.Turn, s.LastActor),
		fmt.Sprintf("Selected: ally %d, enemy %d", s.SelectedAlly, s.SelectedEnemy),
		fmt.Sprintf("Scene: %s, %s", s.Scene.Music, s.Scene.Background),
	}
	if s.RNGSeed != 0 || s.RNGPosition != 0 {
		out = append(out, fmt.Sprintf("RNG: seed %d, position %d", s.RNGSeed, s.RNGPosition))
	}
	if s.Outcome != types.OutcomeNone {
		out = append(out, fmt.Sprintf("Outcome: %s", s.Outcome))
	}
	return out
}
