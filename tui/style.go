package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/battlecore/engine"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleDamage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleRestore = lipgloss.NewStyle().
			Foreground(lipgloss.Color("79"))

	styleFallen = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleOutcome = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleTurn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Italic(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	stylePanelTitle = lipgloss.NewStyle().Bold(true)

	styleSelected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)

	styleDead = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	styleFlashSlash = lipgloss.NewStyle().Background(lipgloss.Color("52"))
	styleFlashMana  = lipgloss.NewStyle().Background(lipgloss.Color("17"))
	styleFlashHeal  = lipgloss.NewStyle().Background(lipgloss.Color("22"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindDamage
	kindRestore
	kindFallen
	kindOutcome
	kindTurn
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case line == "Your turn.":
		return kindTurn
	case strings.HasSuffix(line, " win!"):
		return kindOutcome
	case strings.HasSuffix(line, " has fallen."):
		return kindFallen
	case strings.Contains(line, " attacks ") && strings.HasSuffix(line, " damage."):
		return kindDamage
	case strings.Contains(line, " restores "), strings.Contains(line, " regains "):
		return kindRestore
	case strings.HasPrefix(line, "No "),
		strings.HasPrefix(line, "There is no "),
		strings.HasPrefix(line, "Which "),
		strings.HasPrefix(line, "Waiting for "),
		strings.HasPrefix(line, "Battle is over"),
		strings.HasPrefix(line, "I don't understand"),
		strings.Contains(line, " needs "),
		strings.Contains(line, " cannot act"):
		return kindError
	default:
		return kindNarration
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindDamage:
		return styleDamage.Render(line)
	case kindRestore:
		return styleRestore.Render(line)
	case kindFallen:
		return styleFallen.Render(line)
	case kindOutcome:
		return styleOutcome.Render(line)
	case kindTurn:
		return styleTurn.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// flashStyle returns the highlight for a combatant playing an animation.
func flashStyle(animation string) (lipgloss.Style, bool) {
	switch animation {
	case engine.AnimSlash:
		return styleFlashSlash, true
	case engine.AnimMana:
		return styleFlashMana, true
	case engine.AnimHeal:
		return styleFlashHeal, true
	}
	return lipgloss.Style{}, false
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
