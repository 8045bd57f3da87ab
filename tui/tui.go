// Package tui provides a Bubble Tea terminal UI for battlecore: roster
// panels, a scrolling combat log and a command line.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/engine/snapshot"
	"github.com/nathoo/battlecore/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

type slotKey struct {
	role types.Role
	slot int
}

// flash is a visual effect currently playing on a combatant.
type flash struct {
	animation string
	seq       int
}

// flashDoneMsg ends a flash once its duration has passed.
type flashDoneMsg struct {
	key slotKey
	seq int
}

// Model is the Bubble Tea model for the battle TUI.
type Model struct {
	battle *engine.Battle
	sess   *Session
	title  string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated log lines (unstyled, for re-wrapping)
	snap     snapshot.Snapshot
	flashes  map[slotKey]flash
	flashSeq int

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// New creates a TUI model for a battle built with sess.Options().
func New(b *engine.Battle, sess *Session, title string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		battle:  b,
		sess:    sess,
		title:   title,
		input:   ti,
		history: NewHistory(100),
		snap:    b.Snapshot(),
		flashes: map[slotKey]flash{},
	}
}

// Run starts the Bubble Tea program and closes the battle when it exits.
func Run(b *engine.Battle, sess *Session, title string) error {
	defer b.Close()
	m := New(b, sess, title)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	sess.sched.bind(p.Send)
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the opening lines.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

// introMsg carries the opening lines into the Update loop.
type introMsg struct {
	lines []string
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string
		if m.title != "" {
			lines = append(lines, m.title, "")
		}
		for _, c := range m.snap.Allies {
			lines = append(lines, fmt.Sprintf("%s joins the allies.", c.Name))
		}
		for _, c := range m.snap.Enemies {
			lines = append(lines, fmt.Sprintf("%s stands against you.", c.Name))
		}
		lines = append(lines, `Pick an ally and an enemy, then attack. Type "help" for commands.`)
		return introMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, enemy turns).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - panelHeight - 2 // panels + status bar + input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case introMsg:
		m = m.appendOutput("", msg.lines, false)

	case scheduledMsg:
		msg.fn()
		var cmd tea.Cmd
		m, cmd = m.drain()
		return m, cmd

	case flashDoneMsg:
		if fl, ok := m.flashes[msg.key]; ok && fl.seq == msg.seq {
			delete(m.flashes, msg.key)
		}
		return m, nil
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(input, []string{"Nothing to repeat."}, true)
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(input, output, true)
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Battle command. Narration arrives through the feed.
	result := m.battle.Step(input)
	m = m.appendOutput(input, nil, false)
	var cmd tea.Cmd
	m, cmd = m.drain()
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	if len(output) > 0 {
		m = m.appendOutput("", output, false)
	}
	return m, cmd
}

// drain applies buffered presenter events: narration goes to the log,
// effects start a timed flash on the combatant.
func (m Model) drain() (Model, tea.Cmd) {
	var lines []string
	var cmds []tea.Cmd
	for _, e := range m.sess.feed.drain() {
		switch e.Type {
		case types.EventNarration:
			lines = append(lines, e.Text)
		case types.EventVisualEffect:
			if e.Effect == nil {
				continue
			}
			if m.trace {
				lines = append(lines, fmt.Sprintf("[trace] effect %s on %s %d (%s)",
					e.Effect.Animation, e.Effect.Role, e.Effect.Slot, e.Effect.Duration))
			}
			m.flashSeq++
			k := slotKey{e.Effect.Role, e.Effect.Slot}
			m.flashes[k] = flash{animation: e.Effect.Animation, seq: m.flashSeq}
			seq := m.flashSeq
			cmds = append(cmds, tea.Tick(e.Effect.Duration, func(time.Time) tea.Msg {
				return flashDoneMsg{key: k, seq: seq}
			}))
		case types.EventBattleEnded:
			lines = append(lines, "[Battle over. Type /quit to leave.]")
		}
	}
	m.snap = m.battle.Snapshot()
	if len(lines) > 0 {
		m = m.appendOutput("", lines, false)
	}
	return m, tea.Batch(cmds...)
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(input string, lines []string, isSystem bool) Model {
	if input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + input, isInput: true,
		})
	}

	for _, line := range lines {
		rl := rawLine{text: line, isSystem: isSystem}
		if !isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wLen := len(word)
		switch {
		case i == 0:
			lineLen = wLen
		case lineLen+1+wLen > width:
			result.WriteString("\n")
			lineLen = wLen
		default:
			result.WriteString(" ")
			lineLen += 1 + wLen
		}
		result.WriteString(word)
	}
	return result.String()
}

// View renders the full TUI layout: panels + log + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.renderPanels() + "\n" + m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return cmdHelp(), false

	case "/state":
		return stateLines(m.battle.Snapshot()), false

	case "/export":
		return m.cmdExport(arg), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdExport(path string) []string {
	s := m.battle.Snapshot()
	if path == "" {
		path = s.ID + ".json"
	}
	data, err := snapshot.Marshal(s)
	if err != nil {
		return []string{fmt.Sprintf("Export failed: %v", err)}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Export failed: %v", err)}
	}
	return []string{fmt.Sprintf("Battle exported to %s.", path)}
}

func cmdHelp() []string {
	return []string{
		"System:",
		"  /quit          Leave the battle",
		"  /help          Show this help",
		"  /state         Debug: dump the battle state",
		"  /export [file] Write a JSON snapshot",
		"  /trace         Toggle debug trace output",
		"",
		"Battle commands:",
		"  ally <n|name>   Choose who acts (pick, select ally)",
		"  enemy <n|name>  Choose the target (target, select enemy)",
		"  attack [enemy]  Strike the target (a, hit, strike)",
		"  mana            Restore mana (m, meditate)",
		"  heal            Restore health (h, hp)",
		"  status          Show both sides (l, look)",
		"  again (g)       Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func formatTrace(result types.Result) []string {
	status := "accepted"
	if !result.Accepted {
		status = "ignored"
		if result.Reason != "" {
			status += ": " + result.Reason
		}
	}
	action := string(result.Action)
	if action == "" {
		action = "command"
	}
	lines := []string{fmt.Sprintf("[trace] %s %s", action, status)}
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %s %d", e.Type, e.Role, e.Slot))
		}
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
