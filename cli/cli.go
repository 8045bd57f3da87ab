// Package cli provides the line-oriented terminal front end: it reads
// commands, prints narration as the battle presents it, and handles
// meta-commands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/engine/events"
	"github.com/nathoo/battlecore/engine/snapshot"
	"github.com/nathoo/battlecore/types"
)

// CLI handles terminal interaction with the player. It is also the battle's
// presenter, so it must be passed to engine.New with engine.WithPresenter.
type CLI struct {
	events.Base

	Title     string
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)

	battle  *engine.Battle
	lastCmd string // for "again"/"g" repeat
	mu      sync.Mutex
}

// New creates a CLI on stdin and stdout.
func New(title string) *CLI {
	return &CLI{
		Title: title,
		In:    os.Stdin,
		Out:   os.Stdout,
	}
}

// Narrate prints a combat log line.
func (c *CLI) Narrate(line string) {
	c.printLine(line)
}

// SelectionChanged confirms a selection by name.
func (c *CLI) SelectionChanged(role types.Role, slot int) {
	if c.battle == nil {
		return
	}
	cb, ok := c.battle.Combatant(role, slot)
	if !ok {
		return
	}
	if role == types.RoleAlly {
		c.printLine(fmt.Sprintf("%s steps forward.", cb.Name))
	} else {
		c.printLine(fmt.Sprintf("Targeting %s.", cb.Name))
	}
}

// Effect shows visual cues only in trace mode.
func (c *CLI) Effect(fx types.VisualEffect) error {
	if c.tracing() {
		c.printSystem(fmt.Sprintf("[trace] effect %s on %s %d (%s, %s)",
			fx.Animation, fx.Role, fx.Slot, fx.Sound, fx.Duration))
	}
	return nil
}

// Run plays the battle until it ends, the input runs out, the player quits
// or ctx is cancelled. The prompt is shown only on the player's turn.
func (c *CLI) Run(ctx context.Context, b *engine.Battle) error {
	c.mu.Lock()
	c.battle = b
	c.mu.Unlock()

	if c.Title != "" {
		c.printLine(c.Title)
		c.printLine("")
	}
	c.printLines(engine.StatusLines(b.Snapshot()))
	c.printLine(`Type "help" for commands.`)

	scanner := bufio.NewScanner(c.In)
	for {
		if err := b.AwaitPlayerTurn(ctx); err != nil {
			if errors.Is(err, engine.ErrClosed) {
				return nil
			}
			return err
		}
		if b.Outcome() != types.OutcomeNone {
			c.printLines(engine.StatusLines(b.Snapshot()))
			return nil
		}

		c.print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return nil // /quit
			}
			continue
		}

		// "again" / "g" repeats the last battle command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := b.Step(input)
		c.printLines(result.Output)
		if c.tracing() {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the session should end.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/export":
		c.cmdExport(arg)

	case "/trace":
		c.mu.Lock()
		c.Trace = !c.Trace
		on := c.Trace
		c.mu.Unlock()
		if on {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit          Leave the battle",
		"  /help          Show this help",
		"  /state         Debug: dump the battle state",
		"  /export [file] Write a JSON snapshot (default: <battle id>.json)",
		"  /trace         Toggle debug trace output",
		"",
		"Battle commands (type \"help\" for aliases):",
		"  ally <n|name>   Choose who acts",
		"  enemy <n|name>  Choose the target",
		"  attack [enemy]  Strike the target",
		"  mana            Restore mana",
		"  heal            Restore health",
		"  status          Show both sides",
		"  again (g)       Repeat your last command",
	}
	c.printLines(help)
}

func (c *CLI) cmdState() {
	b := c.battle
	ally, enemy := b.Selection()
	scene := b.Scene()
	c.printSystem(fmt.Sprintf("Battle: %s", b.ID()))
	c.printSystem(fmt.Sprintf("Phase: %s  Turn: %d  Last actor: %d", b.Phase(), b.Turn(), b.LastActor()))
	c.printSystem(fmt.Sprintf("Selected: ally %d, enemy %d", ally, enemy))
	c.printSystem(fmt.Sprintf("Scene: %s, %s", scene.Music, scene.Background))
	if s := b.Snapshot(); s.RNGSeed != 0 || s.RNGPosition != 0 {
		c.printSystem(fmt.Sprintf("RNG: seed %d, position %d", s.RNGSeed, s.RNGPosition))
	}
	if o := b.Outcome(); o != types.OutcomeNone {
		c.printSystem(fmt.Sprintf("Outcome: %s", o))
	}
}

func (c *CLI) cmdExport(path string) {
	s := c.battle.Snapshot()
	if path == "" {
		path = s.ID + ".json"
	}
	data, err := snapshot.Marshal(s)
	if err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Battle exported to %s.", path))
}

// Inspect prints an exported battle: its status and the commands that led
// to it.
func Inspect(w io.Writer, data []byte) error {
	s, err := snapshot.Load(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Battle %s\n", s.ID)
	for _, line := range engine.StatusLines(*s) {
		fmt.Fprintln(w, line)
	}
	if len(s.CommandLog) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Commands:")
		for i, cmd := range s.CommandLog {
			fmt.Fprintf(w, "  %d. %s\n", i+1, cmd)
		}
	}
	return nil
}

func (c *CLI) printTrace(result types.Result) {
	status := "accepted"
	if !result.Accepted {
		status = "ignored"
		if result.Reason != "" {
			status += ": " + result.Reason
		}
	}
	c.printSystem(fmt.Sprintf("[trace] %s %s", actionName(result.Action), status))
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %s %d", e.Type, e.Role, e.Slot))
		}
	}
}

func actionName(a types.Action) string {
	if a == "" {
		return "command"
	}
	return string(a)
}

func (c *CLI) tracing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Trace
}

func (c *CLI) printLines(lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range lines {
		fmt.Fprintln(c.Out, line)
	}
}

func (c *CLI) printLine(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
