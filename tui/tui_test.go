package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/types"
)

// firstPick always draws the first option: the roster keeps pool order and
// the first living enemy acts.
type firstPick struct{}

func (firstPick) Intn(int) int { return 0 }

func testPool() []types.StatEntry {
	return []types.StatEntry{
		{ID: 1, Name: "Knight", Health: 100, Mana: 50, Damage: 20},
		{ID: 2, Name: "Archer", Health: 60, Mana: 30, Damage: 15},
		{ID: 3, Name: "Mage", Health: 40, Mana: 100, Damage: 30},
		{ID: 4, Name: "Orc", Health: 50, Mana: 30, Damage: 10},
		{ID: 5, Name: "Goblin", Health: 30, Mana: 50, Damage: 5},
		{ID: 6, Name: "Troll", Health: 120, Mana: 20, Damage: 25},
	}
}

// newTestModel builds a sized model whose scheduler delivers enemy turns to
// the returned channel instead of a running program.
func newTestModel(t *testing.T) (Model, chan tea.Msg) {
	t.Helper()
	sess := NewSession()
	msgs := make(chan tea.Msg, 4)
	sess.sched.bind(func(msg tea.Msg) { msgs <- msg })

	rules := engine.DefaultRules()
	rules.EnemyDelay = time.Millisecond
	opts := append(sess.Options(),
		engine.WithRules(rules),
		engine.WithRandom(firstPick{}),
		engine.WithID("tui-test"),
	)
	b, err := engine.New(testPool(), opts...)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	t.Cleanup(func() { b.Close() })

	m := New(b, sess, "Test Arena")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), msgs
}

func submit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// awaitEnemy feeds the scheduled enemy turn back into the model.
func awaitEnemy(t *testing.T, m Model, msgs chan tea.Msg) Model {
	t.Helper()
	select {
	case msg := <-msgs:
		next, _ := m.Update(msg)
		return next.(Model)
	case <-time.After(5 * time.Second):
		t.Fatal("enemy turn was never scheduled")
		return m
	}
}

func logText(m Model) string {
	var lines []string
	for _, rl := range m.rawLines {
		lines = append(lines, rl.text)
	}
	return strings.Join(lines, "\n")
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"Knight attacks Orc for 20 damage.", kindDamage},
		{"Mage restores 40 mana.", kindRestore},
		{"Knight restores 30 health.", kindRestore},
		{"Orc regains 40 mana.", kindRestore},
		{"Goblin has fallen.", kindFallen},
		{"Allies win!", kindOutcome},
		{"Enemies win!", kindOutcome},
		{"Your turn.", kindTurn},
		{"[Battle exported to x.json.]", kindSystem},
		{"[trace] Events: 2", kindTrace},
		{"No ally selected.", kindError},
		{`There is no enemy called "zombie"`, kindError},
		{"Knight needs 15 mana to attack, has 14.", kindError},
		{"Waiting for the enemy turn.", kindError},
		{"Archer has fallen and cannot act.", kindError},
		{"Turn 3, your move.", kindNarration},
		{"", kindNarration},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"Dark Knight attacks Archer for 19 damage.", 20,
			"Dark Knight attacks\nArcher for 19\ndamage."},
		{"", 80, ""},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestMeter(t *testing.T) {
	tests := []struct {
		cur, max int
		filled   int
	}{
		{100, 100, 10},
		{50, 100, 5},
		{1, 100, 1}, // alive always shows something
		{0, 100, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		got := meter(tt.cur, tt.max)
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("meter(%d, %d) filled %d, want %d", tt.cur, tt.max, n, tt.filled)
		}
		if n := len([]rune(got)); n != barWidth {
			t.Errorf("meter(%d, %d) width %d, want %d", tt.cur, tt.max, n, barWidth)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Knight", 10); got != "Knight" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("Dark Knight Commander", 10); got != "Dark Knig…" {
		t.Errorf("truncate long = %q", got)
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("ally 1")
	h.Push("enemy 2")
	h.Push("attack")

	for _, want := range []string{"attack", "enemy 2", "ally 1", "ally 1"} {
		prev, ok := h.Prev()
		if !ok || prev != want {
			t.Errorf("Prev() = %q (ok=%v), want %q", prev, ok, want)
		}
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("ally 1")
	h.Push("attack")

	h.Prev() // "attack"
	h.Prev() // "ally 1"

	next, ok := h.Next()
	if !ok || next != "attack" {
		t.Errorf("expected 'attack', got %q (ok=%v)", next, ok)
	}
	if _, ok = h.Next(); ok {
		t.Error("expected false when past newest entry")
	}
	// Back at fresh input: Prev starts from the newest again.
	if prev, _ := h.Prev(); prev != "attack" {
		t.Errorf("expected 'attack' after leaving history, got %q", prev)
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(); ok {
		t.Error("expected false on empty history")
	}
	if _, ok := h.Next(); ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_MaxSizeAndDuplicates(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("b") // skipped
	h.Push("c") // "a" evicted

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	prev, _ := h.Prev()
	if prev != "c" {
		t.Errorf("expected 'c', got %q", prev)
	}
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b', got %q", prev)
	}
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b' at boundary, got %q", prev)
	}

	h.ResetCursor()
	if prev, _ := h.Prev(); prev != "c" {
		t.Errorf("expected 'c' after reset, got %q", prev)
	}
}

func TestModel_AttackAndEnemyTurn(t *testing.T) {
	m, msgs := newTestModel(t)

	m, _ = submit(t, m, "ally knight")
	m, _ = submit(t, m, "enemy 1")
	m, cmd := submit(t, m, "attack")
	if cmd == nil {
		t.Error("attack should start a flash timer")
	}

	if _, ok := m.flashes[slotKey{types.RoleEnemy, 1}]; !ok {
		t.Error("expected slash flash on the orc")
	}
	if m.snap.Phase != types.PhaseResolving {
		t.Errorf("phase = %s, want resolving", m.snap.Phase)
	}
	if orc := m.snap.Enemies[0]; orc.Health != 30 {
		t.Errorf("orc health = %d, want 30", orc.Health)
	}

	m = awaitEnemy(t, m, msgs)
	log := logText(m)
	for _, want := range []string{"> attack", "Knight attacks Orc for 20 damage.", "Orc attacks Knight for 10 damage.", "Your turn."} {
		if !strings.Contains(log, want) {
			t.Errorf("expected %q in log:\n%s", want, log)
		}
	}
	if m.snap.Phase != types.PhasePlayerTurn {
		t.Errorf("phase = %s, want player turn", m.snap.Phase)
	}
	if knight := m.snap.Allies[0]; knight.Health != 90 {
		t.Errorf("knight health = %d, want 90", knight.Health)
	}
	if _, ok := m.flashes[slotKey{types.RoleAlly, 1}]; !ok {
		t.Error("expected slash flash on the knight")
	}
}

func TestModel_FlashExpires(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = submit(t, m, "ally 3")
	m, _ = submit(t, m, "mana")

	k := slotKey{types.RoleAlly, 3}
	fl, ok := m.flashes[k]
	if !ok || fl.animation != engine.AnimMana {
		t.Fatalf("expected mana flash, got %+v", m.flashes)
	}

	// A stale timer does not clear a newer flash.
	next, _ := m.Update(flashDoneMsg{key: k, seq: fl.seq - 1})
	m = next.(Model)
	if _, ok := m.flashes[k]; !ok {
		t.Error("stale flashDoneMsg removed the flash")
	}
	next, _ = m.Update(flashDoneMsg{key: k, seq: fl.seq})
	m = next.(Model)
	if _, ok := m.flashes[k]; ok {
		t.Error("flash should be gone")
	}
}

func TestModel_RejectedCommandExplains(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = submit(t, m, "heal")
	m, _ = submit(t, m, "dance")

	log := logText(m)
	for _, want := range []string{"No ally selected.", `I don't understand "dance".`} {
		if !strings.Contains(log, want) {
			t.Errorf("expected %q in log:\n%s", want, log)
		}
	}
	if m.snap.Turn != 0 {
		t.Errorf("turn = %d, want 0", m.snap.Turn)
	}
}

func TestModel_AgainRepeatsBattleCommand(t *testing.T) {
	m, msgs := newTestModel(t)
	m, _ = submit(t, m, "g")
	if !strings.Contains(logText(m), "Nothing to repeat.") {
		t.Error("expected 'Nothing to repeat.'")
	}

	m, _ = submit(t, m, "ally 3")
	m, _ = submit(t, m, "mana")
	m = awaitEnemy(t, m, msgs)
	m, _ = submit(t, m, "/state") // meta commands are not repeated
	m, _ = submit(t, m, "g")

	if n := strings.Count(logText(m), "Mage restores 40 mana."); n != 2 {
		t.Errorf("expected mana restored twice, got %d", n)
	}
}

func TestModel_HistoryKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = submit(t, m, "ally 1")
	m, _ = submit(t, m, "status")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.input.Value() != "status" {
		t.Errorf("input = %q, want status", m.input.Value())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.input.Value() != "ally 1" {
		t.Errorf("input = %q, want ally 1", m.input.Value())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty", m.input.Value())
	}
}

func TestModel_ClosedBattle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = submit(t, m, "ally 1")
	m, _ = submit(t, m, "enemy 2")
	m.battle.Close()
	m, _ = submit(t, m, "attack")
	if !strings.Contains(logText(m), "Battle closed.") {
		t.Errorf("closed battle should explain:\n%s", logText(m))
	}
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = submit(t, m, "ally 1")
	view := m.View()
	for _, want := range []string{"Allies", "Enemies", "Knight", "Troll", "Turn 0", "Your move", "♪ 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}

	m.quitting = true
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestHandleMeta_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, quit := m.handleMeta("/quit")
	if !quit {
		t.Error("expected quit=true for /quit")
	}
	_, quit = m.handleMeta("/exit")
	if !quit {
		t.Error("expected quit=true for /exit")
	}

	next, cmd := submit(t, m, "/quit")
	if !next.quitting || cmd == nil {
		t.Error("submitting /quit should quit")
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m, _ := newTestModel(t)

	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}
	joined := strings.Join(output, "\n")
	for _, expected := range []string{"/quit", "/export", "attack", "heal", "PgUp"} {
		if !strings.Contains(joined, expected) {
			t.Errorf("expected %q in help output", expected)
		}
	}
}

func TestHandleMeta_Trace(t *testing.T) {
	m, _ := newTestModel(t)

	output, _ := m.handleMeta("/trace")
	if !m.trace {
		t.Error("expected trace to be enabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "enabled") {
		t.Errorf("expected enabled message, got %v", output)
	}

	m, _ = submit(t, m, "ally 2")
	m, _ = submit(t, m, "heal")
	log := logText(m)
	for _, want := range []string{"[trace] select_ally accepted", "[trace] effect img/effects/heal.gif on ally 2 (1s)", "[trace] restore_health accepted"} {
		if !strings.Contains(log, want) {
			t.Errorf("expected %q in log:\n%s", want, log)
		}
	}

	output, _ = m.handleMeta("/trace")
	if m.trace {
		t.Error("expected trace to be disabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "disabled") {
		t.Errorf("expected disabled message, got %v", output)
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m, _ := newTestModel(t)

	output, quit := m.handleMeta("/bogus")
	if quit {
		t.Error("unknown command should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("expected unknown command message, got %v", output)
	}
}

func TestHandleMeta_State(t *testing.T) {
	m, _ := newTestModel(t)

	output, quit := m.handleMeta("/state")
	if quit {
		t.Error("state should not quit")
	}
	joined := strings.Join(output, "\n")
	for _, want := range []string{"Battle: tui-test", "Phase: player_turn", "Scene: music/1.mp3"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in state output", want)
		}
	}
}
