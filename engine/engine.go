// Package engine provides the Battle session: it wires selection, player
// actions, the scheduled enemy counter-turn and event delivery together.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nathoo/battlecore/engine/effects"
	"github.com/nathoo/battlecore/engine/events"
	"github.com/nathoo/battlecore/engine/parser"
	"github.com/nathoo/battlecore/engine/resolve"
	"github.com/nathoo/battlecore/engine/snapshot"
	"github.com/nathoo/battlecore/engine/state"
	"github.com/nathoo/battlecore/types"
)

// PoolSize is the number of distinct stats entries a battle draws.
const PoolSize = 2 * state.RosterSize

// SceneCount is the number of music/background pairs a battle picks from.
const SceneCount = 3

// CommandLogLimit is how many of the most recent Step inputs a battle keeps.
const CommandLogLimit = 100

var (
	// ErrPoolTooSmall is returned by New when the stats pool cannot supply
	// six distinct combatants.
	ErrPoolTooSmall = errors.New("stats pool too small")
	// ErrClosed is returned when waiting on a battle that has been closed.
	ErrClosed = errors.New("battle closed")
)

// Battle is one battle session. All methods are safe for concurrent use.
//
// Presenter calls happen outside the state lock and in mutation order, so a
// presenter may read the battle (Snapshot, Combatant, ...) but must not call
// an action synchronously.
type Battle struct {
	id    string
	rules Rules
	rnd   Random
	sched Scheduler
	pres  events.Presenter
	log   *zap.Logger

	mu         sync.Mutex
	model      *state.Model
	phase      *phaseMachine
	selAlly    int
	selEnemy   int
	lastActor  int
	turn       int
	outcome    types.Outcome
	reported   map[effects.Target]bool
	scene      types.Scene
	commandLog []string
	pending    Task
	idle       chan struct{} // closed while no enemy turn is pending
	closed     bool
	nextSeq    uint64

	emitMu   sync.Mutex
	emitCond *sync.Cond
	emitSeq  uint64
}

// Option configures a Battle.
type Option func(*Battle)

// WithRules overrides DefaultRules.
func WithRules(r Rules) Option {
	return func(b *Battle) { b.rules = r }
}

// WithRandom sets the random source for the roster draw, scene and enemy
// choice. Defaults to a time-seeded RNG.
func WithRandom(r Random) Option {
	return func(b *Battle) { b.rnd = r }
}

// WithScheduler sets how the enemy turn is deferred. Defaults to WallClock.
func WithScheduler(s Scheduler) Option {
	return func(b *Battle) { b.sched = s }
}

// WithPresenter sets the presenter events are delivered to.
func WithPresenter(p events.Presenter) Option {
	return func(b *Battle) { b.pres = p }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Battle) { b.log = l }
}

// WithID sets the battle id. Defaults to a random UUID.
func WithID(id string) Option {
	return func(b *Battle) { b.id = id }
}

// New creates a battle from a stats pool. Six distinct entries are drawn
// without replacement: the first three become the allies, the next three
// the enemies.
func New(pool []types.StatEntry, opts ...Option) (*Battle, error) {
	b := &Battle{
		rules:    DefaultRules(),
		sched:    WallClock,
		reported: map[effects.Target]bool{},
		phase:    newPhaseMachine(),
		idle:     make(chan struct{}),
	}
	close(b.idle)
	b.emitCond = sync.NewCond(&b.emitMu)
	for _, opt := range opts {
		opt(b)
	}
	if b.rnd == nil {
		b.rnd = NewRNG(time.Now().UnixNano())
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if b.id == "" {
		b.id = uuid.NewString()
	}
	b.log = b.log.With(zap.String("battle", b.id))

	if err := b.rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if len(pool) < PoolSize {
		return nil, fmt.Errorf("%w: need %d entries, got %d", ErrPoolTooSmall, PoolSize, len(pool))
	}

	picks := Sample(b.rnd, len(pool), PoolSize)
	drawn := make([]types.StatEntry, 0, PoolSize)
	for _, i := range picks {
		drawn = append(drawn, pool[i])
	}
	model, err := state.NewModel(drawn[:state.RosterSize], drawn[state.RosterSize:])
	if err != nil {
		return nil, err
	}
	b.model = model
	b.scene = newScene(b.rnd.Intn(SceneCount) + 1)

	b.log.Info("battle started",
		zap.Strings("allies", names(model.Allies)),
		zap.Strings("enemies", names(model.Enemies)),
		zap.Int("track", b.scene.Track))
	return b, nil
}

func newScene(track int) types.Scene {
	return types.Scene{
		Track:      track,
		Music:      fmt.Sprintf("music/%d.mp3", track),
		Background: fmt.Sprintf("backgrounds/battleBg%d.gif", track),
	}
}

// Refresh sends every combatant to the presenter, for a front end that has
// just attached.
func (b *Battle) Refresh() {
	b.mu.Lock()
	var evts []types.Event
	for _, role := range []types.Role{types.RoleAlly, types.RoleEnemy} {
		for _, c := range b.model.Roster(role) {
			evts = append(evts, updated(role, c))
		}
	}
	seq := b.seqLocked()
	b.mu.Unlock()
	b.publish(seq, evts)
}

// SelectAlly makes slot the selected ally. Selection is allowed while the
// enemy turn is pending and works on fallen combatants.
func (b *Battle) SelectAlly(slot int) types.Result {
	return b.selectSlot(types.ActionSelectAlly, types.RoleAlly, slot)
}

// SelectEnemy makes slot the selected enemy.
func (b *Battle) SelectEnemy(slot int) types.Result {
	return b.selectSlot(types.ActionSelectEnemy, types.RoleEnemy, slot)
}

func (b *Battle) selectSlot(action types.Action, role types.Role, slot int) types.Result {
	res := types.Result{Action: action}

	b.mu.Lock()
	if reason := b.blockedLocked(false); reason != "" {
		return b.rejectLocked(res, reason)
	}
	c, ok := b.model.Get(role, slot)
	if !ok {
		return b.rejectLocked(res, fmt.Sprintf("no %s in slot %d", role, slot))
	}
	if role == types.RoleAlly {
		b.selAlly = slot
	} else {
		b.selEnemy = slot
	}
	res.Accepted = true
	res.Events = []types.Event{
		{Type: types.EventSelectionChanged, Role: role, Slot: slot},
		updated(role, c),
	}
	seq := b.seqLocked()
	b.mu.Unlock()

	b.log.Debug("selected", zap.String("role", string(role)), zap.Int("slot", slot))
	b.publish(seq, res.Events)
	return res
}

// Attack has the selected ally hit the selected enemy for the ally's damage,
// spending AttackCost mana.
func (b *Battle) Attack() types.Result {
	res := types.Result{Action: types.ActionAttack}

	b.mu.Lock()
	ally, reason := b.actorLocked()
	if reason != "" {
		return b.rejectLocked(res, reason)
	}
	enemy, ok := b.model.Get(types.RoleEnemy, b.selEnemy)
	if !ok {
		return b.rejectLocked(res, "no enemy selected")
	}
	if ally.Mana < b.rules.AttackCost {
		return b.rejectLocked(res, fmt.Sprintf("%s needs %d mana to attack, has %d", ally.Name, b.rules.AttackCost, ally.Mana))
	}

	line := fmt.Sprintf("%s attacks %s for %d damage.", ally.Name, enemy.Name, ally.Damage)
	return b.commitLocked(res, ally, attackEffects(b.rules, types.RoleAlly, ally, enemy), slashCue(types.RoleEnemy, enemy.ID), line, true)
}

// RestoreMana gives the selected ally ManaRestore mana, up to its maximum.
func (b *Battle) RestoreMana() types.Result {
	res := types.Result{Action: types.ActionRestoreMana}

	b.mu.Lock()
	ally, reason := b.actorLocked()
	if reason != "" {
		return b.rejectLocked(res, reason)
	}
	line := fmt.Sprintf("%s restores %d mana.", ally.Name, b.rules.ManaRestore)
	return b.commitLocked(res, ally, manaEffects(b.rules, types.RoleAlly, ally), manaCue(types.RoleAlly, ally.ID), line, false)
}

// RestoreHealth heals the selected ally by HealFraction of its max health.
func (b *Battle) RestoreHealth() types.Result {
	res := types.Result{Action: types.ActionRestoreHealth}

	b.mu.Lock()
	ally, reason := b.actorLocked()
	if reason != "" {
		return b.rejectLocked(res, reason)
	}
	amount := effects.HealAmount(ally.MaxHealth, b.rules.HealFraction)
	line := fmt.Sprintf("%s restores %d health.", ally.Name, amount)
	return b.commitLocked(res, ally, healEffects(b.rules, types.RoleAlly, ally), healCue(types.RoleAlly, ally.ID), line, false)
}

// actorLocked returns the selected ally if a player action may run now.
func (b *Battle) actorLocked() (*types.Combatant, string) {
	if reason := b.blockedLocked(true); reason != "" {
		return nil, reason
	}
	ally, ok := b.model.Get(types.RoleAlly, b.selAlly)
	if !ok {
		return nil, "no ally selected"
	}
	if !state.IsAlive(ally) {
		return nil, fmt.Sprintf("%s has fallen and cannot act", ally.Name)
	}
	return ally, ""
}

// blockedLocked returns why no action can be taken, or "".
func (b *Battle) blockedLocked(needTurn bool) string {
	switch {
	case b.closed:
		return "battle closed"
	case b.phase.Terminal():
		return "battle is over"
	case needTurn && b.phase.Current() != types.PhasePlayerTurn:
		return "waiting for the enemy turn"
	}
	return ""
}

// rejectLocked releases the lock and returns res as a no-op.
func (b *Battle) rejectLocked(res types.Result, reason string) types.Result {
	b.mu.Unlock()
	res.Reason = reason
	b.log.Debug("action ignored", zap.String("action", string(res.Action)), zap.String("reason", reason))
	return res
}

// commitLocked applies a validated player action, ends the player turn and
// schedules the enemy reply. It releases the lock.
func (b *Battle) commitLocked(res types.Result, actor *types.Combatant, effs []types.Effect, cue types.VisualEffect, line string, sweep bool) types.Result {
	touched, err := effects.Apply(b.model, effs)
	if err != nil {
		b.mu.Unlock()
		b.log.Error("applying effects", zap.String("action", string(res.Action)), zap.Error(err))
		res.Reason = err.Error()
		return res
	}

	b.lastActor = actor.ID
	b.turn++
	res.Accepted = true
	res.Events = append(res.Events,
		types.Event{Type: types.EventNarration, Text: line},
		types.Event{Type: types.EventVisualEffect, Role: cue.Role, Slot: cue.Slot, Effect: &cue},
	)
	res.Events = append(res.Events, b.updatedLocked(touched)...)
	if sweep {
		res.Events = append(res.Events, sweepDefeated(b.model, b.reported)...)
	}

	ended := b.settleLocked(&res.Events)
	if !ended {
		if err := b.phase.Fire(evPlayerActed); err != nil {
			b.log.Error("ending player turn", zap.Error(err))
		}
		b.idle = make(chan struct{})
	}
	turn := b.turn
	seq := b.seqLocked()
	b.mu.Unlock()

	b.log.Info("player action",
		zap.String("action", string(res.Action)),
		zap.String("ally", actor.Name),
		zap.Int("slot", actor.ID),
		zap.Int("turn", turn))
	b.publish(seq, res.Events)

	if !ended {
		b.scheduleEnemyTurn()
	}
	return res
}

// settleLocked evaluates the outcome once. When the battle has just ended it
// moves to the terminal phase and appends the closing events.
func (b *Battle) settleLocked(evts *[]types.Event) bool {
	if b.outcome != types.OutcomeNone {
		return true
	}
	o := evaluateOutcome(b.model)
	if o == types.OutcomeNone {
		return false
	}
	if err := b.phase.End(o); err != nil {
		b.log.Error("ending battle", zap.Error(err))
	}
	b.outcome = o
	*evts = append(*evts,
		types.Event{Type: types.EventNarration, Text: outcomeLine(o)},
		types.Event{Type: types.EventBattleEnded, Outcome: o},
	)
	b.log.Info("battle ended", zap.String("outcome", string(o)), zap.Int("turn", b.turn))
	return true
}

func (b *Battle) scheduleEnemyTurn() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		b.releaseLocked()
		return
	}
	b.pending = b.sched.AfterFunc(b.rules.EnemyDelay, b.enemyTurn)
}

// enemyTurn runs the enemy's single counter-action. The player turn is
// handed back on every exit path.
func (b *Battle) enemyTurn() {
	defer b.finishEnemyTurn()

	seq, evts, ok := b.resolveEnemyTurn()
	if ok {
		b.publish(seq, evts)
	}
}

func (b *Battle) resolveEnemyTurn() (uint64, []types.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.phase.Current() != types.PhaseResolving {
		return 0, nil, false
	}

	var evts []types.Event
	move, ok := EnemyTurn(b.model, b.rules, b.rnd, b.lastActor)
	if ok {
		touched, err := effects.Apply(b.model, move.Effects)
		if err != nil {
			b.log.Error("applying enemy effects", zap.Error(err))
		} else {
			cue := move.Cue
			evts = append(evts,
				types.Event{Type: types.EventNarration, Text: move.Narration},
				types.Event{Type: types.EventVisualEffect, Role: cue.Role, Slot: cue.Slot, Effect: &cue},
			)
			evts = append(evts, b.updatedLocked(touched)...)
			evts = append(evts, sweepDefeated(b.model, b.reported)...)
			b.settleLocked(&evts)

			fields := []zap.Field{zap.String("enemy", move.Enemy.Name), zap.Int("slot", move.Enemy.ID)}
			if move.Target != nil {
				fields = append(fields, zap.String("target", move.Target.Name), zap.Int("damage", move.Enemy.Damage))
			} else {
				fields = append(fields, zap.Int("mana", b.rules.ManaRestore))
			}
			b.log.Info("enemy action", fields...)
		}
	}
	return b.seqLocked(), evts, true
}

func (b *Battle) finishEnemyTurn() {
	b.mu.Lock()
	var evts []types.Event
	if b.phase.Current() == types.PhaseResolving {
		if err := b.phase.Fire(evEnemyActed); err != nil {
			b.log.Error("returning player turn", zap.Error(err))
		}
		if !b.closed {
			evts = append(evts, types.Event{Type: types.EventNarration, Text: "Your turn."})
		}
	}
	b.pending = nil
	idle := b.idle
	seq := b.seqLocked()
	b.mu.Unlock()

	// Waiters wake only after the hand-back has been presented.
	b.publish(seq, evts)

	b.mu.Lock()
	closeOnce(idle)
	b.mu.Unlock()
}

// releaseLocked wakes AwaitPlayerTurn callers.
func (b *Battle) releaseLocked() {
	closeOnce(b.idle)
}

// closeOnce closes ch unless it is already closed. Callers hold mu.
func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

// AwaitPlayerTurn blocks until no enemy turn is pending. It returns
// ErrClosed if the battle was closed, or the context's error.
func (b *Battle) AwaitPlayerTurn(ctx context.Context) error {
	b.mu.Lock()
	idle := b.idle
	b.mu.Unlock()

	select {
	case <-idle:
	case <-ctx.Done():
		return ctx.Err()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

// Close tears the battle down: a pending enemy turn is cancelled and every
// later action is ignored. Close is idempotent.
func (b *Battle) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
	b.releaseLocked()
	b.log.Info("battle closed", zap.Int("turn", b.turn))
	return nil
}

// Step runs one text command: "attack [enemy]", "mana", "heal",
// "ally <ref>", "enemy <ref>", "status" or "help". A reference is a slot
// number or a name.
func (b *Battle) Step(input string) types.Result {
	intent := parser.Parse(input)

	b.mu.Lock()
	b.commandLog = append(b.commandLog, input)
	if n := len(b.commandLog); n > CommandLogLimit {
		b.commandLog = append(b.commandLog[:0], b.commandLog[n-CommandLogLimit:]...)
	}
	b.mu.Unlock()

	switch intent.Verb {
	case "":
		return types.Result{Output: []string{"What do you want to do?"}}

	case parser.VerbAlly, parser.VerbEnemy:
		role, action := types.RoleAlly, types.ActionSelectAlly
		if intent.Verb == parser.VerbEnemy {
			role, action = types.RoleEnemy, types.ActionSelectEnemy
		}
		if intent.Object == "" {
			return types.Result{Action: action, Reason: "no combatant given", Output: []string{fmt.Sprintf("Select which %s?", role)}}
		}
		slot, err := b.resolve(role, intent.Object)
		if err != nil {
			return types.Result{Action: action, Reason: err.Error(), Output: []string{capitalize(err.Error())}}
		}
		return explain(b.selectSlot(action, role, slot))

	case parser.VerbAttack:
		return b.stepAction(types.RoleEnemy, intent.Object, b.Attack)

	case parser.VerbMana:
		return b.stepAction(types.RoleAlly, intent.Object, b.RestoreMana)

	case parser.VerbHeal:
		return b.stepAction(types.RoleAlly, intent.Object, b.RestoreHealth)

	case parser.VerbStatus:
		return types.Result{Action: types.ActionStatus, Accepted: true, Output: StatusLines(b.Snapshot())}

	case parser.VerbHelp:
		return types.Result{Action: types.ActionHelp, Accepted: true, Output: helpLines()}

	default:
		return types.Result{
			Reason: "unknown command",
			Output: []string{fmt.Sprintf("I don't understand %q. Type \"help\" for commands.", intent.Verb)},
		}
	}
}

// stepAction selects ref in role first when given, then runs the action.
func (b *Battle) stepAction(role types.Role, ref string, action func() types.Result) types.Result {
	var pre []types.Event
	if ref != "" {
		slot, err := b.resolve(role, ref)
		if err != nil {
			return types.Result{Action: selectAction(role), Reason: err.Error(), Output: []string{capitalize(err.Error())}}
		}
		sel := b.selectSlot(selectAction(role), role, slot)
		if !sel.Accepted {
			return explain(sel)
		}
		pre = sel.Events
	}

	res := action()
	res.Events = append(pre, res.Events...)
	return explain(res)
}

// explain adds the reason of a rejected action to its output.
func explain(res types.Result) types.Result {
	if !res.Accepted && res.Reason != "" {
		res.Output = append(res.Output, capitalize(res.Reason)+".")
	}
	return res
}

func selectAction(role types.Role) types.Action {
	if role == types.RoleAlly {
		return types.ActionSelectAlly
	}
	return types.ActionSelectEnemy
}

func (b *Battle) resolve(role types.Role, ref string) (int, error) {
	b.mu.Lock()
	roster := make([]*types.Combatant, 0, state.RosterSize)
	for _, c := range b.model.Roster(role) {
		cp := *c
		roster = append(roster, &cp)
	}
	b.mu.Unlock()
	return resolve.Slot(role, roster, ref)
}

// ID returns the battle id.
func (b *Battle) ID() string { return b.id }

// Rules returns the rules the battle runs with.
func (b *Battle) Rules() Rules { return b.rules }

// Phase returns the current turn phase.
func (b *Battle) Phase() types.Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase.Current()
}

// Outcome returns the battle result, or OutcomeNone while it is running.
func (b *Battle) Outcome() types.Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outcome
}

// Combatant returns a copy of the combatant at a slot.
func (b *Battle) Combatant(role types.Role, slot int) (types.Combatant, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.model.Get(role, slot)
	if !ok {
		return types.Combatant{}, false
	}
	return *c, true
}

// Selection returns the selected ally and enemy slots; 0 means none.
func (b *Battle) Selection() (ally, enemy int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selAlly, b.selEnemy
}

// LastActor returns the slot of the last ally that acted, or 0.
func (b *Battle) LastActor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastActor
}

// Turn returns the number of accepted player actions.
func (b *Battle) Turn() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.turn
}

// Scene returns the battle's music and background.
func (b *Battle) Scene() types.Scene { return b.scene }

// Snapshot returns a consistent view of the whole battle.
func (b *Battle) Snapshot() snapshot.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := snapshot.Snapshot{
		Version:       snapshot.Version,
		ID:            b.id,
		Phase:         b.phase.Current(),
		Outcome:       b.outcome,
		Turn:          b.turn,
		Allies:        state.Copy(b.model.Allies),
		Enemies:       state.Copy(b.model.Enemies),
		SelectedAlly:  b.selAlly,
		SelectedEnemy: b.selEnemy,
		LastActor:     b.lastActor,
		Scene:         b.scene,
		CommandLog:    append([]string{}, b.commandLog...),
	}
	if rng, ok := b.rnd.(*RNG); ok {
		s.RNGSeed = rng.Seed()
		s.RNGPosition = rng.Position()
	}
	return s
}

// seqLocked reserves the next delivery slot. Every reserved slot must be
// passed to publish, even with no events.
func (b *Battle) seqLocked() uint64 {
	seq := b.nextSeq
	b.nextSeq++
	return seq
}

// publish delivers a batch once every earlier batch has been delivered.
func (b *Battle) publish(seq uint64, evts []types.Event) {
	b.emitMu.Lock()
	defer b.emitMu.Unlock()
	for b.emitSeq != seq {
		b.emitCond.Wait()
	}
	defer func() {
		b.emitSeq++
		b.emitCond.Broadcast()
	}()
	events.Dispatch(b.pres, evts, b.log)
}

// updatedLocked returns a combatant_updated event for every touched target.
func (b *Battle) updatedLocked(touched []effects.Target) []types.Event {
	evts := make([]types.Event, 0, len(touched))
	for _, t := range touched {
		if c, ok := b.model.Get(t.Role, t.Slot); ok {
			evts = append(evts, updated(t.Role, c))
		}
	}
	return evts
}

func updated(role types.Role, c *types.Combatant) types.Event {
	cp := *c
	return types.Event{Type: types.EventCombatantUpdated, Role: role, Slot: c.ID, Combatant: &cp}
}

func names(roster []*types.Combatant) []string {
	out := make([]string, 0, len(roster))
	for _, c := range roster {
		out = append(out, c.Name)
	}
	return out
}

// StatusLines renders a snapshot as text for line-oriented front ends.
func StatusLines(s snapshot.Snapshot) []string {
	lines := []string{fmt.Sprintf("Turn %d, %s.", s.Turn, phaseLabel(s))}
	for _, side := range []struct {
		title    string
		roster   []types.Combatant
		selected int
	}{
		{"Allies", s.Allies, s.SelectedAlly},
		{"Enemies", s.Enemies, s.SelectedEnemy},
	} {
		lines = append(lines, side.title+":")
		for _, c := range side.roster {
			mark := " "
			if c.ID == side.selected {
				mark = ">"
			}
			line := fmt.Sprintf(" %s %d. %-14s HP %d/%d  Mana %d/%d  Dmg %d",
				mark, c.ID, c.Name, c.Health, c.MaxHealth, c.Mana, c.MaxMana, c.Damage)
			if c.Health == 0 {
				line += "  (fallen)"
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func phaseLabel(s snapshot.Snapshot) string {
	switch s.Phase {
	case types.PhasePlayerTurn:
		return "your move"
	case types.PhaseResolving:
		return "enemy is acting"
	case types.PhaseAlliesWin:
		return "allies won"
	case types.PhaseEnemiesWin:
		return "enemies won"
	}
	return string(s.Phase)
}

func helpLines() []string {
	return []string{
		"Commands:",
		"  ally <n|name>     select an ally (also: pick, select ally)",
		"  enemy <n|name>    select an enemy (also: target, select enemy)",
		"  attack [enemy]    attack the selected enemy (a, hit, strike)",
		"  mana              restore mana (m, meditate, restore mana)",
		"  heal              restore health (h, hp, restore health)",
		"  status            show both sides (l, look)",
		"  help              show this help",
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
