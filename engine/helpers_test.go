package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nathoo/battlecore/engine/events"
	"github.com/nathoo/battlecore/types"
)

// scripted is a Random that returns fixed draws, then zeros.
type scripted struct {
	draws []int
	i     int
}

func (s *scripted) Intn(n int) int {
	if s.i >= len(s.draws) {
		return 0
	}
	d := s.draws[s.i]
	s.i++
	if d >= n {
		d = n - 1
	}
	return d
}

// setupDraws is the number of draws New makes: six roster picks and a scene.
const setupDraws = PoolSize + 1

// testPool returns six entries. With all-zero setup draws the first three
// become the allies and the last three the enemies, in order.
func testPool() []types.StatEntry {
	return []types.StatEntry{
		{ID: 10, Name: "Knight", Health: 100, Mana: 50, Damage: 20},
		{ID: 11, Name: "Archer", Health: 60, Mana: 30, Damage: 15},
		{ID: 12, Name: "Mage", Health: 40, Mana: 100, Damage: 30},
		{ID: 20, Name: "Orc", Health: 50, Mana: 30, Damage: 10},
		{ID: 21, Name: "Goblin", Health: 30, Mana: 50, Damage: 5},
		{ID: 22, Name: "Troll", Health: 120, Mana: 20, Damage: 25},
	}
}

type fixture struct {
	b     *Battle
	sched *ManualScheduler
	rec   *events.Recorder
}

// newFixture builds a battle over testPool with a manual scheduler and a
// recording presenter. enemyDraws are consumed by the enemy turns, in order.
func newFixture(t *testing.T, enemyDraws ...int) *fixture {
	t.Helper()
	return newFixtureWithPool(t, testPool(), enemyDraws...)
}

func newFixtureWithPool(t *testing.T, pool []types.StatEntry, enemyDraws ...int) *fixture {
	t.Helper()
	draws := append(make([]int, setupDraws), enemyDraws...)
	sched := NewManualScheduler()
	rec := &events.Recorder{}
	b, err := New(pool,
		WithRandom(&scripted{draws: draws}),
		WithScheduler(sched),
		WithPresenter(rec),
		WithID("test"),
	)
	require.NoError(t, err)
	return &fixture{b: b, sched: sched, rec: rec}
}

// set overwrites a combatant's health and mana directly.
func (f *fixture) set(role types.Role, slot, health, mana int) {
	c, ok := f.b.model.Get(role, slot)
	if !ok {
		panic("bad slot")
	}
	c.Health = health
	c.Mana = mana
}

// eventTypes lists the types of evts in order.
func eventTypes(evts []types.Event) []types.EventType {
	out := make([]types.EventType, 0, len(evts))
	for _, e := range evts {
		out = append(out, e.Type)
	}
	return out
}
