package snapshot

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nathoo/battlecore/types"
)

func testSnapshot() Snapshot {
	return Snapshot{
		ID:    "b-1",
		Phase: types.PhaseResolving,
		Turn:  4,
		Allies: []types.Combatant{
			{ID: 1, StatsID: 7, Name: "Knight", Health: 80, MaxHealth: 100, Mana: 5, MaxMana: 50, Damage: 12},
			{ID: 2, StatsID: 3, Name: "Archer", Health: 0, MaxHealth: 60, Mana: 40, MaxMana: 40, Damage: 9},
			{ID: 3, StatsID: 1, Name: "Mage", Health: 45, MaxHealth: 45, Mana: 90, MaxMana: 90, Damage: 20},
		},
		Enemies: []types.Combatant{
			{ID: 1, StatsID: 2, Name: "Orc", Health: 10, MaxHealth: 70, Mana: 30, MaxMana: 30, Damage: 8},
			{ID: 2, StatsID: 5, Name: "Bat", Health: 15, MaxHealth: 15, Mana: 10, MaxMana: 10, Damage: 3},
			{ID: 3, StatsID: 9, Name: "Troll", Health: 120, MaxHealth: 120, Mana: 20, MaxMana: 20, Damage: 15},
		},
		SelectedAlly:  1,
		SelectedEnemy: 3,
		LastActor:     1,
		Scene:         types.Scene{Track: 2, Music: "music/2.mp3", Background: "backgrounds/battleBg2.gif"},
		RNGSeed:       42,
		RNGPosition:   7,
		CommandLog:    []string{"ally 1", "enemy 3", "attack"},
	}
}

func TestRoundTrip(t *testing.T) {
	data, err := Marshal(testSnapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	s, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Version != Version {
		t.Errorf("version = %d, want %d", s.Version, Version)
	}
	if s.ID != "b-1" || s.Phase != types.PhaseResolving || s.Turn != 4 {
		t.Errorf("header mismatch: %+v", s)
	}
	if s.Allies[1].Health != 0 || s.Enemies[2].Name != "Troll" {
		t.Errorf("rosters mismatch: %+v / %+v", s.Allies, s.Enemies)
	}
	if s.SelectedAlly != 1 || s.SelectedEnemy != 3 || s.LastActor != 1 {
		t.Errorf("selection mismatch: %+v", s)
	}
	if s.Scene.Track != 2 || s.RNGPosition != 7 {
		t.Errorf("scene/rng mismatch: %+v", s)
	}
	if len(s.CommandLog) != 3 {
		t.Errorf("command log = %v", s.CommandLog)
	}
}

func TestMarshal_FieldNames(t *testing.T) {
	data, err := Marshal(testSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "id", "phase", "turn", "allies", "enemies", "selected_ally", "selected_enemy", "last_actor", "scene"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	// Outcome is omitted while the battle is running.
	if _, ok := raw["outcome"]; ok {
		t.Error("outcome should be omitted when empty")
	}
	if !strings.Contains(string(data), `"max_health": 100`) {
		t.Error("combatant fields should use snake_case")
	}
}

func TestLoad_EmptyCollections(t *testing.T) {
	s, err := Load([]byte(`{"version":1,"id":"x","phase":"player_turn"}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Allies == nil || s.Enemies == nil || s.CommandLog == nil {
		t.Error("slices should be non-nil after load")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", "{not json"},
		{"missing version", `{"id":"x"}`},
		{"future version", `{"version":99}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSnapshot_Combatant(t *testing.T) {
	s := testSnapshot()
	c, ok := s.Combatant(types.RoleEnemy, 2)
	if !ok || c.Name != "Bat" {
		t.Errorf("Combatant(enemy, 2) = %+v, %v", c, ok)
	}
	if _, ok := s.Combatant(types.RoleAlly, 0); ok {
		t.Error("slot 0 should not resolve")
	}
	if _, ok := s.Combatant(types.RoleAlly, 4); ok {
		t.Error("slot 4 should not resolve")
	}
}

func TestSnapshot_Over(t *testing.T) {
	s := testSnapshot()
	if s.Over() {
		t.Error("running battle reported over")
	}
	s.Outcome = types.OutcomeEnemiesWin
	if !s.Over() {
		t.Error("finished battle not reported over")
	}
}
