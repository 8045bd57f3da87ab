// Package snapshot implements the JSON view of a battle handed to front ends
// and API clients.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/battlecore/types"
)

// Version is the current snapshot format version.
const Version = 1

// Snapshot is the JSON-serializable view of a battle at one point in time.
type Snapshot struct {
	Version       int               `json:"version"`
	ID            string            `json:"id"`
	Phase         types.Phase       `json:"phase"`
	Outcome       types.Outcome     `json:"outcome,omitempty"`
	Turn          int               `json:"turn"`
	Allies        []types.Combatant `json:"allies"`
	Enemies       []types.Combatant `json:"enemies"`
	SelectedAlly  int               `json:"selected_ally"`
	SelectedEnemy int               `json:"selected_enemy"`
	LastActor     int               `json:"last_actor"`
	Scene         types.Scene       `json:"scene"`
	RNGSeed       int64             `json:"rng_seed,omitempty"`
	RNGPosition   int64             `json:"rng_position,omitempty"`
	CommandLog    []string          `json:"command_log"`
}

// Marshal serializes a snapshot to indented JSON.
func Marshal(s Snapshot) ([]byte, error) {
	if s.Version == 0 {
		s.Version = Version
	}
	if s.CommandLog == nil {
		s.CommandLog = []string{}
	}
	return json.MarshalIndent(s, "", "  ")
}

// Load deserializes JSON bytes into a Snapshot.
func Load(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", s.Version, Version)
	}
	// Ensure slices are never nil after load.
	if s.Allies == nil {
		s.Allies = []types.Combatant{}
	}
	if s.Enemies == nil {
		s.Enemies = []types.Combatant{}
	}
	if s.CommandLog == nil {
		s.CommandLog = []string{}
	}
	return &s, nil
}

// Combatant returns the combatant at a 1-based slot of a side.
func (s *Snapshot) Combatant(role types.Role, slot int) (types.Combatant, bool) {
	roster := s.Allies
	if role == types.RoleEnemy {
		roster = s.Enemies
	}
	if slot < 1 || slot > len(roster) {
		return types.Combatant{}, false
	}
	return roster[slot-1], true
}

// Over reports whether the battle had ended when the snapshot was taken.
func (s *Snapshot) Over() bool {
	return s.Outcome != types.OutcomeNone
}
