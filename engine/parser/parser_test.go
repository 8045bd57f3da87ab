package parser

import (
	"testing"

	"github.com/nathoo/battlecore/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Canonical verbs
		{
			name:  "attack",
			input: "attack",
			want:  types.Intent{Verb: "attack"},
		},
		{
			name:  "attack with target",
			input: "attack goblin",
			want:  types.Intent{Verb: "attack", Object: "goblin"},
		},
		{
			name:  "mana",
			input: "mana",
			want:  types.Intent{Verb: "mana"},
		},
		{
			name:  "heal",
			input: "heal",
			want:  types.Intent{Verb: "heal"},
		},
		{
			name:  "ally by number",
			input: "ally 2",
			want:  types.Intent{Verb: "ally", Object: "2"},
		},
		{
			name:  "enemy by name",
			input: "enemy dark knight",
			want:  types.Intent{Verb: "enemy", Object: "dark knight"},
		},

		// Aliases
		{
			name:  "a → attack",
			input: "a",
			want:  types.Intent{Verb: "attack"},
		},
		{
			name:  "hit the orc → attack orc",
			input: "hit the orc",
			want:  types.Intent{Verb: "attack", Object: "orc"},
		},
		{
			name:  "strike → attack",
			input: "strike 3",
			want:  types.Intent{Verb: "attack", Object: "3"},
		},
		{
			name:  "m → mana",
			input: "m",
			want:  types.Intent{Verb: "mana"},
		},
		{
			name:  "meditate → mana",
			input: "meditate",
			want:  types.Intent{Verb: "mana"},
		},
		{
			name:  "h → heal",
			input: "h",
			want:  types.Intent{Verb: "heal"},
		},
		{
			name:  "hp → heal",
			input: "hp",
			want:  types.Intent{Verb: "heal"},
		},
		{
			name:  "pick → ally",
			input: "pick archer",
			want:  types.Intent{Verb: "ally", Object: "archer"},
		},
		{
			name:  "target → enemy",
			input: "target 1",
			want:  types.Intent{Verb: "enemy", Object: "1"},
		},
		{
			name:  "l → status",
			input: "l",
			want:  types.Intent{Verb: "status"},
		},
		{
			name:  "look → status",
			input: "look",
			want:  types.Intent{Verb: "status"},
		},
		{
			name:  "? → help",
			input: "?",
			want:  types.Intent{Verb: "help"},
		},

		// Multi-word verbs
		{
			name:  "restore mana",
			input: "restore mana",
			want:  types.Intent{Verb: "mana"},
		},
		{
			name:  "restore health",
			input: "restore health",
			want:  types.Intent{Verb: "heal"},
		},
		{
			name:  "select ally",
			input: "select ally 1",
			want:  types.Intent{Verb: "ally", Object: "1"},
		},
		{
			name:  "select enemy with filler",
			input: "select enemy number 3",
			want:  types.Intent{Verb: "enemy", Object: "3"},
		},
		{
			name:  "choose foe",
			input: "choose foe goblin",
			want:  types.Intent{Verb: "enemy", Object: "goblin"},
		},
		{
			name:  "look around",
			input: "look around",
			want:  types.Intent{Verb: "status"},
		},

		// Case and spacing
		{
			name:  "uppercase",
			input: "ATTACK Goblin",
			want:  types.Intent{Verb: "attack", Object: "goblin"},
		},
		{
			name:  "extra whitespace",
			input: "  select   ally    2  ",
			want:  types.Intent{Verb: "ally", Object: "2"},
		},

		// Unknown verbs pass through
		{
			name:  "unknown verb",
			input: "dance wildly",
			want:  types.Intent{Verb: "dance", Object: "wildly"},
		},
		{
			name:  "restore without object stays restore",
			input: "restore",
			want:  types.Intent{Verb: "restore"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_FillersOnlyInObject(t *testing.T) {
	// "a" is the attack alias in verb position but an article elsewhere.
	got := Parse("a a goblin")
	want := types.Intent{Verb: "attack", Object: "goblin"}
	if got != want {
		t.Errorf("Parse = %+v, want %+v", got, want)
	}
}
