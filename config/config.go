// Package config loads battlecore settings from a YAML file. Missing keys
// keep their defaults; command-line flags override the result.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/battlecore/engine"
)

// DefaultStatsURL is the stats endpoint used when nothing else is configured.
const DefaultStatsURL = "http://localhost:5054/api/CharacterStats"

// Config is the full settings tree.
type Config struct {
	Rules RulesConfig `yaml:"rules"`
	Stats StatsConfig `yaml:"stats"`
	Web   Listen      `yaml:"web"`
	API   Listen      `yaml:"api"`
	Log   Log         `yaml:"log"`
	Seed  int64       `yaml:"seed"` // 0 = time-based
}

// RulesConfig mirrors engine.Rules.
type RulesConfig struct {
	AttackCost   int           `yaml:"attack_cost"`
	ManaRestore  int           `yaml:"mana_restore"`
	HealFraction float64       `yaml:"heal_fraction"`
	EnemyDelay   time.Duration `yaml:"enemy_delay"`
}

// StatsConfig says where the stats pool comes from. RosterDir wins over File,
// File wins over URL.
type StatsConfig struct {
	URL       string        `yaml:"url"`
	RosterDir string        `yaml:"roster_dir"`
	File      string        `yaml:"file"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Listen is a server listen address.
type Listen struct {
	Listen string `yaml:"listen"`
}

// Log configures the zap logger.
type Log struct {
	Level    string `yaml:"level"`
	File     string `yaml:"file"`     // empty = stderr
	Encoding string `yaml:"encoding"` // json or console
}

// Default returns the built-in settings.
func Default() Config {
	r := engine.DefaultRules()
	return Config{
		Rules: RulesConfig{
			AttackCost:   r.AttackCost,
			ManaRestore:  r.ManaRestore,
			HealFraction: r.HealFraction,
			EnemyDelay:   r.EnemyDelay,
		},
		Stats: StatsConfig{URL: DefaultStatsURL, Timeout: 8 * time.Second},
		Web:   Listen{Listen: ":8080"},
		API:   Listen{Listen: ":5054"},
		Log:   Log{Level: "info", Encoding: "json"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg and validates it. Unknown keys are an error.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks the settings.
func (c Config) Validate() error {
	var errs []error
	if err := c.EngineRules().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Stats.Timeout < 0 {
		errs = append(errs, fmt.Errorf("stats timeout must not be negative, got %s", c.Stats.Timeout))
	}
	if c.Stats.URL == "" && c.Stats.RosterDir == "" && c.Stats.File == "" {
		errs = append(errs, errors.New("no stats source: set stats.url, stats.roster_dir or stats.file"))
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log encoding must be json or console, got %q", c.Log.Encoding))
	}
	return errors.Join(errs...)
}

// EngineRules converts the rules section for engine.WithRules.
func (c Config) EngineRules() engine.Rules {
	return engine.Rules{
		AttackCost:   c.Rules.AttackCost,
		ManaRestore:  c.Rules.ManaRestore,
		HealFraction: c.Rules.HealFraction,
		EnemyDelay:   c.Rules.EnemyDelay,
	}
}
