package loader

import (
	"fmt"
	"sort"
	"strings"
)

// minBattlePool is the number of entries one battle draws.
const minBattlePool = 6

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Source   string
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed with %d error(s):\n  %s",
		e.Source, len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the pool for unusable entries and that it can fill a
// battle. Warnings are kept on the
// pool for the caller to log.
func validate(pool *Pool) error {
	ve := &ValidationError{Source: pool.Source}

	if len(pool.Entries) == 0 {
		ve.Errors = append(ve.Errors, "stats pool is empty")
	}

	ids := map[int]string{}
	names := map[string]int{}
	for i, e := range pool.Entries {
		label := fmt.Sprintf("entry %d", i)
		if e.Name != "" {
			label = fmt.Sprintf("entry %d (%s)", i, e.Name)
		}

		if strings.TrimSpace(e.Name) == "" {
			ve.Errors = append(ve.Errors, label+": name is required")
		}
		if e.ID < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: id must not be negative, got %d", label, e.ID))
		}
		if prev, dup := ids[e.ID]; dup {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: id %d already used by %s", label, e.ID, prev))
		} else {
			ids[e.ID] = label
		}
		if e.Health <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: health must be positive, got %d", label, e.Health))
		}
		if e.Mana <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: mana must be positive, got %d", label, e.Mana))
		}
		if e.Damage < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: damage must not be negative, got %d", label, e.Damage))
		}
		names[strings.ToLower(e.Name)]++
	}

	for name, n := range names {
		if n > 1 && name != "" {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("name %q used by %d entries; refer to them by slot", name, n))
		}
	}
	sort.Strings(ve.Warnings)
	if n := len(pool.Entries); n > 0 && n < minBattlePool {
		ve.Errors = append(ve.Errors, fmt.Sprintf("pool has %d entries, a battle needs %d", n, minBattlePool))
	}
	pool.Warnings = append(pool.Warnings, ve.Warnings...)

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
