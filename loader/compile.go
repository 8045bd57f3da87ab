// Package loader loads stats pools: sandboxed Lua roster directories, JSON
// files, and the HTTP stats endpoint. The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/battlecore/types"
)

// rawCharacter holds a character table before compilation.
type rawCharacter struct {
	name  string
	table *lua.LTable
	order int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table.
func getNumber(tbl *lua.LTable, key string) (float64, bool) {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}

// getInt returns an integral field from a Lua table. Fractions are an error.
func getInt(tbl *lua.LTable, key string) (int, bool, error) {
	f, ok := getNumber(tbl, key)
	if !ok {
		return 0, false, nil
	}
	if f != math.Trunc(f) {
		return 0, true, fmt.Errorf("%s must be a whole number, got %g", key, f)
	}
	return int(f), true, nil
}

// compile converts collected Lua tables into a pool. Characters without an
// id get the next free one after the highest explicit id, in source order.
func compile(coll *collector) (*Pool, error) {
	pool := &Pool{}
	if coll.roster != nil {
		pool.Title = getString(coll.roster, "title")
	}

	maxID := 0
	for _, rc := range coll.characters {
		if id, ok, _ := getInt(rc.table, "id"); ok && id > maxID {
			maxID = id
		}
	}

	for _, rc := range coll.characters {
		entry, err := compileCharacter(rc)
		if err != nil {
			return nil, err
		}
		if entry.ID == 0 {
			maxID++
			entry.ID = maxID
		}
		pool.Entries = append(pool.Entries, entry)
	}
	return pool, nil
}

func compileCharacter(rc rawCharacter) (types.StatEntry, error) {
	entry := types.StatEntry{Name: rc.name}

	// A nested stats table (from Stats(...)) fills in what the body leaves out.
	src := rc.table
	if nested, ok := rc.table.RawGetString("stats").(*lua.LTable); ok {
		for _, key := range []string{"health", "mana", "damage"} {
			if rc.table.RawGetString(key) == lua.LNil {
				rc.table.RawSetString(key, nested.RawGetString(key))
			}
		}
	}

	fields := []struct {
		key      string
		dst      *int
		required bool
	}{
		{"id", &entry.ID, false},
		{"health", &entry.Health, true},
		{"mana", &entry.Mana, true},
		{"damage", &entry.Damage, true},
	}
	for _, f := range fields {
		v, ok, err := getInt(src, f.key)
		if err != nil {
			return entry, fmt.Errorf("character %q: %w", rc.name, err)
		}
		if !ok && f.required {
			return entry, fmt.Errorf("character %q: %s is required", rc.name, f.key)
		}
		*f.dst = v
	}
	return entry, nil
}
