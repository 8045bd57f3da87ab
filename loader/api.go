package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the roster constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Roster { title = "..." } sets optional pool metadata.
	L.SetGlobal("Roster", L.NewFunction(func(L *lua.LState) int {
		coll.roster = L.CheckTable(1)
		return 0
	}))

	// Character "Name" { id = 1, health = 100, mana = 50, damage = 12 }
	// Curried: Character("Name") returns a function that takes a table.
	L.SetGlobal("Character", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.characters = append(coll.characters, rawCharacter{
				name:  name,
				table: tbl,
				order: coll.nextSourceOrder(),
			})
			return 0
		}))
		return 1
	}))

	// Stats(health, mana, damage) returns a stats table.
	L.SetGlobal("Stats", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("health", L.CheckNumber(1))
		tbl.RawSetString("mana", L.CheckNumber(2))
		tbl.RawSetString("damage", L.CheckNumber(3))
		L.Push(tbl)
		return 1
	}))
}
