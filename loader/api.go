package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerItemHelpers(L)
	registerExitHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = 1, ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Player { name = "...", health = 100, items = { ... } }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		coll.player = L.CheckTable(1)
		return 0
	}))

	// Room(1) { ... } — curried: Room(id) returns a function that takes a table.
	L.SetGlobal("Room", roomConstructor(L, coll, ""))
	L.SetGlobal("RiddleRoom", roomConstructor(L, coll, "riddle"))
	L.SetGlobal("MemoryRoom", roomConstructor(L, coll, "memory"))
	L.SetGlobal("ChessRoom", roomConstructor(L, coll, "chess"))

	// On("event_type", { room = 7, say = { "...", ... } })
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		eventType := L.CheckString(1)
		tbl := L.CheckTable(2)
		coll.handlers = append(coll.handlers, rawHandler{eventType: eventType, table: tbl})
		return 0
	}))
}

func roomConstructor(L *lua.LState, coll *collector, puzzle string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.rooms = append(coll.rooms, rawRoom{id: id, puzzle: puzzle, table: tbl})
			return 0
		}))
		return 1
	})
}

func registerItemHelpers(L *lua.LState) {
	// Weapon("name", "description", damage)
	L.SetGlobal("Weapon", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString("weapon"))
		tbl.RawSetString("name", lua.LString(L.CheckString(1)))
		tbl.RawSetString("description", lua.LString(L.OptString(2, "")))
		tbl.RawSetString("damage", lua.LNumber(L.OptInt(3, 0)))
		L.Push(tbl)
		return 1
	}))

	// Potion("name", "description", heal)
	L.SetGlobal("Potion", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString("potion"))
		tbl.RawSetString("name", lua.LString(L.CheckString(1)))
		tbl.RawSetString("description", lua.LString(L.OptString(2, "")))
		tbl.RawSetString("heal", lua.LNumber(L.OptInt(3, 0)))
		L.Push(tbl)
		return 1
	}))

	// Key("name", "description", "bronze")
	L.SetGlobal("Key", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString("key"))
		tbl.RawSetString("name", lua.LString(L.CheckString(1)))
		tbl.RawSetString("description", lua.LString(L.OptString(2, "")))
		tbl.RawSetString("key_type", lua.LString(L.CheckString(3)))
		L.Push(tbl)
		return 1
	}))
}

func registerExitHelpers(L *lua.LState) {
	// Exit(2)
	L.SetGlobal("Exit", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("to", lua.LNumber(L.CheckInt(1)))
		L.Push(tbl)
		return 1
	}))

	// Locked(5, "bronze")
	L.SetGlobal("Locked", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("to", lua.LNumber(L.CheckInt(1)))
		tbl.RawSetString("key_type", lua.LString(L.CheckString(2)))
		L.Push(tbl)
		return 1
	}))
}
