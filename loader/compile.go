// Package loader loads Lua world content into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/dungeonexplorer/types"
)

// rawRoom holds a room table before compilation. puzzle is the puzzle kind
// for RiddleRoom/MemoryRoom/ChessRoom, or "" for a plain room.
type rawRoom struct {
	id     int
	puzzle string
	table  *lua.LTable
}

// rawHandler holds an event handler before compilation.
type rawHandler struct {
	eventType string
	table     *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getIntOr returns an int field from a Lua table, or def if missing.
func getIntOr(tbl *lua.LTable, key string, def int) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings reads a field that is either a string or an array of strings.
func getStrings(tbl *lua.LTable, key string) []string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.MaxN(); i++ {
			if s, ok := v.RawGetInt(i).(lua.LString); ok {
				out = append(out, string(s))
			}
		}
		return out
	}
	return nil
}

// compile converts all collected Lua data into a WorldDef.
func compile(coll *collector) (*types.WorldDef, error) {
	def := &types.WorldDef{Rooms: map[int]types.RoomDef{}}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	def.Game = compileGame(coll.game)

	if coll.player != nil {
		def.Player = compilePlayer(coll.player)
	}

	for _, raw := range coll.rooms {
		if _, dup := def.Rooms[raw.id]; dup {
			return nil, fmt.Errorf("room %d defined twice", raw.id)
		}
		def.Rooms[raw.id] = compileRoom(raw)
	}

	for _, raw := range coll.handlers {
		def.Handlers = append(def.Handlers, compileHandler(raw))
	}

	return def, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getInt(tbl, "start"),
		Intro:   getString(tbl, "intro"),
	}
}

func compilePlayer(tbl *lua.LTable) types.PlayerDef {
	return types.PlayerDef{
		Name:     getString(tbl, "name"),
		Health:   getInt(tbl, "health"),
		Attack:   getIntOr(tbl, "attack", types.DefaultPlayerAttack),
		Defense:  getIntOr(tbl, "defense", types.DefaultPlayerDefense),
		Capacity: getInt(tbl, "capacity"),
		Items:    compileItems(getTable(tbl, "items")),
	}
}

func compileRoom(raw rawRoom) types.RoomDef {
	tbl := raw.table
	room := types.RoomDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Items:       compileItems(getTable(tbl, "items")),
		Monster:     getString(tbl, "monster"),
		Exits:       compileExits(getTable(tbl, "exits")),
	}
	if raw.puzzle != "" {
		p := &types.PuzzleDef{
			Kind:     raw.puzzle,
			Question: getString(tbl, "question"),
			Answer:   getString(tbl, "answer"),
		}
		if r := getTable(tbl, "reward"); r != nil {
			it := compileItem(r)
			p.Reward = &it
		}
		room.Puzzle = p
	}
	return room
}

func compileItems(tbl *lua.LTable) []types.ItemDef {
	if tbl == nil {
		return nil
	}
	var items []types.ItemDef
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			items = append(items, compileItem(t))
		}
	}
	return items
}

func compileItem(tbl *lua.LTable) types.ItemDef {
	return types.ItemDef{
		Kind:        getString(tbl, "kind"),
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Damage:      getInt(tbl, "damage"),
		Heal:        getInt(tbl, "heal"),
		KeyType:     getString(tbl, "key_type"),
	}
}

func compileExits(tbl *lua.LTable) []types.ExitDef {
	if tbl == nil {
		return nil
	}
	var exits []types.ExitDef
	for i := 1; i <= tbl.MaxN(); i++ {
		switch v := tbl.RawGetInt(i).(type) {
		case lua.LNumber:
			exits = append(exits, types.ExitDef{To: int(v)})
		case *lua.LTable:
			exits = append(exits, types.ExitDef{
				To:      getInt(v, "to"),
				KeyType: getString(v, "key_type"),
			})
		}
	}
	return exits
}

func compileHandler(raw rawHandler) types.EventHandler {
	return types.EventHandler{
		EventType: raw.eventType,
		Room:      getInt(raw.table, "room"),
		Say:       getStrings(raw.table, "say"),
	}
}
