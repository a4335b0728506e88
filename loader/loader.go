package loader

import (
	"cmp"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/dungeonexplorer/types"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game     *lua.LTable
	player   *lua.LTable
	rooms    []rawRoom
	handlers []rawHandler
}

// Libraries world scripts may use. Everything else stays unopened.
var safeLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// Globals removed after the safe libraries are open. The math entries keep
// randomness inside the engine's seeded source.
var blockedGlobals = []string{
	"dofile", "loadfile", "load", "loadstring",
	"rawset", "rawget", "rawequal", "collectgarbage",
}

// Load reads all .lua files from dir and compiles them into a world
// definition.
func Load(dir string) (*types.WorldDef, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS runs every .lua file in dir of fsys, game.lua first, then compiles
// and validates what they declared.
func LoadFS(fsys fs.FS, dir string) (*types.WorldDef, error) {
	files, err := scriptFiles(fsys, dir)
	if err != nil {
		return nil, err
	}

	L, err := newSandbox()
	if err != nil {
		return nil, err
	}
	defer L.Close()

	coll := &collector{}
	registerAPI(L, coll)

	for _, name := range files {
		src, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if err := L.DoString(string(src)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", name, err)
		}
	}

	def, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling world data: %w", err)
	}
	if err := validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

func scriptFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	return loadOrder(names), nil
}

// loadOrder sorts script names alphabetically with game.lua first.
func loadOrder(names []string) []string {
	out := slices.Clone(names)
	slices.SortFunc(out, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == "game.lua":
			return -1
		case b == "game.lua":
			return 1
		}
		return cmp.Compare(a, b)
	})
	return out
}

// newSandbox returns a VM with only the safe libraries open.
func newSandbox() (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range safeLibs {
		err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name))
		if err != nil {
			L.Close()
			return nil, fmt.Errorf("opening lua library %q: %w", lib.name, err)
		}
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	if math, ok := L.GetGlobal(lua.MathLibName).(*lua.LTable); ok {
		math.RawSetString("random", lua.LNil)
		math.RawSetString("randomseed", lua.LNil)
	}
	return L, nil
}
