// Dungeon Explorer is a turn-based dungeon crawl with combat, locked doors
// and puzzle rooms.
//
// Usage: dungeonexplorer [--version] [--plain] [--script <file>] [--trace]
// [--config <file>] [--seed <n>] [--save-dir <dir>] [--log-level <level>]
// [--telemetry] [--mcp <addr>] [--mcp-token <token>] [world_directory]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/nathoo/dungeonexplorer/cli"
	"github.com/nathoo/dungeonexplorer/config"
	"github.com/nathoo/dungeonexplorer/content"
	"github.com/nathoo/dungeonexplorer/engine"
	"github.com/nathoo/dungeonexplorer/loader"
	"github.com/nathoo/dungeonexplorer/mcpserver"
	"github.com/nathoo/dungeonexplorer/telemetry"
	"github.com/nathoo/dungeonexplorer/tui"
	"github.com/nathoo/dungeonexplorer/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: dungeonexplorer [--version] [--plain] [--script <file>] [--trace] [--config <file>] " +
	"[--seed <n>] [--save-dir <dir>] [--log-level <level>] [--telemetry] [--mcp <addr>] [--mcp-token <token>] [world_directory]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configFile string
		scriptFile string
		mcpToken   string
		overrides  []func(*config.Config)
	)

	// Flags are applied after the config file so they take precedence.
	next := func(i *int, flag string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value\n%s", flag, usage)
		}
		*i++
		return args[*i], nil
	}
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--version":
			fmt.Printf("dungeonexplorer %s (commit %s, built %s)\n", version, commit, date)
			return nil
		case "--help", "-h":
			fmt.Println(usage)
			return nil
		case "--plain":
			overrides = append(overrides, func(c *config.Config) { c.Plain = true })
		case "--trace":
			overrides = append(overrides, func(c *config.Config) { c.Trace = true })
		case "--telemetry":
			overrides = append(overrides, func(c *config.Config) { c.Telemetry = true })
		case "--script":
			v, err := next(&i, arg)
			if err != nil {
				return err
			}
			scriptFile = v
		case "--config":
			v, err := next(&i, arg)
			if err != nil {
				return err
			}
			configFile = v
		case "--seed":
			v, err := next(&i, arg)
			if err != nil {
				return err
			}
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("--seed: %w", err)
			}
			overrides = append(overrides, func(c *config.Config) { c.Seed = seed })
		case "--save-dir":
			v, err := next(&i, arg)
			if err != nil {
				return err
			}
			overrides = append(overrides, func(c *config.Config) { c.SaveDir = v })
		case "--log-level":
			v, err := next(&i, arg)
			if err != nil {
				return err
			}
			overrides = append(overrides, func(c *config.Config) { c.LogLevel = v })
		case "--mcp":
			v, err := next(&i, arg)
			if err != nil {
				return err
			}
			overrides = append(overrides, func(c *config.Config) { c.MCPAddr = v })
		case "--mcp-token":
			v, err := next(&i, arg)
			if err != nil {
				return err
			}
			mcpToken = v
		default:
			dir := arg
			overrides = append(overrides, func(c *config.Config) { c.WorldDir = dir })
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	interactive := scriptFile == "" && cfg.MCPAddr == "" && !cfg.Plain && term.IsTerminal(int(os.Stdout.Fd()))
	closeLog, err := setupLogging(cfg, interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := engine.Options{
		Seed:            cfg.Seed,
		Capacity:        cfg.Capacity,
		EncounterChance: cfg.EncounterChance,
		Logger:          slog.Default(),
	}
	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Warn("telemetry shutdown", "err", err)
			}
		}()
		opts.Tracer = telemetry.Tracer("dungeonexplorer/engine")
	}

	def, err := loadWorld(cfg.WorldDir)
	if err != nil {
		return fmt.Errorf("loading world: %w", err)
	}
	slog.Info("world loaded", "title", def.Game.Title, "rooms", len(def.Rooms), "seed", cfg.Seed)

	if cfg.MCPAddr != "" {
		srv, err := mcpserver.New(def, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "MCP endpoint: http://%s/mcp\n", cfg.MCPAddr)
		return srv.ListenAndServe(ctx, cfg.MCPAddr, mcpToken)
	}

	eng, err := engine.New(def, opts)
	if err != nil {
		return err
	}

	// Script mode: read commands from a file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c := cli.New(eng, cfg.SaveDir)
		c.In = f
		c.EchoInput = true
		c.Color = false
		c.Trace = cfg.Trace
		c.Run(ctx)
		return nil
	}

	if !interactive {
		c := cli.New(eng, cfg.SaveDir)
		c.Trace = cfg.Trace
		c.Run(ctx)
		return nil
	}

	return tui.Run(ctx, eng, cfg.SaveDir, cfg.Trace)
}

// loadWorld compiles the world in dir, or the embedded dungeon when dir is
// empty.
func loadWorld(dir string) (*types.WorldDef, error) {
	if dir == "" {
		return content.Load()
	}
	return loader.Load(dir)
}

// setupLogging installs the default slog logger. The TUI owns the terminal,
// so interactive sessions only log when a log file is configured.
func setupLogging(cfg config.Config, interactive bool) (func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}
