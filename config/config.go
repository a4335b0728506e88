// Package config loads session settings from defaults, an optional .env
// file, an optional YAML file and DUNGEON_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DUNGEON_"

// Config holds the tunable settings of a session.
type Config struct {
	Seed            int64  `yaml:"seed"`
	SaveDir         string `yaml:"save_dir"`
	WorldDir        string `yaml:"world_dir"`
	Capacity        int    `yaml:"capacity"`
	EncounterChance int    `yaml:"encounter_chance"`
	LogLevel        string `yaml:"log_level"`
	LogFile         string `yaml:"log_file"`
	Plain           bool   `yaml:"plain"`
	Trace           bool   `yaml:"trace"`
	Telemetry       bool   `yaml:"telemetry"`
	MCPAddr         string `yaml:"mcp_addr"`
}

// Default returns the built-in settings. An empty WorldDir selects the
// embedded dungeon.
func Default() Config {
	return Config{
		SaveDir:  "saves",
		Capacity: 10,
		LogLevel: "warn",
	}
}

// Load reads the YAML file at path (skipped when empty) and the .env file in
// the working directory, if any.
func Load(path string) (Config, error) {
	return LoadFiles(path, ".env")
}

// LoadFiles is Load with an explicit .env location. A missing .env file is
// not an error; a missing YAML file is.
func LoadFiles(path, envFile string) (Config, error) {
	cfg := Default()

	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("reading %s: %w", envFile, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	// The YAML path itself may come from the environment.
	if path == "" {
		path, _ = lookup(EnvPrefix + "CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Seed = n
	}
	str("SAVE_DIR", &c.SaveDir)
	str("WORLD_DIR", &c.WorldDir)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)
	str("MCP_ADDR", &c.MCPAddr)
	return errors.Join(
		integer("CAPACITY", &c.Capacity),
		integer("ENCOUNTER_CHANCE", &c.EncounterChance),
		boolean("PLAIN", &c.Plain),
		boolean("TRACE", &c.Trace),
		boolean("TELEMETRY", &c.Telemetry),
	)
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d", c.Capacity))
	}
	if c.EncounterChance > 100 {
		errs = append(errs, fmt.Errorf("encounter_chance must be at most 100, got %d", c.EncounterChance))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel as a slog level name ("debug", "info", "warn",
// "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
