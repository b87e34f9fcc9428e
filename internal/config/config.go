// Package config loads the TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game      GameConfig      `toml:"game"`
	Rules     RulesConfig     `toml:"rules"`
	Save      SaveConfig      `toml:"save"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

type GameConfig struct {
	Seed      int64 `toml:"seed"` // 0 = time based
	MapWidth  int   `toml:"map_width"`
	MapHeight int   `toml:"map_height"`
	MaxRooms  int   `toml:"max_rooms"`
	RoomMin   int   `toml:"room_min"`
	RoomMax   int   `toml:"room_max"`
	LogLines  int   `toml:"log_lines"`
}

type RulesConfig struct {
	// SingleAttackerPerTurn stops the monster turn after the first melee
	// intent, so at most one monster attacks per turn.
	SingleAttackerPerTurn bool `toml:"single_attacker_per_turn"`
	PlayerVision          int  `toml:"player_vision"`
	MonsterVision         int  `toml:"monster_vision"`
}

type SaveConfig struct {
	Path         string `toml:"path"`
	DeleteOnLoad bool   `toml:"delete_on_load"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

type TelemetryConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
	Headers  string `toml:"headers"`
	Dataset  string `toml:"dataset"`
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

// Validate rejects settings the map generator or the simulation cannot
// work with.
func (c *Config) Validate() error {
	g := c.Game
	if g.RoomMin < 1 || g.RoomMax < g.RoomMin {
		return fmt.Errorf("invalid room size range [%d,%d]", g.RoomMin, g.RoomMax)
	}
	if g.MapWidth < g.RoomMax+2 || g.MapHeight < g.RoomMax+2 {
		return fmt.Errorf("map %dx%d too small for rooms up to %d", g.MapWidth, g.MapHeight, g.RoomMax)
	}
	if g.MaxRooms < 1 {
		return fmt.Errorf("max_rooms must be positive, got %d", g.MaxRooms)
	}
	if g.LogLines < 0 {
		return fmt.Errorf("log_lines must not be negative, got %d", g.LogLines)
	}
	r := c.Rules
	if r.MonsterVision < 1 {
		return fmt.Errorf("monster_vision must be positive, got %d", r.MonsterVision)
	}
	if r.PlayerVision < 0 {
		return fmt.Errorf("player_vision must not be negative, got %d", r.PlayerVision)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			MapWidth:  80,
			MapHeight: 43,
			MaxRooms:  30,
			RoomMin:   6,
			RoomMax:   10,
			LogLines:  5,
		},
		Rules: RulesConfig{
			PlayerVision:  8,
			MonsterVision: 8,
		},
		Save: SaveConfig{
			Path:         "savegame.yaml",
			DeleteOnLoad: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "deepdelve.log",
		},
		Telemetry: TelemetryConfig{
			Endpoint: "https://api.honeycomb.io",
			Dataset:  "deepdelve",
		},
	}
}
