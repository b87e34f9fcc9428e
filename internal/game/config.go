package game

import (
	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/config"
	"github.com/samdwyer/deepdelve/internal/gamedata"
	"github.com/samdwyer/deepdelve/internal/persist"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Map      world.Params
	Rules    sim.Rules
	LogLines int

	// DeleteSaveOnLoad removes the save file after a successful load.
	DeleteSaveOnLoad bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Map:              world.DefaultParams(),
		Rules:            sim.DefaultRules(),
		LogLines:         5,
		DeleteSaveOnLoad: true,
	}
}

// ConfigFrom maps the file configuration onto game options.
func ConfigFrom(c *config.Config) Config {
	return Config{
		Seed: c.Game.Seed,
		Map: world.Params{
			Width:    c.Game.MapWidth,
			Height:   c.Game.MapHeight,
			MaxRooms: c.Game.MaxRooms,
			RoomMin:  c.Game.RoomMin,
			RoomMax:  c.Game.RoomMax,
		},
		Rules: sim.Rules{
			SingleAttackerPerTurn: c.Rules.SingleAttackerPerTurn,
			PlayerVision:          c.Rules.PlayerVision,
			MonsterVision:         c.Rules.MonsterVision,
		},
		LogLines:         c.Game.LogLines,
		DeleteSaveOnLoad: c.Save.DeleteOnLoad,
	}
}

// Option customises a Game.
type Option func(*Game)

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithStore sets where saves go. The default keeps them in memory.
func WithStore(s persist.Store) Option {
	return func(g *Game) { g.store = s }
}

// WithCatalog replaces the embedded game data.
func WithCatalog(c *gamedata.Catalog) Option {
	return func(g *Game) { g.catalog = c }
}

// WithItemMenu replaces the inventory selection collaborator.
func WithItemMenu(m ItemMenu) Option {
	return func(g *Game) { g.items = m }
}

// WithTargeter replaces the ranged target selection collaborator.
func WithTargeter(t Targeter) Option {
	return func(g *Game) { g.targeter = t }
}
