// Package sim holds the state shared by every system during a tick.
package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/world"
)

// ErrNoPlayer means the world has no live player. The run cannot continue.
var ErrNoPlayer = errors.New("sim: no player entity")

// Rules toggles gameplay behaviour that is configurable.
type Rules struct {
	SingleAttackerPerTurn bool
	PlayerVision          int
	MonsterVision         int
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{PlayerVision: 8, MonsterVision: 8}
}

// Context is passed to every system. It owns nothing that outlives a run
// except through the world and map it references.
type Context struct {
	World  *ecs.World
	C      *component.Stores
	Map    *world.Map
	Log    *Log
	RNG    *rand.Rand
	State  RunState
	Player ecs.Entity
	Logger *zap.Logger
	Rules  Rules
}

// NewContext builds an empty context with a fresh world.
func NewContext(rng *rand.Rand, logger *zap.Logger, rules Rules) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := ecs.NewWorld()
	return &Context{
		World:  w,
		C:      component.NewStores(w),
		Log:    NewLog(logger),
		RNG:    rng,
		State:  RunState{Kind: PreRun},
		Logger: logger,
		Rules:  rules,
	}
}

// PlayerEntity returns the player handle after checking it is alive and
// still tagged.
func (c *Context) PlayerEntity() (ecs.Entity, error) {
	if !c.World.Alive(c.Player) || !c.C.Player.Has(c.Player) {
		return ecs.Nil, ErrNoPlayer
	}
	return c.Player, nil
}

// PlayerPosition returns where the player stands.
func (c *Context) PlayerPosition() (world.Point, error) {
	p, err := c.PlayerEntity()
	if err != nil {
		return world.Point{}, err
	}
	pos, ok := c.C.Position.Get(p)
	if !ok {
		return world.Point{}, fmt.Errorf("player %s has no position: %w", p, ErrNoPlayer)
	}
	return pos.Point(), nil
}

// IsPlayer reports whether e is the player.
func (c *Context) IsPlayer(e ecs.Entity) bool {
	return e == c.Player && c.C.Player.Has(e)
}
