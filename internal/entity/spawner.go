// Package entity spawns the player, monsters and items into a world.
package entity

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/gamedata"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Render orders: lower draws on top.
const (
	OrderPlayer  = 0
	OrderMonster = 1
	OrderItem    = 2
)

// Room population limits.
const (
	MaxMonstersPerRoom = 3
	MaxItemsPerRoom    = 1
)

// Spawner creates entities from the data catalog. Every entity it creates
// carries the Persistent tag.
type Spawner struct {
	catalog *gamedata.Catalog
}

// NewSpawner creates a spawner backed by catalog.
func NewSpawner(catalog *gamedata.Catalog) *Spawner {
	return &Spawner{catalog: catalog}
}

// Placement says where a new item goes: on the floor at At, or in Owner's
// backpack when Owner is set.
type Placement struct {
	At    world.Point
	Owner ecs.Entity
}

// OnFloor places an item at p.
func OnFloor(p world.Point) Placement { return Placement{At: p} }

// InBackpackOf places an item in owner's backpack.
func InBackpackOf(owner ecs.Entity) Placement { return Placement{Owner: owner} }

// SpawnPlayer creates the player at p, gives it the starting backpack and
// drops the starting floor items on the same tile. ctx.Player is updated.
func (s *Spawner) SpawnPlayer(ctx *sim.Context, p world.Point) (ecs.Entity, error) {
	def := s.catalog.Player
	vision := def.Vision
	if ctx.Rules.PlayerVision > 0 {
		vision = ctx.Rules.PlayerVision
	}

	e := ctx.World.Create()
	c := ctx.C
	c.Position.Insert(e, component.At(p))
	c.Renderable.Insert(e, component.Renderable{
		Glyph:       def.GlyphRune(),
		FG:          def.TCellColor(),
		BG:          tcell.ColorBlack,
		RenderOrder: OrderPlayer,
	})
	c.Player.Insert(e, component.Player{})
	c.Viewshed.Insert(e, component.NewViewshed(vision))
	c.CombatStats.Insert(e, component.CombatStats{
		MaxHP:   def.HP,
		HP:      def.HP,
		Defense: def.Defense,
		Power:   def.Power,
	})
	c.Name.Insert(e, component.Name{Text: def.Name})
	c.Persistent.Insert(e, component.Persistent{})
	ctx.Player = e

	for _, id := range def.Backpack {
		if _, err := s.SpawnItemByID(ctx, id, InBackpackOf(e)); err != nil {
			return e, err
		}
	}
	for _, id := range def.FloorItems {
		if _, err := s.SpawnItemByID(ctx, id, OnFloor(p)); err != nil {
			return e, err
		}
	}
	return e, nil
}

// SpawnMonster creates a monster from def at p.
func (s *Spawner) SpawnMonster(ctx *sim.Context, def *gamedata.MonsterDef, p world.Point) ecs.Entity {
	e := ctx.World.Create()
	c := ctx.C
	c.Position.Insert(e, component.At(p))
	c.Renderable.Insert(e, component.Renderable{
		Glyph:       def.GlyphRune(),
		FG:          def.TCellColor(),
		BG:          tcell.ColorBlack,
		RenderOrder: OrderMonster,
	})
	vision := ctx.Rules.MonsterVision
	if vision <= 0 {
		vision = sim.DefaultRules().MonsterVision
	}
	c.Viewshed.Insert(e, component.NewViewshed(vision))
	c.Monster.Insert(e, component.Monster{})
	c.Name.Insert(e, component.Name{Text: def.Name})
	c.BlockedTile.Insert(e, component.BlockedTile{})
	c.CombatStats.Insert(e, component.CombatStats{
		MaxHP:   def.HP,
		HP:      def.HP,
		Defense: def.Defense,
		Power:   def.Power,
	})
	c.Persistent.Insert(e, component.Persistent{})
	return e
}

// SpawnRandomMonster picks a weighted random monster and spawns it at p.
func (s *Spawner) SpawnRandomMonster(ctx *sim.Context, p world.Point) (ecs.Entity, error) {
	def := s.catalog.Monsters.SpawnRandom(ctx.RNG)
	if def == nil {
		return ecs.Nil, fmt.Errorf("spawn monster at %v: empty monster table", p)
	}
	return s.SpawnMonster(ctx, def, p), nil
}

// SpawnItem creates an item from def.
func (s *Spawner) SpawnItem(ctx *sim.Context, def *gamedata.ItemDef, place Placement) ecs.Entity {
	e := ctx.World.Create()
	c := ctx.C
	c.Item.Insert(e, component.Item{})
	c.Name.Insert(e, component.Name{Text: def.Name})
	c.Renderable.Insert(e, component.Renderable{
		Glyph:       def.GlyphRune(),
		FG:          def.TCellColor(),
		BG:          tcell.ColorBlack,
		RenderOrder: OrderItem,
	})
	if def.Consumable {
		c.Consumable.Insert(e, component.Consumable{})
	}
	if def.Healing > 0 {
		c.ProvidesHealing.Insert(e, component.ProvidesHealing{Amount: def.Healing})
	}
	if def.Damage > 0 {
		c.InflictsDamage.Insert(e, component.InflictsDamage{Amount: def.Damage})
	}
	if def.Range > 0 {
		c.Ranged.Insert(e, component.Ranged{Range: def.Range})
	}
	if def.Radius > 0 {
		c.AreaOfEffect.Insert(e, component.AreaOfEffect{Radius: def.Radius})
	}
	if def.Confusion > 0 {
		c.Confusion.Insert(e, component.Confusion{Turns: def.Confusion})
	}
	c.Persistent.Insert(e, component.Persistent{})

	if !place.Owner.IsNil() {
		c.InBackpack.Insert(e, component.InBackpack{Owner: place.Owner})
	} else {
		c.Position.Insert(e, component.At(place.At))
	}
	return e
}

// SpawnItemByID looks up an item definition and spawns it.
func (s *Spawner) SpawnItemByID(ctx *sim.Context, id string, place Placement) (ecs.Entity, error) {
	def := s.catalog.Items.GetByID(id)
	if def == nil {
		return ecs.Nil, fmt.Errorf("spawn item: unknown item %q", id)
	}
	return s.SpawnItem(ctx, def, place), nil
}

// SpawnRandomItem picks a weighted random item and places it on the floor.
func (s *Spawner) SpawnRandomItem(ctx *sim.Context, p world.Point) (ecs.Entity, error) {
	def := s.catalog.Items.SpawnRandom(ctx.RNG)
	if def == nil {
		return ecs.Nil, fmt.Errorf("spawn item at %v: empty item table", p)
	}
	return s.SpawnItem(ctx, def, OnFloor(p)), nil
}

// SpawnRoom fills a room with 0..MaxMonstersPerRoom monsters and
// 0..MaxItemsPerRoom items, each on its own tile.
func (s *Spawner) SpawnRoom(ctx *sim.Context, room world.Room) error {
	monsters := ctx.RNG.Intn(MaxMonstersPerRoom + 1)
	for _, p := range randomRoomPoints(ctx, room, monsters) {
		if _, err := s.SpawnRandomMonster(ctx, p); err != nil {
			return err
		}
	}
	items := ctx.RNG.Intn(MaxItemsPerRoom + 1)
	for _, p := range randomRoomPoints(ctx, room, items) {
		if _, err := s.SpawnRandomItem(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// randomRoomPoints picks n distinct floor tiles of room.
func randomRoomPoints(ctx *sim.Context, room world.Room, n int) []world.Point {
	n = min(n, room.Width*room.Height)
	points := make([]world.Point, 0, n)
	taken := make(map[world.Point]bool, n)
	for len(points) < n {
		p := world.Point{
			X: room.X + ctx.RNG.Intn(room.Width),
			Y: room.Y + ctx.RNG.Intn(room.Height),
		}
		if !taken[p] {
			taken[p] = true
			points = append(points, p)
		}
	}
	return points
}
