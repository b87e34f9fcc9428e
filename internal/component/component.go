// Package component defines the data attached to entities.
package component

import (
	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Position is a grid cell on the current map.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// At converts a point into a Position.
func At(p world.Point) Position { return Position{X: p.X, Y: p.Y} }

// Point returns the position as a map point.
func (p Position) Point() world.Point { return world.Point{X: p.X, Y: p.Y} }

// Renderable describes how an entity is drawn. Higher RenderOrder draws first,
// so lower values end up on top.
type Renderable struct {
	Glyph       rune        `yaml:"glyph"`
	FG          tcell.Color `yaml:"fg"`
	BG          tcell.Color `yaml:"bg"`
	RenderOrder int         `yaml:"render_order"`
}

// Viewshed is an entity's perception. Dirty is set after any move and cleared
// once Visible has been recomputed.
type Viewshed struct {
	Visible mapset.Set[world.Point] `yaml:"-"`
	Range   int                     `yaml:"range"`
	Dirty   bool                    `yaml:"dirty"`
}

// NewViewshed returns a dirty viewshed with an empty visible set.
func NewViewshed(rng int) Viewshed {
	return Viewshed{Visible: mapset.New[world.Point](), Range: rng, Dirty: true}
}

// Sees reports whether p is in the visible set.
func (v *Viewshed) Sees(p world.Point) bool {
	return v.Visible.Has(p)
}

type Name struct {
	Text string `yaml:"text"`
}

// CombatStats. HP may drop below 1 until the death scan runs; a heal never
// raises it above MaxHP.
type CombatStats struct {
	MaxHP   int `yaml:"max_hp"`
	HP      int `yaml:"hp"`
	Defense int `yaml:"defense"`
	Power   int `yaml:"power"`
}

// Tags.
type (
	Player      struct{}
	Monster     struct{}
	BlockedTile struct{}
	Item        struct{}
	Consumable  struct{}
	ToDelete    struct{}
	// Persistent marks entities included in a save.
	Persistent struct{}
)

// Item effects.
type (
	ProvidesHealing struct {
		Amount int `yaml:"amount"`
	}
	InflictsDamage struct {
		Amount int `yaml:"amount"`
	}
	AreaOfEffect struct {
		Radius int `yaml:"radius"`
	}
	Ranged struct {
		Range int `yaml:"range"`
	}
)

// Confusion is both an item effect and, on a creature, the number of turns it
// still has to skip.
type Confusion struct {
	Turns int `yaml:"turns"`
}

// SufferDamage accumulates hits taken during one tick.
type SufferDamage struct {
	Amounts []int
}

// InBackpack means the item is carried by Owner and has no Position.
type InBackpack struct {
	Owner ecs.Entity
}

// MapCarrier ferries the map through the save path. It only exists while a
// snapshot is taken or restored.
type MapCarrier struct {
	Map *world.Map
}
