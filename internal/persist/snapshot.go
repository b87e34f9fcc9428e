// Package persist converts the persistent part of a world into a snapshot and
// back, and stores snapshots on disk.
package persist

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Version is the snapshot layout written by this package.
const Version = 1

var (
	ErrVersion      = errors.New("persist: unsupported snapshot version")
	ErrCorrupt      = errors.New("persist: corrupt snapshot")
	ErrMissingOwner = errors.New("persist: backpack owner is not persistent")
)

// Snapshot is the serialisable form of a run.
type Snapshot struct {
	Version  int       `yaml:"version"`
	RunID    string    `yaml:"run_id"`
	SavedAt  time.Time `yaml:"saved_at"`
	Entities []Record  `yaml:"entities"`
}

// Record holds one entity. IDs are local to the snapshot; InBackpack refers
// to another record's ID.
type Record struct {
	ID int `yaml:"id"`

	Name        string                 `yaml:"name,omitempty"`
	Tags        []string               `yaml:"tags,omitempty"`
	Position    *component.Position    `yaml:"position,omitempty"`
	Renderable  *RenderableRecord      `yaml:"renderable,omitempty"`
	Viewshed    *ViewshedRecord        `yaml:"viewshed,omitempty"`
	CombatStats *component.CombatStats `yaml:"combat_stats,omitempty"`

	ProvidesHealing *component.ProvidesHealing `yaml:"provides_healing,omitempty"`
	InflictsDamage  *component.InflictsDamage  `yaml:"inflicts_damage,omitempty"`
	AreaOfEffect    *component.AreaOfEffect    `yaml:"area_of_effect,omitempty"`
	Ranged          *component.Ranged          `yaml:"ranged,omitempty"`
	Confusion       *component.Confusion       `yaml:"confusion,omitempty"`

	InBackpack int        `yaml:"in_backpack,omitempty"`
	Map        *MapRecord `yaml:"map,omitempty"`
}

type RenderableRecord struct {
	Glyph string      `yaml:"glyph"`
	FG    tcell.Color `yaml:"fg"`
	BG    tcell.Color `yaml:"bg"`
	Order int         `yaml:"order"`
}

type ViewshedRecord struct {
	Range int `yaml:"range"`
}

// MapRecord stores tiles and revealed flags one string per row.
type MapRecord struct {
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Depth    int          `yaml:"depth"`
	Rooms    []world.Room `yaml:"rooms"`
	Tiles    []string     `yaml:"tiles"`
	Revealed []string     `yaml:"revealed"`
}

// Tag names used in Record.Tags.
const (
	tagPlayer      = "player"
	tagMonster     = "monster"
	tagBlockedTile = "blocked_tile"
	tagItem        = "item"
	tagConsumable  = "consumable"
)

// Capture builds a snapshot of every Persistent entity.
func Capture(c *component.Stores, runID string) (*Snapshot, error) {
	entities := c.Persistent.Entities()
	ids := make(map[ecs.Entity]int, len(entities))
	for i, e := range entities {
		ids[e] = i + 1
	}

	snap := &Snapshot{
		Version:  Version,
		RunID:    runID,
		SavedAt:  time.Now().UTC(),
		Entities: make([]Record, 0, len(entities)),
	}
	for _, e := range entities {
		rec, err := captureEntity(c, e, ids)
		if err != nil {
			return nil, err
		}
		snap.Entities = append(snap.Entities, rec)
	}
	return snap, nil
}

func captureEntity(c *component.Stores, e ecs.Entity, ids map[ecs.Entity]int) (Record, error) {
	rec := Record{ID: ids[e]}

	if n, ok := c.Name.Get(e); ok {
		rec.Name = n.Text
	}
	if c.Player.Has(e) {
		rec.Tags = append(rec.Tags, tagPlayer)
	}
	if c.Monster.Has(e) {
		rec.Tags = append(rec.Tags, tagMonster)
	}
	if c.BlockedTile.Has(e) {
		rec.Tags = append(rec.Tags, tagBlockedTile)
	}
	if c.Item.Has(e) {
		rec.Tags = append(rec.Tags, tagItem)
	}
	if c.Consumable.Has(e) {
		rec.Tags = append(rec.Tags, tagConsumable)
	}

	rec.Position = copyOf(c.Position, e)
	rec.CombatStats = copyOf(c.CombatStats, e)
	rec.ProvidesHealing = copyOf(c.ProvidesHealing, e)
	rec.InflictsDamage = copyOf(c.InflictsDamage, e)
	rec.AreaOfEffect = copyOf(c.AreaOfEffect, e)
	rec.Ranged = copyOf(c.Ranged, e)
	rec.Confusion = copyOf(c.Confusion, e)

	if r, ok := c.Renderable.Get(e); ok {
		rec.Renderable = &RenderableRecord{Glyph: string(r.Glyph), FG: r.FG, BG: r.BG, Order: r.RenderOrder}
	}
	if vs, ok := c.Viewshed.Get(e); ok {
		rec.Viewshed = &ViewshedRecord{Range: vs.Range}
	}
	if bp, ok := c.InBackpack.Get(e); ok {
		owner, ok := ids[bp.Owner]
		if !ok {
			return Record{}, fmt.Errorf("item %s owned by %s: %w", e, bp.Owner, ErrMissingOwner)
		}
		rec.InBackpack = owner
	}
	if mc, ok := c.MapCarrier.Get(e); ok && mc.Map != nil {
		rec.Map = encodeMap(mc.Map)
	}
	return rec, nil
}

func copyOf[T any](s *ecs.Store[T], e ecs.Entity) *T {
	v, ok := s.Get(e)
	if !ok {
		return nil
	}
	out := *v
	return &out
}

// Restore recreates the snapshot's entities in w and returns the mapping from
// snapshot id to new handle. Every restored entity is Persistent and every
// viewshed starts dirty.
func Restore(s *Snapshot, w *ecs.World, c *component.Stores) (map[int]ecs.Entity, error) {
	if s.Version != Version {
		return nil, fmt.Errorf("snapshot version %d: %w", s.Version, ErrVersion)
	}

	handles := make(map[int]ecs.Entity, len(s.Entities))
	for _, rec := range s.Entities {
		if _, dup := handles[rec.ID]; dup || rec.ID <= 0 {
			return nil, fmt.Errorf("record id %d: %w", rec.ID, ErrCorrupt)
		}
		handles[rec.ID] = w.Create()
	}

	for _, rec := range s.Entities {
		e := handles[rec.ID]
		if err := restoreEntity(c, e, rec, handles); err != nil {
			return nil, fmt.Errorf("record %d: %w", rec.ID, err)
		}
	}
	return handles, nil
}

func restoreEntity(c *component.Stores, e ecs.Entity, rec Record, handles map[int]ecs.Entity) error {
	c.Persistent.Insert(e, component.Persistent{})
	if rec.Name != "" {
		c.Name.Insert(e, component.Name{Text: rec.Name})
	}
	for _, tag := range rec.Tags {
		switch tag {
		case tagPlayer:
			c.Player.Insert(e, component.Player{})
		case tagMonster:
			c.Monster.Insert(e, component.Monster{})
		case tagBlockedTile:
			c.BlockedTile.Insert(e, component.BlockedTile{})
		case tagItem:
			c.Item.Insert(e, component.Item{})
		case tagConsumable:
			c.Consumable.Insert(e, component.Consumable{})
		default:
			return fmt.Errorf("unknown tag %q: %w", tag, ErrCorrupt)
		}
	}

	insertOpt(c.Position, e, rec.Position)
	insertOpt(c.CombatStats, e, rec.CombatStats)
	insertOpt(c.ProvidesHealing, e, rec.ProvidesHealing)
	insertOpt(c.InflictsDamage, e, rec.InflictsDamage)
	insertOpt(c.AreaOfEffect, e, rec.AreaOfEffect)
	insertOpt(c.Ranged, e, rec.Ranged)
	insertOpt(c.Confusion, e, rec.Confusion)

	if r := rec.Renderable; r != nil {
		glyph, _ := utf8.DecodeRuneInString(r.Glyph)
		c.Renderable.Insert(e, component.Renderable{Glyph: glyph, FG: r.FG, BG: r.BG, RenderOrder: r.Order})
	}
	if rec.Viewshed != nil {
		c.Viewshed.Insert(e, component.NewViewshed(rec.Viewshed.Range))
	}
	if rec.InBackpack != 0 {
		owner, ok := handles[rec.InBackpack]
		if !ok {
			return fmt.Errorf("backpack owner %d: %w", rec.InBackpack, ErrMissingOwner)
		}
		c.InBackpack.Insert(e, component.InBackpack{Owner: owner})
	}
	if rec.Map != nil {
		m, err := decodeMap(rec.Map)
		if err != nil {
			return err
		}
		c.MapCarrier.Insert(e, component.MapCarrier{Map: m})
	}
	return nil
}

func insertOpt[T any](s *ecs.Store[T], e ecs.Entity, v *T) {
	if v != nil {
		s.Insert(e, *v)
	}
}

func encodeMap(m *world.Map) *MapRecord {
	rec := &MapRecord{
		Width:    m.Width,
		Height:   m.Height,
		Depth:    m.Depth,
		Rooms:    append([]world.Room(nil), m.Rooms...),
		Tiles:    make([]string, m.Height),
		Revealed: make([]string, m.Height),
	}
	var tiles, seen strings.Builder
	for y := 0; y < m.Height; y++ {
		tiles.Reset()
		seen.Reset()
		for x := 0; x < m.Width; x++ {
			p := world.Point{X: x, Y: y}
			tiles.WriteRune(m.TileAt(p).Rune())
			if m.IsRevealed(p) {
				seen.WriteByte('1')
			} else {
				seen.WriteByte('0')
			}
		}
		rec.Tiles[y] = tiles.String()
		rec.Revealed[y] = seen.String()
	}
	return rec
}

func decodeMap(rec *MapRecord) (*world.Map, error) {
	if rec.Width <= 0 || rec.Height <= 0 || len(rec.Tiles) != rec.Height {
		return nil, fmt.Errorf("map %dx%d with %d rows: %w", rec.Width, rec.Height, len(rec.Tiles), ErrCorrupt)
	}
	m := world.NewMap(rec.Width, rec.Height, rec.Depth)
	m.Rooms = append([]world.Room(nil), rec.Rooms...)

	for y, row := range rec.Tiles {
		runes := []rune(row)
		if len(runes) != rec.Width {
			return nil, fmt.Errorf("row %d has %d tiles: %w", y, len(runes), ErrCorrupt)
		}
		for x, r := range runes {
			t := world.Tile(r)
			switch t {
			case world.TileWall, world.TileFloor, world.TileDownStairs:
			default:
				return nil, fmt.Errorf("tile %q at (%d,%d): %w", r, x, y, ErrCorrupt)
			}
			m.SetTile(world.Point{X: x, Y: y}, t)
		}
	}
	for y, row := range rec.Revealed {
		if y >= rec.Height {
			break
		}
		for x := 0; x < len(row) && x < rec.Width; x++ {
			if row[x] == '1' {
				m.Revealed[m.Index(world.Point{X: x, Y: y})] = true
			}
		}
	}
	m.Restore()
	return m, nil
}
