package world

import (
	"github.com/samdwyer/deepdelve/internal/ecs"
)

const (
	// Default map dimensions
	DefaultWidth  = 80
	DefaultHeight = 43
)

// Map is one dungeon level. Tiles, Rooms and Revealed survive a save; the
// visible, blocked and occupant arrays are derived every tick.
type Map struct {
	Width    int
	Height   int
	Depth    int
	Tiles    []Tile
	Rooms    []Room
	Revealed []bool

	visible   []bool
	blocked   []bool
	occupants [][]ecs.Entity
}

// NewMap creates a map filled with walls.
func NewMap(width, height, depth int) *Map {
	m := &Map{
		Width:    width,
		Height:   height,
		Depth:    depth,
		Tiles:    make([]Tile, width*height),
		Rooms:    make([]Room, 0),
		Revealed: make([]bool, width*height),
	}
	for i := range m.Tiles {
		m.Tiles[i] = TileWall
	}
	m.Restore()
	return m
}

// Restore rebuilds the transient arrays. Call it after the persisted fields
// were filled in by a loader.
func (m *Map) Restore() {
	n := m.Width * m.Height
	if len(m.Revealed) != n {
		revealed := make([]bool, n)
		copy(revealed, m.Revealed)
		m.Revealed = revealed
	}
	m.visible = make([]bool, n)
	m.blocked = make([]bool, n)
	m.occupants = make([][]ecs.Entity, n)
	m.PopulateBlocked()
}

// Index returns the row-major index of p. The caller checks bounds.
func (m *Map) Index(p Point) int {
	return p.Y*m.Width + p.X
}

// InBounds reports whether p lies on the map.
func (m *Map) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// TileAt returns the tile at p. Out-of-bounds points read as wall.
func (m *Map) TileAt(p Point) Tile {
	if !m.InBounds(p) {
		return TileWall
	}
	return m.Tiles[m.Index(p)]
}

// SetTile overwrites the tile at p.
func (m *Map) SetTile(p Point, t Tile) {
	if m.InBounds(p) {
		m.Tiles[m.Index(p)] = t
	}
}

// IsOpaque reports whether p blocks sight.
func (m *Map) IsOpaque(p Point) bool {
	return m.TileAt(p).IsOpaque()
}

// IsBlocked reports whether movement into p is forbidden.
func (m *Map) IsBlocked(p Point) bool {
	if !m.InBounds(p) {
		return true
	}
	return m.blocked[m.Index(p)]
}

// SetBlocked sets the blocked flag at p.
func (m *Map) SetBlocked(p Point, blocked bool) {
	if m.InBounds(p) {
		m.blocked[m.Index(p)] = blocked
	}
}

// PopulateBlocked resets the blocked grid to the static layout: every
// impassable tile is blocked, everything else is open.
func (m *Map) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.blocked[i] = !t.IsPassable()
	}
}

// PathCost is the cost of stepping from a to b.
func (m *Map) PathCost(a, b Point) float64 {
	return Distance(a, b)
}

var cardinal = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Exits returns the in-bounds, unblocked 4-neighbours of p.
func (m *Map) Exits(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range cardinal {
		n := p.Add(d.X, d.Y)
		if m.InBounds(n) && !m.IsBlocked(n) {
			out = append(out, n)
		}
	}
	return out
}

// ClearOccupants empties the occupant cache.
func (m *Map) ClearOccupants() {
	for i := range m.occupants {
		m.occupants[i] = m.occupants[i][:0]
	}
}

// AddOccupant records e as standing on p.
func (m *Map) AddOccupant(p Point, e ecs.Entity) {
	if m.InBounds(p) {
		i := m.Index(p)
		m.occupants[i] = append(m.occupants[i], e)
	}
}

// Occupants returns the entities cached for p. The slice is owned by the map
// and valid until the next ClearOccupants.
func (m *Map) Occupants(p Point) []ecs.Entity {
	if !m.InBounds(p) {
		return nil
	}
	return m.occupants[m.Index(p)]
}

// ClearVisible resets every currently-visible flag.
func (m *Map) ClearVisible() {
	clear(m.visible)
}

// Reveal marks p as visible now and revealed forever.
func (m *Map) Reveal(p Point) {
	if m.InBounds(p) {
		i := m.Index(p)
		m.visible[i] = true
		m.Revealed[i] = true
	}
}

// IsVisible reports whether the player currently sees p.
func (m *Map) IsVisible(p Point) bool {
	return m.InBounds(p) && m.visible[m.Index(p)]
}

// IsRevealed reports whether the player has ever seen p.
func (m *Map) IsRevealed(p Point) bool {
	return m.InBounds(p) && m.Revealed[m.Index(p)]
}

// StartPoint returns the centre of the first room: the spawn point on the
// first level and the arrival point on deeper ones.
func (m *Map) StartPoint() (Point, error) {
	if len(m.Rooms) == 0 {
		return Point{}, ErrNoRooms
	}
	return m.Rooms[0].Center(), nil
}

// Stairs returns the position of the down stairs, if any.
func (m *Map) Stairs() (Point, bool) {
	for i, t := range m.Tiles {
		if t == TileDownStairs {
			return Point{X: i % m.Width, Y: i / m.Width}, true
		}
	}
	return Point{}, false
}
