package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func generate(t *testing.T, seed int64) *Map {
	t.Helper()
	m, err := Generate(context.Background(), rand.New(rand.NewSource(seed)), DefaultParams(), 1)
	if err != nil {
		t.Fatalf("Generate(seed=%d) error = %v", seed, err)
	}
	return m
}

func TestDungeonReproducibility(t *testing.T) {
	d1 := generate(t, 12345)
	d2 := generate(t, 12345)

	if len(d1.Rooms) != len(d2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(d1.Rooms), len(d2.Rooms))
	}
	for i := range d1.Rooms {
		if d1.Rooms[i] != d2.Rooms[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, d1.Rooms[i], d2.Rooms[i])
		}
	}
	for i := range d1.Tiles {
		if d1.Tiles[i] != d2.Tiles[i] {
			t.Fatalf("Tile mismatch at index %d: %v != %v", i, d1.Tiles[i], d2.Tiles[i])
		}
	}
}

func TestDungeonDifferentSeeds(t *testing.T) {
	d1 := generate(t, 12345)
	d2 := generate(t, 54321)

	identical := len(d1.Rooms) == len(d2.Rooms)
	if identical {
		for i := range d1.Rooms {
			if d1.Rooms[i] != d2.Rooms[i] {
				identical = false
				break
			}
		}
	}
	if identical {
		t.Error("Dungeons with different seeds should not be identical")
	}
}

func TestGenerateLayout(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		m := generate(t, seed)

		if len(m.Rooms) == 0 {
			t.Fatalf("seed %d: no rooms", seed)
		}
		if m.Depth != 1 {
			t.Errorf("seed %d: Depth = %d, want 1", seed, m.Depth)
		}

		for i := range m.Rooms {
			for j := i + 1; j < len(m.Rooms); j++ {
				if m.Rooms[i].Intersects(m.Rooms[j]) {
					t.Errorf("seed %d: room %d %+v intersects room %d %+v", seed, i, m.Rooms[i], j, m.Rooms[j])
				}
			}
			for _, p := range m.Rooms[i].Points() {
				if !m.TileAt(p).IsPassable() {
					t.Fatalf("seed %d: room %d tile %v is %v", seed, i, p, m.TileAt(p))
				}
			}
		}

		for i := 1; i < len(m.Rooms); i++ {
			a, b := m.Rooms[i-1].Center(), m.Rooms[i].Center()
			if !floorConnected(m, a, b) {
				t.Errorf("seed %d: rooms %d and %d are not connected", seed, i-1, i)
			}
		}

		stairs, ok := m.Stairs()
		if !ok {
			t.Fatalf("seed %d: no stairs", seed)
		}
		if want := m.Rooms[len(m.Rooms)-1].Center(); stairs != want {
			t.Errorf("seed %d: stairs at %v, want %v", seed, stairs, want)
		}

		for x := 0; x < m.Width; x++ {
			if m.TileAt(Point{x, 0}) != TileWall || m.TileAt(Point{x, m.Height - 1}) != TileWall {
				t.Fatalf("seed %d: outer wall broken at column %d", seed, x)
			}
		}
	}
}

func TestGenerateNoRooms(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Height = 8, 8
	p.RoomMin, p.RoomMax = 9, 9 // no room fits inside the outer wall

	_, err := Generate(context.Background(), rand.New(rand.NewSource(1)), p, 1)
	if !errors.Is(err, ErrNoRooms) {
		t.Errorf("Generate() error = %v, want ErrNoRooms", err)
	}
}

func TestBlockedFollowsLayout(t *testing.T) {
	m := generate(t, 7)
	start, err := m.StartPoint()
	if err != nil {
		t.Fatalf("StartPoint() error = %v", err)
	}
	if start != m.Rooms[0].Center() {
		t.Errorf("StartPoint() = %v, want %v", start, m.Rooms[0].Center())
	}
	if m.IsBlocked(start) {
		t.Error("room centre should not be blocked")
	}
	if !m.IsBlocked(Point{0, 0}) {
		t.Error("corner wall should be blocked")
	}
	if !m.IsBlocked(Point{-1, 5}) {
		t.Error("out of bounds should be blocked")
	}

	m.SetBlocked(start, true)
	if !m.IsBlocked(start) {
		t.Error("SetBlocked(true) not applied")
	}
	m.PopulateBlocked()
	if m.IsBlocked(start) {
		t.Error("PopulateBlocked should reset creature blocks")
	}
}

func TestRoomIntersectsIsInclusive(t *testing.T) {
	a := Room{X: 1, Y: 1, Width: 5, Height: 5}
	tests := []struct {
		name string
		b    Room
		want bool
	}{
		{"overlap", Room{X: 3, Y: 3, Width: 5, Height: 5}, true},
		{"touching edge", Room{X: 6, Y: 1, Width: 3, Height: 3}, true},
		{"one wall between", Room{X: 7, Y: 1, Width: 3, Height: 3}, false},
		{"far away", Room{X: 20, Y: 20, Width: 3, Height: 3}, false},
	}
	for _, tt := range tests {
		if got := a.Intersects(tt.b); got != tt.want {
			t.Errorf("%s: Intersects() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOccupants(t *testing.T) {
	m := NewMap(5, 5, 1)
	p := Point{2, 2}
	m.AddOccupant(p, 7)
	m.AddOccupant(p, 9)
	if got := m.Occupants(p); len(got) != 2 {
		t.Fatalf("Occupants() = %v, want 2 entries", got)
	}
	m.ClearOccupants()
	if got := m.Occupants(p); len(got) != 0 {
		t.Errorf("Occupants() after clear = %v", got)
	}
	if got := m.Occupants(Point{-1, 0}); got != nil {
		t.Errorf("Occupants(out of bounds) = %v, want nil", got)
	}
}

func TestRestoreRebuildsTransientState(t *testing.T) {
	m := generate(t, 3)
	start, _ := m.StartPoint()
	m.Reveal(start)

	loaded := &Map{Width: m.Width, Height: m.Height, Depth: m.Depth, Tiles: m.Tiles, Rooms: m.Rooms, Revealed: m.Revealed}
	loaded.Restore()

	if !loaded.IsRevealed(start) {
		t.Error("revealed flag lost")
	}
	if loaded.IsVisible(start) {
		t.Error("visible flags should start cleared")
	}
	if !loaded.IsBlocked(Point{0, 0}) || loaded.IsBlocked(start) {
		t.Error("blocked grid not rebuilt from tiles")
	}
}

// floorConnected walks passable tiles from a to b.
func floorConnected(m *Map, a, b Point) bool {
	seen := map[Point]bool{a: true}
	queue := []Point{a}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == b {
			return true
		}
		for _, d := range cardinal {
			n := p.Add(d.X, d.Y)
			if !seen[n] && m.TileAt(n).IsPassable() {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}
