package world

import "testing"

// openMap returns a map whose border is wall and interior is floor.
func openMap(w, h int) *Map {
	m := NewMap(w, h, 1)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			m.SetTile(Point{x, y}, TileFloor)
		}
	}
	m.PopulateBlocked()
	return m
}

func TestFieldOfViewInternalWall(t *testing.T) {
	// #######
	// #.....#
	// #@.#..#
	// #.....#
	// #######
	m := openMap(7, 5)
	m.SetTile(Point{3, 2}, TileWall)
	origin := Point{1, 2}

	fov := FieldOfView(m, origin, 8)

	for _, p := range []Point{origin, {2, 2}, {3, 2}, {1, 1}, {2, 1}, {0, 2}} {
		if !fov.Has(p) {
			t.Errorf("tile %v should be visible", p)
		}
	}
	for _, p := range []Point{{4, 2}, {5, 2}} {
		if fov.Has(p) {
			t.Errorf("tile %v is behind the wall and should be hidden", p)
		}
	}
	fov.Each(func(p Point) {
		if !m.InBounds(p) {
			t.Errorf("out of bounds tile %v in view", p)
		}
	})
}

func TestFieldOfViewRadius(t *testing.T) {
	m := openMap(21, 21)
	origin := Point{10, 10}

	fov := FieldOfView(m, origin, 3)

	tests := []struct {
		offset Point
		want   bool
	}{
		{Point{3, 0}, true},
		{Point{0, -3}, true},
		{Point{2, 2}, true},
		{Point{-2, 2}, true},
		{Point{3, 1}, false},
		{Point{4, 0}, false},
	}
	for _, tt := range tests {
		p := origin.Add(tt.offset.X, tt.offset.Y)
		if got := fov.Has(p); got != tt.want {
			t.Errorf("Has(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestFieldOfViewClippedAtEdge(t *testing.T) {
	m := openMap(5, 5)
	fov := FieldOfView(m, Point{1, 1}, 10)
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			if !fov.Has(Point{x, y}) {
				t.Errorf("floor tile (%d,%d) should be visible", x, y)
			}
		}
	}
	if !fov.Has(Point{4, 4}) {
		t.Error("far corner wall should be visible")
	}
	if fov.Size() > 25 {
		t.Errorf("Size() = %d, larger than the map", fov.Size())
	}
}

func TestFieldOfViewZeroRadius(t *testing.T) {
	m := openMap(5, 5)
	if got := FieldOfView(m, Point{2, 2}, 0).Size(); got != 0 {
		t.Errorf("Size() = %d, want 0", got)
	}
}

func TestMapVisibilityFlags(t *testing.T) {
	m := openMap(5, 5)
	p := Point{2, 2}
	m.Reveal(p)
	if !m.IsVisible(p) || !m.IsRevealed(p) {
		t.Fatal("Reveal() should set both flags")
	}
	m.ClearVisible()
	if m.IsVisible(p) {
		t.Error("ClearVisible() left tile visible")
	}
	if !m.IsRevealed(p) {
		t.Error("ClearVisible() must not reset revealed")
	}
}
