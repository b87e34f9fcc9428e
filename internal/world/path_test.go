package world

import (
	"math"
	"testing"
)

func TestExits(t *testing.T) {
	m := openMap(5, 5)
	m.SetBlocked(Point{2, 1}, true)

	exits := m.Exits(Point{1, 1})
	want := map[Point]bool{{1, 2}: true}
	if len(exits) != len(want) {
		t.Fatalf("Exits() = %v, want %v", exits, want)
	}
	for _, p := range exits {
		if !want[p] {
			t.Errorf("unexpected exit %v", p)
		}
	}
}

func TestPathCost(t *testing.T) {
	m := openMap(5, 5)
	if got := m.PathCost(Point{1, 1}, Point{2, 1}); got != 1 {
		t.Errorf("PathCost() = %v, want 1", got)
	}
	if got := Distance(Point{0, 0}, Point{3, 4}); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
	if got := Distance(Point{0, 0}, Point{1, 1}); math.Abs(got-math.Sqrt2) > 1e-9 {
		t.Errorf("Distance(diagonal) = %v, want sqrt(2)", got)
	}
}

func TestFindPathStraight(t *testing.T) {
	m := openMap(7, 5)
	path, ok := FindPath(m, Point{1, 2}, Point{5, 2})
	if !ok {
		t.Fatal("FindPath() found no path")
	}
	if len(path) != 5 {
		t.Fatalf("len(path) = %d, want 5: %v", len(path), path)
	}
	if path[0] != (Point{1, 2}) || path[4] != (Point{5, 2}) {
		t.Errorf("path endpoints = %v..%v", path[0], path[4])
	}
	for i := 1; i < len(path); i++ {
		if d := Distance(path[i-1], path[i]); d != 1 {
			t.Errorf("step %d is not a 4-neighbour move: %v -> %v", i, path[i-1], path[i])
		}
	}
}

func TestFindPathAroundWall(t *testing.T) {
	// #######
	// #..#..#
	// #..#..#
	// #.....#
	// #######
	m := openMap(7, 5)
	m.SetTile(Point{3, 1}, TileWall)
	m.SetTile(Point{3, 2}, TileWall)
	m.PopulateBlocked()

	path, ok := FindPath(m, Point{1, 1}, Point{5, 1})
	if !ok {
		t.Fatal("FindPath() found no path")
	}
	for _, p := range path {
		if m.TileAt(p) == TileWall {
			t.Fatalf("path crosses wall at %v", p)
		}
	}
	// 2 down, 4 across, 2 up
	if len(path) != 9 {
		t.Errorf("len(path) = %d, want 9: %v", len(path), path)
	}
}

func TestFindPathGoalMayBeOccupied(t *testing.T) {
	m := openMap(7, 5)
	m.SetBlocked(Point{5, 2}, true)
	if _, ok := FindPath(m, Point{1, 2}, Point{5, 2}); !ok {
		t.Error("blocked goal should still be reachable")
	}
}

func TestFindPathUnreachable(t *testing.T) {
	m := openMap(7, 5)
	for y := 1; y < 4; y++ {
		m.SetTile(Point{3, y}, TileWall)
	}
	m.PopulateBlocked()

	if path, ok := FindPath(m, Point{1, 1}, Point{5, 1}); ok {
		t.Errorf("FindPath() = %v, want no path", path)
	}
	if _, ok := FindPath(m, Point{1, 1}, Point{3, 1}); ok {
		t.Error("wall goal should not be reachable")
	}
}
