package system

import (
	"testing"

	"github.com/samdwyer/deepdelve/internal/world"
)

func TestVisibilityRevealsAroundPlayer(t *testing.T) {
	sc := newScene(t, 30, 5)
	p := addPlayer(sc, world.Point{X: 1, Y: 2}, stats(30, 2, 5))

	run(t, sc, Visibility{})

	vs, _ := sc.C.Viewshed.Get(p)
	if vs.Dirty {
		t.Error("viewshed still dirty")
	}
	start := world.Point{X: 1, Y: 2}
	if !vs.Sees(start) || !sc.Map.IsVisible(start) || !sc.Map.IsRevealed(start) {
		t.Error("player tile should be visible and revealed")
	}
	far := world.Point{X: 20, Y: 2}
	if sc.Map.IsRevealed(far) {
		t.Errorf("tile %v is out of range and should not be revealed", far)
	}

	pos, _ := sc.C.Position.Get(p)
	pos.X = 20
	vs.Dirty = true
	run(t, sc, Visibility{})

	if sc.Map.IsVisible(start) {
		t.Error("old tile still visible after moving away")
	}
	if !sc.Map.IsRevealed(start) {
		t.Error("revealed flag must never be cleared")
	}
	if !sc.Map.IsVisible(far) {
		t.Error("new position should be visible")
	}
}

func TestVisibilitySkipsCleanViewsheds(t *testing.T) {
	sc := newScene(t, 10, 5)
	p := addPlayer(sc, world.Point{X: 1, Y: 2}, stats(30, 2, 5))
	vs, _ := sc.C.Viewshed.Get(p)
	vs.Dirty = false

	run(t, sc, Visibility{})

	if vs.Visible.Size() != 0 {
		t.Errorf("clean viewshed recomputed: %d tiles", vs.Visible.Size())
	}
}

func TestMonsterViewshedDoesNotTouchMap(t *testing.T) {
	sc := newScene(t, 10, 5)
	m := addMonster(sc, "Goblin", world.Point{X: 5, Y: 2}, stats(16, 1, 4))

	run(t, sc, Visibility{})

	vs, _ := sc.C.Viewshed.Get(m)
	if !vs.Sees(world.Point{X: 4, Y: 2}) {
		t.Error("monster should see its neighbour")
	}
	if sc.Map.IsRevealed(world.Point{X: 5, Y: 2}) {
		t.Error("monster perception must not reveal map tiles")
	}
}
