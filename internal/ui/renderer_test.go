package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/game"
	"github.com/samdwyer/deepdelve/internal/world"
)

func newSimScreen(t *testing.T) (tcell.SimulationScreen, *Renderer) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := Wrap(sim)
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	t.Cleanup(s.Close)
	sim.SetSize(80, 30)
	return sim, NewRenderer(s)
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func cell(s tcell.Screen, x, y int) (rune, tcell.Style) {
	ch, _, style, _ := s.GetContent(x, y)
	return ch, style
}

// testFrame is a walled 8x5 room with the left half in view.
func testFrame() game.Frame {
	m := world.NewMap(8, 5, 3)
	for y := 1; y < 4; y++ {
		for x := 1; x < 7; x++ {
			m.SetTile(world.Point{X: x, Y: y}, world.TileFloor)
		}
	}
	m.SetTile(world.Point{X: 5, Y: 2}, world.TileDownStairs)
	m.PopulateBlocked()
	for y := 0; y < 5; y++ {
		for x := 0; x < 8; x++ {
			m.Reveal(world.Point{X: x, Y: y})
		}
	}
	m.ClearVisible()
	for y := 0; y < 5; y++ {
		for x := 0; x < 4; x++ {
			m.Reveal(world.Point{X: x, Y: y})
		}
	}

	return game.Frame{
		App: game.StateInGame,
		Map: m,
		Drawables: []game.Drawable{
			{At: world.Point{X: 2, Y: 2}, Renderable: component.Renderable{Glyph: '!', FG: tcell.ColorPurple, RenderOrder: 2}},
			{At: world.Point{X: 6, Y: 2}, Renderable: component.Renderable{Glyph: 'g', FG: tcell.ColorRed, RenderOrder: 1}},
			{At: world.Point{X: 2, Y: 2}, Renderable: component.Renderable{Glyph: '@', FG: tcell.ColorYellow, RenderOrder: 0}},
		},
		Log:    []string{"Welcome to Deep Delve", "Goblin is dead"},
		Player: game.PlayerStatus{HP: 15, MaxHP: 30},
		Depth:  3,
	}
}

func TestRenderMap(t *testing.T) {
	s, r := newSimScreen(t)
	r.Render(testFrame())

	if ch, _ := cell(s, 2, 2); ch != '@' {
		t.Errorf("player cell = %q, want '@' drawn over the item", ch)
	}
	if ch, _ := cell(s, 6, 2); ch != '.' {
		t.Errorf("monster out of view drawn as %q, want the floor", ch)
	}
	if ch, _ := cell(s, 5, 2); ch != '>' {
		t.Errorf("remembered stairs = %q, want '>'", ch)
	}
	_, visible := cell(s, 1, 1)
	_, remembered := cell(s, 6, 1)
	if visible == remembered {
		t.Error("remembered tiles should be drawn differently from visible ones")
	}
}

func TestRenderStatus(t *testing.T) {
	s, r := newSimScreen(t)
	r.Render(testFrame())

	status := row(s, 5)
	if !strings.Contains(status, "Depth: 3") || !strings.Contains(status, "HP: 15 / 30") {
		t.Errorf("status row = %q", status)
	}
	if got := row(s, 6); !strings.Contains(got, "Welcome to Deep Delve") {
		t.Errorf("first log row = %q", got)
	}
	if got := row(s, 7); !strings.Contains(got, "Goblin is dead") {
		t.Errorf("second log row = %q", got)
	}
}

func TestRenderMainMenu(t *testing.T) {
	s, r := newSimScreen(t)
	r.Render(game.Frame{
		App:    game.StateMainMenu,
		Menu:   &game.MenuView{Title: "Deep Delve", Items: []string{"New Game", "Load Game", "Quit"}, Cursor: 1},
		Notice: "No saved game found",
	})

	if got := row(s, 15); !strings.Contains(got, "Deep Delve") {
		t.Errorf("title row = %q", got)
	}
	for i, want := range []string{"New Game", "Load Game", "Quit"} {
		if got := row(s, 17+i); !strings.Contains(got, want) {
			t.Errorf("menu row %d = %q, want %q", i, got, want)
		}
	}
	if got := row(s, 21); !strings.Contains(got, "No saved game found") {
		t.Errorf("notice row = %q", got)
	}

	x := strings.Index(row(s, 18), "Load Game")
	_, selected := cell(s, x, 18)
	x = strings.Index(row(s, 17), "New Game")
	_, plain := cell(s, x, 17)
	if selected == plain {
		t.Error("highlighted entry should stand out")
	}
}

func TestRenderInventory(t *testing.T) {
	s, r := newSimScreen(t)
	f := testFrame()
	f.Inventory = &game.InventoryView{Title: "Inventory", Items: []string{"Health Potion", "Magic Missile Scroll"}}
	r.Render(f)

	if got := row(s, 10); !strings.Contains(got, "Inventory") {
		t.Errorf("title row = %q", got)
	}
	if got := row(s, 11); !strings.Contains(got, "(a) Health Potion") {
		t.Errorf("first item row = %q", got)
	}
	if got := row(s, 12); !strings.Contains(got, "(b) Magic Missile Scroll") {
		t.Errorf("second item row = %q", got)
	}
}

func TestRenderTargeting(t *testing.T) {
	s, r := newSimScreen(t)
	f := testFrame()
	f.Targeting = &game.TargetingView{
		Tiles:     []world.Point{{X: 2, Y: 1}, {X: 3, Y: 1}},
		Cursor:    world.Point{X: 3, Y: 1},
		HasCursor: true,
	}
	r.Render(f)

	_, inRange := cell(s, 2, 1)
	_, cursor := cell(s, 3, 1)
	_, outside := cell(s, 1, 3)
	if _, bg, _ := inRange.Decompose(); bg != tcell.ColorNavy {
		t.Errorf("in-range background = %v, want navy", bg)
	}
	if _, bg, _ := cursor.Decompose(); bg != tcell.ColorFuchsia {
		t.Errorf("cursor background = %v, want fuchsia", bg)
	}
	if _, bg, _ := outside.Decompose(); bg == tcell.ColorNavy {
		t.Error("tile out of range is highlighted")
	}
}

func TestRenderInventoryOverflow(t *testing.T) {
	s, r := newSimScreen(t)
	s.SetSize(80, 50)
	f := testFrame()
	items := make([]string, game.MenuLetters)
	for i := range items {
		items[i] = "Pebble"
	}
	f.Inventory = &game.InventoryView{Title: "Inventory", Items: items, More: 3}
	r.Render(f)

	if got := row(s, 11+25); !strings.Contains(got, "(z) Pebble") {
		t.Errorf("last lettered row = %q", got)
	}
	if got := row(s, 11+26); !strings.Contains(got, "... 3 more") {
		t.Errorf("overflow row = %q", got)
	}
	for y := 0; y < 50; y++ {
		if got := row(s, y); strings.Contains(got, "({)") {
			t.Errorf("row %d has a non-letter label: %q", y, got)
		}
	}
}

func TestRenderTooltip(t *testing.T) {
	s, r := newSimScreen(t)
	f := testFrame()
	f.Tooltip = &game.TooltipView{At: world.Point{X: 2, Y: 2}, Names: []string{"Player", "Health Potion"}}
	r.Render(f)

	if got := row(s, 2); !strings.Contains(got, "<-") || !strings.Contains(got, "Player") {
		t.Errorf("tooltip row = %q", got)
	}
	if got := row(s, 3); !strings.Contains(got, "Health Potion") {
		t.Errorf("second tooltip row = %q", got)
	}

	f.Tooltip = &game.TooltipView{At: world.Point{X: 7, Y: 2}, Names: []string{"Orc"}}
	s2, r2 := newSimScreen(t)
	r2.Render(f)
	if got := row(s2, 2); !strings.HasPrefix(got, " Orc ->") {
		t.Errorf("right side tooltip row = %q", got)
	}
}
