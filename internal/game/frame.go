package game

import (
	"cmp"
	"slices"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Frame is everything the renderer needs for one screen.
type Frame struct {
	App    string
	Menu   *MenuView
	Notice string

	// The fields below are only set while a run exists.
	Run       sim.RunKind
	Map       *world.Map
	Drawables []Drawable
	Log       []string
	Player    PlayerStatus
	Depth     int
	Inventory *InventoryView
	Targeting *TargetingView
	Tooltip   *TooltipView
}

// Drawable is an entity on the map. Frame sorts them by descending
// RenderOrder, so later entries go on top.
type Drawable struct {
	At world.Point
	component.Renderable
}

type PlayerStatus struct {
	HP    int
	MaxHP int
}

type MenuView struct {
	Title  string
	Items  []string
	Cursor int
}

// InventoryView lists at most MenuLetters items; More counts the rest.
type InventoryView struct {
	Title string
	Items []string
	More  int
}

// TooltipView names what stands on the hovered tile.
type TooltipView struct {
	At    world.Point
	Names []string
}

type TargetingView struct {
	Tiles     []world.Point
	Cursor    world.Point
	HasCursor bool
}

// Frame builds the read model for the current state.
func (g *Game) Frame() Frame {
	f := Frame{App: g.app.Current(), Notice: g.notice}
	if f.App == StateMainMenu {
		f.Menu = g.menuView()
	}
	if g.sc == nil {
		return f
	}

	sc := g.sc
	f.Run = sc.State.Kind
	f.Map = sc.Map
	f.Depth = sc.Map.Depth
	f.Log = sc.Log.Tail(g.cfg.LogLines)
	if stats, ok := sc.C.CombatStats.Get(sc.Player); ok {
		f.Player = PlayerStatus{HP: stats.HP, MaxHP: stats.MaxHP}
	}
	f.Drawables = g.drawables()
	f.Tooltip = g.tooltip()

	switch sc.State.Kind {
	case sim.ShowInventory:
		f.Inventory = g.inventoryView("Inventory")
	case sim.ShowDropItem:
		f.Inventory = g.inventoryView("Drop Which Item?")
	case sim.ShowTargeting:
		tiles, _ := g.targetsInRange(sc.State.Range)
		cursor, ok := g.targeter.Cursor()
		f.Targeting = &TargetingView{Tiles: tiles, Cursor: cursor, HasCursor: ok}
	}
	return f
}

func (g *Game) drawables() []Drawable {
	sc := g.sc
	var out []Drawable
	for r := range ecs.Join2(sc.C.Position, sc.C.Renderable) {
		if !sc.World.Alive(r.Entity) {
			continue
		}
		out = append(out, Drawable{At: r.A.Point(), Renderable: *r.B})
	}
	slices.SortStableFunc(out, func(a, b Drawable) int {
		return cmp.Compare(b.RenderOrder, a.RenderOrder)
	})
	return out
}

func (g *Game) menuView() *MenuView {
	v := &MenuView{Title: "Deep Delve", Cursor: g.menu.Cursor}
	for _, o := range g.menu.Items {
		v.Items = append(v.Items, o.String())
	}
	return v
}

func (g *Game) inventoryView(title string) *InventoryView {
	sc := g.sc
	v := &InventoryView{Title: title}
	items := sc.C.Backpack(sc.Player)
	if len(items) > MenuLetters {
		v.More = len(items) - MenuLetters
		items = items[:MenuLetters]
	}
	for _, item := range items {
		v.Items = append(v.Items, sc.C.NameOf(item))
	}
	return v
}

// SetHover records the map cell under the mouse pointer.
func (g *Game) SetHover(p world.Point) {
	g.hover, g.hovering = p, true
}

// tooltip lists the names on the hovered tile when the player can see it.
func (g *Game) tooltip() *TooltipView {
	sc := g.sc
	if !g.hovering || !sc.Map.InBounds(g.hover) || !sc.Map.IsVisible(g.hover) {
		return nil
	}
	var names []string
	for r := range ecs.Join2(sc.C.Name, sc.C.Position) {
		if r.B.Point() == g.hover && sc.World.Alive(r.Entity) {
			names = append(names, r.A.Text)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &TooltipView{At: g.hover, Names: names}
}
