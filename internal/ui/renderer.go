package ui

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepdelve/internal/game"
	"github.com/samdwyer/deepdelve/internal/world"
)

const hpBarWidth = 30

// Renderer draws frames to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame: the map and its entities, the status panel and
// whichever overlay is open.
func (r *Renderer) Render(f game.Frame) {
	r.screen.Clear()

	if f.Map != nil && f.App != game.StateMainMenu {
		r.drawMap(f.Map)
		r.drawEntities(f)
		if f.Targeting != nil {
			r.drawTargeting(f.Map, f.Targeting)
		}
		r.drawStatus(f)
		if f.Tooltip != nil {
			r.drawTooltip(f.Map, f.Tooltip)
		}
		if f.Inventory != nil {
			r.drawInventory(f.Inventory)
		}
	}
	if f.Menu != nil {
		r.drawMenu(f.Menu, f.Notice)
	}

	r.screen.Show()
}

// drawMap shows every revealed tile. Tiles outside the current view are
// drawn grey.
func (r *Renderer) drawMap(m *world.Map) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := world.Point{X: x, Y: y}
			if !m.IsRevealed(p) {
				continue
			}
			tile := m.TileAt(p)
			r.screen.SetContent(x, y, tile.Rune(), r.getTileStyle(tile, m.IsVisible(p)))
		}
	}
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile, visible bool) tcell.Style {
	if !visible {
		return tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	}
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorTeal)
	case world.TileDownStairs:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// drawEntities draws in frame order, so the lowest render order ends on top.
// Only entities on visible tiles are shown.
func (r *Renderer) drawEntities(f game.Frame) {
	for _, d := range f.Drawables {
		if !f.Map.IsVisible(d.At) {
			continue
		}
		style := tcell.StyleDefault.Foreground(d.FG).Background(d.BG)
		r.screen.SetContent(d.At.X, d.At.Y, d.Glyph, style)
	}
}

func (r *Renderer) drawTargeting(m *world.Map, t *game.TargetingView) {
	style := tcell.StyleDefault.Background(tcell.ColorNavy)
	for _, p := range t.Tiles {
		r.screen.SetContent(p.X, p.Y, r.runeAt(m, p), style)
	}
	if t.HasCursor {
		cursor := tcell.StyleDefault.Background(tcell.ColorFuchsia)
		if !slices.Contains(t.Tiles, t.Cursor) {
			cursor = tcell.StyleDefault.Background(tcell.ColorMaroon)
		}
		r.screen.SetContent(t.Cursor.X, t.Cursor.Y, r.runeAt(m, t.Cursor), cursor)
	}
}

func (r *Renderer) runeAt(m *world.Map, p world.Point) rune {
	if !m.IsRevealed(p) {
		return ' '
	}
	return m.TileAt(p).Rune()
}

// drawStatus fills the panel under the map with depth, health and the
// newest log lines.
func (r *Renderer) drawStatus(f game.Frame) {
	top := f.Map.Height
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	yellow := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	r.screen.SetString(1, top, fmt.Sprintf("Depth: %d", f.Depth), yellow)

	hp := fmt.Sprintf("HP: %d / %d ", f.Player.HP, f.Player.MaxHP)
	x := r.screen.SetString(14, top, hp, yellow)
	filled := 0
	if f.Player.MaxHP > 0 {
		filled = max(0, min(hpBarWidth, f.Player.HP*hpBarWidth/f.Player.MaxHP))
	}
	for i := range hpBarWidth {
		bg := tcell.ColorMaroon
		if i < filled {
			bg = tcell.ColorRed
		}
		r.screen.SetContent(x+i, top, ' ', tcell.StyleDefault.Background(bg))
	}

	for i, line := range f.Log {
		r.screen.SetString(1, top+1+i, line, white)
	}
}

// drawTooltip puts the names beside the hovered tile, on the left when the
// tile is in the right half of the map.
func (r *Renderer) drawTooltip(m *world.Map, tip *game.TooltipView) {
	width := 0
	for _, n := range tip.Names {
		width = max(width, len([]rune(n)))
	}
	width += 2
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDimGray)
	arrow := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)

	x, pointer := tip.At.X+1, "<-"
	if tip.At.X > m.Width/2 {
		x, pointer = tip.At.X-width-2, "->"
	}
	for i, n := range tip.Names {
		y := tip.At.Y + i
		left := x
		if pointer == "<-" {
			left = x + 2
		}
		for dx := range width {
			r.screen.SetContent(left+dx, y, ' ', style)
		}
		r.screen.SetString(left+1, y, n, style)
	}
	if pointer == "<-" {
		r.screen.SetString(x, tip.At.Y, pointer, arrow)
	} else {
		r.screen.SetString(x+width, tip.At.Y, pointer, arrow)
	}
}

func (r *Renderer) drawInventory(inv *game.InventoryView) {
	lines := make([]string, 0, len(inv.Items)+1)
	for i, name := range inv.Items[:min(len(inv.Items), game.MenuLetters)] {
		lines = append(lines, fmt.Sprintf("(%c) %s", 'a'+i, name))
	}
	if inv.More > 0 {
		lines = append(lines, fmt.Sprintf("... %d more", inv.More))
	}
	if len(lines) == 0 {
		lines = append(lines, "(empty)")
	}
	r.drawBox(15, 10, inv.Title, lines, "ESCAPE to cancel")
}

func (r *Renderer) drawMenu(m *game.MenuView, notice string) {
	w, _ := r.screen.Size()
	yellow := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	r.centre(w, 15, m.Title, yellow.Bold(true))

	for i, item := range m.Items {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if i == m.Cursor {
			style = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
		}
		r.centre(w, 17+i, item, style)
	}
	if notice != "" {
		r.centre(w, 18+len(m.Items), notice, tcell.StyleDefault.Foreground(tcell.ColorRed))
	}
}

func (r *Renderer) centre(w, y int, s string, style tcell.Style) {
	r.screen.SetString(max(0, (w-len([]rune(s)))/2), y, s, style)
}

// drawBox draws a framed list with a title and footer.
func (r *Renderer) drawBox(x, y int, title string, lines []string, footer string) {
	width := max(len([]rune(title)), len([]rune(footer))) + 4
	for _, l := range lines {
		width = max(width, len([]rune(l))+4)
	}
	height := len(lines) + 2
	frame := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			ch := ' '
			switch {
			case (dy == 0 || dy == height-1) && (dx == 0 || dx == width-1):
				ch = '+'
			case dy == 0 || dy == height-1:
				ch = '-'
			case dx == 0 || dx == width-1:
				ch = '|'
			}
			r.screen.SetContent(x+dx, y+dy, ch, frame)
		}
	}
	yellow := frame.Foreground(tcell.ColorYellow)
	r.screen.SetString(x+2, y, title, yellow)
	r.screen.SetString(x+2, y+height-1, footer, yellow)
	for i, l := range lines {
		r.screen.SetString(x+2, y+1+i, l, frame)
	}
}
