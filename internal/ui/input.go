package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepdelve/internal/game"
	"github.com/samdwyer/deepdelve/internal/world"
)

// TranslateEvent maps a terminal event to game input. It returns false for
// events the game does not care about, such as resizes and mouse motion.
func TranslateEvent(ev tcell.Event) (game.Input, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			return game.Press(game.KeyUp), true
		case tcell.KeyDown:
			return game.Press(game.KeyDown), true
		case tcell.KeyLeft:
			return game.Press(game.KeyLeft), true
		case tcell.KeyRight:
			return game.Press(game.KeyRight), true
		case tcell.KeyEnter:
			return game.Press(game.KeyEnter), true
		case tcell.KeyEscape:
			return game.Press(game.KeyEscape), true
		case tcell.KeyRune:
			return game.Type(ev.Rune()), true
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			return game.ClickAt(world.Point{X: x, Y: y}), true
		}
	}
	return game.Input{}, false
}

// HoverPoint returns the cell under the pointer for a mouse event with no
// button held.
func HoverPoint(ev tcell.Event) (world.Point, bool) {
	m, ok := ev.(*tcell.EventMouse)
	if !ok || m.Buttons() != tcell.ButtonNone {
		return world.Point{}, false
	}
	x, y := m.Position()
	return world.Point{X: x, Y: y}, true
}
