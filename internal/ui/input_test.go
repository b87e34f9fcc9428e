package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepdelve/internal/game"
	"github.com/samdwyer/deepdelve/internal/world"
)

func TestTranslateEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want game.Input
		ok   bool
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.Press(game.KeyUp), true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.Press(game.KeyEnter), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.Press(game.KeyEscape), true},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), game.Type('g'), true},
		{"unmapped key", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), game.Input{}, false},
		{"left click", tcell.NewEventMouse(4, 7, tcell.Button1, tcell.ModNone), game.ClickAt(world.Point{X: 4, Y: 7}), true},
		{"mouse motion", tcell.NewEventMouse(4, 7, tcell.ButtonNone, tcell.ModNone), game.Input{}, false},
		{"resize", tcell.NewEventResize(80, 25), game.Input{}, false},
	}
	for _, tt := range tests {
		got, ok := TranslateEvent(tt.ev)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s: TranslateEvent() = %+v, %v; want %+v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHoverPoint(t *testing.T) {
	if p, ok := HoverPoint(tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone)); !ok || p != (world.Point{X: 3, Y: 4}) {
		t.Errorf("HoverPoint(motion) = %v, %v; want (3,4)", p, ok)
	}
	if _, ok := HoverPoint(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone)); ok {
		t.Error("a click is not a hover")
	}
	if _, ok := HoverPoint(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); ok {
		t.Error("a key is not a hover")
	}
}
