package game

import (
	"slices"

	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Choice is the outcome of an overlay handling one input.
type Choice int

const (
	NoResponse Choice = iota
	Cancel
	Selected
)

func (c Choice) String() string {
	switch c {
	case NoResponse:
		return "no_response"
	case Cancel:
		return "cancel"
	case Selected:
		return "selected"
	default:
		return "unknown"
	}
}

// ItemMenu picks an item from a list shown to the player.
type ItemMenu interface {
	Choose(items []ecs.Entity, in Input) (Choice, ecs.Entity)
}

// Targeter picks a tile for a ranged item.
type Targeter interface {
	// Begin resets the selection before a new targeting session.
	Begin(origin world.Point)
	Target(inRange []world.Point, in Input) (Choice, world.Point)
	// Cursor returns the highlighted tile, if the targeter has one.
	Cursor() (world.Point, bool)
}

// MenuLetters is how many entries a letter menu can address.
const MenuLetters = 26

// LetterMenu selects the n-th item with the n-th letter of the alphabet.
// Escape cancels; any other key is ignored.
type LetterMenu struct{}

func (LetterMenu) Choose(items []ecs.Entity, in Input) (Choice, ecs.Entity) {
	if in.Key == KeyEscape {
		return Cancel, ecs.Nil
	}
	idx, ok := in.letter()
	if !ok || idx >= len(items) {
		return NoResponse, ecs.Nil
	}
	return Selected, items[idx]
}

// CursorTargeter accepts a mouse click, or a keyboard cursor confirmed with
// Enter. Choosing a tile outside the range cancels.
type CursorTargeter struct {
	cursor world.Point
	active bool
}

func (t *CursorTargeter) Begin(origin world.Point) {
	t.cursor = origin
	t.active = true
}

func (t *CursorTargeter) Cursor() (world.Point, bool) { return t.cursor, t.active }

func (t *CursorTargeter) Target(inRange []world.Point, in Input) (Choice, world.Point) {
	pick := func(p world.Point) (Choice, world.Point) {
		t.active = false
		if slices.Contains(inRange, p) {
			return Selected, p
		}
		return Cancel, world.Point{}
	}

	switch {
	case in.Clicked:
		return pick(in.Click)
	case in.Key == KeyEscape:
		t.active = false
		return Cancel, world.Point{}
	case in.Key == KeyEnter:
		return pick(t.cursor)
	}
	if dx, dy, ok := in.direction(); ok {
		t.cursor = t.cursor.Add(dx, dy)
	}
	return NoResponse, world.Point{}
}
