package game

import "github.com/samdwyer/deepdelve/internal/world"

// Key is a non-character key.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// Input is one external event. The zero value means "nothing happened".
type Input struct {
	Key     Key
	Rune    rune
	Click   world.Point
	Clicked bool
}

// Press returns the input for a special key.
func Press(k Key) Input { return Input{Key: k} }

// Type returns the input for a character key.
func Type(r rune) Input { return Input{Key: KeyRune, Rune: r} }

// ClickAt returns a left click on map cell p.
func ClickAt(p world.Point) Input { return Input{Click: p, Clicked: true} }

// IsNone reports whether the input carries no event.
func (in Input) IsNone() bool { return in.Key == KeyNone && !in.Clicked }

// Is reports whether in is the character r.
func (in Input) Is(r rune) bool { return in.Key == KeyRune && in.Rune == r }

// direction maps arrows and vi keys to a cardinal step.
func (in Input) direction() (dx, dy int, ok bool) {
	switch in.Key {
	case KeyUp:
		return 0, -1, true
	case KeyDown:
		return 0, 1, true
	case KeyLeft:
		return -1, 0, true
	case KeyRight:
		return 1, 0, true
	case KeyRune:
		switch in.Rune {
		case 'k':
			return 0, -1, true
		case 'j':
			return 0, 1, true
		case 'h':
			return -1, 0, true
		case 'l':
			return 1, 0, true
		}
	}
	return 0, 0, false
}

// letter returns the menu index of a lower-case letter key.
func (in Input) letter() (int, bool) {
	if in.Key != KeyRune || in.Rune < 'a' || in.Rune > 'z' {
		return 0, false
	}
	return int(in.Rune - 'a'), true
}
