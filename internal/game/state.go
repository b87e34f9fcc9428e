// Package game provides the top-level application state machine, the in-run
// turn sequencing and the read model handed to the renderer.
package game

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// Application states.
const (
	StateMainMenu = "main_menu"
	StateInGame   = "in_game"
	StateSaving   = "saving"
	StateLoading  = "loading"
	StateQuit     = "quit"
)

const (
	eventNewGame    = "new_game"
	eventContinue   = "continue"
	eventLoad       = "load"
	eventSave       = "save"
	eventQuit       = "quit"
	eventPause      = "pause"
	eventSaved      = "saved"
	eventLoaded     = "loaded"
	eventLoadFailed = "load_failed"
)

func newAppState(logger *zap.Logger) *fsm.FSM {
	return fsm.NewFSM(
		StateMainMenu,
		fsm.Events{
			{Name: eventNewGame, Src: []string{StateMainMenu}, Dst: StateInGame},
			{Name: eventContinue, Src: []string{StateMainMenu}, Dst: StateInGame},
			{Name: eventLoad, Src: []string{StateMainMenu}, Dst: StateLoading},
			{Name: eventSave, Src: []string{StateMainMenu}, Dst: StateSaving},
			{Name: eventQuit, Src: []string{StateMainMenu}, Dst: StateQuit},
			{Name: eventPause, Src: []string{StateInGame}, Dst: StateMainMenu},
			{Name: eventSaved, Src: []string{StateSaving}, Dst: StateInGame},
			{Name: eventLoaded, Src: []string{StateLoading}, Dst: StateInGame},
			{Name: eventLoadFailed, Src: []string{StateLoading}, Dst: StateMainMenu},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("app state",
					zap.String("event", e.Event),
					zap.String("from", e.Src),
					zap.String("to", e.Dst))
			},
		},
	)
}

// fire applies an AppState event.
func (g *Game) fire(ctx context.Context, event string) error {
	if err := g.app.Event(ctx, event); err != nil {
		return fmt.Errorf("app state %s on %s: %w", g.app.Current(), event, err)
	}
	return nil
}

// MenuOption is an entry of the main or pause menu.
type MenuOption int

const (
	OptionNew MenuOption = iota
	OptionContinue
	OptionLoad
	OptionSave
	OptionQuit
)

// String returns a human-readable option label.
func (o MenuOption) String() string {
	switch o {
	case OptionNew:
		return "New Game"
	case OptionContinue:
		return "Continue"
	case OptionLoad:
		return "Load Game"
	case OptionSave:
		return "Save Game"
	case OptionQuit:
		return "Quit"
	default:
		return "unknown"
	}
}

// Menu is the item list of the MainMenu state.
type Menu struct {
	Items  []MenuOption
	Cursor int
}

func mainMenu() Menu {
	return Menu{Items: []MenuOption{OptionNew, OptionLoad, OptionQuit}}
}

func pauseMenu() Menu {
	return Menu{Items: []MenuOption{OptionContinue, OptionSave, OptionLoad, OptionQuit}}
}

// paused reports whether the menu was opened from a running game.
func (m *Menu) paused() bool {
	for _, o := range m.Items {
		if o == OptionContinue {
			return true
		}
	}
	return false
}

// handle moves the cursor or returns the chosen option. Up and Down wrap,
// Enter picks the highlighted entry and letters pick directly. Escape quits
// from the main menu and resumes from the pause menu.
func (m *Menu) handle(in Input) (MenuOption, bool) {
	n := len(m.Items)
	if n == 0 {
		return 0, false
	}
	switch in.Key {
	case KeyUp:
		m.Cursor = (m.Cursor + n - 1) % n
	case KeyDown:
		m.Cursor = (m.Cursor + 1) % n
	case KeyEnter:
		return m.Items[m.Cursor], true
	case KeyEscape:
		if m.paused() {
			return OptionContinue, true
		}
		return OptionQuit, true
	}
	if idx, ok := in.letter(); ok && idx < n {
		m.Cursor = idx
		return m.Items[idx], true
	}
	return 0, false
}
