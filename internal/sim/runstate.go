package sim

import "github.com/samdwyer/deepdelve/internal/ecs"

// RunKind enumerates the in-game turn states.
type RunKind int

const (
	PreRun RunKind = iota
	AwaitingInput
	PlayerTurn
	MonsterTurn
	ShowInventory
	ShowDropItem
	ShowTargeting
	ShowMenu
	NextLevel
	GameOver
)

// String returns the human-readable name of the state.
func (k RunKind) String() string {
	switch k {
	case PreRun:
		return "PreRun"
	case AwaitingInput:
		return "AwaitingInput"
	case PlayerTurn:
		return "PlayerTurn"
	case MonsterTurn:
		return "MonsterTurn"
	case ShowInventory:
		return "ShowInventory"
	case ShowDropItem:
		return "ShowDropItem"
	case ShowTargeting:
		return "ShowTargeting"
	case ShowMenu:
		return "ShowMenu"
	case NextLevel:
		return "NextLevel"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// RunState is the current turn state. Range and Item are only set for
// ShowTargeting.
type RunState struct {
	Kind  RunKind
	Range int
	Item  ecs.Entity
}

// Is reports whether the state has kind k.
func (s RunState) Is(k RunKind) bool { return s.Kind == k }

func (s RunState) String() string { return s.Kind.String() }

// Targeting builds a ShowTargeting state.
func Targeting(rng int, item ecs.Entity) RunState {
	return RunState{Kind: ShowTargeting, Range: rng, Item: item}
}
