// Package system holds the per-turn simulation systems and the runner that
// executes them in a fixed order.
package system

import "github.com/samdwyer/deepdelve/internal/sim"

// Phase defines execution ordering within a single tick. Systems sharing a
// phase run in registration order.
type Phase int

const (
	PhaseCleanup    Phase = iota // 0: drop entities marked ToDelete
	PhasePerception              // 1: viewsheds, revealed tiles
	PhaseDecision                // 2: monster intents and movement
	PhaseCombat                  // 3: melee, damage
	PhaseItems                   // 4: pickup, use, drop
	PhaseIndex                   // 5: blocked grid, occupants
)

func (p Phase) String() string {
	switch p {
	case PhaseCleanup:
		return "cleanup"
	case PhasePerception:
		return "perception"
	case PhaseDecision:
		return "decision"
	case PhaseCombat:
		return "combat"
	case PhaseItems:
		return "items"
	case PhaseIndex:
		return "index"
	default:
		return "unknown"
	}
}

// System is the interface every pipeline stage implements.
type System interface {
	Name() string
	Phase() Phase
	Run(sc *sim.Context) error
}
