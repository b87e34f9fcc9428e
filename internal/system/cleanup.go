package system

import "github.com/samdwyer/deepdelve/internal/sim"

// Cleanup deletes every entity tagged ToDelete and applies the deletions
// before any later system runs.
type Cleanup struct{}

func (Cleanup) Name() string { return "cleanup" }
func (Cleanup) Phase() Phase { return PhaseCleanup }

func (Cleanup) Run(sc *sim.Context) error {
	marked := sc.C.ToDelete.Entities()
	if len(marked) == 0 {
		return nil
	}
	for _, e := range marked {
		sc.World.Delete(e)
	}
	sc.World.Maintain()
	return nil
}
