package system

import (
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Visibility recomputes dirty viewsheds. The player's viewshed also drives
// the map's visible and revealed flags.
type Visibility struct{}

func (Visibility) Name() string { return "visibility" }
func (Visibility) Phase() Phase { return PhasePerception }

func (Visibility) Run(sc *sim.Context) error {
	for r := range ecs.Join2(sc.C.Viewshed, sc.C.Position) {
		vs, pos := r.A, r.B
		if !vs.Dirty {
			continue
		}
		vs.Visible = world.FieldOfView(sc.Map, pos.Point(), vs.Range)
		vs.Dirty = false

		if !sc.C.Player.Has(r.Entity) {
			continue
		}
		sc.Map.ClearVisible()
		vs.Visible.Each(func(p world.Point) {
			sc.Map.Reveal(p)
		})
	}
	return nil
}
