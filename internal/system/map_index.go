package system

import "github.com/samdwyer/deepdelve/internal/sim"

// MapIndex rebuilds the blocked grid and the per-tile occupant lists from
// current positions.
type MapIndex struct{}

func (MapIndex) Name() string { return "map_index" }
func (MapIndex) Phase() Phase { return PhaseIndex }

func (MapIndex) Run(sc *sim.Context) error {
	m := sc.Map
	m.PopulateBlocked()
	m.ClearOccupants()

	for e, pos := range sc.C.Position.All() {
		if !sc.World.Alive(e) {
			continue
		}
		p := pos.Point()
		if sc.C.BlockedTile.Has(e) {
			m.SetBlocked(p, true)
		}
		m.AddOccupant(p, e)
	}
	return nil
}
