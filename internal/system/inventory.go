package system

import (
	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/sim"
)

// Pickup moves floor items into the picker's backpack.
type Pickup struct{}

func (Pickup) Name() string { return "pickup" }
func (Pickup) Phase() Phase { return PhaseItems }

func (Pickup) Run(sc *sim.Context) error {
	defer sc.C.WantsToPickUp.Clear()

	for picker, want := range sc.C.WantsToPickUp.All() {
		if !sc.World.Alive(want.Item) {
			continue
		}
		sc.C.Position.Remove(want.Item)
		sc.C.InBackpack.Insert(want.Item, component.InBackpack{Owner: picker})
		if sc.IsPlayer(picker) {
			sc.Log.Addf("You picked up the %s", sc.C.NameOf(want.Item))
		}
	}
	return nil
}

// Drop puts carried items back on the floor under their owner.
type Drop struct{}

func (Drop) Name() string { return "drop" }
func (Drop) Phase() Phase { return PhaseItems }

func (Drop) Run(sc *sim.Context) error {
	defer sc.C.WantsToDropItem.Clear()

	for dropper, want := range sc.C.WantsToDropItem.All() {
		pos, ok := sc.C.Position.Get(dropper)
		if !ok {
			sc.Logger.Warn("dropper has no position",
				zap.Stringer("dropper", dropper),
				zap.Stringer("item", want.Item))
			continue
		}
		sc.C.Position.Insert(want.Item, *pos)
		sc.C.InBackpack.Remove(want.Item)
		if sc.IsPlayer(dropper) {
			sc.Log.Addf("You dropped the %s", sc.C.NameOf(want.Item))
		}
	}
	return nil
}
