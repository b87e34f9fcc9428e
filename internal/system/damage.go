package system

import (
	"github.com/samdwyer/deepdelve/internal/combat"
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/sim"
)

// Damage drains every SufferDamage accumulator into hp.
type Damage struct{}

func (Damage) Name() string { return "damage" }
func (Damage) Phase() Phase { return PhaseCombat }

func (Damage) Run(sc *sim.Context) error {
	for r := range ecs.Join2(sc.C.CombatStats, sc.C.SufferDamage) {
		combat.ApplyDamage(r.A, r.B.Amounts)
	}
	sc.C.SufferDamage.Clear()
	return nil
}
