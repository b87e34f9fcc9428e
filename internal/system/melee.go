package system

import (
	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/combat"
	"github.com/samdwyer/deepdelve/internal/sim"
)

// Melee turns attack intents into damage.
type Melee struct{}

func (Melee) Name() string { return "melee" }
func (Melee) Phase() Phase { return PhaseCombat }

func (Melee) Run(sc *sim.Context) error {
	defer sc.C.WantsToMelee.Clear()

	for attacker, want := range sc.C.WantsToMelee.All() {
		stats, ok := sc.C.CombatStats.Get(attacker)
		if !ok || stats.HP <= 0 {
			continue
		}
		target, ok := sc.C.CombatStats.Get(want.Target)
		if !ok {
			sc.Logger.Warn("melee target has no combat stats",
				zap.Stringer("attacker", attacker),
				zap.Stringer("target", want.Target))
			continue
		}
		if target.HP <= 0 {
			continue
		}

		name, targetName := sc.C.NameOf(attacker), sc.C.NameOf(want.Target)
		damage := combat.MeleeDamage(*stats, *target)
		if damage < 1 {
			sc.Log.Addf("%s is unable to hurt %s", name, targetName)
			continue
		}
		sc.C.AddDamage(want.Target, damage)
		sc.Log.Addf("%s hits %s, for %d hp", name, targetName, damage)
	}
	return nil
}
