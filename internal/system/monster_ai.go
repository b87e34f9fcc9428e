package system

import (
	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/world"
)

// meleeReach is the distance under which a monster attacks instead of moving.
const meleeReach = 1.5

// MonsterAI decides what each monster does on the monster turn: wait out
// confusion, attack when adjacent to a visible player, or step toward them.
type MonsterAI struct{}

func (MonsterAI) Name() string { return "monster_ai" }
func (MonsterAI) Phase() Phase { return PhaseDecision }

func (MonsterAI) Run(sc *sim.Context) error {
	if !sc.State.Is(sim.MonsterTurn) {
		return nil
	}
	player, err := sc.PlayerEntity()
	if err != nil {
		return err
	}
	playerPos, err := sc.PlayerPosition()
	if err != nil {
		return err
	}

	for r := range ecs.Join3(sc.C.Monster, sc.C.Viewshed, sc.C.Position) {
		monster, vs, pos := r.Entity, r.B, r.C

		if conf, ok := sc.C.Confusion.Get(monster); ok {
			sc.Logger.Debug("monster confused",
				zap.String("name", sc.C.NameOf(monster)),
				zap.Int("turns", conf.Turns))
			conf.Turns--
			if conf.Turns <= 0 {
				sc.C.Confusion.Remove(monster)
			}
			continue
		}
		if !vs.Sees(playerPos) {
			continue
		}

		here := pos.Point()
		if world.Distance(here, playerPos) < meleeReach {
			sc.C.WantsToMelee.Insert(monster, component.WantsToMelee{Target: player})
			if sc.Rules.SingleAttackerPerTurn {
				return nil
			}
			continue
		}

		path, ok := world.FindPath(sc.Map, here, playerPos)
		if !ok || len(path) <= 1 {
			continue
		}
		next := path[1]
		sc.Map.SetBlocked(here, false)
		pos.X, pos.Y = next.X, next.Y
		sc.Map.SetBlocked(next, true)
		vs.Dirty = true
	}
	return nil
}
