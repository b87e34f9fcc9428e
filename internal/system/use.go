package system

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/combat"
	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Use resolves item use intents: healing, then damage, then confusion over
// the affected set, followed by consumable and marker cleanup.
type Use struct{}

func (Use) Name() string { return "use" }
func (Use) Phase() Phase { return PhaseItems }

func (Use) Run(sc *sim.Context) error {
	defer sc.C.WantsToUseItem.Clear()

	for user, want := range sc.C.WantsToUseItem.All() {
		item := want.Item
		if !sc.World.Alive(item) {
			continue
		}
		u := itemUse{
			sc:       sc,
			user:     user,
			item:     item,
			itemName: sc.C.NameOf(item),
			byPlayer: sc.IsPlayer(user),
		}
		if at, ok := targetPoint(sc, user, want.Target); ok {
			u.affected = affectedEntities(sc, item, at)
		} else {
			sc.Logger.Warn("use target has no position",
				zap.Stringer("user", user),
				zap.Stringer("target_kind", want.Target.Kind))
		}

		u.heal()
		u.damage()
		u.confuse()

		if sc.C.Consumable.Has(item) {
			sc.World.Delete(item)
		}
		if want.Target.Kind == component.TargetEntity && !sc.C.CombatStats.Has(want.Target.Entity) {
			sc.World.Delete(want.Target.Entity)
		}
	}
	return nil
}

type itemUse struct {
	sc       *sim.Context
	user     ecs.Entity
	item     ecs.Entity
	itemName string
	byPlayer bool
	affected []ecs.Entity
}

func (u *itemUse) heal() {
	healing, ok := u.sc.C.ProvidesHealing.Get(u.item)
	if !ok {
		return
	}
	for _, e := range u.affected {
		stats, ok := u.sc.C.CombatStats.Get(e)
		if !ok {
			continue
		}
		healed := combat.Heal(stats, healing.Amount)
		if u.byPlayer {
			u.sc.Log.Addf("You consume the %s to heal %s for %d", u.itemName, u.sc.C.NameOf(e), healed)
		}
	}
}

func (u *itemUse) damage() {
	dmg, ok := u.sc.C.InflictsDamage.Get(u.item)
	if !ok {
		return
	}
	for _, e := range u.affected {
		if e == u.user {
			continue
		}
		u.sc.C.AddDamage(e, dmg.Amount)
		if u.byPlayer {
			u.sc.Log.Addf("You use %s on %s inflicting %d hp", u.itemName, u.sc.C.NameOf(e), dmg.Amount)
		}
	}
}

func (u *itemUse) confuse() {
	conf, ok := u.sc.C.Confusion.Get(u.item)
	if !ok {
		return
	}
	turns := conf.Turns
	for _, e := range u.affected {
		if e == u.user {
			continue
		}
		u.sc.C.Confusion.Insert(e, component.Confusion{Turns: turns})
		if u.byPlayer {
			u.sc.Log.Addf("You use %s on %s confusing them for %d turns", u.itemName, u.sc.C.NameOf(e), turns)
		}
	}
}

// targetPoint resolves where a use intent is aimed.
func targetPoint(sc *sim.Context, user ecs.Entity, t component.Target) (world.Point, bool) {
	switch t.Kind {
	case component.TargetPosition:
		return t.Point, sc.Map.InBounds(t.Point)
	case component.TargetEntity:
		if pos, ok := sc.C.Position.Get(t.Entity); ok {
			return pos.Point(), true
		}
		return world.Point{}, false
	default:
		if pos, ok := sc.C.Position.Get(user); ok {
			return pos.Point(), true
		}
		return world.Point{}, false
	}
}

// affectedEntities returns the combat-capable occupants hit by item at p.
// Area items cover every tile in view of p within their radius, caster
// included.
func affectedEntities(sc *sim.Context, item ecs.Entity, p world.Point) []ecs.Entity {
	aoe, ok := sc.C.AreaOfEffect.Get(item)
	if !ok {
		return combatOccupants(sc, p, nil)
	}

	var tiles []world.Point
	world.FieldOfView(sc.Map, p, aoe.Radius).Each(func(t world.Point) {
		tiles = append(tiles, t)
	})
	slices.SortFunc(tiles, func(a, b world.Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	seen := mapset.New[ecs.Entity]()
	var out []ecs.Entity
	for _, t := range tiles {
		for _, e := range combatOccupants(sc, t, nil) {
			if !seen.Has(e) {
				seen.Put(e)
				out = append(out, e)
			}
		}
	}
	return out
}

func combatOccupants(sc *sim.Context, p world.Point, out []ecs.Entity) []ecs.Entity {
	for _, e := range sc.Map.Occupants(p) {
		if sc.World.Alive(e) && sc.C.CombatStats.Has(e) {
			out = append(out, e)
		}
	}
	return out
}
