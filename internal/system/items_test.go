package system

import (
	"testing"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/world"
)

func TestPickupAndDrop(t *testing.T) {
	sc := newScene(t, 9, 5)
	at := world.Point{X: 3, Y: 2}
	p := addPlayer(sc, at, stats(30, 2, 5))
	potion := sc.World.Create()
	sc.C.Item.Insert(potion, component.Item{})
	sc.C.Name.Insert(potion, component.Name{Text: "Health Potion"})
	sc.C.Position.Insert(potion, component.At(at))

	sc.C.WantsToPickUp.Insert(p, component.WantsToPickUp{Item: potion})
	run(t, sc, Pickup{})

	if sc.C.Position.Has(potion) {
		t.Error("picked up item still on the floor")
	}
	if bp, ok := sc.C.InBackpack.Get(potion); !ok || bp.Owner != p {
		t.Errorf("InBackpack = %+v, %v", bp, ok)
	}
	if got, want := sc.Log.Last(), "You picked up the Health Potion"; got != want {
		t.Errorf("Last() = %q, want %q", got, want)
	}
	if sc.C.WantsToPickUp.Len() != 0 {
		t.Error("pickup intents not cleared")
	}

	pos, _ := sc.C.Position.Get(p)
	pos.X = 5
	sc.C.WantsToDropItem.Insert(p, component.WantsToDropItem{Item: potion})
	run(t, sc, Drop{})

	if sc.C.InBackpack.Has(potion) {
		t.Error("dropped item still in backpack")
	}
	if got, ok := sc.C.Position.Get(potion); !ok || got.Point() != (world.Point{X: 5, Y: 2}) {
		t.Errorf("dropped item at %+v, want the player's tile", got)
	}
	if got, want := sc.Log.Last(), "You dropped the Health Potion"; got != want {
		t.Errorf("Last() = %q, want %q", got, want)
	}
}

func TestMonsterPickupIsSilent(t *testing.T) {
	sc := newScene(t, 9, 5)
	addPlayer(sc, world.Point{X: 1, Y: 1}, stats(30, 2, 5))
	g := addMonster(sc, "Goblin", world.Point{X: 3, Y: 2}, stats(16, 1, 4))
	item := sc.World.Create()
	sc.C.Position.Insert(item, component.Position{X: 3, Y: 2})

	sc.C.WantsToPickUp.Insert(g, component.WantsToPickUp{Item: item})
	run(t, sc, Pickup{})

	if !sc.C.InBackpack.Has(item) {
		t.Error("monster did not pick up the item")
	}
	if sc.Log.Len() != 0 {
		t.Errorf("log = %v, want nothing for monster pickups", sc.Log.Entries())
	}
}

func TestUseHealingCappedAtMax(t *testing.T) {
	sc := newScene(t, 9, 5)
	p := addPlayer(sc, world.Point{X: 2, Y: 2}, stats(30, 2, 5))
	st, _ := sc.C.CombatStats.Get(p)
	st.HP = 28
	potion := addItem(sc, "Health Potion", p)
	sc.C.ProvidesHealing.Insert(potion, component.ProvidesHealing{Amount: 8})
	run(t, sc, MapIndex{})

	sc.C.WantsToUseItem.Insert(p, component.WantsToUseItem{Item: potion, Target: component.SelfTarget()})
	run(t, sc, Use{})

	if st, _ := sc.C.CombatStats.Get(p); st.HP != 30 {
		t.Errorf("HP = %d, want 30", st.HP)
	}
	if got, want := sc.Log.Last(), "You consume the Health Potion to heal Player for 2"; got != want {
		t.Errorf("Last() = %q, want %q", got, want)
	}
	if sc.World.Alive(potion) || sc.C.InBackpack.Has(potion) {
		t.Error("consumable not deleted after use")
	}
	if sc.C.WantsToUseItem.Len() != 0 {
		t.Error("use intents not cleared")
	}
}

func TestUseHealingAtFullHealthStillLogs(t *testing.T) {
	sc := newScene(t, 9, 5)
	p := addPlayer(sc, world.Point{X: 2, Y: 2}, stats(30, 2, 5))
	potion := addItem(sc, "Health Potion", p)
	sc.C.ProvidesHealing.Insert(potion, component.ProvidesHealing{Amount: 8})
	run(t, sc, MapIndex{})

	sc.C.WantsToUseItem.Insert(p, component.WantsToUseItem{Item: potion, Target: component.SelfTarget()})
	run(t, sc, Use{})

	if got, want := sc.Log.Last(), "You consume the Health Potion to heal Player for 0"; got != want {
		t.Errorf("Last() = %q, want %q", got, want)
	}
}

func TestUseAreaDamageSparesUser(t *testing.T) {
	sc := newScene(t, 12, 7)
	p := addPlayer(sc, world.Point{X: 3, Y: 3}, stats(30, 2, 5))
	near := addMonster(sc, "Goblin", world.Point{X: 4, Y: 3}, stats(16, 1, 4))
	edge := addMonster(sc, "Orc", world.Point{X: 3, Y: 5}, stats(16, 1, 4))
	far := addMonster(sc, "Orc", world.Point{X: 10, Y: 3}, stats(16, 1, 4))
	scroll := addItem(sc, "Fireball Scroll", p)
	sc.C.InflictsDamage.Insert(scroll, component.InflictsDamage{Amount: 20})
	sc.C.AreaOfEffect.Insert(scroll, component.AreaOfEffect{Radius: 3})
	sc.C.Ranged.Insert(scroll, component.Ranged{Range: 6})
	run(t, sc, MapIndex{})

	sc.C.WantsToUseItem.Insert(p, component.WantsToUseItem{
		Item:   scroll,
		Target: component.PositionTarget(world.Point{X: 3, Y: 3}),
	})
	run(t, sc, Use{})

	if sc.C.SufferDamage.Has(p) {
		t.Error("caster damaged by own fireball")
	}
	if sd, ok := sc.C.SufferDamage.Get(near); !ok || sd.Amounts[0] != 20 {
		t.Errorf("adjacent monster SufferDamage = %+v, %v", sd, ok)
	}
	if !sc.C.SufferDamage.Has(edge) {
		t.Error("monster inside the radius was missed")
	}
	if sc.C.SufferDamage.Has(far) {
		t.Error("monster outside the radius was hit")
	}
	if got, want := sc.Log.Len(), 2; got != want {
		t.Errorf("log has %d entries, want %d: %v", got, want, sc.Log.Entries())
	}
}

func TestUseAreaHitsAllies(t *testing.T) {
	sc := newScene(t, 12, 7)
	p := addPlayer(sc, world.Point{X: 2, Y: 3}, stats(30, 2, 5))
	caster := addMonster(sc, "Goblin Shaman", world.Point{X: 6, Y: 3}, stats(16, 1, 4))
	ally := addMonster(sc, "Goblin", world.Point{X: 7, Y: 3}, stats(16, 1, 4))
	scroll := addItem(sc, "Fireball Scroll", caster)
	sc.C.InflictsDamage.Insert(scroll, component.InflictsDamage{Amount: 20})
	sc.C.AreaOfEffect.Insert(scroll, component.AreaOfEffect{Radius: 3})
	run(t, sc, MapIndex{})

	sc.C.WantsToUseItem.Insert(caster, component.WantsToUseItem{
		Item:   scroll,
		Target: component.EntityTarget(caster),
	})
	run(t, sc, Use{})

	if sc.C.SufferDamage.Has(caster) {
		t.Error("caster damaged by own spell")
	}
	if !sc.C.SufferDamage.Has(ally) {
		t.Error("area damage should not spare the caster's allies")
	}
	if sc.C.SufferDamage.Has(p) {
		t.Error("player outside the radius was hit")
	}
	if sc.Log.Len() != 0 {
		t.Errorf("monster item use logged %v", sc.Log.Entries())
	}
}

func TestUseConfusion(t *testing.T) {
	sc := newScene(t, 12, 7)
	p := addPlayer(sc, world.Point{X: 2, Y: 3}, stats(30, 2, 5))
	orc := addMonster(sc, "Orc", world.Point{X: 6, Y: 3}, stats(16, 1, 4))
	scroll := addItem(sc, "Confusion Scroll", p)
	sc.C.Confusion.Insert(scroll, component.Confusion{Turns: 4})
	sc.C.Ranged.Insert(scroll, component.Ranged{Range: 6})
	run(t, sc, MapIndex{})

	sc.C.WantsToUseItem.Insert(p, component.WantsToUseItem{
		Item:   scroll,
		Target: component.PositionTarget(world.Point{X: 6, Y: 3}),
	})
	run(t, sc, Use{})

	if conf, ok := sc.C.Confusion.Get(orc); !ok || conf.Turns != 4 {
		t.Errorf("Confusion = %+v, %v; want 4 turns", conf, ok)
	}
	if got, want := sc.Log.Last(), "You use Confusion Scroll on Orc confusing them for 4 turns"; got != want {
		t.Errorf("Last() = %q, want %q", got, want)
	}
}

func TestUseDeletesMarkerTarget(t *testing.T) {
	sc := newScene(t, 12, 7)
	p := addPlayer(sc, world.Point{X: 2, Y: 3}, stats(30, 2, 5))
	orc := addMonster(sc, "Orc", world.Point{X: 6, Y: 3}, stats(16, 1, 4))
	marker := sc.World.Create()
	sc.C.Position.Insert(marker, component.Position{X: 6, Y: 3})
	scroll := addItem(sc, "Magic Missile Scroll", p)
	sc.C.InflictsDamage.Insert(scroll, component.InflictsDamage{Amount: 8})
	run(t, sc, MapIndex{})

	sc.C.WantsToUseItem.Insert(p, component.WantsToUseItem{Item: scroll, Target: component.EntityTarget(marker)})
	run(t, sc, Use{})

	if sc.World.Alive(marker) {
		t.Error("marker target should be deleted after use")
	}
	if sd, ok := sc.C.SufferDamage.Get(orc); !ok || sd.Amounts[0] != 8 {
		t.Errorf("orc SufferDamage = %+v, %v", sd, ok)
	}
	if got, want := sc.Log.Last(), "You use Magic Missile Scroll on Orc inflicting 8 hp"; got != want {
		t.Errorf("Last() = %q, want %q", got, want)
	}
}

func TestUseKeepsReusableItems(t *testing.T) {
	sc := newScene(t, 9, 5)
	p := addPlayer(sc, world.Point{X: 2, Y: 2}, stats(30, 2, 5))
	wand := addItem(sc, "Wand", p)
	sc.C.Consumable.Remove(wand)
	sc.C.InflictsDamage.Insert(wand, component.InflictsDamage{Amount: 1})
	run(t, sc, MapIndex{})

	sc.C.WantsToUseItem.Insert(p, component.WantsToUseItem{Item: wand, Target: component.SelfTarget()})
	run(t, sc, Use{})

	if !sc.World.Alive(wand) {
		t.Error("non-consumable item deleted")
	}
	if !sc.World.Alive(p) {
		t.Error("self target with combat stats must not be deleted")
	}
	if sc.C.SufferDamage.Has(p) {
		t.Error("user damaged by own item")
	}
}
