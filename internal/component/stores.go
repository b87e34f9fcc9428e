package component

import (
	"github.com/samdwyer/deepdelve/internal/ecs"
)

// Stores is the fixed registry of typed component tables for one world.
type Stores struct {
	Position    *ecs.Store[Position]
	Renderable  *ecs.Store[Renderable]
	Viewshed    *ecs.Store[Viewshed]
	Name        *ecs.Store[Name]
	CombatStats *ecs.Store[CombatStats]

	Player      *ecs.Store[Player]
	Monster     *ecs.Store[Monster]
	BlockedTile *ecs.Store[BlockedTile]
	Item        *ecs.Store[Item]
	Consumable  *ecs.Store[Consumable]
	ToDelete    *ecs.Store[ToDelete]
	Persistent  *ecs.Store[Persistent]

	ProvidesHealing *ecs.Store[ProvidesHealing]
	InflictsDamage  *ecs.Store[InflictsDamage]
	AreaOfEffect    *ecs.Store[AreaOfEffect]
	Confusion       *ecs.Store[Confusion]
	Ranged          *ecs.Store[Ranged]

	WantsToMelee    *ecs.Store[WantsToMelee]
	WantsToPickUp   *ecs.Store[WantsToPickUp]
	WantsToUseItem  *ecs.Store[WantsToUseItem]
	WantsToDropItem *ecs.Store[WantsToDropItem]

	SufferDamage *ecs.Store[SufferDamage]
	InBackpack   *ecs.Store[InBackpack]
	MapCarrier   *ecs.Store[MapCarrier]
}

// NewStores registers every component table with w.
func NewStores(w *ecs.World) *Stores {
	return &Stores{
		Position:    ecs.Register[Position](w, "position"),
		Renderable:  ecs.Register[Renderable](w, "renderable"),
		Viewshed:    ecs.Register[Viewshed](w, "viewshed"),
		Name:        ecs.Register[Name](w, "name"),
		CombatStats: ecs.Register[CombatStats](w, "combat_stats"),

		Player:      ecs.Register[Player](w, "player"),
		Monster:     ecs.Register[Monster](w, "monster"),
		BlockedTile: ecs.Register[BlockedTile](w, "blocked_tile"),
		Item:        ecs.Register[Item](w, "item"),
		Consumable:  ecs.Register[Consumable](w, "consumable"),
		ToDelete:    ecs.Register[ToDelete](w, "to_delete"),
		Persistent:  ecs.Register[Persistent](w, "persistent"),

		ProvidesHealing: ecs.Register[ProvidesHealing](w, "provides_healing"),
		InflictsDamage:  ecs.Register[InflictsDamage](w, "inflicts_damage"),
		AreaOfEffect:    ecs.Register[AreaOfEffect](w, "area_of_effect"),
		Confusion:       ecs.Register[Confusion](w, "confusion"),
		Ranged:          ecs.Register[Ranged](w, "ranged"),

		WantsToMelee:    ecs.Register[WantsToMelee](w, "wants_to_melee"),
		WantsToPickUp:   ecs.Register[WantsToPickUp](w, "wants_to_pick_up"),
		WantsToUseItem:  ecs.Register[WantsToUseItem](w, "wants_to_use_item"),
		WantsToDropItem: ecs.Register[WantsToDropItem](w, "wants_to_drop_item"),

		SufferDamage: ecs.Register[SufferDamage](w, "suffer_damage"),
		InBackpack:   ecs.Register[InBackpack](w, "in_backpack"),
		MapCarrier:   ecs.Register[MapCarrier](w, "map_carrier"),
	}
}

// NameOf returns the entity's name, or "Unnamed".
func (c *Stores) NameOf(e ecs.Entity) string {
	if n, ok := c.Name.Get(e); ok && n.Text != "" {
		return n.Text
	}
	return "Unnamed"
}

// AddDamage appends one hit to e's damage accumulator.
func (c *Stores) AddDamage(e ecs.Entity, amount int) {
	if sd, ok := c.SufferDamage.Get(e); ok {
		sd.Amounts = append(sd.Amounts, amount)
		return
	}
	c.SufferDamage.Insert(e, SufferDamage{Amounts: []int{amount}})
}

// Backpack returns the items carried by owner in storage order.
func (c *Stores) Backpack(owner ecs.Entity) []ecs.Entity {
	var items []ecs.Entity
	for e, bp := range c.InBackpack.All() {
		if bp.Owner == owner {
			items = append(items, e)
		}
	}
	return items
}
