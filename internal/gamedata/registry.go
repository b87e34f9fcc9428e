package gamedata

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/multierr"
)

// MonsterRegistry holds loaded monster definitions and provides spawning utilities.
type MonsterRegistry struct {
	monsters    []MonsterDef
	totalWeight int
}

// NewMonsterRegistry creates a registry from loaded monster definitions.
func NewMonsterRegistry(monsters []MonsterDef) *MonsterRegistry {
	totalWeight := 0
	for _, m := range monsters {
		totalWeight += m.SpawnWeight
	}
	return &MonsterRegistry{
		monsters:    monsters,
		totalWeight: totalWeight,
	}
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*MonsterRegistry, error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	return NewMonsterRegistry(monsters), nil
}

// SpawnRandom selects a random monster definition using weighted probability.
// Monsters with higher spawnWeight are more likely to be selected.
func (r *MonsterRegistry) SpawnRandom(rng *rand.Rand) *MonsterDef {
	i := weightedPick(rng, len(r.monsters), r.totalWeight, func(i int) int { return r.monsters[i].SpawnWeight })
	if i < 0 {
		return nil
	}
	return &r.monsters[i]
}

// GetByID returns the monster definition with the given ID, or nil if not found.
func (r *MonsterRegistry) GetByID(id string) *MonsterDef {
	for i := range r.monsters {
		if r.monsters[i].ID == id {
			return &r.monsters[i]
		}
	}
	return nil
}

// All returns all monster definitions.
func (r *MonsterRegistry) All() []MonsterDef {
	return r.monsters
}

// Count returns the number of monster types in the registry.
func (r *MonsterRegistry) Count() int {
	return len(r.monsters)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry holds loaded item definitions and provides lookup and spawning.
type ItemRegistry struct {
	items       map[string]*ItemDef
	all         []ItemDef
	totalWeight int
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
		registry.totalWeight += items[i].SpawnWeight
	}
	return registry
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return NewItemRegistry(items), nil
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// SpawnRandom selects a random item definition using weighted probability.
// Items with zero weight are never chosen.
func (r *ItemRegistry) SpawnRandom(rng *rand.Rand) *ItemDef {
	i := weightedPick(rng, len(r.all), r.totalWeight, func(i int) int { return r.all[i].SpawnWeight })
	if i < 0 {
		return nil
	}
	return &r.all[i]
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Count returns the number of items in the registry.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}

func weightedPick(rng *rand.Rand, n, totalWeight int, weight func(int) int) int {
	if totalWeight <= 0 || n == 0 {
		return -1
	}

	// Pick a random value in the total weight range
	roll := rng.Intn(totalWeight)

	cumulative := 0
	for i := 0; i < n; i++ {
		cumulative += weight(i)
		if roll < cumulative {
			return i
		}
	}
	return 0
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog bundles every embedded definition the spawners need.
type Catalog struct {
	Monsters *MonsterRegistry
	Items    *ItemRegistry
	Player   PlayerDef
}

// LoadCatalog loads all embedded data and checks cross references.
func LoadCatalog() (*Catalog, error) {
	monsters, err := LoadMonsterRegistry()
	if err != nil {
		return nil, err
	}
	items, err := LoadItemRegistry()
	if err != nil {
		return nil, err
	}
	player, err := LoadPlayer()
	if err != nil {
		return nil, err
	}
	c := &Catalog{Monsters: monsters, Items: items, Player: player}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every item ID the player definition references but the
// item table lacks.
func (c *Catalog) Validate() error {
	var err error
	for _, id := range c.Player.Backpack {
		if c.Items.GetByID(id) == nil {
			err = multierr.Append(err, fmt.Errorf("player backpack: unknown item %q", id))
		}
	}
	for _, id := range c.Player.FloorItems {
		if c.Items.GetByID(id) == nil {
			err = multierr.Append(err, fmt.Errorf("player floor items: unknown item %q", id))
		}
	}
	if c.Player.HP <= 0 {
		err = multierr.Append(err, fmt.Errorf("player hp must be positive, got %d", c.Player.HP))
	}
	return err
}
