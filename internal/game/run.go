package game

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/world"
)

// tickRun advances the in-game turn state by one step.
func (g *Game) tickRun(ctx context.Context, in Input) error {
	sc := g.sc
	switch sc.State.Kind {
	case sim.PreRun, sim.MonsterTurn:
		return g.simulate(ctx, sim.AwaitingInput)
	case sim.PlayerTurn:
		return g.simulate(ctx, sim.MonsterTurn)
	case sim.AwaitingInput:
		next, err := g.playerInput(in)
		if err != nil {
			return err
		}
		sc.State = next
	case sim.ShowInventory:
		g.inventoryMenu(in)
	case sim.ShowDropItem:
		g.dropMenu(in)
	case sim.ShowTargeting:
		return g.targeting(in)
	case sim.ShowMenu:
		g.menu = pauseMenu()
		sc.State = sim.RunState{Kind: sim.PreRun}
		return g.fire(ctx, eventPause)
	case sim.NextLevel:
		return g.nextLevel(ctx)
	case sim.GameOver:
		if in.Key == KeyEscape {
			g.menu = mainMenu()
			return g.fire(ctx, eventPause)
		}
	}
	return nil
}

// simulate runs the system pipeline, removes the dead and moves on to next
// unless the player died.
func (g *Game) simulate(ctx context.Context, next sim.RunKind) error {
	if err := g.pipeline.Tick(ctx, g.sc); err != nil {
		return err
	}
	if g.removeDead() {
		return nil
	}
	g.sc.State = sim.RunState{Kind: next}
	return nil
}

// playerInput maps one key to a player action and the resulting turn state.
func (g *Game) playerInput(in Input) (sim.RunState, error) {
	stay := sim.RunState{Kind: sim.AwaitingInput}
	if in.IsNone() {
		return stay, nil
	}
	player, err := g.sc.PlayerEntity()
	if err != nil {
		return stay, err
	}

	if dx, dy, ok := in.direction(); ok {
		return g.movePlayer(player, dx, dy)
	}
	switch {
	case in.Is('g'):
		return g.pickUp(player)
	case in.Is('i'):
		return sim.RunState{Kind: sim.ShowInventory}, nil
	case in.Is('d'):
		return sim.RunState{Kind: sim.ShowDropItem}, nil
	case in.Is('>'), in.Is('.'):
		return g.useStairs()
	case in.Key == KeyEscape:
		return sim.RunState{Kind: sim.ShowMenu}, nil
	}
	return stay, nil
}

// movePlayer steps onto an open tile, or attacks whatever blocks it. Either
// way the turn is spent.
func (g *Game) movePlayer(player ecs.Entity, dx, dy int) (sim.RunState, error) {
	sc := g.sc
	pos, ok := sc.C.Position.Get(player)
	if !ok {
		return sim.RunState{Kind: sim.AwaitingInput}, fmt.Errorf("player %s has no position: %w", player, sim.ErrNoPlayer)
	}
	dest := world.Point{
		X: min(max(pos.X+dx, 0), sc.Map.Width-1),
		Y: min(max(pos.Y+dy, 0), sc.Map.Height-1),
	}

	if sc.Map.IsBlocked(dest) {
		for _, e := range sc.Map.Occupants(dest) {
			if sc.World.Alive(e) && sc.C.CombatStats.Has(e) {
				sc.C.WantsToMelee.Insert(player, component.WantsToMelee{Target: e})
				break
			}
		}
	} else {
		pos.X, pos.Y = dest.X, dest.Y
		if vs, ok := sc.C.Viewshed.Get(player); ok {
			vs.Dirty = true
		}
	}
	return sim.RunState{Kind: sim.PlayerTurn}, nil
}

func (g *Game) pickUp(player ecs.Entity) (sim.RunState, error) {
	sc := g.sc
	at, err := sc.PlayerPosition()
	if err != nil {
		return sim.RunState{Kind: sim.AwaitingInput}, err
	}
	for r := range ecs.Join2(sc.C.Item, sc.C.Position) {
		if r.B.Point() != at || !sc.World.Alive(r.Entity) {
			continue
		}
		sc.C.WantsToPickUp.Insert(player, component.WantsToPickUp{Item: r.Entity})
		g.logger.Debug("wants to pick up", zap.String("item", sc.C.NameOf(r.Entity)))
		return sim.RunState{Kind: sim.PlayerTurn}, nil
	}
	sc.Log.Add("There is nothing to pick up")
	return sim.RunState{Kind: sim.AwaitingInput}, nil
}

func (g *Game) useStairs() (sim.RunState, error) {
	at, err := g.sc.PlayerPosition()
	if err != nil {
		return sim.RunState{Kind: sim.AwaitingInput}, err
	}
	if g.sc.Map.TileAt(at) == world.TileDownStairs {
		return sim.RunState{Kind: sim.NextLevel}, nil
	}
	g.sc.Log.Add("No stairs here")
	return sim.RunState{Kind: sim.AwaitingInput}, nil
}

func (g *Game) inventoryMenu(in Input) {
	sc := g.sc
	choice, item := g.items.Choose(sc.C.Backpack(sc.Player), in)
	switch choice {
	case Cancel:
		sc.State = sim.RunState{Kind: sim.AwaitingInput}
	case Selected:
		if r, ok := sc.C.Ranged.Get(item); ok {
			if at, err := sc.PlayerPosition(); err == nil {
				g.targeter.Begin(at)
			}
			sc.State = sim.Targeting(r.Range, item)
			return
		}
		sc.C.WantsToUseItem.Insert(sc.Player, component.WantsToUseItem{Item: item, Target: component.SelfTarget()})
		sc.State = sim.RunState{Kind: sim.PlayerTurn}
	}
}

func (g *Game) dropMenu(in Input) {
	sc := g.sc
	choice, item := g.items.Choose(sc.C.Backpack(sc.Player), in)
	switch choice {
	case Cancel:
		sc.State = sim.RunState{Kind: sim.AwaitingInput}
	case Selected:
		sc.C.WantsToDropItem.Insert(sc.Player, component.WantsToDropItem{Item: item})
		sc.State = sim.RunState{Kind: sim.PlayerTurn}
	}
}

func (g *Game) targeting(in Input) error {
	sc := g.sc
	inRange, err := g.targetsInRange(sc.State.Range)
	if err != nil {
		return err
	}
	choice, p := g.targeter.Target(inRange, in)
	switch choice {
	case Cancel:
		sc.State = sim.RunState{Kind: sim.AwaitingInput}
	case Selected:
		sc.C.WantsToUseItem.Insert(sc.Player, component.WantsToUseItem{
			Item:   sc.State.Item,
			Target: component.PositionTarget(p),
		})
		sc.State = sim.RunState{Kind: sim.PlayerTurn}
	}
	return nil
}

// targetsInRange lists the tiles the player can see within rng, row by row.
func (g *Game) targetsInRange(rng int) ([]world.Point, error) {
	sc := g.sc
	at, err := sc.PlayerPosition()
	if err != nil {
		return nil, err
	}
	vs, ok := sc.C.Viewshed.Get(sc.Player)
	if !ok {
		return nil, nil
	}
	var out []world.Point
	vs.Visible.Each(func(p world.Point) {
		if world.Distance(at, p) <= float64(rng) {
			out = append(out, p)
		}
	})
	slices.SortFunc(out, func(a, b world.Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return out, nil
}
