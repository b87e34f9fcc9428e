package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/combat"
	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/ecs"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/telemetry"
	"github.com/samdwyer/deepdelve/internal/world"
)

// removeDead deletes every non-player combatant with hp below 1 and frees its
// tile. It reports whether the player is dead, in which case the run moves to
// GameOver.
func (g *Game) removeDead() bool {
	sc := g.sc
	playerDead := false
	for r := range ecs.Join2(sc.C.CombatStats, sc.C.Position) {
		if r.A.HP >= 1 || !sc.World.Alive(r.Entity) {
			continue
		}
		if sc.IsPlayer(r.Entity) {
			playerDead = true
			continue
		}
		sc.Log.Addf("%s is dead", sc.C.NameOf(r.Entity))
		sc.Map.SetBlocked(r.B.Point(), false)
		sc.World.Delete(r.Entity)
	}
	sc.World.Maintain()

	if playerDead && !sc.State.Is(sim.GameOver) {
		sc.Log.Add("You are dead!")
		sc.State = sim.RunState{Kind: sim.GameOver}
		g.logger.Info("player died",
			zap.String("run_id", g.runID.String()),
			zap.Int("depth", sc.Map.Depth))
	}
	return playerDead
}

// nextLevel clears the current level, generates the next one and puts the
// player at its first room.
func (g *Game) nextLevel(ctx context.Context) error {
	sc := g.sc
	depth := sc.Map.Depth + 1

	ctx, span := telemetry.Tracer("game").Start(ctx, "game.next_level")
	defer span.End()
	span.SetAttributes(attribute.Int("depth", depth))

	sc.Log.Add("Loading Next Level")
	marked := g.markLevelForDeletion()

	m, err := world.Generate(ctx, sc.RNG, g.cfg.Map, depth)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate")
		return fmt.Errorf("next level: %w", err)
	}
	start, err := m.StartPoint()
	if err != nil {
		return fmt.Errorf("next level: %w", err)
	}
	sc.Map = m
	sc.Log.SetDepth(depth)

	if pos, ok := sc.C.Position.Get(sc.Player); ok {
		pos.X, pos.Y = start.X, start.Y
	}
	if vs, ok := sc.C.Viewshed.Get(sc.Player); ok {
		vs.Dirty = true
	}
	if stats, ok := sc.C.CombatStats.Get(sc.Player); ok {
		combat.Restore(stats)
	}
	sc.Log.Addf("You descend to level %d", depth)

	if err := g.populate(sc, m); err != nil {
		return fmt.Errorf("next level: %w", err)
	}
	span.SetAttributes(
		attribute.Int("marked", marked),
		attribute.Int("rooms", len(m.Rooms)),
	)
	sc.State = sim.RunState{Kind: sim.PreRun}
	return nil
}

// markLevelForDeletion tags everything except the player and the player's
// backpack with ToDelete and takes it off the map. The cleanup system
// deletes them on the next pipeline run.
func (g *Game) markLevelForDeletion() int {
	sc := g.sc
	n := 0
	for _, e := range sc.World.Entities() {
		if e == sc.Player {
			continue
		}
		if bp, ok := sc.C.InBackpack.Get(e); ok && bp.Owner == sc.Player {
			continue
		}
		sc.C.ToDelete.Insert(e, component.ToDelete{})
		sc.C.Position.Remove(e)
		n++
	}
	return n
}
