package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/component"
	"github.com/samdwyer/deepdelve/internal/persist"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/telemetry"
)

// save writes the current run to the store. Failures are reported in the
// game log; the run carries on either way.
func (g *Game) save(ctx context.Context) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.save")
	defer span.End()

	sc := g.sc

	carrier := sc.World.Create()
	sc.C.MapCarrier.Insert(carrier, component.MapCarrier{Map: sc.Map})
	sc.C.Persistent.Insert(carrier, component.Persistent{})
	snap, err := persist.Capture(sc.C, g.runID.String())
	sc.World.Delete(carrier)
	sc.World.Maintain()

	if err == nil {
		err = g.store.Save(snap)
	}
	span.SetAttributes(
		attribute.String("run_id", g.runID.String()),
		attribute.Bool("error", err != nil),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		g.logger.Error("save failed", zap.Error(err))
		sc.Log.Add("Failed to save the game")
		return
	}
	span.SetAttributes(attribute.Int("entities", len(snap.Entities)))
	g.logger.Info("game saved",
		zap.String("run_id", g.runID.String()),
		zap.Int("entities", len(snap.Entities)))
	sc.Log.Add("Game saved")
}

// load replaces the current run with the saved one. When nothing could be
// loaded the game returns to the running game if there is one, otherwise to
// the main menu.
func (g *Game) load(ctx context.Context) error {
	_, span := telemetry.Tracer("game").Start(ctx, "game.load")
	defer span.End()

	sc, runID, entities, err := g.restore()
	span.SetAttributes(attribute.Bool("error", err != nil))
	if err != nil {
		span.RecordError(err)
		msg := "Failed to load the game"
		if errors.Is(err, persist.ErrNoSave) {
			msg = "No saved game found"
		} else {
			g.logger.Error("load failed", zap.Error(err))
		}
		if g.sc != nil {
			g.sc.Log.Add(msg)
			return g.fire(ctx, eventLoaded)
		}
		g.notice = msg
		return g.fire(ctx, eventLoadFailed)
	}

	g.sc = sc
	g.runID = runID
	g.menu = mainMenu()
	span.SetAttributes(
		attribute.String("run_id", runID.String()),
		attribute.Int("entities", entities),
	)

	if g.cfg.DeleteSaveOnLoad {
		if err := g.store.Delete(); err != nil {
			g.logger.Warn("delete save after load", zap.Error(err))
		}
	}
	g.logger.Info("game loaded",
		zap.String("run_id", runID.String()),
		zap.Int("entities", entities),
		zap.Int("depth", sc.Map.Depth))
	return g.fire(ctx, eventLoaded)
}

// restore builds a fresh simulation context from the stored snapshot.
func (g *Game) restore() (*sim.Context, uuid.UUID, int, error) {
	snap, err := g.store.Load()
	if err != nil {
		return nil, uuid.Nil, 0, err
	}

	sc := sim.NewContext(g.rng, g.logger, g.cfg.Rules)
	if _, err := persist.Restore(snap, sc.World, sc.C); err != nil {
		return nil, uuid.Nil, 0, err
	}

	carrier, mc, ok := sc.C.MapCarrier.First()
	if !ok || mc.Map == nil {
		return nil, uuid.Nil, 0, fmt.Errorf("snapshot has no map: %w", persist.ErrCorrupt)
	}
	sc.Map = mc.Map
	sc.World.Delete(carrier)
	sc.World.Maintain()

	player, _, ok := sc.C.Player.First()
	if !ok {
		return nil, uuid.Nil, 0, fmt.Errorf("snapshot: %w", sim.ErrNoPlayer)
	}
	sc.Player = player
	sc.State = sim.RunState{Kind: sim.PreRun}
	sc.Log.SetDepth(sc.Map.Depth)

	runID, err := uuid.Parse(snap.RunID)
	if err != nil {
		g.logger.Warn("snapshot run id", zap.String("run_id", snap.RunID), zap.Error(err))
		runID = uuid.New()
	}
	return sc, runID, len(snap.Entities), nil
}
