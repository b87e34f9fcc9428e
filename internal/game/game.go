package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/deepdelve/internal/entity"
	"github.com/samdwyer/deepdelve/internal/gamedata"
	"github.com/samdwyer/deepdelve/internal/persist"
	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/system"
	"github.com/samdwyer/deepdelve/internal/telemetry"
	"github.com/samdwyer/deepdelve/internal/world"
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	logger   *zap.Logger
	rng      *rand.Rand
	catalog  *gamedata.Catalog
	spawner  *entity.Spawner
	pipeline *system.Runner
	store    persist.Store
	items    ItemMenu
	targeter Targeter

	app    *fsm.FSM
	menu   Menu
	notice string

	// sc is nil until a run has been started or loaded.
	sc    *sim.Context
	runID uuid.UUID

	hover    world.Point
	hovering bool
}

// New creates a game sitting at the main menu.
func New(cfg Config, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		pipeline: system.NewPipeline(),
		menu:     mainMenu(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.store == nil {
		g.store = &persist.MemoryStore{}
	}
	if g.items == nil {
		g.items = LetterMenu{}
	}
	if g.targeter == nil {
		g.targeter = &CursorTargeter{}
	}
	if g.catalog == nil {
		c, err := gamedata.LoadCatalog()
		if err != nil {
			return nil, fmt.Errorf("load game data: %w", err)
		}
		g.catalog = c
	}
	if g.cfg.LogLines <= 0 {
		g.cfg.LogLines = DefaultConfig().LogLines
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.spawner = entity.NewSpawner(g.catalog)
	g.app = newAppState(g.logger)

	g.logger.Info("game created",
		zap.Int64("seed", seed),
		zap.Int("monsters", g.catalog.Monsters.Count()),
		zap.Int("items", g.catalog.Items.Count()))
	return g, nil
}

// AppState returns the current application state.
func (g *Game) AppState() string { return g.app.Current() }

// RunState returns the current turn state. It is PreRun before any run exists.
func (g *Game) RunState() sim.RunState {
	if g.sc == nil {
		return sim.RunState{Kind: sim.PreRun}
	}
	return g.sc.State
}

// Sim returns the running simulation, or nil at the first main menu.
func (g *Game) Sim() *sim.Context { return g.sc }

// RunID identifies the current run across saves.
func (g *Game) RunID() uuid.UUID { return g.runID }

// WaitsForInput reports whether the next Tick needs an external event. The
// host only blocks on input when this is true.
func (g *Game) WaitsForInput() bool {
	switch g.app.Current() {
	case StateMainMenu:
		return true
	case StateInGame:
		switch g.sc.State.Kind {
		case sim.AwaitingInput, sim.ShowInventory, sim.ShowDropItem, sim.ShowTargeting, sim.GameOver:
			return true
		}
	}
	return false
}

// Tick advances the game by one discrete step. It returns false once the
// player has chosen to quit. A non-nil error means the run cannot continue.
func (g *Game) Tick(ctx context.Context, in Input) (bool, error) {
	var err error
	switch g.app.Current() {
	case StateMainMenu:
		err = g.tickMenu(ctx, in)
	case StateInGame:
		err = g.tickRun(ctx, in)
	case StateSaving:
		g.save(ctx)
		err = g.fire(ctx, eventSaved)
	case StateLoading:
		err = g.load(ctx)
	case StateQuit:
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return g.app.Current() != StateQuit, nil
}

func (g *Game) tickMenu(ctx context.Context, in Input) error {
	opt, ok := g.menu.handle(in)
	if !ok {
		return nil
	}
	g.notice = ""

	switch opt {
	case OptionNew:
		if err := g.NewRun(ctx); err != nil {
			return err
		}
		return g.fire(ctx, eventNewGame)
	case OptionContinue:
		if g.sc == nil {
			return nil
		}
		return g.fire(ctx, eventContinue)
	case OptionLoad:
		return g.fire(ctx, eventLoad)
	case OptionSave:
		if g.sc == nil {
			g.notice = "Nothing to save"
			return nil
		}
		return g.fire(ctx, eventSave)
	default:
		return g.fire(ctx, eventQuit)
	}
}

// NewRun discards any current run and starts a fresh one at depth 1.
func (g *Game) NewRun(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.new_run")
	defer span.End()

	sc := sim.NewContext(g.rng, g.logger, g.cfg.Rules)
	m, err := world.Generate(ctx, sc.RNG, g.cfg.Map, 1)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("new run: %w", err)
	}
	sc.Map = m
	sc.Log.SetDepth(m.Depth)

	start, err := m.StartPoint()
	if err != nil {
		return fmt.Errorf("new run: %w", err)
	}
	if _, err := g.spawner.SpawnPlayer(sc, start); err != nil {
		return fmt.Errorf("new run: %w", err)
	}
	if err := g.populate(sc, m); err != nil {
		return fmt.Errorf("new run: %w", err)
	}

	g.sc = sc
	g.runID = uuid.New()
	g.menu = mainMenu()
	sc.Log.Add("Welcome to Deep Delve")

	span.SetAttributes(
		attribute.String("run_id", g.runID.String()),
		attribute.Int("entities", sc.World.Len()),
	)
	g.logger.Info("run started",
		zap.String("run_id", g.runID.String()),
		zap.Int("rooms", len(m.Rooms)))
	return nil
}

// populate spawns monsters and items in every room but the first.
func (g *Game) populate(sc *sim.Context, m *world.Map) error {
	for _, room := range m.Rooms[1:] {
		if err := g.spawner.SpawnRoom(sc, room); err != nil {
			return err
		}
	}
	return nil
}
