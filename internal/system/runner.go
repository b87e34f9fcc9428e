package system

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/deepdelve/internal/sim"
	"github.com/samdwyer/deepdelve/internal/telemetry"
)

// Runner executes systems in phase order each tick.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Systems returns the registered systems in execution order.
func (r *Runner) Systems() []System {
	r.ensureSorted()
	out := make([]System, len(r.systems))
	copy(out, r.systems)
	return out
}

// Tick runs every system once and then applies deferred deletions. It stops
// at the first system that fails.
func (r *Runner) Tick(ctx context.Context, sc *sim.Context) error {
	r.ensureSorted()

	_, span := telemetry.Tracer("system").Start(ctx, "pipeline.tick")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_state", sc.State.String()),
		attribute.Int("systems", len(r.systems)),
	)

	for _, s := range r.systems {
		if err := s.Run(sc); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, s.Name())
			return fmt.Errorf("system %s: %w", s.Name(), err)
		}
	}

	deleted := sc.World.Maintain()
	span.SetAttributes(attribute.Int("deleted", deleted))
	return nil
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}

// NewPipeline returns a runner with the standard turn systems registered.
func NewPipeline() *Runner {
	r := NewRunner()
	r.Register(Cleanup{})
	r.Register(Visibility{})
	r.Register(MonsterAI{})
	r.Register(Melee{})
	r.Register(Damage{})
	r.Register(Pickup{})
	r.Register(Use{})
	r.Register(Drop{})
	r.Register(MapIndex{})
	return r
}
