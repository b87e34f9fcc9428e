package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/deepdelve/internal/telemetry"
)

// ErrNoRooms is returned when room placement accepted nothing.
var ErrNoRooms = errors.New("world: no rooms generated")

// Params bounds the room-and-corridor generator.
type Params struct {
	Width    int
	Height   int
	MaxRooms int // placement attempts
	RoomMin  int
	RoomMax  int
}

// DefaultParams returns the classic 80x43 layout with up to 30 rooms.
func DefaultParams() Params {
	return Params{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		MaxRooms: 30,
		RoomMin:  6,
		RoomMax:  10,
	}
}

// Generate builds a new level. Rooms are rejection sampled: each attempt
// picks a random size and position and is kept only if it touches no earlier
// room. Every accepted room is joined to the previously accepted one by an
// L-shaped corridor. The down stairs go in the centre of the last room.
func Generate(ctx context.Context, rng *rand.Rand, p Params, depth int) (*Map, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.generate")
	defer span.End()

	startTime := time.Now()
	m := NewMap(p.Width, p.Height, depth)

	attempts := 0
	for i := 0; i < p.MaxRooms; i++ {
		attempts++
		room, ok := sampleRoom(rng, p)
		if !ok {
			continue
		}
		if m.overlapsAny(room) {
			continue
		}
		m.carveRoom(room)
		if n := len(m.Rooms); n > 0 {
			m.carveCorridor(rng, m.Rooms[n-1].Center(), room.Center())
		}
		m.Rooms = append(m.Rooms, room)
	}

	span.SetAttributes(
		attribute.Int("map.width", m.Width),
		attribute.Int("map.height", m.Height),
		attribute.Int("map.depth", depth),
		attribute.Int("map.room_count", len(m.Rooms)),
		attribute.Int("map.attempts", attempts),
		attribute.Int64("map.generation_ms", time.Since(startTime).Milliseconds()),
	)

	if len(m.Rooms) == 0 {
		err := fmt.Errorf("generate depth %d after %d attempts: %w", depth, attempts, ErrNoRooms)
		span.RecordError(err)
		span.SetStatus(codes.Error, "no rooms")
		return nil, err
	}

	m.SetTile(m.Rooms[len(m.Rooms)-1].Center(), TileDownStairs)
	m.PopulateBlocked()
	return m, nil
}

// sampleRoom picks a room that fits inside the outer wall. It fails when the
// map is too small for the chosen size.
func sampleRoom(rng *rand.Rand, p Params) (Room, bool) {
	span := p.RoomMax - p.RoomMin + 1
	if span < 1 {
		return Room{}, false
	}
	w := p.RoomMin + rng.Intn(span)
	h := p.RoomMin + rng.Intn(span)
	if p.Width-w-1 < 1 || p.Height-h-1 < 1 {
		return Room{}, false
	}
	return Room{
		X:      1 + rng.Intn(p.Width-w-1),
		Y:      1 + rng.Intn(p.Height-h-1),
		Width:  w,
		Height: h,
	}, true
}

func (m *Map) overlapsAny(room Room) bool {
	for _, other := range m.Rooms {
		if room.Intersects(other) {
			return true
		}
	}
	return false
}

// carveRoom sets all tiles within the room to floor.
func (m *Map) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			m.carve(x, y)
		}
	}
}

// carveCorridor joins two points with an L-shaped corridor.
func (m *Map) carveCorridor(rng *rand.Rand, from, to Point) {
	// Randomly choose to go horizontal-then-vertical or vertical-then-horizontal
	if rng.Intn(2) == 0 {
		m.carveHorizontalTunnel(from.X, to.X, from.Y)
		m.carveVerticalTunnel(from.Y, to.Y, to.X)
	} else {
		m.carveVerticalTunnel(from.Y, to.Y, from.X)
		m.carveHorizontalTunnel(from.X, to.X, to.Y)
	}
}

// carveHorizontalTunnel carves a horizontal tunnel.
func (m *Map) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		m.carve(x, y)
	}
}

// carveVerticalTunnel carves a vertical tunnel.
func (m *Map) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		m.carve(x, y)
	}
}

// carve turns one tile into floor, leaving the outer wall intact.
func (m *Map) carve(x, y int) {
	if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
		m.Tiles[y*m.Width+x] = TileFloor
	}
}
