package world

import (
	"github.com/zyedidia/generic/mapset"
)

// multipliers transform octant-local (dx, dy) into map offsets for each of
// the eight octants.
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// FieldOfView returns every in-bounds tile visible from origin within radius,
// using recursive shadowcasting over the map's opaque tiles. A tile counts as
// in range when dx*dx+dy*dy <= radius*radius. The origin is always visible.
func FieldOfView(m *Map, origin Point, radius int) mapset.Set[Point] {
	visible := mapset.New[Point]()
	if radius <= 0 || !m.InBounds(origin) {
		return visible
	}
	visible.Put(origin)

	for i := 0; i < 8; i++ {
		castLight(m, origin, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], visible)
	}
	return visible
}

func castLight(m *Map, origin Point, row int, start, end float64, radius, xx, xy, yx, yy int, visible mapset.Set[Point]) {
	if start < end {
		return
	}

	radiusSq := radius * radius

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			p := Point{X: origin.X + dx*xx + dy*xy, Y: origin.Y + dx*yx + dy*yy}

			if m.InBounds(p) && dx*dx+dy*dy <= radiusSq {
				visible.Put(p)
			}

			opaque := !m.InBounds(p) || m.IsOpaque(p)
			if blocked {
				// Walking along a wall.
				if opaque {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque && j < radius {
				blocked = true
				castLight(m, origin, j+1, start, lSlope, radius, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
