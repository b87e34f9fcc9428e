package world

// Room represents a rectangular room in the dungeon. Floor covers
// [X, X+Width) by [Y, Y+Height).
type Room struct {
	X, Y          int // Top-left floor tile
	Width, Height int
}

// Center returns the center of the room.
func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects returns true if this room overlaps or touches another room.
// Touching rooms count, so accepted rooms are always separated by wall.
func (r Room) Intersects(other Room) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Points returns every floor tile of the room in row-major order.
func (r Room) Points() []Point {
	out := make([]Point, 0, r.Width*r.Height)
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}
