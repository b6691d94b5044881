package tiledbg

import "math"

// Point represents a 2D point or vector in surface or tiling space.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Rotate returns the point rotated by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return p.rotateSinCos(sin, cos)
}

// rotateSinCos rotates by an angle whose sine and cosine are already known.
func (p Point) rotateSinCos(sin, cos float64) Point {
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Cell identifies one tile of the repeating pattern by its integer
// column (X) and row (Y) in tiling space.
type Cell struct {
	X, Y int
}

// OddRow reports whether the cell sits on a staggered row.
// Parity is computed on the floored row index, so row -1 is odd.
func (c Cell) OddRow() bool {
	return c.Y&1 == 1
}
