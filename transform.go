package tiledbg

import "math"

// ToTilingSpace maps a surface position at the given elapsed time into
// tiling space, where tiles are axis-aligned squares of side TilePeriod.
//
// The position is rotated by -Rotation about the origin and then shifted
// against the scroll offset, so the pattern appears to travel along the
// scroll velocity. The scroll offset is reduced modulo the lattice period
// before it is combined with the position; elapsed time never enters the
// math unbounded.
func (p *Params) ToTilingSpace(pos Point, elapsed float64) Point {
	r := pos.rotateSinCos(p.sin, p.cos)
	return r.Sub(p.ScrollOffset(elapsed))
}

// ScrollOffset returns the tiling-space scroll displacement at the given
// elapsed time, reduced to [0, TilePeriod) on x and to [0, lattice period)
// on y. With stagger the lattice repeats every two rows, otherwise every row.
func (p *Params) ScrollOffset(elapsed float64) Point {
	if !isFinite(elapsed) {
		return Point{}
	}
	return Point{
		X: reduceMod(p.scrollT.X*elapsed, p.period),
		Y: reduceMod(p.scrollT.Y*elapsed, p.periodY),
	}
}

// reduceMod returns v modulo m in [0, m). m must be positive.
func reduceMod(v, m float64) float64 {
	if v == 0 {
		return 0
	}
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}
