package tiledbg

import "math"

// IndexTile splits a tiling-space position into the cell that contains it
// and the position local to that cell.
//
// Cells are half-open squares [k*tileSize, (k+1)*tileSize) on both axes,
// found by floor division so that negative coordinates wrap seamlessly
// across the origin. On odd rows the x coordinate is first shifted by
// stagger*tileSize (stagger reduced modulo 1), which offsets those rows
// like courses of brick. The local position is always in [0, tileSize).
//
// A tile size that is not a positive finite number yields the zero cell
// and zero local position; IndexTile never divides by zero.
func IndexTile(p Point, tileSize, stagger float64) (Cell, Point) {
	if !(tileSize > 0) || math.IsInf(tileSize, 0) || !p.IsFinite() {
		return Cell{}, Point{}
	}

	cy, ly := floorDiv(p.Y, tileSize)
	cell := Cell{Y: cy}

	x := p.X
	if cell.OddRow() {
		if s := wrapUnit(stagger); s != 0 {
			x -= s * tileSize
		}
	}
	cx, lx := floorDiv(x, tileSize)
	cell.X = cx

	return cell, Point{X: lx, Y: ly}
}

// floorDiv returns floor(v/size) and the remainder v - floor(v/size)*size,
// guaranteed to lie in [0, size).
func floorDiv(v, size float64) (int, float64) {
	q := math.Floor(v / size)
	r := v - q*size

	// Rounding can push the remainder just outside the half-open range:
	// a tiny negative v gives size-ε which rounds to size.
	switch {
	case r >= size:
		q++
		r -= size
	case r < 0:
		q--
		r += size
		if r >= size {
			r = 0
			q++
		}
	}
	// Far from the origin the quotient has no fractional precision left.
	if r < 0 || r >= size {
		r = 0
	}
	return saturateInt(q), r
}

// saturateInt converts an integral float to int, saturating at the int
// range for positions far beyond any real surface.
func saturateInt(q float64) int {
	switch {
	case q >= math.MaxInt:
		return math.MaxInt
	case q <= math.MinInt:
		return math.MinInt
	default:
		return int(q)
	}
}
