package tiledbg

import "math"

// MaskTile decides whether a local in-cell position falls on the inked
// part of its tile and, if so, returns the texture coordinate to sample.
//
// The inked region is an axis-aligned square centered in the tile whose
// side is (1-spacing)*tileSize, leaving a gap of spacing*tileSize/2 on
// every side. Membership is half-open like IndexTile: the low edge is
// inked, the high edge is not. The returned UV maps the inked region
// linearly onto [0,1]×[0,1] and is the zero point when not inked.
//
// Spacing is clamped to [0, 1]: 0 or less inks the whole tile, 1 or more
// inks nothing.
func MaskTile(local Point, tileSize, spacing float64) (bool, Point) {
	if !(tileSize > 0) || !isFinite(tileSize) {
		return false, Point{}
	}

	switch {
	case spacing >= 1 || math.IsNaN(spacing):
		return false, Point{}
	case spacing < 0:
		spacing = 0
	}

	margin := spacing * tileSize / 2
	inked := tileSize - 2*margin
	if !(inked > 0) {
		return false, Point{}
	}

	lo, hi := margin, tileSize-margin
	if local.X < lo || local.X >= hi || local.Y < lo || local.Y >= hi {
		return false, Point{}
	}

	uv := Point{
		X: clamp01((local.X - lo) / inked),
		Y: clamp01((local.Y - lo) / inked),
	}
	return true, uv
}
