package tiledbg

import (
	"math"
	"testing"
)

func TestIndexTile(t *testing.T) {
	tests := []struct {
		name      string
		p         Point
		size      float64
		stagger   float64
		wantCell  Cell
		wantLocal Point
	}{
		{"origin", Pt(0, 0), 10, 0, Cell{0, 0}, Pt(0, 0)},
		{"inside first tile", Pt(3, 7), 10, 0, Cell{0, 0}, Pt(3, 7)},
		{"boundary belongs to next tile", Pt(10, 20), 10, 0, Cell{1, 2}, Pt(0, 0)},
		{"negative wraps", Pt(-1, -1), 10, 0, Cell{-1, -1}, Pt(9, 9)},
		{"negative boundary", Pt(-10, -20), 10, 0, Cell{-1, -2}, Pt(0, 0)},
		{"even row ignores stagger", Pt(2, 5), 10, 0.5, Cell{0, 0}, Pt(2, 5)},
		{"odd row shifted", Pt(2, 15), 10, 0.5, Cell{-1, 1}, Pt(7, 5)},
		{"odd row shifted past", Pt(6, 15), 10, 0.5, Cell{0, 1}, Pt(1, 5)},
		{"negative odd row", Pt(6, -5), 10, 0.5, Cell{0, -1}, Pt(1, 5)},
		{"stagger reduced modulo one", Pt(6, 15), 10, 1.5, Cell{0, 1}, Pt(1, 5)},
		{"whole stagger is none", Pt(6, 15), 10, 1, Cell{0, 1}, Pt(6, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, local := IndexTile(tt.p, tt.size, tt.stagger)
			if cell != tt.wantCell {
				t.Errorf("cell = %v, want %v", cell, tt.wantCell)
			}
			if !near(local.X, tt.wantLocal.X, 1e-12) || !near(local.Y, tt.wantLocal.Y, 1e-12) {
				t.Errorf("local = %v, want %v", local, tt.wantLocal)
			}
		})
	}
}

func TestIndexTile_LocalAlwaysInRange(t *testing.T) {
	sizes := []float64{1, 0.1, 3, 1e-6, 1e6}
	coords := []float64{0, -1e-18, 1e-18, -0.3, 0.3, 1 - 1e-17, -1 + 1e-17, 1e15, -1e15, 12345.6789}
	for _, size := range sizes {
		for _, x := range coords {
			for _, y := range coords {
				_, local := IndexTile(Pt(x, y), size, 0.3)
				if local.X < 0 || local.X >= size || local.Y < 0 || local.Y >= size {
					t.Fatalf("IndexTile((%v,%v), %v) local = %v outside [0,%v)", x, y, size, local, size)
				}
			}
		}
	}
}

// A tile size that cannot be divided by yields the zero cell instead of
// a division fault.
func TestIndexTile_DegenerateSize(t *testing.T) {
	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		cell, local := IndexTile(Pt(5, 5), size, 0)
		if cell != (Cell{}) || local != (Point{}) {
			t.Errorf("IndexTile(size=%v) = %v, %v, want zero values", size, cell, local)
		}
	}
}

func TestIndexTile_NonFinitePosition(t *testing.T) {
	cell, local := IndexTile(Pt(math.NaN(), 0), 1, 0)
	if cell != (Cell{}) || local != (Point{}) {
		t.Errorf("IndexTile(NaN) = %v, %v, want zero values", cell, local)
	}
}

func TestIndexTile_SaturatesFarAway(t *testing.T) {
	cell, _ := IndexTile(Pt(1e300, -1e300), 1, 0)
	if cell.X != math.MaxInt || cell.Y != math.MinInt {
		t.Errorf("cell = %v, want saturated (MaxInt, MinInt)", cell)
	}
}

func TestCell_OddRow(t *testing.T) {
	tests := []struct {
		y    int
		want bool
	}{
		{0, false}, {1, true}, {2, false}, {-1, true}, {-2, false}, {-3, true},
	}
	for _, tt := range tests {
		if got := (Cell{Y: tt.y}).OddRow(); got != tt.want {
			t.Errorf("Cell{Y: %d}.OddRow() = %v, want %v", tt.y, got, tt.want)
		}
	}
}
