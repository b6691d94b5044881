package parallel

import "testing"

func TestTile_PixelOffset(t *testing.T) {
	tile := &Tile{Width: 10, Height: 5, Data: make([]byte, 10*5*4)}
	tests := []struct {
		px, py, want int
	}{
		{0, 0, 0},
		{1, 0, 4},
		{0, 1, 40},
		{9, 4, (4*10 + 9) * 4},
		{10, 0, -1},
		{-1, 0, -1},
		{0, 5, -1},
	}
	for _, tt := range tests {
		if got := tile.PixelOffset(tt.px, tt.py); got != tt.want {
			t.Errorf("PixelOffset(%d,%d) = %d, want %d", tt.px, tt.py, got, tt.want)
		}
	}
	if tile.Stride() != 40 {
		t.Errorf("Stride() = %d, want 40", tile.Stride())
	}
}

func TestTile_Origin(t *testing.T) {
	tile := &Tile{X: 2, Y: 3}
	if x, y := tile.Origin(); x != 128 || y != 192 {
		t.Errorf("Origin() = (%d,%d), want (128,192)", x, y)
	}
}

func TestTilePool_GetPut(t *testing.T) {
	pool := NewTilePool()

	tile := pool.Get(TileWidth, TileHeight)
	if tile == nil || len(tile.Data) != TileBytes {
		t.Fatalf("Get(64,64) = %+v", tile)
	}
	tile.Data[0] = 99
	tile.X, tile.Y = 7, 8
	pool.Put(tile)

	again := pool.Get(TileWidth, TileHeight)
	if again.Data[0] != 0 || again.X != 0 || again.Y != 0 {
		t.Error("recycled tile should be zeroed")
	}

	edge := pool.Get(10, 3)
	if edge.Width != 10 || edge.Height != 3 || len(edge.Data) != 120 {
		t.Errorf("edge tile = %dx%d with %d bytes", edge.Width, edge.Height, len(edge.Data))
	}

	if pool.Get(0, 5) != nil {
		t.Error("Get(0,5) should return nil")
	}
	pool.Put(nil)
}

func TestTileGrid(t *testing.T) {
	tests := []struct {
		name           string
		w, h           int
		tilesX, tilesY int
		lastW, lastH   int
	}{
		{"exact", 128, 64, 2, 1, 64, 64},
		{"partial edge", 100, 70, 2, 2, 36, 6},
		{"smaller than a tile", 10, 10, 1, 1, 10, 10},
		{"empty", 0, 10, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewTileGrid(tt.w, tt.h)
			defer g.Close()

			if g.TilesX() != tt.tilesX || g.TilesY() != tt.tilesY {
				t.Fatalf("tiles = %dx%d, want %dx%d", g.TilesX(), g.TilesY(), tt.tilesX, tt.tilesY)
			}
			if g.TileCount() != tt.tilesX*tt.tilesY {
				t.Errorf("TileCount() = %d", g.TileCount())
			}
			if tt.tilesX == 0 {
				return
			}
			last := g.TileAt(tt.tilesX-1, tt.tilesY-1)
			if last.Width != tt.lastW || last.Height != tt.lastH {
				t.Errorf("last tile = %dx%d, want %dx%d", last.Width, last.Height, tt.lastW, tt.lastH)
			}
			if g.TileAt(tt.tilesX, 0) != nil || g.TileAt(-1, 0) != nil {
				t.Error("TileAt out of range should return nil")
			}
		})
	}
}

func TestTileGrid_Resize(t *testing.T) {
	g := NewTileGrid(64, 64)
	defer g.Close()

	first := g.TileAt(0, 0)
	g.Resize(64, 64)
	if g.TileAt(0, 0) != first {
		t.Error("Resize to the same size should keep the tiles")
	}

	g.Resize(200, 10)
	if g.Width() != 200 || g.Height() != 10 || g.TilesX() != 4 || g.TilesY() != 1 {
		t.Errorf("after Resize: %dx%d px, %dx%d tiles", g.Width(), g.Height(), g.TilesX(), g.TilesY())
	}

	g.Resize(-1, 10)
	if g.TileCount() != 0 {
		t.Errorf("Resize to empty left %d tiles", g.TileCount())
	}
}
