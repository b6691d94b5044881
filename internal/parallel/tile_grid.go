package parallel

// TileGrid covers a frame with 64x64 tiles in row-major order
// (index = ty*tilesX + tx). Edge tiles are clipped to the frame.
//
// Thread safety: TileGrid is NOT thread-safe.
type TileGrid struct {
	tiles  []*Tile
	tilesX int
	tilesY int
	width  int
	height int
	pool   *TilePool
}

// NewTileGrid creates a grid for a frame of the given size. Non-positive
// dimensions produce an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	g := &TileGrid{pool: NewTilePool()}
	g.Resize(width, height)
	return g
}

// Resize reallocates the tiles for a new frame size. It is a no-op when
// the size is unchanged.
func (g *TileGrid) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		g.Close()
		g.tiles = nil
		g.tilesX, g.tilesY = 0, 0
		g.width, g.height = 0, 0
		return
	}
	if g.width == width && g.height == height {
		return
	}

	g.Close()
	g.width, g.height = width, height
	g.tilesX = (width + TileWidth - 1) / TileWidth
	g.tilesY = (height + TileHeight - 1) / TileHeight
	g.tiles = make([]*Tile, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		h := min(TileHeight, height-ty*TileHeight)
		for tx := range g.tilesX {
			w := min(TileWidth, width-tx*TileWidth)
			t := g.pool.Get(w, h)
			t.X, t.Y = tx, ty
			g.tiles[ty*g.tilesX+tx] = t
		}
	}
}

// TileAt returns the tile at tile coordinates (tx, ty), or nil when out of range.
func (g *TileGrid) TileAt(tx, ty int) *Tile {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return nil
	}
	return g.tiles[ty*g.tilesX+tx]
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int { return len(g.tiles) }

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int { return g.tilesY }

// Width returns the frame width in pixels.
func (g *TileGrid) Width() int { return g.width }

// Height returns the frame height in pixels.
func (g *TileGrid) Height() int { return g.height }

// AllTiles returns the tiles in row-major order.
// The returned slice should not be modified.
func (g *TileGrid) AllTiles() []*Tile { return g.tiles }

// Close returns all tiles to the pool.
func (g *TileGrid) Close() {
	for i, t := range g.tiles {
		if t != nil {
			g.pool.Put(t)
			g.tiles[i] = nil
		}
	}
}
