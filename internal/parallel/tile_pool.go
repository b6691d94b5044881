package parallel

import "sync"

// TilePool recycles tile buffers between frames, keyed by tile size.
// Most tiles are full 64x64 blocks; edge tiles get a pool per size.
//
// Thread safety: TilePool is safe for concurrent use.
type TilePool struct {
	pools sync.Map // uint32 size key -> *sync.Pool
}

// NewTilePool creates an empty tile pool.
func NewTilePool() *TilePool {
	return &TilePool{}
}

// Get returns a zeroed tile of the given size, or nil for an empty size.
func (p *TilePool) Get(width, height int) *Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	t := p.poolFor(width, height).Get().(*Tile)
	t.Reset()
	t.X, t.Y = 0, 0
	return t
}

// Put returns a tile to the pool. A nil tile is ignored.
func (p *TilePool) Put(t *Tile) {
	if t == nil || t.Width <= 0 || t.Height <= 0 {
		return
	}
	p.poolFor(t.Width, t.Height).Put(t)
}

func (p *TilePool) poolFor(width, height int) *sync.Pool {
	key := sizeKey(width, height)
	if pool, ok := p.pools.Load(key); ok {
		return pool.(*sync.Pool)
	}
	pool := &sync.Pool{
		New: func() any {
			return &Tile{
				Width:  width,
				Height: height,
				Data:   make([]byte, width*height*4),
			}
		},
	}
	actual, _ := p.pools.LoadOrStore(key, pool)
	return actual.(*sync.Pool)
}

// sizeKey packs a tile size into one key. Tiles never exceed 64x64, so
// 16 bits per dimension is plenty.
func sizeKey(width, height int) uint32 {
	return uint32(width&0xFFFF)<<16 | uint32(height&0xFFFF) //nolint:gosec // masked to 16 bits
}
