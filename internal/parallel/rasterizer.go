package parallel

import (
	"context"
	"errors"
)

// ErrBufferTooSmall is returned by Composite when the destination cannot
// hold the frame.
var ErrBufferTooSmall = errors.New("parallel: destination buffer too small")

// ShadeFunc returns the RGBA8 value of the frame pixel (x, y).
// It is called concurrently from several workers and must not retain
// state between calls that is not safe for concurrent use.
type ShadeFunc func(x, y int) [4]byte

// Rasterizer shades a frame tile by tile on a WorkerPool and assembles
// the tiles into a row-major RGBA buffer.
//
// Thread safety: a Rasterizer is used by one frame at a time; callers
// serialize Resize, Shade and Composite.
type Rasterizer struct {
	grid *TileGrid
	pool *WorkerPool
}

// NewRasterizer creates a rasterizer for the given frame size.
// If workers <= 0, GOMAXPROCS is used.
func NewRasterizer(width, height, workers int) *Rasterizer {
	return &Rasterizer{
		grid: NewTileGrid(width, height),
		pool: NewWorkerPool(workers),
	}
}

// Width returns the frame width in pixels.
func (r *Rasterizer) Width() int { return r.grid.Width() }

// Height returns the frame height in pixels.
func (r *Rasterizer) Height() int { return r.grid.Height() }

// TileCount returns the number of tiles per frame.
func (r *Rasterizer) TileCount() int { return r.grid.TileCount() }

// Workers returns the number of pool workers.
func (r *Rasterizer) Workers() int { return r.pool.Workers() }

// Resize changes the frame size. It is a no-op when the size is unchanged.
func (r *Rasterizer) Resize(width, height int) {
	r.grid.Resize(width, height)
}

// Shade fills every tile by calling fn for each of its pixels.
// Cancelling ctx skips the tiles that have not started yet.
func (r *Rasterizer) Shade(ctx context.Context, fn ShadeFunc) error {
	return r.forEachTile(ctx, func(t *Tile) {
		ox, oy := t.Origin()
		for py := range t.Height {
			row := t.Data[py*t.Stride():]
			for px := range t.Width {
				c := fn(ox+px, oy+py)
				copy(row[px*4:px*4+4], c[:])
			}
		}
	})
}

// Composite copies the shaded tiles into dst, a row-major RGBA buffer
// with the given stride in bytes.
func (r *Rasterizer) Composite(ctx context.Context, dst []byte, stride int) error {
	w, h := r.grid.Width(), r.grid.Height()
	if h > 0 && (stride < w*4 || len(dst) < (h-1)*stride+w*4) {
		return ErrBufferTooSmall
	}
	return r.forEachTile(ctx, func(t *Tile) {
		ox, oy := t.Origin()
		n := t.Stride()
		for py := range t.Height {
			d := (oy+py)*stride + ox*4
			s := py * n
			copy(dst[d:d+n], t.Data[s:s+n])
		}
	})
}

func (r *Rasterizer) forEachTile(ctx context.Context, fn func(*Tile)) error {
	tiles := r.grid.AllTiles()
	work := make([]func(), len(tiles))
	for i, t := range tiles {
		work[i] = func() { fn(t) }
	}
	return r.pool.ExecuteAll(ctx, work)
}

// Close stops the workers and releases the tiles.
// The rasterizer must not be used after Close.
func (r *Rasterizer) Close() {
	r.pool.Close()
	r.grid.Close()
}
