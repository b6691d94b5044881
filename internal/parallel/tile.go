// Package parallel provides the tile-based frame scheduler behind the
// tiledbg software renderer.
//
// A frame is divided into 64x64 pixel tiles that are shaded independently:
//
//   - every tile owns its own RGBA buffer, so workers never share memory
//   - tile buffers are recycled through TilePool between frames
//   - WorkerPool fans tiles out across goroutines with work stealing
//
// Thread safety: TileGrid is NOT thread-safe. Rasterizer serializes access
// to its grid and hands each tile to exactly one worker.
package parallel

// Tile size constants.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64

	// TilePixels is the total number of pixels in a full tile.
	TilePixels = TileWidth * TileHeight

	// TileBytes is the size of a full tile in bytes (RGBA = 4 bytes per pixel).
	TileBytes = TilePixels * 4
)

// Tile is a rectangular block of the frame with its own pixel buffer.
// Edge tiles are smaller when the frame size is not a multiple of 64.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// Width is the actual width in pixels (may be < TileWidth for edge tiles).
	Width int

	// Height is the actual height in pixels (may be < TileHeight for edge tiles).
	Height int

	// Data contains the RGBA pixel data owned by this tile.
	// Length is Width * Height * 4 bytes.
	Data []byte
}

// Reset zeroes the pixel data.
func (t *Tile) Reset() {
	clear(t.Data)
}

// Origin returns the frame-space pixel coordinate of the tile's top-left corner.
func (t *Tile) Origin() (x, y int) {
	return t.X * TileWidth, t.Y * TileHeight
}

// PixelOffset returns the byte offset into Data for a tile-local pixel,
// or -1 when the pixel is outside the tile.
func (t *Tile) PixelOffset(px, py int) int {
	if px < 0 || px >= t.Width || py < 0 || py >= t.Height {
		return -1
	}
	return (py*t.Width + px) * 4
}

// Stride returns the row stride in bytes.
func (t *Tile) Stride() int {
	return t.Width * 4
}
