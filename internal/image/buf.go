// Package image holds the texture images sampled by tiled backgrounds.
//
// Images are stored as straight-alpha RGBA8 buffers. The package owns the
// texture-side policies the tiling math deliberately leaves out: decoding,
// resampling, filtering and edge handling.
package image

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// bytesPerPixel is the size of one RGBA8 pixel.
const bytesPerPixel = 4

// ImageBuf is a straight-alpha RGBA8 pixel buffer.
//
// Thread safety: ImageBuf is safe for concurrent read access. SetRGBA and
// Fill require external synchronization; textures are normally filled once
// and then only sampled.
type ImageBuf struct {
	data   []byte
	width  int
	height int
}

// NewImageBuf creates a transparent image buffer with the given dimensions.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ImageBuf{
		data:   make([]byte, width*height*bytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// FromRaw wraps tightly packed RGBA8 data without copying.
func FromRaw(data []byte, width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	size := width * height * bytesPerPixel
	if len(data) < size {
		return nil, ErrDataTooSmall
	}
	return &ImageBuf{data: data[:size], width: width, height: height}, nil
}

// FromStdImage converts any standard library image into an ImageBuf.
// Returns nil for an empty image.
func FromStdImage(img image.Image) *ImageBuf {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil
	}

	// Fast path: already straight-alpha RGBA.
	if nrgba, ok := img.(*image.NRGBA); ok {
		rowLen := buf.width * bytesPerPixel
		for y := range buf.height {
			src := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.data[y*rowLen:(y+1)*rowLen], nrgba.Pix[src:src+rowLen])
		}
		return buf
	}

	dst := buf.nrgba()
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return buf
}

// nrgba returns an *image.NRGBA sharing the buffer's pixels.
func (b *ImageBuf) nrgba() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.data,
		Stride: b.width * bytesPerPixel,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// ToStdImage returns the buffer as an *image.NRGBA sharing its pixels.
func (b *ImageBuf) ToStdImage() *image.NRGBA {
	return b.nrgba()
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * bytesPerPixel
}

// GetRGBA returns the color at (x, y) in 0-255 range.
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	i := b.PixelOffset(x, y)
	if i < 0 {
		return 0, 0, 0, 0
	}
	return b.data[i], b.data[i+1], b.data[i+2], b.data[i+3]
}

// SetRGBA sets the color at (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	i := b.PixelOffset(x, y)
	if i < 0 {
		return ErrOutOfBounds
	}
	b.data[i] = r
	b.data[i+1] = g
	b.data[i+2] = bl
	b.data[i+3] = a
	return nil
}

// Set is like SetRGBA for a color.Color, ignoring out-of-bounds writes.
func (b *ImageBuf) Set(x, y int, c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	_ = b.SetRGBA(x, y, n.R, n.G, n.B, n.A)
}

// Fill sets all pixels to the given color.
func (b *ImageBuf) Fill(r, g, bl, a uint8) {
	for i := 0; i < len(b.data); i += bytesPerPixel {
		b.data[i] = r
		b.data[i+1] = g
		b.data[i+2] = bl
		b.data[i+3] = a
	}
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &ImageBuf{data: data, width: b.width, height: b.height}
}
