package tiledbg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/tiledbg/internal/parallel"
)

// ErrRendererClosed is returned by Render after Close.
var ErrRendererClosed = errors.New("tiledbg: renderer closed")

// Renderer draws tiled backgrounds into pixmaps on the CPU.
//
// Every pixel center is run through Params.Sample, shaded by a Compositor
// and composited over the background color. The frame is split into
// 64x64 tiles that are shaded in parallel.
//
// A Renderer may be shared between goroutines; frames are rendered one
// at a time.
type Renderer struct {
	mu         sync.Mutex
	raster     *parallel.Rasterizer
	compositor *Compositor
	background RGBA
	workers    int
	closed     bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithBackground sets the color drawn behind the pattern, visible in the
// gaps and through translucent tints. The default is transparent.
func WithBackground(c RGBA) RendererOption {
	return func(r *Renderer) { r.background = c }
}

// WithWorkers sets the number of shading goroutines.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) { r.workers = n }
}

// WithFallback sets the color of inked pixels whose texture is unavailable.
func WithFallback(c RGBA) RendererOption {
	return func(r *Renderer) { r.compositor.Fallback = c }
}

// NewRenderer creates a renderer that resolves textures through sampler.
func NewRenderer(sampler TextureSampler, opts ...RendererOption) *Renderer {
	r := &Renderer{compositor: NewCompositor(sampler)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Background returns the background color.
func (r *Renderer) Background() RGBA {
	return r.background
}

// Render draws params at the given elapsed time into dst, replacing its
// contents. If ctx is cancelled mid-frame the remaining tiles are skipped,
// dst is left unchanged and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context, dst *Pixmap, params *Params, elapsed float64) error {
	if dst == nil || params == nil {
		return errors.New("tiledbg: Render requires a pixmap and params")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRendererClosed
	}
	if dst.Width() == 0 || dst.Height() == 0 {
		return nil
	}

	start := time.Now()
	if r.raster == nil {
		r.raster = parallel.NewRasterizer(dst.Width(), dst.Height(), r.workers)
	} else {
		r.raster.Resize(dst.Width(), dst.Height())
	}

	shade := r.shadeFunc(params, elapsed)
	if err := r.raster.Shade(ctx, shade); err != nil {
		return fmt.Errorf("tiledbg: render: %w", err)
	}
	// Once shaded, the frame is copied out in full.
	if err := r.raster.Composite(context.WithoutCancel(ctx), dst.Data(), dst.Width()*4); err != nil {
		return fmt.Errorf("tiledbg: render: %w", err)
	}

	Logger().Debug("tiledbg: frame rendered",
		"width", dst.Width(), "height", dst.Height(),
		"tiles", r.raster.TileCount(), "elapsed", elapsed,
		"duration", time.Since(start))
	return nil
}

// shadeFunc binds one frame's parameters into a per-pixel shader.
func (r *Renderer) shadeFunc(params *Params, elapsed float64) parallel.ShadeFunc {
	bg := r.background
	opaqueBG := bg.A > 0
	tint, ref := params.tint, params.texture
	return func(x, y int) [4]byte {
		out := params.Sample(Pt(float64(x)+0.5, float64(y)+0.5), elapsed)
		c := r.compositor.Shade(out, tint, ref)
		if opaqueBG {
			c = c.Over(bg)
		}
		return toRGBA8(c)
	}
}

// RenderFrames renders one width×height frame per entry of times.
// It stops at the first error, returning the frames completed so far.
func (r *Renderer) RenderFrames(ctx context.Context, params *Params, width, height int, times []float64) ([]*Pixmap, error) {
	frames := make([]*Pixmap, 0, len(times))
	for _, t := range times {
		pm := NewPixmap(width, height)
		if err := r.Render(ctx, pm, params, t); err != nil {
			return frames, err
		}
		frames = append(frames, pm)
	}
	return frames, nil
}

// FrameTimes returns n evenly spaced times starting at 0 and covering one
// scroll period of params, so the frames loop seamlessly. A pattern that
// never repeats exactly falls back to fallbackDuration.
func FrameTimes(params *Params, n int, fallbackDuration float64) []float64 {
	if n <= 0 {
		return nil
	}
	duration := params.ScrollPeriod()
	if duration <= 0 {
		duration = fallbackDuration
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = duration * float64(i) / float64(n)
	}
	return times
}

// Close stops the renderer's workers. Render fails after Close.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.raster != nil {
		r.raster.Close()
		r.raster = nil
	}
}

func toRGBA8(c RGBA) [4]byte {
	return [4]byte{
		uint8(clamp255(c.R*255 + 0.5)),
		uint8(clamp255(c.G*255 + 0.5)),
		uint8(clamp255(c.B*255 + 0.5)),
		uint8(clamp255(c.A*255 + 0.5)),
	}
}
