package tiledbg

import (
	"errors"
	"sync"
)

// ErrTextureUnavailable is returned by a TextureSampler when the texture
// reference cannot be resolved (not loaded, failed to decode, unknown id).
var ErrTextureUnavailable = errors.New("tiledbg: texture unavailable")

// TextureSampler resolves a texture reference and returns its color at a
// normalized coordinate in [0,1]×[0,1]. Filtering and edge handling at
// exactly 0 or 1 are the sampler's own policy.
//
// Implementations must be safe for concurrent use.
type TextureSampler interface {
	SampleTexture(ref TextureRef, u, v float64) (RGBA, error)
}

// Composite applies the tint to an already-fetched texture color.
// Samples that fall in the gap are fully transparent.
func Composite(out SampleOutput, tint, base RGBA) RGBA {
	if !out.Inked {
		return Transparent
	}
	return base.Mul(tint)
}

// Compositor fetches texture colors through a TextureSampler and tints
// them. When the sampler cannot resolve a texture, inked samples take the
// Fallback color instead of failing; the condition is logged once per
// texture reference.
//
// A Compositor is safe for concurrent use.
type Compositor struct {
	// Sampler resolves texture colors. A nil Sampler treats every texture
	// as unavailable.
	Sampler TextureSampler

	// Fallback is used for inked samples whose texture is unavailable.
	// The zero value is fully transparent.
	Fallback RGBA

	warned sync.Map // TextureRef -> struct{}
}

// NewCompositor creates a compositor with a transparent fallback.
func NewCompositor(sampler TextureSampler) *Compositor {
	return &Compositor{Sampler: sampler}
}

// Shade returns the final tinted color of a sample.
func (c *Compositor) Shade(out SampleOutput, tint RGBA, ref TextureRef) RGBA {
	if !out.Inked {
		return Transparent
	}
	base, ok := c.fetch(ref, out.UV)
	if !ok {
		return c.Fallback
	}
	return Composite(out, tint, base)
}

// fetch samples the texture, reporting false when it is unavailable.
func (c *Compositor) fetch(ref TextureRef, uv Point) (RGBA, bool) {
	if c.Sampler == nil {
		c.warnOnce(ref, ErrTextureUnavailable)
		return RGBA{}, false
	}
	base, err := c.Sampler.SampleTexture(ref, uv.X, uv.Y)
	if err != nil {
		c.warnOnce(ref, err)
		return RGBA{}, false
	}
	return base, true
}

func (c *Compositor) warnOnce(ref TextureRef, err error) {
	if _, loaded := c.warned.LoadOrStore(ref, struct{}{}); loaded {
		return
	}
	Logger().Warn("tiledbg: texture unavailable, using fallback color",
		"texture", string(ref), "error", err)
}
