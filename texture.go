package tiledbg

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"
	"sync/atomic"

	intImage "github.com/gogpu/tiledbg/internal/image"
)

// Filter selects how a TextureSet interpolates between texels.
type Filter = intImage.InterpolationMode

// Texture filters.
const (
	FilterNearest  = intImage.InterpNearest
	FilterBilinear = intImage.InterpBilinear
	FilterBicubic  = intImage.InterpBicubic
)

// ParseFilter parses a filter name ("nearest", "bilinear", "bicubic").
func ParseFilter(name string) (Filter, error) {
	f, ok := intImage.ParseInterpolation(name)
	if !ok {
		return f, fmt.Errorf("tiledbg: unknown filter %q", name)
	}
	return f, nil
}

// Built-in texture references understood by TextureSet.LoadTexture.
const (
	BuiltinChecker TextureRef = "builtin:checker"
	BuiltinUV      TextureRef = "builtin:uv"
	BuiltinDisc    TextureRef = "builtin:disc"
)

// builtinSize is the pixel size of generated built-in textures.
const builtinSize = 64

// texture is one registered image with its sampling policy.
type texture struct {
	img  *intImage.ImageBuf
	edge intImage.EdgeMode
}

// TextureSet is a registry of decoded textures that implements
// TextureSampler. It owns the filtering and edge policy that the tiling
// math leaves to its collaborator.
//
// TextureSet is safe for concurrent use; registration may happen while
// other goroutines are sampling. Samplers read an immutable snapshot of
// the registry without locking; writers publish a new snapshot.
type TextureSet struct {
	mu       sync.Mutex // serializes writers
	textures atomic.Pointer[map[TextureRef]texture]
	filter   Filter
}

// NewTextureSet creates an empty set sampling with the given filter.
func NewTextureSet(filter Filter) *TextureSet {
	s := &TextureSet{filter: filter}
	s.textures.Store(&map[TextureRef]texture{})
	return s
}

func (s *TextureSet) lookup(ref TextureRef) (texture, bool) {
	tex, ok := (*s.textures.Load())[ref]
	return tex, ok
}

// update copies the current snapshot, applies fn and publishes the copy.
func (s *TextureSet) update(fn func(m map[TextureRef]texture)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := *s.textures.Load()
	next := make(map[TextureRef]texture, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	fn(next)
	s.textures.Store(&next)
}

// AddImage registers a decoded image under ref, replacing any previous
// texture with the same ref. Seamless sets EdgeRepeat filtering, for
// textures designed to tile edge-to-edge.
func (s *TextureSet) AddImage(ref TextureRef, img image.Image, seamless bool) error {
	buf := intImage.FromStdImage(img)
	if buf == nil {
		return fmt.Errorf("tiledbg: texture %q: %w", ref, intImage.ErrInvalidDimensions)
	}
	s.add(ref, buf, seamless)
	return nil
}

func (s *TextureSet) add(ref TextureRef, buf *intImage.ImageBuf, seamless bool) {
	edge := intImage.EdgeClamp
	if seamless {
		edge = intImage.EdgeRepeat
	}
	s.update(func(m map[TextureRef]texture) {
		m[ref] = texture{img: buf, edge: edge}
	})

	Logger().Info("tiledbg: texture registered",
		"texture", string(ref), "width", buf.Width(), "height", buf.Height())
}

// LoadTexture resolves ref and registers the result under the same ref.
// A ref starting with "builtin:" generates a procedural texture
// (checker, uv, disc); anything else is read as an image file path.
// When size is positive the texture is resampled to size×size pixels.
func (s *TextureSet) LoadTexture(ref TextureRef, size int) error {
	buf, seamless, err := loadTexture(ref)
	if err != nil {
		return err
	}
	if size > 0 && (buf.Width() != size || buf.Height() != size) {
		buf, err = intImage.Resize(buf, size, size)
		if err != nil {
			return fmt.Errorf("tiledbg: resize texture %q: %w", ref, err)
		}
	}
	s.add(ref, buf, seamless)
	return nil
}

func loadTexture(ref TextureRef) (*intImage.ImageBuf, bool, error) {
	name := string(ref)
	if !strings.HasPrefix(name, "builtin:") {
		buf, err := intImage.Load(name)
		if err != nil {
			return nil, false, fmt.Errorf("tiledbg: load texture %q: %w", name, err)
		}
		return buf, false, nil
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	var (
		buf      *intImage.ImageBuf
		seamless bool
		err      error
	)
	switch ref {
	case BuiltinChecker:
		buf, err = intImage.Checkerboard(builtinSize, builtinSize, builtinSize/2,
			white, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		seamless = true
	case BuiltinUV:
		buf, err = intImage.UVDebug(builtinSize, builtinSize)
	case BuiltinDisc:
		buf, err = intImage.Disc(builtinSize, builtinSize, white)
	default:
		return nil, false, fmt.Errorf("tiledbg: unknown builtin texture %q", name)
	}
	if err != nil {
		return nil, false, fmt.Errorf("tiledbg: generate %q: %w", name, err)
	}
	return buf, seamless, nil
}

// Remove unregisters a texture. Subsequent samples of ref report
// ErrTextureUnavailable.
func (s *TextureSet) Remove(ref TextureRef) {
	s.update(func(m map[TextureRef]texture) {
		delete(m, ref)
	})
}

// Size returns the pixel dimensions of a registered texture.
func (s *TextureSet) Size(ref TextureRef) (width, height int, ok bool) {
	tex, ok := s.lookup(ref)
	if !ok {
		return 0, 0, false
	}
	return tex.img.Width(), tex.img.Height(), true
}

// SampleTexture implements TextureSampler.
func (s *TextureSet) SampleTexture(ref TextureRef, u, v float64) (RGBA, error) {
	tex, ok := s.lookup(ref)
	if !ok {
		return RGBA{}, ErrTextureUnavailable
	}
	r, g, b, a := intImage.Sample(tex.img, u, v, s.filter, tex.edge)
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}
