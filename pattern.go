package tiledbg

// Pattern represents a color source evaluated per surface position.
type Pattern interface {
	// ColorAt returns the color at the given point.
	ColorAt(x, y float64) RGBA
}

// SolidPattern represents a solid color pattern.
type SolidPattern struct {
	Color RGBA
}

// NewSolidPattern creates a solid color pattern.
func NewSolidPattern(color RGBA) *SolidPattern {
	return &SolidPattern{Color: color}
}

// ColorAt implements Pattern.
func (p *SolidPattern) ColorAt(x, y float64) RGBA {
	return p.Color
}

// TiledPattern is the tiled background frozen at one point in time.
// It implements Pattern so that a single frame can be handed to any code
// that evaluates colors per position.
type TiledPattern struct {
	params     *Params
	compositor *Compositor
	elapsed    float64
}

// NewTiledPattern creates a pattern for params at elapsed time 0.
// Returns nil if params or compositor is nil.
func NewTiledPattern(params *Params, compositor *Compositor) *TiledPattern {
	if params == nil || compositor == nil {
		return nil
	}
	return &TiledPattern{params: params, compositor: compositor}
}

// AtTime returns a copy of the pattern evaluated at the given elapsed
// time. The receiver is not modified, so frames can be built concurrently.
func (p *TiledPattern) AtTime(elapsed float64) *TiledPattern {
	if p == nil {
		return nil
	}
	cp := *p
	cp.elapsed = elapsed
	return &cp
}

// Elapsed returns the time the pattern is evaluated at.
func (p *TiledPattern) Elapsed() float64 {
	if p == nil {
		return 0
	}
	return p.elapsed
}

// Params returns the pattern configuration.
func (p *TiledPattern) Params() *Params {
	if p == nil {
		return nil
	}
	return p.params
}

// ColorAt implements Pattern.
func (p *TiledPattern) ColorAt(x, y float64) RGBA {
	if p == nil {
		return Transparent
	}
	out := p.params.Sample(Pt(x, y), p.elapsed)
	return p.compositor.Shade(out, p.params.tint, p.params.texture)
}
