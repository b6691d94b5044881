package tiledbg

import "math"

// Clamping bounds used when WithClamping is in effect.
const (
	// MinScale is the smallest scale accepted after clamping.
	MinScale = 1e-6

	// MaxScale is the largest scale accepted after clamping.
	MaxScale = 1e6

	// MinBaseTileSize is the smallest base tile size accepted after clamping.
	MinBaseTileSize = 1e-6

	// MaxBaseTileSize is the largest base tile size accepted after clamping.
	MaxBaseTileSize = 1e9

	// minTilePeriod is the smallest tile period the indexer will divide by.
	minTilePeriod = 1e-12
)

// TextureRef is an opaque texture identifier. It is resolved by a
// TextureSampler; the sampling math never looks inside it.
type TextureRef string

// Params is the validated, immutable configuration of a tiled background.
//
// A Params value is created once per configuration change with NewParams
// and is read-only afterwards, so it is safe to share between goroutines
// without synchronization. Use With to derive a modified copy.
type Params struct {
	tint     RGBA
	scale    float64
	rotation float64
	stagger  float64
	spacing  float64
	scroll   Point
	texture  TextureRef
	baseTile float64

	// Derived values, computed once at construction.
	period   float64 // baseTile / scale
	sin, cos float64 // of -rotation
	scrollT  Point   // scroll velocity in tiling space
	periodY  float64 // lattice period along tiling-space y
}

// ParamOption configures Params during construction.
//
// Example:
//
//	p, err := tiledbg.NewParams(
//	    tiledbg.WithScale(0.5),
//	    tiledbg.WithStagger(0.5),
//	)
type ParamOption func(*paramConfig)

// paramConfig holds raw, unvalidated values collected from options.
type paramConfig struct {
	tint     RGBA
	scale    float64
	rotation float64
	stagger  float64
	spacing  float64
	scroll   Point
	texture  TextureRef
	baseTile float64
	clamp    bool
}

// defaultParamConfig mirrors the defaults of the original material:
// white tint, native scale, no rotation, stagger, gap or scroll.
func defaultParamConfig() paramConfig {
	return paramConfig{
		tint:     White,
		scale:    1,
		baseTile: 1,
	}
}

// WithTint sets the color the texture is multiplied by. The alpha
// component controls the pattern's opacity.
func WithTint(c RGBA) ParamOption {
	return func(o *paramConfig) { o.tint = c }
}

// WithScale sets the tile size multiplier. A tile covers
// BaseTileSize/scale surface units.
func WithScale(scale float64) ParamOption {
	return func(o *paramConfig) { o.scale = scale }
}

// WithRotation sets the pattern rotation in radians.
func WithRotation(radians float64) ParamOption {
	return func(o *paramConfig) { o.rotation = radians }
}

// WithStagger sets the fraction of a tile by which odd rows are shifted.
// Values outside [0, 1) are reduced modulo 1.
func WithStagger(stagger float64) ParamOption {
	return func(o *paramConfig) { o.stagger = stagger }
}

// WithSpacing sets the fraction of each tile taken by the gap around the
// inked image: 0 fills the tile edge-to-edge, 1 leaves it empty.
func WithSpacing(spacing float64) ParamOption {
	return func(o *paramConfig) { o.spacing = spacing }
}

// WithScroll sets the scroll velocity in surface units per unit time.
func WithScroll(velocity Point) ParamOption {
	return func(o *paramConfig) { o.scroll = velocity }
}

// WithTexture sets the texture identifier resolved by the sampler.
func WithTexture(ref TextureRef) ParamOption {
	return func(o *paramConfig) { o.texture = ref }
}

// WithBaseTileSize sets the size of one tile at scale 1, in surface
// units. Hosts that sample in pixels usually pass the texture width so
// that scale 1 shows the texture at its native size.
func WithBaseTileSize(size float64) ParamOption {
	return func(o *paramConfig) { o.baseTile = size }
}

// WithClamping makes NewParams clamp out-of-range values to the nearest
// valid value instead of rejecting them. The policy covers every field:
//   - scale is clamped to [MinScale, MaxScale]
//   - base tile size is clamped to [MinBaseTileSize, MaxBaseTileSize]
//   - spacing is clamped to [0, 1]
//   - NaN or infinite values fall back to the field default
func WithClamping() ParamOption {
	return func(o *paramConfig) { o.clamp = true }
}

// NewParams validates the options and returns an immutable Params.
//
// By default invalid values are rejected with a *ConfigError wrapping one
// of ErrInvalidScale, ErrInvalidSpacing, ErrInvalidTileSize, ErrNonFinite
// or ErrDegenerateTile. See WithClamping for the lenient policy.
func NewParams(opts ...ParamOption) (*Params, error) {
	cfg := defaultParamConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.build()
}

// With returns a copy of p with the options applied on top of its current
// values. The receiver is not modified.
func (p *Params) With(opts ...ParamOption) (*Params, error) {
	cfg := paramConfig{
		tint:     p.tint,
		scale:    p.scale,
		rotation: p.rotation,
		stagger:  p.stagger,
		spacing:  p.spacing,
		scroll:   p.scroll,
		texture:  p.texture,
		baseTile: p.baseTile,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.build()
}

// build validates (or clamps) the collected values.
func (c paramConfig) build() (*Params, error) {
	if c.clamp {
		c.clampAll()
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	p := &Params{
		tint:     c.tint,
		scale:    c.scale,
		rotation: c.rotation,
		stagger:  wrapUnit(c.stagger),
		spacing:  c.spacing,
		scroll:   c.scroll,
		texture:  c.texture,
		baseTile: c.baseTile,
	}

	p.period = p.baseTile / p.scale
	if !isFinite(p.period) || p.period < minTilePeriod {
		return nil, &ConfigError{Field: "tile period", Value: p.period, Err: ErrDegenerateTile}
	}

	p.sin, p.cos = math.Sincos(-p.rotation)
	p.scrollT = p.scroll.rotateSinCos(p.sin, p.cos)

	// Rows alternate when staggered, so the lattice repeats every two rows.
	p.periodY = p.period
	if p.stagger != 0 {
		p.periodY = 2 * p.period
	}

	return p, nil
}

// clampAll applies the clamping policy to every field.
func (c *paramConfig) clampAll() {
	def := defaultParamConfig()

	if !c.tint.IsFinite() {
		c.tint = def.tint
	}
	if !isFinite(c.scale) {
		c.scale = def.scale
	}
	c.scale = clampRange(c.scale, MinScale, MaxScale)

	if !isFinite(c.baseTile) {
		c.baseTile = def.baseTile
	}
	c.baseTile = clampRange(c.baseTile, MinBaseTileSize, MaxBaseTileSize)

	if !isFinite(c.rotation) {
		c.rotation = def.rotation
	}
	if !isFinite(c.stagger) {
		c.stagger = def.stagger
	}
	if !isFinite(c.spacing) {
		c.spacing = def.spacing
	}
	c.spacing = clampRange(c.spacing, 0, 1)

	if !isFinite(c.scroll.X) {
		c.scroll.X = def.scroll.X
	}
	if !isFinite(c.scroll.Y) {
		c.scroll.Y = def.scroll.Y
	}
}

// validate rejects values that would make sampling ill-defined.
func (c *paramConfig) validate() error {
	finite := []struct {
		field string
		value float64
	}{
		{"tint.r", c.tint.R},
		{"tint.g", c.tint.G},
		{"tint.b", c.tint.B},
		{"tint.a", c.tint.A},
		{"scale", c.scale},
		{"rotation", c.rotation},
		{"stagger", c.stagger},
		{"spacing", c.spacing},
		{"scroll.x", c.scroll.X},
		{"scroll.y", c.scroll.Y},
		{"base tile size", c.baseTile},
	}
	for _, f := range finite {
		if !isFinite(f.value) {
			return &ConfigError{Field: f.field, Value: f.value, Err: ErrNonFinite}
		}
	}

	if c.scale <= 0 {
		return &ConfigError{Field: "scale", Value: c.scale, Err: ErrInvalidScale}
	}
	if c.baseTile <= 0 {
		return &ConfigError{Field: "base tile size", Value: c.baseTile, Err: ErrInvalidTileSize}
	}
	if c.spacing < 0 || c.spacing > 1 {
		return &ConfigError{Field: "spacing", Value: c.spacing, Err: ErrInvalidSpacing}
	}
	return nil
}

// wrapUnit reduces v into [0, 1).
func wrapUnit(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Tint returns the tint color.
func (p *Params) Tint() RGBA { return p.tint }

// Scale returns the tile size multiplier.
func (p *Params) Scale() float64 { return p.scale }

// Rotation returns the pattern rotation in radians.
func (p *Params) Rotation() float64 { return p.rotation }

// Stagger returns the row offset as a fraction of the tile, in [0, 1).
func (p *Params) Stagger() float64 { return p.stagger }

// Spacing returns the gap fraction in [0, 1].
func (p *Params) Spacing() float64 { return p.spacing }

// Scroll returns the scroll velocity in surface units per unit time.
func (p *Params) Scroll() Point { return p.scroll }

// Texture returns the texture identifier.
func (p *Params) Texture() TextureRef { return p.texture }

// BaseTileSize returns the size of one tile at scale 1.
func (p *Params) BaseTileSize() float64 { return p.baseTile }

// TilePeriod returns the side length of one tile in surface units.
func (p *Params) TilePeriod() float64 { return p.period }

// ScrollPeriod returns the time after which the scroll animation repeats
// exactly. It returns 0 when the pattern does not scroll, or when the
// scroll direction is not aligned with a tiling axis (such motion never
// repeats exactly).
func (p *Params) ScrollPeriod() float64 {
	vx := math.Abs(p.scrollT.X)
	vy := math.Abs(p.scrollT.Y)
	const axisTolerance = 1e-12
	switch {
	case vx == 0 && vy == 0:
		return 0
	case vy <= vx*axisTolerance:
		return p.period / vx
	case vx <= vy*axisTolerance:
		return p.periodY / vy
	default:
		return 0
	}
}
