// Package config loads tiled background materials from TOML files.
//
// A material file has two tables:
//
//	[material]
//	tint = "#ffffff26"     # or [r, g, b, a]
//	scale = 0.5
//	rotation_deg = 20      # or rotation, in radians
//	stagger = 0.5
//	spacing = 0.3          # gap fraction; or gap_px, or fill
//	scroll = [30.0, 0.0]
//	texture = "logo.png"   # or "builtin:checker", "builtin:uv", "builtin:disc"
//	tile_size = 64
//
//	[render]
//	width = 800
//	height = 600
//	background = "#1a1a26"
//	filter = "bilinear"
//	workers = 0
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/tiledbg"
)

// Configuration errors.
var (
	// ErrInvalidColor is returned for malformed color values.
	ErrInvalidColor = errors.New("config: invalid color")

	// ErrConflictingSpacing is returned when more than one of spacing,
	// gap_px and fill is set.
	ErrConflictingSpacing = errors.New("config: spacing, gap_px and fill are mutually exclusive")

	// ErrConflictingRotation is returned when both rotation and
	// rotation_deg are set.
	ErrConflictingRotation = errors.New("config: rotation and rotation_deg are mutually exclusive")

	// ErrInvalidScroll is returned when scroll is not a pair of numbers.
	ErrInvalidScroll = errors.New("config: scroll must be [x, y]")

	// ErrInvalidRender is returned for unusable [render] values.
	ErrInvalidRender = errors.New("config: invalid render settings")
)

// Render defaults.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFilter = "bilinear"
)

// File is a decoded material file.
type File struct {
	Material Material `toml:"material"`
	Render   Render   `toml:"render"`

	// dir is the directory relative texture paths are resolved against.
	dir string
}

// Material holds the [material] table. Pointer fields distinguish an
// explicit zero from an absent key.
type Material struct {
	Tint        Color     `toml:"tint"`
	Scale       *float64  `toml:"scale"`
	Rotation    *float64  `toml:"rotation"`
	RotationDeg *float64  `toml:"rotation_deg"`
	Stagger     float64   `toml:"stagger"`
	Spacing     *float64  `toml:"spacing"`
	GapPx       *float64  `toml:"gap_px"`
	Fill        *float64  `toml:"fill"`
	Scroll      []float64 `toml:"scroll"`
	Texture     string    `toml:"texture"`
	TileSize    float64   `toml:"tile_size"`
	Clamp       bool      `toml:"clamp"`
}

// Render holds the [render] table.
type Render struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background Color  `toml:"background"`
	Fallback   Color  `toml:"fallback"`
	Filter     string `toml:"filter"`
	Workers    int    `toml:"workers"`
}

// Load reads and parses a material file. Relative texture paths are
// resolved against the file's directory.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	tiledbg.Logger().Info("config: material loaded", "path", path, "texture", f.Material.Texture)
	return f, nil
}

// Parse decodes a material file held in memory and applies render
// defaults. Unknown keys are logged and ignored.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	for _, key := range md.Undecoded() {
		tiledbg.Logger().Warn("config: unknown key ignored", "key", key.String())
	}

	f.applyDefaults()
	if err := f.check(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) applyDefaults() {
	if f.Render.Width == 0 {
		f.Render.Width = DefaultWidth
	}
	if f.Render.Height == 0 {
		f.Render.Height = DefaultHeight
	}
	if f.Render.Filter == "" {
		f.Render.Filter = DefaultFilter
	}
}

// check catches structural mistakes that do not depend on the tile size.
func (f *File) check() error {
	m := &f.Material
	n := 0
	for _, v := range []*float64{m.Spacing, m.GapPx, m.Fill} {
		if v != nil {
			n++
		}
	}
	if n > 1 {
		return ErrConflictingSpacing
	}
	if m.Rotation != nil && m.RotationDeg != nil {
		return ErrConflictingRotation
	}
	if m.Scroll != nil && len(m.Scroll) != 2 {
		return fmt.Errorf("%w: got %d values", ErrInvalidScroll, len(m.Scroll))
	}
	if f.Render.Width < 0 || f.Render.Height < 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidRender, f.Render.Width, f.Render.Height)
	}
	if _, err := tiledbg.ParseFilter(f.Render.Filter); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRender, err)
	}
	return nil
}

// TextureRef returns the texture reference, with relative file paths
// resolved against the directory of the loaded file.
func (f *File) TextureRef() tiledbg.TextureRef {
	tex := f.Material.Texture
	if tex == "" || strings.HasPrefix(tex, "builtin:") || filepath.IsAbs(tex) || f.dir == "" {
		return tiledbg.TextureRef(tex)
	}
	return tiledbg.TextureRef(filepath.Join(f.dir, tex))
}

// BaseTileSize returns tile_size when set, otherwise textureSize.
func (f *File) BaseTileSize(textureSize float64) float64 {
	if f.Material.TileSize > 0 {
		return f.Material.TileSize
	}
	return textureSize
}

// Params converts the material to validated tiledbg parameters.
// textureSize is the base tile size used when tile_size is absent,
// usually the texture width in pixels.
func (f *File) Params(textureSize float64) (*tiledbg.Params, error) {
	m := &f.Material
	base := f.BaseTileSize(textureSize)

	opts := []tiledbg.ParamOption{
		tiledbg.WithTint(m.Tint.RGBA(tiledbg.White)),
		tiledbg.WithStagger(m.Stagger),
		tiledbg.WithTexture(f.TextureRef()),
		tiledbg.WithBaseTileSize(base),
	}
	scale := 1.0
	if m.Scale != nil {
		scale = *m.Scale
		opts = append(opts, tiledbg.WithScale(scale))
	}

	switch {
	case m.Rotation != nil:
		opts = append(opts, tiledbg.WithRotation(*m.Rotation))
	case m.RotationDeg != nil:
		opts = append(opts, tiledbg.WithRotation(*m.RotationDeg*math.Pi/180))
	}

	switch {
	case m.Spacing != nil:
		opts = append(opts, tiledbg.WithSpacing(*m.Spacing))
	case m.GapPx != nil:
		// The gap is in surface units; the tile spans base/scale of them.
		opts = append(opts, tiledbg.WithSpacing(*m.GapPx*scale/base))
	case m.Fill != nil:
		opts = append(opts, tiledbg.WithSpacing(1-*m.Fill))
	}

	if len(m.Scroll) == 2 {
		opts = append(opts, tiledbg.WithScroll(tiledbg.Pt(m.Scroll[0], m.Scroll[1])))
	}
	if m.Clamp {
		opts = append(opts, tiledbg.WithClamping())
	}

	p, err := tiledbg.NewParams(opts...)
	if err != nil {
		return nil, fmt.Errorf("config: material: %w", err)
	}
	return p, nil
}

// Filter returns the parsed render filter.
func (f *File) Filter() tiledbg.Filter {
	filter, _ := tiledbg.ParseFilter(f.Render.Filter) // checked in Parse
	return filter
}

// RendererOptions returns the renderer options described by [render].
func (f *File) RendererOptions() []tiledbg.RendererOption {
	opts := []tiledbg.RendererOption{tiledbg.WithWorkers(f.Render.Workers)}
	if f.Render.Background.Set() {
		opts = append(opts, tiledbg.WithBackground(f.Render.Background.RGBA(tiledbg.Transparent)))
	}
	if f.Render.Fallback.Set() {
		opts = append(opts, tiledbg.WithFallback(f.Render.Fallback.RGBA(tiledbg.Transparent)))
	}
	return opts
}
