package config

import (
	"fmt"

	"github.com/gogpu/tiledbg"
)

// Color is a TOML color value. It accepts a hex string ("#rrggbb",
// "#rrggbbaa", "#rgb", "#rgba") or an array of three or four numbers in
// [0, 1]. An unset Color reports Set() == false.
type Color struct {
	rgba tiledbg.RGBA
	set  bool
}

// NewColor returns a set Color.
func NewColor(c tiledbg.RGBA) Color {
	return Color{rgba: c, set: true}
}

// RGBA returns the color, or def when the value was not set.
func (c Color) RGBA(def tiledbg.RGBA) tiledbg.RGBA {
	if !c.set {
		return def
	}
	return c.rgba
}

// Set reports whether the value was present in the file.
func (c Color) Set() bool { return c.set }

// UnmarshalTOML implements toml.Unmarshaler.
func (c *Color) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		rgba, err := tiledbg.ParseHex(val)
		if err != nil {
			return err
		}
		*c = NewColor(rgba)
		return nil
	case []any:
		if len(val) != 3 && len(val) != 4 {
			return fmt.Errorf("%w: want 3 or 4 components, got %d", ErrInvalidColor, len(val))
		}
		comp := [4]float64{3: 1}
		for i, x := range val {
			f, ok := number(x)
			if !ok {
				return fmt.Errorf("%w: component %d is %T", ErrInvalidColor, i, x)
			}
			comp[i] = f
		}
		*c = NewColor(tiledbg.RGBA{R: comp[0], G: comp[1], B: comp[2], A: comp[3]})
		return nil
	default:
		return fmt.Errorf("%w: unsupported value %T", ErrInvalidColor, v)
	}
}

// number converts a decoded TOML number to float64.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
