package image

import (
	"math"
	"strings"
)

// InterpolationMode defines how texture sampling is performed.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest pixel (no interpolation).
	// Fast but produces blocky results when scaling.
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring pixels.
	// Good balance between quality and performance.
	InterpBilinear

	// InterpBicubic performs cubic interpolation using a 4x4 pixel neighborhood.
	// Highest quality but slower than bilinear.
	InterpBicubic
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	case InterpBicubic:
		return "Bicubic"
	default:
		return unknownMode
	}
}

// ParseInterpolation parses "nearest", "bilinear" or "bicubic"
// (case-insensitive). The second result is false for unknown names.
func ParseInterpolation(s string) (InterpolationMode, bool) {
	switch strings.ToLower(s) {
	case "nearest":
		return InterpNearest, true
	case "bilinear", "linear", "":
		return InterpBilinear, true
	case "bicubic", "cubic":
		return InterpBicubic, true
	default:
		return InterpBilinear, false
	}
}

// EdgeMode determines which texel a filter kernel reads when it reaches
// past the image edge.
type EdgeMode uint8

const (
	// EdgeClamp repeats the edge pixel. Used for tiles separated by gaps,
	// where wrapping would bleed the opposite edge into the border.
	EdgeClamp EdgeMode = iota

	// EdgeRepeat wraps around to the opposite edge. Used for seamless
	// textures tiled edge-to-edge.
	EdgeRepeat
)

const unknownMode = "Unknown"

// String returns a string representation of the edge mode.
func (e EdgeMode) String() string {
	switch e {
	case EdgeClamp:
		return "Clamp"
	case EdgeRepeat:
		return "Repeat"
	default:
		return unknownMode
	}
}

// Sample samples the image at normalized coordinates (u, v) using the
// specified interpolation and edge modes. u and v are in [0, 1] where
// (0,0) is top-left and (1,1) is bottom-right.
func Sample(img *ImageBuf, u, v float64, mode InterpolationMode, edge EdgeMode) (r, g, b, a byte) {
	if img == nil {
		return 0, 0, 0, 0
	}
	switch mode {
	case InterpNearest:
		return SampleNearest(img, u, v, edge)
	case InterpBilinear:
		return SampleBilinear(img, u, v, edge)
	case InterpBicubic:
		return SampleBicubic(img, u, v, edge)
	default:
		return 0, 0, 0, 0
	}
}

// SampleNearest performs nearest-neighbor sampling at normalized coordinates (u, v).
func SampleNearest(img *ImageBuf, u, v float64, edge EdgeMode) (r, g, b, a byte) {
	w, h := img.Bounds()

	// Floor selects the pixel containing the coordinate; u == 1 lands on
	// the last column under EdgeClamp and wraps to the first under EdgeRepeat.
	x := resolve(int(math.Floor(u*float64(w))), w, edge)
	y := resolve(int(math.Floor(v*float64(h))), h, edge)

	return img.GetRGBA(x, y)
}

// SampleBilinear performs bilinear interpolation at normalized coordinates (u, v).
func SampleBilinear(img *ImageBuf, u, v float64, edge EdgeMode) (r, g, b, a byte) {
	w, h := img.Bounds()

	// Pixel centers sit at half-integer coordinates.
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := resolve(x0+1, w, edge)
	y1 := resolve(y0+1, h, edge)
	x0 = resolve(x0, w, edge)
	y0 = resolve(y0, h, edge)

	r00, g00, b00, a00 := img.GetRGBA(x0, y0)
	r10, g10, b10, a10 := img.GetRGBA(x1, y0)
	r01, g01, b01, a01 := img.GetRGBA(x0, y1)
	r11, g11, b11, a11 := img.GetRGBA(x1, y1)

	r = byte(math.Round(lerp2D(float64(r00), float64(r10), float64(r01), float64(r11), tx, ty)))
	g = byte(math.Round(lerp2D(float64(g00), float64(g10), float64(g01), float64(g11), tx, ty)))
	b = byte(math.Round(lerp2D(float64(b00), float64(b10), float64(b01), float64(b11), tx, ty)))
	a = byte(math.Round(lerp2D(float64(a00), float64(a10), float64(a01), float64(a11), tx, ty)))

	return r, g, b, a
}

// SampleBicubic performs bicubic interpolation at normalized coordinates (u, v).
// Uses Catmull-Rom splines with a 4x4 pixel neighborhood.
func SampleBicubic(img *ImageBuf, u, v float64, edge EdgeMode) (r, g, b, a byte) {
	w, h := img.Bounds()

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	x := int(math.Floor(fx))
	y := int(math.Floor(fy))
	tx := fx - float64(x)
	ty := fy - float64(y)

	var rVals, gVals, bVals, aVals [4][4]float64

	for dy := -1; dy <= 2; dy++ {
		for dx := -1; dx <= 2; dx++ {
			px := resolve(x+dx, w, edge)
			py := resolve(y+dy, h, edge)

			pr, pg, pb, pa := img.GetRGBA(px, py)
			rVals[dy+1][dx+1] = float64(pr)
			gVals[dy+1][dx+1] = float64(pg)
			bVals[dy+1][dx+1] = float64(pb)
			aVals[dy+1][dx+1] = float64(pa)
		}
	}

	r = byte(math.Round(clampFloat(bicubicInterp(rVals, tx, ty), 0, 255)))
	g = byte(math.Round(clampFloat(bicubicInterp(gVals, tx, ty), 0, 255)))
	b = byte(math.Round(clampFloat(bicubicInterp(bVals, tx, ty), 0, 255)))
	a = byte(math.Round(clampFloat(bicubicInterp(aVals, tx, ty), 0, 255)))

	return r, g, b, a
}

// resolve maps a possibly out-of-range pixel index into [0, n).
func resolve(i, n int, edge EdgeMode) int {
	if edge == EdgeRepeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	absT := math.Abs(t)
	if absT < 1 {
		return 1.5*absT*absT*absT - 2.5*absT*absT + 1.0
	}
	if absT < 2 {
		return -0.5*absT*absT*absT + 2.5*absT*absT - 4.0*absT + 2.0
	}
	return 0
}

// bicubicInterp performs bicubic interpolation on a 4x4 grid using Catmull-Rom weights.
func bicubicInterp(vals [4][4]float64, tx, ty float64) float64 {
	wx := [4]float64{
		cubicWeight(tx + 1),
		cubicWeight(tx),
		cubicWeight(tx - 1),
		cubicWeight(tx - 2),
	}
	wy := [4]float64{
		cubicWeight(ty + 1),
		cubicWeight(ty),
		cubicWeight(ty - 1),
		cubicWeight(ty - 2),
	}

	var result float64
	for i := range 4 {
		for j := range 4 {
			result += vals[i][j] * wx[j] * wy[i]
		}
	}
	return result
}
