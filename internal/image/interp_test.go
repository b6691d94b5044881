package image

import (
	"testing"
)

// gradient4x4 returns a 4x4 image where r = 64*x and g = 64*y.
func gradient4x4(t *testing.T) *ImageBuf {
	t.Helper()
	img, err := NewImageBuf(4, 4)
	if err != nil {
		t.Fatalf("NewImageBuf failed: %v", err)
	}
	for y := range 4 {
		for x := range 4 {
			_ = img.SetRGBA(x, y, byte(x*64), byte(y*64), 128, 255)
		}
	}
	return img
}

func TestSampleNearest(t *testing.T) {
	img := gradient4x4(t)

	tests := []struct {
		name         string
		u, v         float64
		edge         EdgeMode
		wantX, wantY int
	}{
		{"top-left corner", 0, 0, EdgeClamp, 0, 0},
		{"right edge clamps", 1, 0, EdgeClamp, 3, 0},
		{"right edge repeats", 1, 0, EdgeRepeat, 0, 0},
		{"pixel (1,1)", 0.375, 0.375, EdgeClamp, 1, 1},
		{"pixel (2,2)", 0.625, 0.625, EdgeClamp, 2, 2},
		{"bottom-right clamps", 1, 1, EdgeClamp, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := SampleNearest(img, tt.u, tt.v, tt.edge)
			wr, wg, wb, wa := img.GetRGBA(tt.wantX, tt.wantY)
			if r != wr || g != wg || b != wb || a != wa {
				t.Errorf("SampleNearest(%v, %v) = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					tt.u, tt.v, r, g, b, a, wr, wg, wb, wa)
			}
		})
	}
}

func TestSampleBilinear_PixelCenters(t *testing.T) {
	img := gradient4x4(t)

	// At exact pixel centers bilinear must reproduce the pixel.
	for y := range 4 {
		for x := range 4 {
			u := (float64(x) + 0.5) / 4
			v := (float64(y) + 0.5) / 4
			r, g, _, _ := SampleBilinear(img, u, v, EdgeClamp)
			if r != byte(x*64) || g != byte(y*64) {
				t.Errorf("SampleBilinear at center of (%d,%d) = (%d,%d), want (%d,%d)",
					x, y, r, g, x*64, y*64)
			}
		}
	}
}

func TestSampleBilinear_Midpoint(t *testing.T) {
	img := gradient4x4(t)

	// Halfway between the centers of pixels 0 and 1 on x.
	r, _, _, _ := SampleBilinear(img, 0.25, 0.125, EdgeClamp)
	if r != 32 {
		t.Errorf("SampleBilinear midpoint r = %d, want 32", r)
	}
}

func TestSampleBilinear_EdgeModes(t *testing.T) {
	img := gradient4x4(t)

	// u = 0 sits half a pixel left of the first center: clamp reads
	// pixel 0 twice, repeat blends with the last column.
	rc, _, _, _ := SampleBilinear(img, 0, 0.125, EdgeClamp)
	if rc != 0 {
		t.Errorf("clamp r = %d, want 0", rc)
	}
	rr, _, _, _ := SampleBilinear(img, 0, 0.125, EdgeRepeat)
	if rr != 96 {
		t.Errorf("repeat r = %d, want 96 (mix of 192 and 0)", rr)
	}
}

func TestSampleBicubic_Uniform(t *testing.T) {
	img, _ := NewImageBuf(8, 8)
	img.Fill(10, 20, 30, 255)

	for _, uv := range [][2]float64{{0, 0}, {0.3, 0.7}, {1, 1}} {
		r, g, b, a := SampleBicubic(img, uv[0], uv[1], EdgeClamp)
		if r != 10 || g != 20 || b != 30 || a != 255 {
			t.Errorf("SampleBicubic(%v) = (%d,%d,%d,%d), want (10,20,30,255)", uv, r, g, b, a)
		}
	}
}

func TestSample_Dispatch(t *testing.T) {
	img := gradient4x4(t)

	if r, _, _, _ := Sample(img, 0.375, 0.375, InterpNearest, EdgeClamp); r != 64 {
		t.Errorf("Sample nearest r = %d, want 64", r)
	}
	if r, g, b, a := Sample(nil, 0.5, 0.5, InterpBilinear, EdgeClamp); r|g|b|a != 0 {
		t.Error("Sample(nil) should return transparent black")
	}
	if r, g, b, a := Sample(img, 0.5, 0.5, InterpolationMode(99), EdgeClamp); r|g|b|a != 0 {
		t.Error("Sample with unknown mode should return transparent black")
	}
}

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		in     string
		want   InterpolationMode
		wantOK bool
	}{
		{"nearest", InterpNearest, true},
		{"Bilinear", InterpBilinear, true},
		{"", InterpBilinear, true},
		{"CUBIC", InterpBicubic, true},
		{"lanczos", InterpBilinear, false},
	}
	for _, tt := range tests {
		got, ok := ParseInterpolation(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseInterpolation(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestModeStrings(t *testing.T) {
	if InterpBicubic.String() != "Bicubic" {
		t.Errorf("InterpBicubic.String() = %q", InterpBicubic.String())
	}
	if EdgeRepeat.String() != "Repeat" {
		t.Errorf("EdgeRepeat.String() = %q", EdgeRepeat.String())
	}
	if EdgeMode(9).String() != unknownMode {
		t.Errorf("EdgeMode(9).String() = %q", EdgeMode(9).String())
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		i, n int
		edge EdgeMode
		want int
	}{
		{-1, 4, EdgeClamp, 0},
		{4, 4, EdgeClamp, 3},
		{-1, 4, EdgeRepeat, 3},
		{9, 4, EdgeRepeat, 1},
		{2, 4, EdgeRepeat, 2},
	}
	for _, tt := range tests {
		if got := resolve(tt.i, tt.n, tt.edge); got != tt.want {
			t.Errorf("resolve(%d, %d, %v) = %d, want %d", tt.i, tt.n, tt.edge, got, tt.want)
		}
	}
}
