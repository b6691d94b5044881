package tiledbg

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// Verify at compile time that TextureSet implements TextureSampler.
var _ TextureSampler = (*TextureSet)(nil)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"nearest", FilterNearest, false},
		{"bilinear", FilterBilinear, false},
		{"linear", FilterBilinear, false},
		{"bicubic", FilterBicubic, false},
		{"lanczos", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFilter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTextureSet_AddImageAndSample(t *testing.T) {
	set := NewTextureSet(FilterNearest)
	if err := set.AddImage("red", solidImage(4, 4, color.NRGBA{R: 255, A: 255}), false); err != nil {
		t.Fatalf("AddImage: %v", err)
	}

	for _, uv := range []Point{{0, 0}, {0.5, 0.5}, {1, 1}} {
		got, err := set.SampleTexture("red", uv.X, uv.Y)
		if err != nil {
			t.Fatalf("SampleTexture: %v", err)
		}
		if got != Red {
			t.Errorf("SampleTexture(%v) = %+v, want Red", uv, got)
		}
	}

	if w, h, ok := set.Size("red"); !ok || w != 4 || h != 4 {
		t.Errorf("Size = %d, %d, %v, want 4, 4, true", w, h, ok)
	}
}

func TestTextureSet_Unavailable(t *testing.T) {
	set := NewTextureSet(FilterBilinear)
	if _, err := set.SampleTexture("nope", 0.5, 0.5); !errors.Is(err, ErrTextureUnavailable) {
		t.Errorf("SampleTexture(missing) error = %v, want ErrTextureUnavailable", err)
	}

	_ = set.AddImage("gone", solidImage(1, 1, color.NRGBA{A: 255}), false)
	set.Remove("gone")
	if _, err := set.SampleTexture("gone", 0, 0); !errors.Is(err, ErrTextureUnavailable) {
		t.Errorf("SampleTexture(removed) error = %v, want ErrTextureUnavailable", err)
	}
	if _, _, ok := set.Size("gone"); ok {
		t.Error("Size(removed) should report false")
	}
}

func TestTextureSet_AddImageEmpty(t *testing.T) {
	set := NewTextureSet(FilterNearest)
	if err := set.AddImage("empty", image.NewNRGBA(image.Rectangle{}), false); err == nil {
		t.Error("AddImage(empty) should fail")
	}
}

func TestTextureSet_LoadBuiltin(t *testing.T) {
	tests := []struct {
		ref  TextureRef
		size int
	}{
		{BuiltinChecker, 0},
		{BuiltinUV, 0},
		{BuiltinDisc, 0},
		{BuiltinChecker, 16},
	}
	for _, tt := range tests {
		t.Run(string(tt.ref), func(t *testing.T) {
			set := NewTextureSet(FilterBilinear)
			if err := set.LoadTexture(tt.ref, tt.size); err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			want := builtinSize
			if tt.size > 0 {
				want = tt.size
			}
			if w, h, ok := set.Size(tt.ref); !ok || w != want || h != want {
				t.Errorf("Size = %d×%d, want %d×%d", w, h, want, want)
			}
		})
	}

	set := NewTextureSet(FilterNearest)
	if err := set.LoadTexture("builtin:nothing", 0); err == nil {
		t.Error("unknown builtin should fail")
	}
}

func TestTextureSet_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blue.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, solidImage(3, 5, color.NRGBA{B: 255, A: 255})); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	set := NewTextureSet(FilterBicubic)
	if err := set.LoadTexture(TextureRef(path), 0); err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	got, err := set.SampleTexture(TextureRef(path), 0.5, 0.5)
	if err != nil {
		t.Fatalf("SampleTexture: %v", err)
	}
	if !nearColor(got, Blue, 1.0/255) {
		t.Errorf("SampleTexture = %+v, want Blue", got)
	}

	if err := set.LoadTexture(TextureRef(filepath.Join(t.TempDir(), "missing.png")), 0); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadTexture(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestTextureSet_ConcurrentSampleAndRegister(t *testing.T) {
	set := NewTextureSet(FilterBilinear)
	_ = set.AddImage("a", solidImage(2, 2, color.NRGBA{G: 255, A: 255}), true)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				if _, err := set.SampleTexture("a", 0.3, 0.7); err != nil {
					t.Errorf("SampleTexture: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			ref := TextureRef(string(rune('b' + i)))
			_ = set.AddImage(ref, solidImage(1, 1, color.NRGBA{A: 255}), false)
		}()
	}
	wg.Wait()

	// Concurrent writers each publish a new snapshot; none may be lost.
	for _, ref := range []TextureRef{"a", "b", "c", "d", "e"} {
		if _, _, ok := set.Size(ref); !ok {
			t.Errorf("texture %q missing after concurrent registration", ref)
		}
	}
}

func TestTextureSet_RemoveDuringSampling(t *testing.T) {
	set := NewTextureSet(FilterNearest)
	_ = set.AddImage("a", solidImage(2, 2, color.NRGBA{R: 255, A: 255}), true)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 200 {
			c, err := set.SampleTexture("a", 0.5, 0.5)
			if err != nil {
				if !errors.Is(err, ErrTextureUnavailable) {
					t.Errorf("SampleTexture error = %v", err)
				}
				return
			}
			if c.R != 1 {
				t.Errorf("SampleTexture = %+v, want red", c)
				return
			}
		}
	}()
	set.Remove("a")
	wg.Wait()

	if _, err := set.SampleTexture("a", 0.5, 0.5); !errors.Is(err, ErrTextureUnavailable) {
		t.Errorf("after Remove error = %v, want ErrTextureUnavailable", err)
	}
}
