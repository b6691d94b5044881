package shader

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tiledbg"
)

func TestSource_Embedded(t *testing.T) {
	if Source == "" {
		t.Fatal("shader source is empty")
	}
	for _, want := range []string{
		"fn " + VertexEntryPoint,
		"fn " + FragmentEntryPoint,
		"@binding(0) var<uniform>",
		"@binding(1) var tile_texture",
		"@binding(2) var tile_sampler",
	} {
		if !strings.Contains(Source, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
}

// TestCompile tests that the WGSL shader compiles to SPIR-V.
func TestCompile(t *testing.T) {
	words, err := Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(words) == 0 {
		t.Fatal("SPIR-V output is empty")
	}
	if words[0] != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", words[0])
	}

	raw, err := SPIRVBytes()
	if err != nil {
		t.Fatalf("SPIRVBytes: %v", err)
	}
	if len(raw) != len(words)*4 || binary.LittleEndian.Uint32(raw) != words[0] {
		t.Error("SPIRVBytes does not match the compiled words")
	}
}

func TestNewUniforms(t *testing.T) {
	p, err := tiledbg.NewParams(
		tiledbg.WithBaseTileSize(64),
		tiledbg.WithScale(2),
		tiledbg.WithRotation(math.Pi/2),
		tiledbg.WithStagger(0.5),
		tiledbg.WithSpacing(0.25),
		tiledbg.WithScroll(tiledbg.Pt(0, 10)),
		tiledbg.WithTint(tiledbg.RGBA{R: 1, G: 0.5, B: 0.25, A: 0.75}),
	)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}

	u := NewUniforms(p, 1e7)
	if u.Period != 32 || u.Stagger != 0.5 || u.Spacing != 0.25 {
		t.Errorf("period/stagger/spacing = %v/%v/%v", u.Period, u.Stagger, u.Spacing)
	}
	if math.Abs(float64(u.Cos)) > 1e-6 || math.Abs(float64(u.Sin)+1) > 1e-6 {
		t.Errorf("cos/sin = %v/%v, want 0/-1", u.Cos, u.Sin)
	}
	if u.Tint != (RGBA32{1, 0.5, 0.25, 0.75}) {
		t.Errorf("Tint = %v", u.Tint)
	}

	// The offset stays within one lattice period however large the time.
	off := p.ScrollOffset(1e7)
	if math.Abs(float64(u.ScrollOffset[0])-off.X) > 1e-4 || math.Abs(float64(u.ScrollOffset[1])-off.Y) > 1e-4 {
		t.Errorf("ScrollOffset = %v, want %v", u.ScrollOffset, off)
	}
	for _, v := range u.ScrollOffset {
		if v < 0 || v >= 64 {
			t.Errorf("scroll offset component %v outside [0, 64)", v)
		}
	}
}

func TestUniforms_Bytes(t *testing.T) {
	u := Uniforms{
		Tint:         RGBA32{1, 2, 3, 4},
		Cos:          5,
		Sin:          6,
		Period:       7,
		Stagger:      8,
		ScrollOffset: [2]float32{9, 10},
		Spacing:      11,
	}
	b := u.Bytes()
	if len(b) != UniformSize {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), UniformSize)
	}
	for i := range 11 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		if got != float32(i+1) {
			t.Errorf("float at offset %d = %v, want %v", i*4, got, i+1)
		}
	}
	if pad := binary.LittleEndian.Uint32(b[44:]); pad != 0 {
		t.Errorf("padding = %d, want 0", pad)
	}
}

func TestBindGroupLayoutEntries(t *testing.T) {
	entries := BindGroupLayoutEntries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, e := range entries {
		if int(e.Binding) != i {
			t.Errorf("entry %d binding = %d", i, e.Binding)
		}
		if e.Visibility != gputypes.ShaderStageFragment {
			t.Errorf("entry %d visibility = %v, want fragment", i, e.Visibility)
		}
	}
	if entries[BindingUniforms].Buffer == nil || entries[BindingUniforms].Buffer.Type != gputypes.BufferBindingTypeUniform {
		t.Error("binding 0 should be a uniform buffer")
	}
	if entries[BindingTexture].Texture == nil || entries[BindingTexture].Texture.ViewDimension != gputypes.TextureViewDimension2D {
		t.Error("binding 1 should be a 2D texture")
	}
	if entries[BindingSampler].Sampler == nil || entries[BindingSampler].Sampler.Type != gputypes.SamplerBindingTypeFiltering {
		t.Error("binding 2 should be a filtering sampler")
	}
}
