// Package shader holds the GPU rendition of the tiled background: an
// embedded WGSL shader, the uniform block it reads and the bind group
// layout a host needs to run it.
//
// The shader evaluates the same per-pixel mapping as tiledbg.Params.Sample.
// Hosts upload Uniforms once per frame, bind the texture and a filtering
// sampler, and draw three vertices with no vertex buffer.
package shader

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/tiledbg"
)

// Source is the WGSL source of the tiled background shader.
//
//go:embed tiled_background.wgsl
var Source string

// Entry points in Source.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Bind group 0 layout.
const (
	BindingUniforms = 0
	BindingTexture  = 1
	BindingSampler  = 2
)

// UniformSize is the byte size of the uniform buffer.
// Layout:
//
//	tint          (vec4<f32>) = 16 bytes (offset 0)
//	transform     (vec4<f32>) = 16 bytes (offset 16)
//	scroll_offset (vec2<f32>) =  8 bytes (offset 32)
//	spacing       (f32)       =  4 bytes (offset 40)
//	_pad          (f32)       =  4 bytes (offset 44)
const UniformSize = 48

// Uniforms mirrors the WGSL Uniforms struct.
type Uniforms struct {
	Tint RGBA32

	// Cos and Sin are of the negated pattern rotation.
	Cos, Sin float32

	// Period is the tile side length in pixels.
	Period float32

	// Stagger is the odd-row shift as a fraction of the tile.
	Stagger float32

	// ScrollOffset is the tiling-space scroll displacement, already
	// reduced modulo the lattice period.
	ScrollOffset [2]float32

	// Spacing is the gap fraction.
	Spacing float32
}

// RGBA32 is a straight-alpha color in shader precision.
type RGBA32 [4]float32

// NewUniforms builds the uniform block for params at the given elapsed
// time. The time-dependent part is reduced in float64 before conversion.
func NewUniforms(p *tiledbg.Params, elapsed float64) Uniforms {
	sin, cos := math.Sincos(-p.Rotation())
	tint := p.Tint()
	off := p.ScrollOffset(elapsed)
	return Uniforms{
		Tint:         RGBA32{float32(tint.R), float32(tint.G), float32(tint.B), float32(tint.A)},
		Cos:          float32(cos),
		Sin:          float32(sin),
		Period:       float32(p.TilePeriod()),
		Stagger:      float32(p.Stagger()),
		ScrollOffset: [2]float32{float32(off.X), float32(off.Y)},
		Spacing:      float32(p.Spacing()),
	}
}

// Bytes encodes the uniforms in the little-endian WGSL layout.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
	}
	for i, v := range u.Tint {
		put(i*4, v)
	}
	put(16, u.Cos)
	put(20, u.Sin)
	put(24, u.Period)
	put(28, u.Stagger)
	put(32, u.ScrollOffset[0])
	put(36, u.ScrollOffset[1])
	put(40, u.Spacing)
	return buf
}

var compiled = sync.OnceValues(func() ([]uint32, error) {
	return compileSPIRV(Source)
})

// Compile translates Source to SPIR-V with naga. The result is cached;
// callers must not modify the returned slice.
func Compile() ([]uint32, error) {
	return compiled()
}

func compileSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: compile tiled background: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is a stream of little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	tiledbg.Logger().Debug("shader: compiled tiled background", "words", len(words))
	return words, nil
}

// SPIRVBytes returns the compiled shader as a little-endian byte stream,
// the form written to .spv files.
func SPIRVBytes() ([]byte, error) {
	words, err := Compile()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out, nil
}

// BindGroupLayoutEntries describes bind group 0:
//
//	Binding 0: Uniforms (uniform buffer, fragment)
//	Binding 1: tile texture (texture_2d<f32>, fragment)
//	Binding 2: filtering sampler (fragment)
func BindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    BindingUniforms,
			Visibility: gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    BindingTexture,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    BindingSampler,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}
