package tiledbg

// SampleOutput is the result of evaluating the tiling pipeline at one
// surface position.
type SampleOutput struct {
	// Inked reports whether the position lands on the textured part of
	// its tile rather than the surrounding gap.
	Inked bool

	// UV is the texture coordinate in [0,1]×[0,1]. Zero when not inked.
	UV Point

	// Cell is the tile the position belongs to.
	Cell Cell

	// Local is the position inside the cell, in [0, TilePeriod) on both axes.
	Local Point
}

// Sample evaluates the tiling pipeline at a surface position and elapsed
// time: tiling-space transform, cell indexing with stagger, then the
// spacing mask.
//
// Sample is a pure function of its inputs and the receiver; it does not
// allocate and may be called from any number of goroutines.
func (p *Params) Sample(pos Point, elapsed float64) SampleOutput {
	ts := p.ToTilingSpace(pos, elapsed)
	cell, local := IndexTile(ts, p.period, p.stagger)
	inked, uv := MaskTile(local, p.period, p.spacing)
	return SampleOutput{
		Inked: inked,
		UV:    uv,
		Cell:  cell,
		Local: local,
	}
}

// SampleColor evaluates the pipeline and composites the result: the
// texture is fetched through sampler at the computed UV and multiplied by
// the tint. Gap samples are transparent; an unavailable texture yields
// transparent as well. Use a Compositor for a different fallback.
func (p *Params) SampleColor(pos Point, elapsed float64, sampler TextureSampler) RGBA {
	out := p.Sample(pos, elapsed)
	if !out.Inked || sampler == nil {
		return Transparent
	}
	base, err := sampler.SampleTexture(p.texture, out.UV.X, out.UV.Y)
	if err != nil {
		return Transparent
	}
	return Composite(out, p.tint, base)
}
