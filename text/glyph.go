package text

// GlyphData locates a glyph's curves in the pool and carries its metrics,
// all normalized by the font's em size.
type GlyphData struct {
	// Start and Count select the glyph's range in the CurvePool.
	Start int
	Count int

	Width    float32
	Height   float32
	BearingX float32
	BearingY float32
	Advance  float32
}

// Renders reports whether the glyph has any curves. Blank glyphs such as
// space do not produce quads.
func (g GlyphData) Renders() bool {
	return g.Count != 0
}
