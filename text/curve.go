package text

// Curve is a quadratic Bezier segment in em units: start point, control
// point and end point.
type Curve struct {
	X1, Y1 float32
	X2, Y2 float32
	X3, Y3 float32
}

// CurvePool is the append-only store of every curve of every loaded glyph.
// Glyphs reference it by (start, count) ranges, so curves are never
// removed or reordered.
type CurvePool struct {
	curves  []Curve
	version uint64
}

// Len returns the number of curves in the pool.
func (p *CurvePool) Len() int {
	return len(p.curves)
}

// Curves returns the pool contents. The returned slice must not be
// modified; it stays valid after later appends.
func (p *CurvePool) Curves() []Curve {
	return p.curves[:len(p.curves):len(p.curves)]
}

// Version increases every time curves are appended. Consumers that mirror
// the pool on the GPU compare versions to decide whether to re-upload.
func (p *CurvePool) Version() uint64 {
	return p.version
}

// appendCurves adds cs and returns the index of the first added curve.
func (p *CurvePool) appendCurves(cs []Curve) int {
	start := len(p.curves)
	if len(cs) == 0 {
		return start
	}
	p.curves = append(p.curves, cs...)
	p.version++
	return start
}

func (p *CurvePool) reset() {
	p.curves = nil
	p.version++
}
