package text

import (
	"slices"
	"testing"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

func seg(op ot.SegmentOp, pts ...float32) font.Segment {
	s := font.Segment{Op: op}
	for i := 0; i+1 < len(pts); i += 2 {
		s.Args[i/2] = ot.SegmentPoint{X: pts[i], Y: pts[i+1]}
	}
	return s
}

func TestProcessContourLine(t *testing.T) {
	segs := []font.Segment{
		seg(ot.SegmentOpMoveTo, 0, 0),
		seg(ot.SegmentOpLineTo, 4, 0),
		seg(ot.SegmentOpLineTo, 0, 0),
	}
	got := processContour(nil, segs, 1, true)
	want := []Curve{
		{0, 0, 2, 0, 4, 0},
		{4, 0, 2, 0, 0, 0},
	}
	if !slices.Equal(got, want) {
		t.Errorf("processContour() = %v, want %v", got, want)
	}
}

func TestProcessContourQuadAndScale(t *testing.T) {
	segs := []font.Segment{
		seg(ot.SegmentOpMoveTo, 0, 0),
		seg(ot.SegmentOpQuadTo, 2, 4, 4, 0),
		seg(ot.SegmentOpLineTo, 0, 0),
	}
	got := processContour(nil, segs, 2, true)
	want := []Curve{
		{0, 0, 1, 2, 2, 0},
		{2, 0, 1, 0, 0, 0},
	}
	if !slices.Equal(got, want) {
		t.Errorf("processContour() = %v, want %v", got, want)
	}
}

func TestProcessContourCubicSplit(t *testing.T) {
	segs := []font.Segment{
		seg(ot.SegmentOpMoveTo, 0, 0),
		seg(ot.SegmentOpCubeTo, 4, 0, 4, 4, 0, 4),
	}
	got := processContour(nil, segs, 1, true)
	want := []Curve{
		{0, 0, 3, 0, 3, 2},
		{3, 2, 3, 4, 0, 4},
		// closing line back to the start
		{0, 4, 0, 2, 0, 0},
	}
	if !slices.Equal(got, want) {
		t.Errorf("processContour() = %v, want %v", got, want)
	}
}

func TestProcessContourSwapsTrueTypeWinding(t *testing.T) {
	segs := []font.Segment{
		seg(ot.SegmentOpMoveTo, 0, 0),
		seg(ot.SegmentOpQuadTo, 1, 2, 2, 0),
	}
	prefix := []Curve{{9, 9, 9, 9, 9, 9}}
	got := processContour(slices.Clone(prefix), segs, 1, false)

	if got[0] != prefix[0] {
		t.Errorf("existing curve modified: %v", got[0])
	}
	if want := (Curve{2, 0, 1, 2, 0, 0}); got[1] != want {
		t.Errorf("quad = %v, want %v", got[1], want)
	}
	if want := (Curve{0, 0, 1, 0, 2, 0}); got[2] != want {
		t.Errorf("closing line = %v, want %v", got[2], want)
	}
}

func TestProcessContourMultipleContours(t *testing.T) {
	segs := []font.Segment{
		seg(ot.SegmentOpMoveTo, 0, 0),
		seg(ot.SegmentOpLineTo, 1, 0),
		seg(ot.SegmentOpLineTo, 1, 1),
		seg(ot.SegmentOpMoveTo, 5, 5),
		seg(ot.SegmentOpLineTo, 6, 5),
		seg(ot.SegmentOpLineTo, 5, 5),
	}
	got := processContour(nil, segs, 1, true)
	// 2 lines + close, then 2 lines already closed
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5: %v", len(got), got)
	}
	if want := (Curve{1, 1, 0.5, 0.5, 0, 0}); got[2] != want {
		t.Errorf("close of first contour = %v, want %v", got[2], want)
	}
}

func TestProcessContourEmpty(t *testing.T) {
	if got := processContour(nil, nil, 1000, false); len(got) != 0 {
		t.Errorf("processContour(nil) = %v, want empty", got)
	}
}

func TestProcessContourDeterministic(t *testing.T) {
	m := newTestManager(t)
	h := m.handles[0]
	face, err := h.open()
	if err != nil {
		t.Fatal(err)
	}
	gid, ok := face.NominalGlyph('g')
	if !ok {
		t.Fatal("no glyph for 'g'")
	}
	out, ok := face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		t.Fatal("'g' has no outline")
	}
	em := float32(face.Upem())

	a := processContour(nil, out.Segments, em, h.reverseFill)
	b := processContour(nil, out.Segments, em, h.reverseFill)
	if len(a) == 0 {
		t.Fatal("no curves for 'g'")
	}
	if !slices.Equal(a, b) {
		t.Error("processContour is not deterministic")
	}
}
