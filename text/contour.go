package text

import (
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

type point struct{ x, y float32 }

func (p point) add(q point) point     { return point{p.x + q.x, p.y + q.y} }
func (p point) sub(q point) point     { return point{p.x - q.x, p.y - q.y} }
func (p point) scale(s float32) point { return point{p.x * s, p.y * s} }
func midpoint(a, b point) point       { return a.add(b).scale(0.5) }
func curveOf(a, b, c point) Curve     { return Curve{a.x, a.y, b.x, b.y, c.x, c.y} }
func lineCurve(a, b point) Curve      { return curveOf(a, midpoint(a, b), b) }
func toPoint(p ot.SegmentPoint) point { return point{p.X, p.Y} }

// processContour appends the quadratic curves of an outline to dst and
// returns the extended slice. Coordinates are divided by em.
//
// Lines become quadratics with a midpoint control. Cubics are split into
// two quadratics: c0 = p1 + 3/4(p2-p1), c1 = p4 + 3/4(p3-p4), joined at
// their midpoint. Open contours are closed with a line.
//
// The fragment shader expects clockwise outer contours. TrueType outlines
// are counter-clockwise in that convention, so unless reverseFill is set
// every curve added here has its end points swapped.
func processContour(dst []Curve, segs []font.Segment, em float32, reverseFill bool) []Curve {
	start := len(dst)
	inv := 1 / em

	var first, pen point
	open := false
	closeContour := func() {
		if open && pen != first {
			dst = append(dst, lineCurve(pen, first))
		}
		open = false
	}

	for i := range segs {
		s := &segs[i]
		switch s.Op {
		case ot.SegmentOpMoveTo:
			closeContour()
			first = toPoint(s.Args[0]).scale(inv)
			pen = first
			open = true
		case ot.SegmentOpLineTo:
			p := toPoint(s.Args[0]).scale(inv)
			dst = append(dst, lineCurve(pen, p))
			pen = p
			open = true
		case ot.SegmentOpQuadTo:
			c := toPoint(s.Args[0]).scale(inv)
			p := toPoint(s.Args[1]).scale(inv)
			dst = append(dst, curveOf(pen, c, p))
			pen = p
			open = true
		case ot.SegmentOpCubeTo:
			p2 := toPoint(s.Args[0]).scale(inv)
			p3 := toPoint(s.Args[1]).scale(inv)
			p4 := toPoint(s.Args[2]).scale(inv)
			c0 := pen.add(p2.sub(pen).scale(0.75))
			c1 := p4.add(p3.sub(p4).scale(0.75))
			d := midpoint(c0, c1)
			dst = append(dst, curveOf(pen, c0, d), curveOf(d, c1, p4))
			pen = p4
			open = true
		}
	}
	closeContour()

	if !reverseFill {
		for i := start; i < len(dst); i++ {
			c := &dst[i]
			c.X1, c.X3 = c.X3, c.X1
			c.Y1, c.Y3 = c.Y3, c.Y1
		}
	}
	return dst
}
