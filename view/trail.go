package view

import "math"

const (
	trailThickness = 2
	trailSpan      = 0.5
)

// TrailIndices triangulates the 8 vertices returned by CursorTrail.Update:
// the trail quad, then the four sides joining it to the cursor quad.
var TrailIndices = [30]uint32{
	4, 5, 6, 6, 5, 7,
	0, 2, 4, 4, 2, 6,
	0, 1, 4, 4, 1, 5,
	1, 3, 5, 5, 3, 7,
	2, 3, 6, 6, 3, 7,
}

// CursorTrail animates the smear left behind when the cursor jumps.
type CursorTrail struct {
	// TrailLength is the exponent applied to the jump distance.
	TrailLength float32
	// LerpFactor is the fraction of the trail removed per Update.
	LerpFactor float32

	prev     Vec2
	prevPrev Vec2
	trail    Vec2
}

// NewCursorTrail returns a trail with the given parameters, resting at
// the origin.
func NewCursorTrail(trailLength, lerpFactor float32) *CursorTrail {
	return &CursorTrail{TrailLength: trailLength, LerpFactor: lerpFactor}
}

// Update advances the animation for a cursor drawn at (x, y) with size
// w x h and returns the vertices: 0-3 are the cursor corners (bottom-left,
// bottom-right, top-left, top-right), 4-7 the matching trail corners.
func (c *CursorTrail) Update(x, y, w, h float32) [8]Vec2 {
	curr := Vec2{x + w/2, y + h/2}
	if curr != c.prev {
		c.prevPrev = c.prev
		dist := curr.Sub(c.prev).Len()
		reach := float32(math.Pow(float64(dist), float64(c.TrailLength)))
		c.trail = curr.Add(c.prev.Sub(curr).Normalize().Mul(reach))
	}
	c.prev = curr

	xf := curr.X + trailThickness*(c.trail.X-curr.X)
	yf := curr.Y + trailThickness*(c.trail.Y-curr.Y)

	c.trail = c.trail.Sub(c.trail.Sub(curr).Mul(c.LerpFactor))

	x1, y1 := x+w, y+h
	return [8]Vec2{
		{x, y},
		{x1, y},
		{x, y1},
		{x1, y1},
		{x + trailSpan*(xf-x), y + trailSpan*(yf-y)},
		{x1 + trailSpan*(xf-x1), y + trailSpan*(yf-y)},
		{x + trailSpan*(xf-x), y1 + trailSpan*(yf-y1)},
		{x1 + trailSpan*(xf-x1), y1 + trailSpan*(yf-y1)},
	}
}

// Trail returns the current trail point.
func (c *CursorTrail) Trail() Vec2 {
	return c.trail
}

// Moving reports whether the trail is still visibly detached from the
// cursor centre.
func (c *CursorTrail) Moving() bool {
	return c.trail.Sub(c.prev).Len() > 1e-3
}
