package text

import "math"

// DefaultColor is the packed colour of uncoloured quads: opaque white.
const DefaultColor uint32 = 0xffffffff

// PackRGBA packs a straight-alpha colour the way the shader unpacks it,
// red in the low byte.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// NoWrap disables soft wrapping.
const NoWrap float32 = math.MaxFloat32

// CursorPos is a position in laid-out text: a 1-indexed line and a
// 0-indexed character within it.
type CursorPos struct {
	Line int
	Char int
}

// Quad is one rendered glyph instance. X, Y is the pen position; U0, V0
// and U1, V1 are the glyph's bounding box in em units relative to the pen
// (bottom-left, top-right). Start and Count select the glyph's curves.
type Quad struct {
	X, Y   float32
	U0, V0 float32
	U1, V1 float32
	Start  uint32
	Count  uint32
	Color  uint32
}

// Colorizer chooses a colour per character. Line is 1-indexed, char is
// 0-indexed, as in CursorPos.
type Colorizer interface {
	ColorAt(line, char int) uint32
}

// Layout is the result of laying out one string.
type Layout struct {
	Quads []Quad

	// CursorX and CursorY locate the cursor cell; Advance and Height are
	// its size.
	CursorX float32
	CursorY float32
	Advance float32
	Height  float32
}

// DrawText lays out s with its first baseline at (x, y), loading any
// missing glyphs first. Lines advance downwards by the line height and
// every character advances by the fixed cell width. A blank glyph whose
// pen position is past wrap starts a new visual line instead.
//
// When cursor is nil no cursor is tracked and the result reports the final
// pen position.
func DrawText(m *GlyphManager, x, y float32, s string, wrap float32, cursor *CursorPos) Layout {
	var l Layouter
	l.m = m
	return l.DrawText(x, y, s, wrap, cursor)
}

// Layouter lays out several strings into one reusable quad buffer, which
// is what a frame submits to the GPU.
type Layouter struct {
	m         *GlyphManager
	colorizer Colorizer
	quads     []Quad
}

// NewLayouter returns a Layouter drawing glyphs from m.
func NewLayouter(m *GlyphManager) *Layouter {
	return &Layouter{m: m}
}

// SetColorizer sets the colour source for subsequent DrawText calls. A nil
// Colorizer draws everything in DefaultColor.
func (l *Layouter) SetColorizer(c Colorizer) {
	l.colorizer = c
}

// Begin discards the quads of the previous frame.
func (l *Layouter) Begin() {
	l.quads = l.quads[:0]
}

// Quads returns every quad appended since Begin.
func (l *Layouter) Quads() []Quad {
	return l.quads
}

// Manager returns the glyph source.
func (l *Layouter) Manager() *GlyphManager {
	return l.m
}

// DrawText appends the quads of s and returns its layout. Layout.Quads is
// the appended range, which is only valid until the next Begin.
func (l *Layouter) DrawText(x, y float32, s string, wrap float32, cursor *CursorPos) Layout {
	m := l.m
	m.LoadGlyphsInStr(s)

	m.mu.Lock()
	defer m.mu.Unlock()

	first := len(l.quads)
	advance, height := m.advance, m.height

	cursorLine, cursorChar := math.MaxInt, math.MaxInt
	if cursor != nil {
		cursorLine, cursorChar = cursor.Line, cursor.Char
	}

	originX := x
	cx, cy := x, y
	lastY := y
	found := false
	line, char := 1, 0

	for _, r := range s {
		g := m.glyphLocked(r)

		if !found && line == cursorLine && char == cursorChar {
			found = true
			cx, cy = x, y
		}
		// the cursor sits past the end of its line
		if !found && cursorLine != math.MaxInt && line == cursorLine+1 {
			found = true
			cx, cy = originX, lastY
		}

		if r == '\r' {
			continue
		}
		if r == '\n' {
			x = originX
			lastY = y
			y -= height
			char = 0
			line++
			continue
		}

		col := char
		char++

		if x > wrap && !g.Renders() {
			x = originX
			lastY = y
			y -= height
			continue
		}

		if g.Renders() {
			color := DefaultColor
			if l.colorizer != nil {
				color = l.colorizer.ColorAt(line, col)
			}
			l.quads = append(l.quads, Quad{
				X:     x,
				Y:     y,
				U0:    g.BearingX,
				V0:    g.BearingY - g.Height,
				U1:    g.BearingX + g.Width,
				V1:    g.BearingY,
				Start: uint32(g.Start),
				Count: uint32(g.Count),
				Color: color,
			})
		}
		x += advance
	}

	if !found {
		cx, cy = x, y
	}

	return Layout{
		Quads:   l.quads[first:len(l.quads):len(l.quads)],
		CursorX: cx,
		CursorY: cy,
		Advance: advance,
		Height:  height,
	}
}
