package editor

import "math"

// Cursor is a position in a buffer.
type Cursor struct {
	// Line is 1-indexed.
	Line int

	// Char is the codepoint offset into the line.
	Char int

	// Want is the column the cursor returns to when vertical movement
	// passes through shorter lines. It is not clamped until applied.
	Want int
}

// satAdd adds two ints, saturating instead of overflowing.
func satAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// charBound is the largest valid Char on the current line for the
// buffer's mode.
func (b *Buffer) charBound() int {
	n := b.currLine().Len()
	if b.mode == Insert {
		return n
	}
	return max(n, 1) - 1
}

func (b *Buffer) moveToWant() {
	b.cursor.Char = clamp(b.cursor.Want, 0, b.charBound())
}

// MoveCursorBy moves the cursor dLine lines and dChar columns. A non-zero
// dChar redefines the wanted column relative to the current column. With
// sync the wanted column is reset to wherever the cursor landed, so only
// moves made without sync preserve the sticky column.
func (b *Buffer) MoveCursorBy(dChar, dLine int, sync bool) {
	b.cursor.Line = clamp(satAdd(b.cursor.Line, dLine), 1, len(b.lines))
	if dChar != 0 {
		b.cursor.Want = max(satAdd(b.cursor.Char, dChar), 0)
	}
	b.moveToWant()
	if sync {
		b.cursor.Want = b.cursor.Char
	}
}

// MoveCursorLineTo moves to line (1-indexed), clamped to the buffer, and
// re-applies the wanted column.
func (b *Buffer) MoveCursorLineTo(line int) {
	b.cursor.Line = clamp(line, 1, len(b.lines))
	b.moveToWant()
}

// MoveCursorCharTo sets the wanted column to char and applies it.
func (b *Buffer) MoveCursorCharTo(char int) {
	b.cursor.Want = max(char, 0)
	b.moveToWant()
}

// MoveCursorToLastLine moves to the last line keeping the wanted column.
func (b *Buffer) MoveCursorToLastLine() {
	b.MoveCursorLineTo(math.MaxInt)
}

// MoveCursorToLastChar moves to the last valid column of the line. The
// wanted column stays at the maximum so vertical moves keep hugging the
// line ends.
func (b *Buffer) MoveCursorToLastChar() {
	b.MoveCursorCharTo(math.MaxInt)
}
