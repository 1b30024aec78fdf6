package editor

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Buffer is an ordered list of lines with a cursor. A buffer always holds
// at least one line and every public method leaves the cursor inside the
// bounds set by the buffer's mode.
type Buffer struct {
	// Name is the file's base name, empty for scratch buffers.
	Name string

	// Path is where Save writes, empty for scratch buffers.
	Path string

	lines    []*Line
	cursor   Cursor
	mode     Mode
	modified bool
}

// NewBuffer returns an empty scratch buffer in Normal mode.
func NewBuffer() *Buffer {
	return &Buffer{
		lines:  []*Line{NewLine("")},
		cursor: Cursor{Line: 1},
	}
}

// NewBufferFromText returns a scratch buffer holding s. Lines are split on
// '\n'; a trailing '\r' on a line is dropped.
func NewBufferFromText(s string) *Buffer {
	b := NewBuffer()
	b.lines = splitLines(s)
	return b
}

func splitLines(s string) []*Line {
	parts := strings.Split(s, "\n")
	lines := make([]*Line, len(parts))
	for i, p := range parts {
		lines[i] = NewLine(strings.TrimSuffix(p, "\r"))
	}
	return lines
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line n (1-indexed). It panics if n is out of range: callers
// derive n from the cursor, so a bad n is a bug, not input.
func (b *Buffer) Line(n int) *Line {
	if n < 1 || n > len(b.lines) {
		panic(fmt.Sprintf("editor: line %d out of range [1,%d]", n, len(b.lines)))
	}
	return b.lines[n-1]
}

func (b *Buffer) currLine() *Line { return b.Line(b.cursor.Line) }

// Cursor returns the cursor.
func (b *Buffer) Cursor() Cursor { return b.cursor }

// Mode returns the buffer's copy of the editing mode.
func (b *Buffer) Mode() Mode { return b.mode }

// SetMode changes the clamp mode and pulls the cursor back inside the new
// bound. The wanted column is left alone.
func (b *Buffer) SetMode(m Mode) {
	b.mode = m
	b.cursor.Char = clamp(b.cursor.Char, 0, b.charBound())
}

// Modified reports whether the buffer changed since it was loaded or saved.
func (b *Buffer) Modified() bool { return b.modified }

// Text returns the buffer content with lines joined by '\n'.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.String())
	}
	return sb.String()
}

// InsertText inserts text at the cursor. Each '\n' in text opens a new line
// below the current one. The cursor ends after the inserted text; without
// moveCursor it is put back where it was.
func (b *Buffer) InsertText(text string, moveCursor bool) {
	old := b.cursor
	for i, seg := range strings.Split(text, "\n") {
		if i != 0 {
			b.InsertLines(1, true)
		}
		b.currLine().Insert(b.cursor.Char, seg)
		b.MoveCursorBy(utf8.RuneCountInString(seg), 0, true)
	}
	b.modified = true
	if !moveCursor {
		b.cursor = old
	}
}

// DeleteCharCursor deletes the codepoint under the cursor.
func (b *Buffer) DeleteCharCursor() {
	if err := b.currLine().DeleteChar(b.cursor.Char); err == nil {
		b.modified = true
	}
}

// DeleteText deletes the codepoints [start, end) of the current line.
// end may be Unbounded.
func (b *Buffer) DeleteText(start, end int) error {
	if err := b.currLine().DeleteRange(start, end); err != nil {
		return err
	}
	b.modified = true
	return nil
}

func emptyLines(n int) []*Line {
	lines := make([]*Line, n)
	for i := range lines {
		lines[i] = NewLine("")
	}
	return lines
}

// InsertLines inserts n empty lines below the current line. With moveCursor
// the cursor moves down onto the last of them.
func (b *Buffer) InsertLines(n int, moveCursor bool) {
	if n <= 0 {
		return
	}
	b.lines = slices.Insert(b.lines, b.cursor.Line, emptyLines(n)...)
	b.modified = true
	if moveCursor {
		b.MoveCursorBy(0, n, true)
	}
}

// InsertLinesAbove inserts n empty lines above the current line. With
// moveCursor the cursor lands on the new line directly above the original;
// without it the cursor follows the original line down.
func (b *Buffer) InsertLinesAbove(n int, moveCursor bool) {
	if n <= 0 {
		return
	}
	b.lines = slices.Insert(b.lines, b.cursor.Line-1, emptyLines(n)...)
	b.modified = true
	if !moveCursor {
		b.MoveCursorBy(0, n, true)
	}
	b.MoveCursorBy(0, 0, true)
}

// DeleteLineCurr removes the current line. The last remaining line is
// cleared instead so the buffer never becomes empty.
func (b *Buffer) DeleteLineCurr() {
	if len(b.lines) == 1 {
		b.lines[0] = NewLine("")
	} else {
		b.lines = slices.Delete(b.lines, b.cursor.Line-1, b.cursor.Line)
	}
	b.modified = true
	b.MoveCursorBy(0, 0, true)
}

// DeleteLines removes lines [start, end) (1-indexed), clamped to the
// buffer. Removing every line leaves one empty line.
func (b *Buffer) DeleteLines(start, end int) {
	lo := clamp(start, 1, len(b.lines)+1) - 1
	hi := clamp(end, 1, len(b.lines)+1) - 1
	if lo >= hi {
		return
	}
	b.lines = slices.Delete(b.lines, lo, hi)
	if len(b.lines) == 0 {
		b.lines = emptyLines(1)
	}
	b.modified = true
	b.MoveCursorBy(0, 0, false)
}

// JoinLineBelow appends the next line to the current one and removes it.
// The cursor does not move. It is a no-op on the last line.
func (b *Buffer) JoinLineBelow() {
	if b.cursor.Line >= len(b.lines) {
		return
	}
	cur := b.currLine()
	next := b.lines[b.cursor.Line]
	cur.Insert(cur.Len(), next.String())
	b.DeleteLines(b.cursor.Line+1, b.cursor.Line+2)
}

// SplitLineBelow moves everything from the cursor column onward to a new
// line below. The cursor stays on the shortened line.
func (b *Buffer) SplitLineBelow() {
	b.InsertLines(1, false)
	tail := b.currLine().truncate(b.cursor.Char)
	b.lines[b.cursor.Line].Insert(0, tail)
	b.moveToWant()
}

// String renders the buffer for debugging: numbered lines, the character
// under the cursor replaced by a block, then "char, line".
func (b *Buffer) String() string {
	var sb strings.Builder
	for i, l := range b.lines {
		num := i + 1
		if num != b.cursor.Line {
			fmt.Fprintf(&sb, "%d \t| %s\n", num, l)
			continue
		}
		r := l.runes
		c := min(b.cursor.Char, len(r))
		rest := ""
		if c < len(r) {
			rest = string(r[c+1:])
		}
		fmt.Fprintf(&sb, "%d \t| %s█%s\n", num, string(r[:c]), rest)
	}
	fmt.Fprintf(&sb, "%d, %d\n", b.cursor.Char, b.cursor.Line)
	return sb.String()
}
