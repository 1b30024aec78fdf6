package editor

import (
	"fmt"
	"slices"

	"github.com/gogpu/fim"
)

// Unbounded as a range end means "through the end of the line".
const Unbounded = -1

// Line is a single line of text. All positions are codepoint offsets.
type Line struct {
	runes []rune
}

// NewLine returns a line holding s.
func NewLine(s string) *Line {
	return &Line{runes: []rune(s)}
}

// Len returns the number of codepoints in the line.
func (l *Line) Len() int { return len(l.runes) }

// String returns the line content.
func (l *Line) String() string { return string(l.runes) }

// Slice returns the content from codepoint start to the end of the line.
// start is clamped to the line.
func (l *Line) Slice(start int) string {
	start = min(max(start, 0), len(l.runes))
	return string(l.runes[start:])
}

// Insert inserts s at codepoint pos. A pos past the end appends.
func (l *Line) Insert(pos int, s string) {
	if s == "" {
		return
	}
	pos = min(max(pos, 0), len(l.runes))
	l.runes = slices.Insert(l.runes, pos, []rune(s)...)
}

// DeleteChar removes the codepoint at pos. It is a no-op on an empty line.
func (l *Line) DeleteChar(pos int) error {
	if len(l.runes) == 0 {
		return nil
	}
	if pos < 0 || pos >= len(l.runes) {
		err := fmt.Errorf("%w: delete char %d of %d", ErrOutOfRange, pos, len(l.runes))
		fim.Logger().Warn("editor: delete failed", "err", err)
		return err
	}
	l.runes = slices.Delete(l.runes, pos, pos+1)
	return nil
}

// DeleteRange removes the codepoints in [start, end). An end of Unbounded
// or past the line length deletes through the end of the line.
func (l *Line) DeleteRange(start, end int) error {
	n := len(l.runes)
	if end < 0 || end > n {
		end = n
	}
	if start < 0 || start > n || start > end {
		err := fmt.Errorf("%w: delete range [%d,%d) of %d", ErrOutOfRange, start, end, n)
		fim.Logger().Warn("editor: delete failed", "err", err)
		return err
	}
	l.runes = slices.Delete(l.runes, start, end)
	return nil
}

// truncate cuts the line at pos and returns the removed tail.
func (l *Line) truncate(pos int) string {
	pos = min(max(pos, 0), len(l.runes))
	tail := string(l.runes[pos:])
	l.runes = l.runes[:pos:pos]
	return tail
}
