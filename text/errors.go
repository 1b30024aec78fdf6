package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFont is returned when no usable main font could be loaded,
	// including the embedded fallback.
	ErrNoFont = errors.New("text: no usable font")

	// ErrNoOutline is returned for glyphs that only carry bitmap or SVG data.
	ErrNoOutline = errors.New("text: glyph has no outline")
)

// FaceIndexError is returned when a font collection has fewer faces than
// the requested index.
type FaceIndexError struct {
	Index int
	Count int
}

func (e *FaceIndexError) Error() string {
	return fmt.Sprintf("text: face index %d out of range (%d faces)", e.Index, e.Count)
}
