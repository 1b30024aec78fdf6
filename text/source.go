package text

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/fontscan"
)

var (
	tagCFF  = ot.MustNewTag("CFF ")
	tagCFF2 = ot.MustNewTag("CFF2")
)

// fontHandle is a font that can be opened on demand: a file location from
// the system index, or in-memory data.
type fontHandle struct {
	name string
	loc  font.FontID
	data []byte

	// runes is the coverage from the system index, when known. Handles
	// without coverage are asked through their cmap.
	runes    fontscan.RuneSet
	hasRunes bool

	face        *font.Face
	reverseFill bool
	err         error
}

func fileHandle(name string, loc font.FontID) *fontHandle {
	return &fontHandle{name: name, loc: loc}
}

func memoryHandle(name string, data []byte) *fontHandle {
	return &fontHandle{name: name, data: data}
}

// mayContain reports whether r is worth looking up in this font.
func (h *fontHandle) mayContain(r rune) bool {
	return !h.hasRunes || h.runes.Contains(r)
}

// open parses the font once and caches the face, or the failure.
func (h *fontHandle) open() (*font.Face, error) {
	if h.face != nil || h.err != nil {
		return h.face, h.err
	}
	h.face, h.reverseFill, h.err = parseFace(h.data, h.loc)
	if h.err != nil {
		h.err = fmt.Errorf("text: open font %q: %w", h.name, h.err)
	}
	return h.face, h.err
}

// parseFace parses a single face from data, or from loc.File when data is
// nil. CFF outlines use the opposite winding to TrueType and are reported
// as reverseFill.
func parseFace(data []byte, loc font.FontID) (*font.Face, bool, error) {
	if data == nil {
		// #nosec G304 -- path comes from the system font index or the user
		b, err := os.ReadFile(loc.File)
		if err != nil {
			return nil, false, err
		}
		data = b
	}
	if len(data) == 0 {
		return nil, false, ErrEmptyFontData
	}

	loaders, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return nil, false, err
	}
	idx := int(loc.Index)
	if idx >= len(loaders) {
		return nil, false, &FaceIndexError{Index: idx, Count: len(loaders)}
	}
	ld := loaders[idx]

	tables := ld.Tables()
	reverseFill := slices.Contains(tables, tagCFF) || slices.Contains(tables, tagCFF2)

	f, err := font.NewFont(ld)
	if err != nil {
		return nil, false, err
	}
	return font.NewFace(f), reverseFill, nil
}
