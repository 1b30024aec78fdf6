package text

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/fim"
)

const embeddedFontName = "Go Mono"

// GlyphManager loads glyph outlines from a main font and an ordered list
// of fallback fonts, decomposes them into quadratic curves stored in a
// shared CurvePool, and maps codepoints to GlyphData.
//
// Codepoint 0 always maps to the main font's undefined glyph (.notdef),
// which is what unknown characters render as.
//
// GlyphManager is safe for concurrent use.
type GlyphManager struct {
	mu sync.Mutex

	cfg     managerConfig
	fontMap *fontscan.FontMap

	// handles[0] is the main font once loaded; the rest are fallbacks in
	// search order.
	handles []*fontHandle
	glyphs  map[rune]GlyphData
	missing map[rune]struct{}
	pool    CurvePool

	// system is set once the system fonts are in handles.
	system bool

	advance float32
	height  float32
}

// NewGlyphManager creates an empty manager. Call LoadMainFont before
// laying out text.
func NewGlyphManager(opts ...Option) *GlyphManager {
	cfg := defaultManagerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.embeddedData == nil {
		cfg.embeddedData = gomono.TTF
	}
	return &GlyphManager{
		cfg:     cfg,
		glyphs:  make(map[rune]GlyphData),
		missing: make(map[rune]struct{}),
	}
}

// LoadMainFont selects the main font and eagerly loads every codepoint it
// maps below the scan limit, plus its undefined glyph under codepoint 0.
//
// name is a font file path or a family name. A family that is not
// installed falls back to the system monospace font, then to the
// embedded Go Mono. Calling LoadMainFont again discards every loaded
// glyph and fallback font.
func (m *GlyphManager) LoadMainFont(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, face := m.resolveMain(name)
	if face == nil {
		h = memoryHandle(embeddedFontName, m.cfg.embeddedData)
		var err error
		if face, err = h.open(); err != nil {
			return fmt.Errorf("%w: %w", ErrNoFont, err)
		}
	}

	m.handles = []*fontHandle{h}
	m.system = false
	clear(m.glyphs)
	clear(m.missing)
	m.pool.reset()

	em := float32(face.Upem())
	if ext, ok := face.FontHExtents(); ok {
		m.height = (ext.Ascender - ext.Descender + ext.LineGap) / em
	} else {
		m.height = 1
	}

	if err := m.buildGlyph(h, 0, 0); err != nil {
		fim.Logger().Warn("text: undefined glyph not loaded", "font", h.name, "err", err)
		m.glyphs[0] = GlyphData{Advance: 0.5}
	}
	for r := rune(32); r < m.cfg.scanLimit; r++ {
		gid, ok := face.NominalGlyph(r)
		if !ok {
			continue
		}
		if err := m.buildGlyph(h, r, gid); err != nil {
			fim.Logger().Debug("text: glyph not loaded", "rune", r, "font", h.name, "err", err)
		}
	}

	if g, ok := m.glyphs[' ']; ok {
		m.advance = g.Advance
	} else {
		m.advance = m.glyphs[0].Advance
	}

	fim.Logger().Info("text: main font loaded",
		"font", h.name, "glyphs", len(m.glyphs), "curves", m.pool.Len(),
		"advance", m.advance, "height", m.height)
	return nil
}

// resolveMain returns the handle and opened face of the requested font,
// or a nil face when only the embedded fallback remains.
func (m *GlyphManager) resolveMain(name string) (*fontHandle, *font.Face) {
	if name != "" {
		if st, err := os.Stat(name); err == nil && !st.IsDir() {
			h := fileHandle(name, font.FontID{File: name})
			face, err := h.open()
			if err == nil {
				return h, face
			}
			fim.Logger().Warn("text: font file unusable", "path", name, "err", err)
		}
	}

	fm := m.systemFontMap()
	if fm == nil {
		return nil, nil
	}
	if name != "" {
		if loc, ok := fm.FindSystemFont(name); ok {
			h := fileHandle(name, loc)
			if face, err := h.open(); err == nil {
				return h, face
			}
		}
		fim.Logger().Info("text: font family not found, using monospace", "family", name)
	}

	fm.SetQuery(fontscan.Query{Families: []string{fontscan.Monospace}})
	resolved := fm.ResolveFace('a')
	if resolved == nil {
		return nil, nil
	}
	loc := fm.FontLocation(resolved.Font)
	if loc.File == "" {
		return nil, nil
	}
	h := fileHandle(fontscan.Monospace, loc)
	face, err := h.open()
	if err != nil {
		return nil, nil
	}
	return h, face
}

// systemFontMap returns the font map backed by the system font index, or
// nil when system fonts are disabled or cannot be indexed.
func (m *GlyphManager) systemFontMap() *fontscan.FontMap {
	if !m.cfg.systemFonts {
		return nil
	}
	if m.fontMap != nil {
		return m.fontMap
	}
	fm := fontscan.NewFontMap(scanLogger{})
	if err := fm.UseSystemFonts(m.cfg.cacheDir); err != nil {
		fim.Logger().Warn("text: system fonts unavailable", "err", err)
		return nil
	}
	m.fontMap = fm
	return fm
}

// PrepareFallbackFonts appends every installed system font to the
// fallback list, after the main font. Fonts are only opened when a
// missing codepoint is in their coverage.
func (m *GlyphManager) PrepareFallbackFonts() error {
	if !m.cfg.systemFonts {
		return nil
	}
	footprints, err := fontscan.SystemFonts(scanLogger{}, m.cfg.cacheDir)
	if err != nil {
		return fmt.Errorf("text: list system fonts: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.system {
		return nil
	}
	m.system = true
	for _, fp := range footprints {
		h := fileHandle(fp.Family, fp.Location)
		h.runes = fp.Runes
		h.hasRunes = true
		m.handles = append(m.handles, h)
	}
	clear(m.missing)
	fim.Logger().Debug("text: fallback fonts prepared", "count", len(footprints))
	return nil
}

// AddFallbackFont appends an in-memory font to the fallback list.
func (m *GlyphManager) AddFallbackFont(name string, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFontData
	}
	h := memoryHandle(name, data)
	if _, err := h.open(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.handles = append(m.handles, h)
	clear(m.missing)
	return nil
}

// LoadGlyphsInStr loads every codepoint of s that is not mapped yet,
// searching the main font and then the fallbacks in order. It reports
// whether any glyph was added, in which case the curve pool grew.
// Codepoints no font provides keep rendering as the undefined glyph.
func (m *GlyphManager) LoadGlyphsInStr(s string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	added := false
	for _, r := range s {
		if r == '\r' || r == '\n' {
			continue
		}
		if _, ok := m.glyphs[r]; ok {
			continue
		}
		if _, ok := m.missing[r]; ok {
			continue
		}
		if m.loadRune(r) {
			added = true
		}
	}
	return added
}

// loadRune builds r from the first font that maps it.
func (m *GlyphManager) loadRune(r rune) bool {
	for _, h := range m.handles {
		if !h.mayContain(r) {
			continue
		}
		face, err := h.open()
		if err != nil {
			continue
		}
		gid, ok := face.NominalGlyph(r)
		if !ok {
			continue
		}
		if err := m.buildGlyph(h, r, gid); err != nil {
			fim.Logger().Warn("text: glyph not loaded", "rune", string(r), "font", h.name, "err", err)
			m.missing[r] = struct{}{}
			return false
		}
		return true
	}
	m.missing[r] = struct{}{}
	return false
}

// glyphData reads the drawing data of a glyph.
var glyphData = func(face *font.Face, gid font.GID) font.GlyphData {
	return face.GlyphData(gid)
}

// buildGlyph decomposes glyph gid of h into the pool and maps it under r.
func (m *GlyphManager) buildGlyph(h *fontHandle, r rune, gid font.GID) error {
	face, err := h.open()
	if err != nil {
		return err
	}

	var segs []font.Segment
	switch data := glyphData(face, gid).(type) {
	case font.GlyphOutline:
		segs = data.Segments
	case nil:
		// blank glyph
	default:
		return ErrNoOutline
	}

	em := float32(face.Upem())
	curves := processContour(nil, segs, em, h.reverseFill)
	g := GlyphData{
		Start:   m.pool.appendCurves(curves),
		Count:   len(curves),
		Advance: face.HorizontalAdvance(gid) / em,
	}
	if ext, ok := face.GlyphExtents(gid); ok {
		g.Width = ext.Width / em
		g.Height = -ext.Height / em
		g.BearingX = ext.XBearing / em
		g.BearingY = ext.YBearing / em
	}
	m.glyphs[r] = g
	return nil
}

// Glyph returns the glyph mapped to r, or the undefined glyph.
func (m *GlyphManager) Glyph(r rune) GlyphData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.glyphLocked(r)
}

// HasGlyph reports whether r has its own glyph.
func (m *GlyphManager) HasGlyph(r rune) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.glyphs[r]
	return ok
}

func (m *GlyphManager) glyphLocked(r rune) GlyphData {
	if g, ok := m.glyphs[r]; ok {
		return g
	}
	return m.glyphs[0]
}

// Curves returns the curve pool. Its contents only change inside
// LoadMainFont and LoadGlyphsInStr, which must not run concurrently with
// readers of the pool.
func (m *GlyphManager) Curves() *CurvePool {
	return &m.pool
}

// Advance returns the fixed cell width, the advance of space.
func (m *GlyphManager) Advance() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.advance
}

// Height returns the line height.
func (m *GlyphManager) Height() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.height
}

// Len returns the number of mapped codepoints.
func (m *GlyphManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.glyphs)
}

// FontCount returns the number of fonts searched, main font included.
func (m *GlyphManager) FontCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles)
}

// scanLogger routes fontscan diagnostics to the package logger.
type scanLogger struct{}

func (scanLogger) Printf(format string, args ...interface{}) {
	fim.Logger().Debug("text: fontscan: " + fmt.Sprintf(format, args...))
}
