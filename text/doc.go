// Package text turns strings into GPU-ready glyph quads.
//
// Glyph outlines are read with go-text/typesetting and decomposed into
// quadratic Bezier curves in em units. All curves live in one append-only
// CurvePool; each glyph is a (start, count) range into it plus its metrics.
// The fragment shader in internal/gpu evaluates coverage directly from
// those curves, so glyphs stay sharp at any zoom without an atlas.
//
// Layout uses a fixed cell width (the advance of space),
// a fixed line height, no kerning and no shaping.
//
//	gm := text.NewGlyphManager()
//	if err := gm.LoadMainFont("Free Mono"); err != nil {
//		return err
//	}
//	lay := text.NewLayouter(gm)
//	lay.Begin()
//	res := lay.DrawText(0, 0, "hello\nworld", text.NoWrap, &text.CursorPos{Line: 2, Char: 3})
//	quads := lay.Quads()
//
// Characters missing from the main font are looked up in the fallback
// fonts registered by PrepareFallbackFonts; characters no font provides
// render as the main font's undefined glyph.
package text
