// Package fim is a modal text editor with a GPU vector-font renderer.
//
// # Overview
//
// fim keeps text in a line-oriented buffer with a Unicode-aware cursor and
// edits it through a small vim-like modal state machine. Text is drawn by
// converting font outlines into quadratic Bezier curves once, storing them
// in a shared append-only curve pool, and emitting one screen-space quad per
// visible glyph. A fragment shader resolves coverage from the curves, so no
// glyph atlas is rasterized.
//
// # Packages
//
//   - editor: Line, Buffer, Cursor, Mode and the Editor key dispatch
//   - text: glyph manager (font lookup, contour decomposition) and layout
//   - highlight: best-effort syntax colouring with chroma
//   - config: the fim.conf configuration file
//   - view: camera follow and cursor trail math
//   - render: TextRenderer that uploads quads and curves to the GPU
//   - cmd/fim: headless driver that replays keys against a file
//
// # Quick Start
//
//	ed, err := editor.OpenFile("notes.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ed.HandleKey(editor.KeyI, 0)
//	ed.HandleTextInput("hello")
//	ed.HandleKey(editor.KeyEscape, 0)
//
//	gm := text.NewGlyphManager()
//	if err := gm.LoadMainFont("Free Mono"); err != nil {
//	    log.Fatal(err)
//	}
//	lay := text.NewLayouter(gm)
//	line, char := ed.Cursor()
//	res := lay.DrawText(0, 0, ed.Text(), text.NoWrap, &text.CursorPos{Line: line, Char: char})
//	_ = lay.Quads() // one quad per visible glyph
//	_ = res.CursorX
//
// # Logging
//
// fim is silent by default. Call [SetLogger] to route diagnostics to a
// [log/slog] logger.
package fim
