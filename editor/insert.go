package editor

// tabText is what Tab inserts.
const tabText = "    "

func (e *Editor) handleInsert(b *Buffer, k Key) {
	switch k {
	case KeyEscape:
		// Step left from the insertion point, measured before the Normal
		// clamp pulls the cursor off the end of the line.
		c := b.Cursor().Char
		e.setMode(Normal)
		b.MoveCursorCharTo(c - 1)
	case KeyBackspace:
		c := b.Cursor()
		switch {
		case c.Char == 0 && c.Line > 1:
			b.MoveCursorBy(0, -1, true)
			b.MoveCursorToLastChar()
			b.MoveCursorBy(0, 0, true)
			b.JoinLineBelow()
		case c.Char > 0:
			b.MoveCursorBy(-1, 0, true)
			b.DeleteCharCursor()
		}
	case KeyReturn:
		b.SplitLineBelow()
		b.MoveCursorBy(0, 1, true)
		b.MoveCursorCharTo(0)
	case KeyTab:
		b.InsertText(tabText, true)
	case KeyUp:
		b.MoveCursorBy(0, -1, false)
	case KeyDown:
		b.MoveCursorBy(0, 1, false)
	case KeyLeft:
		b.MoveCursorBy(-1, 0, true)
	case KeyRight:
		b.MoveCursorBy(1, 0, true)
	}
}
