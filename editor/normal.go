package editor

func (e *Editor) enterInsert() {
	e.setMode(Insert)
}

func (e *Editor) handleNormal(b *Buffer, k Key, m Mod) (swallowText bool) {
	switch k {
	case KeyReturn:
		b.InsertLines(1, true)
	case KeyUp, KeyK:
		b.MoveCursorBy(0, -1, false)
	case KeyDown, KeyJ:
		b.MoveCursorBy(0, 1, false)
	case KeyLeft, KeyH:
		b.MoveCursorBy(-1, 0, true)
	case KeyRight, KeyL:
		b.MoveCursorBy(1, 0, true)
	case KeyA:
		e.enterInsert()
		b.MoveCursorBy(1, 0, true)
		return true
	case KeyI:
		e.enterInsert()
		return true
	case KeyO:
		e.enterInsert()
		if m.Upper() {
			b.InsertLinesAbove(1, true)
		} else {
			b.InsertLines(1, true)
		}
		return true
	case KeyD:
		if b.LineCount() == 1 {
			_ = b.DeleteText(0, Unbounded)
			b.MoveCursorBy(0, 0, true)
		} else {
			b.DeleteLineCurr()
		}
	case KeyX:
		b.DeleteCharCursor()
		b.MoveCursorBy(0, 0, true)
	case KeyG:
		if m.Upper() {
			b.MoveCursorToLastLine()
		}
	case Key0:
		b.MoveCursorCharTo(0)
	case Key4:
		if m.Shift() {
			b.MoveCursorToLastChar()
		}
	}
	return false
}
