// Package editor implements the text buffer, cursor and modal key handling
// of fim.
//
// All positions are codepoint offsets. Lines are 1-indexed, columns are
// 0-indexed. The cursor may sit one past the end of a line only in Insert
// mode.
package editor

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/fim"
)

// Editor owns the open buffers and the modal state machine. Only one buffer
// is current at a time.
type Editor struct {
	buffers []*Buffer
	current int
	mode    Mode
}

// New returns an editor with one empty scratch buffer in Normal mode.
func New() *Editor {
	return &Editor{buffers: []*Buffer{NewBuffer()}}
}

// OpenFile returns an editor whose current buffer is loaded from path.
func OpenFile(path string) (*Editor, error) {
	b, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &Editor{buffers: []*Buffer{b}}, nil
}

// AddBuffer appends b and makes it current. b takes the editor's mode.
func (e *Editor) AddBuffer(b *Buffer) {
	e.buffers = append(e.buffers, b)
	e.current = len(e.buffers) - 1
	b.SetMode(e.mode)
}

// SwitchBuffer makes buffer i current.
func (e *Editor) SwitchBuffer(i int) error {
	if i < 0 || i >= len(e.buffers) {
		return fmt.Errorf("%w: buffer %d of %d", ErrOutOfRange, i, len(e.buffers))
	}
	e.current = i
	e.buffers[i].SetMode(e.mode)
	return nil
}

// Buffer returns the current buffer.
func (e *Editor) Buffer() *Buffer { return e.buffers[e.current] }

// Mode returns the editing mode.
func (e *Editor) Mode() Mode { return e.mode }

func (e *Editor) setMode(m Mode) {
	if e.mode != m {
		fim.Logger().Debug("editor: mode change", "from", e.mode, "to", m)
	}
	e.mode = m
	e.Buffer().SetMode(m)
}

// HandleKey dispatches a key press to the handler of the current mode.
// Unrecognized keys are ignored. It reports whether the host should drop
// the text-input event produced by the same keystroke, which is the case
// for keys that switch into Insert mode.
func (e *Editor) HandleKey(k Key, m Mod) (swallowText bool) {
	switch e.mode {
	case Normal:
		return e.handleNormal(e.Buffer(), k, m)
	case Insert:
		e.handleInsert(e.Buffer(), k)
	default:
		// Visual, VisualLine, Replace and Command have no bindings yet.
		// Escape still leaves them.
		if k == KeyEscape {
			e.setMode(Normal)
		}
	}
	return false
}

// HandleTextInput inserts committed text at the cursor. It only has an
// effect in Insert mode. The text is NFC-normalized so composed input and
// pasted text yield the same codepoints.
func (e *Editor) HandleTextInput(s string) {
	if e.mode != Insert || s == "" {
		return
	}
	e.Buffer().InsertText(norm.NFC.String(s), true)
}

// Text returns the current buffer content with lines joined by '\n'.
func (e *Editor) Text() string { return e.Buffer().Text() }

// Cursor returns the cursor of the current buffer as a 1-indexed line and
// a 0-indexed column.
func (e *Editor) Cursor() (line, char int) {
	c := e.Buffer().Cursor()
	return c.Line, c.Char
}

// Save writes the current buffer to its file.
func (e *Editor) Save() error { return e.Buffer().Save() }
