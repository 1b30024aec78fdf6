package render

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fim"
	"github.com/gogpu/fim/editor"
	"github.com/gogpu/fim/view"
)

// Input forwards host window events to an editor and a camera.
//
// A key that switches into Insert mode also produces a text event for the
// same keystroke; Input drops that one event so the key is not inserted.
type Input struct {
	ed  *editor.Editor
	cam *view.Camera

	swallow bool
}

// NewInput returns an Input driving ed and cam. cam may be nil.
func NewInput(ed *editor.Editor, cam *view.Camera) *Input {
	return &Input{ed: ed, cam: cam}
}

// Bind registers the handlers with src.
func (in *Input) Bind(src gpucontext.EventSource) {
	src.OnKeyPress(in.KeyPress)
	src.OnTextInput(in.TextInput)
	src.OnScroll(in.Scroll)
	src.OnResize(in.Resize)
	src.OnIMECompositionEnd(in.TextInput)
}

// KeyPress dispatches a key press. Keys the editor has no code for are
// ignored.
func (in *Input) KeyPress(key gpucontext.Key, mods gpucontext.Modifiers) {
	k, ok := TranslateKey(key)
	if !ok {
		fim.Logger().Debug("render: unmapped key", "key", key)
		return
	}
	in.swallow = in.ed.HandleKey(k, TranslateMods(mods))
}

// TextInput inserts committed text unless the previous key press asked
// for it to be dropped.
func (in *Input) TextInput(s string) {
	if in.swallow {
		in.swallow = false
		return
	}
	in.ed.HandleTextInput(s)
}

// Scroll zooms the camera; positive dy moves it away.
func (in *Input) Scroll(_, dy float64) {
	if in.cam != nil {
		in.cam.Zoom(float32(dy))
	}
}

// Resize updates the camera aspect ratio.
func (in *Input) Resize(width, height int) {
	if in.cam != nil {
		in.cam.SetViewport(width, height)
	}
}

var punctKeys = map[gpucontext.Key]editor.Key{
	gpucontext.KeySpace:        ' ',
	gpucontext.KeyMinus:        '-',
	gpucontext.KeyEqual:        '=',
	gpucontext.KeyLeftBracket:  '[',
	gpucontext.KeyRightBracket: ']',
	gpucontext.KeyBackslash:    '\\',
	gpucontext.KeySemicolon:    ';',
	gpucontext.KeyApostrophe:   '\'',
	gpucontext.KeyGrave:        '`',
	gpucontext.KeyComma:        ',',
	gpucontext.KeyPeriod:       '.',
	gpucontext.KeySlash:        '/',
	gpucontext.KeyEscape:       editor.KeyEscape,
	gpucontext.KeyTab:          editor.KeyTab,
	gpucontext.KeyBackspace:    editor.KeyBackspace,
	gpucontext.KeyEnter:        editor.KeyReturn,
	gpucontext.KeyUp:           editor.KeyUp,
	gpucontext.KeyDown:         editor.KeyDown,
	gpucontext.KeyLeft:         editor.KeyLeft,
	gpucontext.KeyRight:        editor.KeyRight,
}

// TranslateKey maps a host key code to the editor's key.
func TranslateKey(key gpucontext.Key) (editor.Key, bool) {
	switch {
	case key >= gpucontext.KeyA && key <= gpucontext.KeyZ:
		return editor.Key('a' + rune(key-gpucontext.KeyA)), true
	case key >= gpucontext.Key0 && key <= gpucontext.Key9:
		return editor.Key('0' + rune(key-gpucontext.Key0)), true
	}
	k, ok := punctKeys[key]
	return k, ok
}

// TranslateMods maps host modifiers to editor modifiers. The host does
// not distinguish left from right, so both map to the left bit.
func TranslateMods(mods gpucontext.Modifiers) editor.Mod {
	var m editor.Mod
	if mods.HasShift() {
		m |= editor.ModLShift
	}
	if mods.HasControl() {
		m |= editor.ModLCtrl
	}
	if mods.HasAlt() {
		m |= editor.ModLAlt
	}
	if mods&gpucontext.ModCapsLock != 0 {
		m |= editor.ModCaps
	}
	return m
}
