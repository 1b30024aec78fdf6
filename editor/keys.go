package editor

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key is a symbolic key code. Printable keys use their unshifted ASCII
// value; the rest live above the Unicode range.
type Key rune

// Printable keys the dispatch tables care about.
const (
	Key0 Key = '0'
	Key4 Key = '4'
	KeyA Key = 'a'
	KeyD Key = 'd'
	KeyG Key = 'g'
	KeyH Key = 'h'
	KeyI Key = 'i'
	KeyJ Key = 'j'
	KeyK Key = 'k'
	KeyL Key = 'l'
	KeyO Key = 'o'
	KeyX Key = 'x'
)

// Control keys.
const (
	KeyBackspace Key = 0x08
	KeyTab       Key = '\t'
	KeyReturn    Key = '\r'
	KeyEscape    Key = 0x1b
)

// Non-printable keys.
const (
	KeyUp Key = unicode.MaxRune + 1 + iota
	KeyDown
	KeyLeft
	KeyRight
)

// Mod is a modifier bitset.
type Mod uint16

// Modifier bits.
const (
	ModLShift Mod = 1 << iota
	ModRShift
	ModLCtrl
	ModRCtrl
	ModLAlt
	ModRAlt
	ModCaps

	ModShift = ModLShift | ModRShift
	ModCtrl  = ModLCtrl | ModRCtrl
	ModAlt   = ModLAlt | ModRAlt
)

// Shift reports whether either shift key is held.
func (m Mod) Shift() bool { return m&ModShift != 0 }

// Upper reports whether a letter key produces an upper-case letter, that
// is, shift and caps lock disagree.
func (m Mod) Upper() bool { return m.Shift() != (m&ModCaps != 0) }

var keyNames = map[string]Key{
	"backspace": KeyBackspace,
	"bs":        KeyBackspace,
	"tab":       KeyTab,
	"return":    KeyReturn,
	"enter":     KeyReturn,
	"cr":        KeyReturn,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
}

// shifted maps shifted US-layout symbols back to their key.
var shifted = map[rune]Key{
	'$': Key4,
	')': Key0,
}

// ParseKey parses a key name such as "Esc", "Up", "x", "O" or "$" into the
// key and modifiers a keyboard would report for it.
func ParseKey(name string) (Key, Mod, error) {
	if k, ok := keyNames[strings.ToLower(name)]; ok {
		return k, 0, nil
	}
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || size != len(name) || r > unicode.MaxASCII {
		return 0, 0, fmt.Errorf("editor: unknown key %q", name)
	}
	if k, ok := shifted[r]; ok {
		return k, ModLShift, nil
	}
	if unicode.IsUpper(r) {
		return Key(unicode.ToLower(r)), ModLShift, nil
	}
	return Key(r), 0, nil
}

// String returns a readable key name.
func (k Key) String() string {
	switch k {
	case KeyBackspace:
		return "Backspace"
	case KeyTab:
		return "Tab"
	case KeyReturn:
		return "Return"
	case KeyEscape:
		return "Escape"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	}
	if k >= ' ' && k <= unicode.MaxASCII {
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%#x)", int32(k))
}
