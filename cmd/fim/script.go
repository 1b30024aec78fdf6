package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/fim/editor"
)

// replay feeds a key script to ed the way a keyboard would.
//
// "<name>" presses the named key (see editor.ParseKey), "<<" is a literal
// '<' and a newline presses Return. Every other character presses its key
// and, unless the editor swallows it, also delivers the character as text
// input. Characters without a key code are delivered as text only.
func replay(ed *editor.Editor, script string) (int, error) {
	keys := 0
	for len(script) > 0 {
		switch {
		case strings.HasPrefix(script, "<<"):
			type1(ed, "<")
			script = script[2:]
		case script[0] == '<':
			end := strings.IndexByte(script, '>')
			if end < 0 {
				return keys, fmt.Errorf("unterminated key name in %q", script)
			}
			k, m, err := editor.ParseKey(script[1:end])
			if err != nil {
				return keys, err
			}
			ed.HandleKey(k, m)
			script = script[end+1:]
		case script[0] == '\n':
			ed.HandleKey(editor.KeyReturn, 0)
			script = script[1:]
		default:
			r, size := utf8.DecodeRuneInString(script)
			type1(ed, string(r))
			script = script[size:]
		}
		keys++
	}
	return keys, nil
}

func type1(ed *editor.Editor, s string) {
	k, m, err := editor.ParseKey(s)
	if err == nil && ed.HandleKey(k, m) {
		return
	}
	ed.HandleTextInput(s)
}
