package editor

import "testing"

func press(t *testing.T, e *Editor, names ...string) {
	t.Helper()
	for _, name := range names {
		k, m, err := ParseKey(name)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", name, err)
		}
		e.HandleKey(k, m)
	}
}

func editorWith(text string) *Editor {
	e := New()
	e.buffers[0] = NewBufferFromText(text)
	return e
}

func TestNormalDeleteCharToEmpty(t *testing.T) {
	e := editorWith("hello")
	for i := 0; i < 5; i++ {
		e.HandleKey(KeyX, 0)
	}
	if got := e.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
	if line, char := e.Cursor(); line != 1 || char != 0 {
		t.Errorf("Cursor() = %d:%d, want 1:0", line, char)
	}
	if e.Buffer().LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", e.Buffer().LineCount())
	}
}

func TestInsertTypingScenario(t *testing.T) {
	e := New()
	if !e.HandleKey(KeyI, 0) {
		t.Error("i should ask the host to swallow its text event")
	}
	e.HandleTextInput("foo")
	e.HandleKey(KeyReturn, 0)
	e.HandleTextInput("bar")
	e.HandleKey(KeyEscape, 0)

	if e.Mode() != Normal {
		t.Fatalf("Mode() = %s, want NORMAL", e.Mode())
	}
	if got := e.Text(); got != "foo\nbar" {
		t.Errorf("Text() = %q, want %q", got, "foo\nbar")
	}
	if line, char := e.Cursor(); line != 2 || char != 2 {
		t.Errorf("Cursor() = %d:%d, want 2:2", line, char)
	}
}

func TestTextInputIgnoredOutsideInsert(t *testing.T) {
	e := editorWith("abc")
	e.HandleTextInput("zzz")
	if got := e.Text(); got != "abc" {
		t.Errorf("Text() = %q, want unchanged", got)
	}
}

func TestTextInputNormalized(t *testing.T) {
	e := New()
	e.HandleKey(KeyI, 0)
	e.HandleTextInput("e\u0301")
	if got := e.Buffer().Line(1).Len(); got != 1 {
		t.Errorf("composed input length = %d, want 1", got)
	}
	if got := e.Text(); got != "\u00e9" {
		t.Errorf("Text() = %q, want %q", got, "\u00e9")
	}
}

func TestNormalKeys(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keys     []string
		wantText string
		wantLine int
		wantChar int
		wantMode Mode
	}{
		{"right and left", "abc", []string{"l", "l", "h"}, "abc", 1, 1, Normal},
		{"arrows", "abc\ndef", []string{"Right", "Down", "Up"}, "abc\ndef", 1, 1, Normal},
		{"dollar", "abcdef", []string{"$"}, "abcdef", 1, 5, Normal},
		{"zero", "abcdef", []string{"$", "0"}, "abcdef", 1, 0, Normal},
		{"G", "a\nb\nc", []string{"G"}, "a\nb\nc", 3, 0, Normal},
		{"return opens line", "ab", []string{"Return"}, "ab\n", 2, 0, Normal},
		{"d clears single line", "hello", []string{"$", "d"}, "", 1, 0, Normal},
		{"d deletes line", "one\ntwo\nthree", []string{"j", "d"}, "one\nthree", 2, 0, Normal},
		{"d on last line", "one\ntwo", []string{"j", "d"}, "one", 1, 0, Normal},
		{"a appends", "abc", []string{"$", "a"}, "abc", 1, 3, Insert},
		{"o opens below", "one\ntwo", []string{"o"}, "one\n\ntwo", 2, 0, Insert},
		{"O opens above", "one\ntwo", []string{"j", "O"}, "one\n\ntwo", 2, 0, Insert},
		{"unknown key", "abc", []string{"q", "z"}, "abc", 1, 0, Normal},
		{"x at end", "abc", []string{"$", "x"}, "ab", 1, 1, Normal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := editorWith(tt.text)
			press(t, e, tt.keys...)
			if got := e.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
			if line, char := e.Cursor(); line != tt.wantLine || char != tt.wantChar {
				t.Errorf("Cursor() = %d:%d, want %d:%d", line, char, tt.wantLine, tt.wantChar)
			}
			if e.Mode() != tt.wantMode {
				t.Errorf("Mode() = %s, want %s", e.Mode(), tt.wantMode)
			}
			checkInvariants(t, e.Buffer())
		})
	}
}

func TestInsertKeys(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keys     []string
		wantText string
		wantLine int
		wantChar int
	}{
		{"backspace joins lines", "ab\ncd", []string{"j", "i", "Backspace"}, "abcd", 1, 2},
		{"backspace deletes left", "abc", []string{"l", "l", "i", "Backspace"}, "ac", 1, 1},
		{"backspace at buffer start", "abc", []string{"i", "Backspace"}, "abc", 1, 0},
		{"return splits", "abcd", []string{"l", "l", "i", "Return"}, "ab\ncd", 2, 0},
		{"tab", "x", []string{"i", "Tab"}, "    x", 1, 4},
		{"arrow right past end", "ab", []string{"a", "Right", "Right"}, "ab", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := editorWith(tt.text)
			press(t, e, tt.keys...)
			if e.Mode() != Insert {
				t.Fatalf("Mode() = %s, want INSERT", e.Mode())
			}
			if got := e.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
			if line, char := e.Cursor(); line != tt.wantLine || char != tt.wantChar {
				t.Errorf("Cursor() = %d:%d, want %d:%d", line, char, tt.wantLine, tt.wantChar)
			}
			checkInvariants(t, e.Buffer())
		})
	}
}

func TestEscapeStepsLeft(t *testing.T) {
	e := editorWith("abc")
	press(t, e, "a", "Escape")
	if _, char := e.Cursor(); char != 0 {
		t.Errorf("char after a+Esc = %d, want 0", char)
	}
	press(t, e, "$", "a", "Escape")
	if _, char := e.Cursor(); char != 2 {
		t.Errorf("char after $a+Esc = %d, want 2", char)
	}
}

func TestDeclaredModesIgnoreKeys(t *testing.T) {
	for _, m := range []Mode{Visual, VisualLine, Replace, Command} {
		e := editorWith("abc")
		e.setMode(m)
		if e.HandleKey(KeyX, 0) {
			t.Errorf("%s: x should not swallow text", m)
		}
		if got := e.Text(); got != "abc" {
			t.Errorf("%s: x changed text to %q", m, got)
		}
		e.HandleKey(KeyEscape, 0)
		if e.Mode() != Normal {
			t.Errorf("%s: Escape left mode %s", m, e.Mode())
		}
	}
}

func TestModeSyncedWithBuffer(t *testing.T) {
	e := New()
	e.HandleKey(KeyI, 0)
	if e.Buffer().Mode() != Insert {
		t.Errorf("buffer mode = %s, want INSERT", e.Buffer().Mode())
	}
	e.AddBuffer(NewBufferFromText("second"))
	if e.Buffer().Mode() != Insert {
		t.Errorf("added buffer mode = %s, want INSERT", e.Buffer().Mode())
	}
	if err := e.SwitchBuffer(0); err != nil {
		t.Fatalf("SwitchBuffer(0): %v", err)
	}
	if err := e.SwitchBuffer(5); err == nil {
		t.Error("SwitchBuffer(5) should fail")
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		key     Key
		mod     Mod
		wantErr bool
	}{
		{"x", KeyX, 0, false},
		{"O", KeyO, ModLShift, false},
		{"$", Key4, ModLShift, false},
		{"Esc", KeyEscape, 0, false},
		{"ENTER", KeyReturn, 0, false},
		{"up", KeyUp, 0, false},
		{"", 0, 0, true},
		{"xyz", 0, 0, true},
		{"é", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, m, err := ParseKey(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKey(%q) error = %v", tt.name, err)
			}
			if k != tt.key || m != tt.mod {
				t.Errorf("ParseKey(%q) = %v,%v want %v,%v", tt.name, k, m, tt.key, tt.mod)
			}
		})
	}
}

func TestModUpper(t *testing.T) {
	if !ModRShift.Upper() {
		t.Error("shift should be upper")
	}
	if (ModShift | ModCaps).Upper() {
		t.Error("shift with caps lock should be lower")
	}
	if !ModCaps.Upper() {
		t.Error("caps lock should be upper")
	}
}
