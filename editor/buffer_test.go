package editor

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func checkInvariants(t *testing.T, b *Buffer) {
	t.Helper()
	c := b.Cursor()
	if b.LineCount() < 1 {
		t.Fatalf("buffer has %d lines", b.LineCount())
	}
	if c.Line < 1 || c.Line > b.LineCount() {
		t.Fatalf("cursor line %d outside [1,%d]", c.Line, b.LineCount())
	}
	n := b.Line(c.Line).Len()
	hi := n
	if b.Mode() != Insert {
		hi = max(n, 1) - 1
	}
	if c.Char < 0 || c.Char > hi {
		t.Fatalf("cursor char %d outside [0,%d] in %s", c.Char, hi, b.Mode())
	}
}

func TestBufferFromText(t *testing.T) {
	b := NewBufferFromText("one\r\ntwo\nthree")
	if got := b.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	if got := b.Text(); got != "one\ntwo\nthree" {
		t.Errorf("Text() = %q", got)
	}
	if b.Modified() {
		t.Error("new buffer should not be modified")
	}
}

func TestMoveCursorInvariants(t *testing.T) {
	for _, mode := range []Mode{Normal, Insert} {
		t.Run(mode.String(), func(t *testing.T) {
			b := NewBufferFromText("short\n\na much longer line here\nx\nmedium line")
			b.SetMode(mode)
			rng := rand.New(rand.NewPCG(1, 2))
			for i := 0; i < 2000; i++ {
				b.MoveCursorBy(rng.IntN(21)-10, rng.IntN(7)-3, rng.IntN(2) == 0)
				checkInvariants(t, b)
			}
		})
	}
}

func TestMoveCursorSaturates(t *testing.T) {
	b := NewBufferFromText("abc\ndef")
	b.MoveCursorToLastChar()
	b.MoveCursorBy(1, 1<<62, false)
	checkInvariants(t, b)
	if c := b.Cursor(); c.Line != 2 || c.Char != 2 {
		t.Errorf("cursor = %+v, want line 2 char 2", c)
	}
	b.MoveCursorBy(-(1 << 62), -(1 << 62), true)
	checkInvariants(t, b)
	if c := b.Cursor(); c.Line != 1 || c.Char != 0 {
		t.Errorf("cursor = %+v, want line 1 char 0", c)
	}
}

func TestStickyColumn(t *testing.T) {
	b := NewBufferFromText("a long first line\nab\n\nxyz\nanother long line")
	b.MoveCursorCharTo(8)
	for i := 0; i < 4; i++ {
		b.MoveCursorBy(0, 1, false)
		checkInvariants(t, b)
	}
	if c := b.Cursor(); c.Line != 5 || c.Char != 8 {
		t.Fatalf("after moving down cursor = %+v, want 5:8", c)
	}
	for i := 0; i < 4; i++ {
		b.MoveCursorBy(0, -1, false)
	}
	if c := b.Cursor(); c.Line != 1 || c.Char != 8 {
		t.Errorf("after moving back up cursor = %+v, want 1:8", c)
	}

	// a horizontal move on a short line redefines the column
	b.MoveCursorBy(0, 1, false)
	b.MoveCursorBy(-1, 0, true)
	b.MoveCursorBy(0, -1, false)
	if c := b.Cursor(); c.Char != 0 {
		t.Errorf("horizontal move should reset sticky column, got char %d", c.Char)
	}
}

func TestModeClamp(t *testing.T) {
	b := NewBufferFromText("abc")
	b.SetMode(Insert)
	b.MoveCursorToLastChar()
	if got := b.Cursor().Char; got != 3 {
		t.Errorf("Insert last char = %d, want 3", got)
	}
	b.SetMode(Normal)
	if got := b.Cursor().Char; got != 2 {
		t.Errorf("Normal last char = %d, want 2", got)
	}

	empty := NewBuffer()
	empty.MoveCursorBy(5, 0, true)
	if got := empty.Cursor().Char; got != 0 {
		t.Errorf("empty line char = %d, want 0", got)
	}
}

func TestInsertText(t *testing.T) {
	b := NewBufferFromText("hd")
	b.SetMode(Insert)
	b.MoveCursorCharTo(1)
	b.InsertText("ello\nworl", true)
	// the tail of the line stays put; new lines open below it
	if got := b.Text(); got != "hellod\nworl" {
		t.Fatalf("Text() = %q, want %q", got, "hellod\nworl")
	}
	if c := b.Cursor(); c.Line != 2 || c.Char != 4 {
		t.Errorf("cursor = %+v, want 2:4", c)
	}
	if !b.Modified() {
		t.Error("InsertText should mark the buffer modified")
	}
}

func TestInsertTextWithoutMovingCursor(t *testing.T) {
	b := NewBufferFromText("ab")
	b.SetMode(Insert)
	b.MoveCursorCharTo(1)
	before := b.Cursor()
	b.InsertText("X\nY", false)
	if got := b.Text(); got != "aXb\nY" {
		t.Fatalf("Text() = %q", got)
	}
	if got := b.Cursor(); got != before {
		t.Errorf("cursor = %+v, want %+v", got, before)
	}
}

func TestInsertLines(t *testing.T) {
	b := NewBufferFromText("one\ntwo")
	b.InsertLines(2, true)
	if got := b.Text(); got != "one\n\n\ntwo" {
		t.Errorf("Text() = %q", got)
	}
	if got := b.Cursor().Line; got != 3 {
		t.Errorf("cursor line = %d, want 3", got)
	}

	b = NewBufferFromText("one\ntwo")
	b.InsertLines(1, false)
	if got := b.Cursor().Line; got != 1 {
		t.Errorf("cursor line = %d, want 1", got)
	}
}

func TestInsertLinesAbove(t *testing.T) {
	b := NewBufferFromText("one\ntwo")
	b.MoveCursorBy(0, 1, true)
	b.InsertLinesAbove(1, true)
	if got := b.Text(); got != "one\n\ntwo" {
		t.Fatalf("Text() = %q", got)
	}
	if got := b.Cursor().Line; got != 2 {
		t.Errorf("cursor line = %d, want 2 (the new line)", got)
	}

	b = NewBufferFromText("one\ntwo")
	b.InsertLinesAbove(2, false)
	if got := b.Line(b.Cursor().Line).String(); got != "one" {
		t.Errorf("cursor should follow the original line, on %q", got)
	}
}

func TestDeleteLineCurr(t *testing.T) {
	b := NewBufferFromText("one\ntwo\nthree")
	b.MoveCursorToLastLine()
	b.DeleteLineCurr()
	if got := b.Text(); got != "one\ntwo" {
		t.Errorf("Text() = %q", got)
	}
	checkInvariants(t, b)

	single := NewBufferFromText("only")
	single.DeleteLineCurr()
	if single.LineCount() != 1 || single.Text() != "" {
		t.Errorf("deleting the last line should clear it, got %d lines %q", single.LineCount(), single.Text())
	}
	checkInvariants(t, single)
}

func TestDeleteLines(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"middle", 2, 3, "1\n3\n4"},
		{"clamped end", 3, 100, "1\n2"},
		{"everything", 1, 100, ""},
		{"empty range", 2, 2, "1\n2\n3\n4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromText("1\n2\n3\n4")
			b.MoveCursorToLastLine()
			b.DeleteLines(tt.start, tt.end)
			if got := b.Text(); got != tt.want {
				t.Errorf("DeleteLines(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
			checkInvariants(t, b)
		})
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	for _, mode := range []Mode{Normal, Insert} {
		for col := 0; col <= 5; col++ {
			b := NewBufferFromText("héllo\nnext")
			b.SetMode(mode)
			b.MoveCursorCharTo(col)
			b.SplitLineBelow()
			checkInvariants(t, b)
			if b.LineCount() != 3 {
				t.Fatalf("split produced %d lines", b.LineCount())
			}
			b.JoinLineBelow()
			if got := b.Text(); got != "héllo\nnext" {
				t.Errorf("%s col %d: split+join = %q", mode, col, got)
			}
			checkInvariants(t, b)
		}
	}
}

func TestJoinLineBelowOnLastLine(t *testing.T) {
	b := NewBufferFromText("a\nb")
	b.MoveCursorToLastLine()
	b.JoinLineBelow()
	if got := b.Text(); got != "a\nb" {
		t.Errorf("Text() = %q", got)
	}
}

func TestBufferString(t *testing.T) {
	b := NewBufferFromText("abc\ndef")
	b.MoveCursorCharTo(1)
	want := "1 \t| a█c\n2 \t| def\n1, 1\n"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestOpenAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("first\nsecond\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if b.Name != "notes.txt" {
		t.Errorf("Name = %q", b.Name)
	}
	if got := b.Text(); got != "first\nsecond" {
		t.Errorf("Text() = %q", got)
	}

	b.SetMode(Insert)
	b.InsertText("1", true)
	if err := b.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if b.Modified() {
		t.Error("Save should clear the modified flag")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "1first\nsecond\n" {
		t.Errorf("saved %q", got)
	}
}

func TestOpenMissingCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	b, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if b.LineCount() != 1 || b.Text() != "" {
		t.Errorf("new file buffer = %q", b.Text())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := NewBuffer().Save(); err != ErrNoPath {
		t.Errorf("Save() = %v, want ErrNoPath", err)
	}
}

func TestLinePanicsOutOfRange(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Line(0) did not panic")
		}
		if !strings.Contains(r.(string), "out of range") {
			t.Errorf("panic = %v", r)
		}
	}()
	NewBuffer().Line(0)
}
