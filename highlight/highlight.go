// Package highlight colours buffer text with chroma lexers and styles.
//
// A Highlighter implements text.Colorizer, so its colours flow straight
// into the glyph quads, and can also print the same text to a truecolor
// terminal.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/gogpu/fim"
	"github.com/gogpu/fim/text"
)

// DefaultStyle is used when no style name is given.
const DefaultStyle = "monokai"

type span struct {
	start, end int // rune columns, end exclusive
	color      uint32
}

// Highlighter holds per-line colour spans for the last text passed to
// Update.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	def   uint32
	lines [][]span
}

// New picks a lexer by filename and a style by name. Unknown filenames
// use the plain-text lexer and unknown styles chroma's fallback style.
func New(filename, styleName string) *Highlighter {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	if styleName == "" {
		styleName = DefaultStyle
	}
	style := styles.Get(styleName)

	h := &Highlighter{
		lexer: chroma.Coalesce(lexer),
		style: style,
		def:   text.DefaultColor,
	}
	if c := style.Get(chroma.Text).Colour; c.IsSet() {
		h.def = pack(c)
	}
	fim.Logger().Debug("highlight: configured", "file", filename,
		"lexer", lexer.Config().Name, "style", style.Name)
	return h
}

// Lexer returns the name of the selected lexer.
func (h *Highlighter) Lexer() string {
	return h.lexer.Config().Name
}

// Style returns the name of the selected style.
func (h *Highlighter) Style() string {
	return h.style.Name
}

func pack(c chroma.Colour) uint32 {
	return text.PackRGBA(c.Red(), c.Green(), c.Blue(), 0xff)
}

// Update re-tokenises src. Columns count runes the way text layout does,
// ignoring carriage returns.
func (h *Highlighter) Update(src string) error {
	it, err := h.lexer.Tokenise(nil, src)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}

	lines := [][]span{nil}
	col := 0
	for _, tok := range it.Tokens() {
		color := h.def
		if c := h.style.Get(tok.Type).Colour; c.IsSet() {
			color = pack(c)
		}
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
				col = 0
			}
			n := 0
			for _, r := range part {
				if r != '\r' {
					n++
				}
			}
			if n == 0 {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], span{start: col, end: col + n, color: color})
			col += n
		}
	}
	h.lines = lines
	return nil
}

// ColorAt returns the colour of the character at a 1-indexed line and
// 0-indexed column, or the style's text colour outside any token.
func (h *Highlighter) ColorAt(line, char int) uint32 {
	if line < 1 || line > len(h.lines) {
		return h.def
	}
	for _, s := range h.lines[line-1] {
		if char >= s.start && char < s.end {
			return s.color
		}
	}
	return h.def
}

// WriteTerminal writes src to w coloured with 24-bit ANSI escapes.
func (h *Highlighter) WriteTerminal(w io.Writer, src string) error {
	it, err := h.lexer.Tokenise(nil, src)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	f := formatters.Get("terminal16m")
	if err := f.Format(w, h.style, it); err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	return nil
}

var _ text.Colorizer = (*Highlighter)(nil)
