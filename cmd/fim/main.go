// Command fim opens a file in the editor without a window: it replays a
// key script, lays the text out with the glyph manager and reports the
// result.
//
// Usage:
//
//	fim [flags] file
//
// Example:
//
//	fim -keys 'Ohello<esc>' -dump notes.txt
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/gogpu/fim"
	"github.com/gogpu/fim/config"
	"github.com/gogpu/fim/editor"
	"github.com/gogpu/fim/highlight"
	"github.com/gogpu/fim/text"
	"github.com/gogpu/fim/view"
)

// frames is how many frames of camera and trail animation are simulated.
const frames = 60

func main() {
	var (
		configPath = flag.String("config", "", "configuration file (default: user config dir)")
		keys       = flag.String("keys", "", "key script to replay, e.g. 'ihello<esc>'")
		fontName   = flag.String("font", "", "main font name or path (overrides the configuration)")
		wrap       = flag.Float64("wrap", 0, "soft wrap width in em, 0 disables wrapping")
		save       = flag.Bool("save", false, "save the buffer after replaying keys")
		dump       = flag.Bool("dump", false, "print the buffer with its cursor")
		color      = flag.String("color", "auto", "colour the text output: auto, always or never")
		style      = flag.String("style", highlight.DefaultStyle, "chroma style for colouring")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: fim [flags] file\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	fim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *configPath == "" {
		p, err := config.Path()
		if err != nil {
			log.Fatalf("config path: %v", err)
		}
		*configPath = p
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *fontName != "" {
		cfg.General.Font = *fontName
	}

	path := flag.Arg(0)
	ed, err := editor.OpenFile(path)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	n, err := replay(ed, *keys)
	if err != nil {
		log.Fatalf("keys: %v", err)
	}
	if *save {
		if err := ed.Save(); err != nil {
			log.Fatalf("save: %v", err)
		}
	}

	src := ed.Text()
	hl := highlight.New(path, *style)
	if err := hl.Update(src); err != nil {
		log.Fatalf("highlight: %v", err)
	}

	m := text.NewGlyphManager()
	if err := m.LoadMainFont(cfg.General.Font); err != nil {
		log.Fatalf("font: %v", err)
	}
	if err := m.PrepareFallbackFonts(); err != nil {
		fim.Logger().Warn("no fallback fonts", "err", err)
	}

	w := float32(*wrap)
	if w <= 0 {
		w = text.NoWrap
	}
	line, char := ed.Cursor()
	lay := text.NewLayouter(m)
	lay.SetColorizer(hl)
	layout := lay.DrawText(0, 0, src, w, &text.CursorPos{Line: line, Char: char})

	cam := view.NewCamera()
	trail := view.NewCursorTrail(cfg.Cursor.TrailLength, cfg.Cursor.LerpFactor)
	var verts [8]view.Vec2
	for range frames {
		verts = trail.Update(layout.CursorX, layout.CursorY, layout.Advance, layout.Height)
		cam.Follow(layout.CursorX, layout.CursorY, layout.Advance, layout.Height,
			cfg.Camera.FollowStrength, cfg.Camera.LookatStrength)
	}

	out := os.Stdout
	if *dump {
		fmt.Fprint(out, ed.Buffer())
	} else if err := writeText(out, hl, src, useColor(*color, out)); err != nil {
		log.Fatalf("write: %v", err)
	}

	fmt.Fprintf(out, "mode: %v, keys: %d, cursor: %d:%d, modified: %v\n",
		ed.Mode(), n, line, char, ed.Buffer().Modified())
	fmt.Fprintf(out, "font: %q, glyphs: %d, curves: %d, fonts: %d, cell: %.3fx%.3f\n",
		cfg.General.Font, m.Len(), m.Curves().Len(), m.FontCount(), layout.Advance, layout.Height)
	fmt.Fprintf(out, "quads: %d, cursor cell: (%.3f, %.3f), lexer: %s\n",
		len(layout.Quads), layout.CursorX, layout.CursorY, hl.Lexer())
	fmt.Fprintf(out, "camera: pos (%.3f, %.3f, %.3f), target (%.3f, %.3f, %.3f)\n",
		cam.Pos.X, cam.Pos.Y, cam.Pos.Z, cam.Target.X, cam.Target.Y, cam.Target.Z)
	tp := trail.Trail()
	fmt.Fprintf(out, "cursor quad: (%.3f, %.3f)-(%.3f, %.3f), trail: (%.3f, %.3f), moving: %v\n",
		verts[0].X, verts[0].Y, verts[3].X, verts[3].Y, tp.X, tp.Y, trail.Moving())
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func writeText(w io.Writer, hl *highlight.Highlighter, src string, color bool) error {
	if color {
		if err := hl.WriteTerminal(w, src); err != nil {
			return err
		}
	} else if _, err := io.WriteString(w, src); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
