package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/fim"
)

// Open loads the file at path into a new buffer. A missing file is created
// empty so that a later Save has somewhere to go.
func Open(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err = os.WriteFile(path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("editor: create %s: %w", path, err)
		}
		fim.Logger().Info("editor: created file", "path", path)
	} else if err != nil {
		return nil, fmt.Errorf("editor: open %s: %w", path, err)
	}

	b := NewBuffer()
	b.Name = filepath.Base(path)
	b.Path = path
	if s := strings.TrimSuffix(string(data), "\n"); s != "" {
		b.lines = splitLines(s)
	}
	fim.Logger().Debug("editor: opened buffer", "path", path, "lines", len(b.lines))
	return b, nil
}

// Save writes the buffer to its Path with a trailing newline and clears the
// modified flag.
func (b *Buffer) Save() error {
	if b.Path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(b.Path, []byte(b.Text()+"\n"), 0o644); err != nil {
		return fmt.Errorf("editor: save %s: %w", b.Path, err)
	}
	b.modified = false
	return nil
}
