// Package config loads fim's settings from a small INI-style file.
//
//	# fim.conf
//	[General]
//	font = Free Mono
//
//	[Camera]
//	follow_strength = 0.3   # how fast the camera catches up with the cursor
//	lookat_strength = 0.1
//
//	[Cursor]
//	trail_length = 0.9
//	lerp_factor = 0.1
//
// Values are unquoted and run to the end of the line or to an inline '#'.
// Anything the parser does not understand is logged and skipped, so a
// partially broken file still yields usable settings.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/fim"
)

// Config holds every setting.
type Config struct {
	General General
	Camera  Camera
	Cursor  Cursor
}

// General holds the [General] section.
type General struct {
	// Font is a font family name or a font file path.
	Font string
}

// Camera holds the [Camera] section: per-frame easing factors in (0, 1].
type Camera struct {
	FollowStrength float32
	LookatStrength float32
}

// Cursor holds the [Cursor] section.
type Cursor struct {
	// TrailLength is the exponent applied to the jump distance when
	// placing the trail behind a moving cursor.
	TrailLength float32
	// LerpFactor is how much of the remaining trail is removed per frame.
	LerpFactor float32
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		General: General{Font: "Free Mono"},
		Camera:  Camera{FollowStrength: 0.3, LookatStrength: 0.1},
		Cursor:  Cursor{TrailLength: 0.9, LerpFactor: 0.1},
	}
}

// Path returns the default configuration file location,
// <user config dir>/fim/fim.conf.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Join(dir, "fim", "fim.conf"), nil
}

// Load reads the file at path. A missing file is not an error: the
// defaults are returned.
func Load(path string) (Config, error) {
	// #nosec G304 -- configuration path is chosen by the user
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		fim.Logger().Info("config: file not found, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	fim.Logger().Info("config: loaded", "path", path)
	return cfg, nil
}

type section int

const (
	sectionNone section = iota
	sectionGeneral
	sectionCamera
	sectionCursor
)

var sections = map[string]section{
	"[General]": sectionGeneral,
	"[Camera]":  sectionCamera,
	"[Cursor]":  sectionCursor,
}

// Parse reads settings from r on top of the defaults. Only read errors
// are returned; malformed content is logged at Warn and skipped.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	log := fim.Logger()
	sec := sectionNone
	var secName string

	sc := bufio.NewScanner(r)
	num := 0
	for sc.Scan() {
		num++
		line := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			s, ok := sections[line]
			if !ok {
				log.Warn("config: unknown section", "section", line, "line", num)
			}
			// keys under an unknown section are skipped
			sec, secName = s, line
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.Contains(value, "=") {
			log.Warn("config: malformed line", "line", num, "text", line)
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		if sec == sectionNone {
			log.Warn("config: key outside a section", "key", key, "line", num, "section", secName)
			continue
		}
		if err := cfg.set(sec, key, value); err != nil {
			log.Warn("config: skipping value", "section", secName, "key", key, "line", num, "err", err)
		}
	}
	return cfg, sc.Err()
}

var errUnknownKey = errors.New("unknown key")

func (c *Config) set(sec section, key, value string) error {
	var dst *float32
	switch sec {
	case sectionGeneral:
		if key == "font" {
			c.General.Font = value
			return nil
		}
	case sectionCamera:
		switch key {
		case "follow_strength":
			dst = &c.Camera.FollowStrength
		case "lookat_strength":
			dst = &c.Camera.LookatStrength
		}
	case sectionCursor:
		switch key {
		case "trail_length":
			dst = &c.Cursor.TrailLength
		case "lerp_factor":
			dst = &c.Cursor.LerpFactor
		}
	}
	if dst == nil {
		return errUnknownKey
	}
	v, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return err
	}
	*dst = float32(v)
	return nil
}
