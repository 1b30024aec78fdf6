package editor

import "errors"

// Sentinel errors for the editor package.
var (
	// ErrOutOfRange is returned when a codepoint position or range does not
	// fit the line it is applied to.
	ErrOutOfRange = errors.New("editor: position out of range")

	// ErrNoPath is returned by Save on a buffer that was not opened from a file.
	ErrNoPath = errors.New("editor: buffer has no file path")
)
