package editor

// Mode is the editing mode of the editor. The buffer keeps its own copy to
// decide how far right the cursor may sit.
type Mode uint8

const (
	// Normal is navigation plus single-key commands. The cursor sits on a
	// character.
	Normal Mode = iota

	// Insert is literal text entry. The cursor may sit one past the last
	// character.
	Insert

	// Visual selects characters. Declared only; keys are ignored.
	Visual

	// VisualLine selects whole lines. Declared only; keys are ignored.
	VisualLine

	// Replace overwrites characters. Declared only; keys are ignored.
	Replace

	// Command reads an ex command. Declared only; keys are ignored.
	Command
)

// String returns the mode name as shown in a status line.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Visual:
		return "VISUAL"
	case VisualLine:
		return "V-LINE"
	case Replace:
		return "REPLACE"
	case Command:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}
