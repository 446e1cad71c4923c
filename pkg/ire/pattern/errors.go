package pattern

import "fmt"

// CompileError reports a pattern that failed to compile.
//
// Offset is a best-effort byte offset into Pattern where the error was
// detected, or -1 when the engine's error does not localize the failure.
// Callers use it to point at the problem inside an editable pattern field.
type CompileError struct {
	Pattern string
	Engine  Engine
	Offset  int
	Message string
	Cause   error
}

func (e *CompileError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("invalid pattern at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("invalid pattern: %s", e.Message)
}

// Unwrap returns the underlying engine error.
// This enables errors.Is() and errors.As() to work with CompileError.
func (e *CompileError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a schema-level error in a preset file
// (e.g., missing required fields, unsupported version number).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// PresetError represents an error specific to an individual preset entry.
type PresetError struct {
	Index   int    // 0-based index of the preset in the file
	ID      string // Preset ID (may be empty if the id field is missing)
	Field   string
	Message string
	Cause   error
}

func (e *PresetError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("preset %q: %s: %s", e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("preset[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *PresetError) Unwrap() error {
	return e.Cause
}
