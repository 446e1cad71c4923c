package pattern

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// sanitizePathError removes the path from os.PathError to prevent
// information leakage. Error messages shown in the UI should not expose
// file system paths the user did not type.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

const (
	// MaxPresetFileSize is the maximum allowed size for a preset file (1MB).
	MaxPresetFileSize = 1 * 1024 * 1024 // 1 MB

	// MaxPatternLength is the maximum allowed length for a regex pattern
	// (512 bytes). This limit helps mitigate ReDoS attacks via excessively
	// complex patterns.
	MaxPatternLength = 512

	// MaxPresetCount is the maximum number of presets allowed in a file.
	MaxPresetCount = 1000

	// SupportedVersion is the currently supported preset file format version.
	SupportedVersion = 1
)

// LoadPresets reads and parses a preset file from the given path.
// Returns an error if the file cannot be read, is too large, or fails
// validation.
//
// Non-regular files (FIFO, device, socket) are rejected and reads are
// size-limited, so a hostile path cannot block or exhaust the process.
func LoadPresets(path string) (*PresetFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset file: %w", sanitizePathError(err))
	}
	defer f.Close()

	// Stat the file descriptor (not the path) to avoid TOCTOU
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat preset file: %w", sanitizePathError(err))
	}

	if !info.Mode().IsRegular() {
		return nil, errors.New("preset file must be a regular file (not FIFO, device, or special file)")
	}

	if info.Size() == 0 {
		return nil, errors.New("preset file is empty")
	}
	if info.Size() > MaxPresetFileSize {
		return nil, fmt.Errorf("preset file too large: %d bytes (max %d)", info.Size(), MaxPresetFileSize)
	}

	// Read MaxPresetFileSize+1 to detect if the file grows beyond the limit
	// between Stat and Read.
	data, err := io.ReadAll(io.LimitReader(f, MaxPresetFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", sanitizePathError(err))
	}
	if len(data) > MaxPresetFileSize {
		return nil, fmt.Errorf("preset file too large: %d bytes (max %d)", len(data), MaxPresetFileSize)
	}

	return LoadPresetBytes(data)
}

// LoadPresetBytes parses a preset file from a byte slice.
func LoadPresetBytes(data []byte) (*PresetFile, error) {
	if len(data) == 0 {
		return nil, errors.New("preset file is empty")
	}
	if len(data) > MaxPresetFileSize {
		return nil, fmt.Errorf("preset file too large: %d bytes (max %d)", len(data), MaxPresetFileSize)
	}

	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := pf.Validate(); err != nil {
		return nil, err
	}

	return &pf, nil
}

// Validate performs schema-level validation on the preset file:
// supported version, at least one preset, required fields, unique IDs, and
// pattern length limits.
//
// Validate does NOT compile the regular expressions; compilation happens
// when a preset is selected so syntax errors surface through the session's
// normal inline diagnostics.
func (pf *PresetFile) Validate() error {
	if pf.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", pf.Version, SupportedVersion),
		}
	}

	if len(pf.Presets) == 0 {
		return &ValidationError{
			Field:   "presets",
			Message: "at least one preset is required",
		}
	}

	if len(pf.Presets) > MaxPresetCount {
		return &ValidationError{
			Field:   "presets",
			Message: fmt.Sprintf("too many presets (%d), maximum allowed is %d", len(pf.Presets), MaxPresetCount),
		}
	}

	seenIDs := make(map[string]int, len(pf.Presets))

	for i, p := range pf.Presets {
		if p.ID == "" {
			return &PresetError{
				Index:   i,
				Field:   "id",
				Message: "id is required",
			}
		}
		if p.Regex == "" {
			return &PresetError{
				Index:   i,
				ID:      p.ID,
				Field:   "regex",
				Message: "regex is required",
			}
		}

		if prevIndex, exists := seenIDs[p.ID]; exists {
			return &PresetError{
				Index:   i,
				ID:      p.ID,
				Field:   "id",
				Message: fmt.Sprintf("duplicate id (previously defined at preset[%d])", prevIndex),
			}
		}
		seenIDs[p.ID] = i

		if len(p.Regex) > MaxPatternLength {
			return &PresetError{
				Index:   i,
				ID:      p.ID,
				Field:   "regex",
				Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(p.Regex), MaxPatternLength),
			}
		}
	}

	return nil
}
