// Package finder resolves the input file set for a session, either from an
// explicit filename or by expanding a glob pattern.
package finder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Sentinel errors.
var (
	// ErrNoMatches is returned when a glob pattern matches no files.
	ErrNoMatches = errors.New("no files matched")
)

// Expand resolves a glob pattern to an ordered list of existing regular
// files. The list is sorted lexically so document order is deterministic
// regardless of directory iteration order.
//
// Returns ErrNoMatches if the pattern matches nothing, or nothing that is a
// regular file.
func Expand(glob string) ([]string, error) {
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", glob, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatches, glob)
	}

	// Lstat each candidate once and keep only regular files; directories
	// and special files are silently skipped, deleted files are tolerated.
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatches, glob)
	}

	sort.Strings(files)
	return files, nil
}

// Resolve returns the session's input files. A non-empty glob wins over the
// explicit filename; the filename alone is returned otherwise.
func Resolve(filename, glob string) ([]string, error) {
	if glob != "" {
		return Expand(glob)
	}
	if filename == "" {
		return nil, errors.New("no input file specified")
	}
	return []string{filename}, nil
}
