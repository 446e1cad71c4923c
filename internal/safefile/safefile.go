// Package safefile provides hardened file operations for the pieces of the
// tool that touch user-supplied paths: reading input documents and writing
// export files.
package safefile

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotRegularFile is returned when a path does not name a regular file.
// This includes symlinks, FIFOs, devices, sockets, and directories; reading
// a FIFO as an input document would block the session forever.
var ErrNotRegularFile = errors.New("not a regular file")

// OpenRegular opens a file and verifies it is a regular file.
//
// The path is Lstat'd first to reject symlinks and special files, then the
// open descriptor is stat'd again to catch the file being swapped between
// the two calls. Go's standard library does not expose O_NOFOLLOW in a
// cross-platform way, so a small TOCTOU window remains; this narrows it to
// the minimum available.
//
// The caller must close the returned file when done.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}

// WriteAtomic writes to path by writing a temporary file in the same
// directory and renaming it over the destination on success. A failure
// partway through (or an abandoned write) never leaves a truncated file at
// path.
//
// The write function receives the temporary file; WriteAtomic handles sync,
// close, and rename, and removes the temporary file on any failure.
func WriteAtomic(path string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
