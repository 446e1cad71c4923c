package ire

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/irecli/ire/internal/safefile"
)

// MaxDocumentSize is the maximum input file size (64MB). The session
// re-matches every line on each accepted pattern change, so inputs are
// expected to be interactive-session-sized.
const MaxDocumentSize = 64 * 1024 * 1024

// maxLineSize bounds a single line (1MB); longer lines abort the load
// rather than silently splitting.
const maxLineSize = 1 * 1024 * 1024

// Document is the ordered sequence of lines of one input file.
// Documents are immutable once loaded; only the session appends to them,
// and only in follow mode.
type Document struct {
	path  string
	lines []string
}

// LoadDocument reads path into a Document. The file must be a regular file
// no larger than MaxDocumentSize. Trailing CR is trimmed from each line for
// CRLF files.
func LoadDocument(path string) (*Document, error) {
	f, info, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	if info.Size() > MaxDocumentSize {
		return nil, fmt.Errorf("reading %s: file too large: %d bytes (max %d)", path, info.Size(), MaxDocumentSize)
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &Document{path: path, lines: lines}, nil
}

// LoadDocuments loads every path in order. The first failure aborts the
// load; a session never starts with a partial file set.
func LoadDocuments(paths []string) ([]*Document, error) {
	docs := make([]*Document, 0, len(paths))
	for _, p := range paths {
		doc, err := LoadDocument(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// NewDocument creates a Document from in-memory lines. Used by tests and by
// front ends that read from sources other than files.
func NewDocument(path string, lines []string) *Document {
	return &Document{path: path, lines: append([]string(nil), lines...)}
}

// Path returns the source file identifier for the document.
func (d *Document) Path() string { return d.path }

// Lines returns the document's lines. The returned slice must not be
// modified.
func (d *Document) Lines() []string { return d.lines }

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// appendLine adds a line arriving in follow mode. Only the owning session
// calls this.
func (d *Document) appendLine(line string) {
	d.lines = append(d.lines, strings.TrimRight(line, "\r"))
}
