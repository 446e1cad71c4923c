package ire

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/irecli/ire/internal/safefile"
)

// ExportFormat selects the delimiter for exported capture rows.
type ExportFormat int

const (
	// FormatCSV writes comma-separated rows with RFC 4180 quoting.
	FormatCSV ExportFormat = iota
	// FormatTSV writes tab-separated rows.
	FormatTSV
)

// ParseFormat converts a user-facing format name to an ExportFormat.
func ParseFormat(s string) (ExportFormat, error) {
	switch s {
	case "", "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	default:
		return 0, fmt.Errorf("unknown format %q (valid: csv, tsv)", s)
	}
}

func (f ExportFormat) delimiter() rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// Export writes one record per matched line of rs to w, in document order.
// Unmatched lines are skipped, not written as blank rows.
//
// The header is "file", "line", then one column per capture group label:
// group names where the pattern names them, "group_N" otherwise. A group
// that did not participate in a line's match leaves its column empty.
//
// Returns the number of data records written. On a write failure partway
// through, the count reports the records successfully flushed before the
// failure; already-written output is not rolled back.
func Export(rs *ResultSet, w io.Writer, format ExportFormat) (int, error) {
	cw := csv.NewWriter(w)
	cw.Comma = format.delimiter()

	header := make([]string, 0, 2+len(rs.Labels))
	header = append(header, "file", "line")
	for _, l := range rs.Labels {
		header = append(header, l.String())
	}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	records := 0
	row := make([]string, len(header))
	for _, fr := range rs.Files {
		for i, lr := range fr.Lines {
			if !lr.Matched {
				continue
			}

			row[0] = fr.Path
			row[1] = strconv.Itoa(i + 1)
			for c := 2; c < len(row); c++ {
				row[c] = ""
			}
			for _, capt := range lr.Captures {
				for li, l := range rs.Labels {
					if l == capt.Label {
						row[2+li] = capt.Text
						break
					}
				}
			}

			if err := cw.Write(row); err != nil {
				return records, fmt.Errorf("after %d records: %w", records, err)
			}
			// Flush per record so the count is accurate on failure;
			// export sizes make the extra syscalls irrelevant.
			cw.Flush()
			if err := cw.Error(); err != nil {
				return records, fmt.Errorf("after %d records: %w", records, err)
			}
			records++
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return records, fmt.Errorf("after %d records: %w", records, err)
	}
	return records, nil
}

// ExportFile writes rs to path atomically: the destination only ever holds
// a complete export, never a truncated one.
func ExportFile(rs *ResultSet, path string, format ExportFormat) (int, error) {
	records := 0
	err := safefile.WriteAtomic(path, func(f *os.File) error {
		var werr error
		records, werr = Export(rs, f, format)
		return werr
	})
	if err != nil {
		return records, err
	}
	return records, nil
}

// Export writes a snapshot of the committed result set to w. The session
// passes through Exporting for the duration and returns to its prior state
// whether or not the write succeeds; an export failure never costs session
// state.
func (s *Session) Export(w io.Writer, format ExportFormat) (int, error) {
	if s.state == StateTerminated {
		return 0, ErrTerminated
	}
	prev := s.state
	s.state = StateExporting
	defer func() { s.state = prev }()

	return Export(s.Snapshot(), w, format)
}

// ExportFile writes a snapshot of the committed result set to path
// atomically, with the same state behavior as Export.
func (s *Session) ExportFile(path string, format ExportFormat) (int, error) {
	if s.state == StateTerminated {
		return 0, ErrTerminated
	}
	prev := s.state
	s.state = StateExporting
	defer func() { s.state = prev }()

	return ExportFile(s.Snapshot(), path, format)
}
