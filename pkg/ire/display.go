package ire

import "github.com/irecli/ire/pkg/ire/pattern"

// Segment is a run of a line's text that is either plain or captured by a
// group. Concatenating a line's segments yields the verbatim line.
type Segment struct {
	Text     string
	Captured bool
	Label    pattern.Label // meaningful only when Captured
}

// DisplayLine is one line of the display model: the verbatim text, an
// at-a-glance matched flag, and the line decomposed into plain/captured
// segments for highlighting.
type DisplayLine struct {
	Number     int // 1-based within the file
	Text       string
	Matched    bool
	Diagnostic string
	Segments   []Segment
}

// DisplayFile groups the display lines of one document.
type DisplayFile struct {
	Path  string
	Lines []DisplayLine
}

// Display is the renderer-agnostic projection of a result set. Front ends
// (the TUI, the one-shot printer) style it; building it mutates nothing
// upstream.
type Display struct {
	Files   []DisplayFile
	Matched int
	Total   int
}

// BuildDisplay projects documents and their committed results into a
// Display. docs and rs must describe the same document set; an empty result
// set produces an empty display.
func BuildDisplay(docs []*Document, rs *ResultSet) *Display {
	d := &Display{Files: make([]DisplayFile, 0, len(rs.Files))}
	for i, fr := range rs.Files {
		if i >= len(docs) {
			break
		}
		lines := docs[i].Lines()
		df := DisplayFile{Path: fr.Path, Lines: make([]DisplayLine, 0, len(fr.Lines))}
		for j, lr := range fr.Lines {
			if j >= len(lines) {
				break
			}
			dl := DisplayLine{
				Number:     j + 1,
				Text:       lines[j],
				Matched:    lr.Matched,
				Diagnostic: lr.Diagnostic,
				Segments:   segment(lines[j], lr),
			}
			if dl.Matched {
				d.Matched++
			}
			d.Total++
			df.Lines = append(df.Lines, dl)
		}
		d.Files = append(d.Files, df)
	}
	return d
}

// segment splits a line into alternating plain and captured runs. Captures
// are consumed in group order; a capture nested inside one already emitted
// is skipped, so overlapping groups highlight by their outermost group.
func segment(line string, lr pattern.LineResult) []Segment {
	if !lr.Matched || len(lr.Captures) == 0 {
		return []Segment{{Text: line}}
	}

	segs := make([]Segment, 0, 2*len(lr.Captures)+1)
	prevEnd := 0
	for _, c := range lr.Captures {
		if c.Start < prevEnd {
			continue
		}
		if c.Start > prevEnd {
			segs = append(segs, Segment{Text: line[prevEnd:c.Start]})
		}
		segs = append(segs, Segment{Text: line[c.Start:c.End], Captured: true, Label: c.Label})
		prevEnd = c.End
	}
	if prevEnd < len(line) {
		segs = append(segs, Segment{Text: line[prevEnd:]})
	}
	if len(segs) == 0 {
		// Matched with only zero-width captures at offset 0.
		segs = append(segs, Segment{Text: line})
	}
	return segs
}
