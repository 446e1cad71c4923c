package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/irecli/ire/pkg/ire"
)

var (
	captureColor   = color.New(color.FgYellow, color.Bold)
	unmatchedColor = color.New(color.Faint)
	numberColor    = color.New(color.Faint)
	fileColor      = color.New(color.FgCyan, color.Bold)
	summaryColor   = color.New(color.FgGreen)
)

// printDisplay writes the one-shot rendering: every line with captured runs
// highlighted, a per-file header when more than one file is loaded, and a
// trailing match summary. Color is dropped automatically when out is not a
// terminal (fatih/color's NO_COLOR/TTY handling).
func printDisplay(out io.Writer, d *ire.Display) error {
	multi := len(d.Files) > 1
	for _, f := range d.Files {
		if multi {
			if _, err := fmt.Fprintf(out, "%s\n", fileColor.Sprint(f.Path)); err != nil {
				return err
			}
		}
		for _, line := range f.Lines {
			if _, err := fmt.Fprintf(out, "%s %s\n",
				numberColor.Sprintf("%4d", line.Number),
				renderLine(line)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(out, "%s\n",
		summaryColor.Sprintf("matched %d/%d lines", d.Matched, d.Total))
	return err
}

func renderLine(line ire.DisplayLine) string {
	if !line.Matched {
		return unmatchedColor.Sprint(line.Text)
	}
	var b strings.Builder
	for _, seg := range line.Segments {
		if seg.Captured {
			b.WriteString(captureColor.Sprint(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	if line.Diagnostic != "" {
		b.WriteString(unmatchedColor.Sprint("  [" + line.Diagnostic + "]"))
	}
	return b.String()
}
