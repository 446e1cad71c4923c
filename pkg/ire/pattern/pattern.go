// Package pattern provides regular expression compilation and line matching
// for interactive use. It wraps two engines behind one Matcher type: Go's
// standard regexp package and dlclark/regexp2 for patterns that need
// backreferences or lookarounds.
//
// A Matcher is immutable after compilation and safe for concurrent use.
// Matching uses search semantics: the pattern does not need to anchor the
// whole line, and only the first match per line is reported.
package pattern

import (
	"fmt"
	"strconv"
)

// Engine selects the regular expression implementation backing a Matcher.
type Engine int

const (
	// EngineGo is Go's standard regexp package (RE2 syntax, linear time).
	EngineGo Engine = iota
	// EngineRegexp2 is dlclark/regexp2 (.NET syntax: backreferences,
	// lookarounds). Matching runs under a timeout because regexp2 can
	// backtrack.
	EngineRegexp2
)

// ParseEngine converts a user-facing engine name to an Engine.
func ParseEngine(s string) (Engine, error) {
	switch s {
	case "", "go":
		return EngineGo, nil
	case "regexp2":
		return EngineRegexp2, nil
	default:
		return 0, fmt.Errorf("unknown engine %q (valid: go, regexp2)", s)
	}
}

func (e Engine) String() string {
	switch e {
	case EngineGo:
		return "go"
	case EngineRegexp2:
		return "regexp2"
	default:
		return fmt.Sprintf("engine(%d)", int(e))
	}
}

// Label identifies a capture group either by name or by position.
// A group is named when Name is non-empty; Index is always set and is the
// group's 1-based position in the pattern.
type Label struct {
	Name  string
	Index int
}

// Named reports whether the group was declared with (?P<name>...).
func (l Label) Named() bool { return l.Name != "" }

// String returns the label used for display and for CSV column headers:
// the group name if present, otherwise "group_N".
func (l Label) String() string {
	if l.Name != "" {
		return l.Name
	}
	return "group_" + strconv.Itoa(l.Index)
}

// Capture is one capture group's contribution to a line match.
// Start and End are byte offsets into the original line, with
// 0 <= Start <= End <= len(line). Text is the captured substring.
type Capture struct {
	Label Label
	Start int
	End   int
	Text  string
}

// LineResult is the outcome of matching one line.
//
// Invariant: if Matched is false, Captures is empty. Diagnostic is non-empty
// only when the engine itself failed on this line (for example a regexp2
// match timeout); such lines are reported as unmatched rather than aborting
// the pass.
type LineResult struct {
	Matched    bool
	Captures   []Capture
	Diagnostic string
}
