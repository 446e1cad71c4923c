package ire

import (
	"errors"

	"github.com/irecli/ire/pkg/ire/pattern"
)

// State is the session's position in its lifecycle.
type State int

const (
	// StateEditing means the current pattern text has not produced a
	// displayable result: it is empty, or the last compile failed. The
	// committed result set from the last good pattern stays visible.
	StateEditing State = iota
	// StateDisplaying means the pattern compiled and the committed result
	// set reflects it.
	StateDisplaying
	// StateExporting is entered for the duration of an export.
	StateExporting
	// StateTerminated is the terminal state; documents and matchers are
	// released.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateDisplaying:
		return "displaying"
	case StateExporting:
		return "exporting"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ErrTerminated is returned by operations on a terminated session.
var ErrTerminated = errors.New("session terminated")

// FileResult holds one document's per-line match results, in line order.
type FileResult struct {
	Path  string
	Lines []pattern.LineResult
}

// ResultSet is the complete, atomically produced collection of per-line
// match outcomes for one pattern over the session's documents. It is never
// a partial mix of two patterns: a full set is built per accepted pattern
// change and swapped in wholesale.
type ResultSet struct {
	// Pattern is the pattern text the set was produced from.
	Pattern string
	// Labels are the pattern's capture group labels, in group order.
	Labels []pattern.Label
	// Files holds per-document results in document order.
	Files []FileResult
}

// MatchedCount returns the number of matched lines across all files.
func (rs *ResultSet) MatchedCount() int {
	n := 0
	for _, fr := range rs.Files {
		for _, lr := range fr.Lines {
			if lr.Matched {
				n++
			}
		}
	}
	return n
}

// TotalLines returns the number of lines across all files.
func (rs *ResultSet) TotalLines() int {
	n := 0
	for _, fr := range rs.Files {
		n += len(fr.Lines)
	}
	return n
}

// clone returns a deep copy, used to snapshot the set for export so an
// in-flight export can never observe a concurrent edit.
func (rs *ResultSet) clone() *ResultSet {
	cp := &ResultSet{
		Pattern: rs.Pattern,
		Labels:  append([]pattern.Label(nil), rs.Labels...),
		Files:   make([]FileResult, len(rs.Files)),
	}
	for i, fr := range rs.Files {
		lines := make([]pattern.LineResult, len(fr.Lines))
		for j, lr := range fr.Lines {
			lr.Captures = append([]pattern.Capture(nil), lr.Captures...)
			lines[j] = lr
		}
		cp.Files[i] = FileResult{Path: fr.Path, Lines: lines}
	}
	return cp
}

// Session owns the interactive edit/compile/match cycle: the in-progress
// pattern text, the last good matcher, the loaded documents, and the
// committed result set.
//
// The pattern text and the committed results are two separate slots by
// design: a failed compile updates the former and never the latter, so the
// display keeps showing the last good output with the error overlaid.
//
// Session is not safe for concurrent use. Front ends process one event at a
// time on a single goroutine.
type Session struct {
	engine pattern.Engine
	docs   []*Document

	patternText string
	compileErr  *pattern.CompileError
	matcher     *pattern.Matcher // last good; nil until a non-empty pattern compiles

	committed *ResultSet
	state     State

	history []string
	presets []pattern.Preset
	preset  int // index of the next preset to hand out
}

// NewSession creates a session over the given documents.
//
// The initial state is Editing with an empty pattern and a fully formed
// result set in which every line is unmatched, so the first render is
// well-defined rather than blank.
func NewSession(docs []*Document, engine pattern.Engine) *Session {
	s := &Session{
		engine: engine,
		docs:   docs,
		state:  StateEditing,
	}
	s.committed = s.emptyResults("")
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Engine returns the regex engine the session compiles with.
func (s *Session) Engine() pattern.Engine { return s.engine }

// Documents returns the session's documents in document order.
func (s *Session) Documents() []*Document { return s.docs }

// Pattern returns the in-progress pattern text, which may be invalid.
func (s *Session) Pattern() string { return s.patternText }

// CompileErr returns the error from the most recent SetPattern, or nil if
// it compiled (or was empty).
func (s *Session) CompileErr() *pattern.CompileError { return s.compileErr }

// Results returns the committed result set: the outcome of the last good
// pattern, or the initial all-unmatched set. Never nil on a live session.
func (s *Session) Results() *ResultSet { return s.committed }

// SetPattern replaces the pattern text and re-evaluates the session.
//
// On a successful compile the committed result set is regenerated in full
// and the session moves to Displaying. On a compile failure the previous
// committed set is retained untouched, the *pattern.CompileError is
// recorded for inline display, and the session moves to Editing. An empty
// pattern is valid and matches nothing.
func (s *Session) SetPattern(text string) error {
	if s.state == StateTerminated {
		return ErrTerminated
	}
	s.patternText = text

	if text == "" {
		// Empty pattern matches nothing rather than everything; a
		// zero-width match on every line would light the whole file up
		// while the user has not expressed any intent yet.
		s.compileErr = nil
		s.matcher = nil
		s.committed = s.emptyResults("")
		s.state = StateEditing
		return nil
	}

	m, err := pattern.Compile(text, s.engine)
	if err != nil {
		var cerr *pattern.CompileError
		errors.As(err, &cerr)
		s.compileErr = cerr
		// Keep s.matcher and s.committed: the last good display survives
		// an invalid keystroke.
		s.state = StateEditing
		return err
	}

	s.compileErr = nil
	s.matcher = m
	s.committed = s.rematch(m)
	s.state = StateDisplaying
	return nil
}

// Refresh re-runs the current pattern over the documents. Used after lines
// are appended outside AppendLine, and by tests asserting idempotence.
func (s *Session) Refresh() {
	if s.state == StateTerminated {
		return
	}
	if s.matcher == nil || s.patternText == "" {
		s.committed = s.emptyResults("")
		return
	}
	s.committed = s.rematch(s.matcher)
}

// AppendLine adds a line to the document at docIndex (follow mode) and
// extends the committed result set with that line's result under the last
// good matcher. Out-of-range indexes are ignored.
func (s *Session) AppendLine(docIndex int, line string) {
	if s.state == StateTerminated || docIndex < 0 || docIndex >= len(s.docs) {
		return
	}
	s.docs[docIndex].appendLine(line)
	appended := s.docs[docIndex].lines[s.docs[docIndex].Len()-1]

	var lr pattern.LineResult
	if s.matcher != nil && s.patternText != "" && s.compileErr == nil {
		lr = s.matcher.MatchLine(appended)
	}
	s.committed.Files[docIndex].Lines = append(s.committed.Files[docIndex].Lines, lr)
}

// CommitHistory records the current pattern in the in-memory history, most
// recent last. Consecutive duplicates and empty patterns are skipped.
func (s *Session) CommitHistory() {
	if s.patternText == "" {
		return
	}
	if n := len(s.history); n > 0 && s.history[n-1] == s.patternText {
		return
	}
	s.history = append(s.history, s.patternText)
}

// History returns recorded patterns, oldest first. The returned slice must
// not be modified.
func (s *Session) History() []string { return s.history }

// SetPresets installs the preset patterns available for cycling.
func (s *Session) SetPresets(presets []pattern.Preset) {
	s.presets = presets
	s.preset = 0
}

// NextPreset returns the next preset in cyclic order, or false if none are
// loaded. The caller feeds the preset's regex through SetPattern so syntax
// errors surface like any other edit.
func (s *Session) NextPreset() (pattern.Preset, bool) {
	if len(s.presets) == 0 {
		return pattern.Preset{}, false
	}
	p := s.presets[s.preset]
	s.preset = (s.preset + 1) % len(s.presets)
	return p, true
}

// Snapshot returns a deep copy of the committed result set for handing to
// an exporter.
func (s *Session) Snapshot() *ResultSet {
	return s.committed.clone()
}

// Terminate releases the session. Further operations return ErrTerminated
// or are ignored.
func (s *Session) Terminate() {
	s.state = StateTerminated
	s.docs = nil
	s.matcher = nil
	s.committed = nil
}

// rematch runs one full pass of the matcher over every line of every
// document and returns a fresh ResultSet. The previous set is discarded,
// not diffed; inputs are interactive-session-sized.
func (s *Session) rematch(m *pattern.Matcher) *ResultSet {
	rs := &ResultSet{
		Pattern: m.Source(),
		Labels:  m.Labels(),
		Files:   make([]FileResult, len(s.docs)),
	}
	for i, doc := range s.docs {
		lines := make([]pattern.LineResult, doc.Len())
		for j, line := range doc.Lines() {
			lines[j] = m.MatchLine(line)
		}
		rs.Files[i] = FileResult{Path: doc.Path(), Lines: lines}
	}
	return rs
}

// emptyResults builds a set in which every line is unmatched.
func (s *Session) emptyResults(patternText string) *ResultSet {
	rs := &ResultSet{
		Pattern: patternText,
		Files:   make([]FileResult, len(s.docs)),
	}
	for i, doc := range s.docs {
		rs.Files[i] = FileResult{
			Path:  doc.Path(),
			Lines: make([]pattern.LineResult, doc.Len()),
		}
	}
	return rs
}
