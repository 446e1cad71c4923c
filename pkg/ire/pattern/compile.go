package pattern

import (
	"errors"
	"regexp"
	"regexp/syntax"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single regexp2 match attempt. The standard engine
// is linear-time and needs no limit, but regexp2 backtracks and a
// pathological pattern typed mid-edit must not freeze the session.
const matchTimeout = 100 * time.Millisecond

// Matcher is a compiled pattern ready to match lines.
// It is immutable and safe for concurrent use by multiple goroutines.
type Matcher struct {
	source string
	engine Engine
	re     *regexp.Regexp
	re2    *regexp2.Regexp
	labels []Label // one per capture group, in group-number order
}

// Compile turns pattern text into a Matcher using the given engine.
// Any string is accepted as an attempt; on failure the returned error is a
// *CompileError carrying a human-readable message and, when the engine
// localizes the failure, a byte offset into the pattern text.
//
// Compiling the same text twice yields functionally equivalent matchers.
func Compile(text string, engine Engine) (*Matcher, error) {
	switch engine {
	case EngineGo:
		re, err := regexp.Compile(text)
		if err != nil {
			return nil, &CompileError{
				Pattern: text,
				Engine:  engine,
				Offset:  offsetIn(text, err),
				Message: trimEnginePrefix(err.Error()),
				Cause:   err,
			}
		}
		return &Matcher{
			source: text,
			engine: engine,
			re:     re,
			labels: goLabels(re),
		}, nil

	case EngineRegexp2:
		re2, err := regexp2.Compile(text, regexp2.RE2)
		if err != nil {
			return nil, &CompileError{
				Pattern: text,
				Engine:  engine,
				Offset:  -1,
				Message: trimEnginePrefix(err.Error()),
				Cause:   err,
			}
		}
		re2.MatchTimeout = matchTimeout
		return &Matcher{
			source: text,
			engine: engine,
			re2:    re2,
			labels: regexp2Labels(re2),
		}, nil

	default:
		return nil, &CompileError{
			Pattern: text,
			Engine:  engine,
			Offset:  -1,
			Message: "unknown engine",
		}
	}
}

// Source returns the pattern text the Matcher was compiled from.
func (m *Matcher) Source() string { return m.source }

// Engine returns the engine backing the Matcher.
func (m *Matcher) Engine() Engine { return m.engine }

// Labels returns one Label per capture group, in group-number order.
// The returned slice must not be modified.
func (m *Matcher) Labels() []Label { return m.labels }

// goLabels extracts group labels from a standard-library regexp.
// SubexpNames()[0] is always the empty whole-match entry and is skipped.
func goLabels(re *regexp.Regexp) []Label {
	names := re.SubexpNames()
	labels := make([]Label, 0, len(names)-1)
	for i := 1; i < len(names); i++ {
		labels = append(labels, Label{Name: names[i], Index: i})
	}
	return labels
}

// regexp2Labels extracts group labels from a regexp2 pattern. regexp2
// reports unnamed groups with their number as the name, so a name equal to
// the group number means positional.
func regexp2Labels(re *regexp2.Regexp) []Label {
	nums := re.GetGroupNumbers()
	labels := make([]Label, 0, len(nums))
	for _, n := range nums {
		if n == 0 {
			continue // whole match
		}
		name := re.GroupNameFromNumber(n)
		if name == strconv.Itoa(n) {
			name = ""
		}
		labels = append(labels, Label{Name: name, Index: n})
	}
	return labels
}

// offsetIn derives a byte offset into the pattern from a stdlib regexp
// error. regexp/syntax errors quote the offending sub-expression; when that
// fragment is a proper substring of the pattern its position localizes the
// failure. Returns -1 when no offset can be derived.
func offsetIn(pattern string, err error) int {
	var syn *syntax.Error
	if !errors.As(err, &syn) {
		return -1
	}
	if syn.Expr == "" || syn.Expr == pattern {
		return -1
	}
	if i := strings.Index(pattern, syn.Expr); i >= 0 {
		return i
	}
	return -1
}

// trimEnginePrefix strips the redundant "error parsing regexp: " prefix the
// engines put on their messages; the caller already says the pattern is
// invalid.
func trimEnginePrefix(msg string) string {
	return strings.TrimPrefix(msg, "error parsing regexp: ")
}
