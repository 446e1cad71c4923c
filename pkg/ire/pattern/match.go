package pattern

import "unicode/utf8"

// MatchLine applies the matcher to one line using search semantics and
// reports the first match and its capture groups.
//
// Return contract:
//   - A non-matching line yields LineResult{Matched: false}; it is never an
//     error.
//   - Groups that did not participate in the match are omitted from
//     Captures.
//   - Engine failures independent of compilation (regexp2 match timeout)
//     yield Matched=false with a Diagnostic describing the failure, so one
//     pathological line cannot abort a whole pass.
//
// MatchLine is deterministic: identical (matcher, line) pairs always yield
// identical results.
func (m *Matcher) MatchLine(line string) LineResult {
	switch m.engine {
	case EngineRegexp2:
		return m.matchRegexp2(line)
	default:
		return m.matchGo(line)
	}
}

func (m *Matcher) matchGo(line string) LineResult {
	idx := m.re.FindStringSubmatchIndex(line)
	if idx == nil {
		return LineResult{}
	}

	captures := make([]Capture, 0, len(m.labels))
	for gi, label := range m.labels {
		start, end := idx[2*(gi+1)], idx[2*(gi+1)+1]
		if start < 0 {
			continue // group did not participate
		}
		captures = append(captures, Capture{
			Label: label,
			Start: start,
			End:   end,
			Text:  line[start:end],
		})
	}
	return LineResult{Matched: true, Captures: captures}
}

func (m *Matcher) matchRegexp2(line string) LineResult {
	match, err := m.re2.FindStringMatch(line)
	if err != nil {
		return LineResult{Diagnostic: err.Error()}
	}
	if match == nil {
		return LineResult{}
	}

	// regexp2 reports rune offsets; convert to byte offsets so both
	// engines agree on Capture positions.
	offsets := runeByteOffsets(line)

	captures := make([]Capture, 0, len(m.labels))
	for _, label := range m.labels {
		g := match.GroupByNumber(label.Index)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		start := offsets[g.Index]
		end := offsets[g.Index+g.Length]
		captures = append(captures, Capture{
			Label: label,
			Start: start,
			End:   end,
			Text:  line[start:end],
		})
	}
	return LineResult{Matched: true, Captures: captures}
}

// runeByteOffsets returns the byte offset of each rune in line, with one
// extra trailing entry equal to len(line) so rune index i's span is
// offsets[i]..offsets[i+len].
func runeByteOffsets(line string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(line)+1)
	for i := range line {
		offsets = append(offsets, i)
	}
	return append(offsets, len(line))
}
