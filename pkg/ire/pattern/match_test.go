package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irecli/ire/pkg/ire/pattern"
)

func mustCompile(t *testing.T, regex string, engine pattern.Engine) *pattern.Matcher {
	t.Helper()
	m, err := pattern.Compile(regex, engine)
	require.NoError(t, err)
	return m
}

func TestMatchLine(t *testing.T) {
	tests := []struct {
		name  string
		regex string
		line  string
		want  pattern.LineResult
	}{
		{
			name:  "anchored with two groups",
			regex: `^(\d+)-(\d+)$`,
			line:  "1-2",
			want: pattern.LineResult{
				Matched: true,
				Captures: []pattern.Capture{
					{Label: pattern.Label{Index: 1}, Start: 0, End: 1, Text: "1"},
					{Label: pattern.Label{Index: 2}, Start: 2, End: 3, Text: "2"},
				},
			},
		},
		{
			name:  "anchored with multi-digit groups",
			regex: `^(\d+)-(\d+)$`,
			line:  "10-20",
			want: pattern.LineResult{
				Matched: true,
				Captures: []pattern.Capture{
					{Label: pattern.Label{Index: 1}, Start: 0, End: 2, Text: "10"},
					{Label: pattern.Label{Index: 2}, Start: 3, End: 5, Text: "20"},
				},
			},
		},
		{
			name:  "no match",
			regex: `^(\d+)-(\d+)$`,
			line:  "abc",
			want:  pattern.LineResult{},
		},
		{
			name:  "search semantics finds match mid-line",
			regex: `(?P<num>\d+)`,
			line:  "order id 42 confirmed",
			want: pattern.LineResult{
				Matched: true,
				Captures: []pattern.Capture{
					{Label: pattern.Label{Name: "num", Index: 1}, Start: 9, End: 11, Text: "42"},
				},
			},
		},
		{
			name:  "first match only",
			regex: `(\d+)`,
			line:  "1 and 2 and 3",
			want: pattern.LineResult{
				Matched: true,
				Captures: []pattern.Capture{
					{Label: pattern.Label{Index: 1}, Start: 0, End: 1, Text: "1"},
				},
			},
		},
		{
			name:  "match without groups",
			regex: `hello`,
			line:  "say hello",
			want:  pattern.LineResult{Matched: true, Captures: []pattern.Capture{}},
		},
		{
			name:  "non-participating optional group omitted",
			regex: `(lala)?(bleble)`,
			line:  "bleble",
			want: pattern.LineResult{
				Matched: true,
				Captures: []pattern.Capture{
					{Label: pattern.Label{Index: 2}, Start: 0, End: 6, Text: "bleble"},
				},
			},
		},
		{
			name:  "empty line no match",
			regex: `\w+`,
			line:  "",
			want:  pattern.LineResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustCompile(t, tt.regex, pattern.EngineGo)
			got := m.MatchLine(tt.line)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchLine_NoMatchHasNoCaptures(t *testing.T) {
	m := mustCompile(t, `^(\d+)$`, pattern.EngineGo)

	for _, line := range []string{"", "abc", "12x", " 1"} {
		got := m.MatchLine(line)
		assert.False(t, got.Matched, "line %q", line)
		assert.Empty(t, got.Captures, "line %q", line)
	}
}

func TestMatchLine_Deterministic(t *testing.T) {
	m := mustCompile(t, `(?P<word>\w+) (?P<rest>.*)`, pattern.EngineGo)

	first := m.MatchLine("hello big world")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.MatchLine("hello big world"))
	}
}

func TestMatchLine_ByteOffsetsMultibyte(t *testing.T) {
	// Offsets are byte positions, so multibyte runes before a capture
	// shift it by their encoded length.
	line := "名前: テスト (usr_1234)"
	regex := `\((usr_\w+)\)`

	for _, engine := range []pattern.Engine{pattern.EngineGo, pattern.EngineRegexp2} {
		m := mustCompile(t, regex, engine)
		got := m.MatchLine(line)
		require.True(t, got.Matched, "engine %s", engine)
		require.Len(t, got.Captures, 1, "engine %s", engine)

		c := got.Captures[0]
		assert.Equal(t, "usr_1234", c.Text, "engine %s", engine)
		assert.Equal(t, c.Text, line[c.Start:c.End], "engine %s", engine)
	}
}

func TestMatchLine_EnginesAgree(t *testing.T) {
	tests := []struct {
		regex string
		line  string
	}{
		{`^(\d+)-(\d+)$`, "10-20"},
		{`(?P<key>\w+)=(?P<value>\S+)`, "retries=3 timeout=5s"},
		{`(a)?(b)`, "b"},
		{`\d+`, "no digits here"},
	}

	for _, tt := range tests {
		goM := mustCompile(t, tt.regex, pattern.EngineGo)
		r2M := mustCompile(t, tt.regex, pattern.EngineRegexp2)

		goRes := goM.MatchLine(tt.line)
		r2Res := r2M.MatchLine(tt.line)
		assert.Equal(t, goRes, r2Res, "regex %q line %q", tt.regex, tt.line)
	}
}

func TestMatchLine_Regexp2Backreference(t *testing.T) {
	// Backreferences are the reason the regexp2 engine exists; the stdlib
	// engine rejects them at compile time.
	_, err := pattern.Compile(`(\w+) \1`, pattern.EngineGo)
	require.Error(t, err)

	m := mustCompile(t, `(\w+) \1`, pattern.EngineRegexp2)
	got := m.MatchLine("hey hey you")
	require.True(t, got.Matched)
	require.Len(t, got.Captures, 1)
	assert.Equal(t, "hey", got.Captures[0].Text)

	assert.False(t, m.MatchLine("hey you").Matched)
}
