package pattern

import (
	"errors"
	"testing"
)

// FuzzCompile feeds arbitrary pattern text through Compile and, when
// compilation succeeds, through MatchLine, to ensure neither ever panics
// and the Matched=false implies no-captures invariant holds.
func FuzzCompile(f *testing.F) {
	seeds := []string{
		``,
		`^(\d+)-(\d+)$`,
		`(?P<key>\w+)=(?P<value>\S+)`,
		`(unclosed`,
		`a{3,1}`,
		`(a)?(b)`,
		`[[:alpha:]]+`,
		`\p{Han}+`,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	lines := []string{
		"",
		"1-2",
		"key=value other=42",
		"名前: テスト",
	}

	f.Fuzz(func(t *testing.T, text string) {
		m, err := Compile(text, EngineGo)
		if err != nil {
			var cerr *CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("Compile returned non-CompileError: %v", err)
			}
			if cerr.Offset < -1 || cerr.Offset > len(text) {
				t.Fatalf("offset %d out of range for pattern %q", cerr.Offset, text)
			}
			return
		}

		for _, line := range lines {
			res := m.MatchLine(line)
			if !res.Matched && len(res.Captures) != 0 {
				t.Fatalf("unmatched line %q has %d captures", line, len(res.Captures))
			}
			for _, c := range res.Captures {
				if c.Start < 0 || c.Start > c.End || c.End > len(line) {
					t.Fatalf("capture span %d-%d out of range for line %q", c.Start, c.End, line)
				}
				if line[c.Start:c.End] != c.Text {
					t.Fatalf("capture text %q does not equal span %d-%d of line %q", c.Text, c.Start, c.End, line)
				}
			}
		}
	})
}
