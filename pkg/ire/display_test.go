package ire_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irecli/ire/pkg/ire"
	"github.com/irecli/ire/pkg/ire/pattern"
)

func TestBuildDisplay_SegmentsRoundTrip(t *testing.T) {
	s := newTestSession("lala hello bleble world", "no match here at all?")
	require.NoError(t, s.SetPattern(`.+(hello).+(world)`))

	d := ire.BuildDisplay(s.Documents(), s.Results())
	require.Len(t, d.Files, 1)
	require.Len(t, d.Files[0].Lines, 2)
	assert.Equal(t, 1, d.Matched)
	assert.Equal(t, 2, d.Total)

	first := d.Files[0].Lines[0]
	assert.True(t, first.Matched)
	assert.Equal(t, 1, first.Number)

	// Segments alternate plain and captured and reassemble the line.
	var texts []string
	var captured []bool
	for _, seg := range first.Segments {
		texts = append(texts, seg.Text)
		captured = append(captured, seg.Captured)
	}
	assert.Equal(t, []string{"lala ", "hello", " bleble ", "world"}, texts)
	assert.Equal(t, []bool{false, true, false, true}, captured)
	assert.Equal(t, first.Text, strings.Join(texts, ""))

	second := d.Files[0].Lines[1]
	assert.False(t, second.Matched)
	require.Len(t, second.Segments, 1)
	assert.Equal(t, second.Text, second.Segments[0].Text)
}

func TestBuildDisplay_TrailingPlainSegment(t *testing.T) {
	s := newTestSession("1337 lala hey ho!")
	require.NoError(t, s.SetPattern(`.*?(lala)`))

	d := ire.BuildDisplay(s.Documents(), s.Results())
	segs := d.Files[0].Lines[0].Segments

	var texts []string
	for _, seg := range segs {
		texts = append(texts, seg.Text)
	}
	assert.Equal(t, []string{"1337 ", "lala", " hey ho!"}, texts)
}

func TestBuildDisplay_NonParticipatingGroupSkipped(t *testing.T) {
	s := newTestSession("bleble")
	require.NoError(t, s.SetPattern(`(lala)?(bleble)`))

	segs := ire.BuildDisplay(s.Documents(), s.Results()).Files[0].Lines[0].Segments
	require.Len(t, segs, 1)
	assert.True(t, segs[0].Captured)
	assert.Equal(t, "bleble", segs[0].Text)
	assert.Equal(t, 2, segs[0].Label.Index)
}

func TestBuildDisplay_NestedGroupsUseOutermost(t *testing.T) {
	s := newTestSession("abc")
	require.NoError(t, s.SetPattern(`(a(b))c`))

	segs := ire.BuildDisplay(s.Documents(), s.Results()).Files[0].Lines[0].Segments
	var texts []string
	for _, seg := range segs {
		texts = append(texts, seg.Text)
	}
	// The inner (b) is nested inside the already-emitted (ab).
	assert.Equal(t, []string{"ab", "c"}, texts)
	assert.True(t, segs[0].Captured)
	assert.False(t, segs[1].Captured)
}

func TestBuildDisplay_EmptySet(t *testing.T) {
	s := ire.NewSession([]*ire.Document{ire.NewDocument("empty.txt", nil)}, pattern.EngineGo)

	d := ire.BuildDisplay(s.Documents(), s.Results())
	require.Len(t, d.Files, 1)
	assert.Empty(t, d.Files[0].Lines)
	assert.Zero(t, d.Matched)
	assert.Zero(t, d.Total)
}

func TestBuildDisplay_DoesNotMutateResults(t *testing.T) {
	s := newTestSession("1-2")
	require.NoError(t, s.SetPattern(`(\d+)-(\d+)`))

	before := s.Snapshot()
	_ = ire.BuildDisplay(s.Documents(), s.Results())
	assert.Equal(t, before, s.Snapshot())
}
