package pattern_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irecli/ire/pkg/ire/pattern"
)

func TestLoadPresets_Valid(t *testing.T) {
	pf, err := pattern.LoadPresets("testdata/valid.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, pf.Version)
	assert.Len(t, pf.Presets, 2)
	assert.Equal(t, "apache_access", pf.Presets[0].ID)
	assert.Equal(t, "kv_pairs", pf.Presets[1].ID)
	assert.NotEmpty(t, pf.Presets[0].Regex)
}

func TestLoadPresets_Nonexistent(t *testing.T) {
	_, err := pattern.LoadPresets("testdata/nonexistent.yaml")
	require.Error(t, err)
	// Path must not leak into the message
	assert.NotContains(t, err.Error(), "testdata")
}

func TestLoadPresetBytes_InvalidYAML(t *testing.T) {
	_, err := pattern.LoadPresetBytes([]byte("version: [not closed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YAML")
}

func TestLoadPresetBytes_Empty(t *testing.T) {
	_, err := pattern.LoadPresetBytes(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidate(t *testing.T) {
	valid := func() *pattern.PresetFile {
		return &pattern.PresetFile{
			Version: 1,
			Presets: []pattern.Preset{
				{ID: "a", Regex: `\d+`},
				{ID: "b", Regex: `\w+`},
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unsupported version", func(t *testing.T) {
		pf := valid()
		pf.Version = 2
		err := pf.Validate()
		require.Error(t, err)
		var verr *pattern.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "version", verr.Field)
	})

	t.Run("no presets", func(t *testing.T) {
		pf := &pattern.PresetFile{Version: 1}
		require.Error(t, pf.Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		pf := valid()
		pf.Presets[0].ID = ""
		err := pf.Validate()
		require.Error(t, err)
		var perr *pattern.PresetError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "id", perr.Field)
		assert.Equal(t, 0, perr.Index)
	})

	t.Run("missing regex", func(t *testing.T) {
		pf := valid()
		pf.Presets[1].Regex = ""
		err := pf.Validate()
		require.Error(t, err)
		var perr *pattern.PresetError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "regex", perr.Field)
		assert.Equal(t, "b", perr.ID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		pf := valid()
		pf.Presets[1].ID = "a"
		err := pf.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("pattern too long", func(t *testing.T) {
		pf := valid()
		pf.Presets[0].Regex = strings.Repeat("a", pattern.MaxPatternLength+1)
		err := pf.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too long")
	})

	t.Run("invalid regex passes validation", func(t *testing.T) {
		// Compilation is deferred to selection so syntax errors surface
		// through the session's inline diagnostics, not at load time.
		pf := valid()
		pf.Presets[0].Regex = `(unclosed`
		assert.NoError(t, pf.Validate())
	})
}
