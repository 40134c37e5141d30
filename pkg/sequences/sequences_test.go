package sequences

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/choreo"
)

const validYAML = `
name: test-page
description: a test sequence
pattern: staggered
page_transition_ms: 300
stagger_ms: 75
elements:
  - type: header
    duration_ms: 200
    offset_y: -10
  - type: card
    duration_ms: 250
    delay_ms: 30
    start_scale: 0.9
    end_scale: 1.0
`

// TestParseFile verifies a well-formed document parses completely.
func TestParseFile(t *testing.T) {
	f, err := parseFile([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "test-page", f.Name)
	assert.Equal(t, "staggered", f.Pattern)
	assert.Equal(t, 300, f.PageTransitionMS)
	assert.Equal(t, 75, f.StaggerMS)
	require.Len(t, f.Elements, 2)
	assert.Equal(t, "header", f.Elements[0].Type)
	assert.Equal(t, -10.0, f.Elements[0].OffsetY)
	assert.Equal(t, 30, f.Elements[1].DelayMS)
}

// TestParseFile_Validation verifies each rejection rule.
func TestParseFile_Validation(t *testing.T) {
	cases := map[string]string{
		"missing name":      "pattern: minimal",
		"missing pattern":   "name: x",
		"unknown pattern":   "name: x\npattern: waltz",
		"negative duration": "name: x\npattern: minimal\npage_transition_ms: -1",
		"untyped element":   "name: x\npattern: minimal\nelements:\n  - duration_ms: 10",
		"negative element":  "name: x\npattern: minimal\nelements:\n  - type: a\n    duration_ms: -5",
		"not yaml":          "{{{",
	}
	for label, doc := range cases {
		_, err := parseFile([]byte(doc))
		assert.Error(t, err, label)
	}
}

// TestFile_Config verifies the millisecond-to-duration conversion and the
// scale defaults.
func TestFile_Config(t *testing.T) {
	f, err := parseFile([]byte(validYAML))
	require.NoError(t, err)

	cfg, err := f.Config()
	require.NoError(t, err)

	assert.Equal(t, "test-page", cfg.Name)
	assert.Equal(t, choreo.PatternStaggered, cfg.Pattern)
	assert.Equal(t, 300*time.Millisecond, cfg.PageTransition)
	assert.Equal(t, 75*time.Millisecond, cfg.StaggerDelay)

	header := cfg.Elements[0]
	assert.Equal(t, 200*time.Millisecond, header.Duration)
	assert.Equal(t, animation.Offset{X: 0, Y: -10}, header.StartOffset)
	assert.Equal(t, 1.0, header.StartScale, "unset scales default to 1")
	assert.Equal(t, 1.0, header.EndScale)

	card := cfg.Elements[1]
	assert.Equal(t, 30*time.Millisecond, card.Delay)
	assert.Equal(t, 0.9, card.StartScale)
}

// TestBuiltin verifies the embedded set parses and stays sorted.
func TestBuiltin(t *testing.T) {
	files, err := Builtin()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for i, f := range files {
		assert.Equal(t, "builtin", f.Source)
		if i > 0 {
			assert.Less(t, files[i-1].Name, f.Name, "builtins must be sorted by name")
		}
		_, err := f.Config()
		assert.NoError(t, err, f.Name)
	}
}

// TestLoadDir verifies directory loading, extension filtering, and the
// missing-directory behavior.
func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: beta\npattern: minimal"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("name: alpha\npattern: elegant"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	files, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "alpha", files[0].Name)
	assert.Equal(t, "beta", files[1].Name)
	assert.Equal(t, filepath.Join(dir, "a.yml"), files[0].Source)

	missing, err := LoadDir(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)

	none, err := LoadDir("")
	require.NoError(t, err)
	assert.Empty(t, none)
}

// TestLoadDir_BadFile verifies that an invalid file fails the whole load.
func TestLoadDir_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("pattern: minimal"), 0o644))

	_, err := LoadDir(dir)
	assert.Error(t, err)
}

// TestFind verifies the user-directory-then-builtin search order.
func TestFind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"),
		[]byte("name: my-page\npattern: staggered"), 0o644))

	f, err := Find("my-page", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom.yaml"), f.Source)

	f, err = Find("home-dramatic", dir)
	require.NoError(t, err)
	assert.Equal(t, "builtin", f.Source)

	_, err = Find("nonexistent", dir)
	assert.Error(t, err)
}
