package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semsnip/graph"
)

func writeRuleFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "person.yaml", `
rules:
  - name: person
    match: 'https?://schema\.org/Person'
    pattern: true
    priority: 10
    title: ["http://schema.org/name"]
    photo: ["http://schema.org/image"]
    body: ["http://schema.org/jobTitle", "http://schema.org/email"]
    description: ["http://schema.org/description"]
    multi:
      "http://schema.org/email": first
`)

	entries, err := LoadFile(path, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.True(t, e.Key.IsPattern())
	assert.True(t, e.Key.Matches("https://schema.org/Person"))
	assert.Equal(t, "person", e.Rule.Name)
	assert.Equal(t, 10, e.Rule.Priority)
	assert.Equal(t, []string{"http://schema.org/name"}, e.Rule.TitleProps)
	assert.Equal(t, FirstOnly, e.Rule.PolicyFor("http://schema.org/email"))
	assert.Equal(t, JoinAll, e.Rule.PolicyFor("http://schema.org/jobTitle"))
}

func TestLoadFileNamedFormatter(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "rating.yaml", `
rules:
  - name: rating
    match: http://schema.org/Rating
    body: ["http://schema.org/ratingValue"]
    formatters:
      "http://schema.org/ratingValue": stars
`)

	called := false
	named := map[string]FormatSingle{
		"stars": func(rec Recurser, property string, v graph.Value) (string, error) {
			called = true
			return "<b>stars</b>", nil
		},
	}

	entries, err := LoadFile(path, named)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Rule.Single)

	frag, err := entries[0].Rule.Single(nil, "http://schema.org/ratingValue", graph.Literal{Text: "4"})
	require.NoError(t, err)
	assert.Equal(t, "<b>stars</b>", frag)
	assert.True(t, called)

	// Unlisted properties decline.
	frag, err = entries[0].Rule.Single(nil, "http://schema.org/other", graph.Literal{Text: "x"})
	require.NoError(t, err)
	assert.Empty(t, frag)
}

func TestLoadFileUnknownFormatterFailsAtLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "bad.yaml", `
rules:
  - name: bad
    match: http://schema.org/Thing
    formatters:
      "http://schema.org/name": nope
`)

	_, err := LoadFile(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown formatter")
}

func TestLoadFileBadPatternFailsAtLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "bad.yaml", `
rules:
  - name: bad
    match: '[unterminated'
    pattern: true
`)

	_, err := LoadFile(path, nil)
	require.ErrorIs(t, err, ErrBadPattern)
}

func TestLoadFileUnknownMultiPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "bad.yaml", `
rules:
  - name: bad
    match: http://schema.org/Thing
    multi:
      "http://schema.org/name": sometimes
`)

	_, err := LoadFile(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown multi policy")
}

func TestLoadFileMissingRequiredFields(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "bad.yaml", `
rules:
  - name: ""
    match: http://schema.org/Thing
`)

	_, err := LoadFile(path, nil)
	require.Error(t, err)
}

func TestLoadDirSortedAndRecursive(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "b.yaml", `
rules:
  - name: from-b
    match: http://example.com/B
`)
	writeRuleFile(t, dir, "a.yml", `
rules:
  - name: from-a
    match: http://example.com/A
`)
	writeRuleFile(t, dir, filepath.Join("sub", "c.yaml"), `
rules:
  - name: from-c
    match: http://example.com/C
`)
	// Non-YAML files are ignored.
	writeRuleFile(t, dir, "notes.txt", "not yaml")

	entries, err := LoadDir(dir, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "from-a", entries[0].Rule.Name)
	assert.Equal(t, "from-b", entries[1].Rule.Name)
	assert.Equal(t, "from-c", entries[2].Rule.Name)
}

func TestLoadDirMissingDirectory(t *testing.T) {
	entries, err := LoadDir(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
