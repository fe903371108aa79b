package service_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semsnip/service"

	_ "github.com/c360studio/semsnip/reader/jsonldr"
	_ "github.com/c360studio/semsnip/reader/microdata"
	_ "github.com/c360studio/semsnip/reader/rdfa"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const personPage = `<div itemscope itemtype="http://schema.org/Person">
	<span itemprop="name">Alice</span>
	<span itemprop="jobTitle">Engineer</span>
</div>`

func TestEngineRenderMicrodata(t *testing.T) {
	engine, err := service.NewEngine("", testLogger())
	require.NoError(t, err)

	resp, err := engine.Render([]byte(personPage), "auto", "")
	require.NoError(t, err)
	assert.Contains(t, resp.HTML, `<span class="snippet-title">`)
	assert.Contains(t, resp.HTML, ">Alice</span>")
	assert.False(t, resp.Fallback)
	require.Len(t, resp.Matched, 1)
	assert.Contains(t, resp.Matched[0], "Person")
}

func TestEngineRenderJSONLD(t *testing.T) {
	engine, err := service.NewEngine("", testLogger())
	require.NoError(t, err)

	doc := `{
		"@id": "http://example.com/acme",
		"@type": "http://schema.org/Organization",
		"http://schema.org/name": "Acme"
	}`
	resp, err := engine.Render([]byte(doc), "jsonld", "")
	require.NoError(t, err)
	assert.Contains(t, resp.HTML, ">Acme</span>")
}

func TestEngineLint(t *testing.T) {
	engine, err := service.NewEngine("", testLogger())
	require.NoError(t, err)

	page := `<div itemscope itemtype="http://schema.org/Person">
		<span itemprop="frobnicates">yes</span>
	</div>`
	messages, err := engine.Lint([]byte(page), "microdata", "")
	require.NoError(t, err)
	require.NotEmpty(t, messages)

	var sawUnknown bool
	for _, m := range messages {
		if m.Property == "http://schema.org/frobnicates" {
			sawUnknown = true
		}
	}
	assert.True(t, sawUnknown, "expected a finding for the unknown property, got %v", messages)
}

func TestEngineDirectoryRulesOverrideCatalogue(t *testing.T) {
	dir := t.TempDir()
	rule := `
rules:
  - name: custom-person
    match: 'https?://schema\.org/Person'
    pattern: true
    priority: 10
    title: ["http://schema.org/jobTitle"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "person.yaml"), []byte(rule), 0644))

	engine, err := service.NewEngine(dir, testLogger())
	require.NoError(t, err)

	resp, err := engine.Render([]byte(personPage), "microdata", "")
	require.NoError(t, err)
	// The overriding rule titles by job title instead of name.
	assert.Contains(t, resp.HTML, `<span class="snippet-title">`)
	assert.Contains(t, resp.HTML, ">Engineer</span>")
}

func TestEngineReloadPicksUpRuleChanges(t *testing.T) {
	dir := t.TempDir()
	engine, err := service.NewEngine(dir, testLogger())
	require.NoError(t, err)
	before := engine.Registry().Len()

	rule := `
rules:
  - name: widget
    match: http://example.com/Widget
    title: ["http://example.com/label"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widget.yaml"), []byte(rule), 0644))
	require.NoError(t, engine.Reload())

	assert.Equal(t, before+1, engine.Registry().Len())
}

func TestEngineReloadKeepsRegistryOnError(t *testing.T) {
	dir := t.TempDir()
	engine, err := service.NewEngine(dir, testLogger())
	require.NoError(t, err)
	old := engine.Registry()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("rules:\n  - name: bad\n    match: '[x'\n    pattern: true\n"), 0644))
	require.Error(t, engine.Reload())
	assert.Same(t, old, engine.Registry())
}

func TestEngineRenderRejectsUnclassifiablePayload(t *testing.T) {
	engine, err := service.NewEngine("", testLogger())
	require.NoError(t, err)

	_, err = engine.Render([]byte("just some plain text"), "auto", "")
	assert.Error(t, err)
}
