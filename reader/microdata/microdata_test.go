package microdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semsnip/graph"
)

func parse(t *testing.T, page, base string) *graph.Graph {
	t.Helper()
	g, err := (&Reader{}).Read(strings.NewReader(page), base)
	require.NoError(t, err)
	return g
}

func TestReadSimpleItem(t *testing.T) {
	page := `<div itemscope itemtype="http://schema.org/Person">
		<span itemprop="name">Alice</span>
		<span itemprop="jobTitle">Engineer</span>
	</div>`

	g := parse(t, page, "")
	subjects := g.Subjects()
	require.Len(t, subjects, 1)
	assert.Equal(t, "_:md1", subjects[0])
	assert.Equal(t, []string{"http://schema.org/Person"}, g.TypesOf("_:md1"))
	assert.Equal(t, "Alice", graph.Text(g.ValuesOf("_:md1", "http://schema.org/name")[0]))
	assert.Equal(t, "Engineer", graph.Text(g.ValuesOf("_:md1", "http://schema.org/jobTitle")[0]))
}

func TestReadItemID(t *testing.T) {
	page := `<div itemscope itemid="/alice" itemtype="http://schema.org/Person">
		<span itemprop="name">Alice</span>
	</div>`

	g := parse(t, page, "http://example.com/people/")
	subjects := g.Subjects()
	require.Len(t, subjects, 1)
	assert.Equal(t, "http://example.com/alice", subjects[0])
}

func TestReadValueExtraction(t *testing.T) {
	page := `<div itemscope itemtype="http://schema.org/Person">
		<meta itemprop="gender" content="female">
		<img itemprop="image" src="/alice.jpg">
		<a itemprop="url" href="/alice">profile</a>
		<time itemprop="birthDate" datetime="1990-04-01">April 1990</time>
		<data itemprop="height" value="170">tall</data>
	</div>`

	g := parse(t, page, "http://example.com/")
	id := g.Subjects()[0]

	assert.Equal(t, graph.Literal{Text: "female"}, g.ValuesOf(id, "http://schema.org/gender")[0])
	assert.Equal(t, graph.Reference{ID: "http://example.com/alice.jpg"}, g.ValuesOf(id, "http://schema.org/image")[0])
	assert.Equal(t, graph.Reference{ID: "http://example.com/alice"}, g.ValuesOf(id, "http://schema.org/url")[0])
	assert.Equal(t, graph.Literal{Text: "1990-04-01"}, g.ValuesOf(id, "http://schema.org/birthDate")[0])
	assert.Equal(t, graph.Literal{Text: "170"}, g.ValuesOf(id, "http://schema.org/height")[0])
}

func TestReadTextContentCollapsesWhitespace(t *testing.T) {
	page := `<div itemscope itemtype="http://schema.org/Person">
		<span itemprop="name">
			Alice
			Liddell
		</span>
	</div>`

	g := parse(t, page, "")
	id := g.Subjects()[0]
	assert.Equal(t, "Alice Liddell", graph.Text(g.ValuesOf(id, "http://schema.org/name")[0]))
}

func TestReadNestedItem(t *testing.T) {
	page := `<div itemscope itemtype="http://schema.org/Person">
		<span itemprop="name">Alice</span>
		<div itemprop="worksFor" itemscope itemtype="http://schema.org/Organization">
			<span itemprop="name">Acme</span>
		</div>
	</div>`

	g := parse(t, page, "")
	require.Len(t, g.Subjects(), 2)

	person := g.Subjects()[0]
	worksFor := g.ValuesOf(person, "http://schema.org/worksFor")
	require.Len(t, worksFor, 1)
	ref, ok := worksFor[0].(graph.Reference)
	require.True(t, ok)

	assert.Equal(t, []string{"http://schema.org/Organization"}, g.TypesOf(ref.ID))
	assert.Equal(t, "Acme", graph.Text(g.ValuesOf(ref.ID, "http://schema.org/name")[0]))
	// The nested item's own name must not leak onto the parent.
	names := g.ValuesOf(person, "http://schema.org/name")
	require.Len(t, names, 1)
	assert.Equal(t, "Alice", graph.Text(names[0]))
}

func TestReadMultipleTopLevelItems(t *testing.T) {
	page := `<body>
		<div itemscope itemtype="http://schema.org/Person"><span itemprop="name">A</span></div>
		<div itemscope itemtype="http://schema.org/Person"><span itemprop="name">B</span></div>
	</body>`

	g := parse(t, page, "")
	subjects := g.Subjects()
	require.Len(t, subjects, 2)
	assert.Equal(t, "_:md1", subjects[0])
	assert.Equal(t, "_:md2", subjects[1])
	assert.Equal(t, "A", graph.Text(g.ValuesOf(subjects[0], "http://schema.org/name")[0]))
	assert.Equal(t, "B", graph.Text(g.ValuesOf(subjects[1], "http://schema.org/name")[0]))
}

func TestReadLanguageInheritance(t *testing.T) {
	page := `<html lang="de"><body>
		<div itemscope itemtype="http://schema.org/Person">
			<span itemprop="name">Albrecht</span>
			<span itemprop="jobTitle" lang="en">Engraver</span>
		</div>
	</body></html>`

	g := parse(t, page, "")
	id := g.Subjects()[0]

	name := g.ValuesOf(id, "http://schema.org/name")[0].(graph.Literal)
	assert.Equal(t, "de", name.Language)
	job := g.ValuesOf(id, "http://schema.org/jobTitle")[0].(graph.Literal)
	assert.Equal(t, "en", job.Language)
}

func TestReadDataVocabularyNamespace(t *testing.T) {
	page := `<div itemscope itemtype="http://rdf.data-vocabulary.org/#Person">
		<span itemprop="name">Alice</span>
	</div>`

	g := parse(t, page, "")
	id := g.Subjects()[0]
	assert.Equal(t, []string{"http://rdf.data-vocabulary.org/#Person"}, g.TypesOf(id))
	assert.Equal(t, "Alice", graph.Text(g.ValuesOf(id, "http://rdf.data-vocabulary.org/#name")[0]))
}

func TestReadMultipleItemprops(t *testing.T) {
	page := `<div itemscope itemtype="http://schema.org/Person">
		<span itemprop="name additionalName">Alice</span>
	</div>`

	g := parse(t, page, "")
	id := g.Subjects()[0]
	assert.Equal(t, "Alice", graph.Text(g.ValuesOf(id, "http://schema.org/name")[0]))
	assert.Equal(t, "Alice", graph.Text(g.ValuesOf(id, "http://schema.org/additionalName")[0]))
}
