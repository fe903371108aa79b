package rdfa

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

func TestReadVocabAndTypeof(t *testing.T) {
	page := `<div vocab="http://schema.org/" typeof="Person">
		<span property="name">Alice</span>
		<span property="jobTitle">Engineer</span>
	</div>`

	g := parse(t, page, "")
	subjects := g.Subjects()
	require.Len(t, subjects, 1)
	assert.Equal(t, "_:rdfa1", subjects[0])
	assert.Equal(t, []string{"http://schema.org/Person"}, g.TypesOf("_:rdfa1"))
	assert.Equal(t, "Alice", graph.Text(g.ValuesOf("_:rdfa1", "http://schema.org/name")[0]))
	assert.Equal(t, "Engineer", graph.Text(g.ValuesOf("_:rdfa1", "http://schema.org/jobTitle")[0]))
}

func TestReadAboutResolvesAgainstBase(t *testing.T) {
	page := `<div vocab="http://schema.org/" typeof="Person" about="/alice">
		<span property="name">Alice</span>
	</div>`

	g := parse(t, page, "http://example.com/people/")
	require.Equal(t, []string{"http://example.com/alice"}, g.Subjects())
}

func TestReadPrefixExpansion(t *testing.T) {
	page := `<div prefix="schema: http://schema.org/ dc: http://purl.org/dc/terms/" typeof="schema:Person">
		<span property="schema:name">Alice</span>
		<span property="dc:creator">Bob</span>
	</div>`

	g := parse(t, page, "")
	id := g.Subjects()[0]
	assert.Equal(t, []string{"http://schema.org/Person"}, g.TypesOf(id))
	assert.Equal(t, "Alice", graph.Text(g.ValuesOf(id, "http://schema.org/name")[0]))
	assert.Equal(t, "Bob", graph.Text(g.ValuesOf(id, "http://purl.org/dc/terms/creator")[0]))
}

func TestReadContentAttributeWins(t *testing.T) {
	page := `<div vocab="http://schema.org/" typeof="Event">
		<span property="startDate" content="2026-05-01">May Day</span>
	</div>`

	g := parse(t, page, "")
	id := g.Subjects()[0]
	assert.Equal(t, "2026-05-01", graph.Text(g.ValuesOf(id, "http://schema.org/startDate")[0]))
}

func TestReadResourceValuedProperty(t *testing.T) {
	page := `<div vocab="http://schema.org/" typeof="Person">
		<a property="url" href="http://alice.example.com">homepage</a>
		<img property="image" src="http://example.com/alice.jpg">
	</div>`

	g := parse(t, page, "")
	id := g.Subjects()[0]
	assert.Equal(t, graph.Reference{ID: "http://alice.example.com"}, g.ValuesOf(id, "http://schema.org/url")[0])
	assert.Equal(t, graph.Reference{ID: "http://example.com/alice.jpg"}, g.ValuesOf(id, "http://schema.org/image")[0])
}

func TestReadNestedTypedResource(t *testing.T) {
	page := `<div vocab="http://schema.org/" typeof="Person">
		<span property="name">Alice</span>
		<div property="worksFor" typeof="Organization" resource="http://example.com/acme">
			<span property="name">Acme</span>
		</div>
	</div>`

	g := parse(t, page, "")
	person := g.Subjects()[0]

	worksFor := g.ValuesOf(person, "http://schema.org/worksFor")
	require.Len(t, worksFor, 1)
	assert.Equal(t, graph.Reference{ID: "http://example.com/acme"}, worksFor[0])

	assert.Equal(t, []string{"http://schema.org/Organization"}, g.TypesOf("http://example.com/acme"))
	assert.Equal(t, "Acme", graph.Text(g.ValuesOf("http://example.com/acme", "http://schema.org/name")[0]))

	// The nested resource's name stays off the parent.
	names := g.ValuesOf(person, "http://schema.org/name")
	require.Len(t, names, 1)
	assert.Equal(t, "Alice", graph.Text(names[0]))
}

func TestReadLanguageTag(t *testing.T) {
	page := `<div vocab="http://schema.org/" typeof="Person" lang="fr">
		<span property="name">Amélie</span>
	</div>`

	g := parse(t, page, "")
	id := g.Subjects()[0]
	lit := g.ValuesOf(id, "http://schema.org/name")[0].(graph.Literal)
	assert.Equal(t, "fr", lit.Language)
}

func TestReadDatatypeAttribute(t *testing.T) {
	page := `<div vocab="http://schema.org/" prefix="xsd: http://www.w3.org/2001/XMLSchema#" typeof="Person">
		<span property="birthDate" datatype="xsd:date">1990-04-01</span>
	</div>`

	g := parse(t, page, "")
	id := g.Subjects()[0]
	lit := g.ValuesOf(id, "http://schema.org/birthDate")[0].(graph.Literal)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#date", lit.Datatype)
	assert.Empty(t, lit.Language)
}

func TestReadPropertyWithoutSubjectIsIgnored(t *testing.T) {
	page := `<body>
		<span property="name">floating</span>
		<div vocab="http://schema.org/" typeof="Person"><span property="name">Alice</span></div>
	</body>`

	g := parse(t, page, "")
	require.Len(t, g.Subjects(), 1)
	assert.Equal(t, "Alice", graph.Text(g.ValuesOf(g.Subjects()[0], "http://schema.org/name")[0]))
}
