package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semsnip/graph"
	"github.com/c360studio/semsnip/lint"
	"github.com/c360studio/semsnip/rules"
)

func personChecker() *lint.Checker {
	return lint.NewChecker(lint.TypeRules{
		Key: rules.MustPattern(`https?://schema\.org/Person`),
		Known: []string{
			"http://schema.org/name", "https://schema.org/name",
			"http://schema.org/image", "https://schema.org/image",
			"http://schema.org/jobTitle", "https://schema.org/jobTitle",
		},
		Recommended: [][]string{
			{"http://schema.org/name", "https://schema.org/name"},
			{"http://schema.org/image", "https://schema.org/image"},
		},
	})
}

func TestCheckEmptyGraph(t *testing.T) {
	msgs := personChecker().Check(graph.New())
	assert.Empty(t, msgs)
}

func TestCheckSkipsUntypedResources(t *testing.T) {
	g := graph.New()
	g.Add("_:a", "http://schema.org/name", graph.Literal{Text: "Alice"})

	msgs := personChecker().Check(g)
	assert.Empty(t, msgs)
}

func TestCheckUnknownVocabularyWarning(t *testing.T) {
	g := graph.New()
	g.AddType("_:a", "http://example.com/Widget")

	msgs := personChecker().Check(g)
	require.Len(t, msgs, 1)
	assert.Equal(t, lint.SeverityWarning, msgs[0].Severity)
	assert.Contains(t, msgs[0].Text, "no known vocabulary")
}

func TestCheckUnknownProperty(t *testing.T) {
	g := graph.New()
	g.AddType("_:a", "http://schema.org/Person")
	g.Add("_:a", "http://schema.org/name", graph.Literal{Text: "Alice"})
	g.Add("_:a", "http://schema.org/image", graph.Literal{Text: "a.jpg"})
	g.Add("_:a", "http://schema.org/favouriteColor", graph.Literal{Text: "teal"})

	msgs := personChecker().Check(g)
	require.Len(t, msgs, 1)
	assert.Equal(t, lint.SeverityWarning, msgs[0].Severity)
	assert.Equal(t, "http://schema.org/favouriteColor", msgs[0].Property)
}

func TestCheckMissingRecommended(t *testing.T) {
	g := graph.New()
	g.AddType("_:a", "http://schema.org/Person")
	g.Add("_:a", "http://schema.org/name", graph.Literal{Text: "Alice"})

	msgs := personChecker().Check(g)
	require.Len(t, msgs, 1)
	assert.Equal(t, lint.SeverityInfo, msgs[0].Severity)
	assert.Equal(t, "http://schema.org/image", msgs[0].Property)
}

func TestCheckRecommendedSatisfiedByAlternateForm(t *testing.T) {
	// The https namespace form satisfies a recommendation named by its http
	// form.
	g := graph.New()
	g.AddType("_:a", "https://schema.org/Person")
	g.Add("_:a", "https://schema.org/name", graph.Literal{Text: "Alice"})
	g.Add("_:a", "https://schema.org/image", graph.Literal{Text: "a.jpg"})

	msgs := personChecker().Check(g)
	assert.Empty(t, msgs)
}

func TestCheckOrderedBySubject(t *testing.T) {
	g := graph.New()
	g.AddType("_:b", "http://example.com/Widget")
	g.AddType("_:a", "http://example.com/Widget")

	msgs := personChecker().Check(g)
	require.Len(t, msgs, 2)
	assert.Equal(t, "_:b", msgs[0].Resource)
	assert.Equal(t, "_:a", msgs[1].Resource)
}
