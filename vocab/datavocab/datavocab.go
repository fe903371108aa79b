// Package datavocab provides the presentation rule catalogue for the legacy
// data-vocabulary.org vocabulary. The namespace was published in several
// forms (rdf.data-vocabulary.org with a fragment separator,
// www.data-vocabulary.org with a path separator), so all binding goes
// through pattern match keys; one rule covers the whole family of variants.
package datavocab

import (
	"github.com/c360studio/semsnip/lint"
	"github.com/c360studio/semsnip/render"
	"github.com/c360studio/semsnip/rules"
)

// nsPattern matches one data-vocabulary.org local name across the published
// namespace variants.
func nsPattern(local string) string {
	return `https?://(rdf\.)?(www\.)?data-vocabulary\.org/[#]?` + local
}

// props returns the property IRI forms for one local name, role-list
// ordered.
func props(names ...string) []string {
	var out []string
	for _, n := range names {
		out = append(out,
			"http://rdf.data-vocabulary.org/#"+n,
			"http://www.data-vocabulary.org/"+n,
		)
	}
	return out
}

// Entries returns the data-vocabulary.org catalogue.
func Entries() []rules.Entry {
	return []rules.Entry{
		{
			Key: rules.MustPattern(nsPattern("Person")),
			Rule: &rules.RuleSet{
				Name:             "dv-person",
				Priority:         12,
				TitleProps:       props("name", "fn"),
				PhotoProps:       props("photo"),
				BodyProps:        props("title", "affiliation", "role", "url"),
				DescriptionProps: props("summary"),
				MultiPolicies:    photoFirst(),
			},
		},
		{
			Key: rules.MustPattern(nsPattern("Organization")),
			Rule: &rules.RuleSet{
				Name:             "dv-organization",
				Priority:         12,
				TitleProps:       props("name", "fn"),
				PhotoProps:       props("photo"),
				BodyProps:        props("url", "tel", "address"),
				DescriptionProps: props("summary"),
				MultiPolicies:    photoFirst(),
			},
		},
		{
			Key: rules.MustPattern(nsPattern("Review")),
			Rule: &rules.RuleSet{
				Name:             "dv-review",
				Priority:         12,
				TitleProps:       props("itemreviewed", "summary"),
				BodyProps:        props("reviewer", "dtreviewed", "rating"),
				DescriptionProps: props("description"),
				Single:           rules.Dispatch(ratingDispatch()),
			},
		},
		{
			Key: rules.MustPattern(nsPattern("Recipe")),
			Rule: &rules.RuleSet{
				Name:             "dv-recipe",
				Priority:         12,
				TitleProps:       props("name", "recipeTitle"),
				PhotoProps:       props("photo"),
				BodyProps:        props("author", "cookTime", "yield"),
				DescriptionProps: props("summary"),
				NestedProps:      props("ingredient"),
				MultiPolicies:    photoFirst(),
			},
		},
	}
}

func photoFirst() map[string]rules.MultiPolicy {
	out := make(map[string]rules.MultiPolicy)
	for _, iri := range props("photo") {
		out[iri] = rules.FirstOnly
	}
	return out
}

func ratingDispatch() map[string]rules.FormatSingle {
	out := make(map[string]rules.FormatSingle)
	for _, iri := range props("rating") {
		out[iri] = render.FormatRating
	}
	return out
}

// KnownTypes returns the lint catalogue for the vocabulary.
func KnownTypes() []lint.TypeRules {
	return []lint.TypeRules{
		{
			Key:         rules.MustPattern(nsPattern("Person")),
			Known:       props("name", "fn", "photo", "title", "affiliation", "role", "url", "summary", "address"),
			Recommended: [][]string{props("name", "fn")},
		},
		{
			Key:         rules.MustPattern(nsPattern("Review")),
			Known:       props("itemreviewed", "summary", "reviewer", "dtreviewed", "rating", "description"),
			Recommended: [][]string{props("itemreviewed"), props("rating")},
		},
	}
}
