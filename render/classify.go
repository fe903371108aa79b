package render

import (
	"github.com/c360studio/semsnip/graph"
	"github.com/c360studio/semsnip/rules"
)

// propertyValues pairs a property with its ordered value list for the body
// and nested roles.
type propertyValues struct {
	property string
	values   []graph.Value
}

// roleBuckets is the output of classification: raw values bucketed by
// display role, before any formatting.
type roleBuckets struct {
	// title, photo and description are single-valued: the winning property
	// in role-list order, carrying its value list so the formatter can still
	// fall through to a later candidate when the first value renders empty.
	title       []propertyValues
	photo       []propertyValues
	description []propertyValues

	// body and nested collect every populated property in role-list order.
	body   []propertyValues
	nested []propertyValues
}

// classify buckets a resource's properties per the rule set's role lists.
// Order follows the role lists, not the resource's property order. A
// property named in several role lists is evaluated independently for each.
func classify(g Accessor, id string, rs *rules.RuleSet) roleBuckets {
	return roleBuckets{
		title:       populated(g, id, rs.TitleProps),
		photo:       populated(g, id, rs.PhotoProps),
		description: populated(g, id, rs.DescriptionProps),
		body:        populated(g, id, rs.BodyProps),
		nested:      populated(g, id, rs.NestedProps),
	}
}

// populated returns the properties from the role list that have at least one
// value on the resource, with their value lists, keeping role-list order.
func populated(g Accessor, id string, props []string) []propertyValues {
	var out []propertyValues
	for _, p := range props {
		vs := g.ValuesOf(id, p)
		if len(vs) == 0 {
			continue
		}
		out = append(out, propertyValues{property: p, values: vs})
	}
	return out
}
