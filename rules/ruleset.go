package rules

import (
	"github.com/c360studio/semsnip/graph"
)

// DefaultPriority is used when a rule set does not set one. Lower numbers
// win during resolution.
const DefaultPriority = 99

// MultiPolicy decides how a multi-valued property collapses when rendered.
type MultiPolicy int

const (
	// JoinAll renders every value, comma-joined, in source order.
	JoinAll MultiPolicy = iota

	// FirstOnly renders only the first value in source order.
	FirstOnly
)

// Recurser re-enters the snippet resolver for a referenced resource. It is
// handed to formatting strategies so a rule can yield a reference back to
// the renderer. Recursion is bounded by the renderer's visited set; a cycle
// edge degrades to a plain reference link.
type Recurser interface {
	// Render returns the snippet fragment for the resource, or ok=false when
	// the resource yields nothing useful.
	Render(id string) (fragment string, ok bool)
}

// FormatSingle is a rule-attached strategy for one property value. Returning
// an empty fragment with a nil error declines, letting the generic branches
// run. A returned error is logged and the value falls back to generic
// rendering; it never aborts the snippet.
type FormatSingle func(rec Recurser, property string, v graph.Value) (string, error)

// FormatMulti is the list form of FormatSingle, covering a property's whole
// value list. Same decline and failure semantics.
type FormatMulti func(rec Recurser, property string, vs []graph.Value) (string, error)

// RuleSet is the presentation configuration bound to a type family. Role
// property lists are in priority order: for single-valued roles the first
// populated property wins, for body and nested every populated property
// contributes.
type RuleSet struct {
	// Name identifies the rule set in diagnostics and load errors.
	Name string

	TitleProps       []string
	PhotoProps       []string
	BodyProps        []string
	DescriptionProps []string
	NestedProps      []string

	// Priority breaks ties when several rule sets match a resource's types.
	// Zero means DefaultPriority.
	Priority int

	// Single and Multi are optional formatting strategies consulted before
	// the generic value branches.
	Single FormatSingle
	Multi  FormatMulti

	// MultiPolicies overrides the collapse policy per property. Properties
	// not listed use JoinAll, except photo-role properties which always
	// render first-only.
	MultiPolicies map[string]MultiPolicy
}

// EffectivePriority returns the priority with the default applied.
func (rs *RuleSet) EffectivePriority() int {
	if rs.Priority == 0 {
		return DefaultPriority
	}
	return rs.Priority
}

// PolicyFor returns the collapse policy for a property.
func (rs *RuleSet) PolicyFor(property string) MultiPolicy {
	if p, ok := rs.MultiPolicies[property]; ok {
		return p
	}
	return JoinAll
}

// IsPhotoProp reports whether the property is listed in the photo role.
func (rs *RuleSet) IsPhotoProp(property string) bool {
	for _, p := range rs.PhotoProps {
		if p == property {
			return true
		}
	}
	return false
}

// Entry binds a match key to a rule set for registration.
type Entry struct {
	Key  MatchKey
	Rule *RuleSet
}

// Dispatch builds a FormatSingle that routes each property to its own
// strategy, declining for properties not listed. Catalogue packages and the
// YAML loader use it to attach per-property formatters to a rule set.
func Dispatch(byProperty map[string]FormatSingle) FormatSingle {
	return func(rec Recurser, property string, v graph.Value) (string, error) {
		if f, ok := byProperty[property]; ok {
			return f(rec, property, v)
		}
		return "", nil
	}
}
