// Package lint reports quality findings about a parsed graph: properties a
// vocabulary does not define, recommended properties a resource is missing,
// and resources whose types have no known presentation rules.
//
// Linting is a pure pass over the same graph the renderer consumes. The
// expected/known property lists per type are supplied by the vocab
// catalogue packages.
package lint

import (
	"fmt"

	"github.com/c360studio/semsnip/graph"
	"github.com/c360studio/semsnip/rules"
)

// Severity grades a finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Message is one lint finding, ordered deterministically by subject and
// property source order.
type Message struct {
	Severity Severity `json:"severity"`
	Resource string   `json:"resource"`
	Property string   `json:"property,omitempty"`
	Text     string   `json:"text"`
}

// TypeRules lists the properties a vocabulary defines for a type family,
// and the subset a good snippet is expected to carry. Each Recommended
// group is one recommendation: any IRI form in the group satisfies it
// (vocabularies publish under multiple namespace variants), and the first
// form names the finding.
type TypeRules struct {
	Key         rules.MatchKey
	Known       []string
	Recommended [][]string
}

// Checker validates graphs against a set of type property catalogues.
type Checker struct {
	types []TypeRules
}

// NewChecker builds a checker from catalogue entries in order.
func NewChecker(types ...TypeRules) *Checker {
	return &Checker{types: types}
}

// Check walks every subject in source order and returns its findings. An
// empty graph yields no messages.
func (c *Checker) Check(g *graph.Graph) []Message {
	var msgs []Message
	for _, id := range g.Subjects() {
		msgs = append(msgs, c.checkResource(g.Resource(id))...)
	}
	return msgs
}

func (c *Checker) checkResource(r graph.Resource) []Message {
	types := r.Types()
	if len(types) == 0 {
		// Untyped resources cannot be checked against a catalogue.
		return nil
	}

	known := make(map[string]bool)
	var recommended [][]string
	matched := false
	for _, tr := range c.types {
		if !matchesAny(tr.Key, types) {
			continue
		}
		matched = true
		for _, p := range tr.Known {
			known[p] = true
		}
		recommended = append(recommended, tr.Recommended...)
	}

	if !matched {
		return []Message{{
			Severity: SeverityWarning,
			Resource: r.ID(),
			Text:     fmt.Sprintf("no known vocabulary for types %v", types),
		}}
	}

	var msgs []Message
	for _, p := range r.Properties() {
		if !known[p] {
			msgs = append(msgs, Message{
				Severity: SeverityWarning,
				Resource: r.ID(),
				Property: p,
				Text:     fmt.Sprintf("property %s is not defined for types %v", p, types),
			})
		}
	}

	present := make(map[string]bool)
	for _, p := range r.Properties() {
		present[p] = true
	}
	reported := make(map[string]bool)
	for _, group := range recommended {
		if len(group) == 0 {
			continue
		}
		name := group[0]
		satisfied := false
		for _, form := range group {
			if present[form] {
				satisfied = true
				break
			}
		}
		if satisfied || reported[name] {
			continue
		}
		reported[name] = true
		msgs = append(msgs, Message{
			Severity: SeverityInfo,
			Resource: r.ID(),
			Property: name,
			Text:     fmt.Sprintf("recommended property %s is missing", name),
		})
	}
	return msgs
}

func matchesAny(key rules.MatchKey, types []string) bool {
	for _, t := range types {
		if key.Matches(t) {
			return true
		}
	}
	return false
}
