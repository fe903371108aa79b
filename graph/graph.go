package graph

import "strings"

// node holds the statements for one subject.
type node struct {
	types     []string
	propOrder []string
	values    map[string][]Value
}

// Graph is an ordered collection of (subject, predicate, value) statements.
// It is populated by a reader and read-only afterwards; concurrent reads are
// safe once no writer remains.
type Graph struct {
	order []string
	nodes map[string]*node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

func (g *Graph) ensure(subject string) *node {
	n, ok := g.nodes[subject]
	if !ok {
		n = &node{values: make(map[string][]Value)}
		g.nodes[subject] = n
		g.order = append(g.order, subject)
	}
	return n
}

// Add appends a statement. rdf:type statements with a reference object are
// recorded as type declarations instead of ordinary properties.
func (g *Graph) Add(subject, predicate string, v Value) {
	if predicate == RDFType {
		if ref, ok := v.(Reference); ok {
			g.AddType(subject, ref.ID)
			return
		}
	}
	n := g.ensure(subject)
	if _, seen := n.values[predicate]; !seen {
		n.propOrder = append(n.propOrder, predicate)
	}
	n.values[predicate] = append(n.values[predicate], v)
}

// AddType declares a type for a subject. Duplicate declarations are ignored;
// the first-seen order is kept.
func (g *Graph) AddType(subject, typeIRI string) {
	n := g.ensure(subject)
	for _, t := range n.types {
		if t == typeIRI {
			return
		}
	}
	n.types = append(n.types, typeIRI)
}

// Subjects returns all subjects in first-seen order.
func (g *Graph) Subjects() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// TypesOf returns the declared types of a subject in declaration order.
// Unknown subjects yield nil.
func (g *Graph) TypesOf(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]string, len(n.types))
	copy(out, n.types)
	return out
}

// ValuesOf returns the values of one property of a subject, in append order.
func (g *Graph) ValuesOf(id, property string) []Value {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	vs := n.values[property]
	out := make([]Value, len(vs))
	copy(out, vs)
	return out
}

// PropertiesOf returns the properties of a subject in insertion order,
// excluding rdf:type.
func (g *Graph) PropertiesOf(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]string, len(n.propOrder))
	copy(out, n.propOrder)
	return out
}

// Len returns the number of distinct subjects.
func (g *Graph) Len() int {
	return len(g.order)
}

// Resource returns an immutable view over one subject. The view is valid for
// unknown subjects too; all accessors then return empty results.
func (g *Graph) Resource(id string) Resource {
	return Resource{g: g, id: id}
}

// IsBlank reports whether an identifier is a blank node label.
func IsBlank(id string) bool {
	return strings.HasPrefix(id, "_:")
}
