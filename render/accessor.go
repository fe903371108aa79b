package render

import "github.com/c360studio/semsnip/graph"

// Accessor is the read-only graph view the renderer consumes. *graph.Graph
// implements it; tests and adapters may substitute their own.
type Accessor interface {
	// Subjects returns every subject in source order.
	Subjects() []string

	// TypesOf returns a subject's declared type IRIs in declaration order.
	TypesOf(id string) []string

	// ValuesOf returns the ordered values of one property of a subject.
	ValuesOf(id, property string) []graph.Value

	// PropertiesOf returns a subject's properties in insertion order.
	PropertiesOf(id string) []string
}
