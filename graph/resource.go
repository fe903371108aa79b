package graph

// Resource is a read-only view over one subject of a graph.
type Resource struct {
	g  *Graph
	id string
}

// ID returns the resource identifier (IRI or blank node label).
func (r Resource) ID() string {
	return r.id
}

// Types returns the declared type IRIs in declaration order.
func (r Resource) Types() []string {
	return r.g.TypesOf(r.id)
}

// Properties returns the property IRIs in insertion order.
func (r Resource) Properties() []string {
	return r.g.PropertiesOf(r.id)
}

// Values returns the ordered values of one property.
func (r Resource) Values(property string) []Value {
	return r.g.ValuesOf(r.id, property)
}

// First returns the first value of a property, or nil when the property is
// absent.
func (r Resource) First(property string) Value {
	vs := r.g.ValuesOf(r.id, property)
	if len(vs) == 0 {
		return nil
	}
	return vs[0]
}

// Empty reports whether the resource carries neither types nor properties.
func (r Resource) Empty() bool {
	return len(r.g.TypesOf(r.id)) == 0 && len(r.g.PropertiesOf(r.id)) == 0
}
