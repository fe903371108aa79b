package graph

// Well-known IRIs used when classifying values.
const (
	// RDFType is the rdf:type predicate. Statements with this predicate are
	// routed to a resource's type list rather than its property map.
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	// XMLLiteral marks a literal whose text is already markup and must be
	// emitted verbatim rather than escaped.
	XMLLiteral = "http://www.w3.org/1999/02/22-rdf-syntax-ns#XMLLiteral"

	// XSDString is the implicit datatype of plain literals. Readers normalize
	// it away so plain strings carry an empty datatype.
	XSDString = "http://www.w3.org/2001/XMLSchema#string"
)

// Value is one object of a (subject, predicate) statement: either a Literal
// or a Reference to another resource. The interface is sealed; rendering
// branches on the two concrete types.
type Value interface {
	value()
}

// Literal is a string payload with an optional language tag and an optional
// datatype IRI.
type Literal struct {
	Text     string
	Language string
	Datatype string
}

func (Literal) value() {}

// IsXML reports whether the literal carries markup that must pass through
// unescaped.
func (l Literal) IsXML() bool {
	return l.Datatype == XMLLiteral
}

// Reference points at another resource by identifier (IRI or blank node
// label).
type Reference struct {
	ID string
}

func (Reference) value() {}

// Text returns a plain-text rendition of a value: the literal payload, or the
// referenced identifier.
func Text(v Value) string {
	switch t := v.(type) {
	case Literal:
		return t.Text
	case Reference:
		return t.ID
	default:
		return ""
	}
}
