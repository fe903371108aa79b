package graph

import (
	"reflect"
	"testing"
)

func TestGraphPreservesInsertionOrder(t *testing.T) {
	g := New()
	g.Add("http://example.com/b", "http://schema.org/name", Literal{Text: "B"})
	g.Add("http://example.com/a", "http://schema.org/name", Literal{Text: "A"})
	g.Add("http://example.com/b", "http://schema.org/url", Reference{ID: "http://example.com/"})

	want := []string{"http://example.com/b", "http://example.com/a"}
	if got := g.Subjects(); !reflect.DeepEqual(got, want) {
		t.Errorf("Subjects() = %v, want %v", got, want)
	}

	props := g.PropertiesOf("http://example.com/b")
	if !reflect.DeepEqual(props, []string{"http://schema.org/name", "http://schema.org/url"}) {
		t.Errorf("PropertiesOf() = %v", props)
	}
}

func TestGraphMultiValueOrder(t *testing.T) {
	g := New()
	g.Add("s", "p", Literal{Text: "first"})
	g.Add("s", "p", Literal{Text: "second"})
	g.Add("s", "p", Literal{Text: "third"})

	vs := g.ValuesOf("s", "p")
	if len(vs) != 3 {
		t.Fatalf("expected 3 values, got %d", len(vs))
	}
	if Text(vs[0]) != "first" || Text(vs[2]) != "third" {
		t.Errorf("values out of order: %v", vs)
	}
}

func TestGraphRoutesRDFTypeToTypes(t *testing.T) {
	g := New()
	g.Add("s", RDFType, Reference{ID: "http://schema.org/Person"})
	g.Add("s", RDFType, Reference{ID: "http://schema.org/Person"}) // duplicate
	g.Add("s", RDFType, Reference{ID: "http://schema.org/Thing"})

	types := g.TypesOf("s")
	if !reflect.DeepEqual(types, []string{"http://schema.org/Person", "http://schema.org/Thing"}) {
		t.Errorf("TypesOf() = %v", types)
	}
	if props := g.PropertiesOf("s"); len(props) != 0 {
		t.Errorf("rdf:type leaked into properties: %v", props)
	}
}

func TestGraphLiteralTypedAsRDFTypeStaysProperty(t *testing.T) {
	// A literal object on rdf:type is malformed markup; it is kept as an
	// ordinary property rather than silently promoted to a type.
	g := New()
	g.Add("s", RDFType, Literal{Text: "Person"})

	if types := g.TypesOf("s"); len(types) != 0 {
		t.Errorf("expected no types, got %v", types)
	}
	if vs := g.ValuesOf("s", RDFType); len(vs) != 1 {
		t.Errorf("expected literal kept as property value, got %v", vs)
	}
}

func TestGraphUnknownSubject(t *testing.T) {
	g := New()
	if got := g.TypesOf("missing"); got != nil {
		t.Errorf("TypesOf(missing) = %v, want nil", got)
	}
	if got := g.ValuesOf("missing", "p"); len(got) != 0 {
		t.Errorf("ValuesOf(missing) = %v, want empty", got)
	}

	r := g.Resource("missing")
	if !r.Empty() {
		t.Error("expected empty resource view for unknown subject")
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("_:b1") {
		t.Error("expected _:b1 to be blank")
	}
	if IsBlank("http://example.com/a") {
		t.Error("expected IRI not to be blank")
	}
}

func TestLiteralIsXML(t *testing.T) {
	if (Literal{Text: "<b>x</b>", Datatype: XMLLiteral}).IsXML() == false {
		t.Error("expected XMLLiteral datatype to report IsXML")
	}
	if (Literal{Text: "plain"}).IsXML() {
		t.Error("expected plain literal not to report IsXML")
	}
}
