// Package writer serializes a triple graph back out as Turtle or N-Triples.
// Output is deterministic: subjects, properties and values keep the graph's
// insertion order, and the prefix table is written in a fixed order.
package writer

import (
	"fmt"
	"strings"

	"github.com/c360studio/semsnip/graph"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"
)

// prefixes abbreviate well-known namespaces in Turtle output. Order matters
// for deterministic output and for longest-match lookup.
var prefixes = []struct {
	name string
	iri  string
}{
	{"rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{"xsd", "http://www.w3.org/2001/XMLSchema#"},
	{"schema", "http://schema.org/"},
	{"schemas", "https://schema.org/"},
	{"dv", "http://rdf.data-vocabulary.org/#"},
}

// Write serializes a graph in the given format.
func Write(g *graph.Graph, format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return toTurtle(g), nil
	case FormatNTriples:
		return toNTriples(g), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func toTurtle(g *graph.Graph) string {
	var sb strings.Builder
	used := usedPrefixes(g)
	for _, p := range prefixes {
		if used[p.name] {
			sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", p.name, p.iri))
		}
	}
	if len(used) > 0 {
		sb.WriteString("\n")
	}

	for _, subject := range g.Subjects() {
		writeSubjectTurtle(&sb, g, subject)
		sb.WriteString("\n")
	}
	return sb.String()
}

// writeSubjectTurtle writes one subject with predicate groups separated by
// semicolons.
func writeSubjectTurtle(sb *strings.Builder, g *graph.Graph, subject string) {
	sb.WriteString(term(subject))
	sb.WriteString("\n")

	types := g.TypesOf(subject)
	props := g.PropertiesOf(subject)

	if len(types) > 0 {
		sb.WriteString("    a ")
		parts := make([]string, len(types))
		for i, t := range types {
			parts[i] = curie(t)
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(sep(len(props) > 0))
	}

	for i, prop := range props {
		values := g.ValuesOf(subject, prop)
		parts := make([]string, len(values))
		for j, v := range values {
			parts[j] = object(v, true)
		}
		sb.WriteString("    ")
		sb.WriteString(curie(prop))
		sb.WriteString(" ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(sep(i < len(props)-1))
	}
}

func sep(more bool) string {
	if more {
		return " ;\n"
	}
	return " .\n"
}

func toNTriples(g *graph.Graph) string {
	var sb strings.Builder
	for _, subject := range g.Subjects() {
		s := term(subject)
		for _, t := range g.TypesOf(subject) {
			sb.WriteString(fmt.Sprintf("%s <%s> %s .\n", s, graph.RDFType, term(t)))
		}
		for _, prop := range g.PropertiesOf(subject) {
			for _, v := range g.ValuesOf(subject, prop) {
				sb.WriteString(fmt.Sprintf("%s <%s> %s .\n", s, prop, object(v, false)))
			}
		}
	}
	return sb.String()
}

// term writes an identifier as either a blank node label or a wrapped IRI.
func term(id string) string {
	if graph.IsBlank(id) {
		return id
	}
	return fmt.Sprintf("<%s>", id)
}

// curie abbreviates an IRI against the prefix table, falling back to the
// wrapped form.
func curie(iri string) string {
	for _, p := range prefixes {
		if local, ok := strings.CutPrefix(iri, p.iri); ok && local != "" && !strings.ContainsAny(local, "/#") {
			return p.name + ":" + local
		}
	}
	return term(iri)
}

// object formats a value. Turtle output abbreviates IRIs and datatypes;
// N-Triples keeps them absolute.
func object(v graph.Value, abbreviate bool) string {
	switch val := v.(type) {
	case graph.Literal:
		out := `"` + escapeString(val.Text) + `"`
		switch {
		case val.Language != "":
			out += "@" + val.Language
		case val.Datatype != "":
			if abbreviate {
				out += "^^" + curie(val.Datatype)
			} else {
				out += fmt.Sprintf("^^<%s>", val.Datatype)
			}
		}
		return out
	case graph.Reference:
		if abbreviate {
			return curie(val.ID)
		}
		return term(val.ID)
	default:
		return `"` + escapeString(fmt.Sprint(v)) + `"`
	}
}

// usedPrefixes reports which prefix table entries the graph's IRIs would
// actually abbreviate.
func usedPrefixes(g *graph.Graph) map[string]bool {
	used := make(map[string]bool)
	mark := func(iri string) {
		for _, p := range prefixes {
			if local, ok := strings.CutPrefix(iri, p.iri); ok && local != "" && !strings.ContainsAny(local, "/#") {
				used[p.name] = true
				return
			}
		}
	}
	for _, subject := range g.Subjects() {
		for _, t := range g.TypesOf(subject) {
			mark(t)
		}
		for _, prop := range g.PropertiesOf(subject) {
			mark(prop)
			for _, v := range g.ValuesOf(subject, prop) {
				switch val := v.(type) {
				case graph.Reference:
					mark(val.ID)
				case graph.Literal:
					if val.Datatype != "" {
						mark(val.Datatype)
					}
				}
			}
		}
	}
	return used
}

// escapeString escapes special characters for RDF string literals.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
