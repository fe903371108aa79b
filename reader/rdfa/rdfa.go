// Package rdfa reads RDFa Lite markup (vocab, prefix, typeof, property,
// resource, about) into the triple graph. The processing model is the Lite
// subset: full RDFa chaining, @rel/@rev and @inlist are out of scope.
package rdfa

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/c360studio/semsnip/graph"
	"github.com/c360studio/semsnip/reader"
)

func init() {
	reader.DefaultRegistry.Register(reader.FormatRDFa, func() reader.Reader {
		return &Reader{}
	})
}

// Reader parses RDFa-annotated HTML.
type Reader struct{}

// Name returns the registered format name.
func (*Reader) Name() string { return reader.FormatRDFa }

// Read parses the page into a graph. base resolves relative about/resource
// values.
func (rd *Reader) Read(r io.Reader, base string) (*graph.Graph, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := &parser{g: graph.New()}
	if base != "" {
		if u, err := url.Parse(base); err == nil {
			p.base = u
		}
	}
	p.walk(root, scope{prefixes: map[string]string{}})
	return p.g, nil
}

// scope carries the evaluation context inherited down the tree.
type scope struct {
	vocab    string
	prefixes map[string]string
	subject  string
	lang     string
}

type parser struct {
	g      *graph.Graph
	base   *url.URL
	blanks int
}

func (p *parser) nextBlank() string {
	p.blanks++
	return fmt.Sprintf("_:rdfa%d", p.blanks)
}

func (p *parser) walk(n *html.Node, sc scope) {
	if n.Type == html.ElementNode {
		var consumed bool
		sc, consumed = p.enter(n, sc)
		if consumed {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, sc)
	}
}

// enter updates the scope for one element and records any statements it
// states. It returns the scope its children inherit, and whether the subtree
// was consumed as a plain literal value.
func (p *parser) enter(n *html.Node, sc scope) (scope, bool) {
	if v := attr(n, "lang"); v != "" {
		sc.lang = v
	}
	if v := attr(n, "vocab"); v != "" {
		sc.vocab = strings.TrimSpace(v)
	}
	if v := attr(n, "prefix"); v != "" {
		sc.prefixes = mergePrefixes(sc.prefixes, v)
	}

	typeof := strings.Fields(attr(n, "typeof"))
	property := strings.Fields(attr(n, "property"))

	if len(typeof) > 0 {
		// A typed element introduces a new subject; when it also carries
		// property, the new subject becomes a value of the enclosing one.
		id := p.subjectOf(n)
		for _, t := range typeof {
			p.g.AddType(id, p.expand(sc, t))
		}
		if len(property) > 0 && sc.subject != "" {
			for _, prop := range property {
				p.g.Add(sc.subject, p.expand(sc, prop), graph.Reference{ID: id})
			}
		}
		sc.subject = id
		return sc, false
	}

	if len(property) > 0 && sc.subject != "" {
		v := p.valueOf(n, sc)
		for _, prop := range property {
			p.g.Add(sc.subject, p.expand(sc, prop), v)
		}
		// A plain literal value consumes its subtree so nested text is not
		// re-collected; resource-valued properties keep walking.
		_, isRef := v.(graph.Reference)
		return sc, !isRef
	}
	return sc, false
}

// subjectOf picks the identifier a typed element introduces: about, then
// resource, then href, then a fresh blank node.
func (p *parser) subjectOf(n *html.Node) string {
	for _, key := range []string{"about", "resource", "href"} {
		if v := strings.TrimSpace(attr(n, key)); v != "" {
			return p.resolve(v)
		}
	}
	return p.nextBlank()
}

// valueOf extracts a property value: resource/href/src yield references,
// content yields a literal, anything else the element's text content.
func (p *parser) valueOf(n *html.Node, sc scope) graph.Value {
	for _, key := range []string{"resource", "href", "src"} {
		if v := strings.TrimSpace(attr(n, key)); v != "" {
			return graph.Reference{ID: p.resolve(v)}
		}
	}

	text := attr(n, "content")
	if text == "" {
		if n.Data == "time" {
			text = attr(n, "datetime")
		}
		if text == "" {
			text = textContent(n)
		}
	}

	datatype := ""
	if dt := strings.TrimSpace(attr(n, "datatype")); dt != "" {
		datatype = p.expand(sc, dt)
		if datatype == graph.XSDString {
			datatype = ""
		}
	}
	lit := graph.Literal{Text: text, Datatype: datatype}
	if datatype == "" {
		lit.Language = sc.lang
	}
	return lit
}

// expand resolves a term against the scope: absolute IRIs pass through,
// prefixed names use the prefix map, bare terms use the vocabulary.
func (p *parser) expand(sc scope, term string) string {
	if strings.Contains(term, "://") {
		return term
	}
	if i := strings.IndexByte(term, ':'); i >= 0 {
		if ns, ok := sc.prefixes[term[:i]]; ok {
			return ns + term[i+1:]
		}
		return term
	}
	if sc.vocab != "" {
		return sc.vocab + term
	}
	return term
}

func (p *parser) resolve(ref string) string {
	if p.base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return p.base.ResolveReference(u).String()
}

// mergePrefixes parses a prefix attribute ("schema: http://schema.org/ ...")
// into a copy of the inherited map.
func mergePrefixes(inherited map[string]string, decl string) map[string]string {
	out := make(map[string]string, len(inherited)+1)
	for k, v := range inherited {
		out[k] = v
	}
	fields := strings.Fields(decl)
	for i := 0; i+1 < len(fields); i += 2 {
		name := strings.TrimSuffix(fields[i], ":")
		out[name] = fields[i+1]
	}
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
