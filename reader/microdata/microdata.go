// Package microdata reads HTML5 microdata markup (itemscope, itemtype,
// itemprop, itemid) into the triple graph. Items without an itemid become
// blank nodes with sequential labels so parsing stays deterministic.
package microdata

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
	reader.DefaultRegistry.Register(reader.FormatMicrodata, func() reader.Reader {
		return &Reader{}
	})
}

// Reader parses microdata-annotated HTML.
type Reader struct{}

// Name returns the registered format name.
func (*Reader) Name() string { return reader.FormatMicrodata }

// Read parses the page into a graph. base resolves relative itemids and URL
// property values.
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
	p.walkTop(root, "")
	return p.g, nil
}

type parser struct {
	g      *graph.Graph
	base   *url.URL
	blanks int
}

func (p *parser) nextBlank() string {
	p.blanks++
	return fmt.Sprintf("_:md%d", p.blanks)
}

// walkTop finds top-level items: itemscope elements that are not themselves
// a property of an enclosing item.
func (p *parser) walkTop(n *html.Node, lang string) {
	if n.Type == html.ElementNode {
		lang = attrOr(n, "lang", lang)
		if hasAttr(n, "itemscope") && !hasAttr(n, "itemprop") {
			p.parseItem(n, lang)
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walkTop(c, lang)
	}
}

// parseItem records one item's types and properties and returns its
// identifier.
func (p *parser) parseItem(n *html.Node, lang string) string {
	id := strings.TrimSpace(attr(n, "itemid"))
	if id != "" {
		id = p.resolve(id)
	} else {
		id = p.nextBlank()
	}

	vocab := ""
	for _, t := range strings.Fields(attr(n, "itemtype")) {
		p.g.AddType(id, t)
		if vocab == "" {
			vocab = vocabOf(t)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.collect(c, id, vocab, lang)
	}
	return id
}

// collect walks an item's subtree gathering itemprop values, stopping at
// nested itemscope boundaries.
func (p *parser) collect(n *html.Node, itemID, vocab, lang string) {
	if n.Type != html.ElementNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.collect(c, itemID, vocab, lang)
		}
		return
	}

	lang = attrOr(n, "lang", lang)
	props := strings.Fields(attr(n, "itemprop"))

	if len(props) > 0 && hasAttr(n, "itemscope") {
		childID := p.parseItem(n, lang)
		for _, prop := range props {
			p.g.Add(itemID, propIRI(vocab, prop), graph.Reference{ID: childID})
		}
		return
	}

	if len(props) == 0 && hasAttr(n, "itemscope") {
		// A nested item that is nobody's property is its own top-level item.
		p.parseItem(n, lang)
		return
	}

	if len(props) > 0 {
		v := p.valueOf(n, lang)
		for _, prop := range props {
			p.g.Add(itemID, propIRI(vocab, prop), v)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.collect(c, itemID, vocab, lang)
	}
}

// valueOf extracts an element's microdata value per the HTML5 rules:
// content attributes, URL attributes for media/link elements, datetime for
// time, text content otherwise. URL values become references.
func (p *parser) valueOf(n *html.Node, lang string) graph.Value {
	switch n.Data {
	case "meta":
		return graph.Literal{Text: attr(n, "content"), Language: lang}
	case "img", "audio", "video", "embed", "iframe", "source", "track":
		return graph.Reference{ID: p.resolve(attr(n, "src"))}
	case "a", "area", "link":
		return graph.Reference{ID: p.resolve(attr(n, "href"))}
	case "object":
		return graph.Reference{ID: p.resolve(attr(n, "data"))}
	case "data", "meter":
		return graph.Literal{Text: attr(n, "value"), Language: lang}
	case "time":
		if dt := attr(n, "datetime"); dt != "" {
			return graph.Literal{Text: dt}
		}
		return graph.Literal{Text: textContent(n), Language: lang}
	default:
		return graph.Literal{Text: textContent(n), Language: lang}
	}
}

func (p *parser) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || p.base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return p.base.ResolveReference(u).String()
}

// vocabOf derives the property namespace from a type IRI: everything up to
// and including the last # or /.
func vocabOf(typeIRI string) string {
	if i := strings.LastIndexByte(typeIRI, '#'); i >= 0 {
		return typeIRI[:i+1]
	}
	if i := strings.LastIndexByte(typeIRI, '/'); i >= 0 {
		return typeIRI[:i+1]
	}
	return ""
}

// propIRI resolves an itemprop name against the item's vocabulary.
// Absolute names pass through.
func propIRI(vocab, name string) string {
	if strings.Contains(name, "://") || vocab == "" {
		return name
	}
	return vocab + name
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

func attrOr(n *html.Node, key, fallback string) string {
	if v := attr(n, key); v != "" {
		return v
	}
	return fallback
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
