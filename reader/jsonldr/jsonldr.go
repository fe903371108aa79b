// Package jsonldr reads JSON-LD documents into the triple graph, either as
// raw JSON payloads or as HTML pages carrying application/ld+json script
// blocks. Expansion and RDF conversion are delegated to json-gold; only the
// default graph of the resulting dataset is consumed.
package jsonldr

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/piprate/json-gold/ld"
	"golang.org/x/net/html"

	"github.com/c360studio/semsnip/graph"
	"github.com/c360studio/semsnip/reader"
)

func init() {
	reader.DefaultRegistry.Register(reader.FormatJSONLD, func() reader.Reader {
		return &Reader{}
	})
}

// Reader parses JSON-LD payloads.
type Reader struct{}

// Name returns the registered format name.
func (*Reader) Name() string { return reader.FormatJSONLD }

// Read parses the payload into a graph. base resolves relative IRIs.
func (rd *Reader) Read(r io.Reader, base string) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json-ld payload: %w", err)
	}

	docs, err := payloadDocuments(data)
	if err != nil {
		return nil, err
	}

	g := graph.New()
	for _, doc := range docs {
		if err := addDocument(g, doc, base); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// payloadDocuments returns the JSON documents in a payload: the payload
// itself when it is raw JSON, or every embedded ld+json script when it is
// an HTML page.
func payloadDocuments(data []byte) ([]any, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	var raws []string
	if strings.HasPrefix(trimmed, "<") {
		raws = extractScripts(trimmed)
	} else {
		raws = []string{trimmed}
	}

	docs := make([]any, 0, len(raws))
	for _, raw := range raws {
		var doc any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("parse json-ld document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// extractScripts collects the bodies of application/ld+json script elements
// in document order. A page without such scripts yields nothing.
func extractScripts(page string) []string {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}

	var bodies []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" && isLDJSON(n) {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			if body := strings.TrimSpace(sb.String()); body != "" {
				bodies = append(bodies, body)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return bodies
}

func isLDJSON(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "type" && strings.EqualFold(strings.TrimSpace(a.Val), "application/ld+json") {
			return true
		}
	}
	return false
}

// addDocument converts one JSON-LD document to quads and merges its default
// graph into g.
func addDocument(g *graph.Graph, doc any, base string) error {
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions(base)

	raw, err := proc.ToRDF(doc, opts)
	if err != nil {
		return fmt.Errorf("convert json-ld to rdf: %w", err)
	}
	dataset, ok := raw.(*ld.RDFDataset)
	if !ok {
		return fmt.Errorf("convert json-ld to rdf: unexpected result %T", raw)
	}

	for _, quad := range dataset.Graphs["@default"] {
		subject := quad.Subject.GetValue()
		predicate := quad.Predicate.GetValue()

		switch obj := quad.Object.(type) {
		case ld.Literal:
			datatype := obj.Datatype
			if datatype == graph.XSDString {
				datatype = ""
			}
			g.Add(subject, predicate, graph.Literal{
				Text:     obj.GetValue(),
				Language: obj.Language,
				Datatype: datatype,
			})
		default:
			g.Add(subject, predicate, graph.Reference{ID: quad.Object.GetValue()})
		}
	}
	return nil
}
