package reader

import (
	"bytes"
	"fmt"

	"github.com/c360studio/semsnip/graph"
)

// Format names understood by Detect. They match the names the format
// packages register under.
const (
	FormatJSONLD    = "jsonld"
	FormatMicrodata = "microdata"
	FormatRDFa      = "rdfa"
)

// Detect sniffs the markup format of a payload. Raw JSON is JSON-LD; HTML
// carrying itemscope attributes is microdata; HTML carrying typeof/vocab
// attributes (or only embedded ld+json scripts) classifies as RDFa or
// JSON-LD respectively. Detection is deterministic for a given payload.
func Detect(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrUnknownFormat)
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSONLD, nil
	}
	if bytes.Contains(data, []byte("itemscope")) {
		return FormatMicrodata, nil
	}
	if bytes.Contains(data, []byte("typeof=")) || bytes.Contains(data, []byte("vocab=")) {
		return FormatRDFa, nil
	}
	if bytes.Contains(data, []byte("application/ld+json")) {
		return FormatJSONLD, nil
	}
	return "", fmt.Errorf("%w: no structured data markers found", ErrUnknownFormat)
}

// Parse reads a payload with the named format from the default registry,
// detecting the format first when name is empty or "auto".
func Parse(data []byte, name, base string) (*graph.Graph, error) {
	if name == "" || name == "auto" {
		detected, err := Detect(data)
		if err != nil {
			return nil, err
		}
		name = detected
	}
	r, err := DefaultRegistry.Create(name)
	if err != nil {
		return nil, err
	}
	return r.Read(bytes.NewReader(data), base)
}
