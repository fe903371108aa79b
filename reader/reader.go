// Package reader turns raw structured-data markup into the triple graph the
// renderer consumes. Format readers (JSON-LD, microdata, RDFa) register
// themselves in the default registry via init; callers either name a format
// or let Detect sniff one from the payload.
//
// Readers preserve source order: subjects, properties and values enter the
// graph in the order the document states them.
package reader

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/c360studio/semsnip/graph"
)

// ErrUnknownFormat reports a format name with no registered reader, or a
// payload Detect could not classify.
var ErrUnknownFormat = errors.New("reader: unknown format")

// Reader parses one markup format into a graph. base is the document base
// IRI used to resolve relative references.
type Reader interface {
	Name() string
	Read(r io.Reader, base string) (*graph.Graph, error)
}

// Factory creates a reader instance.
type Factory func() Reader

// Registry maps format names to reader factories. Thread-safe; format
// packages register in init.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under a format name. Re-registering a name
// replaces the factory but keeps its position.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; !exists {
		r.order = append(r.order, name)
	}
	r.factories[name] = f
}

// Create instantiates the reader for a format name.
func (r *Registry) Create(name string) (Reader, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return f(), nil
}

// Names returns the registered format names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry is the process-wide format registry. Format packages
// register via init; main imports them blank.
var DefaultRegistry = NewRegistry()
