// Package service hosts the snippet rendering engine behind HTTP and NATS
// surfaces: a reloadable rule registry, remote document fetching, and a
// readability-based fallback for pages without usable structured data.
package service

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"

	readability "github.com/go-shiori/go-readability"

	"github.com/c360studio/semsnip/lint"
	"github.com/c360studio/semsnip/reader"
	"github.com/c360studio/semsnip/render"
	"github.com/c360studio/semsnip/rules"
	"github.com/c360studio/semsnip/vocab/datavocab"
	"github.com/c360studio/semsnip/vocab/schemaorg"
)

// RenderRequest is the payload accepted by the HTTP handler and the NATS
// worker. Document carries the markup inline; URL fetches it instead.
type RenderRequest struct {
	Document string `json:"document,omitempty"`
	URL      string `json:"url,omitempty"`
	// Format names the markup format; empty or "auto" sniffs it.
	Format string `json:"format,omitempty"`
	// Base is the base IRI for relative references; defaults to URL.
	Base string `json:"base,omitempty"`
}

// RenderResponse is the render outcome.
type RenderResponse struct {
	HTML    string   `json:"html"`
	Matched []string `json:"matched"`
	// Fallback marks a snippet extracted by readability instead of the
	// structured-data renderer.
	Fallback  bool   `json:"fallback,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Engine ties readers, the rule registry and the renderer together behind
// one reloadable unit. The registry pointer is swapped atomically on reload
// so in-flight renders keep a consistent view.
type Engine struct {
	rulesDir string
	logger   *slog.Logger
	registry atomic.Pointer[rules.Registry]
	checker  *lint.Checker
}

// NewEngine builds an engine with the built-in vocabulary catalogues plus an
// optional directory of YAML rule files layered on top.
func NewEngine(rulesDir string, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		rulesDir: rulesDir,
		logger:   logger,
		checker:  lint.NewChecker(knownTypes()...),
	}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// BuiltinEntries returns the compiled-in catalogue entries in registration
// order. Directory rules load after these, so a file rule with the same
// match key overrides the catalogue entry in place.
func BuiltinEntries() []rules.Entry {
	entries := schemaorg.Entries()
	return append(entries, datavocab.Entries()...)
}

func knownTypes() []lint.TypeRules {
	known := schemaorg.KnownTypes()
	return append(known, datavocab.KnownTypes()...)
}

// Reload rebuilds the registry from the catalogues and the rule directory
// and swaps it in. On error the previous registry stays active.
func (e *Engine) Reload() error {
	entries := BuiltinEntries()
	if e.rulesDir != "" {
		loaded, err := rules.LoadDir(e.rulesDir, render.NamedFormatters())
		if err != nil {
			return fmt.Errorf("load rule dir: %w", err)
		}
		entries = append(entries, loaded...)
	}

	reg, err := rules.NewRegistry(entries...)
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}
	e.registry.Store(reg)
	e.logger.Info("Rule registry loaded",
		slog.Int("entries", reg.Len()),
		slog.String("dir", e.rulesDir))
	return nil
}

// Registry returns the currently active rule registry.
func (e *Engine) Registry() *rules.Registry {
	return e.registry.Load()
}

// Render parses a document and renders its snippet. When the structured-data
// render produces nothing and the payload is an HTML page, readability
// extracts a fallback snippet instead.
func (e *Engine) Render(data []byte, format, base string) (RenderResponse, error) {
	g, err := reader.Parse(data, format, base)
	if err != nil {
		if resp, ok := e.fallback(data, base); ok {
			return resp, nil
		}
		return RenderResponse{}, err
	}

	result := render.RenderGraph(g, e.Registry(), render.WithLogger(e.logger))
	if result.Fragment == "" {
		if resp, ok := e.fallback(data, base); ok {
			return resp, nil
		}
	}
	return RenderResponse{HTML: result.Fragment, Matched: result.Matched}, nil
}

// Lint parses a document and reports vocabulary findings.
func (e *Engine) Lint(data []byte, format, base string) ([]lint.Message, error) {
	g, err := reader.Parse(data, format, base)
	if err != nil {
		return nil, err
	}
	return e.checker.Check(g), nil
}

// fallback extracts a plain snippet from an HTML page via readability.
// Non-HTML payloads and pages without extractable content yield ok=false.
func (e *Engine) fallback(data []byte, base string) (RenderResponse, bool) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		return RenderResponse{}, false
	}

	var pageURL *url.URL
	if base != "" {
		if u, err := url.Parse(base); err == nil {
			pageURL = u
		}
	}

	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil || (article.Title == "" && article.Excerpt == "") {
		return RenderResponse{}, false
	}

	var sb strings.Builder
	sb.WriteString(`<div class="snippet snippet-fallback">`)
	if article.Title != "" {
		sb.WriteString(`<span class="snippet-title">`)
		sb.WriteString(html.EscapeString(article.Title))
		sb.WriteString(`</span>`)
	}
	if article.Excerpt != "" {
		sb.WriteString(`<div class="snippet-description">`)
		sb.WriteString(html.EscapeString(article.Excerpt))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)

	e.logger.Debug("Rendered readability fallback", slog.String("title", article.Title))
	return RenderResponse{HTML: sb.String(), Matched: []string{}, Fallback: true}, true
}
