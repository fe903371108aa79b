package render

import (
	"log/slog"
	"strings"

	"github.com/c360studio/semsnip/graph"
	"github.com/c360studio/semsnip/rules"
)

// Result is the output of a whole-graph render.
type Result struct {
	// Fragment is the assembled, escaped HTML for all root resources.
	Fragment string `json:"html"`

	// Matched lists the rule match keys actually used during traversal, in
	// order of first use.
	Matched []string `json:"matched"`
}

type options struct {
	logger *slog.Logger
}

// Option configures a render call.
type Option func(*options)

// WithLogger routes formatter anomaly reports to the given logger. The
// default discards nothing: slog's default logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// RenderGraph selects the graph's root resources and renders each to a
// snippet fragment. Roots are the subjects with a matched rule set that are
// not referenced from another subject, in source order; when no subject
// qualifies, the first subject with a matched rule set is used, then the
// first subject outright. An empty graph yields an empty result, not an
// error.
func RenderGraph(g Accessor, reg *rules.Registry, opts ...Option) Result {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	result := Result{Matched: []string{}}
	if g == nil {
		return result
	}
	subjects := g.Subjects()
	if len(subjects) == 0 {
		return result
	}

	roots := selectRoots(g, reg, subjects)

	seen := make(map[string]bool)
	var fragments []string
	for _, root := range roots {
		// Fresh visited set per top-level call; matched keys accumulate
		// across roots.
		res := newResolver(g, reg, o.logger, &result.Matched, seen)
		if frag, ok := res.Render(root); ok {
			fragments = append(fragments, frag)
		}
	}

	result.Fragment = strings.Join(fragments, "\n")
	return result
}

// selectRoots applies the top-level heuristic: subjects with a matched rule
// set that no other subject references, in source order.
func selectRoots(g Accessor, reg *rules.Registry, subjects []string) []string {
	referenced := make(map[string]bool)
	for _, s := range subjects {
		for _, p := range g.PropertiesOf(s) {
			for _, v := range g.ValuesOf(s, p) {
				if ref, ok := v.(graph.Reference); ok && ref.ID != s {
					referenced[ref.ID] = true
				}
			}
		}
	}

	var roots []string
	var firstMatched string
	for _, s := range subjects {
		_, _, ok := reg.Resolve(g.TypesOf(s))
		if ok && firstMatched == "" {
			firstMatched = s
		}
		if ok && !referenced[s] {
			roots = append(roots, s)
		}
	}
	if len(roots) > 0 {
		return roots
	}
	if firstMatched != "" {
		return []string{firstMatched}
	}
	return subjects[:1]
}
