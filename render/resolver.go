package render

import (
	"html"
	"log/slog"
	"strings"

	"github.com/c360studio/semsnip/graph"
	"github.com/c360studio/semsnip/rules"
)

// resolver renders one resource and everything it references within a single
// top-level render call. The visited set bounds recursion: each resource is
// rendered at most once per call, and a cycle edge degrades to a plain
// reference link.
type resolver struct {
	g       Accessor
	reg     *rules.Registry
	logger  *slog.Logger
	visited map[string]bool

	// matched records rule match keys in order of first use; shared across
	// the top-level calls of one RenderGraph so the driver can report them.
	matched *[]string
	seen    map[string]bool
}

func newResolver(g Accessor, reg *rules.Registry, logger *slog.Logger, matched *[]string, seen map[string]bool) *resolver {
	return &resolver{
		g:       g,
		reg:     reg,
		logger:  logger,
		visited: make(map[string]bool),
		matched: matched,
		seen:    seen,
	}
}

// Render implements rules.Recurser. ok=false means the resource yields
// nothing useful: no rule set, no properties, and no identifier worth
// linking to.
func (r *resolver) Render(id string) (string, bool) {
	// Cycle edge: the resource is already being rendered further up the
	// stack (or was rendered earlier in this call); emit a plain link
	// instead of re-entering.
	if r.visited[id] {
		return referenceLink(id, ""), true
	}
	r.visited[id] = true

	rs, key, ok := r.reg.Resolve(r.g.TypesOf(id))
	if !ok {
		return r.fallback(id)
	}
	r.recordMatch(key)

	f := &formatter{rec: r, logger: r.logger}
	buckets := classify(r.g, id, rs)

	photo := f.firstRenderable(rs, buckets.photo)
	title := f.firstRenderable(rs, buckets.title)
	description := f.firstRenderable(rs, buckets.description)

	var body []string
	for _, pv := range buckets.body {
		if frag := f.multi(rs, pv.property, pv.values); frag != "" {
			body = append(body, frag)
		}
	}

	var nested []string
	for _, pv := range buckets.nested {
		if frag := f.multi(rs, pv.property, pv.values); frag != "" {
			nested = append(nested, frag)
		}
	}

	if photo == "" && title == "" && description == "" && len(body) == 0 && len(nested) == 0 {
		return r.fallback(id)
	}

	return assemble(id, r.g.TypesOf(id), photo, title, body, description, nested), true
}

// fallback is the degraded rendering for resources without a usable rule
// set. A resource carrying no statements at all yields none, so a bare URL
// object (a photo IRI, say) falls through to the later formatter branches
// instead of rendering as a link. Anything with statements renders as a
// reference link.
func (r *resolver) fallback(id string) (string, bool) {
	if len(r.g.PropertiesOf(id)) == 0 && len(r.g.TypesOf(id)) == 0 {
		return "", false
	}
	return referenceLink(id, ""), true
}

func (r *resolver) recordMatch(key string) {
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	*r.matched = append(*r.matched, key)
}

// assemble joins the formatted roles in fixed order: photo, title, body
// entries, description, nested entries. Absent roles are omitted.
func assemble(id string, types []string, photo, title string, body []string, description string, nested []string) string {
	var sb strings.Builder
	sb.WriteString(`<div class="snippet"`)
	if !graph.IsBlank(id) {
		sb.WriteString(` about="`)
		sb.WriteString(html.EscapeString(id))
		sb.WriteString(`"`)
	}
	if len(types) > 0 {
		sb.WriteString(` typeof="`)
		sb.WriteString(html.EscapeString(strings.Join(types, " ")))
		sb.WriteString(`"`)
	}
	sb.WriteString(`>`)

	if photo != "" {
		sb.WriteString(photo)
	}
	if title != "" {
		sb.WriteString(`<span class="snippet-title">`)
		sb.WriteString(title)
		sb.WriteString(`</span>`)
	}
	for _, entry := range body {
		sb.WriteString(`<div class="snippet-body">`)
		sb.WriteString(entry)
		sb.WriteString(`</div>`)
	}
	if description != "" {
		sb.WriteString(`<div class="snippet-description">`)
		sb.WriteString(description)
		sb.WriteString(`</div>`)
	}
	for _, entry := range nested {
		sb.WriteString(`<div class="snippet-nested">`)
		sb.WriteString(entry)
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String()
}
