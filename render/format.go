package render

import (
	"html"
	"log/slog"
	"strings"

	"github.com/c360studio/semsnip/graph"
	"github.com/c360studio/semsnip/rules"
)

// formatter renders single property values and value lists to HTML
// fragments. It holds the resolver so reference values (and rule strategies)
// can recurse into snippet rendering.
type formatter struct {
	rec    rules.Recurser
	logger *slog.Logger
}

// single renders one value of a property. Branches are tried in fixed
// priority order; the first producing output wins. An empty result means the
// value has no renderable form and the caller must treat the slot as absent,
// never emit a blank fragment.
func (f *formatter) single(rs *rules.RuleSet, property string, v graph.Value) string {
	// 1. Rule-attached strategy. A failing strategy is reported and the
	// value falls back to the generic branches below.
	if rs.Single != nil {
		frag, err := rs.Single(f.rec, property, v)
		if err != nil {
			f.logger.Warn("rule formatter failed, using generic rendering",
				"rule", rs.Name, "property", property, "error", err)
		} else if frag != "" {
			return frag
		}
	}

	// 2. References render recursively when the resolver yields something.
	if ref, isRef := v.(graph.Reference); isRef {
		if frag, ok := f.rec.Render(ref.ID); ok {
			return frag
		}
	}

	// 3. Photo-role properties render as an image element.
	if rs.IsPhotoProp(property) {
		if src := strings.TrimSpace(graph.Text(v)); src != "" {
			return `<img class="snippet-photo" src="` + html.EscapeString(src) + `" alt=""/>`
		}
		return ""
	}

	switch t := v.(type) {
	case graph.Literal:
		// 4. XML literals are already markup and pass through verbatim.
		if t.IsXML() {
			return `<span class="snippet-xml" property="` + html.EscapeString(property) + `">` + t.Text + `</span>`
		}
		// 5. Plain literals render escaped, carrying language and datatype
		// as metadata attributes when present.
		if strings.TrimSpace(t.Text) == "" {
			return ""
		}
		var sb strings.Builder
		sb.WriteString(`<span property="`)
		sb.WriteString(html.EscapeString(property))
		sb.WriteString(`"`)
		if t.Language != "" {
			sb.WriteString(` lang="`)
			sb.WriteString(html.EscapeString(t.Language))
			sb.WriteString(`"`)
		}
		if t.Datatype != "" {
			sb.WriteString(` datatype="`)
			sb.WriteString(html.EscapeString(t.Datatype))
			sb.WriteString(`"`)
		}
		sb.WriteString(`>`)
		sb.WriteString(html.EscapeString(t.Text))
		sb.WriteString(`</span>`)
		return sb.String()

	case graph.Reference:
		// 6. Bare reference link when recursion yielded nothing.
		return referenceLink(t.ID, property)
	}

	return ""
}

// multi renders a property's whole value list. The collapse policy is rule
// configuration: first-only renders the first value in source order, join-all
// renders every value comma-joined. Photo-role properties are always
// first-only.
func (f *formatter) multi(rs *rules.RuleSet, property string, vs []graph.Value) string {
	if len(vs) == 0 {
		return ""
	}

	if rs.Multi != nil {
		frag, err := rs.Multi(f.rec, property, vs)
		if err != nil {
			f.logger.Warn("rule list formatter failed, using generic rendering",
				"rule", rs.Name, "property", property, "error", err)
		} else if frag != "" {
			return frag
		}
	}

	if rs.PolicyFor(property) == rules.FirstOnly || rs.IsPhotoProp(property) {
		return f.single(rs, property, vs[0])
	}

	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		if frag := f.single(rs, property, v); frag != "" {
			parts = append(parts, frag)
		}
	}
	return strings.Join(parts, ", ")
}

// firstRenderable walks role candidates in priority order and returns the
// first value that renders non-empty. Single-value mode: only the first
// value of each candidate property is considered.
func (f *formatter) firstRenderable(rs *rules.RuleSet, candidates []propertyValues) string {
	for _, pv := range candidates {
		if frag := f.single(rs, pv.property, pv.values[0]); frag != "" {
			return frag
		}
	}
	return ""
}

// referenceLink renders a resource identifier as a typed link. Blank node
// labels are not links; they render as a neutral span.
func referenceLink(id, property string) string {
	if graph.IsBlank(id) {
		return `<span class="snippet-ref" property="` + html.EscapeString(property) + `">` + html.EscapeString(id) + `</span>`
	}
	escaped := html.EscapeString(id)
	attr := ""
	if property != "" {
		attr = ` property="` + html.EscapeString(property) + `"`
	}
	return `<a class="snippet-ref"` + attr + ` href="` + escaped + `">` + escaped + `</a>`
}
