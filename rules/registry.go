package rules

import (
	"fmt"
)

// Registry resolves resource types to rule sets. It is immutable after
// NewRegistry and safe for concurrent readers; reloading builds a fresh
// registry and swaps it in at the call site.
type Registry struct {
	entries []Entry
}

// NewRegistry builds a registry from entries in registration order. A later
// entry whose key string equals an earlier one overwrites the earlier rule
// in place, so reloaded catalogues keep their original tie-break position.
// Entries are validated eagerly; a nil rule set or empty key is a
// configuration error.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make([]Entry, 0, len(entries))}
	index := make(map[string]int, len(entries))

	for _, e := range entries {
		if e.Rule == nil {
			return nil, fmt.Errorf("rules: entry %q has no rule set", e.Key.String())
		}
		key := e.Key.String()
		if key == "" {
			return nil, fmt.Errorf("rules: rule set %q has an empty match key", e.Rule.Name)
		}
		if i, dup := index[key]; dup {
			r.entries[i] = e
			continue
		}
		index[key] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// Resolve returns the rule set for a resource's declared types, plus the
// string form of the match key that bound it. Among all matching entries the
// numerically lowest priority wins; ties break on registration order.
// ok=false means no entry matched and the resource falls back to reference
// rendering.
func (r *Registry) Resolve(types []string) (rs *RuleSet, matched string, ok bool) {
	bestIdx := -1
	for i, e := range r.entries {
		for _, t := range types {
			if !e.Key.Matches(t) {
				continue
			}
			if bestIdx == -1 || e.Rule.EffectivePriority() < r.entries[bestIdx].Rule.EffectivePriority() {
				bestIdx = i
			}
			break
		}
	}
	if bestIdx == -1 {
		return nil, "", false
	}
	best := r.entries[bestIdx]
	return best.Rule, best.Key.String(), true
}

// Keys returns the match-key strings in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key.String()
	}
	return keys
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
