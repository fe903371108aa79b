// Package rules defines presentation rule sets and the registry that binds
// them to resource types.
//
// A rule set describes how one family of typed resources is summarized:
// which properties fill the title, photo, body, description and nested
// display roles, how multi-valued properties collapse, and any custom
// formatting strategies. Rule sets are bound to types through match keys,
// either an exact type IRI or a compiled pattern covering vocabulary
// variants.
//
// The registry is built once at startup from an ordered list of entries
// (catalogue packages under vocab/ plus optional YAML rule files) and is
// immutable afterwards. Resolution is deterministic: the numerically lowest
// priority wins, ties break on registration order.
package rules
