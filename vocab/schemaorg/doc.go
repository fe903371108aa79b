// Package schemaorg provides the schema.org presentation rule catalogue.
//
// The catalogue is a configuration instance of the rule registry: an ordered
// list of entries binding schema.org types to role lists, priorities and
// formatting strategies. Pages publish schema.org under both the http and
// https namespace forms, so type binding uses pattern match keys and role
// lists carry both property IRI variants.
//
// # Usage
//
// Build a registry from the catalogue, optionally stacking further entries
// on top (later same-key entries overwrite):
//
//	reg, err := rules.NewRegistry(schemaorg.Entries()...)
//
// The package also exports the per-type known/recommended property catalogue
// consumed by the lint checker.
package schemaorg
