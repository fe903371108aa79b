// Package graph provides the in-memory triple graph consumed by the snippet
// renderer. A graph is built once by a format reader (JSON-LD, microdata,
// RDFa) and is read-only afterwards: resources are lightweight views over the
// underlying statements and the renderer never mutates them.
//
// Ordering is significant throughout. Subjects keep their first-seen order,
// each subject keeps the insertion order of its properties, and every
// property keeps the append order of its values. Readers preserve source
// order when populating a graph, so rendering is deterministic for a given
// input document.
package graph
