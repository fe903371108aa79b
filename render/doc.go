// Package render turns one resource of a triple graph into a compact HTML
// snippet, honoring the presentation rule sets resolved from the resource's
// types.
//
// Rendering is a pure, synchronous traversal: classify the resource's
// properties into display roles, format each value, recurse into referenced
// resources with an explicit visited set, and assemble the fragment in fixed
// role order (photo, title, body, description, nested). The registry and the
// graph are read-only, so independent renders may run concurrently.
package render
