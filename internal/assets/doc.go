// Package assets turns flat manifest entry lists into the per-section lookup
// structures the rest of the system consumes, and provides the small pure
// accessors (presence checks, URL construction) over them.
//
// A Media value is built wholesale from a pair of manifests and never mutated
// afterwards; reloading a story's media replaces the whole value.
package assets
