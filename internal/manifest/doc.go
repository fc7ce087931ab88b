// Package manifest defines the delimited-text manifest format that describes
// a story's narrated-audio parts and illustration images, and the tolerant
// parser for it.
//
// Manifests are small hand-maintained text files, one entry per line with
// pipe-separated fields. Lines starting with '#' are comments. A malformed
// line never fails the parse as a whole; it is skipped and reported as a
// structured diagnostic so tooling can surface the problem without losing the
// remaining valid entries.
package manifest
