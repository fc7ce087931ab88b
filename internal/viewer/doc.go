// Package viewer tracks which story a reader is currently viewing and keeps
// its resolved media snapshot up to date.
//
// Showing a new story cancels the in-flight load of any superseded one, so
// the last requested story's media is always what the snapshot reflects,
// regardless of fetch completion order.
package viewer
