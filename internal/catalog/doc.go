// Package catalog persists the story catalog backed by SQLite.
//
// The catalog holds story metadata only (title, gestation week, summary);
// narrative text and media files live in the library directory, addressed by
// story ID.
package catalog
