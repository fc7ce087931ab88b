// Package server exposes the cradle HTTP surface: manifest and media file
// endpoints under /audio/stories and /images/stories, and the JSON API used
// by the CLI.
//
// A request for a manifest that does not exist answers 404; clients treat
// that as "this story has no media of this kind", not as a failure.
package server
