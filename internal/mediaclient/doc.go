// Package mediaclient fetches and resolves story media manifests over HTTP.
//
// A missing manifest (404) means the story simply has no media of that kind
// and resolves to an empty list. Transport failures and unexpected statuses
// degrade the same way, with a logged warning, so a broken manifest endpoint
// yields a text-only story instead of an error. The only error the client
// propagates is cancellation of the caller's context.
package mediaclient
