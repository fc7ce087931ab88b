// Package main hosts the cradle CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the cradled API, manifest linting, account maintenance, and
// configuration scaffolding. It centralizes configuration resolution and API
// address discovery so subcommands can focus on user experience.
package main
