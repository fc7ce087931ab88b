// Package daemon wires the long-running cradled process: single-instance
// locking, the story catalog and account stores, the HTTP server, and the
// deactivated-account sweeper.
package daemon
