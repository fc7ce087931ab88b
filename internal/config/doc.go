// Package config loads, validates, and normalizes the TOML configuration
// shared by the cradle daemon and CLI.
package config
