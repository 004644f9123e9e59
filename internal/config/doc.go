// Package config loads and validates the splice TOML configuration.
//
// Load applies defaults, decodes the user's file when present, expands
// paths, and validates the result, so every other package receives a
// fully-resolved Config.
package config
