// Package config loads, normalizes, and validates Broadwayscore
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Every tuned matching and scoring
// threshold lives here as an explicit field: edit-distance and length
// guards for fuzzy matching, the revival separation window, the quarantine
// signal floor, the fixed discourse weight, and the designation bands.
// Nothing in the core packages reads a literal threshold.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and validated band tables.
package config
