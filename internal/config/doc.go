// Package config loads, normalizes, and validates nextread configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and augmentation pipeline need: cache location and TTL, scheduler
// concurrency and stagger, scan debounce and visibility threshold, and the
// external catalog source.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
