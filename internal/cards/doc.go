// Package cards defines the opaque card handle and the per-card lifecycle
// state register (Unprocessed -> Loading -> Processed, with Processed
// terminal).
package cards
