// Package main hosts the nextread CLI entrypoint and command graph.
//
// The Cobra-based command tree runs one-shot and watch-mode augmentation of
// saved catalog pages, inspects the metadata cache, and scaffolds
// configuration. It centralizes configuration resolution and logging setup so
// subcommands stay declarative; the scheduling, caching, and fetching logic
// lives in the internal packages.
package main
