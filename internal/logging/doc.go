// Package logging builds slog loggers for nextread with console and JSON
// output, standardized field keys, and component-tagged child loggers.
//
// Console output is human oriented: short timestamps, colored levels when
// the writer is a terminal, and key=value attrs. JSON output is intended
// for file sinks and downstream tooling.
package logging
