// Package logging constructs slog loggers for the CLI and batch drivers.
//
// It supports console and JSON output, optional tee-ing into a log file
// under the configured log directory, and exposes thin Attr helpers so
// call sites stay consistent. NewNop returns a logger that discards
// everything, which the tests use.
package logging
