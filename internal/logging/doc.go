// Package logging provides concrete implementations of the whdeploy.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes progress to stdout and diagnostics to stderr,
//     styled with lipgloss when the output is a terminal
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
