package whdeploy

// Logger provides a pluggable logging interface for whdeploy operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs progress messages about normal operations.
	// Always logged regardless of verbose mode.
	Info(format string, args ...interface{})

	// Success acknowledges a completed step (a statement the client accepted).
	Success(format string, args ...interface{})

	// Warn logs a non-fatal problem; the run continues.
	Warn(format string, args ...interface{})

	// Error logs error messages.
	// Always logged regardless of verbose mode.
	Error(format string, args ...interface{})

	// Banner logs a prominent section heading.
	Banner(title string)

	// Section logs a secondary heading, one per processed file.
	Section(title string)
}
