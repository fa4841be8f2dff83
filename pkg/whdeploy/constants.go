package whdeploy

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
//
// Statement warnings never change the exit code; a run that attempted every
// statement exits with ExitSuccess.
const (
	ExitSuccess      = 0  // Run completed (warnings included)
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Manifest missing/unparseable, unknown environment, bad overrides
	ExitRenderError  = 15 // Template failed to render
)

const (
	// DefaultManifestFile is the manifest looked up in the working directory.
	DefaultManifestFile = "manifest.yml"

	// DefaultDefinitionsDir is the directory holding the SQL templates.
	DefaultDefinitionsDir = "definitions"

	// TemplatePattern selects template files inside the definitions directory.
	TemplatePattern = "*.sql"

	// DefaultConnection is the warehouse client connection used when none is given.
	DefaultConnection = "default"

	// DefaultClientBinary is the warehouse command-line client.
	DefaultClientBinary = "snow"

	// ClientBinaryEnvVar overrides DefaultClientBinary when --client is not set.
	ClientBinaryEnvVar = "WHDEPLOY_CLIENT"

	// DefaultStatementTimeout bounds a single client invocation.
	DefaultStatementTimeout = 120 * time.Second

	// StatementPreviewLength is the number of characters of a statement
	// echoed before it is executed.
	StatementPreviewLength = 100

	// StatementSeparator delimits statements in rendered SQL.
	StatementSeparator = ";"
)
