package whdeploy

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := deployer.Deploy(ctx, config)
//	if errors.Is(err, whdeploy.ErrConfigNotFound) {
//	    // the environment is not declared in the manifest
//	}
var (
	// ErrUsage indicates the command line could not be interpreted.
	ErrUsage = errors.New("usage error")

	// ErrInvalidConfig indicates the provided deployment configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrManifestNotFound indicates the manifest file does not exist.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrManifestParse indicates the manifest document is malformed.
	ErrManifestParse = errors.New("manifest parse error")

	// ErrConfigNotFound indicates the requested environment is absent from the manifest.
	ErrConfigNotFound = errors.New("environment not found in manifest")

	// ErrRender indicates a template could not be rendered.
	ErrRender = errors.New("template render failed")

	// ErrStatementTimeout indicates a client invocation exceeded its timeout.
	ErrStatementTimeout = errors.New("statement timed out")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrManifestNotFound),
		errors.Is(err, ErrManifestParse),
		errors.Is(err, ErrConfigNotFound):
		return ExitConfigError
	case errors.Is(err, ErrRender):
		return ExitRenderError
	}

	// cobra reports argument and flag problems as plain errors
	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}
