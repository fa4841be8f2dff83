package whdeploy

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DeploymentConfig contains all parameters needed for one deployment run.
type DeploymentConfig struct {
	// Environment selects the manifest configuration. It is upper-cased
	// before lookup, so "dev" and "DEV" are the same environment.
	Environment string

	// Connection is the warehouse client connection name, fixed for the run.
	Connection string

	// ManifestPath is the manifest document holding all environments.
	ManifestPath string

	// DefinitionsDir is the directory scanned for TemplatePattern files.
	DefinitionsDir string

	// Overrides are applied on top of the environment's configuration
	// (params files, then --param pairs).
	Overrides map[string]string

	// DryRun renders and splits templates without invoking the client.
	DryRun bool

	// Verbose enables detailed logging
	Verbose bool
}

// NormalizedEnvironment returns the environment name as used for manifest lookup.
func (c *DeploymentConfig) NormalizedEnvironment() string {
	return strings.ToUpper(strings.TrimSpace(c.Environment))
}

// Validate checks if the DeploymentConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *DeploymentConfig) Validate() error {
	var errs []error

	if c.NormalizedEnvironment() == "" {
		errs = append(errs, fmt.Errorf("Environment is required: %w", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.Connection) == "" {
		errs = append(errs, fmt.Errorf("Connection is required: %w", ErrInvalidConfig))
	}

	if c.ManifestPath == "" {
		errs = append(errs, fmt.Errorf("ManifestPath is required: %w", ErrInvalidConfig))
	}

	if c.DefinitionsDir == "" {
		errs = append(errs, fmt.Errorf("DefinitionsDir is required: %w", ErrInvalidConfig))
	}

	for k := range c.Overrides {
		if strings.TrimSpace(k) == "" {
			errs = append(errs, fmt.Errorf("override with empty key: %w", ErrInvalidConfig))
			break
		}
	}

	return errors.Join(errs...)
}

// TemplateFile describes one discovered SQL template.
type TemplateFile struct {
	// Path is the file path as discovered (definitions dir joined with the name).
	Path string

	// Name is the base file name.
	Name string

	// ID is a deterministic identity derived from the normalized path.
	ID string

	// Checksum is the SHA-256 of the raw template content.
	Checksum string

	// Content is the raw template text.
	Content string
}

// StatementStatus is the outcome class of a single statement.
type StatementStatus int

const (
	// StatementSucceeded means the client exited with status zero.
	StatementSucceeded StatementStatus = iota
	// StatementWarned means the statement failed; the batch continued.
	StatementWarned
	// StatementSkipped means the statement was split but not sent (dry run).
	StatementSkipped
)

func (s StatementStatus) String() string {
	switch s {
	case StatementSucceeded:
		return "ok"
	case StatementWarned:
		return "warning"
	case StatementSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("StatementStatus(%d)", int(s))
	}
}

// StatementResult records what happened to one statement.
type StatementResult struct {
	Statement string
	Status    StatementStatus

	// Reason is the warning message; empty on success.
	Reason string

	// ExitCode is the client exit status, or -1 when the client did not exit normally.
	ExitCode int

	// Stdout is the captured client output on success.
	Stdout string

	TimedOut bool
	Duration time.Duration
}

// FileResult groups the statement results of one template file, in source order.
type FileResult struct {
	File       TemplateFile
	Statements []StatementResult
}

// Warnings counts statements that ended with a warning.
func (r FileResult) Warnings() int {
	n := 0
	for _, s := range r.Statements {
		if s.Status == StatementWarned {
			n++
		}
	}
	return n
}

// DeploymentResult is the ordered record of a completed run.
type DeploymentResult struct {
	Environment string
	Connection  string
	Files       []FileResult
}

// Statements counts every statement attempted (or listed, in dry-run mode).
func (r *DeploymentResult) Statements() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Statements)
	}
	return n
}

// Warnings counts statements that ended with a warning across all files.
func (r *DeploymentResult) Warnings() int {
	n := 0
	for _, f := range r.Files {
		n += f.Warnings()
	}
	return n
}
