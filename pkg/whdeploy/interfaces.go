package whdeploy

import "context"

// Deployer runs a full deployment: resolve the environment, then render and
// execute every template in order.
type Deployer interface {
	// Deploy returns an error only for fatal conditions (manifest, environment,
	// rendering). Statement failures are reported in the result.
	Deploy(ctx context.Context, config DeploymentConfig) (*DeploymentResult, error)
}

// TemplateRenderer substitutes configuration values into template text.
// Any engine that offers text substitution over a mapping satisfies it.
type TemplateRenderer interface {
	Render(templateText string, vars map[string]any) (string, error)
}

// TemplateScanner discovers SQL templates.
// Implementations must be safe for concurrent use by multiple goroutines.
type TemplateScanner interface {
	// ScanTemplates returns the templates in dir matching TemplatePattern,
	// sorted lexicographically by path.
	ScanTemplates(dir string) ([]TemplateFile, error)
}

// ClientResult is what the warehouse client reported for one invocation.
type ClientResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// WarehouseClient sends one statement to the warehouse.
//
// A non-zero exit status is reported through ClientResult, not as an error.
// Errors are reserved for invocations that did not complete: ErrStatementTimeout
// when the timeout elapsed, or the underlying failure (binary missing, context
// cancelled).
type WarehouseClient interface {
	Run(ctx context.Context, statement, connection string) (ClientResult, error)
}

// StatementRunner executes rendered SQL statement by statement.
type StatementRunner interface {
	Execute(ctx context.Context, renderedSQL, description, connection string) []StatementResult
}
