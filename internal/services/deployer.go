package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/vvka-141/whdeploy/internal/checksum"
	"github.com/vvka-141/whdeploy/internal/config"
	"github.com/vvka-141/whdeploy/internal/render"
	"github.com/vvka-141/whdeploy/internal/statement"
	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

type configResolverFunc func(manifestPath, environment string) (*config.Configuration, error)

// DeploymentService implements the Deployer interface.
// Thread-Safety: NOT safe for concurrent Deploy() calls on the same instance.
// Create separate instances for concurrent deployments.
type DeploymentService struct {
	scanner  whdeploy.TemplateScanner
	renderer whdeploy.TemplateRenderer
	runner   whdeploy.StatementRunner
	logger   whdeploy.Logger
	resolve  configResolverFunc
}

// NewDeploymentService creates a new DeploymentService with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should fail
// loudly at startup. Runtime conditions (manifest, templates, statements) are
// reported as errors or statement results.
func NewDeploymentService(
	scanner whdeploy.TemplateScanner,
	renderer whdeploy.TemplateRenderer,
	runner whdeploy.StatementRunner,
	logger whdeploy.Logger,
) *DeploymentService {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if renderer == nil {
		panic("renderer cannot be nil")
	}
	if runner == nil {
		panic("runner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &DeploymentService{
		scanner:  scanner,
		renderer: renderer,
		runner:   runner,
		logger:   logger,
		resolve:  config.Resolve,
	}
}

// Deploy resolves the environment, then renders and executes every template
// in path order.
//
// Fatal errors (invalid config, manifest, unknown environment, template
// discovery, rendering, cancellation) are returned; nothing is executed after
// them. Statement failures are only logged and recorded in the result.
func (s *DeploymentService) Deploy(ctx context.Context, cfg whdeploy.DeploymentConfig) (*whdeploy.DeploymentResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	env := cfg.NormalizedEnvironment()
	s.logger.Banner(fmt.Sprintf("Deploying to %s (connection: %s)", env, cfg.Connection))
	if cfg.DryRun {
		s.logger.Info("Dry run: statements are rendered but not sent to the warehouse")
	}

	vars, err := s.loadConfiguration(cfg, env)
	if err != nil {
		return nil, err
	}

	templates, err := s.scanner.ScanTemplates(cfg.DefinitionsDir)
	if err != nil {
		return nil, fmt.Errorf("template discovery failed: %w", err)
	}
	s.logger.Info("\nFound %d SQL files to process", len(templates))

	result := &whdeploy.DeploymentResult{
		Environment: env,
		Connection:  cfg.Connection,
	}

	values := vars.Values()
	for _, tf := range templates {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("deployment interrupted before %s: %w", tf.Path, err)
		}

		fileResult, err := s.processTemplate(ctx, cfg, tf, values)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, fileResult)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("deployment interrupted: %w", err)
	}

	s.logger.Verbose("%d file(s), %d statement(s), %d warning(s)", len(result.Files), result.Statements(), result.Warnings())
	s.logger.Banner(fmt.Sprintf("Deployment to %s completed!", env))
	return result, nil
}

// loadConfiguration resolves the environment and layers the overrides on top.
func (s *DeploymentService) loadConfiguration(cfg whdeploy.DeploymentConfig, env string) (*config.Configuration, error) {
	s.logger.Verbose("Reading manifest %s", cfg.ManifestPath)

	vars, err := s.resolve(cfg.ManifestPath, env)
	if err != nil {
		return nil, err
	}

	if len(cfg.Overrides) > 0 {
		keys := make([]string, 0, len(cfg.Overrides))
		for k := range cfg.Overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vars = vars.With(keys, cfg.Overrides)
		s.logger.Verbose("Applied %d override(s)", len(keys))
	}

	s.logger.Info("\nConfiguration loaded for %s:", env)
	for _, k := range vars.Keys() {
		v, _ := vars.Get(k)
		s.logger.Info("  %s: %s", k, render.Format(v))
	}
	return vars, nil
}

func (s *DeploymentService) processTemplate(
	ctx context.Context,
	cfg whdeploy.DeploymentConfig,
	tf whdeploy.TemplateFile,
	values map[string]any,
) (whdeploy.FileResult, error) {
	s.logger.Section("Processing: " + tf.Path)
	s.logger.Verbose("template id=%s checksum=%s", tf.ID, checksum.Short(tf.Checksum))

	rendered, err := s.renderer.Render(tf.Content, values)
	if err != nil {
		return whdeploy.FileResult{}, fmt.Errorf("failed to render %s: %w", tf.Path, err)
	}

	fileResult := whdeploy.FileResult{File: tf}
	if cfg.DryRun {
		fileResult.Statements = s.listStatements(rendered, tf.Path)
	} else {
		fileResult.Statements = s.runner.Execute(ctx, rendered, tf.Path, cfg.Connection)
	}

	if n := fileResult.Warnings(); n > 0 {
		s.logger.Verbose("%s: %d of %d statement(s) ended with a warning", tf.Path, n, len(fileResult.Statements))
	}
	return fileResult, nil
}

// listStatements prints the statements a real run would send.
func (s *DeploymentService) listStatements(rendered, description string) []whdeploy.StatementResult {
	s.logger.Section("Rendered: " + description)

	stmts := statement.Split(rendered)
	results := make([]whdeploy.StatementResult, 0, len(stmts))
	for _, stmt := range stmts {
		s.logger.Info("\n%s%s", stmt, whdeploy.StatementSeparator)
		results = append(results, whdeploy.StatementResult{
			Statement: stmt,
			Status:    whdeploy.StatementSkipped,
			ExitCode:  -1,
		})
	}
	return results
}

// Verify DeploymentService implements the Deployer interface at compile time
var _ whdeploy.Deployer = (*DeploymentService)(nil)
