package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/whdeploy/internal/checksum"
	"github.com/vvka-141/whdeploy/internal/files/scanner"
	"github.com/vvka-141/whdeploy/internal/logging"
	"github.com/vvka-141/whdeploy/internal/params"
	"github.com/vvka-141/whdeploy/internal/render"
	"github.com/vvka-141/whdeploy/internal/services"
	"github.com/vvka-141/whdeploy/internal/warehouse"
	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

type deployFlagValues struct {
	connection       string
	manifest         string
	definitions      string
	client           string
	statementTimeout time.Duration
	params           []string
	paramsFiles      []string
	dryRun           bool
}

var deployFlags deployFlagValues

func registerDeployFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&deployFlags.connection, "connection", "c", whdeploy.DefaultConnection,
		"Warehouse client connection name, passed to the client as -c")
	cmd.Flags().StringVar(&deployFlags.manifest, "manifest", whdeploy.DefaultManifestFile,
		"Manifest file with the 'configurations' mapping")
	cmd.Flags().StringVar(&deployFlags.definitions, "definitions", whdeploy.DefaultDefinitionsDir,
		"Directory containing the *.sql templates")
	cmd.Flags().StringVar(&deployFlags.client, "client", "",
		"Warehouse client binary\n"+
			"Precedence: --client > $"+whdeploy.ClientBinaryEnvVar+" > "+whdeploy.DefaultClientBinary)
	cmd.Flags().DurationVar(&deployFlags.statementTimeout, "statement-timeout", whdeploy.DefaultStatementTimeout,
		"Timeout for a single statement; a timed-out statement is reported as a warning\n"+
			"Examples: 30s, 5m")

	// Override flags
	cmd.Flags().StringArrayVar(&deployFlags.params, "param", nil,
		"Template variable override as key=value (can be specified multiple times)\n"+
			"Example: --param schema=scratch --param warehouse=XS_WH")
	cmd.Flags().StringArrayVar(&deployFlags.paramsFiles, "params-file", nil,
		"Load template variable overrides from .env files (can be specified multiple times)\n"+
			"Later files override earlier ones, CLI --param overrides all")

	cmd.Flags().BoolVar(&deployFlags.dryRun, "dry-run", false,
		"Render and split the templates and print the statements without running them")

	_ = cmd.RegisterFlagCompletionFunc("definitions", completeDirectories)
}

// buildDeploymentConfig builds a DeploymentConfig from CLI flags.
// Overrides layer as manifest < --params-file (in order) < --param.
func buildDeploymentConfig(environment string, verbose bool) (whdeploy.DeploymentConfig, error) {
	if deployFlags.statementTimeout <= 0 {
		return whdeploy.DeploymentConfig{}, fmt.Errorf("%w: --statement-timeout must be positive, got %s",
			whdeploy.ErrUsage, deployFlags.statementTimeout)
	}

	overrides, err := params.Load(deployFlags.paramsFiles, deployFlags.params)
	if err != nil {
		return whdeploy.DeploymentConfig{}, err
	}
	if verbose && len(overrides) > 0 {
		fmt.Fprintf(os.Stderr, "[VERBOSE] %d override(s) from params files and --param\n", len(overrides))
	}

	cfg := whdeploy.DeploymentConfig{
		Environment:    environment,
		Connection:     deployFlags.connection,
		ManifestPath:   deployFlags.manifest,
		DefinitionsDir: deployFlags.definitions,
		Overrides:      overrides,
		DryRun:         deployFlags.dryRun,
		Verbose:        verbose,
	}
	if err := cfg.Validate(); err != nil {
		return whdeploy.DeploymentConfig{}, err
	}
	return cfg, nil
}

// resolveClientBinary applies --client > $WHDEPLOY_CLIENT > default.
func resolveClientBinary(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(whdeploy.ClientBinaryEnvVar); env != "" {
		return env
	}
	return whdeploy.DefaultClientBinary
}

func runDeploy(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	verbose := getVerboseFlag(cmd)

	config, err := buildDeploymentConfig(args[0], verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	client := warehouse.NewClient(resolveClientBinary(deployFlags.client), deployFlags.statementTimeout, logger)

	deployer := services.NewDeploymentService(
		scanner.NewScanner(checksum.New()),
		render.New(),
		services.NewStatementExecutor(client, logger),
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling deployment...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := deployer.Deploy(ctx, config); err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}

	return nil
}
