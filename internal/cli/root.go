package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/whdeploy/internal/logging"
	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

var rootCmd = &cobra.Command{
	Use:   "whdeploy <environment>",
	Short: "Render SQL templates per environment and run them on the warehouse",
	Long: `whdeploy renders every definitions/*.sql template with the variables that
manifest.yml declares for the chosen environment, splits the result on ';'
and runs each statement through the warehouse client:

  snow sql -q <statement> -c <connection>

A failing or timed-out statement is reported as a WARNING and the run
continues with the next statement. Nothing is retried or rolled back.

Arguments:
  environment     Key under 'configurations' in the manifest (case-insensitive,
                  looked up upper-cased)

Examples:
  # Deploy the DEV configuration with the default connection
  whdeploy dev

  # Use a named client connection and a different manifest
  whdeploy prod -c prod_admin --manifest deploy/manifest.yml

  # Preview the rendered statements without touching the warehouse
  whdeploy dev --dry-run

  # Layer overrides on top of the environment (CLI --param wins)
  whdeploy dev --params-file ci.env --param schema=scratch

Exit Codes:
  0  - Success (statement warnings included)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration (manifest, environment or overrides)
  15 - Template rendering failed`,
	Args:              RequireEnvironment,
	ValidArgsFunction: completeEnvironments,
	SilenceUsage:      true,
	SilenceErrors:     true,
	RunE:              runDeploy,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return execute(os.Args[1:], logging.NewConsoleLogger(false))
}

// execute runs the root command with args and reports a failure through
// logger. Cobra's own error printing is silenced.
func execute(args []string, logger whdeploy.Logger) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for whdeploy")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	registerDeployFlags(rootCmd)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
