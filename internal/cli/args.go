package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

// RequireEnvironment validates that exactly one non-blank environment
// argument is provided. Returns a helpful error message with usage and
// examples if missing.
func RequireEnvironment(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf(`%w: missing required argument: <environment>

Usage: %s

Example:
  %s dev`, whdeploy.ErrUsage, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: accepts 1 arg(s), received %d", whdeploy.ErrUsage, len(args))
	}
	return nil
}
