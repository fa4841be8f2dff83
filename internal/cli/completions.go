package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/whdeploy/internal/config"
)

// completeEnvironments provides shell completion for the environment argument
// from the manifest named by --manifest.
func completeEnvironments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil || manifestPath == "" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	envs, err := config.Environments(data)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return matchPrefix(envs, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// matchPrefix returns the candidates starting with prefix, ignoring case.
func matchPrefix(candidates []string, prefix string) []string {
	var matches []string
	lower := strings.ToLower(prefix)
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			matches = append(matches, c)
		}
	}
	return matches
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}
