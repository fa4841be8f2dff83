package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
)

var version = semver.Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
	Build: semver.Commit(),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersionInfo()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Version returns the whdeploy version.
func Version() semver.Version {
	return version
}

// versionLine is the machine-parseable version string.
func versionLine() string {
	return fmt.Sprintf("whdeploy %s %s/%s", version.String(), runtime.GOOS, runtime.GOARCH)
}

// printVersionInfo prints version information.
// Version string goes to stdout for pipeline consumption.
// Decorative content goes to stderr.
func printVersionInfo() {
	fmt.Println(versionLine())
	fmt.Fprintln(os.Stderr, "SQL template deployment for data warehouses")
}
