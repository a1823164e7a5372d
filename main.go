// Command e2e-harness runs the end-to-end test suites: the pet store API suite and the careers
// website browser suite.
//
// Usage:
//
//	e2e-harness api -c harness.properties         # API suite
//	e2e-harness ui -c harness.yaml --run 'QA.*'   # browser suite, selected tests
//	e2e-harness all --report report.yaml          # both suites, with a YAML report
//	e2e-harness version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

var params commandParams

var rootCmd = &cobra.Command{
	Use:   "e2e-harness",
	Short: "End-to-end test harness for the pet store API and the careers website",
	Long: `Runs end-to-end test suites against live systems.

The API suite creates, reads, updates and deletes pets through the pet store REST API. The
store is eventually consistent, so every check that follows a write is retried until it passes
or times out.

The UI suite drives a browser through a WebDriver server along the careers flow of the company
website, saving a screenshot of every failed test.

Settings come from the file given with --config (.properties, .env or .yaml), then from
E2E_* environment variables such as E2E_HEADLESS=true.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "e2e-harness %s (commit %s)\n", version, commit)
	},
}

func init() {
	params.addFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
