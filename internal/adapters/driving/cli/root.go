// Package cli provides the cobra command tree for closet.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/closet-cli/internal/logger"
)

// version is set by SetVersion from main.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "closet",
	Short: "Search the catalogue and manage your closets",
	Long: `closet searches a clothing catalogue by tag, item and brand, and keeps
items in named closets.

Run 'closet tui' for the interactive search bar, or use the subcommands
for scripted access. 'closet mcp' exposes the same operations to MCP
clients.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		switch cmd.Name() {
		case "help", "version", "completion":
			return nil
		}
		return ensureServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.closet)")
}

// SetVersion sets the version reported by 'closet version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
