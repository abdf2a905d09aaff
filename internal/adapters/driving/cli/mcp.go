package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search the
catalogue and manage closets.

By default the server speaks JSON-RPC over stdio. Use --http to serve the
streamable HTTP transport instead, for example for the MCP Inspector.

Examples:
  # Stdio mode (default)
  closet mcp

  # HTTP mode
  closet mcp --http :8080

Client configuration:
  {
    "mcpServers": {
      "closet": {
        "command": "/path/to/closet",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Lookup:  lookupService,
		Closets: closetService,
	})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on %s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}
	return server.Run(cmd.Context())
}
