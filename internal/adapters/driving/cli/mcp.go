package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/captionsearch/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve caption search to MCP clients",
	Long: `Serves the search_captions tool and the captionsearch:// resources
(stats, videos, per-video metadata) to MCP clients.

Clients normally start the server themselves and talk to it over stdio:
  {
    "mcpServers": {
      "captionsearch": {
        "command": "captionsearch",
        "args": ["mcp", "serve"]
      }
    }
  }

With --http the server listens on an address instead, which is handy with
MCP Inspector:
  captionsearch mcp serve --http localhost:8765`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "listen on this address instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search: searchService,
		Video:  videoService,
	}, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		// stdout stays free for the stdio transport, so status goes to stderr.
		cmd.PrintErrf("MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}
	return server.Run(cmd.Context())
}
