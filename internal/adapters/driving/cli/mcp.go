package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyf304/sqlite3-fts5-html/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server offers two tools:
  search    search the index; matches carry offsets into the original markup
  tokenize  tokenize markup with the configured or a given tokenizer

and the resources fts5html://docs (the indexed documents) and
fts5html://docs/{id} (the original markup of one document).

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead.

Examples:
  # Stdio mode
  fts5html mcp

  # HTTP mode, e.g. for MCP Inspector
  fts5html mcp --port 8080

Client configuration:
  {
    "mcpServers": {
      "fts5html": {
        "command": "/path/to/fts5html",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func newMCPServer() (*mcp.Server, error) {
	if searchService == nil {
		return nil, errors.New("search service not configured")
	}
	if tokenizeService == nil {
		return nil, errors.New("tokenize service not configured")
	}

	return mcp.NewServer(&mcp.Ports{
		Search:    searchService,
		Tokenize:  tokenizeService,
		Index:     indexService,
		Tokenizer: tokenizerArgs,
	})
}

func runMCP(cmd *cobra.Command, _ []string) error {
	server, err := newMCPServer()
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
