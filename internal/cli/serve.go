package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/bannercopy/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdin/stdout using JSON-RPC; logs go to stderr.

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "bannercopy": {
        "command": "/path/to/bannercopy",
        "args": ["serve"],
        "env": {"OPENAI_API_KEY": "sk-..."}
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, eng := newService()
	if err := svc.LLMErr(); err != nil {
		log.Printf("analysis and copy tools disabled: %v", err)
	}
	debugf("MCP server %s starting", version)

	srv := server.New(svc, version, eng.Info)
	return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
