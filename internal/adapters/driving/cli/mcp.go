package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EduuF/sinaliza-libras/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = requiresServices(&cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the get_conteudo_trecho, get_trecho_para_traduzir and
registra_video tools. By default it communicates over stdio using JSON-RPC.
Use --port to serve over HTTP instead.

Examples:
  # Stdio mode (default)
  sinaliza mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  sinaliza mcp serve --port 8081`,
	RunE: runMCPServe,
})

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Trechos:      trechoService,
		Assignment:   assignmentService,
		Registration: registrationService,
		Sites:        siteService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
