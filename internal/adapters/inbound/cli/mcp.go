package cli

import (
	mcpadapter "github.com/mutscore/mutscore/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the mutscore MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start mutscore MCP server (stdio)",
		Long:  "Start the mutscore MCP server using stdio transport. This allows AI coding assistants to count mutation outcomes and render score reports. --project selects the project served.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewMutscoreMCPServer(projectPath(cmd), version)
			return server.ServeStdio(s)
		},
	}
}
