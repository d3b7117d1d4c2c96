package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewMutscoreMCPServer creates a new MCP server with the mutscore tools and
// resources registered. projectPath is where .mutscore.yaml is looked up and
// relative outcome directories are resolved.
func NewMutscoreMCPServer(projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"mutscore",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
