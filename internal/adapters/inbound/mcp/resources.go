package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mutscore/mutscore/internal/application"
)

// registerResources registers all mutscore MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. mutscore://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"mutscore://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective mutscore configuration, .mutscore.yaml merged with defaults"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)

	// 2. mutscore://score - score of the configured outcome directory
	s.AddResource(
		mcplib.NewResource(
			"mutscore://score",
			"Mutation Score",
			mcplib.WithResourceDescription("Mutation score of the project's outcome directory"),
			mcplib.WithMIMEType("application/json"),
		),
		handleScoreResource(projectPath),
	)
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := newReportService().LoadConfig(projectPath)
		if err != nil {
			return nil, err
		}
		return jsonResource(request.Params.URI, cfg)
	}
}

func handleScoreResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		svc := newReportService()
		cfg, err := svc.LoadConfig(projectPath)
		if err != nil {
			return nil, err
		}

		s, err := svc.Summarize(cfg, application.Source{})
		if err != nil {
			return nil, fmt.Errorf("scoring failed: %w", err)
		}
		return jsonResource(request.Params.URI, s)
	}
}

func jsonResource(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
