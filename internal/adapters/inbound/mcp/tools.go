package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mutscore/mutscore/internal/adapters/outbound/config"
	"github.com/mutscore/mutscore/internal/adapters/outbound/gitinfo"
	"github.com/mutscore/mutscore/internal/adapters/outbound/outcomes"
	"github.com/mutscore/mutscore/internal/application"
	"github.com/mutscore/mutscore/internal/domain"
	"github.com/mutscore/mutscore/internal/domain/summary"
)

// registerTools registers all mutscore MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. mutscore_summarize
	s.AddTool(
		mcplib.NewTool("mutscore_summarize",
			mcplib.WithDescription("Render the mutation score of a single branch from caught and missed counts"),
			mcplib.WithNumber("caught", mcplib.Required(), mcplib.Description("Number of caught mutants")),
			mcplib.WithNumber("missed", mcplib.Required(), mcplib.Description("Number of missed mutants")),
			mcplib.WithString("label", mcplib.Description("Branch label (default: Branch)")),
			mcplib.WithString("format", mcplib.Description("Output format: table or sentence (default from .mutscore.yaml)")),
		),
		handleSummarize(projectPath),
	)

	// 2. mutscore_compare
	s.AddTool(
		mcplib.NewTool("mutscore_compare",
			mcplib.WithDescription("Compare the mutation score of a baseline branch against a candidate branch"),
			mcplib.WithNumber("master_caught", mcplib.Required(), mcplib.Description("Caught mutants on the baseline")),
			mcplib.WithNumber("master_missed", mcplib.Required(), mcplib.Description("Missed mutants on the baseline")),
			mcplib.WithNumber("feature_caught", mcplib.Required(), mcplib.Description("Caught mutants on the candidate")),
			mcplib.WithNumber("feature_missed", mcplib.Required(), mcplib.Description("Missed mutants on the candidate")),
			mcplib.WithString("format", mcplib.Description("Output format: table or sentence (default from .mutscore.yaml)")),
		),
		handleCompare(projectPath),
	)

	// 3. mutscore_count
	s.AddTool(
		mcplib.NewTool("mutscore_count",
			mcplib.WithDescription("Count the outcomes of a mutants.out directory and return them as JSON"),
			mcplib.WithString("dir", mcplib.Description("Outcome directory relative to the project (default: mutants.out)")),
		),
		handleCount(projectPath),
	)
}

func newReportService() *application.ReportService {
	return application.NewReportService(
		outcomes.NewDirReader(),
		outcomes.NewMappingParser(),
		config.New(),
		gitinfo.New(),
		nil,
	)
}

// loadConfig loads the project config and applies a format override.
func loadConfig(svc *application.ReportService, projectPath, format string) (domain.ProjectConfig, error) {
	cfg, err := svc.LoadConfig(projectPath)
	if err != nil {
		return domain.ProjectConfig{}, err
	}
	if format != "" {
		cfg.Format = domain.Format(format)
	}
	return cfg, nil
}

func requireCount(request mcplib.CallToolRequest, key string) (int, error) {
	n, err := request.RequireInt(key)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &domain.CountError{Key: key, Value: n}
	}
	return n, nil
}

func handleSummarize(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		caught, err := requireCount(request, "caught")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		missed, err := requireCount(request, "missed")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc := newReportService()
		cfg, err := loadConfig(svc, projectPath, request.GetString("format", ""))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if label := request.GetString("label", ""); label != "" {
			cfg.CandidateLabel = label
		}

		s, err := svc.Summarize(cfg, application.Source{Counts: &domain.MutantCounts{Caught: caught, Missed: missed}})
		if err != nil {
			return errorResult(err.Error()), nil
		}
		out, err := summary.RenderSingle(s, cfg.Format)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(out), nil
	}
}

func handleCompare(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		var counts [4]int
		for i, key := range []string{"master_caught", "master_missed", "feature_caught", "feature_missed"} {
			n, err := requireCount(request, key)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			counts[i] = n
		}

		svc := newReportService()
		cfg, err := loadConfig(svc, projectPath, request.GetString("format", ""))
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := svc.Compare(cfg,
			application.Source{Counts: &domain.MutantCounts{Caught: counts[0], Missed: counts[1]}},
			application.Source{Counts: &domain.MutantCounts{Caught: counts[2], Missed: counts[3]}},
		)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		out, err := summary.Render(result, cfg.Format)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(out), nil
	}
}

func handleCount(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := newReportService()
		cfg, err := loadConfig(svc, projectPath, "")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		dir := cfg.OutcomeDir
		if d := request.GetString("dir", ""); d != "" {
			dir = d
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(projectPath, dir)
			}
		}

		res, err := application.NewCountService(svc, nil).Count(cfg, dir)
		if err != nil {
			return errorResult(fmt.Sprintf("count failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
