package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/anditpl/a11y-audit/internal/adapters/outbound/config"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/targets"
	"github.com/anditpl/a11y-audit/internal/logging"
)

// registerResources registers the audit MCP resources on the given server.
func registerResources(s *server.MCPServer, workDir string) {
	// 1. a11y://config - effective run configuration
	s.AddResource(
		mcplib.NewResource(
			"a11y://config",
			"Run Configuration",
			mcplib.WithResourceDescription("Effective audit configuration after file and environment overlays"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(workDir),
	)

	// 2. a11y://targets - resolved target list
	s.AddResource(
		mcplib.NewResource(
			"a11y://targets",
			"Resolved Targets",
			mcplib.WithResourceDescription("Ordered audit target list resolved from the pages directory and targets file"),
			mcplib.WithMIMEType("application/json"),
		),
		handleTargetsResource(workDir),
	)
}

func handleConfigResource(workDir string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(workDir)
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling configuration: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "a11y://config",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleTargetsResource(workDir string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(workDir)
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}

		resolver := targets.New(cfg.PagesDir, cfg.TargetsFile, logging.NewNop())
		data, err := json.MarshalIndent(resolver.Resolve(nil), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling targets: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "a11y://targets",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
