package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/anditpl/a11y-audit/internal/adapters/outbound/axe"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/browser"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/config"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/report"
	"github.com/anditpl/a11y-audit/internal/adapters/outbound/targets"
	"github.com/anditpl/a11y-audit/internal/application"
	"github.com/anditpl/a11y-audit/internal/domain"
	"github.com/anditpl/a11y-audit/internal/logging"
)

// registerTools registers the audit MCP tools on the given server.
func registerTools(s *server.MCPServer, workDir string) {
	// 1. a11y_resolve_targets
	s.AddTool(
		mcplib.NewTool("a11y_resolve_targets",
			mcplib.WithDescription("Resolve the ordered audit target list. Explicit targets are the exclusive source; otherwise the pages directory and JSON targets file contribute."),
			mcplib.WithString("targets", mcplib.Description("Comma-separated explicit targets (optional)")),
		),
		handleResolveTargets(workDir),
	)

	// 2. a11y_audit_url
	s.AddTool(
		mcplib.NewTool("a11y_audit_url",
			mcplib.WithDescription("Audit a single URL or local page for accessibility violations and return the summary as JSON"),
			mcplib.WithString("url",
				mcplib.Required(),
				mcplib.Description("Target URL or local .html page to audit"),
			),
			mcplib.WithString("level", mcplib.Description("WCAG conformance level: A, AA or AAA (default from configuration)")),
			mcplib.WithString("rules", mcplib.Description("Comma-separated explicit rule ids, overriding the tag set")),
			mcplib.WithBoolean("capture", mcplib.Description("Capture an annotated screenshot when violations exist")),
		),
		handleAuditURL(workDir),
	)
}

func handleResolveTargets(workDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := config.New().Load(workDir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading configuration: %v", err)), nil
		}

		var args []string
		if raw := request.GetString("targets", ""); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					args = append(args, trimmed)
				}
			}
		}

		resolver := targets.New(cfg.PagesDir, cfg.TargetsFile, logging.NewNop())
		return jsonResult(resolver.Resolve(args))
	}
}

func handleAuditURL(workDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := config.New().Load(workDir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading configuration: %v", err)), nil
		}
		if level := request.GetString("level", ""); level != "" {
			cfg.Level = domain.WCAGLevel(strings.ToUpper(level))
		}
		if rules := request.GetString("rules", ""); rules != "" {
			cfg.Rules = nil
			for _, part := range strings.Split(rules, ",") {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					cfg.Rules = append(cfg.Rules, trimmed)
				}
			}
		}
		cfg.Capture = request.GetBool("capture", cfg.Capture)
		if err := cfg.Validate(); err != nil {
			return errorResult(err.Error()), nil
		}

		selector, err := cfg.Selector()
		if err != nil {
			return errorResult(err.Error()), nil
		}

		log := logging.NewNop()
		resolver := targets.New(cfg.PagesDir, cfg.TargetsFile, log)
		resolved := resolver.Resolve([]string{url})
		if len(resolved) == 0 {
			return errorResult("no target resolved from url"), nil
		}

		session, err := browser.Launch(cfg.Headless, log)
		if err != nil {
			return errorResult(fmt.Sprintf("launching browser: %v", err)), nil
		}
		defer func() { _ = session.Close() }()

		engine, err := axe.NewEngine(cfg.AxeScript, log)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		store := report.NewStore(cfg.OutDir)
		svc := application.NewAuditService(
			session,
			engine,
			report.NewHTMLEncoder(),
			report.NewJSONEncoder(),
			store,
			application.NewAnnotator(store, log),
			cfg,
			log,
		)

		summary, err := svc.Run(ctx, resolved[0], selector)
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
