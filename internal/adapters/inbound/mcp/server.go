// Package mcp exposes audit operations to MCP clients over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewAuditServer creates an MCP server with the audit tools and resources
// registered. workDir is the directory holding the run configuration.
func NewAuditServer(workDir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"a11y-audit",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, workDir)
	registerResources(s, workDir)

	return s
}
