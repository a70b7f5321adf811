// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/recruitready/compscore/internal/contract"
)

// NewMCPServer initializes and configures the compscore MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.ConfigStore, mgr contract.MemoManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Competitiveness Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
		mgr:     mgr,
	}

	// --- 1. Tool: evaluate_profile ---
	s.AddTool(mcp.NewTool("evaluate_profile",
		mcp.WithDescription("Evaluate a candidate profile against the active competitiveness rule configuration."),
		mcp.WithString("profile", mcp.Description("The candidate profile as a JSON object."), mcp.Required()),
		mcp.WithString("config_key", mcp.Description("Config store key to evaluate against. Defaults to the configured key.")),
		mcp.WithBoolean("explain", mcp.Description("Include evaluation warnings in the response.")),
	), h.handleEvaluateProfile)

	// --- 2. Tool: preview_config ---
	s.AddTool(mcp.NewTool("preview_config",
		mcp.WithDescription("Evaluate a candidate profile against a draft rule configuration without publishing it."),
		mcp.WithString("config", mcp.Description("The draft rule configuration as a JSON object."), mcp.Required()),
		mcp.WithString("profile", mcp.Description("The candidate profile as a JSON object."), mcp.Required()),
	), h.handlePreviewConfig)

	// --- 3. Tool: validate_config ---
	s.AddTool(mcp.NewTool("validate_config",
		mcp.WithDescription("Validate a rule configuration document and report every violation found."),
		mcp.WithString("config", mcp.Description("The rule configuration as a JSON object."), mcp.Required()),
	), h.handleValidateConfig)

	// --- 4. Tool: get_config ---
	s.AddTool(mcp.NewTool("get_config",
		mcp.WithDescription("Fetch the active rule configuration, including its version and rule counts."),
		mcp.WithString("config_key", mcp.Description("Config store key to fetch. Defaults to the configured key.")),
	), h.handleGetConfig)

	return s
}

// StartMCPServer starts the compscore MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.ConfigStore, mgr contract.MemoManager) error {
	s := NewMCPServer(baseCfg, store, mgr)
	return server.ServeStdio(s)
}
