package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/recruitready/compscore/core"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.ConfigStore
	mgr     contract.MemoManager
}

func (h *toolHandler) handleEvaluateProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if k := request.GetString("config_key", ""); k != "" {
		cfg.ConfigKey = k
	}
	explain := request.GetBool("explain", false)

	profile, err := schema.NewCandidateProfile([]byte(request.GetString("profile", "")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid profile: %v", err)), nil
	}

	engineCfg, _, err := core.LoadActiveConfig(ctx, cfg, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("config load failed: %v", err)), nil
	}

	result, _ := core.MemoizedEvaluate(engineCfg, profile, h.mgr)
	if !explain {
		trimmed := *result
		trimmed.Warnings = nil
		result = &trimmed
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePreviewConfig(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	engineCfg, _, err := core.ParseConfig([]byte(request.GetString("config", "")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid config: %v", err)), nil
	}

	profile, err := schema.NewCandidateProfile([]byte(request.GetString("profile", "")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid profile: %v", err)), nil
	}

	// Previews bypass the memo so a draft config is always re-evaluated.
	result := core.Evaluate(engineCfg, profile)
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleValidateConfig(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, report, _ := core.ParseConfig([]byte(request.GetString("config", "")))

	response := struct {
		OK         bool             `json:"ok"`
		Violations []core.Violation `json:"violations"`
		Lints      []core.Violation `json:"lints,omitempty"`
	}{
		OK:         report.OK(),
		Violations: report.Violations,
		Lints:      report.Lints,
	}
	if response.Violations == nil {
		response.Violations = []core.Violation{}
	}

	jsonData, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if k := request.GetString("config_key", ""); k != "" {
		cfg.ConfigKey = k
	}

	engineCfg, source, err := core.LoadActiveConfig(ctx, cfg, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("config load failed: %v", err)), nil
	}

	response := struct {
		Source    string                        `json:"source"`
		Version   string                        `json:"version"`
		RuleCount int                           `json:"ruleCount"`
		Config    *schema.CompetitivenessConfig `json:"config"`
	}{
		Source:    source,
		Version:   engineCfg.Version,
		RuleCount: engineCfg.RuleCount(),
		Config:    engineCfg,
	}

	jsonData, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
