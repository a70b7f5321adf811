package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/internal/iocache"
	mcp_internal "github.com/recruitready/compscore/internal/mcp"
	"github.com/recruitready/compscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mcpProfile = `{
	"work": {"totalYears": 6, "policeRelatedYears": 3},
	"background": {"criminalConviction": false},
	"driving": {"licenceSuspended": false}
}`

// The server is built with a nil config store, so the built-in default config
// serves every request.
func TestMCPServerHandlers(t *testing.T) {
	baseCfg := &contract.Config{
		ConfigKey: contract.DefaultConfigKey,
		MaxRules:  contract.DefaultMaxRules,
	}
	mgr := &iocache.MockMemoManager{Store: iocache.NewMockMemoStore()}
	s := mcp_internal.NewMCPServer(baseCfg, nil, mgr)

	ctx := context.Background()

	callTool := func(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
		t.Helper()
		tool := s.GetTool(name)
		require.NotNil(t, tool, "Tool %s should exist", name)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      name,
				Arguments: args,
			},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		return res
	}

	t.Run("evaluate_profile scores against the default config", func(t *testing.T) {
		res := callTool(t, "evaluate_profile", map[string]any{
			"profile": mcpProfile,
		})
		require.False(t, res.IsError)

		var result schema.EvaluationResult
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
		assert.Equal(t, "builtin-1", result.Version)
		assert.False(t, result.Disqualified)
		assert.Empty(t, result.Warnings, "warnings are trimmed unless explain is set")
	})

	t.Run("evaluate_profile explain keeps warnings", func(t *testing.T) {
		res := callTool(t, "evaluate_profile", map[string]any{
			"profile": `{}`,
			"explain": true,
		})
		require.False(t, res.IsError)

		var result schema.EvaluationResult
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("evaluate_profile invalid profile", func(t *testing.T) {
		res := callTool(t, "evaluate_profile", map[string]any{
			"profile": `[1, 2, 3]`,
		})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid profile")
	})

	t.Run("preview_config evaluates a draft", func(t *testing.T) {
		draft, err := json.Marshal(schema.DefaultConfig())
		require.NoError(t, err)

		res := callTool(t, "preview_config", map[string]any{
			"config":  string(draft),
			"profile": mcpProfile,
		})
		require.False(t, res.IsError)

		var result schema.EvaluationResult
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
		assert.Equal(t, "builtin-1", result.Version)
	})

	t.Run("preview_config invalid config", func(t *testing.T) {
		res := callTool(t, "preview_config", map[string]any{
			"config":  `{"version":"x","categories":[],"thresholds":[]}`,
			"profile": mcpProfile,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid config")
	})

	t.Run("validate_config reports violations", func(t *testing.T) {
		res := callTool(t, "validate_config", map[string]any{
			"config": `{"version":"x","categories":[],"thresholds":[]}`,
		})
		require.False(t, res.IsError, "validation findings are a successful response")

		var report struct {
			OK         bool              `json:"ok"`
			Violations []json.RawMessage `json:"violations"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &report))
		assert.False(t, report.OK)
		assert.NotEmpty(t, report.Violations)
	})

	t.Run("validate_config clean", func(t *testing.T) {
		doc, err := json.Marshal(schema.DefaultConfig())
		require.NoError(t, err)

		res := callTool(t, "validate_config", map[string]any{
			"config": string(doc),
		})
		require.False(t, res.IsError)

		var report struct {
			OK bool `json:"ok"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &report))
		assert.True(t, report.OK)
	})

	t.Run("get_config falls back to the built-in default", func(t *testing.T) {
		res := callTool(t, "get_config", map[string]any{})
		require.False(t, res.IsError)

		var response struct {
			Source    string `json:"source"`
			Version   string `json:"version"`
			RuleCount int    `json:"ruleCount"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &response))
		assert.Equal(t, "default", response.Source)
		assert.Equal(t, "builtin-1", response.Version)
		assert.Equal(t, 14, response.RuleCount)
	})
}
