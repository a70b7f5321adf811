package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/schema"
)

// Config source labels reported alongside a loaded config.
const (
	SourceFile    = "file"
	SourceStore   = "store"
	SourceDefault = "default"
)

// LoadActiveConfig resolves the rule configuration an evaluation should run
// against. Resolution order: an explicit local file wins, then the latest
// published revision in the config store, then the built-in default. The
// returned source label is one of SourceFile, SourceStore, SourceDefault.
//
// Whatever the source, the document is validated before use; a config that
// fails validation is never handed to the evaluator.
func LoadActiveConfig(ctx context.Context, cfg *contract.Config, store contract.ConfigStore) (*schema.CompetitivenessConfig, string, error) {
	if cfg.EngineConfigPath != "" {
		doc, err := os.ReadFile(cfg.EngineConfigPath)
		if err != nil {
			return nil, SourceFile, fmt.Errorf("failed to read config file %q: %w", cfg.EngineConfigPath, err)
		}
		parsed, err := parseWithLimit(doc, cfg.MaxRules)
		if err != nil {
			return nil, SourceFile, err
		}
		return parsed, SourceFile, nil
	}

	if store != nil {
		payload, found, err := store.GetContent(ctx, cfg.ConfigKey)
		if err != nil {
			return nil, SourceStore, fmt.Errorf("failed to load config %q from store: %w", cfg.ConfigKey, err)
		}
		if found {
			parsed, err := parseWithLimit([]byte(payload), cfg.MaxRules)
			if err != nil {
				return nil, SourceStore, err
			}
			return parsed, SourceStore, nil
		}
	}

	return schema.DefaultConfig(), SourceDefault, nil
}

// parseWithLimit decodes and validates a config document against the caller's
// rule ceiling rather than the package default.
func parseWithLimit(doc []byte, maxRules int) (*schema.CompetitivenessConfig, error) {
	var parsed schema.CompetitivenessConfig
	if err := json.Unmarshal(doc, &parsed); err != nil {
		report := &ValidationReport{}
		report.fail("$", "document is not valid config JSON: %v", err)
		return nil, report.Err()
	}
	report := ValidateConfig(&parsed, maxRules)
	if err := report.Err(); err != nil {
		return nil, err
	}
	return &parsed, nil
}
