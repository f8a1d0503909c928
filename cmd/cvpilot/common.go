package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ysnprv/cvpilot/internal/config"
	"github.com/ysnprv/cvpilot/internal/llm"
	"github.com/ysnprv/cvpilot/internal/logger"
	"github.com/ysnprv/cvpilot/internal/rewrite"
)

// resolveConfig merges the optional config file with global flags. Flags
// win over the file, the file wins over built-in defaults.
func resolveConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(config.Config{
		MaxIterations:       rewrite.DefaultMaxIterations,
		SimilarityThreshold: rewrite.DefaultThreshold,
	})

	if flagAPIKey != "" {
		merged.APIKey = flagAPIKey
	}
	if merged.APIKey == "" {
		merged.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	merged.Verbose = merged.Verbose || flagVerbose
	merged.Debug = merged.Debug || flagDebug
	merged.JSONLogs = merged.JSONLogs || flagJSONLogs

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// newLogger builds the zap logger for a command run.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Debug)
}

// newLLMClient constructs the Gemini client from the resolved
// configuration.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	modelConfig := llm.DefaultConfig()
	if cfg.LiteModel != "" {
		modelConfig = modelConfig.WithModel(llm.TierLite, cfg.LiteModel)
	}
	if cfg.StandardModel != "" {
		modelConfig = modelConfig.WithModel(llm.TierStandard, cfg.StandardModel)
	}
	if cfg.AdvancedModel != "" {
		modelConfig = modelConfig.WithModel(llm.TierAdvanced, cfg.AdvancedModel)
	}
	if cfg.EmbeddingModel != "" {
		modelConfig.EmbeddingModel = cfg.EmbeddingModel
	}

	return llm.NewClient(ctx, modelConfig, cfg.APIKey)
}

// writeOutput writes content to a file, or stdout when path is empty.
func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
