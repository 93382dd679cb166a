// Package llm builds the optional model-backend client probed by the
// classifier adapter and the enrichment stage.
package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/openai"

	"NewsPulse/internal/config"
)

// Configure creates the LLM client from configuration. Returns nil when no
// API key is set; the pipeline then runs with rule-based fallbacks only.
func Configure(ctx context.Context, cfg config.LLMConfig) (gollem.LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	var opts []openai.Option
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}

	client, err := openai.New(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM client")
	}

	return client, nil
}
