// Package llm contains the langchaingo-backed implementation of the LLM port.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/example/applypilot/internal/config"
	"github.com/example/applypilot/internal/ports/secondary"
)

// Client implements secondary.LLMClient over a langchaingo model.
type Client struct {
	model   llms.Model
	timeout time.Duration
}

// New creates the LLM client for the configured provider. The deepseek
// provider uses the OpenAI-compatible API with a custom base URL.
func New(ctx context.Context, cfg config.AIConfig) (*Client, error) {
	var (
		model llms.Model
		err   error
	)

	switch cfg.Provider {
	case "gemini":
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	case "openai", "deepseek":
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if cfg.APIURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.APIURL))
		}
		model, err = openai.New(opts...)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	return &Client{
		model:   model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Ask issues one bounded completion request.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", secondary.ErrProviderTimeout, c.timeout)
		}
		return "", fmt.Errorf("%w: %v", secondary.ErrProvider, err)
	}

	return resp, nil
}
