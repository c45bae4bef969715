package textgen

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Options are per-call sampling settings. Generation is intentionally
// non-deterministic (temperature > 0) and is never retried.
type Options struct {
	MaxTokens   int64
	Temperature float64
	TopP        float64
}

// Generator produces a completion for a prompt.
type Generator interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// OpenAIClient talks to any OpenAI-compatible completion endpoint, which in
// practice is a small local model server (llama.cpp, Ollama).
type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey(apiKey),
		),
		model: model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	completion, err := c.client.Completions.New(ctx, openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(c.model),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(prompt)},
		MaxTokens:   openai.Int(opts.MaxTokens),
		Temperature: openai.Float(opts.Temperature),
		TopP:        openai.Float(opts.TopP),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return strings.TrimSpace(completion.Choices[0].Text), nil
}
