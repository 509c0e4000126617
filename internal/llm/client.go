// Package llm wraps the OpenAI API behind a template-driven completion
// gateway. Each call is stateless; the client is safe for concurrent use.
package llm

import (
	"context"
	"errors"
	"fmt"

	"realassist/internal/config"

	"github.com/sashabaranov/go-openai"
)

// ErrGeneration marks a failed language-model call (transport, quota,
// empty output). Callers treat it as recoverable and substitute a
// stage-specific fallback.
var ErrGeneration = errors.New("generation failed")

// Client is the language model gateway.
type Client struct {
	api         *openai.Client
	model       string
	embedModel  openai.EmbeddingModel
	temperature float32
}

// NewClient creates a gateway from application configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not configured")
	}

	return &Client{
		api:         openai.NewClient(cfg.OpenAIKey),
		model:       cfg.OpenAIModel,
		embedModel:  openai.EmbeddingModel(cfg.EmbeddingModel),
		temperature: float32(cfg.Temperature),
	}, nil
}

// Complete renders the template with vars and returns the model's single
// text completion. Failures are wrapped with ErrGeneration.
func (c *Client) Complete(ctx context.Context, id TemplateID, vars map[string]string) (string, error) {
	prompt, err := Render(id, vars)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrGeneration)
	}

	return resp.Choices[0].Message.Content, nil
}

// CreateEmbeddings generates embeddings for the given texts, in input order.
func (c *Client) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: c.embedModel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		embeddings[i] = data.Embedding
	}

	return embeddings, nil
}
