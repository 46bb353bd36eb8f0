package summary

import (
	"context"
	"errors"
	"fmt"

	"Planner/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

// Generator is the boundary between the summary service and the external
// text-generation API. Implementations issue exactly one request per call.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

var (
	ErrInvalidConfig = errors.New("invalid generator configuration")
	// ErrEmptyResponse is returned when the API answers 2xx but carries no choices.
	ErrEmptyResponse = errors.New("empty response from language model")
)

const (
	temperature = 0.7
	maxTokens   = 150
)

// OpenAIGenerator implements Generator against an OpenAI-compatible
// chat-completions API. The base URL is configurable so a compatible
// alternative endpoint can be substituted.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a generator from AI config.
func NewOpenAIGenerator(cfg config.AIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key is empty", ErrInvalidConfig)
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cc), model: model}, nil
}

// Generate sends the two-message exchange and returns the raw reply text.
func (g *OpenAIGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
