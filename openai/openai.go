package openai

import (
	"context"
	"fmt"

	"github.com/middlemost/podgen"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used for both summaries and scripts.
const DefaultModel = openai.GPT4oMini

// Ensure service implements interfaces.
var (
	_ podgen.SummaryService = &Service{}
	_ podgen.ScriptService  = &Service{}
)

// Service is an OpenAI-compatible backend for both text capabilities.
// A non-empty BaseURL points it at any compatible endpoint.
type Service struct {
	client *openai.Client

	Model string
}

// NewService returns a service using the given API key and optional base URL.
func NewService(apiKey, baseURL string) *Service {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Service{
		client: openai.NewClientWithConfig(cfg),
		Model:  DefaultModel,
	}
}

// Summarize requests a narrative summary of text.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	if s == nil || s.client == nil {
		return "", podgen.ErrModelUnavailable
	}
	return s.complete(ctx, podgen.SummaryPrompt(text), podgen.SummaryMaxTokens, podgen.SummaryTemperature)
}

// WriteScript generates a two-host dialogue script for the summary.
func (s *Service) WriteScript(ctx context.Context, summary string) (string, error) {
	if s == nil || s.client == nil {
		return "", podgen.ErrModelUnavailable
	}
	return s.complete(ctx, podgen.ScriptPrompt(summary), 0, podgen.ScriptTemperature)
}

func (s *Service) complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.Model,
		MaxTokens:   maxTokens,
		Temperature: float32(temperature),
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", podgen.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", podgen.ErrGeneration)
	}
	return resp.Choices[0].Message.Content, nil
}
