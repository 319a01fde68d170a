package provider

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator drives an OpenAI-compatible chat-completion endpoint.
type OpenAIGenerator struct {
	client       *openai.Client
	model        string
	systemPrompt string
	temperature  float32
}

type OpenAIOption func(*OpenAIGenerator)

func WithSystemPrompt(prompt string) OpenAIOption {
	return func(g *OpenAIGenerator) { g.systemPrompt = prompt }
}

func WithTemperature(temperature float32) OpenAIOption {
	return func(g *OpenAIGenerator) { g.temperature = temperature }
}

func NewOpenAIGenerator(apiKey, baseURL, model string, opts ...OpenAIOption) *OpenAIGenerator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	g := &OpenAIGenerator{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: 0.8,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if g.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: g.systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", &GeneratorError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GeneratorError{Provider: "openai", Err: errors.New("empty choice list")}
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Generator = (*OpenAIGenerator)(nil)
