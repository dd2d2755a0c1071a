package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = openai.GPT4oMini
)

// ContentGenerator sends one prompt and returns the model's text answer.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

var (
	_ ContentGenerator = (*AIClient)(nil)
	_ ContentGenerator = (*OpenAIClient)(nil)
)

// AIClient talks to Gemini.
type AIClient struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

func NewAIClient(ctx context.Context, apiKey, model string, temperature float32, logger *slog.Logger) (*AIClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not set")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &AIClient{client: client, model: model, temperature: temperature, logger: logger}, nil
}

func (ai *AIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GeminiGenerateContent", trace.WithAttributes(
		attribute.String("llm.model", ai.model),
	))
	defer span.End()

	config := &genai.GenerateContentConfig{Temperature: genai.Ptr(ai.temperature)}
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return result.Text(), nil
}

// OpenAIClient talks to the OpenAI chat completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

func NewOpenAIClient(apiKey, model string, temperature float32, logger *slog.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is not set")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model, temperature: temperature, logger: logger}, nil
}

func (o *OpenAIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "OpenAIGenerateContent", trace.WithAttributes(
		attribute.String("llm.model", o.model),
	))
	defer span.End()

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat completion failed")
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	o.logger.DebugContext(ctx, "OpenAI completion received", slog.Duration("latency", time.Since(start)))
	if len(resp.Choices) == 0 {
		err := errors.New("openai returned no choices")
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetStatus(codes.Ok, "")
	return resp.Choices[0].Message.Content, nil
}

// NewContentGenerator picks a backend by provider name ("gemini" or "openai").
func NewContentGenerator(ctx context.Context, provider, apiKey, model string, temperature float32, logger *slog.Logger) (ContentGenerator, error) {
	switch provider {
	case "", "gemini":
		c, err := NewAIClient(ctx, apiKey, model, temperature, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "openai":
		c, err := NewOpenAIClient(apiKey, model, temperature, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", provider)
}
