package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/config"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/util"
)

// GeminiClient generates text with the Google Gemini API.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiClient creates a Gemini client. Close releases its connection.
// Extra options are passed to the underlying client after the API key.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, apiKey string, opts ...option.ClientOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       cfg.ResolvedModel(),
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

// Generate runs the prompt against a fresh model handle so the system
// instruction never leaks between calls.
func (c *GeminiClient) Generate(ctx context.Context, p Prompt) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.temperature)
	if c.maxTokens > 0 {
		model.SetMaxOutputTokens(c.maxTokens)
	}
	if p.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}
	}

	reqID := util.RequestID(ctx)
	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(p.User))
	if err != nil {
		slog.Warn("gemini generation failed", "request_id", reqID, "model", c.model, "error", err)
		return "", fmt.Errorf("generating content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	slog.Debug("gemini generation", "request_id", reqID, "model", c.model, "duration", time.Since(start))
	return b.String(), nil
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
