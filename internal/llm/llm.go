// Package llm drafts recipes and meal ideas through a text-generation
// backend. OpenAI and Groq share one chat-completions client; Gemini goes
// through the genai SDK.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/config"
)

// ErrNotConfigured is returned by the generator used when no provider is set.
var ErrNotConfigured = errors.New("no text generation provider configured")

// ErrEmptyResponse is returned when the backend answers without a choice or
// candidate. A blank text reply is returned as is.
var ErrEmptyResponse = errors.New("no content generated")

// Prompt is a single-turn request: a system instruction plus the user message.
type Prompt struct {
	System string
	User   string
}

// TextGenerator turns a prompt into free text.
type TextGenerator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// GeneratorFunc adapts a function to TextGenerator.
type GeneratorFunc func(ctx context.Context, p Prompt) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, p Prompt) (string, error) {
	return f(ctx, p)
}

// Unconfigured always fails with ErrNotConfigured.
var Unconfigured TextGenerator = GeneratorFunc(func(context.Context, Prompt) (string, error) {
	return "", ErrNotConfigured
})

// Client is a TextGenerator that holds resources.
type Client interface {
	TextGenerator
	Close() error
}

type nopCloser struct{ TextGenerator }

func (nopCloser) Close() error { return nil }

// New builds the client for cfg.Provider. ProviderNone yields a client whose
// calls fail with ErrNotConfigured, so the rest of the app keeps working.
func New(ctx context.Context, cfg config.LLMConfig, apiKey string) (Client, error) {
	switch cfg.Provider {
	case config.ProviderNone, "":
		return nopCloser{Unconfigured}, nil
	case config.ProviderOpenAI, config.ProviderGroq:
		return nopCloser{NewChatClient(cfg, apiKey)}, nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg, apiKey)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
