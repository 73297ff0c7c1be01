package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/config"
)

func newTestChatClient(t *testing.T, handler http.HandlerFunc) *ChatClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewChatClient(config.LLMConfig{
		Provider:    config.ProviderOpenAI,
		BaseURL:     srv.URL + "/",
		Temperature: 0.5,
		MaxTokens:   100,
	}, "sk-test")
}

func TestChatClient_Generate(t *testing.T) {
	var got chatRequest
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Omelette\n1. Whisk eggs."}}]}`))
	})

	out, err := client.Generate(context.Background(), Prompt{System: "sys", User: "eggs"})
	require.NoError(t, err)
	assert.Equal(t, "Omelette\n1. Whisk eggs.", out)

	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	assert.Equal(t, 0.5, got.Temperature)
	assert.Equal(t, 100, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "sys"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "eggs"}, got.Messages[1])
}

func TestChatClient_OmitsEmptySystem(t *testing.T) {
	var got chatRequest
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	_, err := client.Generate(context.Background(), Prompt{User: "hi"})
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestChatClient_Errors(t *testing.T) {
	t.Run("API error message", func(t *testing.T) {
		client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key"}}`))
		})

		_, err := client.Generate(context.Background(), Prompt{User: "x"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Incorrect API key", apiErr.Message)
	})

	t.Run("Plain error body", func(t *testing.T) {
		client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		})

		_, err := client.Generate(context.Background(), Prompt{User: "x"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "overloaded", apiErr.Message)
	})

	t.Run("No choices", func(t *testing.T) {
		client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		})

		_, err := client.Generate(context.Background(), Prompt{User: "x"})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("Blank content is returned as is", func(t *testing.T) {
		client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  "}}]}`))
		})

		out, err := client.Generate(context.Background(), Prompt{User: "x"})
		require.NoError(t, err)
		assert.Equal(t, "  ", out)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		_, err := client.Generate(context.Background(), Prompt{User: "x"})
		assert.ErrorContains(t, err, "decoding response")
	})

	t.Run("Canceled context", func(t *testing.T) {
		client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.Generate(ctx, Prompt{User: "x"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewChatClient_BaseURL(t *testing.T) {
	groq := NewChatClient(config.LLMConfig{Provider: config.ProviderGroq}, "k")
	assert.Equal(t, GroqBaseURL, groq.baseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", groq.model)

	openai := NewChatClient(config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini"}, "k")
	assert.Equal(t, OpenAIBaseURL, openai.baseURL)
	assert.Equal(t, "gpt-4o-mini", openai.model)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	client, err := New(ctx, config.LLMConfig{Provider: config.ProviderNone}, "")
	require.NoError(t, err)
	_, err = client.Generate(ctx, Prompt{User: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NoError(t, client.Close())

	client, err = New(ctx, config.LLMConfig{Provider: config.ProviderGroq}, "k")
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	_, err = New(ctx, config.LLMConfig{Provider: "mystery"}, "")
	assert.Error(t, err)
}

func TestGeneratorFunc(t *testing.T) {
	want := errors.New("boom")
	var gen TextGenerator = GeneratorFunc(func(_ context.Context, p Prompt) (string, error) {
		if p.User == "fail" {
			return "", want
		}
		return "echo " + p.User, nil
	})

	out, err := gen.Generate(context.Background(), Prompt{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo hi", out)

	_, err = gen.Generate(context.Background(), Prompt{User: "fail"})
	assert.ErrorIs(t, err, want)
}

func TestPrompts(t *testing.T) {
	draft := DraftPrompt("Slovak", "Dinner", []string{"Eggs", "Milk"})
	assert.Contains(t, draft.System, "Slovak")
	assert.Contains(t, draft.User, "Eggs, Milk")
	assert.Contains(t, draft.User, "Meal type: Dinner")

	suggest := SuggestPrompt("English", "Any", []string{"Rice"}, nil)
	assert.Contains(t, suggest.User, "for any based on")
	assert.Contains(t, suggest.User, "Available ingredients: Rice")
	assert.Contains(t, suggest.User, "always be in stock: (none)")
	assert.Contains(t, suggest.User, "meal type: Any")
}
