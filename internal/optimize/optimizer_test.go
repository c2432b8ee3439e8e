package optimize

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// MockCompleter implements Completer for testing
type MockCompleter struct {
	response openai.ChatCompletionResponse
	err      error
	requests []openai.ChatCompletionRequest
}

func (m *MockCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return openai.ChatCompletionResponse{}, m.err
	}
	return m.response, nil
}

func completionWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestOptimizePassthroughWithoutKey(t *testing.T) {
	o := New("", "gpt-4", 0, NewSnippetFetcher(zap.NewNop()), zap.NewNop())

	if o.Enabled() {
		t.Error("expected optimizer to be disabled without a key")
	}

	got := o.Optimize(context.Background(), "title", "Red Shoes", "")
	if got != "Red Shoes" {
		t.Errorf("expected unchanged value, got %q", got)
	}
}

func TestOptimizeReturnsModelOutput(t *testing.T) {
	client := &MockCompleter{response: completionWith("  Red Running Shoes for Men  ")}
	o := NewWithClient(client, "gpt-4", 0, NewSnippetFetcher(zap.NewNop()), zap.NewNop())

	got := o.Optimize(context.Background(), "title", "Red Shoes", "")
	if got != "Red Running Shoes for Men" {
		t.Errorf("expected trimmed model output, got %q", got)
	}
	if len(client.requests) != 1 {
		t.Fatalf("expected 1 completion request, got %d", len(client.requests))
	}
	if client.requests[0].MaxTokens != maxCompletionTokens {
		t.Errorf("expected a %d-token cap, got %d", maxCompletionTokens, client.requests[0].MaxTokens)
	}
}

func TestOptimizeKeepsOriginalOnFailure(t *testing.T) {
	cases := []struct {
		name   string
		client *MockCompleter
	}{
		{"completion error", &MockCompleter{err: errors.New("rate limited")}},
		{"no choices", &MockCompleter{response: openai.ChatCompletionResponse{}}},
		{"blank output", &MockCompleter{response: completionWith("   ")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := NewWithClient(tc.client, "gpt-4", 0, NewSnippetFetcher(zap.NewNop()), zap.NewNop())

			got := o.Optimize(context.Background(), "description", "Comfortable red shoes", "")
			if got != "Comfortable red shoes" {
				t.Errorf("expected the original back, got %q", got)
			}
		})
	}
}

func TestOptimizeSurvivesUnreachablePage(t *testing.T) {
	client := &MockCompleter{response: completionWith("Optimized anyway")}
	o := NewWithClient(client, "gpt-4", 0, NewSnippetFetcher(zap.NewNop()), zap.NewNop())

	// The page fetch fails; the prompt is built without a snippet and the
	// call still goes through.
	got := o.Optimize(context.Background(), "title", "Red Shoes", "http://127.0.0.1:1/nope")
	if got != "Optimized anyway" {
		t.Errorf("expected the model output despite the failed fetch, got %q", got)
	}
}
