package optimize

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const maxCompletionTokens = 150

// Completer is the slice of the OpenAI client the optimizer uses.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Optimizer rewrites one tracked attribute at a time. Without an API key it
// is a strict passthrough. It never propagates a failure: the caller always
// gets a usable value, at worst the original one.
type Optimizer struct {
	client  Completer
	fetcher *SnippetFetcher
	model   string
	delay   time.Duration
	logger  *zap.Logger
}

// New reads the throttle delay once; it stays fixed for the process lifetime.
// An empty apiKey disables optimization entirely.
func New(apiKey, model string, delaySeconds float64, fetcher *SnippetFetcher, logger *zap.Logger) *Optimizer {
	var client Completer
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &Optimizer{
		client:  client,
		fetcher: fetcher,
		model:   model,
		delay:   time.Duration(delaySeconds * float64(time.Second)),
		logger:  logger,
	}
}

// NewWithClient is the test seam: it takes a ready Completer.
func NewWithClient(client Completer, model string, delaySeconds float64, fetcher *SnippetFetcher, logger *zap.Logger) *Optimizer {
	return &Optimizer{
		client:  client,
		fetcher: fetcher,
		model:   model,
		delay:   time.Duration(delaySeconds * float64(time.Second)),
		logger:  logger,
	}
}

func (o *Optimizer) Enabled() bool {
	return o.client != nil
}

// Optimize produces a candidate replacement for one attribute. Every model
// invocation, successful or not, is followed by the fixed throttle delay.
func (o *Optimizer) Optimize(ctx context.Context, field, original, url string) string {
	if o.client == nil {
		return original
	}
	defer time.Sleep(o.delay)

	snippet := o.fetcher.Fetch(ctx, url)

	prompt := fmt.Sprintf(
		"Optimize the %s for Google Merchant Center. Original %s: '%s'. "+
			"Product page content (snippet): '%s'. Return only the new %s.",
		field, field, original, snippet, field,
	)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxCompletionTokens,
	})
	if err != nil {
		o.logger.Error("completion failed", zap.String("field", field), zap.Error(err))
		return original
	}
	if len(resp.Choices) == 0 {
		o.logger.Warn("completion returned no choices", zap.String("field", field))
		return original
	}

	optimized := strings.TrimSpace(resp.Choices[0].Message.Content)
	if optimized == "" {
		return original
	}

	o.logger.Debug("optimized attribute", zap.String("field", field))
	return optimized
}
