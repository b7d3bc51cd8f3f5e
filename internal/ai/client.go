package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Completer is the language-understanding service contract consumed by the
// extractor and the selector. Implementations must be safe for concurrent
// use.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error)
}

var ErrNoChoices = errors.New("completion returned no choices")

const maxAttempts = 3

// Client wraps the OpenAI chat-completion API with a rate limiter, bounded
// retry and a per-attempt timeout.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewClient returns nil when apiKey is empty: the AI-assisted steps are
// optional and callers treat a nil Completer as "service not configured".
func NewClient(apiKey, model string, timeout time.Duration, logger *logrus.Logger) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		api:     openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(3), 5),
		logger:  logger,
	}
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
		cancel()

		if err == nil {
			if len(resp.Choices) == 0 {
				return "", ErrNoChoices
			}
			return resp.Choices[0].Message.Content, nil
		}

		lastErr = err
		c.logger.WithError(err).WithField("attempt", attempt).Warn("Completion attempt failed")

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", maxAttempts, lastErr)
}
