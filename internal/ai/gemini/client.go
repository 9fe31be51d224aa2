// Package gemini implements the review assistant on top of the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ashmarin/covermatch/internal/utils"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultRetryDelay = 2 * time.Second
)

type generateCall func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)

// Client wraps the Google GenAI client with a bounded retry budget for
// transient API failures.
type Client struct {
	call       generateCall
	model      string
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewClient builds a Gemini-backed client. maxRetries caps the total number
// of attempts; values below 1 mean a single attempt.
func NewClient(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		call: func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
			return client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		},
		model:      model,
		maxRetries: maxRetries,
		retryDelay: defaultRetryDelay,
		logger:     logger,
	}, nil
}

// Generate sends the prompt and returns the concatenated textual response,
// retrying transient API errors with a linear backoff.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.call == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	attempts := c.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := c.call(ctx, c.model, prompt)
		if err == nil {
			output := flattenResponse(resp)
			if output == "" {
				return "", errors.New("gemini api returned empty response")
			}
			return output, nil
		}

		lastErr = err
		if !isRetryable(err) || attempt == attempts {
			break
		}

		delay := c.retryDelay * time.Duration(attempt)
		c.logger.Debug("retrying gemini request",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if werr := utils.WaitFor(ctx, delay); werr != nil {
			return "", werr
		}
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// isRetryable treats rate limiting and server-side failures as transient.
func isRetryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}

func flattenResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}
