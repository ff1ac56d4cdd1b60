package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"atsopt/internal/domain"
)

// OpenAIClient is an OpenAI-compatible chat-completion client implementing domain.ChatClient.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// Config configures a chat-completion client.
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// NewOpenAIClient creates a client for any OpenAI-compatible endpoint. The
// bearer token is read from the environment variable named by cfg.APIKeyEnv.
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, domain.NewOpError(domain.ErrExternalService, "llm init", "",
			fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv))
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1/"
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 500
	}
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	client := openai.NewClient(
		option.WithAPIKey(key),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(t),
	)
	return &OpenAIClient{
		client:      &client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     t,
	}, nil
}

// Name returns the identifier of this client implementation.
func (c *OpenAIClient) Name() string { return "openai" }

// Complete sends prompt as a single user message and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", apiErr.RawJSON(), domain.NewOpError(domain.ErrExternalService, "chat completion", "",
				fmt.Errorf("status %d: %w", apiErr.StatusCode, err))
		}
		return "", "", domain.NewOpError(domain.ErrExternalService, "chat completion", "", err)
	}
	raw := resp.RawJSON()
	if len(resp.Choices) == 0 {
		return "", raw, domain.NewOpError(domain.ErrFormat, "chat completion", "", errors.New("no choices in response"))
	}
	return resp.Choices[0].Message.Content, raw, nil
}
