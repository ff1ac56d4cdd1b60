package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"atsopt/internal/domain"
)

// GeminiClient talks to the Gemini API through the genai SDK.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
	timeout     time.Duration
}

// NewGeminiClient creates a Gemini-backed client. cfg.BaseURL is ignored.
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, domain.NewOpError(domain.ErrExternalService, "llm init", "",
			fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv))
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, domain.NewOpError(domain.ErrExternalService, "llm init", "", err)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 500
	}
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	return &GeminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
		timeout:     t,
	}, nil
}

// Name returns the identifier of this client implementation.
func (c *GeminiClient) Name() string { return "gemini" }

// Complete sends prompt as a single user turn.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
	})
	if err != nil {
		return "", "", domain.NewOpError(domain.ErrExternalService, "generate content", "", err)
	}
	raw, _ := json.Marshal(resp)
	text := resp.Text()
	if text == "" {
		return "", string(raw), domain.NewOpError(domain.ErrFormat, "generate content", "", errors.New("empty response"))
	}
	return text, string(raw), nil
}
