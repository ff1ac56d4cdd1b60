package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"atsopt/internal/config"
	"atsopt/internal/domain"
	"atsopt/internal/embedder"
	"atsopt/internal/extractor"
	"atsopt/internal/llm"
	"atsopt/internal/logger"
	"atsopt/internal/nlp"
	"atsopt/internal/render"
	"atsopt/internal/storage/local"
	"atsopt/internal/storage/memory"
	"atsopt/internal/storage/s3"
)

// NewTagger builds the configured tagger. It is built once per process.
func NewTagger(name string) (domain.Tagger, error) {
	switch name {
	case "prose", "":
		return nlp.NewProseTagger(), nil
	case "simple":
		return nlp.NewSimpleTagger(), nil
	default:
		return nil, fmt.Errorf("unknown tagger: %s", name)
	}
}

// NewChatClient builds the configured LLM client. A construction failure
// (usually a missing credential) yields an llm.Unavailable so that the
// extractor falls back instead of aborting.
func NewChatClient(ctx context.Context, cfg *config.LLMConfig) domain.ChatClient {
	lc := llm.Config{
		BaseURL:     cfg.BaseURL,
		APIKeyEnv:   cfg.APIKeyEnv,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     time.Duration(cfg.TimeoutSecs) * time.Second,
	}
	var (
		client domain.ChatClient
		err    error
	)
	switch cfg.Provider {
	case "gemini":
		client, err = llm.NewGeminiClient(ctx, lc)
	case "openai", "":
		client, err = llm.NewOpenAIClient(lc)
	default:
		err = fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	if err != nil {
		log := logger.Component("assemble")
		log.Warn().Err(err).Str("provider", cfg.Provider).Msg("llm client unavailable, fallback will be used")
		return llm.Unavailable{Err: err}
	}
	return client
}

// NewExtractor builds the extraction strategy named by strategy. resumeText
// is the snapshot the llm strategy excludes from its results.
func NewExtractor(ctx context.Context, cfg *config.AppConfig, strategy string, tagger domain.Tagger, resumeText string) (domain.Extractor, error) {
	heuristic := extractor.NewHeuristicExtractor(tagger)
	switch strategy {
	case "heuristic", "":
		return heuristic, nil
	case "llm":
		lc := cfg.Extractor.EnsureLLM()
		fallback := extractor.NewFallbackExtractor(heuristic, resumeText)
		return extractor.NewLLMExtractor(NewChatClient(ctx, lc), fallback, resumeText, lc.DiagnosticsDir), nil
	default:
		return nil, fmt.Errorf("unknown extractor: %s", strategy)
	}
}

// NewStore builds the configured artifact store, or nil for "none".
func NewStore(ctx context.Context, cfg config.StorageConfig) (domain.Store, error) {
	switch cfg.Type {
	case "none", "":
		return nil, nil
	case "memory":
		return memory.NewStore(), nil
	case "local":
		if cfg.Local == nil {
			return nil, fmt.Errorf("local storage config missing")
		}
		st, err := local.NewStore(cfg.Local.Dir)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "s3":
		if cfg.S3 == nil {
			return nil, fmt.Errorf("s3 storage config missing")
		}
		st, err := s3.NewStore(ctx, s3.Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			Prefix:    cfg.S3.Prefix,
			AccessKey: os.Getenv(cfg.S3.AccessKeyEnv),
			SecretKey: os.Getenv(cfg.S3.SecretKeyEnv),
		})
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage: %s", cfg.Type)
	}
}

// NewFromConfig assembles an OptimizerService for the given strategy.
func NewFromConfig(ctx context.Context, cfg *config.AppConfig, strategy string, tagger domain.Tagger, resumeText string) (*OptimizerService, error) {
	ext, err := NewExtractor(ctx, cfg, strategy, tagger, resumeText)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	var conv PDFConverter
	if cfg.PDF.Command != "" {
		conv = render.NewConverter(cfg.PDF.Command, time.Duration(cfg.PDF.TimeoutSecs)*time.Second)
	}
	emb := embedder.New(embedder.Options{
		ChunkSize:          cfg.Embedder.ChunkSize,
		CustomKeywordCount: cfg.Embedder.CustomKeywordCount,
		StyledRunSize:      cfg.Embedder.StyledRunSize,
		FontHalfPoints:     cfg.Embedder.FontHalfPoints,
		Color:              cfg.Embedder.Color,
	})
	return NewOptimizerService(ext, emb, conv, store, cfg.Extractor.MaxKeywords), nil
}
