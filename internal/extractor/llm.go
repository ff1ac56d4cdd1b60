package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"atsopt/internal/domain"
	"atsopt/internal/logger"
)

// LLMExtractor asks a remote model for missing keywords and falls back to
// local extraction on any failure. Its results are never merged with the
// heuristic list.
type LLMExtractor struct {
	client         domain.ChatClient
	fallback       *FallbackExtractor
	resumeText     string
	diagnosticsDir string
	log            zerolog.Logger
}

// NewLLMExtractor wires a chat client with its fallback. diagnosticsDir may
// be empty to disable prompt/response dumps.
func NewLLMExtractor(client domain.ChatClient, fallback *FallbackExtractor, resumeText, diagnosticsDir string) *LLMExtractor {
	return &LLMExtractor{
		client:         client,
		fallback:       fallback,
		resumeText:     resumeText,
		diagnosticsDir: diagnosticsDir,
		log:            logger.Component("extractor"),
	}
}

// Name returns the identifier of this extractor implementation.
func (e *LLMExtractor) Name() string { return "llm" }

// Extract never returns an error: remote failures are logged and answered
// by the fallback strategy.
func (e *LLMExtractor) Extract(ctx context.Context, jobDescription string, maxKeywords int) (domain.KeywordList, error) {
	if maxKeywords <= 0 {
		maxKeywords = domain.DefaultMaxKeywords
	}
	kws, err := e.extractRemote(ctx, jobDescription, maxKeywords)
	if err == nil {
		return kws, nil
	}
	e.log.Warn().Err(err).Str("client", e.client.Name()).Msg("llm extraction failed, using fallback")
	return e.fallback.Extract(ctx, jobDescription, maxKeywords)
}

func (e *LLMExtractor) extractRemote(ctx context.Context, jobDescription string, maxKeywords int) (domain.KeywordList, error) {
	runID := uuid.NewString()
	prompt := RenderPrompt(jobDescription, e.resumeText)
	e.dump(runID, "prompt", prompt)

	content, raw, err := e.client.Complete(ctx, prompt)
	e.dump(runID, "response", raw)
	if err != nil {
		return nil, err
	}
	kws := ParseKeywordLine(content, maxKeywords)
	if len(kws) == 0 {
		return nil, domain.NewOpError(domain.ErrFormat, "parse llm response", "", errors.New("no keywords in response"))
	}
	e.log.Info().Str("run_id", runID).Int("keywords", len(kws)).Msg("llm keywords extracted")
	return kws, nil
}

// dump writes a diagnostic file; failures are logged and ignored.
func (e *LLMExtractor) dump(runID, kind, content string) {
	if e.diagnosticsDir == "" || content == "" {
		return
	}
	if err := os.MkdirAll(e.diagnosticsDir, 0o755); err != nil {
		e.log.Debug().Err(err).Msg("diagnostics dir unavailable")
		return
	}
	path := filepath.Join(e.diagnosticsDir, "llm_"+runID+"_"+kind+".txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.log.Debug().Err(err).Str("path", path).Msg("diagnostics write failed")
	}
}
