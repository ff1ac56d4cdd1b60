package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsopt/internal/config"
	"atsopt/internal/llm"
	"atsopt/internal/nlp"
	"atsopt/internal/storage/local"
)

func TestNewExtractorLLMWithoutCredentialFallsBack(t *testing.T) {
	cfg := config.Default()
	l := cfg.Extractor.EnsureLLM()
	l.APIKeyEnv = "ATSOPT_TEST_MISSING_KEY"
	l.DiagnosticsDir = t.TempDir()
	t.Setenv("ATSOPT_TEST_MISSING_KEY", "")

	ext, err := NewExtractor(context.Background(), cfg, "llm", nlp.NewSimpleTagger(), "I know python")
	require.NoError(t, err)
	assert.Equal(t, "llm", ext.Name())

	kws, err := ext.Extract(context.Background(), jd, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, kws)
	assert.NotContains(t, kws, "python")
	assert.Contains(t, kws, "docker")
}

func TestNewChatClientUnavailable(t *testing.T) {
	t.Setenv("ATSOPT_TEST_MISSING_KEY", "")
	for _, provider := range []string{"openai", "gemini", "claude"} {
		t.Run(provider, func(t *testing.T) {
			client := NewChatClient(context.Background(), &config.LLMConfig{Provider: provider, APIKeyEnv: "ATSOPT_TEST_MISSING_KEY"})
			require.IsType(t, llm.Unavailable{}, client)
			_, _, err := client.Complete(context.Background(), "prompt")
			assert.Error(t, err)
		})
	}
}

func TestNewExtractorUnknown(t *testing.T) {
	_, err := NewExtractor(context.Background(), config.Default(), "magic", nlp.NewSimpleTagger(), "")
	assert.Error(t, err)
}

func TestNewTagger(t *testing.T) {
	tg, err := NewTagger("simple")
	require.NoError(t, err)
	assert.Equal(t, "simple", tg.Name())
	_, err = NewTagger("spacy")
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	st, err := NewStore(context.Background(), config.StorageConfig{Type: "none"})
	require.NoError(t, err)
	assert.Nil(t, st)

	dir := t.TempDir()
	st, err = NewStore(context.Background(), config.StorageConfig{Type: "local", Local: &config.LocalStoreConfig{Dir: dir}})
	require.NoError(t, err)
	assert.IsType(t, &local.Store{}, st)

	_, err = NewStore(context.Background(), config.StorageConfig{Type: "s3"})
	assert.Error(t, err)
	_, err = NewStore(context.Background(), config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	svc, err := NewFromConfig(context.Background(), cfg, "heuristic", nlp.NewSimpleTagger(), "")
	require.NoError(t, err)
	assert.Equal(t, "heuristic", svc.Strategy())
	assert.Equal(t, 50, svc.maxKeywords)
}
