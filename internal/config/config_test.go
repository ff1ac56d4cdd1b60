package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "heuristic", cfg.Extractor.Type)
	assert.Equal(t, 50, cfg.Extractor.MaxKeywords)
	assert.Equal(t, 200, cfg.Embedder.ChunkSize)
	assert.Equal(t, "optimized_resume", cfg.Output.Dir)
	assert.Equal(t, "job_batch.json", cfg.Batch.File)
	assert.Equal(t, "none", cfg.Storage.Type)
}

func TestLoadAppliesLLMDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
extractor:
  type: llm
  max_keywords: 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Extractor.LLM)
	assert.Equal(t, 30, cfg.Extractor.MaxKeywords)
	assert.Equal(t, "openai", cfg.Extractor.LLM.Provider)
	assert.Equal(t, "LLM_API_KEY", cfg.Extractor.LLM.APIKeyEnv)
	assert.Equal(t, 0.1, cfg.Extractor.LLM.Temperature)
	assert.Equal(t, 500, cfg.Extractor.LLM.MaxTokens)
	assert.Equal(t, 60, cfg.Extractor.LLM.TimeoutSecs)
}

func TestLoadGeminiDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
extractor:
  type: llm
  llm:
    provider: gemini
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GOOGLE_API_KEY", cfg.Extractor.LLM.APIKeyEnv)
	assert.Empty(t, cfg.Extractor.LLM.BaseURL)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.PDF.Enabled = true
	cfg.Storage = StorageConfig{Type: "s3", S3: &S3Config{Bucket: "resumes"}}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.PDF.Enabled)
	assert.Equal(t, "resumes", loaded.Storage.S3.Bucket)
	assert.Equal(t, "auto", loaded.Storage.S3.Region)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extractor: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnsureLLMAppliesDefaults(t *testing.T) {
	cfg := Default()
	require.Nil(t, cfg.Extractor.LLM)
	l := cfg.Extractor.EnsureLLM()
	assert.Same(t, l, cfg.Extractor.LLM)
	assert.Equal(t, "LLM_API_KEY", l.APIKeyEnv)
	assert.Equal(t, 60, l.TimeoutSecs)
}

func TestLoadRejectsVisibleEmbedderStyle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"near white and large", "embedder:\n  color: FEFEFE\n  font_half_points: 4\n", true},
		{"white and large", "embedder:\n  color: ffffff\n  font_half_points: 24\n", false},
		{"black and tiny", "embedder:\n  color: \"000000\"\n  font_half_points: 2\n", false},
		{"defaults", "embedder: {}\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			if tt.wantErr {
				assert.ErrorContains(t, err, "would be visible")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
