package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the remote keyword extraction endpoint.
type LLMConfig struct {
	Provider       string  `yaml:"provider"`
	BaseURL        string  `yaml:"base_url"`
	APIKeyEnv      string  `yaml:"api_key_env"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSecs    int     `yaml:"timeout_secs"`
	DiagnosticsDir string  `yaml:"diagnostics_dir"`
}

// ExtractorConfig selects and configures the keyword extraction strategy.
type ExtractorConfig struct {
	Type        string     `yaml:"type"`
	MaxKeywords int        `yaml:"max_keywords"`
	Tagger      string     `yaml:"tagger"`
	LLM         *LLMConfig `yaml:"llm,omitempty"`
}

// EmbedderConfig tunes how keywords are hidden inside the resume.
type EmbedderConfig struct {
	ChunkSize          int    `yaml:"chunk_size"`
	CustomKeywordCount int    `yaml:"custom_keyword_count"`
	StyledRunSize      int    `yaml:"styled_run_size"`
	FontHalfPoints     int    `yaml:"font_half_points"`
	Color              string `yaml:"color"`
}

// OutputConfig controls where optimized resumes are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Suffix string `yaml:"suffix"`
}

// PDFConfig configures the external DOCX to PDF converter.
type PDFConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Command     string `yaml:"command"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// BatchConfig configures batch mode persistence.
type BatchConfig struct {
	File      string `yaml:"file"`
	DirPrefix string `yaml:"dir_prefix"`
}

// S3Config holds connection details for an S3-compatible bucket.
type S3Config struct {
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	Prefix       string `yaml:"prefix"`
	AccessKeyEnv string `yaml:"access_key_env"`
	SecretKeyEnv string `yaml:"secret_key_env"`
}

// LocalStoreConfig holds the target directory of the local artifact store.
type LocalStoreConfig struct {
	Dir string `yaml:"dir"`
}

// StorageConfig selects where finished artifacts are published.
type StorageConfig struct {
	Type  string            `yaml:"type"`
	Local *LocalStoreConfig `yaml:"local,omitempty"`
	S3    *S3Config         `yaml:"s3,omitempty"`
}

// LoggerConfig mirrors logger.Config for YAML.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Extractor ExtractorConfig `yaml:"extractor"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Output    OutputConfig    `yaml:"output"`
	PDF       PDFConfig       `yaml:"pdf"`
	Batch     BatchConfig     `yaml:"batch"`
	Storage   StorageConfig   `yaml:"storage"`
	Logger    LoggerConfig    `yaml:"logger"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects an embedder style that would leave styled runs readable:
// they must be white or at most 2 half-points high.
func (c *AppConfig) Validate() error {
	e := c.Embedder
	if !strings.EqualFold(e.Color, "FFFFFF") && e.FontHalfPoints > 2 {
		return fmt.Errorf("embedder: color %q at %d half-points would be visible; use color FFFFFF or font_half_points <= 2",
			e.Color, e.FontHalfPoints)
	}
	return nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/atsopt/config.yaml.
// If neither exists, it writes defaults to ~/.config/atsopt/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns a fresh copy of the built-in configuration.
func Default() *AppConfig { return defaultConfig() }

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "atsopt", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Extractor: ExtractorConfig{Type: "heuristic", Tagger: "prose"},
		Storage:   StorageConfig{Type: "none"},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Extractor.Type == "" {
		cfg.Extractor.Type = "heuristic"
	}
	if cfg.Extractor.MaxKeywords == 0 {
		cfg.Extractor.MaxKeywords = 50
	}
	if cfg.Extractor.Tagger == "" {
		cfg.Extractor.Tagger = "prose"
	}
	if cfg.Extractor.Type == "llm" && cfg.Extractor.LLM == nil {
		cfg.Extractor.LLM = &LLMConfig{}
	}
	if cfg.Extractor.LLM != nil {
		applyLLMDefaults(cfg.Extractor.LLM)
	}
	if cfg.Embedder.ChunkSize == 0 {
		cfg.Embedder.ChunkSize = 200
	}
	if cfg.Embedder.CustomKeywordCount == 0 {
		cfg.Embedder.CustomKeywordCount = 20
	}
	if cfg.Embedder.StyledRunSize == 0 {
		cfg.Embedder.StyledRunSize = 10
	}
	if cfg.Embedder.FontHalfPoints == 0 {
		cfg.Embedder.FontHalfPoints = 2
	}
	if cfg.Embedder.Color == "" {
		cfg.Embedder.Color = "FFFFFF"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "optimized_resume"
	}
	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = "_ATS_Optimized"
	}
	if cfg.PDF.Command == "" {
		cfg.PDF.Command = "soffice"
	}
	if cfg.PDF.TimeoutSecs == 0 {
		cfg.PDF.TimeoutSecs = 120
	}
	if cfg.Batch.File == "" {
		cfg.Batch.File = "job_batch.json"
	}
	if cfg.Batch.DirPrefix == "" {
		cfg.Batch.DirPrefix = "batch_optimized"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "none"
	}
	if cfg.Storage.Type == "s3" && cfg.Storage.S3 != nil {
		if cfg.Storage.S3.Region == "" {
			cfg.Storage.S3.Region = "auto"
		}
		if cfg.Storage.S3.AccessKeyEnv == "" {
			cfg.Storage.S3.AccessKeyEnv = "S3_ACCESS_KEY"
		}
		if cfg.Storage.S3.SecretKeyEnv == "" {
			cfg.Storage.S3.SecretKeyEnv = "S3_SECRET_KEY"
		}
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "pretty"
	}
}

// EnsureLLM returns the LLM section, creating it with defaults when absent.
func (e *ExtractorConfig) EnsureLLM() *LLMConfig {
	if e.LLM == nil {
		e.LLM = &LLMConfig{}
	}
	applyLLMDefaults(e.LLM)
	return e.LLM
}

func applyLLMDefaults(l *LLMConfig) {
	if l.Provider == "" {
		l.Provider = "openai"
	}
	switch l.Provider {
	case "gemini":
		if l.APIKeyEnv == "" {
			l.APIKeyEnv = "GOOGLE_API_KEY"
		}
		if l.Model == "" {
			l.Model = "gemini-2.5-flash"
		}
	default:
		if l.BaseURL == "" {
			l.BaseURL = "https://api.groq.com/openai/v1/"
		}
		if l.APIKeyEnv == "" {
			l.APIKeyEnv = "LLM_API_KEY"
		}
		if l.Model == "" {
			l.Model = "llama-3.3-70b-versatile"
		}
	}
	if l.Temperature == 0 {
		l.Temperature = 0.1
	}
	if l.MaxTokens == 0 {
		l.MaxTokens = 500
	}
	if l.TimeoutSecs == 0 {
		l.TimeoutSecs = 60
	}
	if l.DiagnosticsDir == "" {
		l.DiagnosticsDir = "."
	}
}
