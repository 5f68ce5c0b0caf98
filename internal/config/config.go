package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for tailor.
type Config struct {
	Store     StoreConfig
	Providers ProvidersConfig
	Export    ExportConfig
}

// StoreConfig controls where the snapshot is persisted.
type StoreConfig struct {
	Path     string `yaml:"path"`     // SQLite database file
	Snapshot string `yaml:"snapshot"` // row name of the single snapshot
}

// ProvidersConfig holds settings for both LLM bindings.
type ProvidersConfig struct {
	Timeout   time.Duration // per-call timeout
	OpenAI    ProviderConfig
	Anthropic ProviderConfig
}

// ProviderConfig configures one LLM provider. API keys are not part of the
// config file; they live in the snapshot.
type ProviderConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Version   string `yaml:"version"` // Anthropic only
}

// ExportConfig controls the export step.
type ExportConfig struct {
	File string `yaml:"file"`
}

const (
	defaultStorePath      = "tailor.db"
	defaultSnapshotName   = "resumeCustomizer"
	defaultTimeout        = 12 * time.Second
	defaultOpenAIBaseURL  = "https://api.openai.com/v1"
	defaultOpenAIModel    = "gpt-5-nano"
	defaultAnthropicURL   = "https://api.anthropic.com"
	defaultAnthropicModel = "claude-3-sonnet-20240229"
	defaultAnthropicVer   = "2023-06-01"
	defaultMaxTokens      = 2000
	defaultExportFile     = "optimized_resume.txt"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Store     StoreConfig        `yaml:"store"`
	Providers rawProvidersConfig `yaml:"providers"`
	Export    ExportConfig       `yaml:"export"`
}

type rawProvidersConfig struct {
	Timeout   string         `yaml:"timeout"`
	OpenAI    ProviderConfig `yaml:"openai"`
	Anthropic ProviderConfig `yaml:"anthropic"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Path: defaultStorePath, Snapshot: defaultSnapshotName},
		Providers: ProvidersConfig{
			Timeout: defaultTimeout,
			OpenAI: ProviderConfig{
				BaseURL:   defaultOpenAIBaseURL,
				Model:     defaultOpenAIModel,
				MaxTokens: defaultMaxTokens,
			},
			Anthropic: ProviderConfig{
				BaseURL:   defaultAnthropicURL,
				Model:     defaultAnthropicModel,
				MaxTokens: defaultMaxTokens,
				Version:   defaultAnthropicVer,
			},
		},
		Export: ExportConfig{File: defaultExportFile},
	}
}

// Load reads and parses the YAML config file at path, fills unset keys with
// defaults, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML config data. Environment variables are expanded first.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Providers.Timeout != "" {
		d, err := time.ParseDuration(raw.Providers.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse providers.timeout %q: %w", raw.Providers.Timeout, err)
		}
		cfg.Providers.Timeout = d
	}

	overlayString(&cfg.Store.Path, raw.Store.Path)
	overlayString(&cfg.Store.Snapshot, raw.Store.Snapshot)
	overlayProvider(&cfg.Providers.OpenAI, raw.Providers.OpenAI)
	overlayProvider(&cfg.Providers.Anthropic, raw.Providers.Anthropic)
	overlayString(&cfg.Export.File, raw.Export.File)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlayProvider(dst *ProviderConfig, src ProviderConfig) {
	overlayString(&dst.BaseURL, src.BaseURL)
	overlayString(&dst.Model, src.Model)
	overlayString(&dst.Version, src.Version)
	if src.MaxTokens != 0 {
		dst.MaxTokens = src.MaxTokens
	}
}

func overlayString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func validate(cfg *Config) error {
	if cfg.Providers.Timeout <= 0 {
		return fmt.Errorf("providers.timeout must be positive, got %v", cfg.Providers.Timeout)
	}
	if cfg.Store.Snapshot == "" {
		return fmt.Errorf("store.snapshot must not be empty")
	}
	providers := []struct {
		name string
		cfg  ProviderConfig
	}{
		{"openai", cfg.Providers.OpenAI},
		{"anthropic", cfg.Providers.Anthropic},
	}
	for _, pv := range providers {
		name, p := pv.name, pv.cfg
		if p.BaseURL == "" {
			return fmt.Errorf("providers.%s.base_url must not be empty", name)
		}
		if p.Model == "" {
			return fmt.Errorf("providers.%s.model must not be empty", name)
		}
		if p.MaxTokens <= 0 {
			return fmt.Errorf("providers.%s.max_tokens must be positive, got %d", name, p.MaxTokens)
		}
	}
	return nil
}
