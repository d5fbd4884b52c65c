// Package config loads and validates the chatbot backend configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Supported LLM providers for the knowledge fallback.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
	ProviderOllama    = "ollama"
	ProviderNone      = "none"
)

// Secret names looked up via GetSecret.
const (
	SecretOpenAIKey     = "OPENAI_API_KEY"
	SecretAnthropicKey  = "ANTHROPIC_API_KEY"
	SecretGoogleKey     = "GEMINI_API_KEY"
	SecretAdminPassword = "XIGILED_ADMIN_PASSWORD"
)

// LLMConfig configures the knowledge fallback provider.
type LLMConfig struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
	OllamaHost  string  `json:"ollama_host,omitempty"`
	// PromptBudget caps the token count of the context sent with a question.
	PromptBudget int `json:"prompt_budget"`
}

// AdminConfig configures the Basic Auth admin surface.
type AdminConfig struct {
	User string `json:"user"`
}

// PrometheusConfig points the ops summary at a Prometheus server.
type PrometheusConfig struct {
	BaseURL string `json:"base_url,omitempty"`
}

// Config is the top-level configuration for the chatbot backend.
type Config struct {
	Port              int               `json:"port"`
	DatabasePath      string            `json:"database_path"`
	SessionTTLMinutes int               `json:"session_ttl_minutes"`
	LLM               LLMConfig         `json:"llm"`
	Admin             AdminConfig       `json:"admin"`
	Prometheus        *PrometheusConfig `json:"prometheus,omitempty"`
	Debug             bool              `json:"debug,omitempty"`
}

// DefaultConfig returns a config with production defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Port:              8080,
		DatabasePath:      "xigiled.db",
		SessionTTLMinutes: 60,
		LLM: LLMConfig{
			Provider:     ProviderNone,
			Model:        "",
			MaxTokens:    512,
			Temperature:  0.3,
			OllamaHost:   "http://localhost:11434",
			PromptBudget: 1500,
		},
		Admin: AdminConfig{User: "admin"},
	}
}

// LoadConfig reads a JSON config file and applies defaults and validation.
// A missing file is not an error: defaults are returned so the service can
// boot with no config at all.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = def.DatabasePath
	}
	if cfg.SessionTTLMinutes == 0 {
		cfg.SessionTTLMinutes = def.SessionTTLMinutes
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderNone
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = def.LLM.Temperature
	}
	if cfg.LLM.OllamaHost == "" {
		cfg.LLM.OllamaHost = def.LLM.OllamaHost
	}
	if cfg.LLM.PromptBudget == 0 {
		cfg.LLM.PromptBudget = def.LLM.PromptBudget
	}
	if cfg.Admin.User == "" {
		cfg.Admin.User = def.Admin.User
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.SessionTTLMinutes < 1 {
		return fmt.Errorf("session_ttl_minutes must be positive, got %d", c.SessionTTLMinutes)
	}

	switch strings.ToLower(c.LLM.Provider) {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderOllama, ProviderNone:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}

	if c.LLM.Provider != ProviderNone && c.LLM.Model == "" {
		return fmt.Errorf("llm provider %s requires a model name", c.LLM.Provider)
	}

	return nil
}

// APIKeySecret returns the secret name holding the API key for the configured
// provider, or "" when the provider needs no key (ollama, none).
func (c *Config) APIKeySecret() string {
	switch strings.ToLower(c.LLM.Provider) {
	case ProviderOpenAI:
		return SecretOpenAIKey
	case ProviderAnthropic:
		return SecretAnthropicKey
	case ProviderGoogle:
		return SecretGoogleKey
	default:
		return ""
	}
}
