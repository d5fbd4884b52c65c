package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "xigiled.db", cfg.DatabasePath)
	assert.Equal(t, 60, cfg.SessionTTLMinutes)
	assert.Equal(t, ProviderNone, cfg.LLM.Provider)
	assert.Equal(t, 1500, cfg.LLM.PromptBudget)
	assert.Equal(t, "admin", cfg.Admin.User)
}

func TestLoadConfigAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9090, "llm": {"provider": "ollama", "model": "llama3"}}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.OllamaHost)
	assert.Equal(t, 512, cfg.LLM.MaxTokens)
	assert.Equal(t, "xigiled.db", cfg.DatabasePath)
}

func TestLoadConfigRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port",
		},
		{
			name:    "non-positive ttl",
			mutate:  func(c *Config) { c.SessionTTLMinutes = -5 },
			wantErr: "session_ttl_minutes",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "bedrock" },
			wantErr: "unknown llm provider",
		},
		{
			name:    "provider without model",
			mutate:  func(c *Config) { c.LLM.Provider = ProviderOpenAI; c.LLM.Model = "" },
			wantErr: "requires a model",
		},
		{
			name:   "provider with model",
			mutate: func(c *Config) { c.LLM.Provider = ProviderAnthropic; c.LLM.Model = "claude-sonnet-4-20250514" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestAPIKeySecret(t *testing.T) {
	cfg := DefaultConfig()

	cfg.LLM.Provider = ProviderOpenAI
	assert.Equal(t, SecretOpenAIKey, cfg.APIKeySecret())

	cfg.LLM.Provider = ProviderGoogle
	assert.Equal(t, SecretGoogleKey, cfg.APIKeySecret())

	cfg.LLM.Provider = ProviderOllama
	assert.Empty(t, cfg.APIKeySecret())

	cfg.LLM.Provider = ProviderNone
	assert.Empty(t, cfg.APIKeySecret())
}
