package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "documents", cfg.RAG.CollectionName)
	assert.Equal(t, ProviderOpenAI, cfg.ChatLLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatLLM.Model)
	assert.Equal(t, "text-embedding-ada-002", cfg.EmbedLLM.Model)
	assert.Equal(t, "sk-test", cfg.ChatLLM.Key)
	assert.Equal(t, "sk-test", cfg.EmbedLLM.Key)
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERVER_ADDR", ":9090")

	path := writeConfig(t, `
server:
  addr: ":7000"
log:
  level: debug
chat_llm:
  model: gpt-4o
embed_llm:
  provider: ollama
  base_url: http://localhost:11434
  model: nomic-embed-text
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "gpt-4o", cfg.ChatLLM.Model)
	assert.Equal(t, ProviderOllama, cfg.EmbedLLM.Provider)
	assert.Equal(t, "nomic-embed-text", cfg.EmbedLLM.Model)
	assert.Equal(t, "http://localhost:11434", cfg.EmbedLLM.BaseURL)
}

func TestLoadConfig_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := LoadConfig(writeConfig(t, "log:\n  level: info\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not found")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := LoadConfig(writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
}

func TestValidate_UnsupportedProvider(t *testing.T) {
	cfg := &Config{
		EmbedLLM: LLMConfig{Provider: "bogus"},
		ChatLLM:  LLMConfig{Provider: ProviderOpenAI, Key: "k"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestValidate_OllamaNeedsModel(t *testing.T) {
	cfg := &Config{
		EmbedLLM: LLMConfig{Provider: ProviderOllama},
		ChatLLM:  LLMConfig{Provider: ProviderOllama, Model: "llama3"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is required")
}
