package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-rag-chat/internal/config"
)

func TestNewEmbedder_OpenAI(t *testing.T) {
	e, err := NewEmbedder(&config.LLMConfig{
		Provider: config.ProviderOpenAI,
		Key:      "Bearer sk-test",
		Model:    "text-embedding-ada-002",
		BaseURL:  "http://localhost:1/v1",
	})
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestNewEmbedder_Ollama(t *testing.T) {
	e, err := NewEmbedder(&config.LLMConfig{
		Provider: config.ProviderOllama,
		Model:    "nomic-embed-text",
		BaseURL:  "http://localhost:11434",
	})
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestNewEmbedder_Unsupported(t *testing.T) {
	_, err := NewEmbedder(&config.LLMConfig{Provider: "cohere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported embedding provider")
}
