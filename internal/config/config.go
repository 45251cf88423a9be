package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	defaultAddr           = ":8000"
	defaultChatModel      = "gpt-4o-mini"
	defaultEmbeddingModel = "text-embedding-ada-002"
	defaultCollection     = "documents"
	defaultLogLevel       = "info"
)

type Config struct {
	Server   ServerConfig `yaml:"server" envPrefix:"SERVER_"`
	Log      LogConfig    `yaml:"log" envPrefix:"LOG_"`
	EmbedLLM LLMConfig    `yaml:"embed_llm" envPrefix:"EMBED_"`
	ChatLLM  LLMConfig    `yaml:"chat_llm" envPrefix:"CHAT_"`
	RAG      RAGConfig    `yaml:"rag" envPrefix:"RAG_"`

	// OpenAIKey is shared by both providers when their own key is empty
	OpenAIKey string `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Pretty bool   `yaml:"pretty" env:"PRETTY"`
}

type LLMConfig struct {
	Provider string `yaml:"provider" env:"PROVIDER"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL"`
	Key      string `yaml:"key" env:"KEY"`
	Model    string `yaml:"model" env:"MODEL"`
}

type RAGConfig struct {
	CollectionName string `yaml:"collection_name" env:"COLLECTION_NAME"`
}

// LoadConfig reads the yaml file at path, then .env, then environment
// overrides. A missing yaml or .env file is not an error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// .env is optional, variables may come from the environment directly
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.RAG.CollectionName == "" {
		c.RAG.CollectionName = defaultCollection
	}
	c.EmbedLLM.fill(defaultEmbeddingModel, c.OpenAIKey)
	c.ChatLLM.fill(defaultChatModel, c.OpenAIKey)
}

func (l *LLMConfig) fill(model, key string) {
	if l.Provider == "" {
		l.Provider = ProviderOpenAI
	}
	if l.Model == "" && l.Provider == ProviderOpenAI {
		l.Model = model
	}
	if l.Key == "" {
		l.Key = key
	}
}

// Validate checks provider names and that openai providers have a key
func (c *Config) Validate() error {
	for name, l := range map[string]LLMConfig{"embed_llm": c.EmbedLLM, "chat_llm": c.ChatLLM} {
		switch l.Provider {
		case ProviderOpenAI:
			if l.Key == "" {
				return fmt.Errorf("%s: OpenAI API key not found in config or environment", name)
			}
		case ProviderOllama:
			if l.Model == "" {
				return fmt.Errorf("%s: model is required for ollama", name)
			}
		default:
			return fmt.Errorf("%s: unsupported provider %q", name, l.Provider)
		}
	}
	return nil
}
