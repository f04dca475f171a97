package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"doc_ingest/internal/chunker"
	"doc_ingest/internal/embedding"
	"doc_ingest/internal/store"
)

// ErrConfiguration - обязательная настройка отсутствует или некорректна
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	GeminiURL         string        `env:"GEMINI_URL"`
	PostgresURL       string        `env:"POSTGRES_URL"`
	EmbeddingProvider string        `env:"EMBEDDING_PROVIDER" envDefault:"gemini"`
	EmbeddingModel    string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-004"`
	EmbeddingTimeout  time.Duration `env:"EMBEDDING_TIMEOUT" envDefault:"30s"`
	OllamaURL         string        `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaEmbedModel  string        `env:"OLLAMA_EMBED_MODEL" envDefault:"nomic-embed-text"`
	ChunkSize         int           `env:"CHUNK_SIZE" envDefault:"500"`
	ChunkOverlap      int           `env:"CHUNK_OVERLAP" envDefault:"50"`
	ChunkStrategy     string        `env:"CHUNK_STRATEGY" envDefault:"fixed"`
	Table             string        `env:"EMBEDDINGS_TABLE" envDefault:"document_embeddings"`
}

// Init читает переменные окружения и проверяет обязательные поля
func Init(cfg *Config) error {
	if err := Parse(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Parse только читает окружение; флаги CLI применяются до Validate
func Parse(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

// Validate падает сразу, если не хватает ключей или строки подключения
func (c *Config) Validate() error {
	var errs []error

	if c.PostgresURL == "" {
		errs = append(errs, errors.New("POSTGRES_URL is not set"))
	}
	switch c.EmbeddingProvider {
	case embedding.ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is not set"))
		}
	case embedding.ProviderOllama:
	default:
		errs = append(errs, fmt.Errorf("EMBEDDING_PROVIDER %q is not supported", c.EmbeddingProvider))
	}
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize))
	}
	strategy, err := chunker.ParseStrategy(c.ChunkStrategy)
	if err != nil {
		errs = append(errs, fmt.Errorf("CHUNK_STRATEGY: %v", err))
	}
	// sentence не использует overlap
	if err == nil && strategy != chunker.StrategySentence && c.ChunkSize > 0 {
		if err := c.Chunker().ValidateOverlap(); err != nil {
			errs = append(errs, fmt.Errorf("CHUNK_OVERLAP: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

// Embedding - параметры клиента эмбеддингов
func (c *Config) Embedding() embedding.Config {
	cfg := embedding.Config{
		Provider:  c.EmbeddingProvider,
		Dimension: store.DefaultDimension,
		Timeout:   c.EmbeddingTimeout,
	}
	switch c.EmbeddingProvider {
	case embedding.ProviderOllama:
		cfg.Model = c.OllamaEmbedModel
		cfg.BaseURL = c.OllamaURL
	default:
		cfg.APIKey = c.GeminiAPIKey
		cfg.Model = c.EmbeddingModel
		cfg.BaseURL = c.GeminiURL
	}
	return cfg
}

// Store - параметры подключения к PostgreSQL
func (c *Config) Store() store.Config {
	return store.Config{
		URL:       c.PostgresURL,
		Table:     c.Table,
		Dimension: store.DefaultDimension,
	}
}

// Chunker - размер и overlap для движка разбиения
func (c *Config) Chunker() chunker.Config {
	return chunker.Config{
		MaxChunkSize: c.ChunkSize,
		Overlap:      c.ChunkOverlap,
	}
}
