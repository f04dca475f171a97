package embedding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/philippgille/chromem-go"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"

	DefaultDimension   = 768
	DefaultTimeout     = 30 * time.Second
	DefaultGeminiModel = "text-embedding-004"
	DefaultOllamaModel = "nomic-embed-text"
	DefaultOllamaURL   = "http://localhost:11434"

	previewLen = 30
)

var (
	ErrMissingAPIKey     = errors.New("embedding API key is not set")
	ErrUnknownProvider   = errors.New("unknown embedding provider")
	ErrEmptyEmbedding    = errors.New("empty embedding returned")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Config - параметры клиента эмбеддингов
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string // пусто = адрес провайдера по умолчанию
	Dimension int
	Timeout   time.Duration
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if c.Dimension == 0 {
		c.Dimension = DefaultDimension
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Model == "" {
		switch c.Provider {
		case ProviderGemini:
			c.Model = DefaultGeminiModel
		case ProviderOllama:
			c.Model = DefaultOllamaModel
		}
	}
	if c.BaseURL == "" {
		switch c.Provider {
		case ProviderGemini:
			c.BaseURL = DefaultGeminiURL
		case ProviderOllama:
			c.BaseURL = DefaultOllamaURL
		}
	}
}

// Result - вектор чанка либо причина, по которой его нет
type Result struct {
	Vector []float32
	Err    error
}

func (r Result) OK() bool {
	return r.Err == nil
}

func Success(vec []float32) Result {
	return Result{Vector: vec}
}

func Failure(err error) Result {
	return Result{Err: err}
}

// Client считает эмбеддинги по одному чанку
type Client struct {
	provider  string
	embed     chromem.EmbeddingFunc
	dimension int
	timeout   time.Duration
}

// New создаёт клиент провайдера. Без ключа падает сразу, а не на первом запросе.
func New(ctx context.Context, cfg Config) (*Client, error) {
	cfg.applyDefaults()

	var fn chromem.EmbeddingFunc
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY is required for provider %q", ErrMissingAPIKey, cfg.Provider)
		}
		fn = newGeminiFunc(cfg)
	case ProviderOllama:
		fn = newOllamaFunc(cfg)
	default:
		return nil, fmt.Errorf("%w: %q (choose: %s, %s)", ErrUnknownProvider, cfg.Provider, ProviderGemini, ProviderOllama)
	}

	return NewWithFunc(cfg.Provider, fn, cfg.Dimension, cfg.Timeout), nil
}

// NewWithFunc оборачивает произвольную функцию эмбеддинга
func NewWithFunc(provider string, fn chromem.EmbeddingFunc, dimension int, timeout time.Duration) *Client {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Client{
		provider:  provider,
		embed:     fn,
		dimension: dimension,
		timeout:   timeout,
	}
}

func (c *Client) Provider() string {
	return c.provider
}

func (c *Client) Dimension() int {
	return c.dimension
}

// Embed не возвращает ошибку: сбой логируется с началом чанка и уходит в Result.
// Пустой вектор и вектор не той размерности тоже считаются сбоем.
func (c *Client) Embed(ctx context.Context, text string) Result {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	vec, err := c.embed(ctx, text)
	switch {
	case err != nil:
	case len(vec) == 0:
		err = ErrEmptyEmbedding
	case len(vec) != c.dimension:
		err = fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), c.dimension)
	}

	if err != nil {
		log.Printf("⚠️  Embedding failed for chunk: %s... Error: %v", Preview(text), err)
		return Failure(err)
	}
	return Success(vec)
}

// Preview - первые символы чанка для логов
func Preview(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > previewLen {
		runes = runes[:previewLen]
	}
	return string(runes)
}
