package app

import (
	"context"
	"fmt"
	"log"

	"doc_ingest/internal/chunker"
	"doc_ingest/internal/config"
	"doc_ingest/internal/embedding"
	"doc_ingest/internal/extractor"
	"doc_ingest/internal/store"
)

// Extractor возвращает нормализованный текст документа
type Extractor interface {
	Extract(path string) (string, error)
}

// Embedder считает эмбеддинг одного чанка; ошибки возвращаются внутри Result
type Embedder interface {
	Embed(ctx context.Context, text string) embedding.Result
	Provider() string
}

// Store создаёт схему и сохраняет записи одной транзакцией
type Store interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, records []store.Record) (store.SaveReport, error)
}

type App struct {
	cfg            *config.Config
	extractor      Extractor
	embedder       Embedder
	store          Store
	chunkerFactory *chunker.Factory
}

// New собирает pipeline из конфига. Без ключа API или строки подключения падает сразу.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	embedder, err := embedding.New(ctx, cfg.Embedding())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}

	st, err := store.New(cfg.Store())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}

	return newApp(cfg, extractor.New(), embedder, st), nil
}

func newApp(cfg *config.Config, ex Extractor, emb Embedder, st Store) *App {
	return &App{
		cfg:            cfg,
		extractor:      ex,
		embedder:       emb,
		store:          st,
		chunkerFactory: chunker.NewFactory(cfg.Chunker()),
	}
}

// Init создаёт расширение vector и таблицу, если их ещё нет
func (a *App) Init(ctx context.Context) error {
	log.Printf("Embedding provider: %s", a.embedder.Provider())
	log.Printf("Chunk size: %d, overlap: %d", a.cfg.ChunkSize, a.cfg.ChunkOverlap)

	if err := a.store.EnsureSchema(ctx); err != nil {
		return err
	}
	return nil
}
