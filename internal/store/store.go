package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"doc_ingest/internal/embedding"
)

const (
	DefaultTable     = "document_embeddings"
	DefaultDimension = 768
)

var (
	ErrMissingURL   = errors.New("database connection string is not set")
	ErrInvalidTable = errors.New("invalid table name")
	ErrSchema       = errors.New("failed to initialize database schema")
	ErrPersistence  = errors.New("failed to save chunks")
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config - куда пишем: строка подключения, таблица, размерность вектора
type Config struct {
	URL       string
	Table     string
	Dimension int
}

// Record - чанк и результат его эмбеддинга
type Record struct {
	Chunk     string
	Embedding embedding.Result
	Filename  string
	Strategy  string
}

type SaveReport struct {
	Saved   int
	Skipped int
	Total   int
}

func (r SaveReport) String() string {
	return fmt.Sprintf("%d/%d", r.Saved, r.Total)
}

// Store открывает своё соединение на каждую операцию, пула нет
type Store struct {
	url       string
	table     string
	dimension int
}

// New только проверяет конфиг, к БД не подключается
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: POSTGRES_URL is required", ErrMissingURL)
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if !tableName.MatchString(cfg.Table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, cfg.Table)
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = DefaultDimension
	}

	return &Store{
		url:       cfg.URL,
		table:     cfg.Table,
		dimension: cfg.Dimension,
	}, nil
}

func (s *Store) Table() string {
	return s.table
}

func (s *Store) schemaStatements() []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id SERIAL PRIMARY KEY,
	chunk_text TEXT NOT NULL,
	embedding vector(%d),
	filename TEXT NOT NULL,
	split_strategy TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`, s.table, s.dimension),
	}
}

func (s *Store) insertStatement() string {
	return fmt.Sprintf(`INSERT INTO %s (chunk_text, embedding, filename, split_strategy) VALUES ($1, $2, $3, $4)`, s.table)
}

func (s *Store) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return conn, nil
}

// EnsureSchema включает расширение vector и создаёт таблицу, если её нет
func (s *Store) EnsureSchema(ctx context.Context) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range s.schemaStatements() {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", ErrSchema, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}

	log.Printf("✅ Database initialized successfully (table %s)", s.table)
	return nil
}

// plan отделяет записи без вектора. Вектор не той размерности валит весь батч.
func (s *Store) plan(records []Record) ([]Record, int, error) {
	toInsert := make([]Record, 0, len(records))
	skipped := 0

	for i, r := range records {
		if !r.Embedding.OK() {
			skipped++
			continue
		}
		if len(r.Embedding.Vector) != s.dimension {
			return nil, 0, fmt.Errorf("%w: record %d has %d dimensions, table expects %d",
				ErrPersistence, i+1, len(r.Embedding.Vector), s.dimension)
		}
		toInsert = append(toInsert, r)
	}

	return toInsert, skipped, nil
}

// Save вставляет записи с вектором одной транзакцией, остальные пропускает.
// При ошибке откат, счётчик не возвращается.
func (s *Store) Save(ctx context.Context, records []Record) (SaveReport, error) {
	toInsert, skipped, err := s.plan(records)
	if err != nil {
		return SaveReport{}, err
	}

	report := SaveReport{Skipped: skipped, Total: len(records)}
	if len(toInsert) == 0 {
		log.Printf("⚠️  Nothing to save: %d/%d chunks have embeddings", 0, len(records))
		return report, nil
	}

	conn, err := s.connect(ctx)
	if err != nil {
		return SaveReport{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer conn.Close(ctx)

	if err := pgxvec.RegisterTypes(ctx, conn); err != nil {
		return SaveReport{}, fmt.Errorf("%w: register vector type: %v", ErrPersistence, err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return SaveReport{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	query := s.insertStatement()
	for i, r := range toInsert {
		vec := pgvector.NewVector(r.Embedding.Vector)
		if _, err := tx.Exec(ctx, query, r.Chunk, vec, r.Filename, r.Strategy); err != nil {
			return SaveReport{}, fmt.Errorf("%w: insert %d/%d: %v", ErrPersistence, i+1, len(toInsert), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return SaveReport{}, fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}

	report.Saved = len(toInsert)
	log.Printf("✅ Successfully saved %s chunks to DB.", report)
	return report, nil
}
