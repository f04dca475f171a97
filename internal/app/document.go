package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"doc_ingest/internal/chunker"
	"doc_ingest/internal/store"
)

// processInputDocument обрабатывает входной файл
func (a *App) processInputDocument(ctx context.Context, filePath string, strategy chunker.Strategy) (*Report, error) {
	fileName := filepath.Base(filePath)

	// Извлекаем текст
	log.Printf("📄 Extracting text from %s...", filePath)
	text, err := a.extractor.Extract(filePath)
	if err != nil {
		return nil, err
	}
	log.Printf("📄 Text extracted: %d characters", utf8.RuneCountInString(text))

	// Разбиваем на чанки
	log.Printf("✂️  Splitting text using '%s' strategy...", strategy)
	chunkr, err := a.chunkerFactory.GetChunker(strategy)
	if err != nil {
		return nil, err
	}
	chunks, err := chunkr.Chunk(text, fileName)
	if err != nil {
		return nil, err
	}
	log.Printf("📦 Generated %d chunks.", len(chunks))

	// Эмбеддинги строго по порядку, по одному
	log.Printf("🧠 Generating embeddings with %s...", a.embedder.Provider())
	records := make([]store.Record, 0, len(chunks))
	failures := 0
	for _, ch := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("interrupted after %d/%d chunks: %w", ch.Index, len(chunks), err)
		}

		res := a.embedder.Embed(ctx, ch.Text)
		if !res.OK() {
			failures++
			log.Printf("❌ Chunk %d/%d [%s] will not be saved", ch.Index+1, len(chunks), ch.ID)
		}

		records = append(records, store.Record{
			Chunk:     ch.Text,
			Embedding: res,
			Filename:  fileName,
			Strategy:  strategy.String(),
		})
	}

	// Сохраняем
	log.Println("💾 Saving to PostgreSQL...")
	saved, err := a.store.Save(ctx, records)
	if err != nil {
		return nil, err
	}

	return &Report{
		File:          fileName,
		Strategy:      strategy,
		Chunks:        len(chunks),
		Embedded:      len(chunks) - failures,
		EmbedFailures: failures,
		Saved:         saved.Saved,
	}, nil
}

// logSummary выводит итоговую статистику
func (a *App) logSummary(r *Report) {
	line := strings.Repeat("━", 78)

	log.Printf("\n%s", line)
	log.Printf("📊 Summary (run %s):", r.RunID)
	log.Printf("   File: %s", r.File)
	log.Printf("   Strategy: %s", r.Strategy)
	log.Printf("   Total chunks: %d", r.Chunks)
	log.Printf("   ✅ Saved: %d/%d", r.Saved, r.Chunks)
	log.Printf("   ❌ Embedding errors: %d", r.EmbedFailures)
	log.Printf("   Took: %s", r.Duration.Round(time.Millisecond))
	log.Printf("%s\n", line)
}
