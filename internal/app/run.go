package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"doc_ingest/internal/chunker"
)

// Report - итог одного запуска
type Report struct {
	RunID         string
	File          string
	Strategy      chunker.Strategy
	Chunks        int
	Embedded      int
	EmbedFailures int
	Saved         int
	Duration      time.Duration
}

// Partial - часть чанков не попала в БД из-за ошибок эмбеддинга
func (r *Report) Partial() bool {
	return r.Saved < r.Chunks
}

func (r *Report) String() string {
	return fmt.Sprintf("%s: %d/%d chunks saved (%s strategy, %d embedding failures)",
		r.File, r.Saved, r.Chunks, r.Strategy, r.EmbedFailures)
}

// Run обрабатывает один документ: extract -> split -> embed -> save.
// Ошибки извлечения, стратегии и сохранения прерывают запуск;
// ошибка эмбеддинга отдельного чанка - нет.
func (a *App) Run(ctx context.Context, path string, strategy chunker.Strategy) (*Report, error) {
	runID := uuid.NewString()
	log.Printf("Application started (run %s)", runID)

	start := time.Now()
	report, err := a.processInputDocument(ctx, path, strategy)
	if err != nil {
		log.Printf("❌ Run %s failed: %v", runID, err)
		return nil, err
	}

	report.RunID = runID
	report.Duration = time.Since(start)
	a.logSummary(report)

	log.Println("Process complete.")
	return report, nil
}
