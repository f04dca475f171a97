package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"doc_ingest/internal/app"
	"doc_ingest/internal/chunker"
	"doc_ingest/internal/config"
	"doc_ingest/internal/extractor"
)

var (
	strategyName string
	chunkSize    int
	chunkOverlap int
	envFile      string
)

var rootCmd = &cobra.Command{
	Use:   "ingest <file_path>",
	Short: "Load a PDF or DOCX document into PostgreSQL as embedded chunks",
	Long: `Extracts text from a single .pdf or .docx file, splits it into chunks
(fixed, sentence or paragraph strategy), embeds every chunk and saves
the chunks with their vectors into a pgvector table.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runIngest,
}

func init() {
	rootCmd.Flags().StringVarP(&strategyName, "strategy", "s", "", "chunking strategy: fixed, sentence or paragraph (default $CHUNK_STRATEGY or fixed)")
	rootCmd.Flags().IntVar(&chunkSize, "chunk-size", chunker.DefaultChunkSize, "maximum chunk length in characters (overrides CHUNK_SIZE)")
	rootCmd.Flags().IntVar(&chunkOverlap, "overlap", chunker.DefaultOverlap, "overlap between fixed-size chunks (overrides CHUNK_OVERLAP)")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "load environment from this file instead of ./.env")
}

func runIngest(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	if err := loadEnv(); err != nil {
		return err
	}

	// Стратегия и формат проверяются до любого I/O
	if cmd.Flags().Changed("strategy") {
		if _, err := chunker.ParseStrategy(strategyName); err != nil {
			return err
		}
	}
	if err := checkInput(filePath); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	strategy, err := chunker.ParseStrategy(cfg.ChunkStrategy)
	if err != nil {
		return err
	}

	log.Printf("Input document: %s", filePath)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	if err := a.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	report, err := a.Run(ctx, filePath, strategy)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report)
	return nil
}

func loadEnv() error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("%w: failed to load %s: %v", config.ErrConfiguration, envFile, err)
		}
		return nil
	}
	// .env необязателен
	_ = godotenv.Load()
	return nil
}

func checkInput(filePath string) error {
	if _, err := extractor.DetectFormat(filePath); err != nil {
		return err
	}
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file not found: %s", filePath)
		}
		return err
	}
	return nil
}

// loadConfig читает окружение и накладывает явно заданные флаги
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if err := config.Parse(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.ChunkStrategy = strategyName
	}
	if flags.Changed("chunk-size") {
		cfg.ChunkSize = chunkSize
	}
	if flags.Changed("overlap") {
		cfg.ChunkOverlap = chunkOverlap
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printReport(w io.Writer, report *app.Report) {
	c := color.New(color.FgGreen, color.Bold)
	if report.Partial() {
		c = color.New(color.FgYellow, color.Bold)
	}
	c.Fprintln(w, report.String())
}
