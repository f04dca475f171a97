package chunker

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy - название стратегии разбиения текста
type Strategy string

const (
	StrategyFixed     Strategy = "fixed"     // окно фиксированного размера с overlap
	StrategySentence  Strategy = "sentence"  // по границам предложений
	StrategyParagraph Strategy = "paragraph" // по параграфам с fallback на fixed
)

// Значения по умолчанию
const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
)

var (
	// ErrInvalidArgument - общий родитель для ошибок валидации аргументов
	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidStrategy  = fmt.Errorf("%w: unknown strategy", ErrInvalidArgument)
	ErrInvalidChunkSize = fmt.Errorf("%w: chunk size must be positive", ErrInvalidArgument)
	ErrInvalidOverlap   = fmt.Errorf("%w: overlap must be in [0, chunk size)", ErrInvalidArgument)
)

// Strategies возвращает поддерживаемые стратегии в порядке для справки CLI
func Strategies() []Strategy {
	return []Strategy{StrategyFixed, StrategySentence, StrategyParagraph}
}

// ParseStrategy разбирает название стратегии
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case StrategyFixed, StrategySentence, StrategyParagraph:
		return s, nil
	}
	return "", fmt.Errorf("%w %q (choose: fixed, sentence, paragraph)", ErrInvalidStrategy, name)
}

func (s Strategy) String() string {
	return string(s)
}

// Chunk представляет единицу текста для векторизации
type Chunk struct {
	ID       string   // Уникальный идентификатор (hash)
	Index    int      // Позиция в исходном тексте (с нуля)
	Text     string   // Текст чанка
	Source   string   // Имя исходного файла
	Strategy Strategy // Стратегия, которой получен чанк
}

// Chunker - интерфейс для всех типов chunker'ов
type Chunker interface {
	// Split разбивает текст на упорядоченные непустые куски
	Split(text string) ([]string, error)

	// Chunk разбивает контент на чанки
	Chunk(content, source string) ([]Chunk, error)

	// Name возвращает название chunker'а для логирования
	Name() string
}

// Config содержит общие параметры для chunker'ов
type Config struct {
	MaxChunkSize int // Максимальный размер чанка в символах
	Overlap      int // Размер overlap между чанками
}

// DefaultConfig возвращает параметры по умолчанию
func DefaultConfig() Config {
	return Config{MaxChunkSize: DefaultChunkSize, Overlap: DefaultOverlap}
}

// Validate проверяет размер чанка
func (c Config) Validate() error {
	if c.MaxChunkSize <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidChunkSize, c.MaxChunkSize)
	}
	return nil
}

// ValidateOverlap нужен везде, где может работать окно: иначе шаг <= 0 и цикл не продвигается
func (c Config) ValidateOverlap() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Overlap < 0 || c.Overlap >= c.MaxChunkSize {
		return fmt.Errorf("%w (got overlap %d, chunk size %d)", ErrInvalidOverlap, c.Overlap, c.MaxChunkSize)
	}
	return nil
}
