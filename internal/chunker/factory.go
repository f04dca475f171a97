package chunker

import (
	"fmt"
)

// Factory создаёт chunker на основе стратегии
type Factory struct {
	config Config
}

// NewFactory создаёт новую фабрику chunker'ов
func NewFactory(config Config) *Factory {
	return &Factory{config: config}
}

// Config возвращает параметры, с которыми создаются chunker'ы
func (f *Factory) Config() Config {
	return f.config
}

// GetChunker возвращает chunker по стратегии
func (f *Factory) GetChunker(strategy Strategy) (Chunker, error) {
	if err := f.config.Validate(); err != nil {
		return nil, err
	}

	switch strategy {
	case StrategyFixed:
		return NewFixedChunker(f.config), nil
	case StrategySentence:
		return NewSentenceChunker(f.config), nil
	case StrategyParagraph:
		return NewParagraphChunker(f.config), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrInvalidStrategy, strategy)
	}
}

// GetChunkerByName возвращает chunker по названию стратегии из CLI/env
func (f *Factory) GetChunkerByName(name string) (Chunker, error) {
	strategy, err := ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	return f.GetChunker(strategy)
}

// Split - основная точка входа: текст + стратегия -> упорядоченные непустые чанки.
// При ошибке частичный результат не возвращается.
func Split(text string, strategy Strategy, cfg Config) ([]string, error) {
	c, err := NewFactory(cfg).GetChunker(strategy)
	if err != nil {
		return nil, err
	}
	return c.Split(text)
}
