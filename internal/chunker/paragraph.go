package chunker

import "log"

// ParagraphChunker возвращает по чанку на каждый непустой параграф.
// Если в тексте нет пустых строк - работает как FixedChunker с теми же параметрами.
type ParagraphChunker struct {
	config Config
	fixed  *FixedChunker
}

// NewParagraphChunker создаёт новый paragraph chunker
func NewParagraphChunker(config Config) *ParagraphChunker {
	return &ParagraphChunker{
		config: config,
		fixed:  NewFixedChunker(config),
	}
}

func (p *ParagraphChunker) Name() string {
	return string(StrategyParagraph)
}

func (p *ParagraphChunker) Split(text string) ([]string, error) {
	// fallback на fixed зависит от текста, поэтому overlap проверяем всегда
	if err := p.config.ValidateOverlap(); err != nil {
		return nil, err
	}

	var paragraphs []string
	if HasParagraphBreaks(text) {
		paragraphs = SplitByParagraphs(text)
	}

	if len(paragraphs) == 0 {
		if text != "" {
			log.Printf("⚠️  [%s] No paragraph breaks found, falling back to %s", p.Name(), p.fixed.Name())
		}
		return p.fixed.Split(text)
	}

	return paragraphs, nil
}

func (p *ParagraphChunker) Chunk(content, source string) ([]Chunk, error) {
	pieces, err := p.Split(content)
	if err != nil {
		return nil, err
	}
	return buildChunks(pieces, source, StrategyParagraph), nil
}
