package chunker

// FixedChunker режет текст окном фиксированного размера с overlap.
// Границы предложений и параграфов не учитываются, поэтому он же служит fallback'ом.
type FixedChunker struct {
	config Config
}

// NewFixedChunker создаёт новый fixed chunker
func NewFixedChunker(config Config) *FixedChunker {
	return &FixedChunker{config: config}
}

func (f *FixedChunker) Name() string {
	return string(StrategyFixed)
}

func (f *FixedChunker) Split(text string) ([]string, error) {
	if err := f.config.ValidateOverlap(); err != nil {
		return nil, err
	}
	return dropBlank(splitBySize(text, f.config.MaxChunkSize, f.config.Overlap)), nil
}

func (f *FixedChunker) Chunk(content, source string) ([]Chunk, error) {
	pieces, err := f.Split(content)
	if err != nil {
		return nil, err
	}
	return buildChunks(pieces, source, StrategyFixed), nil
}

// splitBySize простое разбиение по размеру с overlap.
// Окна не обрезаются; хвостовые короткие окна тоже попадают в результат,
// цикл идёт пока начало окна меньше длины текста. step > 0 гарантирует ValidateOverlap.
func splitBySize(text string, size, overlap int) []string {
	runes := []rune(text)
	step := size - overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
