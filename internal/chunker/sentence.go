package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SentenceChunker собирает целые предложения в чанки до MaxChunkSize.
// Предложение никогда не разрезается: одно длинное предложение становится отдельным чанком.
type SentenceChunker struct {
	config Config
}

// NewSentenceChunker создаёт новый sentence chunker
func NewSentenceChunker(config Config) *SentenceChunker {
	return &SentenceChunker{config: config}
}

func (s *SentenceChunker) Name() string {
	return string(StrategySentence)
}

func (s *SentenceChunker) Split(text string) ([]string, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, sentence := range SplitSentences(text) {
		sentenceLen := utf8.RuneCountInString(sentence)

		// Пробел-разделитель в сравнение не входит, поэтому чанк может
		// превысить лимит на пару символов
		if currentLen+sentenceLen < s.config.MaxChunkSize {
			current.WriteString(sentence)
			current.WriteString(" ")
			currentLen += sentenceLen + 1
			continue
		}

		chunks = append(chunks, strings.TrimSpace(current.String()))
		current.Reset()
		current.WriteString(sentence)
		current.WriteString(" ")
		currentLen = sentenceLen + 1
	}

	// Последний чанк
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return dropBlank(chunks), nil
}

func (s *SentenceChunker) Chunk(content, source string) ([]Chunk, error) {
	pieces, err := s.Split(content)
	if err != nil {
		return nil, err
	}
	return buildChunks(pieces, source, StrategySentence), nil
}

// SplitSentences режет текст после '.', '!' или '?', за которыми идут пробельные символы.
// Пробелы между предложениями отбрасываются, знак препинания остаётся в предложении.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}

		next := i + 1
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next == i+1 {
			// "3.14", "..." - не граница
			continue
		}

		sentences = append(sentences, string(runes[start:i+1]))
		start = next
		i = next - 1
	}

	return append(sentences, string(runes[start:]))
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
