package chunker

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
)

// paragraphBreak - одна или несколько пустых строк между параграфами
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// CreateChunk создаёт чанк с автоматической генерацией ID.
// Текст не обрезается: fixed-окна должны сохранять пробелы на границах.
func CreateChunk(text, source string, index int, strategy Strategy) Chunk {
	hash := sha256.Sum256([]byte(text + source))

	return Chunk{
		ID:       fmt.Sprintf("%x", hash[:8]),
		Index:    index,
		Text:     text,
		Source:   source,
		Strategy: strategy,
	}
}

// buildChunks превращает куски текста в чанки с позициями
func buildChunks(pieces []string, source string, strategy Strategy) []Chunk {
	chunks := make([]Chunk, 0, len(pieces))
	for i, p := range pieces {
		chunks = append(chunks, CreateChunk(p, source, i, strategy))
	}
	return chunks
}

// HasParagraphBreaks проверяет, есть ли в тексте хотя бы одна пустая строка
func HasParagraphBreaks(text string) bool {
	return paragraphBreak.MatchString(text)
}

// SplitByParagraphs разбивает текст на параграфы
func SplitByParagraphs(text string) []string {
	paragraphs := paragraphBreak.Split(text, -1)
	var result []string
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// dropBlank убирает пустые и состоящие из пробелов куски, порядок сохраняется
func dropBlank(pieces []string) []string {
	out := pieces[:0]
	for _, p := range pieces {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
