package extractor

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Format - поддерживаемый формат входного файла
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtraction        = errors.New("failed to extract text")
)

// DetectFormat определяет формат по расширению, файл не открывается
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	}
	if ext == "" {
		ext = "(none)"
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract возвращает нормализованный текст; границы параграфов остаются пустыми строками
func (e *Extractor) Extract(path string) (string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", err
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = extractPDF(path)
	case FormatDOCX:
		raw, err = extractDOCX(path)
	}
	if err != nil {
		return "", fmt.Errorf("%w from %s: %v", ErrExtraction, path, err)
	}

	return Normalize(raw), nil
}

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	extraNewlines   = regexp.MustCompile(`\n{3,}`)
)

// Normalize: пробелы и табы в один пробел, не больше одной пустой строки подряд, TrimSpace
func Normalize(text string) string {
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = extraNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
