package extractor

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF склеивает текст страниц, после каждой пустая строка. Пустые страницы пропускаются.
func extractPDF(path string) (text string, err error) {
	// ledongthuc/pdf паникует на части битых файлов
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if pageText == "" {
			continue
		}

		buf.WriteString(pageText)
		buf.WriteString("\n\n")
	}

	return buf.String(), nil
}
