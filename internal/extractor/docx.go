package extractor

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// extractDOCX читает word/document.xml: непустые параграфы по порядку, после каждого пустая строка
func extractDOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	for _, file := range zr.File {
		if file.Name != documentPart {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		return parseDocumentXML(rc)
	}

	return "", fmt.Errorf("%s not found in archive", documentPart)
}

// parseDocumentXML идёт по телу документа потоком. Параграфы таблиц попадают
// в текст в порядке документа. Из mc:AlternateContent берём только mc:Choice.
func parseDocumentXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out    strings.Builder
		para   strings.Builder
		inPara int
		inRun  int
		inText bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Fallback":
				// копия mc:Choice для старых версий Word
				if err := dec.Skip(); err != nil {
					return "", fmt.Errorf("parse %s: %w", documentPart, err)
				}
			case "p":
				if inPara == 0 {
					para.Reset()
				}
				inPara++
			case "r":
				inRun++
			case "t":
				inText = true
			case "tab":
				// w:tab внутри w:pPr/w:tabs - позиция табуляции, не текст
				if inRun > 0 {
					para.WriteString("\t")
				}
			case "br", "cr":
				if inRun > 0 {
					para.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				inPara--
				if inPara == 0 && strings.TrimSpace(para.String()) != "" {
					out.WriteString(para.String())
					out.WriteString("\n\n")
				}
			case "r":
				inRun--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && inPara > 0 {
				para.Write(t)
			}
		}
	}

	return out.String(), nil
}
