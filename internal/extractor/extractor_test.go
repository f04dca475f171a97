package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// writeDOCX builds a minimal .docx archive with the given body XML.
func writeDOCX(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return path
}

// writePDF собирает минимальный PDF: по странице на элемент pages, "" - страница без содержимого
func writePDF(t *testing.T, dir, name string, pages ...string) string {
	t.Helper()

	var objects []string
	kids := make([]string, 0, len(pages))
	fontID := 3 + 2*len(pages)

	// 1 - каталог, 2 - дерево страниц, дальше пары страница/поток, последним шрифт
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>", "")
	for i, text := range pages {
		pageID := 3 + 2*i
		kids = append(kids, fmt.Sprintf("%d 0 R", pageID))
		if text == "" {
			objects = append(objects,
				"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
				"<< >>")
			continue
		}
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontID, pageID+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"report.pdf", FormatPDF, false},
		{"/tmp/REPORT.PDF", FormatPDF, false},
		{"notes.docx", FormatDOCX, false},
		{"notes.Docx", FormatDOCX, false},
		{"notes.doc", "", true},
		{"readme.md", "", true},
		{"plain.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_UnsupportedFormatRejectedBeforeIO(t *testing.T) {
	// the file does not exist: the format error must come first
	_, err := New().Extract(filepath.Join(t.TempDir(), "missing.txt"))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NotErrorIs(t, err, ErrExtraction)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(filepath.Join(t.TempDir(), "missing.pdf"))

	assert.ErrorIs(t, err, ErrExtraction)
	assert.Contains(t, err.Error(), "missing.pdf")
}

func TestExtract_CorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf at all"), 0o644))

	_, err := New().Extract(path)

	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtract_CorruptDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("PK but not really"), 0o644))

	_, err := New().Extract(path)

	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtract_DOCXWithoutDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("docProps/core.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = New().Extract(path)

	assert.ErrorIs(t, err, ErrExtraction)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtract_DOCX(t *testing.T) {
	body := `
<w:p><w:r><w:t>First</w:t></w:r><w:r><w:t xml:space="preserve">   paragraph	here.</w:t></w:r></w:p>
<w:p><w:r><w:t>   </w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>Second</w:t><w:tab/><w:t>has a tab.</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell text.</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Styled.</w:t></w:r></w:p>
<w:p><w:hyperlink><w:r><w:t>Linked</w:t></w:r></w:hyperlink><w:r><w:t> tail.</w:t></w:r></w:p>`
	path := writeDOCX(t, t.TempDir(), "doc.docx", body)

	text, err := New().Extract(path)

	require.NoError(t, err)
	assert.Equal(t, "First paragraph here.\n\nSecond has a tab.\n\nCell text.\n\nStyled.\n\nLinked tail.", text)
}

func TestExtract_PDF(t *testing.T) {
	path := writePDF(t, t.TempDir(), "doc.pdf", "Hello   page one.", "", "Second page.")

	text, err := New().Extract(path)

	require.NoError(t, err)
	assert.Equal(t, "Hello page one.\n\nSecond page.", text)
}

func TestExtractPDF_PageSeparators(t *testing.T) {
	path := writePDF(t, t.TempDir(), "raw.pdf", "One.", "Two.")

	raw, err := extractPDF(path)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(raw, "Two.\n\n"), "%q", raw)
	assert.Equal(t, 2, strings.Count(raw, "\n\n"))
}

func TestExtract_DOCXTextBoxIsReadOnce(t *testing.T) {
	body := `
<w:p><w:r><mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">
<mc:Choice Requires="wps"><w:drawing><w:txbxContent><w:p><w:r><w:t>Box text.</w:t></w:r></w:p></w:txbxContent></w:drawing></mc:Choice>
<mc:Fallback><w:pict><w:txbxContent><w:p><w:r><w:t>Box text.</w:t></w:r></w:p></w:txbxContent></w:pict></mc:Fallback>
</mc:AlternateContent></w:r></w:p>
<w:p><w:r><w:t>After box.</w:t></w:r></w:p>`
	path := writeDOCX(t, t.TempDir(), "box.docx", body)

	text, err := New().Extract(path)

	require.NoError(t, err)
	assert.Equal(t, "Box text.\n\nAfter box.", text)
}

func TestExtract_DOCXEmptyBody(t *testing.T) {
	path := writeDOCX(t, t.TempDir(), "blank.docx", `<w:p/>`)

	text, err := New().Extract(path)

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces and tabs", "a  \t b\t\tc", "a b c"},
		{"keeps single blank line", "a\n\nb", "a\n\nb"},
		{"caps blank lines", "a\n\n\n\n\nb", "a\n\nb"},
		{"keeps single newline", "a\nb", "a\nb"},
		{"trims", "\n\n  a b  \n\n", "a b"},
		{"empty", "   \n\n\t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_NoDoubleBlankLines(t *testing.T) {
	out := Normalize("p1\n\n\n\np2\n\n\n\n\n\np3")
	assert.False(t, strings.Contains(out, "\n\n\n"))
}
