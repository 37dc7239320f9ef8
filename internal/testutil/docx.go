// Package testutil builds fixture files for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// DocxBytes builds a minimal .docx with the given body paragraphs followed by
// one table holding the given rows of cells.
func DocxBytes(t testing.TB, paragraphs []string, rows [][]string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(paragraphXML(p))
	}
	if len(rows) > 0 {
		body.WriteString("<w:tbl>")
		for _, row := range rows {
			body.WriteString("<w:tr>")
			for _, cell := range row {
				body.WriteString("<w:tc>")
				for _, line := range strings.Split(cell, "\n") {
					body.WriteString(paragraphXML(line))
				}
				body.WriteString("</w:tc>")
			}
			body.WriteString("</w:tr>")
		}
		body.WriteString("</w:tbl>")
	}

	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="` + wordNS + `"><w:body>` + body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml":   doc,
	}
	for _, name := range []string{"[Content_Types].xml", "word/document.xml"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// WriteDocx writes a fixture built by DocxBytes into dir and returns its path.
func WriteDocx(t testing.TB, dir, name string, paragraphs []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, DocxBytes(t, paragraphs, rows), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ContractParagraphs returns the body of a typical contract for customer and
// object.
func ContractParagraphs(customer, object string) []string {
	return []string{
		"ДОГОВОР № 15/24",
		customer + ", именуемое в дальнейшем «Заказчик», с одной стороны, и ИП Гатауллин А.Ш.",
		"1. ПРЕДМЕТ ДОГОВОРА",
		"1.1. Исполнитель проводит испытания пожарных лестниц.",
		"1.2. Работы выполняются на объекте заказчика: " + object,
		"1.3. Срок выполнения работ 10 рабочих дней.",
	}
}

func paragraphXML(text string) string {
	var esc bytes.Buffer
	_ = xml.EscapeText(&esc, []byte(text))
	return `<w:p><w:r><w:t xml:space="preserve">` + esc.String() + `</w:t></w:r></w:p>`
}
