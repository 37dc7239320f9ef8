package ingestion

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// ReadDocx extracts the body paragraphs and table cell texts of a .docx file.
func ReadDocx(path string) (Content, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Content{}, &Error{Path: path, Message: "failed to open docx archive", Cause: err}
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Content{}, &Error{Path: path, Message: "failed to open " + documentPart, Cause: err}
		}
		defer func() { _ = rc.Close() }()

		content, err := parseDocument(rc)
		if err != nil {
			return Content{}, &Error{Path: path, Message: "failed to parse " + documentPart, Cause: err}
		}
		return content, nil
	}
	return Content{}, &Error{Path: path, Message: documentPart + " not found"}
}

// ReadDocxText is ReadDocx followed by Content.Text.
func ReadDocxText(path string) (string, error) {
	c, err := ReadDocx(path)
	if err != nil {
		return "", err
	}
	return c.Text(), nil
}

// parseDocument walks WordprocessingML. Paragraphs outside tables become body
// paragraphs; paragraphs inside a top-level table cell are joined into that
// cell's text, nested tables included.
func parseDocument(r io.Reader) (Content, error) {
	var (
		content   Content
		para      strings.Builder
		cellParas []string
		inText    bool
		tblDepth  int
		runDepth  int // tab elements outside a run are tab stop definitions
	)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Content{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
			case "tc":
				if tblDepth == 1 {
					cellParas = cellParas[:0]
				}
			case "p":
				para.Reset()
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if runDepth > 0 {
					para.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					para.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth--
			case "tc":
				if tblDepth == 1 {
					content.Cells = append(content.Cells, strings.Join(cellParas, "\n"))
				}
			case "p":
				if tblDepth == 0 {
					content.Paragraphs = append(content.Paragraphs, para.String())
				} else {
					cellParas = append(cellParas, para.String())
				}
			case "r":
				runDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	return content, nil
}

// Error is returned when a document cannot be read.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error: %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
