package ranker

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for file types with no text extractor.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Ext returns the lowercase extension of path without the leading dot.
func Ext(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Supported reports whether ExtractText can read files with extension ext
// (lowercase, without the dot).
func Supported(ext string) bool {
	switch ext {
	case "txt", "md", "text", "html", "htm", "docx", "pdf":
		return true
	}
	return false
}

// ExtractText returns the raw text of a resume. Plain text and markdown are read
// as UTF-8 with invalid bytes dropped, HTML has its markup stripped, DOCX
// paragraphs are joined with newlines, and PDF pages are read as plain text.
func ExtractText(path string) (string, error) {
	switch Ext(path) {
	case "txt", "md", "text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.ToValidUTF8(string(data), ""), nil
	case "html", "htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return StripHTML(strings.ToValidUTF8(string(data), "")), nil
	case "docx":
		return extractDocx(path)
	case "pdf":
		return extractPDF(path)
	default:
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
}

func extractDocx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer func() { _ = rc.Close() }()

		return docxText(rc)
	}

	return "", fmt.Errorf("docx: word/document.xml not found")
}

func extractPDF(path string) (text string, err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("read pdf: %v", p)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	data, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// docxText collects the contents of <w:t> runs, one line per <w:p> paragraph.
// <w:br> and <w:cr> breaks become newlines.
func docxText(r io.Reader) (string, error) {
	var (
		dec    = xml.NewDecoder(r)
		b      strings.Builder
		inText bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
