package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ExtractText produces a single text blob from an uploaded document.
//
// .txt content must be valid UTF-8; .pdf documents are extracted page by
// page, substituting the empty string for pages that yield no text. Any
// other extension returns "" — callers treat empty output as a
// failure-to-extract signal and stop before any external call.
func ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("file %s is not valid UTF-8 text", filename)
		}
		return string(data), nil
	case ".pdf":
		return extractPDFText(data)
	default:
		return "", nil
	}
}

// extractPDFText joins per-page text with a trailing newline per page. A page
// that fails to extract contributes an empty segment rather than aborting the
// document.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	pages := reader.NumPage()

	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			textBuilder.WriteString("\n")
			continue
		}

		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			text = ""
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
