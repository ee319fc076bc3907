package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// StructuredSource is the primary acquisition strategy: page-structured
// extraction of positioned text fragments.
type StructuredSource struct{}

// NewStructuredSource creates the structured text source.
func NewStructuredSource() *StructuredSource {
	return &StructuredSource{}
}

// Name identifies the strategy in logs.
func (s *StructuredSource) Name() string {
	return "structured"
}

// Extract reads the PDF at path and returns its text with page boundaries
// preserved. Fragments on a page are concatenated with single spaces, and
// page texts are space-joined into the whole-document text.
func (s *StructuredSource) Extract(path string) (doc *Document, err error) {
	// The underlying parser panics on some malformed documents; contain
	// those the same way a parse error is contained.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("structured extraction panicked: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages []PageText
	var pageTexts []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		fragments := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			fragments = append(fragments, text.S)
		}

		pageText := strings.Join(fragments, " ")
		pages = append(pages, PageText{Number: pageNum, Text: pageText})
		pageTexts = append(pageTexts, pageText)
	}

	doc = &Document{
		Pages: pages,
		Text:  strings.Join(pageTexts, " "),
	}
	if strings.TrimSpace(doc.Text) == "" {
		return nil, fmt.Errorf("no text content could be extracted from PDF")
	}

	return doc, nil
}
