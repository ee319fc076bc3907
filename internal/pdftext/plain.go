package pdftext

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PlainSource is the fallback acquisition strategy: flat full-document text
// with no page boundaries.
type PlainSource struct{}

// NewPlainSource creates the plain text source.
func NewPlainSource() *PlainSource {
	return &PlainSource{}
}

// Name identifies the strategy in logs.
func (s *PlainSource) Name() string {
	return "plain"
}

// Extract reads the PDF at path and returns its full text as a single flat
// document without page entries.
func (s *PlainSource) Extract(path string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("plain extraction panicked: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract plain text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, textReader); err != nil {
		return nil, fmt.Errorf("failed to read plain text: %w", err)
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content could be extracted from PDF")
	}

	return &Document{Text: text}, nil
}
