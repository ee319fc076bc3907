// Package pdftext turns PDF files into page-addressable text for the
// pattern extractor. Two interchangeable strategies exist: a structured
// extractor that preserves page boundaries and a flat-text fallback.
package pdftext

// PageText is the text of a single page, fragments joined with single spaces.
type PageText struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Document is the text content of one PDF. Text is the whole-document text,
// page texts joined with single spaces. A flat strategy produces a document
// without page entries.
type Document struct {
	Pages []PageText `json:"pages,omitempty"`
	Text  string     `json:"text"`
}

// Source is one way of acquiring text from a PDF file path. Implementations
// return an error on unreadable or non-PDF content; sequencing and failure
// containment are the caller's concern.
type Source interface {
	Name() string
	Extract(path string) (*Document, error)
}
