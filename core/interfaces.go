// Package core defines the pipeline interfaces for html2wikijs.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// FetchResult holds the raw HTML of an exported document.
type FetchResult struct {
	Source string
	HTML   string
}

// DocumentMetadata describes the converted document.
type DocumentMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink or image reference found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocumentContent holds the produced markup and its sections.
type DocumentContent struct {
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// DocumentStructure holds structural counts parsed from the produced markup.
type DocumentStructure struct {
	Headings   []Heading      `json:"headings"`
	Links      []Link         `json:"links"`
	Images     []Link         `json:"images"`
	CodeBlocks int            `json:"code_blocks"`
	Tables     int            `json:"tables"`
	Lists      int            `json:"lists"`
	Callouts   map[string]int `json:"callouts"`
}

// DocumentJSON is the complete JSON output for a single document.
type DocumentJSON struct {
	Metadata  DocumentMetadata  `json:"metadata"`
	Content   DocumentContent   `json:"content"`
	Structure DocumentStructure `json:"structure"`
}

// Fetcher retrieves the raw HTML export from a file path or URL.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (*FetchResult, error)
}

// Extractor parses raw HTML into a queryable document tree.
type Extractor interface {
	Extract(html string) (*goquery.Document, error)
}

// Converter turns a parsed export into wiki markup (the canonical format).
type Converter interface {
	Convert(doc *goquery.Document) (string, error)
}

// Renderer converts wiki markup (and metadata) into a final output format.
type Renderer interface {
	Render(markup string, meta DocumentMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
