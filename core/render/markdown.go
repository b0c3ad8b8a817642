// Package render provides output renderers for the html2wikijs pipeline.
// This file implements the Markdown renderer, which is a simple passthrough.
package render

import (
	"fmt"

	"github.com/jj-sm/html2wikijs/core"
)

// MarkdownRenderer writes wiki markup as-is. It's the simplest renderer
// since the markup is already the canonical pipeline format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the markup as bytes (passthrough).
func (r *MarkdownRenderer) Render(markup string, _ core.DocumentMetadata) ([]byte, error) {
	return []byte(markup), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ForFormat returns the renderer for a format name.
func ForFormat(format string) (core.Renderer, error) {
	switch format {
	case "", "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	}
	return nil, fmt.Errorf("unknown format %q (want markdown, json or pdf)", format)
}
