// Package extract implements the Extractor interface.
// It parses an exported document and isolates the nodes that carry content:
//  1. The whole page is parsed into a goquery tree (style blocks included,
//     they are needed to classify classes)
//  2. Body strips non-content nodes (scripts, templates, stray style blocks)
//     and returns the <body> selection the walker renders
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/language"

	"github.com/jj-sm/html2wikijs/core"
)

// noiseSelectors are removed from the body before rendering.
// None of them contributes text to the produced markup.
var noiseSelectors = []string{
	"head", "style", "script", "noscript", "template",
	"meta", "link",
}

// HTMLExtractor parses exported HTML documents.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses raw HTML into a document tree.
func (e *HTMLExtractor) Extract(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Body removes noise elements from doc and returns its <body>. The parser
// always synthesizes a body, so the result is empty only for documents built
// from fragments.
func Body(doc *goquery.Document) (*goquery.Selection, error) {
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("no body found in HTML")
	}
	return body, nil
}

// Metadata describes doc. The title comes from <title>, then the first
// element marked as a document title, then the first heading. Language tags
// are returned in canonical form; unparsable ones are dropped.
func Metadata(doc *goquery.Document, source string) core.DocumentMetadata {
	meta := core.DocumentMetadata{Source: source}
	if lang := strings.TrimSpace(doc.Find("html").AttrOr("lang", "")); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			meta.Language = tag.String()
		}
	}
	for _, sel := range []string{"title", "p.title", "h1, h2, h3"} {
		if text := strings.Join(strings.Fields(doc.Find(sel).First().Text()), " "); text != "" {
			meta.Title = text
			break
		}
	}
	return meta
}
