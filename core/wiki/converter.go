// Package wiki renders exported documents into Wiki.js markup.
//
// A conversion classifies the document's style classes first and then walks
// the direct children of <body>, dispatching on node kind. Code regions are
// recognized by marker glyphs in the text stream and captured verbatim.
package wiki

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jj-sm/html2wikijs/core/extract"
	"github.com/jj-sm/html2wikijs/core/style"
)

// Converter implements core.Converter. It is safe for concurrent use; all
// per-document state lives in a walker.
type Converter struct {
	log        *zap.Logger
	classifier *style.Classifier
	callouts   []style.CalloutRule
	keywords   []string
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithCallouts appends palette entries after the built-in ones.
func WithCallouts(rules ...style.CalloutRule) Option {
	return func(c *Converter) {
		c.callouts = append(c.callouts, rules...)
	}
}

// WithCodeKeywords replaces the keywords that mark a code block as Python.
func WithCodeKeywords(keywords []string) Option {
	return func(c *Converter) {
		if len(keywords) > 0 {
			c.keywords = keywords
		}
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		log:      zap.NewNop(),
		keywords: DefaultCodeKeywords,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.classifier = style.NewClassifier(c.log, c.callouts...)
	return c
}

// Convert renders doc. The document is modified: non-content nodes are
// removed once the style sheets have been read.
func (c *Converter) Convert(doc *goquery.Document) (markup string, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Conversion panicked", zap.Any("panic", r))
			markup, err = "", fmt.Errorf("convert: unexpected failure: %v", r)
		}
	}()

	styles := c.classifier.Classify(doc)
	body, err := extract.Body(doc)
	if err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}
	return c.RenderBody(body, styles), nil
}

// RenderBody walks the direct children of body using an existing
// classification. styles may be nil.
func (c *Converter) RenderBody(body *goquery.Selection, styles *style.Classification) string {
	w := newWalker(styles, c.log.Named("walker"), c.keywords)
	out := w.walk(body)
	c.log.Debug("Rendered document",
		zap.Int("blocks", len(w.out.chunks)),
		zap.Int("bytes", len(out)))
	return out
}
