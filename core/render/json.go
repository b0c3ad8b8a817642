// Package render: JSON renderer.
// Builds the structured JSON output from wiki markup and document metadata.
// The markup is parsed with goldmark (GFM tables and strikethrough) to
// extract structural information without inferring any business-specific
// fields.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jj-sm/html2wikijs/core"
)

// calloutTag matches the class line closing a callout block.
var calloutTag = regexp.MustCompile(`\{\.is-(success|info|warning|danger|quote)\}\s*$`)

// JSONRenderer produces structured JSON output from wiki markup.
type JSONRenderer struct {
	md goldmark.Markdown
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render converts markup and metadata into the document JSON structure.
func (r *JSONRenderer) Render(markup string, meta core.DocumentMetadata) ([]byte, error) {
	doc := core.DocumentJSON{
		Metadata: meta,
		Content: core.DocumentContent{
			Markdown: markup,
		},
	}
	doc.Content.Sections, doc.Structure = r.Inspect(markup)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Inspect parses markup and returns its heading-delimited sections and
// structural summary.
func (r *JSONRenderer) Inspect(markup string) ([]core.Section, core.DocumentStructure) {
	src := []byte(markup)
	root := r.md.Parser().Parse(text.NewReader(src))

	st := core.DocumentStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
		Images:   []core.Link{},
		Callouts: map[string]int{},
	}
	var bounds []sectionBound

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			h := core.Heading{Level: n.Level, Text: plainText(n, src)}
			st.Headings = append(st.Headings, h)
			if n.Lines().Len() > 0 {
				start, end := lineBounds(src, n.Lines().At(0).Start)
				bounds = append(bounds, sectionBound{heading: h, start: start, end: end})
			}
			return ast.WalkSkipChildren, nil

		case *ast.Link:
			st.Links = append(st.Links, core.Link{Text: plainText(n, src), Href: string(n.Destination)})

		case *ast.AutoLink:
			url := string(n.URL(src))
			st.Links = append(st.Links, core.Link{Text: url, Href: url})

		case *ast.Image:
			st.Images = append(st.Images, core.Link{Text: plainText(n, src), Href: string(n.Destination)})

		case *ast.FencedCodeBlock:
			st.CodeBlocks++
			return ast.WalkSkipChildren, nil

		case *ast.List:
			// nested lists belong to their outer list
			if _, nested := n.Parent().(*ast.ListItem); !nested {
				st.Lists++
			}

		case *ast.Blockquote:
			if m := calloutTag.FindStringSubmatch(plainText(n, src)); m != nil {
				st.Callouts[m[1]]++
			}

		case *east.Table:
			st.Tables++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return buildSections(src, bounds), st
}

type sectionBound struct {
	heading    core.Heading
	start, end int // heading line in src
}

// buildSections cuts src at every heading line. Text before the first heading
// belongs to no section.
func buildSections(src []byte, bounds []sectionBound) []core.Section {
	if len(bounds) == 0 {
		return nil
	}
	sections := make([]core.Section, 0, len(bounds))
	for i, b := range bounds {
		stop := len(src)
		if i+1 < len(bounds) {
			stop = bounds[i+1].start
		}
		sections = append(sections, core.Section{
			Heading: b.heading.Text,
			Level:   b.heading.Level,
			Text:    strings.TrimSpace(string(src[b.end:stop])),
		})
	}
	return sections
}

// lineBounds returns the start and end offsets of the line holding pos.
func lineBounds(src []byte, pos int) (int, int) {
	start := pos
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return start, end
}

// plainText concatenates the text below n. Line breaks become spaces.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Value(src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(c.Value)
		case *ast.AutoLink:
			sb.Write(c.URL(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
