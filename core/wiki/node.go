package wiki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Kind is the closed set of node kinds the renderers dispatch on.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindLink
	KindEmphasis
	KindLineBreak
	KindHeading
	KindParagraph
	KindImageParagraph
	KindList
	KindListItem
	KindTable
	KindRule
	KindIgnored // comments, doctype
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindLink:
		return "link"
	case KindEmphasis:
		return "emphasis-span"
	case KindLineBreak:
		return "line-break"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindImageParagraph:
		return "image-paragraph"
	case KindList:
		return "list"
	case KindListItem:
		return "list-item"
	case KindTable:
		return "table"
	case KindRule:
		return "rule"
	case KindIgnored:
		return "ignored"
	default:
		return "other"
	}
}

// emphasisTags are phrasing elements whose class may carry emphasis.
var emphasisTags = map[string]bool{
	"span": true, "b": true, "strong": true, "i": true, "em": true, "u": true,
	"s": true, "strike": true, "del": true, "font": true, "mark": true,
	"sup": true, "sub": true,
}

// InlineKind classifies a node met inside inline content.
func InlineKind(s *goquery.Selection) Kind {
	switch name := goquery.NodeName(s); {
	case name == "#text":
		return KindText
	case name == "a":
		if _, ok := s.Attr("href"); ok {
			return KindLink
		}
		return KindOther
	case name == "br":
		return KindLineBreak
	case emphasisTags[name]:
		return KindEmphasis
	case isElement(s):
		return KindOther
	default:
		return KindIgnored
	}
}

// BlockKind classifies a direct child of the document body.
func BlockKind(s *goquery.Selection) Kind {
	switch name := goquery.NodeName(s); name {
	case "#text":
		return KindText
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return KindHeading
	case "p":
		if isImageParagraph(s) {
			return KindImageParagraph
		}
		return KindParagraph
	case "ul", "ol":
		return KindList
	case "li":
		return KindListItem
	case "table":
		return KindTable
	case "hr":
		return KindRule
	default:
		if isElement(s) {
			return KindOther
		}
		return KindIgnored
	}
}

func isElement(s *goquery.Selection) bool {
	return s.Length() > 0 && s.Get(0).Type == html.ElementNode
}

// headingLevel returns 1-6 for h1-h6.
func headingLevel(s *goquery.Selection) int {
	name := goquery.NodeName(s)
	if len(name) != 2 || name[0] != 'h' || name[1] < '1' || name[1] > '6' {
		return 0
	}
	return int(name[1] - '0')
}

// classes returns the class names of the first node in attribute order.
func classes(s *goquery.Selection) []string {
	return strings.Fields(s.AttrOr("class", ""))
}

// isImageParagraph reports whether a paragraph holds images and no text other
// than the first image's alt text.
func isImageParagraph(p *goquery.Selection) bool {
	imgs := p.Find("img")
	if imgs.Length() == 0 {
		return false
	}
	text := flatText(p, "", true)
	return text == "" || text == imgs.First().AttrOr("alt", "")
}

// flatText concatenates all text below s joined by sep. With strip each
// piece is trimmed and blank pieces are dropped.
func flatText(s *goquery.Selection, sep string, strip bool) string {
	var parts []string
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := n.Data
			if strip {
				text = strings.TrimSpace(text)
			}
			if !strip || text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	for _, n := range s.Nodes {
		f(n)
	}
	return strings.Join(parts, sep)
}

// rawText is the element text with forced line breaks kept as newlines.
func rawText(s *goquery.Selection) string {
	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	for _, n := range s.Nodes {
		f(n)
	}
	return sb.String()
}
