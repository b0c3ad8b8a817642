package wiki

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/jj-sm/html2wikijs/core/style"
)

const (
	hardBreak      = "  \n"
	redirectMarker = "google.com/url?"
)

// renderContext carries the classification results through every render
// call. It is never mutated once built.
type renderContext struct {
	styles *style.Classification
}

// inline renders the children of s into inline markup.
func (rc *renderContext) inline(s *goquery.Selection) string {
	var sb strings.Builder
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		sb.WriteString(rc.inlineNode(child))
	})
	return sb.String()
}

func (rc *renderContext) inlineNode(n *goquery.Selection) string {
	switch InlineKind(n) {
	case KindText:
		return n.Text()
	case KindLink:
		return "[" + rc.inline(n) + "](" + ResolveHref(n.AttrOr("href", "")) + ")"
	case KindEmphasis:
		return Emphasize(rc.inline(n), rc.styles.EmphasisOf(classes(n)))
	case KindLineBreak:
		return hardBreak
	case KindIgnored:
		return ""
	default:
		return rc.inline(n)
	}
}

// Emphasize wraps text in the markers of e. Surrounding whitespace stays
// outside the markers and blank text is never wrapped.
func Emphasize(text string, e style.Emphasis) string {
	marker := e.Marker()
	if marker == "" {
		return text
	}
	body := strings.TrimSpace(text)
	if body == "" {
		return text
	}
	lead := text[:len(text)-len(strings.TrimLeftFunc(text, unicode.IsSpace))]
	trail := text[len(strings.TrimRightFunc(text, unicode.IsSpace)):]
	return lead + marker + body + marker + trail
}

// ResolveHref unwraps redirect links of the form
// https://www.google.com/url?q=<target>&sa=D to <target>. The target is
// percent-decoded as a path would be, so "+" survives. Anything else is
// returned unchanged.
func ResolveHref(href string) string {
	if !strings.Contains(href, redirectMarker) {
		return href
	}
	_, query, ok := strings.Cut(href, "?")
	if !ok {
		return href
	}
	query, _, _ = strings.Cut(query, "#")
	for pair := range strings.SplitSeq(query, "&") {
		raw, found := strings.CutPrefix(pair, "q=")
		if !found || raw == "" {
			continue
		}
		if target, err := url.PathUnescape(raw); err == nil {
			return target
		}
		return raw
	}
	return href
}
