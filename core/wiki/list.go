package wiki

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const indentUnit = "  "

// list renders an <ol> or <ul> at the given nesting depth.
func (rc *renderContext) list(s *goquery.Selection, depth int) string {
	ordered := goquery.NodeName(s) == "ol"
	indent := strings.Repeat(indentUnit, depth)

	start := 1
	if ordered {
		if v, ok := s.Attr("start"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				start = n
			}
		}
	}

	var items []string
	// numbering follows the position among direct items, omitted ones included
	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		text := rc.listItem(li, depth)
		if text == "" {
			return
		}
		prefix := "-"
		if ordered {
			prefix = strconv.Itoa(start+i) + "."
		}
		if strings.HasPrefix(text, "\n") {
			items = append(items, indent+prefix+text)
		} else {
			items = append(items, indent+prefix+" "+text)
		}
	})
	return strings.Join(items, "\n")
}

// listItem renders the content of one <li>: its text parts joined by a space
// and each nested list on lines of its own.
func (rc *renderContext) listItem(li *goquery.Selection, depth int) string {
	var sb strings.Builder
	afterNested := false

	li.Contents().Each(func(_ int, child *goquery.Selection) {
		var part string
		switch kind := BlockKind(child); kind {
		case KindList:
			if nested := rc.list(child, depth+1); nested != "" {
				sb.WriteString("\n" + nested)
				afterNested = true
			}
			return
		case KindText:
			part = strings.TrimSpace(child.Text())
		case KindIgnored:
			return
		default:
			part = strings.TrimSpace(rc.inlineNode(child))
		}
		if part == "" {
			return
		}
		switch {
		case sb.Len() == 0:
			sb.WriteString(part)
		case afterNested:
			// text following a nested list continues the item on a new line
			sb.WriteString("\n" + strings.Repeat(indentUnit, depth+1) + part)
		default:
			sb.WriteString(" " + part)
		}
		afterNested = false
	})
	return sb.String()
}
