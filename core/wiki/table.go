package wiki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const alignCell = ":----"

// table renders a pipe table. The first non-empty row becomes the header.
func (rc *renderContext) table(t *goquery.Selection) string {
	var rows [][]string
	t.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		blank := true
		tr.Find("td, th").Each(func(_ int, td *goquery.Selection) {
			cell := rc.cell(td)
			if cell != "" {
				blank = false
			}
			row = append(row, cell)
		})
		if !blank {
			rows = append(rows, row)
		}
	})
	if len(rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, tableRow(rows[0]))
	sep := make([]string, len(rows[0]))
	for i := range sep {
		sep[i] = alignCell
	}
	lines = append(lines, tableRow(sep))
	for _, row := range rows[1:] {
		lines = append(lines, tableRow(row))
	}
	return strings.Join(lines, "\n")
}

func (rc *renderContext) cell(td *goquery.Selection) string {
	text := strings.Join(rc.cellParts(td), " ")
	// a cell must stay on one line
	text = strings.Join(strings.Fields(text), " ")
	return strings.ReplaceAll(text, "|", `\|`)
}

// cellParts renders the direct children of s. Paragraphs are descended into
// so that emphasis inside the usual <td><p>...</p></td> export survives.
func (rc *renderContext) cellParts(s *goquery.Selection) []string {
	var parts []string
	s.Contents().Each(func(_ int, n *goquery.Selection) {
		var part string
		switch InlineKind(n) {
		case KindText:
			part = strings.TrimSpace(n.Text())
		case KindEmphasis:
			part = Emphasize(strings.TrimSpace(n.Text()), rc.styles.EmphasisOf(classes(n)))
		case KindLink:
			part = "[" + n.Text() + "](" + ResolveHref(n.AttrOr("href", "")) + ")"
		case KindIgnored:
			return
		default:
			if goquery.NodeName(n) == "p" {
				parts = append(parts, rc.cellParts(n)...)
				return
			}
			part = flatText(n, " ", true)
		}
		if part != "" {
			parts = append(parts, part)
		}
	})
	return parts
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
