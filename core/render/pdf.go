// Package render: PDF renderer.
// Converts wiki markup into a printable preview using gofpdf.
// Handles headings (variable font sizes), paragraphs, callouts, tables,
// code blocks, lists and rules. Images are shown as placeholders.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/jj-sm/html2wikijs/core"
	"github.com/jj-sm/html2wikijs/core/style"
)

const (
	bodyFont   = "Helvetica"
	codeFont   = "Courier"
	pageMargin = 15.0
	indentStep = 5.0
)

var (
	calloutLine = regexp.MustCompile(`^>\s?\{\.is-([a-z]+)\}\s*$`)
	imageLine   = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]*)\)(\{\.is-centered\})?$`)
	orderedItem = regexp.MustCompile(`^\d+\.(\s|$)`)
	linkSyntax  = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	italicRun   = regexp.MustCompile(`(^|[^*\w])\*([^*\s][^*]*)\*`)
	inlineCode  = regexp.MustCompile("`([^`]+)`")
)

// PDFRenderer renders wiki markup as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// pdfWriter carries the document and its UTF-8 translator through a render.
type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string

	quote []string // pending callout lines
}

// Render converts markup into PDF bytes.
func (r *PDFRenderer) Render(markup string, meta core.DocumentMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	if meta.Title != "" {
		pdf.SetFont(bodyFont, "B", 18)
		pdf.MultiCell(0, 8, w.tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}
	if meta.Source != "" {
		pdf.SetFont(bodyFont, "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("Source: "+meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	inCodeBlock := false
	for line := range strings.SplitSeq(markup, "\n") {
		if strings.HasPrefix(line, "```") {
			w.flushQuote(style.CalloutQuote)
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}
		if inCodeBlock {
			pdf.SetFont(codeFont, "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, w.tr(line), "", "L", true)
			continue
		}

		if m := calloutLine.FindStringSubmatch(line); m != nil {
			kind, _ := style.ParseCallout(m[1])
			w.flushQuote(kind)
			continue
		}
		if strings.HasPrefix(line, ">") {
			w.quote = append(w.quote, strings.TrimPrefix(strings.TrimPrefix(line, ">"), " "))
			continue
		}
		w.flushQuote(style.CalloutQuote)

		w.line(line)
	}
	w.flushQuote(style.CalloutQuote)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// line renders one line outside code blocks and callouts.
func (w *pdfWriter) line(line string) {
	pdf := w.pdf
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		pdf.Ln(3)

	case strings.HasPrefix(line, "#"):
		level := len(line) - len(strings.TrimLeft(line, "#"))
		w.heading(strings.TrimSpace(line[level:]), level)

	case trimmed == "---":
		pdf.Ln(2)
		left, _, right, _ := pdf.GetMargins()
		pageWidth, _ := pdf.GetPageSize()
		y := pdf.GetY()
		pdf.SetDrawColor(180, 180, 180)
		pdf.Line(left, y, pageWidth-right, y)
		pdf.Ln(3)

	case strings.HasPrefix(trimmed, "|"):
		if isSeparatorRow(trimmed) {
			return
		}
		pdf.SetFont(bodyFont, "", 10)
		pdf.MultiCell(0, 5, w.tr(tableCells(trimmed)), "B", "L", false)

	case imageLine.MatchString(trimmed):
		m := imageLine.FindStringSubmatch(trimmed)
		align := "L"
		if m[3] != "" {
			align = "C"
		}
		pdf.SetFont(bodyFont, "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("[image: "+m[1]+"] "+m[2]), "", align, false)
		pdf.SetTextColor(0, 0, 0)

	case trimmed == "-" || strings.HasPrefix(trimmed, "- "):
		w.listItem(line, "• "+strings.TrimSpace(strings.TrimPrefix(trimmed, "-")))

	case orderedItem.MatchString(trimmed):
		w.listItem(line, trimmed)

	default:
		pdf.SetFont(bodyFont, "", 10)
		pdf.MultiCell(0, 5, w.tr(cleanInlineMarkup(line)), "", "L", false)
	}
}

func (w *pdfWriter) listItem(line, text string) {
	depth := (len(line) - len(strings.TrimLeft(line, " "))) / 2
	left, _, _, _ := w.pdf.GetMargins()
	w.pdf.SetX(left + float64(depth)*indentStep)
	w.pdf.SetFont(bodyFont, "", 10)
	w.pdf.MultiCell(0, 5, w.tr(cleanInlineMarkup(text)), "", "L", false)
}

// heading sets the font size based on heading level and writes text.
func (w *pdfWriter) heading(text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	w.pdf.Ln(4)
	w.pdf.SetFont(bodyFont, "B", size)
	w.pdf.MultiCell(0, size*0.6, w.tr(cleanInlineMarkup(text)), "", "L", false)
	w.pdf.Ln(2)
}

// flushQuote renders pending quoted lines on the tint of kind.
func (w *pdfWriter) flushQuote(kind style.Callout) {
	if len(w.quote) == 0 {
		return
	}
	r, g, b := calloutTint(kind)
	w.pdf.SetFillColor(r, g, b)
	w.pdf.SetFont(bodyFont, "", 10)
	w.pdf.Ln(1)
	for _, line := range w.quote {
		w.pdf.MultiCell(0, 5, w.tr(cleanInlineMarkup(line)), "L", "L", true)
	}
	w.pdf.Ln(2)
	w.quote = w.quote[:0]
}

// calloutTint returns the first hex color of the palette entry for kind.
func calloutTint(kind style.Callout) (int, int, int) {
	for _, rule := range style.DefaultPalette {
		if rule.Kind != kind {
			continue
		}
		for _, c := range rule.Colors {
			if r, g, b, ok := parseHexColor(c); ok {
				return r, g, b
			}
		}
	}
	return 240, 240, 240
}

func parseHexColor(s string) (int, int, int, bool) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func isSeparatorRow(row string) bool {
	return strings.Trim(row, "|:- ") == ""
}

// tableCells turns "| a | b |" into "a | b" with escaped pipes restored.
func tableCells(row string) string {
	row = strings.TrimSuffix(strings.TrimPrefix(row, "| "), " |")
	return strings.ReplaceAll(cleanInlineMarkup(row), `\|`, "|")
}

// cleanInlineMarkup strips inline wiki formatting for PDF rendering.
func cleanInlineMarkup(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "~~", "")
	// italic markers only around words, so "2 * 3" survives
	text = italicRun.ReplaceAllString(text, "$1$2")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = linkSyntax.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "{.is-centered}", "")
	return strings.TrimSpace(text)
}
