package wiki

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jj-sm/html2wikijs/core/style"
)

// Code regions are delimited in the text stream by arrow glyphs. The export
// uses either the private-use code points or their visible counterparts.
const (
	openMarkerPUA   = "\uEC03"
	openMarker      = "\U0001F846" // 🡆
	closeMarkerPUA  = "\uEC02"
	closeMarker     = "\U0001F844" // 🡄
	nbsp            = "\u00a0"
	imageDirPrefix  = "images/"
	centeredSuffix  = "{.is-centered}"
	fence           = "```"
	pythonLangHint  = "py"
	headingMarkChar = "#"
)

// DefaultCodeKeywords mark a captured code block as Python.
var DefaultCodeKeywords = []string{"def ", "print(", "import ", "class ", "if ", "for ", "while "}

type walkState int

const (
	stateNormal walkState = iota
	stateInCode
)

// walker holds all state of a single conversion.
type walker struct {
	rc       *renderContext
	log      *zap.Logger
	keywords []string

	out   output
	state walkState
	code  []string
}

func newWalker(styles *style.Classification, log *zap.Logger, keywords []string) *walker {
	if log == nil {
		log = zap.NewNop()
	}
	return &walker{
		rc:       &renderContext{styles: styles},
		log:      log,
		keywords: keywords,
	}
}

// walk renders every direct child of body and returns the normalized text.
func (w *walker) walk(body *goquery.Selection) string {
	body.Contents().Each(func(_ int, n *goquery.Selection) {
		w.visit(n)
	})
	w.finish()
	return w.out.String()
}

func (w *walker) visit(n *goquery.Selection) {
	kind := BlockKind(n)
	if kind == KindIgnored {
		return
	}
	if kind == KindText && strings.TrimSpace(n.Text()) == "" {
		return
	}

	markers := flatText(n, " ", true)
	switch w.state {
	case stateInCode:
		if hasClose(markers) {
			w.closeCode(rawText(n))
		} else {
			w.code = append(w.code, rawText(n))
		}
		return
	case stateNormal:
		if hasOpen(markers) {
			w.openCode(rawText(n))
			return
		}
	}

	w.block(n, kind)
}

func (w *walker) openCode(raw string) {
	residual := stripOpen(raw)
	w.state = stateInCode
	w.code = w.code[:0]
	if hasClose(residual) {
		w.closeCode(residual)
		return
	}
	if line := strings.TrimSpace(residual); line != "" {
		w.code = append(w.code, line)
	}
}

func (w *walker) closeCode(raw string) {
	if line := strings.TrimSpace(stripClose(raw)); line != "" {
		w.code = append(w.code, line)
	}
	w.emitCode()
	w.state = stateNormal
}

// finish flushes a code block whose close marker never came.
func (w *walker) finish() {
	if w.state != stateInCode {
		return
	}
	w.log.Warn("Code block not terminated, flushing at end of document",
		zap.Int("lines", len(w.code)))
	w.emitCode()
	w.state = stateNormal
}

func (w *walker) emitCode() {
	text := trimCode(strings.ReplaceAll(strings.Join(w.code, "\n"), nbsp, " "))
	w.code = w.code[:0]
	if text == "" {
		return
	}
	lang := ""
	for _, kw := range w.keywords {
		if strings.Contains(text, kw) {
			lang = pythonLangHint
			break
		}
	}
	w.out.add(fence+lang+"\n"+text+"\n"+fence, false)
}

func (w *walker) block(n *goquery.Selection, kind Kind) {
	switch kind {
	case KindText:
		w.out.add(strings.TrimSpace(n.Text()), false)

	case KindHeading:
		text := strings.TrimSpace(w.rc.inline(n))
		if text == "" {
			w.log.Debug("Dropping empty heading")
			return
		}
		w.out.add(strings.Repeat(headingMarkChar, headingLevel(n))+" "+text+"\n\n", true)

	case KindImageParagraph:
		w.out.add(w.images(n), false)

	case KindParagraph:
		if text := w.paragraph(n); text != "" {
			w.out.add(text, false)
		}

	case KindTable:
		if text := w.rc.table(n); text != "" {
			w.out.add(text, false)
		}

	case KindRule:
		w.out.add("---", false)

	case KindList:
		if text := w.rc.list(n, 0); text != "" {
			w.out.add(text, false)
		}

	default:
		if text := strings.TrimSpace(w.rc.inlineNode(n)); text != "" {
			w.out.add(text, false)
		}
	}
}

// paragraph renders p as plain text or, when one of its classes is a
// callout, as a quoted block tagged with the callout kind.
func (w *walker) paragraph(p *goquery.Selection) string {
	text := strings.TrimSpace(w.rc.inline(p))
	if text == "" {
		return ""
	}
	kind := w.rc.styles.CalloutOf(classes(p))
	if kind == style.CalloutNone {
		return text
	}

	var sb strings.Builder
	for line := range strings.SplitSeq(text, "\n") {
		sb.WriteString("> " + line + "\n")
	}
	sb.WriteString("> {.is-" + kind.String() + "}")
	return sb.String()
}

func (w *walker) images(p *goquery.Selection) string {
	centered := w.rc.styles.Declares(classes(p), "text-align", "center")

	var lines []string
	p.Find("img").Each(func(_ int, img *goquery.Selection) {
		alt := img.AttrOr("alt", "")
		if alt == "" {
			alt = "image"
		}
		src := img.AttrOr("src", "")
		if rest, ok := strings.CutPrefix(src, imageDirPrefix); ok {
			src = "/" + rest
		}
		line := "![" + alt + "](" + src + ")"
		if centered {
			line += centeredSuffix
		}
		lines = append(lines, line)
	})
	return strings.Join(lines, "\n")
}

func hasOpen(s string) bool {
	return strings.Contains(s, openMarkerPUA) || strings.Contains(s, openMarker)
}

func hasClose(s string) bool {
	return strings.Contains(s, closeMarkerPUA) || strings.Contains(s, closeMarker)
}

func stripOpen(s string) string {
	return strings.NewReplacer(openMarkerPUA, "", openMarker, "").Replace(s)
}

func stripClose(s string) string {
	return strings.NewReplacer(closeMarkerPUA, "", closeMarker, "").Replace(s)
}

// trimCode drops leading blank lines and trailing whitespace. Indentation of
// the first code line is kept.
func trimCode(text string) string {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	for text != "" {
		line, rest, found := strings.Cut(text, "\n")
		if strings.TrimSpace(line) != "" || !found {
			break
		}
		text = rest
	}
	return text
}
