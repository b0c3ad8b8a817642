package wiki

import (
	"regexp"
	"strings"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// output collects completed block renderings in document order.
type output struct {
	chunks       []string
	afterHeading bool
}

// add appends chunk. Unless the previous block was a heading or already ends
// in a blank line, one blank line separates it from the previous chunk.
func (o *output) add(chunk string, heading bool) {
	if n := len(o.chunks); n > 0 && !o.afterHeading {
		if prev := o.chunks[n-1]; !strings.HasSuffix(prev, "\n\n") {
			o.chunks[n-1] = strings.TrimRight(prev, "\n") + "\n\n"
		}
	}
	o.chunks = append(o.chunks, chunk)
	o.afterHeading = heading
}

func (o *output) String() string {
	return Normalize(strings.Join(o.chunks, ""))
}

// Normalize collapses runs of three or more newlines to a blank line, trims
// the text and ends non-empty text with exactly one newline.
func Normalize(text string) string {
	text = strings.TrimSpace(blankRuns.ReplaceAllString(text, "\n\n"))
	if text == "" {
		return ""
	}
	return text + "\n"
}
