// Package style infers semantic meaning from the presentational CSS classes
// of an exported document. The export never uses semantic markup: callout
// boxes are paragraphs with a colored background and emphasis is a span whose
// class sets the font weight, style or decoration.
package style

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Classification is the result of a classifier pass. It is read-only once
// returned.
type Classification struct {
	Callouts map[string]Callout
	Emphases map[string]Emphasis
	Raw      map[string]string // class name -> normalized declaration text
}

// CalloutOf returns the callout kind of the first class that has one.
func (c *Classification) CalloutOf(classes []string) Callout {
	if c == nil {
		return CalloutNone
	}
	for _, name := range classes {
		if kind, ok := c.Callouts[name]; ok {
			return kind
		}
	}
	return CalloutNone
}

// EmphasisOf returns the emphasis of the first class (in attribute order)
// found in the emphasis map.
func (c *Classification) EmphasisOf(classes []string) Emphasis {
	if c == nil {
		return EmphasisNone
	}
	for _, name := range classes {
		if e, ok := c.Emphases[name]; ok {
			return e
		}
	}
	return EmphasisNone
}

// Declares reports whether any of the classes declares prop:value.
func (c *Classification) Declares(classes []string, prop, value string) bool {
	if c == nil {
		return false
	}
	for _, name := range classes {
		if decl, ok := c.Raw[name]; ok && HasDeclaration(decl, prop, value) {
			return true
		}
	}
	return false
}

// Classifier scans style sheets and classifies simple class selectors.
type Classifier struct {
	log     *zap.Logger
	palette []CalloutRule
}

// NewClassifier creates a Classifier using DefaultPalette followed by extra.
func NewClassifier(log *zap.Logger, extra ...CalloutRule) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	palette := make([]CalloutRule, 0, len(DefaultPalette)+len(extra))
	palette = append(palette, DefaultPalette...)
	palette = append(palette, extra...)
	return &Classifier{log: log.Named("style"), palette: palette}
}

// Classify reads every <style> element of doc in document order.
func (c *Classifier) Classify(doc *goquery.Document) *Classification {
	var sheets []string
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		sheets = append(sheets, s.Text())
	})
	return c.ClassifyCSS(sheets...)
}

// ClassifyCSS classifies the given style sheet texts. The first definition of
// a class wins.
func (c *Classifier) ClassifyCSS(sheets ...string) *Classification {
	res := &Classification{
		Callouts: make(map[string]Callout),
		Emphases: make(map[string]Emphasis),
		Raw:      make(map[string]string),
	}

	var order []string
	for _, sheet := range sheets {
		if strings.TrimSpace(sheet) == "" {
			continue
		}
		order = c.scan(sheet, res.Raw, order)
	}

	for _, name := range order {
		decl := res.Raw[name]
		if kind := MatchCallout(decl, c.palette); kind != CalloutNone {
			res.Callouts[name] = kind
		}
		if e := MatchEmphasis(decl); e != EmphasisNone {
			res.Emphases[name] = e
		}
	}

	c.log.Debug("Classified style sheets",
		zap.Int("sheets", len(sheets)),
		zap.Int("classes", len(res.Raw)),
		zap.Int("callouts", len(res.Callouts)),
		zap.Int("emphases", len(res.Emphases)))
	return res
}

// scan records top-level single-class rules of one sheet into raw and returns
// the extended first-seen order.
func (c *Classifier) scan(sheet string, raw map[string]string, order []string) []string {
	parser := css.NewParser(parse.NewInputString(sheet), false)

	// rules inside @media and friends are not top-level
	depth := 0
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				// end of input
				return order
			}
			c.log.Debug("Skipping malformed rule", zap.Error(parser.Err()))

		case css.AtRuleGrammar:
			c.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginAtRuleGrammar:
			depth++

		case css.EndAtRuleGrammar:
			if depth > 0 {
				depth--
			}

		case css.BeginRulesetGrammar:
			selectors := splitSelectors(parser.Values())
			body, ok := c.declarations(parser)
			if depth > 0 {
				continue
			}
			for _, sel := range selectors {
				name, simple := className(sel)
				if !simple {
					c.log.Debug("Skipping complex selector", zap.String("selector", sel))
					continue
				}
				if _, seen := raw[name]; seen {
					continue
				}
				raw[name] = body
				order = append(order, name)
			}
			if !ok {
				return order
			}
		}
	}
}

// declarations consumes declarations up to the end of the current ruleset and
// returns them as "prop:value;prop:value". ok is false when input ended.
func (c *Classifier) declarations(parser *css.Parser) (string, bool) {
	var decls []string
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return strings.Join(decls, ";"), false
			}
			c.log.Debug("Skipping malformed declaration", zap.Error(parser.Err()))

		case css.EndRulesetGrammar:
			return strings.Join(decls, ";"), true

		case css.DeclarationGrammar:
			var sb strings.Builder
			sb.Write(data)
			sb.WriteByte(':')
			for _, v := range parser.Values() {
				sb.Write(v.Data)
			}
			decls = append(decls, strings.TrimSpace(sb.String()))
		}
	}
}

// splitSelectors rebuilds a selector list from ruleset tokens.
func splitSelectors(values []css.Token) []string {
	var sb strings.Builder
	for _, v := range values {
		sb.Write(v.Data)
	}
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// className accepts only selectors of the exact form ".identifier".
func className(selector string) (string, bool) {
	name, found := strings.CutPrefix(selector, ".")
	if !found || name == "" {
		return "", false
	}
	for _, r := range name {
		if r == '-' || r == '_' || r > unicode.MaxASCII || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return "", false
	}
	return name, true
}
