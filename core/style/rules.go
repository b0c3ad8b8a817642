package style

import "strings"

// Callout is the semantic kind of a colored paragraph block.
type Callout int

const (
	CalloutNone Callout = iota
	CalloutSuccess
	CalloutInfo
	CalloutWarning
	CalloutDanger
	CalloutQuote
)

// String returns the wiki class suffix for the callout ("success", "info", ...).
func (c Callout) String() string {
	switch c {
	case CalloutSuccess:
		return "success"
	case CalloutInfo:
		return "info"
	case CalloutWarning:
		return "warning"
	case CalloutDanger:
		return "danger"
	case CalloutQuote:
		return "quote"
	default:
		return ""
	}
}

// ParseCallout maps a callout name back to its kind.
func ParseCallout(name string) (Callout, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "success":
		return CalloutSuccess, true
	case "info":
		return CalloutInfo, true
	case "warning":
		return CalloutWarning, true
	case "danger":
		return CalloutDanger, true
	case "quote":
		return CalloutQuote, true
	}
	return CalloutNone, false
}

// Emphasis is the inline text styling implied by a class.
type Emphasis int

const (
	EmphasisNone Emphasis = iota
	EmphasisBold
	EmphasisItalic
	EmphasisStrike
)

func (e Emphasis) String() string {
	switch e {
	case EmphasisBold:
		return "bold"
	case EmphasisItalic:
		return "italic"
	case EmphasisStrike:
		return "strike"
	default:
		return ""
	}
}

// Marker returns the markup delimiter for the emphasis.
func (e Emphasis) Marker() string {
	switch e {
	case EmphasisBold:
		return "**"
	case EmphasisItalic:
		return "*"
	case EmphasisStrike:
		return "~~"
	default:
		return ""
	}
}

// CalloutRule maps background colors to a callout kind.
type CalloutRule struct {
	Kind   Callout
	Colors []string
}

// EmphasisRule maps declaration patterns to an emphasis.
type EmphasisRule struct {
	Emphasis Emphasis
	Patterns []string
}

// DefaultPalette is checked in order, first match wins.
var DefaultPalette = []CalloutRule{
	{Kind: CalloutSuccess, Colors: []string{"#e5f4ea", "rgb(46, 198, 98)", "#2ec662"}},
	{Kind: CalloutInfo, Colors: []string{"#edf0f5", "rgb(126, 162, 214)", "#7ea2d6"}},
	{Kind: CalloutWarning, Colors: []string{"#f9f4e4", "rgb(249, 204, 44)", "#f9cc2c"}},
	{Kind: CalloutDanger, Colors: []string{"#f7e5e5", "rgb(233, 52, 52)", "#e93434"}},
	{Kind: CalloutQuote, Colors: []string{"#d9d9d9", "rgb(217, 217, 217)"}},
}

// EmphasisRules is checked in order: bold before italic before strike.
var EmphasisRules = []EmphasisRule{
	{Emphasis: EmphasisBold, Patterns: []string{"font-weight:700", "font-weight:bold"}},
	{Emphasis: EmphasisItalic, Patterns: []string{"font-style:italic"}},
	{Emphasis: EmphasisStrike, Patterns: []string{"text-decoration:line-through", "text-decoration-line:line-through"}},
}

const backgroundProperty = "background-color"

// compact lower-cases s and drops all whitespace so that "rgb(46, 198, 98)"
// and "rgb(46,198,98)" compare equal.
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// MatchCallout tests a declaration against palette rules.
func MatchCallout(declaration string, palette []CalloutRule) Callout {
	decl := compact(declaration)
	if !strings.Contains(decl, backgroundProperty) {
		return CalloutNone
	}
	for _, rule := range palette {
		for _, color := range rule.Colors {
			if strings.Contains(decl, compact(color)) {
				return rule.Kind
			}
		}
	}
	return CalloutNone
}

// MatchEmphasis tests a declaration against EmphasisRules.
func MatchEmphasis(declaration string) Emphasis {
	decl := compact(declaration)
	for _, rule := range EmphasisRules {
		for _, p := range rule.Patterns {
			if strings.Contains(decl, p) {
				return rule.Emphasis
			}
		}
	}
	return EmphasisNone
}

// HasDeclaration reports whether declaration contains prop:value, ignoring
// case and whitespace.
func HasDeclaration(declaration, prop, value string) bool {
	return strings.Contains(compact(declaration), compact(prop+":"+value))
}
