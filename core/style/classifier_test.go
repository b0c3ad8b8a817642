package style

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap/zaptest"
)

func TestClassifyCSS_Palette(t *testing.T) {
	tests := []struct {
		name string
		decl string
		want Callout
	}{
		{"success hex", "background-color:#e5f4ea", CalloutSuccess},
		{"success rgb", "background-color:rgb(46, 198, 98)", CalloutSuccess},
		{"info hex", "background-color:#edf0f5", CalloutInfo},
		{"info upper case", "BACKGROUND-COLOR:#EDF0F5", CalloutInfo},
		{"warning hex", "background-color:#f9cc2c", CalloutWarning},
		{"warning pale", "padding:0;background-color:#f9f4e4", CalloutWarning},
		{"danger rgb", "background-color: rgb(233, 52, 52)", CalloutDanger},
		{"quote", "background-color:#d9d9d9", CalloutQuote},
		{"unknown color", "background-color:#123456", CalloutNone},
		{"color without background", "color:#e5f4ea", CalloutNone},
	}

	c := NewClassifier(zaptest.NewLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.ClassifyCSS(".c1{" + tt.decl + "}")
			if got := res.CalloutOf([]string{"c1"}); got != tt.want {
				t.Errorf("CalloutOf() = %v, want %v (raw %q)", got, tt.want, res.Raw["c1"])
			}
		})
	}
}

func TestClassifyCSS_Emphasis(t *testing.T) {
	tests := []struct {
		name string
		decl string
		want Emphasis
	}{
		{"bold numeric", "font-weight:700", EmphasisBold},
		{"bold keyword", "font-weight:bold", EmphasisBold},
		{"bold spaced", "font-weight: 700", EmphasisBold},
		{"italic", "font-style:italic", EmphasisItalic},
		{"strike", "text-decoration:line-through", EmphasisStrike},
		{"strike line", "text-decoration-line: line-through", EmphasisStrike},
		{"bold wins over italic", "font-style:italic;font-weight:700", EmphasisBold},
		{"italic wins over strike", "text-decoration:line-through;font-style:italic", EmphasisItalic},
		{"normal weight", "font-weight:400;font-style:normal", EmphasisNone},
	}

	c := NewClassifier(zaptest.NewLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.ClassifyCSS(".c2{" + tt.decl + "}")
			if got := res.EmphasisOf([]string{"c2"}); got != tt.want {
				t.Errorf("EmphasisOf() = %v, want %v (raw %q)", got, tt.want, res.Raw["c2"])
			}
		})
	}
}

func TestClassifyCSS_CalloutAndEmphasisIndependent(t *testing.T) {
	c := NewClassifier(zaptest.NewLogger(t))
	res := c.ClassifyCSS(".c3{background-color:#f7e5e5;font-weight:700}")

	if got := res.Callouts["c3"]; got != CalloutDanger {
		t.Errorf("callout = %v, want danger", got)
	}
	if got := res.Emphases["c3"]; got != EmphasisBold {
		t.Errorf("emphasis = %v, want bold", got)
	}
}

func TestClassifyCSS_FirstDefinitionWins(t *testing.T) {
	c := NewClassifier(zaptest.NewLogger(t))
	res := c.ClassifyCSS(
		".c1{font-style:italic}.c1{font-weight:700}",
		".c1{text-decoration:line-through}",
	)
	if got := res.Emphases["c1"]; got != EmphasisItalic {
		t.Errorf("emphasis = %v, want italic", got)
	}
	if got := res.Raw["c1"]; got != "font-style:italic" {
		t.Errorf("raw = %q, want %q", got, "font-style:italic")
	}
}

func TestClassifyCSS_SelectorFiltering(t *testing.T) {
	sheet := `
@import url('https://themes.googleusercontent.com/fonts/css?kit=abc');
.lst-kix_a-0>li:before{content:"\0025cf  "}
ol.lst-kix_a-0{list-style-type:none}
.a .b{font-weight:700}
.a.b{font-weight:700}
.hover:hover{font-weight:700}
.c4, .c5 ,p{font-style:italic}
@media print{.c6{font-weight:700}}
.c7{font-weight:700}
`
	c := NewClassifier(zaptest.NewLogger(t))
	res := c.ClassifyCSS(sheet)

	for _, name := range []string{"c4", "c5", "c7"} {
		if _, ok := res.Raw[name]; !ok {
			t.Errorf("expected class %q to be recorded, got %v", name, keys(res.Raw))
		}
	}
	for _, name := range []string{"a", "b", "hover", "lst-kix_a-0", "c6", "a.b"} {
		if _, ok := res.Raw[name]; ok {
			t.Errorf("class %q must not be recorded", name)
		}
	}
	if res.Emphases["c5"] != EmphasisItalic || res.Emphases["c7"] != EmphasisBold {
		t.Errorf("unexpected emphases: %v", res.Emphases)
	}
}

func TestClassifyCSS_MalformedRulesSkipped(t *testing.T) {
	c := NewClassifier(zaptest.NewLogger(t))
	res := c.ClassifyCSS("} .x{font-weight 700} .ok{font-style:italic}")

	if got := res.Emphases["ok"]; got != EmphasisItalic {
		t.Errorf("emphasis of ok = %v, want italic", got)
	}
	if _, ok := res.Emphases["x"]; ok {
		t.Errorf("malformed declaration must not classify")
	}
}

func TestClassifyCSS_Empty(t *testing.T) {
	res := NewClassifier(nil).ClassifyCSS("", "   ")
	if len(res.Raw) != 0 || len(res.Callouts) != 0 || len(res.Emphases) != 0 {
		t.Errorf("expected empty classification, got %+v", res)
	}
}

func TestClassifier_ExtraPalette(t *testing.T) {
	c := NewClassifier(zaptest.NewLogger(t), CalloutRule{Kind: CalloutInfo, Colors: []string{"#cfe2f3"}})
	res := c.ClassifyCSS(".c1{background-color:#cfe2f3}.c2{background-color:#e5f4ea}")

	if res.Callouts["c1"] != CalloutInfo {
		t.Errorf("extra palette entry not applied: %v", res.Callouts)
	}
	if res.Callouts["c2"] != CalloutSuccess {
		t.Errorf("default palette lost: %v", res.Callouts)
	}
}

func TestClassifier_ClassifyDocument(t *testing.T) {
	html := `<html><head>
<style>.c1{font-weight:700}</style>
<style>.c1{font-style:italic}.c2{text-align:center}</style>
</head><body><p class="c2">x</p></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	res := NewClassifier(zaptest.NewLogger(t)).Classify(doc)
	if res.Emphases["c1"] != EmphasisBold {
		t.Errorf("first style block must win, got %v", res.Emphases["c1"])
	}
	if !res.Declares([]string{"x", "c2"}, "text-align", "center") {
		t.Errorf("expected c2 to declare text-align:center, raw %q", res.Raw["c2"])
	}
	if res.Declares([]string{"c1"}, "text-align", "center") {
		t.Errorf("c1 does not center")
	}
}

func TestClassification_NilSafe(t *testing.T) {
	var c *Classification
	if c.CalloutOf([]string{"a"}) != CalloutNone || c.EmphasisOf([]string{"a"}) != EmphasisNone {
		t.Error("nil classification must classify nothing")
	}
	if c.Declares([]string{"a"}, "text-align", "center") {
		t.Error("nil classification declares nothing")
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
