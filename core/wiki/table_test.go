package wiki

import "testing"

func TestTable(t *testing.T) {
	css := ".b{font-weight:700}.i{font-style:italic}"
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "header and row",
			html: `<table><tr><td>Name</td><td>Age</td></tr><tr><td>Ana</td><td>30</td></tr></table>`,
			want: "| Name | Age |\n| :---- | :---- |\n| Ana | 30 |",
		},
		{
			name: "th cells",
			html: `<table><thead><tr><th>A</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>`,
			want: "| A |\n| :---- |\n| 1 |",
		},
		{
			name: "empty rows dropped",
			html: `<table><tr><td> </td><td></td></tr><tr><td>x</td><td></td></tr></table>`,
			want: "| x |  |\n| :---- | :---- |",
		},
		{
			name: "emphasis and links",
			html: `<table><tr><td><span class="i"> soft </span> and <a href="https://www.google.com/url?q=https://a.io&amp;sa=D">a</a></td></tr></table>`,
			want: "| *soft* and [a](https://a.io) |\n| :---- |",
		},
		{
			name: "multi-line cell",
			html: `<table><tr><td><p>one</p><p>two<br>three</p></td></tr></table>`,
			want: "| one two three |\n| :---- |",
		},
		{
			name: "no rows",
			html: `<table><tr><td></td></tr></table>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, s := fragment(t, css, tt.html, "table")
			if got := rc.table(s); got != tt.want {
				t.Errorf("table() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}
