package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// texts returns the text of every span located in src.
func texts(t *testing.T, l Locator, src string) []string {
	t.Helper()
	spans, err := l.Locate(src)
	require.NoError(t, err)
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.Text(src))
	}
	return out
}

func TestLines(t *testing.T) {
	spans, err := Lines{}.Locate("a\r\nb\n\nc")
	require.NoError(t, err)
	assert.Equal(t, []Span{{0, 1}, {3, 4}, {6, 7}}, spans)

	spans, err = Lines{}.Locate("")
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestHTML(t *testing.T) {
	src := `<!DOCTYPE html>
<p style="color: #f09">x</p>
<div STYLE='background:#abc' title="style=nope"></div>
<span style=color:red>y</span>
<style>
a { color: red }
b { color: #333 }
</style>
<p>#fff in text</p>`

	assert.Equal(t, []string{
		"color: #f09",
		"background:#abc",
		"color:red",
		"a { color: red }",
		"b { color: #333 }",
	}, texts(t, &HTML{}, src))
}

func TestHTMLScript(t *testing.T) {
	src := `<p style="color: #f09"></p><script>const c = "#fff";</script>`

	assert.Equal(t, []string{"color: #f09"}, texts(t, &HTML{}, src))
	assert.Equal(t, []string{"color: #f09", "#fff"}, texts(t, &HTML{Script: &JavaScript{}}, src))
}

func TestHTMLSkipsBrokenScript(t *testing.T) {
	src := `<script>const = ;</script><style>a { color: #abc }</style>`
	assert.Equal(t, []string{"a { color: #abc }"}, texts(t, &HTML{Script: &JavaScript{}}, src))
}

func TestJavaScript(t *testing.T) {
	src := "const a = \"#f09\";\n" +
		"const b = `rgb(1, 2, 3) ${x} #abc`;\n" +
		"style('color', 'hsl(1, 2%, 3%)');\n" +
		"el.style('border', `1px solid #eee`);\n" +
		"const é = 'é #ddd';"

	assert.Equal(t, []string{
		"#f09",
		"rgb(1, 2, 3) ",
		" #abc",
		"color",
		"hsl(1, 2%, 3%)",
		"border",
		"1px solid #eee",
		"é #ddd",
	}, texts(t, &JavaScript{}, src))

	assert.Equal(t, []string{"hsl(1, 2%, 3%)", "1px solid #eee"},
		texts(t, &JavaScript{Filter: CallFilter{Function: "style", Argument: 1}}, src))

	assert.Empty(t, texts(t, &JavaScript{Filter: CallFilter{Function: "style", Argument: 5}}, src))
}

func TestJavaScriptNestedFunctions(t *testing.T) {
	src := `function paint() { var c = "#123"; return () => "#456"; }`
	assert.Equal(t, []string{"#123", "#456"}, texts(t, &JavaScript{}, src))
}

func TestJavaScriptTemplateWithMultibyteStart(t *testing.T) {
	src := "x = `é #abc`"
	assert.Equal(t, []string{"é #abc"}, texts(t, &JavaScript{}, src))
}

func TestJavaScriptSyntaxError(t *testing.T) {
	_, err := (&JavaScript{}).Locate("const = ;")
	assert.Error(t, err)
}

func TestForPath(t *testing.T) {
	assert.IsType(t, Lines{}, ForPath("site.css", CallFilter{}))
	assert.IsType(t, &HTML{}, ForPath("index.HTML", CallFilter{}))
	assert.IsType(t, &JavaScript{}, ForPath("app.mjs", CallFilter{}))
	assert.IsType(t, Lines{}, ForPath("README", CallFilter{}))

	js := ForLanguage("javascript", CallFilter{Function: "css"}).(*JavaScript)
	assert.Equal(t, "css", js.Filter.Function)
}
