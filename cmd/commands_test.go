package cmd

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stylesheet = "a { color: #f09; }\nb { color: rgb(1, 2, 3); }\n"

func TestFindFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "site.css", stylesheet)

	out, _, err := run(t, fsys, "find", "site.css")
	require.NoError(t, err)
	assert.Contains(t, out, "site.css:1:12")
	assert.Contains(t, out, "#f09")
	assert.Contains(t, out, "#ff0099")
	assert.Contains(t, out, "site.css:2:12")
	assert.Contains(t, out, "rgb(1, 2, 3)")
	assert.Contains(t, out, "#010203")
}

func TestFindDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "web/site.css", stylesheet)
	writeFile(t, fsys, "web/index.html", `<p style="color: hsl(120, 100%, 25%)">hi</p>`)
	writeFile(t, fsys, "web/notes.txt", "#abcdef")
	writeFile(t, fsys, "web/node_modules/lib.css", "a { color: #123456; }")
	writeFile(t, fsys, "web/.cache/old.css", "a { color: #654321; }")

	out, _, err := run(t, fsys, "find", "web")
	require.NoError(t, err)
	assert.Contains(t, out, "hsl(120, 100%, 25%)")
	assert.Contains(t, out, "#f09")
	assert.NotContains(t, out, "#abcdef")
	assert.NotContains(t, out, "#123456")
	assert.NotContains(t, out, "#654321")
}

func TestFindKeywords(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "site.css", "a { color: rebeccapurple; }\n")

	out, _, err := run(t, fsys, "find", "site.css")
	require.NoError(t, err)
	assert.NotContains(t, out, "rebeccapurple")

	out, _, err = run(t, fsys, "--keywords", "find", "site.css")
	require.NoError(t, err)
	assert.Contains(t, out, "rebeccapurple")
	assert.Contains(t, out, "#663399")
}

func TestFindMissingFile(t *testing.T) {
	_, _, err := run(t, afero.NewMemMapFs(), "find", "missing.css")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		literal string
		color   string
		want    string
	}{
		{"#f09", "rgb(123, 45, 67)", "#7b2d43"},
		{"rgb(255 0 153 / 100%)", "rgba(123, 45, 67, .5)", "rgb(123 45 67 / 50%)"},
		{"hsl(270, 60%, 70%)", "#b385e0", "hsl(270, 60%, 70%)"},
		{"RGB(255, 0, 153)", "#7b2d4380", "RGB(123, 45, 67, .5)"},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			out, _, err := run(t, afero.NewMemMapFs(), "convert", tt.literal, tt.color)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	_, _, err := run(t, afero.NewMemMapFs(), "convert", "lab(50% 40 59)", "#000")
	assert.Error(t, err)

	_, _, err = run(t, afero.NewMemMapFs(), "convert", "#000", "#ff")
	assert.Error(t, err)

	_, _, err = run(t, afero.NewMemMapFs(), "convert", "#000")
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "site.css", stylesheet)

	out, _, err := run(t, fsys, "set", "site.css", "2", "#7b2d4380")
	require.NoError(t, err)
	assert.Equal(t, "site.css:2:12 rgb(1, 2, 3) -> rgb(123, 45, 67, .5)\n", out)

	data, err := afero.ReadFile(fsys, "site.css")
	require.NoError(t, err)
	assert.Equal(t, "a { color: #f09; }\nb { color: rgb(123, 45, 67, .5); }\n", string(data))
}

func TestSetErrors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "site.css", stylesheet)

	for _, args := range [][]string{
		{"set", "site.css", "0", "#000"},
		{"set", "site.css", "3", "#000"},
		{"set", "site.css", "one", "#000"},
		{"set", "site.css", "1", "notacolor"},
		{"set", "missing.css", "1", "#000"},
	} {
		_, _, err := run(t, fsys, args...)
		assert.Error(t, err, args)
	}

	data, err := afero.ReadFile(fsys, "site.css")
	require.NoError(t, err)
	assert.Equal(t, stylesheet, string(data))
}

func TestLineCol(t *testing.T) {
	src := "ab\ncé#f09"
	line, col := lineCol(src, 6)
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)

	line, col = lineCol(src, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}

func TestSetGrayHSL(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "site.css", "a { color: hsl(270, 0%, 50%); }\n")

	out, _, err := run(t, fsys, "set", "site.css", "1", "#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "site.css:1:12 hsl(270, 0%, 50%) -> hsl(0, 100%, 50%)\n", out)

	data, err := afero.ReadFile(fsys, "site.css")
	require.NoError(t, err)
	assert.Equal(t, "a { color: hsl(0, 100%, 50%); }\n", string(data))
}
