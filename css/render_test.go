package css

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rewrite parses original, renders c in its style and returns the result.
func rewrite(t *testing.T, original string, c Color) string {
	t.Helper()
	_, style, err := Parse(original)
	require.NoError(t, err)
	out, err := Render(c, style, original)
	require.NoError(t, err)
	return out
}

func TestRenderWrites(t *testing.T) {
	opaque := RGB(123, 45, 67)
	half := RGBA(123, 45, 67, .5)
	clear := RGBA(123, 45, 67, 0)
	hslHalf := HSLToRGB(HSL{H: 123, S: 45, L: 67, A: .5})
	hslOpaque := HSLToRGB(HSL{H: 123, S: 45, L: 67, A: 1})

	tests := []struct {
		original string
		color    Color
		want     string
	}{
		{"#f09", opaque, "#7b2d43"},
		{"#F09", opaque, "#7B2D43"},
		{"#ff0099", opaque, "#7b2d43"},
		{"#f090", clear, "#7b2d4300"},
		{"#ff009900", half, "#7b2d4380"},
		{"#f09", half, "#7b2d4380"},
		{"rgb(255, 0, 153)", opaque, "rgb(123, 45, 67)"},
		{"rgb(255,0,153)", opaque, "rgb(123, 45, 67)"},
		{"rgb(255 0 153)", opaque, "rgb(123 45 67)"},
		{"rgb(100%, 0%, 60%)", opaque, "rgb(48%, 18%, 26%)"},
		{"rgba(255, 0, 153, 1)", opaque, "rgba(123, 45, 67, 1)"},
		{"rgb(255, 0, 153, 100%)", half, "rgb(123, 45, 67, 50%)"},
		{"rgb(255 0 153 / 1)", half, "rgb(123 45 67 / .5)"},
		{"rgb(255 0 153 / 100%)", half, "rgb(123 45 67 / 50%)"},
		{"rgb(255 0 153 / 0.9)", half, "rgb(123 45 67 / 0.5)"},
		{"hsl(270, 60%, 70%)", hslOpaque, "hsl(123, 45%, 67%)"},
		{"hsl(270 60% 70%)", hslOpaque, "hsl(123 45% 67%)"},
		{"hsl(270, 60%, 50%, 15%)", hslHalf, "hsl(123, 45%, 67%, 50%)"},
		{"hsl(270deg,60%,70%)", hslHalf, "hsl(123deg, 45%, 67%, .5)"},
		{"hsl(270grad,60%,70%)", hslHalf, "hsl(136.67grad, 45%, 67%, .5)"},
		{"hsl(270rad,60%,70%)", hslHalf, "hsl(2.15rad, 45%, 67%, .5)"},
		{"hsl(270turn,60%,70%)", hslHalf, "hsl(.34turn, 45%, 67%, .5)"},
		{"hsl(270 60% 70%)", hslHalf, "hsl(123 45% 67% / .5)"},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(t, tt.original, tt.color))
		})
	}
}

func TestRenderRoundTrip(t *testing.T) {
	fixtures := []string{
		"#f09",
		"#F09",
		"#ff0099",
		"#f09a",
		"#ff0099aa",
		"rgb(255, 0, 153)",
		"rgb(255,0,153)",
		"rgb(255 0 153)",
		"rgb(100%, 0%, 60%)",
		"rgb(255, 0, 153, 1)",
		"rgb(255, 0, 153, 100%)",
		"rgb(255 0 153 / 1)",
		"rgb(255 0 153 / 100%)",
		"rgb(1e2, .5e1, .5e0, +.25e2%)",
		"rgba(255, 0, 153, .5)",
		"RGBA(51, 170, 51, 0.4)",
		"hsl(270, 60%, 70%)",
		"hsl(270 60% 70%)",
		"hsl(270deg, 60%, 70%)",
		"hsl(4.71239rad, 60%, 70%)",
		"hsl(.75turn, 60%, 70%)",
		"hsl(300grad 60% 70% / 15%)",
		"hsla(270, 60%, 50%, .15)",
		"rebeccapurple",
	}

	for _, original := range fixtures {
		t.Run(original, func(t *testing.T) {
			c, style, err := Parse(original)
			require.NoError(t, err)

			out, err := Render(c, style, original)
			require.NoError(t, err)
			assert.Equal(t, original, out)
		})
	}
}

func TestRenderPassesThroughUnchangedChannels(t *testing.T) {
	tests := []struct {
		original string
		color    Color
		want     string
	}{
		{"rgb(255, 0, 153)", RGB(255, 10, 153), "rgb(255, 10, 153)"},
		{"rgb(1e2, .5e1, .5e0)", RGB(100, 5, 2), "rgb(1e2, .5e1, 2)"},
		{"rgb(100%, 0%, 60%)", RGB(255, 0, 0), "rgb(100%, 0%, 0%)"},
		{"rgba(255, 0, 153, 0.50)", RGBA(0, 0, 153, .5), "rgba(0, 0, 153, 0.50)"},
		{"hsl(270, 60%, 70%)", HSLToRGB(HSL{H: 270, S: 60, L: 40, A: 1}), "hsl(270, 60%, 40%)"},
		// Hue is undefined for grays and saturation for white and black.
		{"hsl(270, 0%, 50%)", RGB(255, 0, 0), "hsl(0, 100%, 50%)"},
		{"hsl(0, 80%, 100%)", RGB(128, 128, 128), "hsl(0, 0%, 50%)"},
		{"hsl(90, 50%, 0%)", RGB(255, 255, 255), "hsl(0, 0%, 100%)"},
		{"hsl(120deg 0% 40%)", RGB(128, 128, 128), "hsl(0deg 0% 50%)"},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			out := rewrite(t, tt.original, tt.color)
			assert.Equal(t, tt.want, out)

			c, _, err := Parse(out)
			require.NoError(t, err)
			assert.True(t, tt.color.Equal(c), "%s reads back as %v, want %v", out, c, tt.color)
		})
	}
}

func TestRenderPercentAlphaFromEightBits(t *testing.T) {
	half := FromColor(color.NRGBA{R: 123, G: 45, B: 67, A: 128})

	assert.Equal(t, "rgb(123, 45, 67, 50%)", rewrite(t, "rgb(255, 0, 153, 100%)", half))
	assert.Equal(t, "rgb(123 45 67 / 50%)", rewrite(t, "rgb(255 0 153 / 100%)", half))
	assert.True(t, strings.HasSuffix(rewrite(t, "hsl(270 60% 50% / 15%)", half), " / 50%)"))
}

func TestRenderMixedPercentChannels(t *testing.T) {
	// Changed channels fall back to plain numbers when the literal mixed
	// percentages and numbers.
	assert.Equal(t, "rgb(100%, 45, 153)", rewrite(t, "rgb(100%, 0, 153)", RGB(255, 45, 153)))
	assert.Equal(t, "rgb(123, 0, 153)", rewrite(t, "rgb(100%, 0, 153)", RGB(123, 0, 153)))
}

func TestRenderPromotesAlpha(t *testing.T) {
	half := RGBA(123, 45, 67, .5)

	assert.Equal(t, "rgb(123, 45, 67, .5)", rewrite(t, "rgb(255, 0, 153)", half))
	assert.Equal(t, "rgb(123 45 67 / .5)", rewrite(t, "rgb(255 0 153)", half))

	// An alpha argument survives even when the new color is opaque.
	assert.Equal(t, "rgba(123, 45, 67, 1)", rewrite(t, "rgba(255, 0, 153, .5)", RGB(123, 45, 67)))
	assert.Equal(t, "rgb(123 45 67 / 100%)", rewrite(t, "rgb(255 0 153 / 50%)", RGB(123, 45, 67)))
}

func TestRenderKeepsFunctionName(t *testing.T) {
	assert.Equal(t, "RGB(123, 45, 67)", rewrite(t, "RGB(255, 0, 153)", RGB(123, 45, 67)))
	assert.Equal(t, "rgba(123, 45, 67, .5)", rewrite(t, "rgba(255, 0, 153, 1)", RGBA(123, 45, 67, .5)))
	assert.Equal(t, "Hsla(120, 100%, 25%, 1)", rewrite(t, "Hsla(270, 60%, 70%, 1)", RGB(0, 128, 0)))
}

func TestRenderKeyword(t *testing.T) {
	assert.Equal(t, "aqua", rewrite(t, "red", RGB(0, 255, 255)))
	assert.Equal(t, "transparent", rewrite(t, "red", RGBA(0, 0, 0, 0)))
	assert.Equal(t, "#7b2d43", rewrite(t, "red", RGB(123, 45, 67)))
	assert.Equal(t, "#7b2d4380", rewrite(t, "red", RGBA(123, 45, 67, .5)))
}

func TestRenderWithoutOriginal(t *testing.T) {
	out, err := Render(RGBA(123, 45, 67, .5), Style{Notation: NotationRGB, AlphaForm: true}, "")
	require.NoError(t, err)
	assert.Equal(t, "rgba(123, 45, 67, .5)", out)

	out, err = Render(RGB(0, 0, 255), Style{Notation: NotationHSL, Separator: SeparatorSpace, AngleUnit: AngleTurn}, "")
	require.NoError(t, err)
	assert.Equal(t, "hsl(.67turn 100% 50%)", out)
}

func TestRenderIgnoresMismatchedOriginal(t *testing.T) {
	_, style, err := Parse("rgb(255, 0, 153)")
	require.NoError(t, err)

	out, err := Render(RGB(255, 0, 153), style, "#ff0099")
	require.NoError(t, err)
	assert.Equal(t, "rgb(255, 0, 153)", out)
}

func TestRenderUnknownNotation(t *testing.T) {
	_, err := Render(RGB(1, 2, 3), Style{}, "")
	assert.ErrorIs(t, err, ErrUnsupportedNotation)
}

func TestReplace(t *testing.T) {
	text := "border: 1px solid #aabbcc;"
	m, ok := Detect(text)
	require.True(t, ok)

	out, err := Replace(text, m, "#7b2d43")
	require.NoError(t, err)
	assert.Equal(t, "border: 1px solid #7b2d43;", out)

	_, err = Replace("border: none", m, "#7b2d43")
	assert.ErrorIs(t, err, ErrStaleMatch)
}
