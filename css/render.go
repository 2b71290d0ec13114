package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Render writes c in the notation described by style. original is the
// literal the style was parsed from; when it still parses to the same
// style, channels whose value did not change keep their original spelling,
// and a color equal to the original's yields original unchanged.
//
// A translucent color always renders its alpha component, even when the
// original literal had none. Function names are kept as written, so an
// opaque color written into rgba() stays rgba().
func Render(c Color, style Style, original string) (string, error) {
	var orig *literal
	if original != "" {
		if lit, err := parseLiteral(original); err == nil && lit.style == style {
			orig = lit
		}
	}
	if orig != nil && orig.color.Equal(c) {
		return original, nil
	}

	if style.Functional() {
		render := renderRGB
		if style.Notation == NotationHSL {
			render = renderHSL
		}
		return passThrough(c, render(c, style, orig), render(c, style, nil)), nil
	}

	switch style.Notation {
	case NotationHex:
		return renderHex(c, style), nil
	case NotationKeyword:
		if name, ok := ColorName(c); ok {
			return name, nil
		}
		return renderHex(c, Style{Notation: NotationHex}), nil
	default:
		return "", fmt.Errorf("render %v color: %w", style.Notation, ErrUnsupportedNotation)
	}
}

func renderHex(c Color, style Style) string {
	digits := fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	if style.HexAlphaDigits == 2 || !c.Opaque() {
		digits += fmt.Sprintf("%02x", c.AlphaByte())
	}
	if style.HexUpper {
		digits = strings.ToUpper(digits)
	}
	return "#" + digits
}

func renderRGB(c Color, style Style, orig *literal) string {
	values := [3]uint8{c.R, c.G, c.B}
	var origValues [3]uint8
	if orig != nil {
		origValues = [3]uint8{orig.color.R, orig.color.G, orig.color.B}
	}

	args := make([]string, 3)
	for i, v := range values {
		switch {
		case orig != nil && origValues[i] == v:
			args[i] = orig.channels[i].Raw()
		case style.ChannelsPercent:
			args[i] = strconv.Itoa(int(math.Round(float64(v)/255*100))) + "%"
		default:
			args[i] = strconv.Itoa(int(v))
		}
	}
	return renderFunction(c, style, orig, args)
}

func renderHSL(c Color, style Style, orig *literal) string {
	hsl := RGBToHSL(c)
	var origHSL HSL
	if orig != nil {
		origHSL = RGBToHSL(orig.color)
	}

	// Hue is undefined for grays and saturation for black and white.
	args := make([]string, 3)
	if orig != nil && origHSL.H == hsl.H && origHSL.hueDefined() && hsl.hueDefined() {
		args[0] = orig.channels[0].Raw()
	} else {
		args[0] = formatNumber(fromDegrees(float64(hsl.H), style.AngleUnit), style.LeadingZero) + style.AngleUnit.String()
	}
	if orig != nil && origHSL.S == hsl.S && origHSL.saturationDefined() && hsl.saturationDefined() {
		args[1] = orig.channels[1].Raw()
	} else {
		args[1] = strconv.Itoa(int(hsl.S)) + "%"
	}
	if orig != nil && origHSL.L == hsl.L {
		args[2] = orig.channels[2].Raw()
	} else {
		args[2] = strconv.Itoa(int(hsl.L)) + "%"
	}
	return renderFunction(c, style, orig, args)
}

// passThrough returns kept, the rendering that reuses original channel text,
// unless it reads back as neither c nor the color of the full rendering.
func passThrough(c Color, kept, full string) string {
	if kept == full {
		return full
	}
	k, err := parseLiteral(kept)
	if err != nil {
		return full
	}
	if k.color.Equal(c) {
		return kept
	}
	if f, err := parseLiteral(full); err == nil && k.color.Equal(f.color) {
		return kept
	}
	return full
}

// renderFunction joins the channel arguments and, when needed, the alpha
// argument using the literal's separator.
func renderFunction(c Color, style Style, orig *literal, args []string) string {
	sep, alphaSep := ", ", ", "
	if style.Separator != SeparatorComma {
		sep, alphaSep = " ", " / "
	}

	var sb strings.Builder
	sb.WriteString(style.functionName())
	sb.WriteByte('(')
	sb.WriteString(strings.Join(args, sep))
	if alpha, ok := renderAlpha(c, style, orig); ok {
		sb.WriteString(alphaSep)
		sb.WriteString(alpha)
	}
	sb.WriteByte(')')
	return sb.String()
}

// renderAlpha returns the alpha argument. It is omitted only when the
// original had no alpha argument and the new color is opaque.
func renderAlpha(c Color, style Style, orig *literal) (string, bool) {
	if !style.AlphaArg && c.Opaque() {
		return "", false
	}
	if orig != nil && orig.alpha != nil && orig.color.AlphaByte() == c.AlphaByte() {
		return orig.alpha.Raw(), true
	}
	if style.AlphaPercent {
		return strconv.Itoa(int(math.Round(float64(c.A)*100))) + "%", true
	}
	return formatNumber(float64(c.A), style.LeadingZero), true
}

// Replace substitutes rendered for the match in text, leaving everything
// else untouched. It fails with ErrStaleMatch when text no longer holds the
// matched literal at the match position.
func Replace(text string, m Match, rendered string) (string, error) {
	if m.Start < 0 || m.End > len(text) || m.Start > m.End || text[m.Start:m.End] != m.Text {
		return "", fmt.Errorf("replace %q at %d: %w", m.Text, m.Start, ErrStaleMatch)
	}
	return text[:m.Start] + rendered + text[m.End:], nil
}
