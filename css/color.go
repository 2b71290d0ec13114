package css

import (
	"fmt"
	"image/color"
	"math"
)

// Color is the canonical form every parsed literal normalizes to: 8-bit RGB
// channels plus a floating point alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float32
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a color with the given alpha, clamped to [0, 1].
func RGBA(r, g, b uint8, a float32) Color {
	return Color{R: r, G: g, B: b, A: clampAlpha(a)}
}

// AlphaByte returns the alpha channel quantized to 8 bits.
func (c Color) AlphaByte() uint8 {
	return uint8(math.Round(float64(clampAlpha(c.A)) * 255))
}

// Opaque reports whether the color has no visible transparency at 8-bit
// precision.
func (c Color) Opaque() bool {
	return c.AlphaByte() == 255
}

// Equal reports whether two colors are the same at 8-bit precision.
func (c Color) Equal(o Color) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B && c.AlphaByte() == o.AlphaByte()
}

// NRGBA converts the color to the standard library's non-premultiplied form.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.AlphaByte()}
}

// FromColor converts any color.Color to a Color.
func FromColor(cc color.Color) Color {
	n := color.NRGBAModel.Convert(cc).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: float32(n.A) / 255}
}

// String renders the color as a hex literal, with an alpha byte only when
// the color is translucent.
func (c Color) String() string {
	if c.Opaque() {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.AlphaByte())
}

// HSL is a transient hue/saturation/lightness view of a Color. Hue is in
// degrees [0, 360); saturation and lightness are percentages.
type HSL struct {
	H    uint16
	S, L uint8
	A    float32
}

// RGBToHSL converts a color to HSL using the standard max/min channel
// formula, rounding every component to the nearest integer.
func RGBToHSL(c Color) HSL {
	h, s, l := rgbToHSLFloat(c)

	hue := int(math.Round(h)) % 360
	if hue < 0 {
		hue += 360
	}
	return HSL{
		H: uint16(hue),
		S: uint8(math.Round(s * 100)),
		L: uint8(math.Round(l * 100)),
		A: c.A,
	}
}

func (h HSL) hueDefined() bool {
	return h.S > 0 && h.saturationDefined()
}

func (h HSL) saturationDefined() bool {
	return h.L > 0 && h.L < 100
}

// rgbToHSLFloat returns hue in degrees and saturation/lightness in [0, 1].
func rgbToHSLFloat(c Color) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2

	if maxC == minC {
		return 0, 0, l
	}

	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}

// HSLToRGB converts an HSL value back to a Color. Channels are rounded to
// the nearest integer and clamped to [0, 255].
func HSLToRGB(hsl HSL) Color {
	r, g, b := hslToRGB(float64(hsl.H), float64(hsl.S)/100, float64(hsl.L)/100)
	return Color{R: toByte(r * 255), G: toByte(g * 255), B: toByte(b * 255), A: clampAlpha(hsl.A)}
}

// hslToRGB converts HSL to RGB values (0-1 range). Hue is in degrees and
// may be outside [0, 360).
func hslToRGB(h, s, l float64) (r, g, b float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360
	s = clamp(s, 0, 1)
	l = clamp(l, 0, 1)

	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r = hueToRGB(p, q, h+1.0/3.0)
	g = hueToRGB(p, q, h)
	b = hueToRGB(p, q, h-1.0/3.0)
	return r, g, b
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

func toByte(v float64) uint8 {
	return uint8(clamp(math.Round(v), 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampAlpha(a float32) float32 {
	if a != a { // NaN
		return 1
	}
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
