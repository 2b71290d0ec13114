package css

// Notation is the overall syntax a color literal was written in.
type Notation int

const (
	NotationUnknown Notation = iota
	NotationHex
	NotationRGB
	NotationHSL
	NotationKeyword
)

func (n Notation) String() string {
	switch n {
	case NotationHex:
		return "hex"
	case NotationRGB:
		return "rgb"
	case NotationHSL:
		return "hsl"
	case NotationKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Separator is the punctuation between the arguments of a color function.
type Separator int

const (
	// SeparatorComma is the legacy form: rgb(255, 0, 153, .5).
	SeparatorComma Separator = iota
	// SeparatorSpace separates every argument by whitespace: rgb(255 0 153).
	SeparatorSpace
	// SeparatorSlash is the modern form with a slash before alpha:
	// rgb(255 0 153 / .5).
	SeparatorSlash
)

func (s Separator) String() string {
	switch s {
	case SeparatorComma:
		return "comma"
	case SeparatorSpace:
		return "space"
	case SeparatorSlash:
		return "slash"
	default:
		return "unknown"
	}
}

// AngleUnit is the unit suffix of an HSL hue.
type AngleUnit int

const (
	// AngleNone is a bare number, interpreted as degrees.
	AngleNone AngleUnit = iota
	AngleDeg
	AngleGrad
	AngleRad
	AngleTurn
)

var angleUnitNames = map[AngleUnit]string{
	AngleNone: "",
	AngleDeg:  "deg",
	AngleGrad: "grad",
	AngleRad:  "rad",
	AngleTurn: "turn",
}

func (u AngleUnit) String() string {
	return angleUnitNames[u]
}

// Style describes how a color literal was written, so that a new color can
// be rendered back in the same notation. A Style is produced by Parse and is
// never modified afterwards.
type Style struct {
	Notation Notation

	// FunctionName is the function name exactly as written, e.g. "RGBA".
	FunctionName string
	// AlphaForm is set when the function name had the "a" suffix.
	AlphaForm bool
	// AlphaArg is set when the literal had a fourth (alpha) argument.
	AlphaArg  bool
	Separator Separator

	// ChannelsPercent is set when all three rgb() channels were percentages.
	ChannelsPercent bool
	AlphaPercent    bool
	AngleUnit       AngleUnit

	// HexAlphaDigits is 2 when a hex literal carried an alpha component.
	HexAlphaDigits int
	HexUpper       bool

	// LeadingZero is set when fractional numbers were written as "0.5".
	LeadingZero bool
}

// Functional reports whether the style describes a color function.
func (s Style) Functional() bool {
	return s.Notation == NotationRGB || s.Notation == NotationHSL
}

func (s Style) functionName() string {
	if s.FunctionName != "" {
		return s.FunctionName
	}
	name := "rgb"
	if s.Notation == NotationHSL {
		name = "hsl"
	}
	if s.AlphaForm {
		name += "a"
	}
	return name
}
