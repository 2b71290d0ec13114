package css

import (
	"math"
	"strings"
)

// literal is a parsed color literal together with the source tokens of its
// arguments, which the renderer reuses for channels that did not change.
type literal struct {
	color Color
	style Style

	channels [3]Token
	alpha    *Token
}

// Parse parses a color literal such as "#f09", "rgb(255 0 153 / 50%)" or
// "hsla(270deg, 60%, 70%, .5)" into its canonical color and the style it
// was written in. Errors wrap one of the package's sentinel errors in a
// *ParseError.
func Parse(text string) (Color, Style, error) {
	lit, err := parseLiteral(text)
	if err != nil {
		return Color{}, Style{}, &ParseError{Text: text, Err: err}
	}
	return lit.color, lit.style, nil
}

func parseLiteral(text string) (*literal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, ErrNoMatch
	}
	if s[0] == '#' {
		return parseHex(s[1:])
	}
	if c, ok := NamedColor(s); ok {
		return &literal{color: c, style: Style{Notation: NotationKeyword}}, nil
	}
	return parseFunction(s)
}

// parseHex parses the digits of a hex literal.
func parseHex(digits string) (*literal, error) {
	n := len(digits)
	if n != 3 && n != 4 && n != 6 && n != 8 {
		return nil, ErrMalformedHex
	}

	var upper, lower bool
	nibbles := make([]uint8, n)
	for i := 0; i < n; i++ {
		c := digits[i]
		if !isHexDigit(rune(c)) {
			return nil, ErrMalformedHex
		}
		switch {
		case c >= 'a' && c <= 'f':
			lower = true
		case c >= 'A' && c <= 'F':
			upper = true
		}
		nibbles[i] = parseHexDigit(c)
	}

	var channels []uint8
	if n <= 4 { // #RGB, #RGBA
		for _, v := range nibbles {
			channels = append(channels, v*17)
		}
	} else { // #RRGGBB, #RRGGBBAA
		for i := 0; i < n; i += 2 {
			channels = append(channels, nibbles[i]<<4|nibbles[i+1])
		}
	}

	lit := &literal{
		color: RGB(channels[0], channels[1], channels[2]),
		style: Style{Notation: NotationHex, HexUpper: upper && !lower},
	}
	if len(channels) == 4 {
		lit.color.A = float32(channels[3]) / 255
		lit.style.HexAlphaDigits = 2
	}
	return lit, nil
}

func parseHexDigit(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// parseFunction parses rgb(), rgba(), hsl() or hsla().
func parseFunction(s string) (*literal, error) {
	tokens := NewTokenizer(s).TokenizeAll()
	fn := tokens[0]
	if fn.Type != TokenFunction {
		return nil, ErrUnsupportedNotation
	}

	lit := &literal{style: Style{FunctionName: fn.Value}}
	switch strings.ToLower(fn.Value) {
	case "rgb", "rgba":
		lit.style.Notation = NotationRGB
	case "hsl", "hsla":
		lit.style.Notation = NotationHSL
	default:
		return nil, ErrUnsupportedNotation
	}
	lit.style.AlphaForm = strings.HasSuffix(strings.ToLower(fn.Value), "a")

	var body []Token
	rest := tokens[1:]
	for {
		tok := rest[0]
		rest = rest[1:]
		if tok.Type == TokenEOF {
			return nil, ErrUnterminated
		}
		if tok.Type == TokenCloseParen {
			break
		}
		if tok.Type == TokenOpenParen || tok.Type == TokenFunction {
			return nil, ErrInvalidArgument
		}
		body = append(body, tok)
	}
	for _, tok := range rest {
		if tok.Type != TokenWhitespace && tok.Type != TokenEOF {
			return nil, ErrInvalidArgument
		}
	}

	args, sep, err := splitArguments(body)
	if err != nil {
		return nil, err
	}
	lit.style.Separator = sep
	copy(lit.channels[:], args[:3])

	for _, arg := range args {
		if !arg.IsNumeric() || math.IsInf(arg.NumValue, 0) {
			return nil, ErrInvalidArgument
		}
		if hasLeadingZero(arg.Value) {
			lit.style.LeadingZero = true
		}
	}

	if lit.style.Notation == NotationRGB {
		err = lit.parseRGBChannels()
	} else {
		err = lit.parseHSLChannels()
	}
	if err != nil {
		return nil, err
	}

	if len(args) == 4 {
		alpha := args[3]
		a, err := parseAlpha(alpha)
		if err != nil {
			return nil, err
		}
		lit.alpha = &alpha
		lit.color.A = a
		lit.style.AlphaArg = true
		lit.style.AlphaPercent = alpha.Type == TokenPercentage
	}
	return lit, nil
}

// splitArguments splits a function body on commas when any comma is
// present, otherwise on whitespace with an optional slash before alpha.
func splitArguments(body []Token) ([]Token, Separator, error) {
	hasComma := false
	for _, tok := range body {
		if tok.Type == TokenComma {
			hasComma = true
			break
		}
	}

	if hasComma {
		var args, current []Token
		flush := func() error {
			if len(current) != 1 {
				return ErrInvalidArgument
			}
			args = append(args, current[0])
			current = current[:0]
			return nil
		}
		for _, tok := range body {
			switch tok.Type {
			case TokenWhitespace:
			case TokenComma:
				if err := flush(); err != nil {
					return nil, 0, err
				}
			default:
				current = append(current, tok)
			}
		}
		if err := flush(); err != nil {
			return nil, 0, err
		}
		if len(args) != 3 && len(args) != 4 {
			return nil, 0, ErrWrongArity
		}
		return args, SeparatorComma, nil
	}

	var args []Token
	slashAt := -1
	for _, tok := range body {
		switch {
		case tok.Type == TokenWhitespace:
		case tok.Type == TokenDelim && tok.Delim == '/':
			if slashAt >= 0 {
				return nil, 0, ErrInvalidArgument
			}
			slashAt = len(args)
		default:
			args = append(args, tok)
		}
	}
	if len(args) != 3 && len(args) != 4 {
		return nil, 0, ErrWrongArity
	}
	if slashAt < 0 {
		return args, SeparatorSpace, nil
	}
	if slashAt != 3 || len(args) != 4 {
		return nil, 0, ErrInvalidArgument
	}
	return args, SeparatorSlash, nil
}

// parseRGBChannels accepts numbers (0-255) and percentages (0%-100%),
// mixed freely. ChannelsPercent is only set when all three are percentages.
func (lit *literal) parseRGBChannels() error {
	var values [3]uint8
	percents := 0
	for i, tok := range lit.channels {
		switch tok.Type {
		case TokenNumber:
			values[i] = toByte(tok.NumValue)
		case TokenPercentage:
			values[i] = toByte(clamp(tok.NumValue, 0, 100) / 100 * 255)
			percents++
		default:
			return ErrInvalidArgument
		}
	}
	lit.color = RGB(values[0], values[1], values[2])
	lit.style.ChannelsPercent = percents == 3
	return nil
}

// parseHSLChannels parses a hue with an optional angle unit followed by
// saturation and lightness percentages.
func (lit *literal) parseHSLChannels() error {
	hue, unit, err := parseHue(lit.channels[0])
	if err != nil {
		return err
	}
	lit.style.AngleUnit = unit

	var sl [2]float64
	for i, tok := range lit.channels[1:] {
		switch tok.Type {
		case TokenPercentage:
			sl[i] = clamp(tok.NumValue, 0, 100) / 100
		case TokenNumber:
			return ErrMissingPercent
		default:
			return ErrInvalidArgument
		}
	}

	r, g, b := hslToRGB(hue, sl[0], sl[1])
	lit.color = RGB(toByte(r*255), toByte(g*255), toByte(b*255))
	return nil
}

// parseHue returns the hue in degrees.
func parseHue(tok Token) (float64, AngleUnit, error) {
	switch tok.Type {
	case TokenNumber:
		return tok.NumValue, AngleNone, nil
	case TokenDimension:
		switch strings.ToLower(tok.Unit) {
		case "deg":
			return tok.NumValue, AngleDeg, nil
		case "grad":
			return tok.NumValue * 0.9, AngleGrad, nil
		case "rad":
			return tok.NumValue * 180 / math.Pi, AngleRad, nil
		case "turn":
			return tok.NumValue * 360, AngleTurn, nil
		}
	}
	return 0, AngleNone, ErrInvalidArgument
}

// fromDegrees converts a hue in degrees to the given unit.
func fromDegrees(deg float64, unit AngleUnit) float64 {
	switch unit {
	case AngleGrad:
		return deg / 0.9
	case AngleRad:
		return deg * math.Pi / 180
	case AngleTurn:
		return deg / 360
	default:
		return deg
	}
}

func parseAlpha(tok Token) (float32, error) {
	switch tok.Type {
	case TokenNumber:
		return float32(clamp(tok.NumValue, 0, 1)), nil
	case TokenPercentage:
		return float32(clamp(tok.NumValue, 0, 100) / 100), nil
	default:
		return 0, ErrInvalidArgument
	}
}
