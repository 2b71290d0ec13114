package css

import "regexp"

// literalPattern matches hex literals of 3, 4, 6 or 8 digits and the
// rgb/rgba/hsl/hsla functions with a flat argument list.
var literalPattern = regexp.MustCompile(
	`#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3,4})\b|(?i:\b(?:rgb|hsl)a?\([^()]*\))`,
)

// Match is a detected color literal. Start and End are byte offsets into
// the scanned text.
type Match struct {
	Start int
	End   int
	Text  string
}

// Detector finds the first color literal in a text span.
type Detector interface {
	Detect(text string) (Match, bool)
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(text string) (Match, bool)

// Detect calls f(text).
func (f DetectorFunc) Detect(text string) (Match, bool) {
	return f(text)
}

// PatternDetector detects hex and functional literals with regular
// expressions and, optionally, named color keywords.
type PatternDetector struct {
	keywords bool
}

// DetectorOption configures a PatternDetector.
type DetectorOption func(*PatternDetector)

// WithKeywords enables detection of named colors such as "rebeccapurple".
// Keywords are only considered when the text holds no hex or functional
// literal, since prose like "the red fire truck" is rarely a color.
func WithKeywords(enabled bool) DetectorOption {
	return func(d *PatternDetector) {
		d.keywords = enabled
	}
}

// NewDetector returns a PatternDetector. Keyword detection is off unless
// WithKeywords(true) is given.
func NewDetector(opts ...DetectorOption) *PatternDetector {
	d := &PatternDetector{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the leftmost color literal in text.
func (d *PatternDetector) Detect(text string) (Match, bool) {
	if loc := literalPattern.FindStringIndex(text); loc != nil {
		return Match{Start: loc[0], End: loc[1], Text: text[loc[0]:loc[1]]}, true
	}
	if d.keywords {
		if loc := keywordPattern.FindStringIndex(text); loc != nil {
			return Match{Start: loc[0], End: loc[1], Text: text[loc[0]:loc[1]]}, true
		}
	}
	return Match{}, false
}

var defaultDetector = NewDetector()

// Detect returns the leftmost hex or functional color literal in text.
func Detect(text string) (Match, bool) {
	return defaultDetector.Detect(text)
}
