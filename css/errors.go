package css

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch reports that no color literal was found. It is a normal
	// negative result rather than a failure.
	ErrNoMatch = errors.New("no color literal")

	ErrMalformedHex        = errors.New("malformed hex color")
	ErrWrongArity          = errors.New("color function needs 3 or 4 arguments")
	ErrMissingPercent      = errors.New("saturation and lightness must be percentages")
	ErrUnsupportedNotation = errors.New("unsupported color notation")
	ErrInvalidArgument     = errors.New("invalid color function argument")
	ErrUnterminated        = errors.New("unterminated color function")

	// ErrStaleMatch reports that the text no longer holds the matched
	// literal at the recorded position.
	ErrStaleMatch = errors.New("color literal no longer at match position")
)

// ParseError records the literal that failed to parse.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("css: parse color %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
