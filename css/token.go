// Package css implements a codec for CSS color literals: it finds color
// literals in text, parses them into a canonical color plus a description of
// how they were written, and renders new colors back in the same notation.
//
// Tokenization follows CSS Syntax Module Level 3.
// Reference: https://www.w3.org/TR/css-syntax-3/
package css

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the type of a CSS token.
type TokenType int

const (
	// Token types per CSS Syntax Module Level 3 §4, restricted to the ones
	// that can appear inside a color literal.
	TokenEOF TokenType = iota
	TokenIdent
	TokenFunction
	TokenHash
	TokenString
	TokenDelim
	TokenNumber
	TokenPercentage
	TokenDimension
	TokenWhitespace
	TokenComma
	TokenOpenParen  // (
	TokenCloseParen // )
)

// NumberType indicates whether a number is integer or number.
type NumberType int

const (
	NumberInteger NumberType = iota
	NumberNumber
)

// Token represents a CSS token.
type Token struct {
	Type     TokenType
	Value    string     // Name for idents/functions/hashes, source representation for numerics
	NumValue float64    // Numeric value for number/percentage/dimension
	NumType  NumberType // Whether numeric value is integer or number
	Unit     string     // Unit for dimension tokens
	Delim    rune       // The delimiter character for delim tokens
	Pos      int        // Rune offset of the token in the input
}

// Raw returns the token as it was written in the source. Only meaningful for
// numeric tokens, which keep their original representation.
func (t Token) Raw() string {
	switch t.Type {
	case TokenPercentage:
		return t.Value + "%"
	case TokenDimension:
		return t.Value + t.Unit
	case TokenDelim:
		return string(t.Delim)
	default:
		return t.Value
	}
}

// IsNumeric reports whether the token carries a numeric value.
func (t Token) IsNumeric() bool {
	return t.Type == TokenNumber || t.Type == TokenPercentage || t.Type == TokenDimension
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "<EOF>"
	case TokenIdent:
		return fmt.Sprintf("<IDENT %q>", t.Value)
	case TokenFunction:
		return fmt.Sprintf("<FUNCTION %q>", t.Value)
	case TokenHash:
		return fmt.Sprintf("<HASH %q>", t.Value)
	case TokenString:
		return fmt.Sprintf("<STRING %q>", t.Value)
	case TokenDelim:
		return fmt.Sprintf("<DELIM %q>", string(t.Delim))
	case TokenNumber:
		if t.NumType == NumberInteger {
			return fmt.Sprintf("<NUMBER int %v>", t.NumValue)
		}
		return fmt.Sprintf("<NUMBER %v>", t.NumValue)
	case TokenPercentage:
		return fmt.Sprintf("<PERCENTAGE %v%%>", t.NumValue)
	case TokenDimension:
		return fmt.Sprintf("<DIMENSION %v%s>", t.NumValue, t.Unit)
	case TokenWhitespace:
		return "<WHITESPACE>"
	case TokenComma:
		return "<COMMA>"
	case TokenOpenParen:
		return "<(>"
	case TokenCloseParen:
		return "<)>"
	default:
		return fmt.Sprintf("<UNKNOWN %d>", t.Type)
	}
}

// Tokenizer tokenizes CSS input according to CSS Syntax Module Level 3.
// It is not safe for concurrent use; create one per input.
type Tokenizer struct {
	input []rune
	pos   int
}

// NewTokenizer creates a new CSS tokenizer.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: []rune(preprocessInput(input))}
}

// preprocessInput performs preprocessing per CSS Syntax §3.3.
// - Replace CR LF and CR with LF
// - Replace U+0000 with U+FFFD
// - Replace formfeed with LF
func preprocessInput(input string) string {
	if !strings.ContainsAny(input, "\r\f\x00") {
		return input
	}

	var sb strings.Builder
	sb.Grow(len(input))

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			sb.WriteRune('\n')
		case '\f':
			sb.WriteRune('\n')
		case 0:
			sb.WriteRune('\uFFFD')
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// peek returns the current code point without consuming it.
func (t *Tokenizer) peek() rune {
	return t.peekN(0)
}

// peekN returns the code point at offset n from current position.
func (t *Tokenizer) peekN(n int) rune {
	pos := t.pos + n
	if pos >= len(t.input) || pos < 0 {
		return -1
	}
	return t.input[pos]
}

// consume consumes and returns the current code point.
func (t *Tokenizer) consume() rune {
	if t.pos >= len(t.input) {
		return -1
	}
	r := t.input[t.pos]
	t.pos++
	return r
}

// reconsume backs up one code point.
func (t *Tokenizer) reconsume() {
	if t.pos > 0 {
		t.pos--
	}
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isNameStartCodePoint returns true if r can start an identifier.
func isNameStartCodePoint(r rune) bool {
	return isLetter(r) || r >= 0x80 || r == '_'
}

// isNameCodePoint returns true if r can be part of an identifier.
func isNameCodePoint(r rune) bool {
	return isNameStartCodePoint(r) || isDigit(r) || r == '-'
}

// startsWithValidEscapeAt checks if code points at offset are a valid escape.
func (t *Tokenizer) startsWithValidEscapeAt(offset int) bool {
	return t.peekN(offset) == '\\' && t.peekN(offset+1) != '\n' && t.peekN(offset+1) != -1
}

// startsIdentifier checks if the next code points would start an identifier.
func (t *Tokenizer) startsIdentifier() bool {
	first := t.peek()
	switch {
	case isNameStartCodePoint(first):
		return true
	case first == '-':
		second := t.peekN(1)
		return isNameStartCodePoint(second) || second == '-' || t.startsWithValidEscapeAt(1)
	case first == '\\':
		return t.startsWithValidEscapeAt(0)
	}
	return false
}

// startsNumber checks if the next code points would start a number.
func (t *Tokenizer) startsNumber() bool {
	first := t.peek()
	if isDigit(first) {
		return true
	}
	if first == '+' || first == '-' {
		second := t.peekN(1)
		if isDigit(second) {
			return true
		}
		return second == '.' && isDigit(t.peekN(2))
	}
	if first == '.' {
		return isDigit(t.peekN(1))
	}
	return false
}

// consumeEscape consumes an escape sequence and returns the code point.
// The backslash has already been consumed.
func (t *Tokenizer) consumeEscape() rune {
	r := t.consume()
	if r == -1 {
		return '\uFFFD'
	}
	if !isHexDigit(r) {
		return r
	}

	hex := string(r)
	for i := 0; i < 5 && isHexDigit(t.peek()); i++ {
		hex += string(t.consume())
	}
	if isWhitespace(t.peek()) {
		t.consume()
	}
	val, _ := strconv.ParseInt(hex, 16, 32)
	if val == 0 || val > 0x10FFFF || (val >= 0xD800 && val <= 0xDFFF) {
		return '\uFFFD'
	}
	return rune(val)
}

// consumeName consumes an identifier and returns the string.
func (t *Tokenizer) consumeName() string {
	var result strings.Builder
	for {
		r := t.consume()
		switch {
		case isNameCodePoint(r):
			result.WriteRune(r)
		case r == '\\' && t.peek() != '\n' && t.peek() != -1:
			result.WriteRune(t.consumeEscape())
		default:
			if r != -1 {
				t.reconsume()
			}
			return result.String()
		}
	}
}

// consumeNumber consumes a number and returns its value, source
// representation and type.
func (t *Tokenizer) consumeNumber() (float64, string, NumberType) {
	var repr strings.Builder
	numType := NumberInteger

	if t.peek() == '+' || t.peek() == '-' {
		repr.WriteRune(t.consume())
	}

	for isDigit(t.peek()) {
		repr.WriteRune(t.consume())
	}

	if t.peek() == '.' && isDigit(t.peekN(1)) {
		repr.WriteRune(t.consume())
		numType = NumberNumber
		for isDigit(t.peek()) {
			repr.WriteRune(t.consume())
		}
	}

	if t.peek() == 'e' || t.peek() == 'E' {
		next := t.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(t.peekN(2))) {
			repr.WriteRune(t.consume())
			numType = NumberNumber
			if t.peek() == '+' || t.peek() == '-' {
				repr.WriteRune(t.consume())
			}
			for isDigit(t.peek()) {
				repr.WriteRune(t.consume())
			}
		}
	}

	val, _ := strconv.ParseFloat(repr.String(), 64)
	return val, repr.String(), numType
}

// consumeNumericToken consumes a number, percentage or dimension token.
func (t *Tokenizer) consumeNumericToken() Token {
	start := t.pos
	numVal, repr, numType := t.consumeNumber()

	tok := Token{Value: repr, NumValue: numVal, NumType: numType, Pos: start}
	switch {
	case t.startsIdentifier():
		tok.Type = TokenDimension
		tok.Unit = t.consumeName()
	case t.peek() == '%':
		t.consume()
		tok.Type = TokenPercentage
	default:
		tok.Type = TokenNumber
	}
	return tok
}

// consumeString consumes a quoted string. Unterminated strings end at the
// newline or end of input.
func (t *Tokenizer) consumeString(endChar rune, start int) Token {
	var result strings.Builder
	for {
		r := t.consume()
		switch {
		case r == endChar || r == -1:
			return Token{Type: TokenString, Value: result.String(), Pos: start}
		case r == '\n':
			t.reconsume()
			return Token{Type: TokenString, Value: result.String(), Pos: start}
		case r == '\\':
			if t.peek() == '\n' {
				t.consume()
			} else if t.peek() != -1 {
				result.WriteRune(t.consumeEscape())
			}
		default:
			result.WriteRune(r)
		}
	}
}

// consumeIdentLikeToken consumes an ident or function token.
func (t *Tokenizer) consumeIdentLikeToken() Token {
	start := t.pos
	name := t.consumeName()

	if t.peek() == '(' {
		t.consume()
		return Token{Type: TokenFunction, Value: name, Pos: start}
	}
	return Token{Type: TokenIdent, Value: name, Pos: start}
}

// consumeHashToken consumes a hash token. The '#' has already been consumed.
func (t *Tokenizer) consumeHashToken(start int) Token {
	if isNameCodePoint(t.peek()) || t.startsWithValidEscapeAt(0) {
		return Token{Type: TokenHash, Value: t.consumeName(), Pos: start}
	}
	return Token{Type: TokenDelim, Delim: '#', Pos: start}
}

// consumeComment skips a comment. The tokenizer is positioned on "/*".
func (t *Tokenizer) consumeComment() {
	t.consume()
	t.consume()
	for {
		r := t.consume()
		if r == -1 {
			return
		}
		if r == '*' && t.peek() == '/' {
			t.consume()
			return
		}
	}
}

// NextToken returns the next token from the input.
func (t *Tokenizer) NextToken() Token {
	for t.peek() == '/' && t.peekN(1) == '*' {
		t.consumeComment()
	}

	start := t.pos
	r := t.consume()

	switch {
	case r == -1:
		return Token{Type: TokenEOF, Pos: start}

	case isWhitespace(r):
		for isWhitespace(t.peek()) {
			t.consume()
		}
		return Token{Type: TokenWhitespace, Pos: start}

	case r == '"' || r == '\'':
		return t.consumeString(r, start)

	case r == '#':
		return t.consumeHashToken(start)

	case r == '(':
		return Token{Type: TokenOpenParen, Pos: start}

	case r == ')':
		return Token{Type: TokenCloseParen, Pos: start}

	case r == ',':
		return Token{Type: TokenComma, Pos: start}

	case r == '+' || r == '.':
		t.reconsume()
		if t.startsNumber() {
			return t.consumeNumericToken()
		}
		t.consume()
		return Token{Type: TokenDelim, Delim: r, Pos: start}

	case r == '-':
		t.reconsume()
		if t.startsNumber() {
			return t.consumeNumericToken()
		}
		if t.startsIdentifier() {
			return t.consumeIdentLikeToken()
		}
		t.consume()
		return Token{Type: TokenDelim, Delim: r, Pos: start}

	case r == '\\':
		t.reconsume()
		if t.startsWithValidEscapeAt(0) {
			return t.consumeIdentLikeToken()
		}
		t.consume()
		return Token{Type: TokenDelim, Delim: r, Pos: start}

	case isDigit(r):
		t.reconsume()
		return t.consumeNumericToken()

	case isNameStartCodePoint(r):
		t.reconsume()
		return t.consumeIdentLikeToken()

	default:
		return Token{Type: TokenDelim, Delim: r, Pos: start}
	}
}

// TokenizeAll tokenizes the entire input and returns all tokens.
func (t *Tokenizer) TokenizeAll() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}
