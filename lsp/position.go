package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// positionAt converts a byte offset into an LSP position, whose character
// counts UTF-16 code units. Offsets past the end clamp to the end.
func positionAt(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}

	var line, char protocol.UInteger
	for i := 0; i < offset; {
		r, w := utf8.DecodeRuneInString(text[i:])
		if i+w > offset {
			break
		}
		i += w
		switch {
		case r == '\n':
			line++
			char = 0
		case r >= 0x10000:
			char += 2
		default:
			char++
		}
	}
	return protocol.Position{Line: line, Character: char}
}

// rangeOf converts a byte span into an LSP range.
func rangeOf(text string, start, end int) protocol.Range {
	return protocol.Range{
		Start: positionAt(text, start),
		End:   positionAt(text, end),
	}
}
