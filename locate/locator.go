// Package locate finds the spans of a document that may hold color
// literals: whole lines of stylesheets, style attributes and <style>
// elements of HTML pages, and string literals of JavaScript sources.
package locate

import (
	"path/filepath"
	"strings"
)

// Span is a half-open byte range [Start, End) of a document.
type Span struct {
	Start int
	End   int
}

// Text returns the part of src covered by the span.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// Locator returns the candidate spans of a document in source order.
type Locator interface {
	Locate(src string) ([]Span, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(src string) ([]Span, error)

// Locate calls f(src).
func (f LocatorFunc) Locate(src string) ([]Span, error) {
	return f(src)
}

// Lines treats every line of the document as a candidate. Line
// terminators are not part of the spans.
type Lines struct{}

// Locate implements Locator.
func (Lines) Locate(src string) ([]Span, error) {
	return splitLines(src, 0), nil
}

// splitLines returns one span per non-empty line of text, shifted by base.
func splitLines(text string, base int) []Span {
	var spans []Span
	start := 0
	for start <= len(text) {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}
		lineEnd := end
		if lineEnd > start && text[lineEnd-1] == '\r' {
			lineEnd--
		}
		if lineEnd > start {
			spans = append(spans, Span{Start: base + start, End: base + lineEnd})
		}
		start = end + 1
	}
	return spans
}

// ForLanguage returns the locator for an editor language identifier such
// as "html" or "javascript". Unknown languages are scanned line by line.
func ForLanguage(id string, filter CallFilter) Locator {
	switch strings.ToLower(id) {
	case "html", "vue", "svelte":
		return &HTML{Script: &JavaScript{Filter: filter}}
	case "javascript", "javascriptreact", "js":
		return &JavaScript{Filter: filter}
	default:
		return Lines{}
	}
}

// ForPath returns the locator for a file name based on its extension.
func ForPath(path string, filter CallFilter) Locator {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".vue", ".svelte":
		return ForLanguage("html", filter)
	case ".js", ".mjs", ".cjs":
		return ForLanguage("javascript", filter)
	default:
		return Lines{}
	}
}
