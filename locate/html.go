package locate

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// styleAttrPattern finds the value of a style attribute inside the raw text
// of a start tag. Exactly one of the three value groups participates.
var styleAttrPattern = regexp.MustCompile(`(?i)\sstyle\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'=<>` + "`" + `]+))`)

// HTML locates style="..." attribute values and the lines of <style>
// elements. When Script is set, the text of <script> elements is handed to
// it as well.
type HTML struct {
	Script Locator
}

// Locate implements Locator.
func (h *HTML) Locate(src string) ([]Span, error) {
	z := html.NewTokenizer(strings.NewReader(src))

	var spans []Span
	offset := 0
	var inside atom.Atom
	for {
		tt := z.Next()
		raw := z.Raw()
		start := offset
		offset += len(raw)

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return spans, nil
			}
			return spans, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			spans = append(spans, styleAttrSpans(string(raw), start)...)
			name, _ := z.TagName()
			inside = 0
			if tt == html.StartTagToken {
				switch a := atom.Lookup(name); a {
				case atom.Style, atom.Script:
					inside = a
				}
			}

		case html.TextToken:
			switch inside {
			case atom.Style:
				spans = append(spans, splitLines(string(raw), start)...)
			case atom.Script:
				if h.Script == nil {
					break
				}
				inner, err := h.Script.Locate(string(raw))
				if err != nil {
					// Scripts that do not parse are skipped rather than
					// failing the whole page.
					break
				}
				for _, s := range inner {
					spans = append(spans, Span{Start: start + s.Start, End: start + s.End})
				}
			}

		case html.EndTagToken:
			inside = 0
		}
	}
}

func styleAttrSpans(tag string, base int) []Span {
	var spans []Span
	for _, loc := range styleAttrPattern.FindAllStringSubmatchIndex(tag, -1) {
		for g := 1; g <= 3; g++ {
			s, e := loc[2*g], loc[2*g+1]
			if s >= 0 && e > s {
				spans = append(spans, Span{Start: base + s, End: base + e})
			}
		}
	}
	return spans
}
