// Package provider ties the candidate locators to the color codec: it
// lists the colors of a document and rewrites one of them in place.
package provider

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/chrisuehlinger/csscolor/css"
	"github.com/chrisuehlinger/csscolor/locate"
)

// Ref is one color literal found in a document. Start and End are byte
// offsets into the document.
type Ref struct {
	Start int
	End   int
	Text  string
	Color css.Color
	Style css.Style
}

// Match returns the detector match the reference was built from, relative
// to the whole document.
func (r Ref) Match() css.Match {
	return css.Match{Start: r.Start, End: r.End, Text: r.Text}
}

// Provider finds and rewrites colors. It holds no mutable state and is
// safe for concurrent use.
type Provider struct {
	locator  locate.Locator
	detector css.Detector
	logger   *log.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLocator sets the locator. The default scans every line.
func WithLocator(l locate.Locator) Option {
	return func(p *Provider) {
		p.locator = l
	}
}

// WithDetector sets the detector. The default finds hex and functional
// literals only.
func WithDetector(d css.Detector) Option {
	return func(p *Provider) {
		p.detector = d
	}
}

// WithLogger sets the logger that receives debug output about literals
// that were detected but could not be parsed.
func WithLogger(l *log.Logger) Option {
	return func(p *Provider) {
		p.logger = l
	}
}

// New returns a Provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		locator:  locate.Lines{},
		detector: css.NewDetector(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Colors lists the color literals of src in document order. Literals that
// are detected but fail to parse are skipped.
func (p *Provider) Colors(src string) ([]Ref, error) {
	spans, err := p.locator.Locate(src)
	if err != nil {
		return nil, fmt.Errorf("locate candidates: %w", err)
	}

	var refs []Ref
	for _, span := range spans {
		refs = append(refs, p.scan(src, span)...)
	}
	return refs, nil
}

// scan detects every literal in a span, one detector match at a time.
func (p *Provider) scan(src string, span locate.Span) []Ref {
	var refs []Ref
	pos := span.Start
	for pos < span.End {
		m, ok := p.detector.Detect(src[pos:span.End])
		if !ok || m.End <= m.Start {
			break
		}
		start, end := pos+m.Start, pos+m.End
		pos = end

		c, style, err := css.Parse(m.Text)
		if err != nil {
			p.logger.Debug("skipping color literal", "text", m.Text, "offset", start, "err", err)
			continue
		}
		refs = append(refs, Ref{Start: start, End: end, Text: m.Text, Color: c, Style: style})
	}
	return refs
}

// Render returns the literal for c written in the style of ref.
func (p *Provider) Render(ref Ref, c css.Color) (string, error) {
	out, err := css.Render(c, ref.Style, ref.Text)
	if err != nil {
		return "", fmt.Errorf("render %q: %w", ref.Text, err)
	}
	return out, nil
}

// SetColor returns src with the literal at ref replaced by c, written in
// the literal's own style.
func (p *Provider) SetColor(src string, ref Ref, c css.Color) (string, error) {
	out, err := p.Render(ref, c)
	if err != nil {
		return "", err
	}
	updated, err := css.Replace(src, ref.Match(), out)
	if err != nil {
		return "", fmt.Errorf("set color: %w", err)
	}
	p.logger.Debug("set color", "from", ref.Text, "to", out, "offset", ref.Start)
	return updated, nil
}
