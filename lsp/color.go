package lsp

import (
	"math"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/chrisuehlinger/csscolor/css"
	"github.com/chrisuehlinger/csscolor/provider"
)

// alternativeStyles are offered after the literal's own style in color
// presentations.
var alternativeStyles = []css.Style{
	{Notation: css.NotationHex},
	{Notation: css.NotationRGB, FunctionName: "rgb", Separator: css.SeparatorSpace},
	{Notation: css.NotationHSL, FunctionName: "hsl", Separator: css.SeparatorSpace},
}

func toProtocolColor(c css.Color) protocol.Color {
	return protocol.Color{
		Red:   protocol.Decimal(c.R) / 255,
		Green: protocol.Decimal(c.G) / 255,
		Blue:  protocol.Decimal(c.B) / 255,
		Alpha: protocol.Decimal(c.A),
	}
}

func fromProtocolColor(c protocol.Color) css.Color {
	channel := func(v protocol.Decimal) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, float64(v))) * 255))
	}
	return css.RGBA(channel(c.Red), channel(c.Green), channel(c.Blue), c.Alpha)
}

// providerFor builds the color provider for a document's language.
func (h *Handler) providerFor(doc *Document) *provider.Provider {
	return provider.New(
		provider.WithLocator(h.locatorFor(doc)),
		provider.WithDetector(h.detector),
		provider.WithLogger(h.logger),
	)
}

// TextDocumentColor lists the colors of a document.
func (h *Handler) TextDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	doc, ok := h.documents.Get(params.TextDocument.URI)
	if !ok {
		return []protocol.ColorInformation{}, nil
	}

	refs, err := h.providerFor(doc).Colors(doc.Text)
	if err != nil {
		// A document that does not parse simply has no colors yet.
		h.logger.Debug("document colors", "uri", doc.URI, "err", err)
		return []protocol.ColorInformation{}, nil
	}

	infos := make([]protocol.ColorInformation, 0, len(refs))
	for _, ref := range refs {
		infos = append(infos, protocol.ColorInformation{
			Range: rangeOf(doc.Text, ref.Start, ref.End),
			Color: toProtocolColor(ref.Color),
		})
	}
	return infos, nil
}

// TextDocumentColorPresentation renders the picked color in the style of
// the literal at the given range, followed by hex, rgb() and hsl()
// alternatives.
func (h *Handler) TextDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	doc, ok := h.documents.Get(params.TextDocument.URI)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}

	c := fromProtocolColor(params.Color)
	start, end := params.Range.IndexesIn(doc.Text)
	if start > end || end > len(doc.Text) {
		return []protocol.ColorPresentation{}, nil
	}
	original := doc.Text[start:end]

	var labels []string
	seen := map[string]bool{}
	add := func(label string) {
		if label != "" && !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}

	if _, style, err := css.Parse(original); err == nil {
		if out, err := css.Render(c, style, original); err == nil {
			add(out)
		}
	} else {
		h.logger.Debug("color presentation", "uri", doc.URI, "text", original, "err", err)
	}
	for _, style := range alternativeStyles {
		if out, err := css.Render(c, style, ""); err == nil {
			add(out)
		}
	}

	presentations := make([]protocol.ColorPresentation, 0, len(labels))
	for _, label := range labels {
		presentations = append(presentations, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: label,
			},
		})
	}
	return presentations, nil
}
