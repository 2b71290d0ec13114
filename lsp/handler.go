package lsp

import (
	"github.com/charmbracelet/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/chrisuehlinger/csscolor/css"
	"github.com/chrisuehlinger/csscolor/locate"
)

// Handler implements the LSP methods the server supports.
type Handler struct {
	name      string
	version   string
	documents *DocumentManager
	detector  css.Detector
	filter    locate.CallFilter
	logger    *log.Logger

	// protocol is the glsp handler table, used to derive capabilities.
	protocol *protocol.Handler
}

// NewHandler creates a handler from the server options.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		name:      opts.Name,
		version:   opts.Version,
		documents: NewDocumentManager(),
		detector:  opts.Detector,
		filter:    opts.Filter,
		logger:    opts.Logger,
	}
	if h.name == "" {
		h.name = "csscolor"
	}
	if h.detector == nil {
		h.detector = css.NewDetector()
	}
	if h.logger == nil {
		h.logger = log.Default()
	}

	h.protocol = &protocol.Handler{
		Initialize:                    h.Initialize,
		Initialized:                   h.Initialized,
		Shutdown:                      h.Shutdown,
		SetTrace:                      h.SetTrace,
		TextDocumentDidOpen:           h.TextDocumentDidOpen,
		TextDocumentDidChange:         h.TextDocumentDidChange,
		TextDocumentDidClose:          h.TextDocumentDidClose,
		TextDocumentColor:             h.TextDocumentColor,
		TextDocumentColorPresentation: h.TextDocumentColorPresentation,
	}
	return h
}

// Documents returns the handler's document store.
func (h *Handler) Documents() *DocumentManager {
	return h.documents
}

func (h *Handler) locatorFor(doc *Document) locate.Locator {
	if doc.LanguageID != "" {
		return locate.ForLanguage(doc.LanguageID, h.filter)
	}
	return locate.ForPath(doc.URI, h.filter)
}

// Initialize advertises the server's capabilities.
func (h *Handler) Initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		h.logger.Info("client connected", "name", params.ClientInfo.Name)
	}

	capabilities := h.protocol.CreateServerCapabilities()
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    h.name,
			Version: &h.version,
		},
	}, nil
}

// Initialized is a no-op.
func (h *Handler) Initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

// Shutdown releases the open documents.
func (h *Handler) Shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	for _, doc := range h.documents.GetAll() {
		h.documents.Close(doc.URI)
	}
	return nil
}

// SetTrace updates the trace level.
func (h *Handler) SetTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen stores the opened document.
func (h *Handler) TextDocumentDidOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	h.documents.Open(item.URI, item.LanguageID, item.Version, item.Text)
	h.logger.Debug("opened document", "uri", item.URI, "language", item.LanguageID)
	return nil
}

// TextDocumentDidChange applies content changes to a stored document.
func (h *Handler) TextDocumentDidChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if doc := h.documents.Apply(params.TextDocument.URI, params.TextDocument.Version, params.ContentChanges); doc == nil {
		h.logger.Warn("change for unknown document", "uri", params.TextDocument.URI)
	}
	return nil
}

// TextDocumentDidClose forgets a document.
func (h *Handler) TextDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.documents.Close(params.TextDocument.URI)
	return nil
}
