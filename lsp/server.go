// Package lsp serves document colors and color presentations over the
// Language Server Protocol, so editors can show swatches next to color
// literals and rewrite them from a color picker.
package lsp

import (
	"fmt"

	"github.com/charmbracelet/log"
	glspServer "github.com/tliron/glsp/server"

	"github.com/chrisuehlinger/csscolor/css"
	"github.com/chrisuehlinger/csscolor/locate"
)

// Transports accepted by Server.Run.
const (
	TransportStdio     = "stdio"
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

// Options configures a Server.
type Options struct {
	Name     string
	Version  string
	Detector css.Detector
	Filter   locate.CallFilter
	Logger   *log.Logger
	Debug    bool
}

// Server is the csscolor language server.
type Server struct {
	server  *glspServer.Server
	handler *Handler
}

// NewServer creates a language server.
func NewServer(opts Options) *Server {
	handler := NewHandler(opts)
	return &Server{
		server:  glspServer.NewServer(handler.protocol, handler.name, opts.Debug),
		handler: handler,
	}
}

// Run serves on the given transport until the client disconnects.
func (s *Server) Run(transport, address string) error {
	switch transport {
	case "", TransportStdio:
		return s.RunStdio()
	case TransportTCP:
		return s.RunTCP(address)
	case TransportWebSocket:
		return s.RunWebSocket(address)
	default:
		return fmt.Errorf("unknown transport %q", transport)
	}
}

// RunStdio runs the LSP server using stdio transport.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

// RunTCP runs the LSP server using TCP transport.
func (s *Server) RunTCP(address string) error {
	return s.server.RunTCP(address)
}

// RunWebSocket runs the LSP server using WebSocket transport.
func (s *Server) RunWebSocket(address string) error {
	return s.server.RunWebSocket(address)
}

// GetHandler returns the server's handler.
func (s *Server) GetHandler() *Handler {
	return s.handler
}
