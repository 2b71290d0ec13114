package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/csscolor/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	var transport, address string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server that provides document colors",
		Long: `Runs a Language Server Protocol server answering textDocument/documentColor
and textDocument/colorPresentation, so editors show swatches and color
pickers for every literal.`,
		Example: `  csscolor lsp
  csscolor lsp --transport tcp --address 127.0.0.1:7998`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("transport") {
				a.cfg.LSP.Transport = transport
			}
			if cmd.Flags().Changed("address") {
				a.cfg.LSP.Address = address
			}

			server := lsp.NewServer(lsp.Options{
				Version:  version,
				Detector: a.detector(),
				Filter:   a.callFilter(),
				Logger:   a.logger,
				Debug:    a.cfg.Log.Level == "debug",
			})
			a.logger.Info("starting language server", "transport", a.cfg.LSP.Transport, "address", a.cfg.LSP.Address)
			return server.Run(a.cfg.LSP.Transport, a.cfg.LSP.Address)
		},
	}
	cmd.Flags().StringVarP(&transport, "transport", "t", lsp.TransportStdio, "transport: stdio, tcp or websocket")
	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address for tcp and websocket")
	return cmd
}
