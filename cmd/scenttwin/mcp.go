package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpTransport "github.com/kailas-cloud/scenttwin/internal/transport/mcp"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the search tools over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, logger, err := newApp(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			logger.Info("Serving MCP over stdio",
				zap.String("provider", a.Provider),
				zap.String("model", a.Model),
			)
			return mcpTransport.NewServer(a.Search, logger).RunStdio(cmd.Context())
		},
	}
}
